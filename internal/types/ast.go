package types

import (
	"strconv"
	"strings"
)

// Object is an AST object node: command keys mapped to child nodes.
type Object = map[string]any

// Array is an AST array node.
type Array = []any

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined marks an object key as absent. Keys holding Undefined are skipped
// by the compiler exactly as if they were not present.
var Undefined any = undefinedValue{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// Step is one element of a Path: either a command key or an array index.
type Step struct {
	Command Command
	Index   int
}

// KeyStep returns a Step for a command key.
func KeyStep(c Command) Step {
	return Step{Command: c, Index: -1}
}

// IndexStep returns a Step for an array index.
func IndexStep(i int) Step {
	return Step{Command: CmdUnknown, Index: i}
}

// IsIndex reports whether the step is an array index.
func (s Step) IsIndex() bool {
	return s.Index >= 0
}

// Path locates a node relative to the AST root.
type Path []Step

// Append returns a new path with s appended. The receiver is never modified,
// so sibling branches never share a backing array.
func (p Path) Append(s Step) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Last returns the final step of the path and false when the path is empty.
func (p Path) Last() (Step, bool) {
	if len(p) == 0 {
		return Step{}, false
	}
	return p[len(p)-1], true
}

// String renders the path in a JSONPath-like form, e.g. $.where.and[1].eq.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("$")
	for _, s := range p {
		if s.IsIndex() {
			b.WriteString("[")
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteString("]")
			continue
		}
		b.WriteString(".")
		b.WriteString(s.Command.String())
	}
	return b.String()
}

// StatementSeparator joins statements when several are rendered as one text.
const StatementSeparator = ";\n"

// Fragment is compiled SQL text for an object node. Subquery is set when the
// node was a select statement, so embedding sites know to parenthesise it.
type Fragment struct {
	SQL      string
	Subquery bool
}

func (f Fragment) String() string {
	return f.SQL
}
