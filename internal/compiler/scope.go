package compiler

import (
	"fmt"
	"log/slog"

	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// scope is the context handed to a renderer. It replaces threading the root
// tree through every call: the raw parent object and the raw ancestors above
// it are held directly, so sibling lookups never re-walk the path.
type scope struct {
	dialect types.Dialect
	caps    render.Capabilities
	logger  *slog.Logger

	// path ends with the command being rendered.
	path types.Path
	// parent is the uncompiled object holding the command.
	parent types.Object
	// ancestors are the uncompiled nodes from the root down to, but not
	// including, parent.
	ancestors []any

	// continues is set by a renderer whose output extends the list rendered
	// by the previous sibling.
	continues bool
	// next holds whole statements the renderer emits after its own output.
	next []string
}

// neighbour returns the raw value of a sibling command in the parent object.
// Both "name" and "$name" spellings are matched. Undefined values count as
// absent. The value is uncompiled.
func (s *scope) neighbour(c types.Command) (any, bool) {
	return lookup(s.parent, c)
}

// truthy reports whether a sibling command is present with a true value.
func (s *scope) truthy(c types.Command) bool {
	v, ok := s.neighbour(c)
	return ok && isTrue(v)
}

// ancestor returns the raw node n levels above the parent. ancestor(0) is the
// node directly holding the parent object.
func (s *scope) ancestor(n int) (any, bool) {
	i := len(s.ancestors) - 1 - n
	if i < 0 {
		return nil, false
	}
	return s.ancestors[i], true
}

func (s *scope) negated() bool {
	return isNegated(s.path)
}

func (s *scope) command() types.Command {
	last, _ := s.path.Last()
	return last.Command
}

func (s *scope) errorf(format string, args ...any) error {
	return render.NewStructuralError(s.path, s.dialect, format, args...)
}

// suppressed logs a construct the dialect cannot express and returns the
// empty fragment that drops it from the statement.
func (s *scope) suppressed(construct string) (string, error) {
	s.logger.Debug("construct not supported by dialect; omitted",
		"construct", construct,
		"command", s.command().String(),
		"dialect", s.dialect.String(),
		"path", s.path.String(),
	)
	return "", nil
}

func (s *scope) quote(name string) string {
	return render.QuoteIdentifier(s.dialect, name)
}

// columnName returns the quoted name of the column defined by the parent
// object.
func (s *scope) columnName() (string, error) {
	v, ok := s.neighbour(types.CmdName)
	if !ok {
		return "", s.errorf("column definition has no name")
	}
	return s.quote(render.Text(v)), nil
}

func lookup(obj types.Object, c types.Command) (any, bool) {
	if obj == nil {
		return nil, false
	}
	name := c.String()
	for _, key := range []string{name, "$" + name} {
		if v, ok := obj[key]; ok && !types.IsUndefined(v) {
			return normalize(v), true
		}
	}
	return nil, false
}

func isTrue(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "false" && x != "0"
	default:
		return fmt.Sprint(x) != "0"
	}
}
