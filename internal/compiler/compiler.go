// Package compiler turns AST nodes into SQL text for a single dialect.
package compiler

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// Compiler walks AST nodes and renders them for one dialect. It holds no
// mutable state and is safe for concurrent use.
type Compiler struct {
	dialect types.Dialect
	caps    render.Capabilities
	logger  *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a compiler targeting d.
func New(d types.Dialect, opts ...Option) (*Compiler, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownDialect, d)
	}
	c := &Compiler{
		dialect: d,
		caps:    render.CapabilitiesFor(d),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dialect returns the dialect the compiler targets.
func (c *Compiler) Dialect() types.Dialect {
	return c.dialect
}

// Compile renders node as SQL text. Arrays are compiled element-wise and
// joined with ", "; primitives are returned verbatim.
func (c *Compiler) Compile(node any) (string, error) {
	v, err := c.CompileValue(node)
	if err != nil {
		return "", err
	}
	return render.Text(v), nil
}

// CompileValue renders node without flattening the result: objects yield a
// types.Fragment, arrays a []any of compiled elements, and primitives
// themselves.
func (c *Compiler) CompileValue(node any) (any, error) {
	return c.compile(node, nil, nil)
}

func (c *Compiler) compile(node any, path types.Path, ancestors []any) (any, error) {
	switch n := normalize(node).(type) {
	case types.Object:
		return c.compileObject(n, path, ancestors)
	case types.Array:
		inner := push(ancestors, n)
		out := make(types.Array, len(n))
		for i, el := range n {
			v, err := c.compile(el, path.Append(types.IndexStep(i)), inner)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return n, nil
	}
}

// Statements renders node as a list of SQL statements. An object may expand
// to several statements on dialects that accept one operation per statement.
// Arrays and primitives render as a single statement.
func (c *Compiler) Statements(node any) ([]string, error) {
	if obj, ok := normalize(node).(types.Object); ok {
		stmts, _, err := c.objectStatements(obj, nil, nil)
		return stmts, err
	}
	sql, err := c.Compile(node)
	if err != nil || sql == "" {
		return nil, err
	}
	return []string{sql}, nil
}

// Result renders node into a QueryResult for the compiler's dialect.
func (c *Compiler) Result(node any) (*types.QueryResult, error) {
	stmts, err := c.Statements(node)
	if err != nil {
		return nil, err
	}
	return &types.QueryResult{
		SQL:        strings.Join(stmts, types.StatementSeparator),
		Statements: stmts,
		Dialect:    c.dialect,
	}, nil
}

func (c *Compiler) compileObject(obj types.Object, path types.Path, ancestors []any) (types.Fragment, error) {
	stmts, subquery, err := c.objectStatements(obj, path, ancestors)
	if err != nil {
		return types.Fragment{}, err
	}
	return types.Fragment{
		SQL:      strings.Join(stmts, types.StatementSeparator),
		Subquery: subquery,
	}, nil
}

// objectStatements renders the commands of obj in dialect order. Each
// command output is joined with a space to the statement being built, unless
// the renderer marked it as continuing the previous list or opened further
// statements after it.
func (c *Compiler) objectStatements(obj types.Object, path types.Path, ancestors []any) ([]string, bool, error) {
	inner := push(ancestors, obj)
	stmts := [][]string{make([]string, 0, len(obj))}
	var selects, writes bool

	for _, k := range sortKeys(obj, c.dialect) {
		raw := obj[k.key]
		if types.IsUndefined(raw) {
			continue
		}
		if k.cmd == types.CmdUnknown {
			c.logger.Debug("skipping unknown key", "key", k.key, "path", path.String())
			continue
		}

		s := &scope{
			dialect:   c.dialect,
			caps:      c.caps,
			logger:    c.logger,
			path:      path.Append(types.KeyStep(k.cmd)),
			parent:    obj,
			ancestors: ancestors,
		}
		args, err := c.compile(raw, s.path, inner)
		if err != nil {
			return nil, false, err
		}
		if err := checkArgs(metaTable[k.cmd], raw, args, s); err != nil {
			return nil, false, err
		}
		out, err := renderers[k.cmd](args, s)
		if err != nil {
			return nil, false, err
		}
		if out == "" {
			continue
		}

		parts := stmts[len(stmts)-1]
		if s.continues && len(parts) > 0 {
			parts[len(parts)-1] += ", " + out
		} else {
			stmts[len(stmts)-1] = append(parts, out)
		}
		for _, next := range s.next {
			stmts = append(stmts, []string{next})
		}

		switch k.cmd {
		case types.CmdSelect, types.CmdUnion, types.CmdUnionAll:
			selects = true
		case types.CmdInsertInto, types.CmdCreateTable:
			writes = true
		}
	}

	out := make([]string, 0, len(stmts))
	for _, parts := range stmts {
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, " "))
		}
	}
	return out, selects && !writes, nil
}

// checkArgs enforces the declared arity of a command and, for aggregates,
// whether * and DISTINCT are accepted.
func checkArgs(m meta, raw, args any, s *scope) error {
	if m.checked {
		n := 1
		if arr, ok := args.(types.Array); ok {
			n = len(arr)
		}
		if n < m.minArgs {
			return s.errorf("expected at least %d argument(s), got %d", m.minArgs, n)
		}
		if m.maxArgs >= 0 && n > m.maxArgs {
			return s.errorf("expected at most %d argument(s), got %d", m.maxArgs, n)
		}
	}
	if !m.aggregate {
		return nil
	}
	for _, arg := range flatten(args) {
		if str, ok := arg.(string); ok && str == "*" && !m.star {
			return s.errorf("* is not accepted")
		}
	}
	if !m.distinct {
		for _, el := range flatten(normalize(raw)) {
			if obj, ok := el.(types.Object); ok {
				if _, found := lookup(obj, types.CmdDistinct); found {
					return s.errorf("DISTINCT is not accepted")
				}
			}
		}
	}
	return nil
}

func flatten(v any) []any {
	if arr, ok := v.(types.Array); ok {
		return arr
	}
	return []any{v}
}

// push returns ancestors with n appended, never sharing the caller's backing
// array.
func push(ancestors []any, n any) []any {
	out := make([]any, len(ancestors), len(ancestors)+1)
	copy(out, ancestors)
	return append(out, n)
}

// normalize converts typed Go slices and string-keyed maps built by callers
// into the generic AST shapes. Byte slices are left alone.
func normalize(node any) any {
	switch n := node.(type) {
	case nil, types.Object, types.Array, string, bool, []byte, types.Fragment:
		return n
	}
	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make(types.Array, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return node
		}
		out := make(types.Object, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	default:
		return node
	}
}
