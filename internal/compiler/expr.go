package compiler

import (
	"strings"

	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// logical joins conditions with AND or OR. A negated combinator is wrapped
// in NOT rather than distributed over its members.
func logical(operator string) renderFunc {
	return func(args any, s *scope) (string, error) {
		conds := flatten(args)
		out := make([]string, 0, len(conds))
		for _, c := range conds {
			if text := render.Operand(c); text != "" {
				out = append(out, text)
			}
		}
		if len(out) == 0 {
			return "", nil
		}
		expr := "(" + strings.Join(out, " "+operator+" ") + ")"
		if s.negated() {
			return "NOT " + expr, nil
		}
		return expr, nil
	}
}

// renderNot negates its child. Children that render their own negated form
// have already flipped, and nested nots are resolved by the innermost one,
// so both pass through. Anything else is wrapped in NOT unless an enclosing
// not cancels it.
func renderNot(args any, s *scope) (string, error) {
	if _, ok := args.(types.Array); ok {
		return "", s.errorf("expected a single condition")
	}
	text := render.Operand(args)
	if text == "" {
		return "", nil
	}
	raw, _ := s.neighbour(types.CmdNot)
	if obj, ok := raw.(types.Object); ok && handlesNegation(obj) {
		return text, nil
	}
	if s.negated() {
		return text, nil
	}
	return "NOT (" + text + ")", nil
}

// handlesNegation reports whether every command in obj consumes an
// enclosing negation itself.
func handlesNegation(obj types.Object) bool {
	found := false
	for k, v := range obj {
		if types.IsUndefined(v) {
			continue
		}
		c, ok := types.LookupCommand(k)
		if !ok {
			continue
		}
		if c != types.CmdNot && !metaTable[c].negatable {
			return false
		}
		found = true
	}
	return found
}

// renderEq renders equality with NULL handling. A tuple comparison holding
// a NULL on either side is decomposed into per-element comparisons, since
// row equality with NULL never matches.
func renderEq(args any, s *scope) (string, error) {
	arr := args.(types.Array)
	negated := s.negated()
	left, lTuple := arr[0].(types.Array)
	right, rTuple := arr[1].(types.Array)

	switch {
	case !lTuple && !rTuple:
		return equality(arr[0], arr[1], negated), nil
	case lTuple != rTuple:
		return "", s.errorf("tuple equality requires tuples on both sides")
	case len(left) != len(right):
		return "", s.errorf("tuple lengths differ: %d and %d", len(left), len(right))
	case len(left) == 0:
		return "", s.errorf("tuple equality requires at least one element")
	}

	if hasNull(left) || hasNull(right) {
		parts := make([]string, len(left))
		for i := range left {
			parts[i] = equality(left[i], right[i], negated)
		}
		if negated {
			return "(" + strings.Join(parts, " OR ") + ")", nil
		}
		return strings.Join(parts, " AND "), nil
	}
	return tuple(left) + " " + string(types.EQ.Signed(negated)) + " " + tuple(right), nil
}

func equality(left, right any, negated bool) string {
	if render.IsNull(left) && !render.IsNull(right) {
		left, right = right, left
	}
	if render.IsNull(right) {
		return render.Operand(left) + " " + string(types.IsNull.Signed(negated))
	}
	return render.Operand(left) + " " + string(types.EQ.Signed(negated)) + " " + render.Operand(right)
}

func hasNull(vs types.Array) bool {
	for _, v := range vs {
		if render.IsNull(v) {
			return true
		}
	}
	return false
}

func tuple(vs types.Array) string {
	return "(" + strings.Join(render.Operands(vs), ", ") + ")"
}

// comparison renders a binary operator that flips under negation.
func comparison(op types.Operator) renderFunc {
	return func(args any, s *scope) (string, error) {
		arr := args.(types.Array)
		signed := string(op.Signed(s.negated()))
		left, lTuple := arr[0].(types.Array)
		right, rTuple := arr[1].(types.Array)
		switch {
		case !lTuple && !rTuple:
			return render.Operand(arr[0]) + " " + signed + " " + render.Operand(arr[1]), nil
		case lTuple != rTuple:
			return "", s.errorf("tuple comparison requires tuples on both sides")
		case len(left) != len(right):
			return "", s.errorf("tuple lengths differ: %d and %d", len(left), len(right))
		}
		return tuple(left) + " " + signed + " " + tuple(right), nil
	}
}

// renderIn renders membership. The right side is a list, a tuple list when
// the left side is a tuple, or a subquery.
func renderIn(args any, s *scope) (string, error) {
	arr := args.(types.Array)
	negated := s.negated()
	op := string(types.IN.Signed(negated))
	left, lTuple := arr[0].(types.Array)

	lhs := render.Operand(arr[0])
	if lTuple {
		if len(left) == 0 {
			return "", s.errorf("tuple membership requires at least one element")
		}
		lhs = tuple(left)
	}

	switch right := arr[1].(type) {
	case types.Array:
		if len(right) == 0 {
			// Nothing is a member of the empty set.
			if negated {
				return "TRUE", nil
			}
			return "FALSE", nil
		}
		items := make([]string, len(right))
		for i, el := range right {
			row, isTuple := el.(types.Array)
			switch {
			case lTuple && !isTuple:
				return "", s.errorf("element %d must be a tuple of %d", i, len(left))
			case lTuple && len(row) != len(left):
				return "", s.errorf("element %d has %d values, expected %d", i, len(row), len(left))
			case !lTuple && isTuple:
				return "", s.errorf("element %d is a tuple but the left side is not", i)
			case isTuple:
				items[i] = tuple(row)
			default:
				items[i] = render.Operand(el)
			}
		}
		return lhs + " " + op + " (" + strings.Join(items, ", ") + ")", nil
	case types.Fragment:
		if right.Subquery {
			return lhs + " " + op + " " + render.Operand(right), nil
		}
		return lhs + " " + op + " (" + right.SQL + ")", nil
	default:
		if lTuple {
			return "", s.errorf("tuple membership requires a list or subquery")
		}
		return lhs + " " + op + " (" + render.Text(right) + ")", nil
	}
}

func renderExists(args any, s *scope) (string, error) {
	op := string(types.EXISTS.Signed(s.negated()))
	if f, ok := args.(types.Fragment); ok && f.Subquery {
		return op + " " + render.Operand(f), nil
	}
	return op + " (" + render.Text(args) + ")", nil
}

func renderBetween(args any, s *scope) (string, error) {
	arr := args.(types.Array)
	op := string(types.BETWEEN.Signed(s.negated()))
	return render.Operand(arr[0]) + " " + op + " " + render.Operand(arr[1]) + " AND " + render.Operand(arr[2]), nil
}

// function renders NAME(args).
func function(name string) renderFunc {
	return func(args any, _ *scope) (string, error) {
		return name + "(" + operands(args) + ")", nil
	}
}

// renderConcat uses the || operator on SQLite, which lacks CONCAT before
// 3.44.
func renderConcat(args any, s *scope) (string, error) {
	if s.dialect == types.SQLite {
		return "(" + strings.Join(render.Operands(flatten(args)), " || ") + ")", nil
	}
	return "CONCAT(" + operands(args) + ")", nil
}

// renderGroupConcat accepts an expression and an optional separator literal.
func renderGroupConcat(args any, s *scope) (string, error) {
	parts := flatten(args)
	expr := render.Operand(parts[0])
	sep := ""
	if len(parts) > 1 {
		sep = render.Operand(parts[1])
	}
	switch s.dialect {
	case types.Postgres:
		if sep == "" {
			sep = "','"
		}
		return "STRING_AGG(" + expr + ", " + sep + ")", nil
	case types.MySQL:
		if sep != "" {
			return "GROUP_CONCAT(" + expr + " SEPARATOR " + sep + ")", nil
		}
	default:
		if sep != "" {
			return "GROUP_CONCAT(" + expr + ", " + sep + ")", nil
		}
	}
	return "GROUP_CONCAT(" + expr + ")", nil
}

func renderIf(args any, s *scope) (string, error) {
	arr := args.(types.Array)
	cond, then, otherwise := render.Operand(arr[0]), render.Operand(arr[1]), render.Operand(arr[2])
	if s.dialect == types.MySQL {
		return "IF(" + cond + ", " + then + ", " + otherwise + ")", nil
	}
	return "CASE WHEN " + cond + " THEN " + then + " ELSE " + otherwise + " END", nil
}

func renderNow(_ any, s *scope) (string, error) {
	if s.dialect == types.SQLite {
		return "CURRENT_TIMESTAMP", nil
	}
	return "NOW()", nil
}

// arithmetic renders a parenthesised infix expression.
func arithmetic(operator string) renderFunc {
	return func(args any, _ *scope) (string, error) {
		return "(" + strings.Join(render.Operands(flatten(args)), " "+operator+" ") + ")", nil
	}
}
