package compiler

import (
	"strings"

	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// operands renders a compiled argument as a comma-separated operand list.
func operands(args any) string {
	if arr, ok := args.(types.Array); ok {
		return strings.Join(render.Operands(arr), ", ")
	}
	return render.Operand(args)
}

// clause renders "KEYWORD arg".
func clause(keyword string) renderFunc {
	return func(args any, _ *scope) (string, error) {
		return keyword + " " + render.Operand(args), nil
	}
}

// list renders "KEYWORD a, b, c".
func list(keyword string) renderFunc {
	return func(args any, _ *scope) (string, error) {
		return keyword + " " + operands(args), nil
	}
}

// suffix renders "arg KEYWORD".
func suffix(keyword string) renderFunc {
	return func(args any, _ *scope) (string, error) {
		return render.Operand(args) + " " + keyword, nil
	}
}

// compound joins select statements with a set operator. Members are not
// parenthesised; SQLite rejects parenthesised compound members.
func compound(operator string) renderFunc {
	return func(args any, _ *scope) (string, error) {
		arr := args.(types.Array)
		return strings.Join(render.Texts(arr), " "+operator+" "), nil
	}
}

func renderSelect(args any, _ *scope) (string, error) {
	return "SELECT " + operands(args), nil
}

func renderFrom(args any, _ *scope) (string, error) {
	return "FROM " + operands(args), nil
}

func renderForUpdate(args any, s *scope) (string, error) {
	if !isTrue(args) {
		return "", nil
	}
	if s.caps.RowLocking == render.RowLockingNone {
		return s.suppressed("FOR UPDATE")
	}
	return "FOR UPDATE", nil
}

func renderInsertInto(args any, s *scope) (string, error) {
	arr, ok := args.(types.Array)
	if !ok {
		return "INSERT INTO " + render.Text(args), nil
	}
	table := "INSERT INTO " + render.Text(arr[0])
	if len(arr) == 1 {
		return table, nil
	}
	cols, ok := arr[1].(types.Array)
	if !ok {
		return "", s.errorf("column list must be an array")
	}
	return table + " (" + strings.Join(render.Texts(cols), ", ") + ")", nil
}

func renderValues(args any, s *scope) (string, error) {
	rows, err := rowsOf(args, s)
	if err != nil {
		return "", err
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = "(" + strings.Join(render.Operands(row), ", ") + ")"
	}
	return "VALUES " + strings.Join(out, ", "), nil
}

// rowsOf accepts either a single row of scalars or an array of rows.
func rowsOf(args any, s *scope) ([]types.Array, error) {
	arr, ok := args.(types.Array)
	if !ok {
		return []types.Array{{args}}, nil
	}
	nested := 0
	for _, el := range arr {
		if _, ok := el.(types.Array); ok {
			nested++
		}
	}
	switch nested {
	case 0:
		return []types.Array{arr}, nil
	case len(arr):
		rows := make([]types.Array, len(arr))
		for i, el := range arr {
			rows[i] = el.(types.Array)
		}
		return rows, nil
	default:
		return nil, s.errorf("rows and scalars cannot be mixed")
	}
}

func renderSet(args any, s *scope) (string, error) {
	pairs, err := rowsOf(args, s)
	if err != nil {
		return "", err
	}
	out := make([]string, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return "", s.errorf("assignment %d must be a [column, value] pair, got %d element(s)", i, len(pair))
		}
		out[i] = render.Text(pair[0]) + " = " + render.Operand(pair[1])
	}
	return "SET " + strings.Join(out, ", "), nil
}

func renderAs(args any, _ *scope) (string, error) {
	arr := args.(types.Array)
	return render.Operand(arr[0]) + " AS " + render.Text(arr[1]), nil
}

// renderRaw emits its argument verbatim.
func renderRaw(args any, _ *scope) (string, error) {
	return render.Text(args), nil
}

// renderEscape renders its argument as dialect-escaped literals.
func renderEscape(args any, s *scope) (string, error) {
	if arr, ok := args.(types.Array); ok {
		out := make([]string, len(arr))
		for i, v := range arr {
			out[i] = render.Literal(s.dialect, v)
		}
		return strings.Join(out, ", "), nil
	}
	return render.Literal(s.dialect, args), nil
}

func renderNothing(any, *scope) (string, error) {
	return "", nil
}
