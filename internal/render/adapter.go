package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zoobzio/ormql/internal/types"
)

// QuoteIdentifier quotes a table or column name for the dialect.
// MySQL uses backticks, Postgres and SQLite use double quotes. A name that is
// already quoted for the dialect is returned unchanged.
func QuoteIdentifier(d types.Dialect, name string) string {
	q := `"`
	if d == types.MySQL {
		q = "`"
	}
	if len(name) >= 2 && strings.HasPrefix(name, q) && strings.HasSuffix(name, q) {
		return name
	}
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// QuoteString renders s as a single-quoted string literal. MySQL treats
// backslash as an escape character, so it is doubled there as well.
func QuoteString(d types.Dialect, s string) string {
	if d == types.MySQL {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// IsNull reports whether a value is the SQL NULL sentinel: a nil value or the
// case-insensitive string "null".
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.EqualFold(x, "null")
	case types.Fragment:
		return !x.Subquery && strings.EqualFold(x.SQL, "null")
	default:
		return false
	}
}

// WrapSubquery parenthesises a select fragment. The result is no longer tagged
// as a subquery, so wrapping twice yields the same text as wrapping once.
func WrapSubquery(f types.Fragment) types.Fragment {
	if !f.Subquery {
		return f
	}
	return types.Fragment{SQL: "(" + f.SQL + ")"}
}

// Text renders a compiled value as SQL text. Strings pass through verbatim,
// since they are identifiers or already-escaped literals.
func Text(v any) string {
	switch x := v.(type) {
	case types.Fragment:
		return x.SQL
	case string:
		return x
	case nil:
		return "NULL"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return "'" + x.UTC().Format(time.DateTime) + "'"
	case []any:
		return strings.Join(Texts(x), ", ")
	default:
		return fmt.Sprint(x)
	}
}

// Texts renders each element with Text.
func Texts(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = Text(v)
	}
	return out
}

// Operand renders a value that may be embedded inside a larger expression,
// parenthesising it when it is a select statement.
func Operand(v any) string {
	if f, ok := v.(types.Fragment); ok {
		return WrapSubquery(f).SQL
	}
	return Text(v)
}

// Operands renders each element with Operand.
func Operands(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = Operand(v)
	}
	return out
}

// Literal renders a raw value as an escaped SQL literal for the dialect.
func Literal(d types.Dialect, v any) string {
	switch x := v.(type) {
	case string:
		return QuoteString(d, x)
	case types.Fragment:
		return Operand(x)
	default:
		return Text(x)
	}
}
