package ormql

import (
	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// Dialect identifies the SQL flavour a compilation targets.
type Dialect = types.Dialect

// Supported dialects.
const (
	MySQL    = types.MySQL
	Postgres = types.Postgres
	SQLite   = types.SQLite
)

// ErrUnknownDialect is returned for dialect names and values outside the
// supported set.
var ErrUnknownDialect = types.ErrUnknownDialect

// ParseDialect resolves a dialect name such as "mysql", "postgres" or
// "sqlite". Common aliases are accepted.
func ParseDialect(name string) (Dialect, error) {
	return types.ParseDialect(name)
}

// Dialects lists the supported dialects.
func Dialects() []Dialect {
	return types.Dialects()
}

// Command is a reserved AST key.
type Command = types.Command

// LookupCommand resolves an AST key to its command.
func LookupCommand(key string) (Command, bool) {
	return types.LookupCommand(key)
}

// Undefined marks an object key as absent.
var Undefined = types.Undefined

// Fragment is compiled SQL text tagged with whether it is a select statement.
type Fragment = types.Fragment

// Path locates a node relative to the AST root.
type Path = types.Path

// QueryResult contains rendered SQL and the dialect it targets.
type QueryResult = types.QueryResult

// StructuralError reports an AST node a command cannot accept.
type StructuralError = render.StructuralError

// Capabilities describes the SQL features a dialect supports.
type Capabilities = render.Capabilities

// WrapSubquery parenthesises a select fragment. Wrapping is idempotent.
func WrapSubquery(f Fragment) Fragment {
	return render.WrapSubquery(f)
}
