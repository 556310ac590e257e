// Package ormql compiles declarative JSON-shaped ASTs into SQL for MySQL,
// Postgres and SQLite.
//
// An AST is a tree of objects whose keys are reserved command names. Key
// order carries no meaning: siblings are always emitted in a fixed,
// per-dialect order, so the same tree compiles to byte-identical SQL on
// every call.
//
// # Basic Usage
//
//	sql, err := ormql.Compile(map[string]any{
//		"select": []any{"id", "name"},
//		"from":   "users",
//		"where":  map[string]any{"not": map[string]any{"eq": []any{"deleted_at", nil}}},
//	}, ormql.Postgres)
//	// sql: SELECT id, name FROM users WHERE deleted_at IS NOT NULL
//
// Strings are emitted verbatim: they are identifiers or already-escaped
// literals. Use the escape command to quote a value for the dialect.
//
// # Dialect Renderers
//
// Each dialect has a renderer implementing Renderer:
//
//	import "github.com/zoobzio/ormql/mysql"
//
//	result, err := ormql.Render(node, mysql.New())
//
// Constructs a dialect cannot express (FOR UPDATE on SQLite, comments outside
// MySQL, inline indexes outside MySQL) compile to nothing, so one tree can be
// compiled for every dialect.
//
// # Errors
//
// A node whose shape a command cannot accept, such as an equality with three
// operands, fails with a *StructuralError carrying the path to the node.
// Keys that are not commands are ignored, so callers can keep bookkeeping
// fields in the tree.
package ormql

import (
	"log/slog"

	"github.com/zoobzio/ormql/internal/compiler"
)

// Option configures compilation.
type Option = compiler.Option

// WithLogger sets the logger that receives debug output about skipped keys
// and constructs omitted for the dialect.
func WithLogger(l *slog.Logger) Option {
	return compiler.WithLogger(l)
}

// Compile renders node as SQL for dialect d.
func Compile(node any, d Dialect, opts ...Option) (string, error) {
	c, err := compiler.New(d, opts...)
	if err != nil {
		return "", err
	}
	return c.Compile(node)
}

// MustCompile is like Compile but panics on error.
func MustCompile(node any, d Dialect, opts ...Option) string {
	sql, err := Compile(node, d, opts...)
	if err != nil {
		panic(err)
	}
	return sql
}
