// Package sqlite provides the SQLite dialect renderer for ormql.
package sqlite

import (
	"github.com/zoobzio/ormql/internal/compiler"
	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// Renderer implements the SQLite dialect renderer.
type Renderer struct {
	compiler *compiler.Compiler
}

// New creates a new SQLite renderer.
func New(opts ...compiler.Option) *Renderer {
	c, err := compiler.New(types.SQLite, opts...)
	if err != nil {
		panic(err)
	}
	return &Renderer{compiler: c}
}

// Render compiles an AST node to a QueryResult with SQLite SQL.
//
// SQLite has no row locking, comments, native enums, inline indexes or
// column modification; those constructs are omitted. Auto-increment columns
// become INTEGER PRIMARY KEY, and ALTER TABLE with several definitions
// expands to one statement per definition.
func (r *Renderer) Render(node any) (*types.QueryResult, error) {
	return r.compiler.Result(node)
}

// Dialect returns types.SQLite.
func (r *Renderer) Dialect() types.Dialect {
	return types.SQLite
}

// Capabilities returns the SQL features supported by SQLite.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.CapabilitiesFor(types.SQLite)
}
