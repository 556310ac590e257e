// Package postgres provides the PostgreSQL dialect renderer for ormql.
package postgres

import (
	"github.com/zoobzio/ormql/internal/compiler"
	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// Renderer implements the PostgreSQL dialect renderer.
type Renderer struct {
	compiler *compiler.Compiler
}

// New creates a new PostgreSQL renderer.
func New(opts ...compiler.Option) *Renderer {
	c, err := compiler.New(types.Postgres, opts...)
	if err != nil {
		panic(err)
	}
	return &Renderer{compiler: c}
}

// Render compiles an AST node to a QueryResult with PostgreSQL SQL.
//
// Auto-increment columns use identity columns, unsigned columns gain a
// CHECK constraint, enums become TEXT with an IN check, and column
// modification is split into one ALTER COLUMN action per change.
func (r *Renderer) Render(node any) (*types.QueryResult, error) {
	return r.compiler.Result(node)
}

// Dialect returns types.Postgres.
func (r *Renderer) Dialect() types.Dialect {
	return types.Postgres
}

// Capabilities returns the SQL features supported by PostgreSQL.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.CapabilitiesFor(types.Postgres)
}
