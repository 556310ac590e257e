// Package mysql provides the MySQL and MariaDB dialect renderer for ormql.
package mysql

import (
	"github.com/zoobzio/ormql/internal/compiler"
	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// Renderer implements the MySQL dialect renderer.
type Renderer struct {
	compiler *compiler.Compiler
}

// New creates a new MySQL renderer.
func New(opts ...compiler.Option) *Renderer {
	c, err := compiler.New(types.MySQL, opts...)
	if err != nil {
		panic(err)
	}
	return &Renderer{compiler: c}
}

// Render compiles an AST node to a QueryResult with MySQL SQL.
func (r *Renderer) Render(node any) (*types.QueryResult, error) {
	return r.compiler.Result(node)
}

// Dialect returns types.MySQL.
func (r *Renderer) Dialect() types.Dialect {
	return types.MySQL
}

// Capabilities returns the SQL features supported by MySQL.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.CapabilitiesFor(types.MySQL)
}
