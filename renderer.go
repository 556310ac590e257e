package ormql

// Renderer defines the interface for SQL dialect-specific rendering.
// Implementations compile an AST node to SQL for one dialect.
type Renderer interface {
	// Render compiles an AST node to a QueryResult.
	Render(node any) (*QueryResult, error)

	// Dialect returns the dialect the renderer targets.
	Dialect() Dialect

	// Capabilities returns the SQL features the dialect supports.
	Capabilities() Capabilities
}
