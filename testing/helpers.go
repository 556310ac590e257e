// Package testing provides test utilities for ormql.
package testing

import (
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/ormql"
	"github.com/zoobzio/ormql/mysql"
	"github.com/zoobzio/ormql/postgres"
	"github.com/zoobzio/ormql/schema"
	"github.com/zoobzio/ormql/sqlite"
)

// Obj is an AST object node.
type Obj = map[string]any

// Arr is an AST array node.
type Arr = []any

// TestSchema creates a schema index for testing.
// Includes users, posts, comments, orders, and products tables.
func TestSchema(t *testing.T) *schema.Index {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("body", "text"))
	posts.AddColumn(dbml.NewColumn("views", "int"))
	project.AddTable(posts)

	comments := dbml.NewTable("comments")
	comments.AddColumn(dbml.NewColumn("id", "bigint"))
	comments.AddColumn(dbml.NewColumn("post_id", "bigint"))
	comments.AddColumn(dbml.NewColumn("body", "text"))
	project.AddTable(comments)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("price", "numeric"))
	products.AddColumn(dbml.NewColumn("stock", "int"))
	project.AddTable(products)

	idx, err := schema.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return idx
}

// Renderers returns one renderer per dialect, keyed by dialect.
func Renderers() map[ormql.Dialect]ormql.Renderer {
	return map[ormql.Dialect]ormql.Renderer{
		ormql.MySQL:    mysql.New(),
		ormql.Postgres: postgres.New(),
		ormql.SQLite:   sqlite.New(),
	}
}

// MustRender compiles node with r and fails the test on error.
func MustRender(t *testing.T, r ormql.Renderer, node any) string {
	t.Helper()
	result, err := r.Render(node)
	if err != nil {
		t.Fatalf("Render(%s) error = %v", r.Dialect(), err)
	}
	return result.SQL
}

// MustRenderStatements compiles node with r and returns its statements,
// failing the test on error.
func MustRenderStatements(t *testing.T, r ormql.Renderer, node any) []string {
	t.Helper()
	result, err := r.Render(node)
	if err != nil {
		t.Fatalf("Render(%s) error = %v", r.Dialect(), err)
	}
	return result.Statements
}

// UsersTable is a CREATE TABLE node exercising auto-increment, unsigned,
// enum, default and key definitions.
func UsersTable() Obj {
	return Obj{
		"create_table":  "users",
		"if_not_exists": true,
		"definitions": Arr{
			Obj{"name": "id", "data_type": "int", "unsigned": true, "not_null": true, "auto_increment": true},
			Obj{"name": "email", "data_type": "varchar", "precision": 255, "not_null": true, "unique": true},
			Obj{"name": "role", "data_type": "enum", "enum_values": Arr{"member", "admin"}, "default": "'member'"},
			Obj{"name": "age", "data_type": "int", "unsigned": true},
			Obj{"constraint": "primary_key", "fields": Arr{"id"}},
		},
	}
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertStructuralError checks that err is a *ormql.StructuralError located
// at path (for example "$.where.eq") and returns it.
func AssertStructuralError(t *testing.T, err error, path string) *ormql.StructuralError {
	t.Helper()
	var se *ormql.StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("Expected *StructuralError, got %T: %v", err, err)
	}
	if got := se.Path.String(); got != path {
		t.Errorf("StructuralError path = %s, want %s", got, path)
	}
	return se
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}
