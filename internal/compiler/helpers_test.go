package compiler

import (
	"errors"
	"testing"

	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

type (
	M = map[string]any
	A = []any
)

func mustCompile(t *testing.T, d types.Dialect, node any) string {
	t.Helper()
	c, err := New(d)
	if err != nil {
		t.Fatalf("New(%s) error = %v", d, err)
	}
	sql, err := c.Compile(node)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return sql
}

func compileErr(t *testing.T, d types.Dialect, node any) *render.StructuralError {
	t.Helper()
	c, err := New(d)
	if err != nil {
		t.Fatalf("New(%s) error = %v", d, err)
	}
	_, err = c.Compile(node)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var se *render.StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected *render.StructuralError, got %T: %v", err, err)
	}
	return se
}

// perDialect holds the expected SQL for each dialect.
type perDialect struct {
	mysql, postgres, sqlite string
}

func (p perDialect) want(d types.Dialect) string {
	switch d {
	case types.MySQL:
		return p.mysql
	case types.Postgres:
		return p.postgres
	default:
		return p.sqlite
	}
}

func same(sql string) perDialect {
	return perDialect{sql, sql, sql}
}

func runDialects(t *testing.T, node any, want perDialect) {
	t.Helper()
	for _, d := range types.Dialects() {
		if got := mustCompile(t, d, node); got != want.want(d) {
			t.Errorf("%s:\n got  %q\n want %q", d, got, want.want(d))
		}
	}
}
