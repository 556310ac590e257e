package postgres

import (
	"errors"
	"testing"

	"github.com/zoobzio/ormql"
	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

var _ ormql.Renderer = (*Renderer)(nil)

type (
	M = map[string]any
	A = []any
)

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.Dialect() != types.Postgres {
		t.Errorf("Dialect() = %s, want postgres", r.Dialect())
	}
}

func TestRender_SimpleSelect(t *testing.T) {
	r := New()
	result, err := r.Render(M{"select": A{"id", "name"}, "from": "users"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	expected := "SELECT id, name FROM users"
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
	if result.Dialect != types.Postgres {
		t.Errorf("Dialect = %s, want postgres", result.Dialect)
	}
}

func TestRender_SelectForUpdate(t *testing.T) {
	r := New()
	result, err := r.Render(M{"select": "*", "from": "jobs", "where": M{"eq": A{"state", M{"escape": "queued"}}}, "for_update": true})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	expected := "SELECT * FROM jobs WHERE state = 'queued' FOR UPDATE"
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestRender_CreateTable(t *testing.T) {
	r := New()
	result, err := r.Render(M{
		"create_table": "accounts",
		"definitions": A{
			M{"name": "id", "data_type": "bigint", "not_null": true, "auto_increment": true},
			M{"name": "balance", "data_type": "int", "unsigned": true, "default": 0},
			M{"name": "tier", "data_type": "enum", "enum_values": A{"free", "pro"}},
			M{"name": "opened_at", "data_type": "datetime", "comment": "utc"},
			M{"constraint": "primary_key", "fields": A{"id"}},
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	expected := `CREATE TABLE accounts (` +
		`"id" BIGINT NOT NULL GENERATED BY DEFAULT AS IDENTITY, ` +
		`"balance" INT CHECK ("balance" >= 0) DEFAULT 0, ` +
		`"tier" TEXT CHECK ("tier" IN ('free', 'pro')), ` +
		`"opened_at" TIMESTAMP, ` +
		`PRIMARY KEY ("id"))`
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestRender_ModifyColumn(t *testing.T) {
	r := New()
	result, err := r.Render(M{
		"alter_table": "accounts",
		"definitions": A{
			M{"alter_operation": "modify", "name": "balance", "data_type": "bigint", "default": 0, "auto_increment": false},
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	expected := `ALTER TABLE accounts ALTER COLUMN "balance" TYPE BIGINT, ALTER COLUMN "balance" SET DEFAULT 0`
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestRender_GroupConcat(t *testing.T) {
	r := New()
	result, err := r.Render(M{"select": M{"group_concat": M{"distinct": "tag"}}, "from": "tags"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	expected := "SELECT STRING_AGG(DISTINCT tag, ',') FROM tags"
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestRender_StructuralError(t *testing.T) {
	r := New()
	_, err := r.Render(M{"select": "*", "from": "t", "where": M{"in": A{A{"a", "b"}, A{1, 2}}}})
	var se *render.StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if se.Path.String() != "$.where.in" {
		t.Errorf("Path = %s, want $.where.in", se.Path)
	}
}

func TestCapabilities(t *testing.T) {
	caps := New().Capabilities()

	if caps.RowLocking != render.RowLockingBasic {
		t.Errorf("RowLocking = %v, want RowLockingBasic", caps.RowLocking)
	}
	if caps.AutoIncrement != render.AutoIncrementIdentity {
		t.Errorf("AutoIncrement = %v, want AutoIncrementIdentity", caps.AutoIncrement)
	}
	if caps.Unsigned != render.UnsignedCheck {
		t.Errorf("Unsigned = %v, want UnsignedCheck", caps.Unsigned)
	}
	if caps.NativeEnum {
		t.Error("NativeEnum should be false")
	}
	if caps.Comments {
		t.Error("Comments should be false")
	}
	if !caps.ColumnModification {
		t.Error("ColumnModification should be true")
	}
}
