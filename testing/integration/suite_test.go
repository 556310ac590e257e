package integration

import (
	"context"
	"database/sql"
	"testing"

	"github.com/zoobzio/ormql"
	"github.com/zoobzio/ormql/internal/runner"
	ormqltesting "github.com/zoobzio/ormql/testing"
)

type (
	Obj = ormqltesting.Obj
	Arr = ormqltesting.Arr
)

// statements compiles node into executable statements.
func statements(t *testing.T, r ormql.Renderer, node any) []string {
	t.Helper()
	return ormqltesting.MustRenderStatements(t, r, node)
}

// apply compiles and executes nodes in one transaction.
func apply(t *testing.T, db *sql.DB, r ormql.Renderer, nodes ...any) {
	t.Helper()
	var stmts []string
	for _, node := range nodes {
		stmts = append(stmts, statements(t, r, node)...)
	}
	if _, err := runner.Apply(context.Background(), db, stmts); err != nil {
		t.Fatalf("apply failed: %v\nSQL: %q", err, stmts)
	}
}

// count runs a compiled single-value query.
func count(t *testing.T, db *sql.DB, r ormql.Renderer, node any) int {
	t.Helper()
	sqlText := ormqltesting.MustRender(t, r, node)
	var n int
	if err := db.QueryRowContext(context.Background(), sqlText).Scan(&n); err != nil {
		t.Fatalf("query failed: %v\nSQL: %s", err, sqlText)
	}
	return n
}

func countUsers(where any) Obj {
	return Obj{"select": Obj{"count": "*"}, "from": "users", "where": where}
}

func commentsTable() Obj {
	return Obj{
		"create_table": "comments",
		"definitions": Arr{
			Obj{"name": "id", "data_type": "int", "unsigned": true, "not_null": true, "auto_increment": true},
			Obj{"name": "user_id", "data_type": "int", "unsigned": true},
			Obj{"name": "body", "data_type": "text", "comment": "markdown"},
			Obj{"constraint": "primary_key", "fields": Arr{"id"}},
			Obj{
				"constraint": "foreign_key",
				"name":       "fk_comments_user",
				"fields":     Arr{"user_id"},
				"references": Obj{"table": "users", "fields": Arr{"id"}},
				"on_delete":  "cascade",
			},
		},
	}
}

// runSuite exercises DDL and DML compiled for r against db.
func runSuite(t *testing.T, db *sql.DB, r ormql.Renderer) {
	t.Helper()

	apply(t, db, r,
		Obj{"drop_table": Arr{"comments", "users"}, "if_exists": true},
		ormqltesting.UsersTable(),
		commentsTable(),
	)
	t.Cleanup(func() {
		stmts := statements(t, r, Obj{"drop_table": Arr{"comments", "users"}, "if_exists": true})
		_, _ = runner.Apply(context.Background(), db, stmts)
	})

	t.Run("insert", func(t *testing.T) {
		apply(t, db, r, Obj{
			"insert_into": Arr{"users", Arr{"email", "role", "age"}},
			"values": Arr{
				Arr{Obj{"escape": "a@x.io"}, Obj{"escape": "admin"}, 30},
				Arr{Obj{"escape": "b@x.io"}, Obj{"escape": "member"}, nil},
			},
		})
		if n := count(t, db, r, countUsers(Obj{"eq": Arr{1, 1}})); n != 2 {
			t.Errorf("count = %d, want 2", n)
		}
	})

	t.Run("null-safe tuple equality", func(t *testing.T) {
		where := Obj{"eq": Arr{Arr{"email", "age"}, Arr{Obj{"escape": "b@x.io"}, nil}}}
		if n := count(t, db, r, countUsers(where)); n != 1 {
			t.Errorf("count = %d, want 1", n)
		}
		if n := count(t, db, r, countUsers(Obj{"not": where})); n != 1 {
			t.Errorf("negated count = %d, want 1", n)
		}
	})

	t.Run("empty membership", func(t *testing.T) {
		if n := count(t, db, r, countUsers(Obj{"in": Arr{"id", Arr{}}})); n != 0 {
			t.Errorf("count = %d, want 0", n)
		}
		if n := count(t, db, r, countUsers(Obj{"not": Obj{"in": Arr{"id", Arr{}}}})); n != 2 {
			t.Errorf("negated count = %d, want 2", n)
		}
	})

	t.Run("subquery membership", func(t *testing.T) {
		apply(t, db, r, Obj{
			"insert_into": Arr{"comments", Arr{"user_id", "body"}},
			"values":      Arr{Obj{"select": Obj{"max": "id"}, "from": "users"}, Obj{"escape": "hi"}},
		})
		where := Obj{"in": Arr{"id", Obj{"select": "user_id", "from": "comments"}}}
		if n := count(t, db, r, countUsers(where)); n != 1 {
			t.Errorf("count = %d, want 1", n)
		}
	})

	t.Run("alter and update", func(t *testing.T) {
		apply(t, db, r, Obj{
			"alter_table": "users",
			"definitions": Arr{Obj{"alter_operation": "add", "name": "nickname", "data_type": "varchar", "precision": 32}},
		})
		apply(t, db, r, Obj{
			"alter_table": "users",
			"definitions": Arr{Obj{"alter_operation": "rename", "old_name": "nickname", "name": "handle"}},
		})
		apply(t, db, r, Obj{
			"update": "users",
			"set":    Arr{"handle", Obj{"escape": "bee"}},
			"where":  Obj{"eq": Arr{"email", Obj{"escape": "b@x.io"}}},
		})
		if n := count(t, db, r, countUsers(Obj{"eq": Arr{"handle", Obj{"escape": "bee"}}})); n != 1 {
			t.Errorf("count = %d, want 1", n)
		}
	})

	t.Run("for update", func(t *testing.T) {
		tx, err := db.BeginTx(context.Background(), nil)
		if err != nil {
			t.Fatalf("begin: %v", err)
		}
		defer func() { _ = tx.Rollback() }()

		sqlText := ormqltesting.MustRender(t, r, Obj{"select": "id", "from": "users", "where": Obj{"gt": Arr{"id", 0}}, "for_update": true})
		rows, err := tx.QueryContext(context.Background(), sqlText)
		if err != nil {
			t.Fatalf("query failed: %v\nSQL: %s", err, sqlText)
		}
		_ = rows.Close()
	})

	t.Run("delete cascades", func(t *testing.T) {
		apply(t, db, r, Obj{"delete_from": "users", "where": Obj{"not": Obj{"eq": Arr{"role", Obj{"escape": "admin"}}}}})
		if n := count(t, db, r, countUsers(Obj{"eq": Arr{1, 1}})); n != 1 {
			t.Errorf("count = %d, want 1", n)
		}
	})

	t.Run("truncate", func(t *testing.T) {
		apply(t, db, r, Obj{"truncate_table": "comments"})
		n := count(t, db, r, Obj{"select": Obj{"count": "*"}, "from": "comments"})
		if n != 0 {
			t.Errorf("count = %d, want 0", n)
		}
	})
}
