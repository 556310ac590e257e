package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/dbml"
)

type (
	M = map[string]any
	A = []any
)

func testIndex(t *testing.T) *Index {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("nick", "varchar"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	project.AddTable(posts)

	idx, err := NewFromDBML(project)
	if err != nil {
		t.Fatalf("NewFromDBML() error = %v", err)
	}
	return idx
}

func TestNewFromDBML_Nil(t *testing.T) {
	if _, err := NewFromDBML(nil); err == nil {
		t.Error("expected error for nil project")
	}
}

func TestIndex_Lookups(t *testing.T) {
	idx := testIndex(t)

	if !idx.HasTable("users") {
		t.Error("users should be known")
	}
	if idx.HasTable("accounts") {
		t.Error("accounts should be unknown")
	}
	if !idx.HasColumn("posts", "user_id") {
		t.Error("posts.user_id should be known")
	}
	if idx.HasColumn("posts", "title") {
		t.Error("posts.title should be unknown")
	}
}

func TestCheck_Valid(t *testing.T) {
	idx := testIndex(t)

	nodes := []any{
		M{"select": "*", "from": "users u", "where": M{"in": A{"id", M{"select": "user_id", "from": "posts"}}}},
		M{"insert_into": A{"users", A{"id", "email"}}, "values": A{1, "'a@b.c'"}},
		M{"update": "posts", "set": A{"user_id", 2}},
		M{"delete_from": "users"},
		M{"drop_table": A{"users", "posts"}},
		M{"drop_index": "ix", "on_table": "users"},
	}
	for i, node := range nodes {
		if err := idx.Check(node); err != nil {
			t.Errorf("node %d: Check() error = %v", i, err)
		}
	}
}

func TestCheck_UnknownTables(t *testing.T) {
	idx := testIndex(t)

	err := idx.Check(M{
		"select": "*",
		"from":   "accounts",
		"where":  M{"exists": M{"select": "1", "from": "ledgers"}},
	})
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{`"accounts" at $.from`, `"ledgers" at $.where.exists.from`} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestCheck_CreatedTableIsKnown(t *testing.T) {
	idx := testIndex(t)

	err := idx.Check(M{
		"create_table": "comments",
		"definitions": A{
			M{"name": "post_id", "data_type": "bigint"},
			M{
				"constraint": "foreign_key",
				"fields":     A{"post_id"},
				"references": M{"table": "posts", "fields": A{"id"}},
			},
		},
	})
	if err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestCheck_UnknownReference(t *testing.T) {
	idx := testIndex(t)

	err := idx.Check(M{
		"create_table": "comments",
		"definitions": A{
			M{"constraint": "foreign_key", "fields": A{"thread_id"}, "references": M{"table": "threads", "fields": A{"id"}}},
		},
	})
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
	if !strings.Contains(err.Error(), "$.definitions[0].references.table") {
		t.Errorf("error %q missing reference path", err)
	}
}

func TestCheck_AlterColumns(t *testing.T) {
	idx := testIndex(t)

	err := idx.Check(M{
		"alter_table": "users",
		"definitions": A{
			M{"alter_operation": "add", "name": "age", "data_type": "int"},
			M{"alter_operation": "rename", "old_name": "nick", "name": "handle"},
			M{"alter_operation": "drop", "name": "phone"},
			M{"alter_operation": "modify", "old_name": "fax", "name": "pager", "data_type": "text"},
		},
	})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}

	msg := err.Error()
	if !strings.Contains(msg, `"phone"`) || !strings.Contains(msg, `"fax"`) {
		t.Errorf("error %q should name phone and fax", msg)
	}
	if strings.Contains(msg, `"nick"`) || strings.Contains(msg, `"age"`) {
		t.Errorf("error %q names a valid column", msg)
	}
}

func TestCheck_DollarKeys(t *testing.T) {
	idx := testIndex(t)

	if err := idx.Check(M{"$select": "*", "$from": "missing"}); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}
}

func TestNewFromNames(t *testing.T) {
	idx := NewFromNames("events")

	if err := idx.Check(M{"alter_table": "events", "definitions": A{M{"alter_operation": "drop", "name": "anything"}}}); err != nil {
		t.Errorf("Check() error = %v", err)
	}
	if err := idx.Check(M{"truncate_table": "other"}); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}
}
