package compiler

import (
	"testing"

	"github.com/zoobzio/ormql/internal/types"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		node any
		want string
	}{
		{
			"full",
			M{
				"select":   A{"id", "name"},
				"from":     "users",
				"where":    M{"eq": A{"id", 1}},
				"order_by": M{"desc": "id"},
				"limit":    10,
				"offset":   5,
			},
			"SELECT id, name FROM users WHERE id = 1 ORDER BY id DESC LIMIT 10 OFFSET 5",
		},
		{
			"grouping",
			M{
				"select":   A{"dept", M{"as": A{M{"count": "*"}, "n"}}},
				"from":     "emp",
				"group_by": "dept",
				"having":   M{"gt": A{M{"count": "*"}, 5}},
			},
			"SELECT dept, COUNT(*) AS n FROM emp GROUP BY dept HAVING COUNT(*) > 5",
		},
		{
			"ordering list",
			M{"select": "*", "from": "t", "order_by": A{M{"asc": "a"}, M{"desc": "b"}}},
			"SELECT * FROM t ORDER BY a ASC, b DESC",
		},
		{
			"distinct",
			M{"select": M{"distinct": A{"a", "b"}}, "from": "t"},
			"SELECT DISTINCT a, b FROM t",
		},
		{
			"derived table",
			M{"select": "*", "from": M{"as": A{M{"select": "id", "from": "t"}, "sub"}}},
			"SELECT * FROM (SELECT id FROM t) AS sub",
		},
		{
			"scalar subquery column",
			M{"select": A{"id", M{"as": A{M{"select": "count(*)", "from": "o"}, "c"}}}, "from": "u"},
			"SELECT id, (SELECT count(*) FROM o) AS c FROM u",
		},
		{
			"several tables",
			M{"select": "*", "from": A{"a", "b"}, "where": M{"eq": A{"a.id", "b.a_id"}}},
			"SELECT * FROM a, b WHERE a.id = b.a_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runDialects(t, tt.node, same(tt.want))
		})
	}
}

func TestForUpdate(t *testing.T) {
	node := M{"select": "*", "from": "accounts", "where": M{"eq": A{"id", 1}}, "for_update": true}
	runDialects(t, node, perDialect{
		mysql:    "SELECT * FROM accounts WHERE id = 1 FOR UPDATE",
		postgres: "SELECT * FROM accounts WHERE id = 1 FOR UPDATE",
		sqlite:   "SELECT * FROM accounts WHERE id = 1",
	})

	runDialects(t, M{"for_update": true}, perDialect{"FOR UPDATE", "FOR UPDATE", ""})
	runDialects(t, M{"select": "*", "from": "t", "for_update": false}, same("SELECT * FROM t"))
}

func TestUnion(t *testing.T) {
	node := M{
		"union":    A{M{"select": "a", "from": "t1"}, M{"select": "a", "from": "t2"}},
		"order_by": "a",
	}
	runDialects(t, node, same("SELECT a FROM t1 UNION SELECT a FROM t2 ORDER BY a"))

	all := M{"union_all": A{M{"select": "a", "from": "t1"}, M{"select": "a", "from": "t2"}, M{"select": "a", "from": "t3"}}}
	runDialects(t, all, same("SELECT a FROM t1 UNION ALL SELECT a FROM t2 UNION ALL SELECT a FROM t3"))
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name string
		node any
		want string
	}{
		{
			"rows",
			M{
				"insert_into": A{"users", A{"name", "age"}},
				"values":      A{A{M{"escape": "bob"}, 30}, A{M{"escape": "al"}, 40}},
			},
			"INSERT INTO users (name, age) VALUES ('bob', 30), ('al', 40)",
		},
		{
			"single row",
			M{"insert_into": A{"users", A{"name", "age"}}, "values": A{"'x'", 1}},
			"INSERT INTO users (name, age) VALUES ('x', 1)",
		},
		{
			"no columns",
			M{"insert_into": "log", "values": A{A{1}}},
			"INSERT INTO log VALUES (1)",
		},
		{
			"from select",
			M{"insert_into": A{"archive", A{"id"}}, "select": "id", "from": "users"},
			"INSERT INTO archive (id) SELECT id FROM users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runDialects(t, tt.node, same(tt.want))
		})
	}
}

func TestInsert_Errors(t *testing.T) {
	se := compileErr(t, types.MySQL, M{"insert_into": A{"users", "name"}})
	if se.Command != types.CmdInsertInto {
		t.Errorf("Command = %s, want insert_into", se.Command)
	}

	se = compileErr(t, types.MySQL, M{"insert_into": "users", "values": A{A{1}, 2}})
	if se.Command != types.CmdValues {
		t.Errorf("Command = %s, want values", se.Command)
	}
}

func TestUpdate(t *testing.T) {
	node := M{
		"update": "users",
		"set":    A{A{"name", M{"escape": "bob"}}, A{"age", M{"add": A{"age", 1}}}},
		"where":  M{"eq": A{"id", 1}},
	}
	runDialects(t, node, same("UPDATE users SET name = 'bob', age = (age + 1) WHERE id = 1"))

	runDialects(t, M{"update": "t", "set": A{"a", 1}}, same("UPDATE t SET a = 1"))
}

func TestUpdate_BadAssignment(t *testing.T) {
	se := compileErr(t, types.Postgres, M{"update": "t", "set": A{A{"a"}}})
	if se.Command != types.CmdSet {
		t.Errorf("Command = %s, want set", se.Command)
	}
}

func TestDelete(t *testing.T) {
	node := M{"delete_from": "users", "where": M{"lt": A{"last_seen", M{"now": true}}}}
	runDialects(t, node, perDialect{
		mysql:    "DELETE FROM users WHERE last_seen < NOW()",
		postgres: "DELETE FROM users WHERE last_seen < NOW()",
		sqlite:   "DELETE FROM users WHERE last_seen < CURRENT_TIMESTAMP",
	})
}
