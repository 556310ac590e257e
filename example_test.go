package ormql_test

import (
	"fmt"

	"github.com/zoobzio/ormql"
	"github.com/zoobzio/ormql/mysql"
	"github.com/zoobzio/ormql/postgres"
	"github.com/zoobzio/ormql/sqlite"
)

func ExampleCompile() {
	node := map[string]any{
		"select": []any{"id", "email"},
		"from":   "users",
		"where": map[string]any{"and": []any{
			map[string]any{"eq": []any{"active", true}},
			map[string]any{"in": []any{"role", map[string]any{"escape": []any{"admin", "owner"}}}},
		}},
		"order_by": map[string]any{"desc": "id"},
		"limit":    5,
	}

	sql, err := ormql.Compile(node, ormql.Postgres)
	if err != nil {
		panic(err)
	}
	fmt.Println(sql)
	// Output: SELECT id, email FROM users WHERE (active = TRUE AND role IN ('admin', 'owner')) ORDER BY id DESC LIMIT 5
}

func ExampleCompile_nullSafeTuple() {
	node := map[string]any{
		"not": map[string]any{"eq": []any{[]any{"a", "b"}, []any{1, nil}}},
	}

	fmt.Println(ormql.MustCompile(node, ormql.MySQL))
	// Output: (a != 1 OR b IS NOT NULL)
}

func ExampleRender() {
	node := map[string]any{
		"create_table": "users",
		"if_not_exists": true,
		"definitions": []any{
			map[string]any{"name": "id", "data_type": "int", "unsigned": true, "not_null": true, "auto_increment": true},
			map[string]any{"name": "email", "data_type": "varchar", "precision": 255, "comment": "login"},
		},
	}

	for _, r := range []ormql.Renderer{mysql.New(), postgres.New(), sqlite.New()} {
		result, err := ormql.Render(node, r)
		if err != nil {
			panic(err)
		}
		fmt.Println(result.SQL)
	}
	// Output:
	// CREATE TABLE IF NOT EXISTS users (`id` INT UNSIGNED NOT NULL AUTO_INCREMENT, `email` VARCHAR(255) COMMENT "login")
	// CREATE TABLE IF NOT EXISTS users ("id" INT CHECK ("id" >= 0) NOT NULL GENERATED BY DEFAULT AS IDENTITY, "email" VARCHAR(255))
	// CREATE TABLE IF NOT EXISTS users ("id" INTEGER NOT NULL PRIMARY KEY, "email" VARCHAR(255))
}
