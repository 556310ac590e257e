package ormql

import (
	"fmt"
	"strings"

	"github.com/zoobzio/ormql/internal/types"
)

// StatementSeparator joins statements in QueryResult.SQL.
const StatementSeparator = types.StatementSeparator

// Render compiles node with r.
func Render(node any, r Renderer) (*QueryResult, error) {
	return r.Render(node)
}

// RenderBatch compiles each node with r and collects their statements in
// order. Nodes that compile to nothing for the dialect are dropped.
func RenderBatch(nodes []any, r Renderer) (*QueryResult, error) {
	stmts := make([]string, 0, len(nodes))
	for i, node := range nodes {
		result, err := r.Render(node)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		stmts = append(stmts, result.Statements...)
	}
	return &QueryResult{
		SQL:        strings.Join(stmts, StatementSeparator),
		Statements: stmts,
		Dialect:    r.Dialect(),
	}, nil
}
