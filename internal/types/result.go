package types

// QueryResult contains the rendered SQL and the dialect it targets.
// Statements holds the same SQL split at statement boundaries; SQL is
// Statements joined with StatementSeparator.
type QueryResult struct {
	SQL        string
	Statements []string
	Dialect    Dialect
}
