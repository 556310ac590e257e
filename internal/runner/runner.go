// Package runner executes compiled statements against a database.
package runner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	// Drivers selectable by name from configuration.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNoStatements is returned by Apply when there is nothing to execute.
var ErrNoStatements = errors.New("no statements to execute")

// Open opens and pings a database handle. Registered drivers are mysql,
// pgx, postgres and sqlite.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// Result reports how many statements ran and the rows they affected.
type Result struct {
	Statements   int
	RowsAffected int64
}

// Runner applies statement batches.
type Runner struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a runner for db.
func New(db *sql.DB, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{db: db, logger: logger}
}

// Apply executes statements in order inside one transaction. Any failure
// rolls the transaction back and reports the failing statement's index.
func (r *Runner) Apply(ctx context.Context, statements []string) (Result, error) {
	if len(statements) == 0 {
		return Result{}, ErrNoStatements
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("begin transaction: %w", err)
	}

	var res Result
	for i, stmt := range statements {
		r.logger.Debug("executing statement", "index", i, "sql", stmt)
		out, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return Result{}, errors.Join(fmt.Errorf("statement %d: %w", i, err), fmt.Errorf("rollback: %w", rbErr))
			}
			return Result{}, fmt.Errorf("statement %d: %w", i, err)
		}
		res.Statements++
		if n, err := out.RowsAffected(); err == nil {
			res.RowsAffected += n
		}
	}

	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("applied statements", "count", res.Statements, "rows_affected", res.RowsAffected)
	return res, nil
}

// Apply executes statements against db in one transaction.
func Apply(ctx context.Context, db *sql.DB, statements []string) (Result, error) {
	return New(db, nil).Apply(ctx, statements)
}
