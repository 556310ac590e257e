package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoobzio/ormql/internal/config"
	"github.com/zoobzio/ormql/internal/runner"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	var (
		dryRun      bool
		checkSchema bool
	)

	cmd := &cobra.Command{
		Use:   "apply [files...]",
		Short: "Compile AST documents and execute them",
		Long: `Compile AST documents and execute the resulting statements against the
configured database in a single transaction. Top-level arrays are lists of
statements. Any failure rolls the whole batch back.`,
		Example: `  ormql apply migrations/001.yaml --dialect postgres --dsn postgres://localhost/app
  ormql apply schema.json --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.Logger(cmd.Context())

			c, err := newCompiler(cfg, logger, checkSchema, true, cmd.InOrStdin())
			if err != nil {
				return err
			}
			statements, err := c.files(cmd.Context(), inputs(args))
			if err != nil {
				return err
			}

			if dryRun {
				writeSQL(cmd.OutOrStdout(), statements...)
				return nil
			}
			if cfg.DSN == "" {
				return fmt.Errorf("no dsn configured: set --dsn, ORMQL_DSN or dsn in the config file")
			}

			db, err := runner.Open(cmd.Context(), cfg.DriverName(), cfg.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := runner.New(db, logger).Apply(cmd.Context(), statements)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d statement(s), %d row(s) affected\n", res.Statements, res.RowsAffected)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the statements instead of executing them")
	cmd.Flags().BoolVar(&checkSchema, "check-schema", false, "Check table references against schema.tables")

	return cmd
}
