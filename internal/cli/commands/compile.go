package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/zoobzio/ormql/internal/config"
)

// debounce collapses the burst of events an editor emits on save.
const debounce = 100 * time.Millisecond

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	var (
		watch       bool
		checkSchema bool
		batch       bool
	)

	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile AST documents to SQL",
		Long: `Compile JSON or YAML AST documents to SQL for the configured dialect.

Files are compiled concurrently and printed in argument order, separated by ";".
With no files, one document is read from standard input. With --batch, a
top-level array is treated as a list of statements.`,
		Example: `  ormql compile query.json --dialect mysql
  ormql compile schema.yaml --batch --check-schema
  echo '{"select": "*", "from": "t"}' | ormql compile -d sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.Logger(cmd.Context())

			c, err := newCompiler(cfg, logger, checkSchema, batch, cmd.InOrStdin())
			if err != nil {
				return err
			}
			paths := inputs(args)

			stmts, err := c.files(cmd.Context(), paths)
			if err != nil {
				return err
			}
			writeSQL(cmd.OutOrStdout(), stmts...)

			if !watch {
				return nil
			}
			for _, p := range paths {
				if p == stdinName {
					return fmt.Errorf("--watch cannot be used with standard input")
				}
			}
			return watchFiles(cmd.Context(), paths, logger, func(path string) {
				stmts, err := c.file(path)
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					return
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n", path)
				writeSQL(cmd.OutOrStdout(), stmts...)
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile files when they change")
	cmd.Flags().BoolVar(&checkSchema, "check-schema", false, "Check table references against schema.tables")
	cmd.Flags().BoolVar(&batch, "batch", false, "Treat a top-level array as a list of statements")

	return cmd
}

// writeSQL prints each statement terminated by ";".
func writeSQL(w io.Writer, stmts ...string) {
	for _, stmt := range stmts {
		_, _ = fmt.Fprintf(w, "%s;\n", stmt)
	}
}

// watchFiles calls onChange for each path written or recreated until ctx is
// done. Directories are watched so that editors replacing the file by rename
// are still seen.
func watchFiles(ctx context.Context, paths []string, logger *slog.Logger, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]string) // absolute -> as given
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	logger.Info("watching for changes", "files", strings.Join(paths, ", "))

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p, ok := watched[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			pending[p] = true
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			for p := range pending {
				logger.Debug("recompiling", "file", p)
				onChange(p)
			}
			clear(pending)
		}
	}
}
