package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zoobzio/ormql"
	"github.com/zoobzio/ormql/internal/config"
	"github.com/zoobzio/ormql/mysql"
	"github.com/zoobzio/ormql/postgres"
	"github.com/zoobzio/ormql/schema"
	"github.com/zoobzio/ormql/sqlite"
	"golang.org/x/sync/errgroup"
)

// stdinName is the file argument that reads from standard input.
const stdinName = "-"

// rendererFor returns the renderer for d.
func rendererFor(d ormql.Dialect, logger *slog.Logger) ormql.Renderer {
	switch d {
	case ormql.MySQL:
		return mysql.New(ormql.WithLogger(logger))
	case ormql.SQLite:
		return sqlite.New(ormql.WithLogger(logger))
	default:
		return postgres.New(ormql.WithLogger(logger))
	}
}

// formatOf picks the decoder for a file: YAML by extension, else the
// configured format.
func formatOf(path, configured string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return config.FormatYAML
	case ".json":
		return config.FormatJSON
	}
	return strings.ToLower(configured)
}

func decode(r io.Reader, format string) (any, error) {
	if format == config.FormatYAML {
		return ormql.DecodeYAML(r)
	}
	return ormql.Decode(r)
}

// readNode decodes one AST document from path, or from stdin for "-".
func readNode(path, format string, stdin io.Reader) (any, error) {
	if path == stdinName {
		return decode(stdin, strings.ToLower(format))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f, formatOf(path, format))
}

// compiler compiles AST files for the configured dialect.
type compiler struct {
	renderer ormql.Renderer
	format   string
	index    *schema.Index
	batch    bool
	stdin    io.Reader
}

func newCompiler(cfg *config.Config, logger *slog.Logger, checkSchema, batch bool, stdin io.Reader) (*compiler, error) {
	d, err := cfg.DialectValue()
	if err != nil {
		return nil, err
	}
	c := &compiler{
		renderer: rendererFor(d, logger),
		format:   cfg.Format,
		batch:    batch,
		stdin:    stdin,
	}
	if checkSchema {
		if !cfg.Schema.HasSchema() {
			return nil, fmt.Errorf("--check-schema needs schema.tables in the config")
		}
		idx, err := schema.NewFromDBML(cfg.Schema.Project())
		if err != nil {
			return nil, err
		}
		c.index = idx
	}
	return c, nil
}

// file compiles one input into its statements. In batch mode a top-level
// array is a list of statements.
func (c *compiler) file(path string) ([]string, error) {
	node, err := readNode(path, c.format, c.stdin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.index != nil {
		if err := c.index.Check(node); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	var result *ormql.QueryResult
	if nodes, ok := node.([]any); ok && c.batch {
		result, err = ormql.RenderBatch(nodes, c.renderer)
	} else {
		result, err = ormql.Render(node, c.renderer)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result.Statements, nil
}

// files compiles every input concurrently and returns the statements in
// argument order.
func (c *compiler) files(ctx context.Context, paths []string) ([]string, error) {
	if err := stdinOnce(paths); err != nil {
		return nil, err
	}
	out := make([][]string, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			stmts, err := c.file(path)
			if err != nil {
				return err
			}
			out[i] = stmts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var stmts []string
	for _, s := range out {
		stmts = append(stmts, s...)
	}
	return stmts, nil
}

// stdinOnce rejects "-" named more than once; standard input can be read
// by one file only.
func stdinOnce(paths []string) error {
	seen := false
	for _, p := range paths {
		if p != stdinName {
			continue
		}
		if seen {
			return errors.New("standard input can only be named once")
		}
		seen = true
	}
	return nil
}

// inputs defaults to stdin when no files are named.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{stdinName}
	}
	return args
}
