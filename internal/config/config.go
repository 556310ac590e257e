// Package config loads ormql CLI configuration from defaults, an optional
// YAML file, ORMQL_ environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/zoobzio/dbml"
	"github.com/zoobzio/ormql"
)

// Defaults.
const (
	DefaultDialect  = "postgres"
	DefaultFormat   = "json"
	DefaultLogLevel = "warn"
	DefaultOutput   = "text"
	EnvPrefix       = "ORMQL_"
)

// Input formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the resolved CLI configuration.
type Config struct {
	Dialect  string       `koanf:"dialect"`
	Format   string       `koanf:"format"`
	LogLevel string       `koanf:"log_level"`
	Output   string       `koanf:"output"`
	Driver   string       `koanf:"driver"`
	DSN      string       `koanf:"dsn"`
	Schema   SchemaConfig `koanf:"schema"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// SchemaConfig declares the tables known to schema checks as
// table -> column -> type.
type SchemaConfig struct {
	Tables map[string]map[string]string `koanf:"tables"`
}

// findConfigFile returns the explicit path, or ormql.yaml / ormql.yml in the
// working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"ormql.yaml", "ormql.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"dialect":   DefaultDialect,
		"format":    DefaultFormat,
		"log_level": DefaultLogLevel,
		"output":    DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// ORMQL_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := ormql.ParseDialect(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}
	switch strings.ToLower(c.Format) {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid format %q: expected json or yaml", c.Format)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// DialectValue returns the configured dialect.
func (c *Config) DialectValue() (ormql.Dialect, error) {
	return ormql.ParseDialect(c.Dialect)
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return l, nil
}

// DriverName returns the database/sql driver for the configured dialect when none
// is set explicitly.
func (c *Config) DriverName() string {
	if c.Driver != "" {
		return c.Driver
	}
	d, _ := c.DialectValue()
	switch d {
	case ormql.MySQL:
		return "mysql"
	case ormql.SQLite:
		return "sqlite"
	default:
		return "pgx"
	}
}

// HasSchema reports whether any tables are declared.
func (s SchemaConfig) HasSchema() bool {
	return len(s.Tables) > 0
}

// Project builds a DBML project from the declared tables. Tables and columns
// are added in name order.
func (s SchemaConfig) Project() *dbml.Project {
	project := dbml.NewProject("ormql")

	tables := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	for _, name := range tables {
		table := dbml.NewTable(name)
		cols := make([]string, 0, len(s.Tables[name]))
		for col := range s.Tables[name] {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			table.AddColumn(dbml.NewColumn(col, s.Tables[name][col]))
		}
		project.AddTable(table)
	}
	return project
}
