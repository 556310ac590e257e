package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDialect is returned when a dialect name does not match a supported dialect.
var ErrUnknownDialect = errors.New("unknown dialect")

// Dialect identifies the SQL flavour a compile call targets.
// The set is closed: MySQL, Postgres and SQLite families only.
type Dialect uint8

const (
	MySQL Dialect = iota
	Postgres
	SQLite

	numDialects
)

// Dialects lists every supported dialect in declaration order.
func Dialects() []Dialect {
	return []Dialect{MySQL, Postgres, SQLite}
}

func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("dialect(%d)", uint8(d))
	}
}

// Valid reports whether d is one of the supported dialects.
func (d Dialect) Valid() bool {
	return d < numDialects
}

// ParseDialect resolves a dialect name. Common aliases are accepted
// (mariadb for mysql, postgresql/pg for postgres, sqlite3 for sqlite).
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}
