package render

import "github.com/zoobzio/ormql/internal/types"

// RowLockingLevel indicates the level of row-level locking support.
type RowLockingLevel int

const (
	RowLockingNone  RowLockingLevel = iota // No row locking
	RowLockingBasic                        // FOR UPDATE
)

// AutoIncrementStyle describes how a dialect expresses an auto-incrementing column.
type AutoIncrementStyle int

const (
	AutoIncrementKeyword  AutoIncrementStyle = iota // AUTO_INCREMENT
	AutoIncrementIdentity                           // GENERATED BY DEFAULT AS IDENTITY
	AutoIncrementRowID                              // INTEGER PRIMARY KEY
)

// UnsignedStyle describes how a dialect restricts a numeric column to non-negative values.
type UnsignedStyle int

const (
	UnsignedKeyword UnsignedStyle = iota // UNSIGNED
	UnsignedCheck                        // CHECK (col >= 0)
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	RowLocking          RowLockingLevel    // FOR UPDATE support
	AutoIncrement       AutoIncrementStyle // auto-increment column syntax
	Unsigned            UnsignedStyle      // unsigned column syntax
	NativeEnum          bool               // ENUM('a', 'b') column type
	Comments            bool               // COMMENT "..." on tables and columns
	InlineIndexes       bool               // INDEX definitions inside CREATE TABLE
	InvisibleIndexes    bool               // INVISIBLE index modifier
	ColumnOnUpdate      bool               // ON UPDATE <expr> column attribute
	Truncate            bool               // TRUNCATE TABLE
	ColumnModification  bool               // altering an existing column definition
	MultiAlterOperation bool               // several operations in one ALTER TABLE
}

var capabilities = [...]Capabilities{
	types.MySQL: {
		RowLocking:          RowLockingBasic,
		AutoIncrement:       AutoIncrementKeyword,
		Unsigned:            UnsignedKeyword,
		NativeEnum:          true,
		Comments:            true,
		InlineIndexes:       true,
		InvisibleIndexes:    true,
		ColumnOnUpdate:      true,
		Truncate:            true,
		ColumnModification:  true,
		MultiAlterOperation: true,
	},
	types.Postgres: {
		RowLocking:          RowLockingBasic,
		AutoIncrement:       AutoIncrementIdentity,
		Unsigned:            UnsignedCheck,
		Truncate:            true,
		ColumnModification:  true,
		MultiAlterOperation: true,
	},
	types.SQLite: {
		RowLocking:    RowLockingNone,
		AutoIncrement: AutoIncrementRowID,
		Unsigned:      UnsignedKeyword,
	},
}

// CapabilitiesFor returns the feature set of a dialect.
func CapabilitiesFor(d types.Dialect) Capabilities {
	if !d.Valid() {
		return Capabilities{}
	}
	return capabilities[d]
}
