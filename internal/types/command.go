package types

import "strings"

// Command is a reserved AST key. Every key that produces SQL is one of these
// constants; any other key in an object node is inert payload.
type Command uint8

const (
	CmdUnknown Command = iota

	// Statements and clauses.
	CmdSelect
	CmdFrom
	CmdWhere
	CmdGroupBy
	CmdHaving
	CmdOrderBy
	CmdLimit
	CmdOffset
	CmdForUpdate
	CmdInsertInto
	CmdValues
	CmdUpdate
	CmdSet
	CmdDeleteFrom
	CmdUnion
	CmdUnionAll

	// Select-list helpers and literals.
	CmdAs
	CmdDistinct
	CmdAsc
	CmdDesc
	CmdRaw
	CmdEscape

	// Logical combinators and comparisons.
	CmdAnd
	CmdOr
	CmdNot
	CmdEq
	CmdGt
	CmdLt
	CmdGte
	CmdLte
	CmdLike
	CmdIn
	CmdExists
	CmdBetween

	// Functions.
	CmdSum
	CmdMin
	CmdMax
	CmdAvg
	CmdCount
	CmdCoalesce
	CmdUpper
	CmdLower
	CmdConcat
	CmdRound
	CmdAbs
	CmdPower
	CmdCeil
	CmdFloor
	CmdSqrt
	CmdDate
	CmdGroupConcat
	CmdIf
	CmdNow

	// Arithmetic.
	CmdAdd
	CmdSubtract
	CmdMultiply
	CmdDivide

	// DDL statements and statement flags.
	CmdCreateTable
	CmdAlterTable
	CmdDropTable
	CmdTruncateTable
	CmdCreateIndex
	CmdDropIndex
	CmdTemporary
	CmdIfNotExists
	CmdIfExists
	CmdLikeTable
	CmdDefinitions
	CmdOnTable

	// Column, index and constraint definitions.
	CmdAlterOperation
	CmdOldName
	CmdName
	CmdDataType
	CmdUnsigned
	CmdEnumValues
	CmdPrecision
	CmdScale
	CmdNotNull
	CmdDefault
	CmdAutoIncrement
	CmdConstraint
	CmdIndex
	CmdUnique
	CmdFields
	CmdReferences
	CmdTable
	CmdOnDelete
	CmdOnUpdate
	CmdInvisible
	CmdComment

	NumCommands
)

var commandNames = [NumCommands]string{
	CmdUnknown: "",

	CmdSelect:     "select",
	CmdFrom:       "from",
	CmdWhere:      "where",
	CmdGroupBy:    "group_by",
	CmdHaving:     "having",
	CmdOrderBy:    "order_by",
	CmdLimit:      "limit",
	CmdOffset:     "offset",
	CmdForUpdate:  "for_update",
	CmdInsertInto: "insert_into",
	CmdValues:     "values",
	CmdUpdate:     "update",
	CmdSet:        "set",
	CmdDeleteFrom: "delete_from",
	CmdUnion:      "union",
	CmdUnionAll:   "union_all",

	CmdAs:       "as",
	CmdDistinct: "distinct",
	CmdAsc:      "asc",
	CmdDesc:     "desc",
	CmdRaw:      "raw",
	CmdEscape:   "escape",

	CmdAnd:     "and",
	CmdOr:      "or",
	CmdNot:     "not",
	CmdEq:      "eq",
	CmdGt:      "gt",
	CmdLt:      "lt",
	CmdGte:     "gte",
	CmdLte:     "lte",
	CmdLike:    "like",
	CmdIn:      "in",
	CmdExists:  "exists",
	CmdBetween: "between",

	CmdSum:         "sum",
	CmdMin:         "min",
	CmdMax:         "max",
	CmdAvg:         "avg",
	CmdCount:       "count",
	CmdCoalesce:    "coalesce",
	CmdUpper:       "upper",
	CmdLower:       "lower",
	CmdConcat:      "concat",
	CmdRound:       "round",
	CmdAbs:         "abs",
	CmdPower:       "power",
	CmdCeil:        "ceil",
	CmdFloor:       "floor",
	CmdSqrt:        "sqrt",
	CmdDate:        "date",
	CmdGroupConcat: "group_concat",
	CmdIf:          "if",
	CmdNow:         "now",

	CmdAdd:      "add",
	CmdSubtract: "subtract",
	CmdMultiply: "multiply",
	CmdDivide:   "divide",

	CmdCreateTable:   "create_table",
	CmdAlterTable:    "alter_table",
	CmdDropTable:     "drop_table",
	CmdTruncateTable: "truncate_table",
	CmdCreateIndex:   "create_index",
	CmdDropIndex:     "drop_index",
	CmdTemporary:     "temporary",
	CmdIfNotExists:   "if_not_exists",
	CmdIfExists:      "if_exists",
	CmdLikeTable:     "like_table",
	CmdDefinitions:   "definitions",
	CmdOnTable:       "on_table",

	CmdAlterOperation: "alter_operation",
	CmdOldName:        "old_name",
	CmdName:           "name",
	CmdDataType:       "data_type",
	CmdUnsigned:       "unsigned",
	CmdEnumValues:     "enum_values",
	CmdPrecision:      "precision",
	CmdScale:          "scale",
	CmdNotNull:        "not_null",
	CmdDefault:        "default",
	CmdAutoIncrement:  "auto_increment",
	CmdConstraint:     "constraint",
	CmdIndex:          "index",
	CmdUnique:         "unique",
	CmdFields:         "fields",
	CmdReferences:     "references",
	CmdTable:          "table",
	CmdOnDelete:       "on_delete",
	CmdOnUpdate:       "on_update",
	CmdInvisible:      "invisible",
	CmdComment:        "comment",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, NumCommands)
	for c := CmdUnknown + 1; c < NumCommands; c++ {
		m[commandNames[c]] = c
	}
	return m
}()

func (c Command) String() string {
	if c < NumCommands && c != CmdUnknown {
		return commandNames[c]
	}
	return "unknown"
}

// LookupCommand resolves an AST key to its command. A single leading "$" is
// ignored so both "eq" and "$eq" resolve to CmdEq. Unrecognised keys
// return CmdUnknown and false.
func LookupCommand(key string) (Command, bool) {
	c, ok := commandsByName[strings.TrimPrefix(key, "$")]
	return c, ok
}

// AllCommands returns every known command in declaration order.
func AllCommands() []Command {
	out := make([]Command, 0, NumCommands-1)
	for c := CmdUnknown + 1; c < NumCommands; c++ {
		out = append(out, c)
	}
	return out
}
