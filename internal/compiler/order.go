package compiler

import (
	"fmt"
	"sort"

	"github.com/zoobzio/ormql/internal/types"
)

// canonicalOrder is the default token order shared by every dialect. A
// command's index here is its position among siblings of the same object.
var canonicalOrder = []types.Command{
	// DDL statements and their flags.
	types.CmdCreateTable,
	types.CmdAlterTable,
	types.CmdDropTable,
	types.CmdTruncateTable,
	types.CmdCreateIndex,
	types.CmdDropIndex,
	types.CmdTemporary,
	types.CmdIfNotExists,
	types.CmdIfExists,
	types.CmdOnTable,
	types.CmdLikeTable,
	types.CmdDefinitions,

	// Column, index and constraint definitions.
	types.CmdAlterOperation,
	types.CmdOldName,
	types.CmdName,
	types.CmdDataType,
	types.CmdUnsigned,
	types.CmdEnumValues,
	types.CmdPrecision,
	types.CmdScale,
	types.CmdNotNull,
	types.CmdDefault,
	types.CmdAutoIncrement,
	types.CmdUnique,
	types.CmdConstraint,
	types.CmdIndex,
	types.CmdTable,
	types.CmdFields,
	types.CmdReferences,
	types.CmdOnDelete,
	types.CmdOnUpdate,
	types.CmdInvisible,
	types.CmdComment,

	// DML statements and clauses.
	types.CmdInsertInto,
	types.CmdUpdate,
	types.CmdSet,
	types.CmdDeleteFrom,
	types.CmdSelect,
	types.CmdFrom,
	types.CmdWhere,
	types.CmdGroupBy,
	types.CmdHaving,
	types.CmdUnion,
	types.CmdUnionAll,
	types.CmdValues,
	types.CmdOrderBy,
	types.CmdLimit,
	types.CmdOffset,
	types.CmdForUpdate,

	// Expressions.
	types.CmdAs,
	types.CmdDistinct,
	types.CmdAsc,
	types.CmdDesc,
	types.CmdRaw,
	types.CmdEscape,
	types.CmdAnd,
	types.CmdOr,
	types.CmdNot,
	types.CmdEq,
	types.CmdGt,
	types.CmdLt,
	types.CmdGte,
	types.CmdLte,
	types.CmdLike,
	types.CmdIn,
	types.CmdExists,
	types.CmdBetween,
	types.CmdSum,
	types.CmdMin,
	types.CmdMax,
	types.CmdAvg,
	types.CmdCount,
	types.CmdCoalesce,
	types.CmdUpper,
	types.CmdLower,
	types.CmdConcat,
	types.CmdRound,
	types.CmdAbs,
	types.CmdPower,
	types.CmdCeil,
	types.CmdFloor,
	types.CmdSqrt,
	types.CmdDate,
	types.CmdGroupConcat,
	types.CmdIf,
	types.CmdNow,
	types.CmdAdd,
	types.CmdSubtract,
	types.CmdMultiply,
	types.CmdDivide,
}

// dialectSwaps lists pairs of commands whose canonical positions are exchanged
// for a dialect. SQLite reads UNSIGNED as part of the type name, so it must
// precede the base type there.
var dialectSwaps = map[types.Dialect][][2]types.Command{
	types.SQLite: {{types.CmdDataType, types.CmdUnsigned}},
}

// orderTable holds, per dialect, the sibling position of every command.
var orderTable = buildOrderTable()

func buildOrderTable() [3][types.NumCommands]int {
	var table [3][types.NumCommands]int
	for _, d := range types.Dialects() {
		for c := range table[d] {
			table[d][c] = -1
		}
		for i, c := range canonicalOrder {
			if table[d][c] != -1 {
				panic(fmt.Sprintf("compiler: command %s listed twice in canonical order", c))
			}
			table[d][c] = i
		}
		for _, pair := range dialectSwaps[d] {
			a, b := pair[0], pair[1]
			table[d][a], table[d][b] = table[d][b], table[d][a]
		}
	}
	return table
}

// Order returns the sibling position of a command for a dialect. Unknown
// commands, and invalid dialects, return -1.
func Order(c types.Command, d types.Dialect) int {
	if !d.Valid() || c >= types.NumCommands {
		return -1
	}
	return orderTable[d][c]
}

type orderedKey struct {
	key string
	cmd types.Command
}

// sortKeys orders an object's keys for a dialect. Unknown keys sort first;
// ties are broken by key so the result never depends on map iteration order.
func sortKeys(obj types.Object, d types.Dialect) []orderedKey {
	keys := make([]orderedKey, 0, len(obj))
	for k := range obj {
		cmd, _ := types.LookupCommand(k)
		keys = append(keys, orderedKey{key: k, cmd: cmd})
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := Order(keys[i].cmd, d), Order(keys[j].cmd, d)
		if oi != oj {
			return oi < oj
		}
		return keys[i].key < keys[j].key
	})
	return keys
}
