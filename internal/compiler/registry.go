package compiler

import (
	"fmt"

	"github.com/zoobzio/ormql/internal/types"
)

// renderFunc turns a command's compiled argument into a SQL fragment.
type renderFunc func(args any, s *scope) (string, error)

// meta is the static description of a command.
type meta struct {
	minArgs   int
	maxArgs   int // unbounded when negative
	checked   bool
	aggregate bool
	star      bool
	distinct  bool
	// negatable commands render their own negated form, so an enclosing not
	// hands them its negation instead of wrapping them.
	negatable bool
}

func arity(lo, hi int) meta {
	return meta{minArgs: lo, maxArgs: hi, checked: true}
}

func aggregate(star bool) meta {
	return meta{minArgs: 1, maxArgs: 1, checked: true, aggregate: true, star: star, distinct: true}
}

func negatable(lo, hi int) meta {
	m := arity(lo, hi)
	m.negatable = true
	return m
}

var metaTable = [types.NumCommands]meta{
	types.CmdSelect:     arity(1, -1),
	types.CmdFrom:       arity(1, -1),
	types.CmdWhere:      arity(1, 1),
	types.CmdGroupBy:    arity(1, -1),
	types.CmdHaving:     arity(1, 1),
	types.CmdOrderBy:    arity(1, -1),
	types.CmdLimit:      arity(1, 1),
	types.CmdOffset:     arity(1, 1),
	types.CmdForUpdate:  arity(1, 1),
	types.CmdInsertInto: arity(1, 2),
	types.CmdValues:     arity(1, -1),
	types.CmdUpdate:     arity(1, 1),
	types.CmdSet:        arity(1, -1),
	types.CmdDeleteFrom: arity(1, 1),
	types.CmdUnion:      arity(2, -1),
	types.CmdUnionAll:   arity(2, -1),

	types.CmdAs:       arity(2, 2),
	types.CmdDistinct: arity(1, -1),
	types.CmdAsc:      arity(1, 1),
	types.CmdDesc:     arity(1, 1),
	types.CmdRaw:      {},
	types.CmdEscape:   {},

	types.CmdAnd:     negatable(1, -1),
	types.CmdOr:      negatable(1, -1),
	types.CmdNot:     arity(1, 1),
	types.CmdEq:      negatable(2, 2),
	types.CmdGt:      negatable(2, 2),
	types.CmdLt:      negatable(2, 2),
	types.CmdGte:     negatable(2, 2),
	types.CmdLte:     negatable(2, 2),
	types.CmdLike:    negatable(2, 2),
	types.CmdIn:      negatable(2, 2),
	types.CmdExists:  negatable(1, 1),
	types.CmdBetween: negatable(3, 3),

	types.CmdSum:         aggregate(false),
	types.CmdMin:         aggregate(false),
	types.CmdMax:         aggregate(false),
	types.CmdAvg:         aggregate(false),
	types.CmdCount:       aggregate(true),
	types.CmdGroupConcat: {minArgs: 1, maxArgs: 2, checked: true, aggregate: true, distinct: true},
	types.CmdCoalesce:    arity(1, -1),
	types.CmdUpper:       arity(1, 1),
	types.CmdLower:       arity(1, 1),
	types.CmdConcat:      arity(1, -1),
	types.CmdRound:       arity(1, 2),
	types.CmdAbs:         arity(1, 1),
	types.CmdPower:       arity(2, 2),
	types.CmdCeil:        arity(1, 1),
	types.CmdFloor:       arity(1, 1),
	types.CmdSqrt:        arity(1, 1),
	types.CmdDate:        arity(1, 1),
	types.CmdIf:          arity(3, 3),
	types.CmdNow:         {},

	types.CmdAdd:      arity(2, -1),
	types.CmdSubtract: arity(2, -1),
	types.CmdMultiply: arity(2, -1),
	types.CmdDivide:   arity(2, -1),

	types.CmdCreateTable:   arity(1, 1),
	types.CmdAlterTable:    arity(1, 1),
	types.CmdDropTable:     arity(1, -1),
	types.CmdTruncateTable: arity(1, 1),
	types.CmdCreateIndex:   arity(1, 1),
	types.CmdDropIndex:     arity(1, 1),
	types.CmdTemporary:     {},
	types.CmdIfNotExists:   {},
	types.CmdIfExists:      {},
	types.CmdLikeTable:     arity(1, 1),
	types.CmdDefinitions:   arity(1, -1),
	types.CmdOnTable:       arity(1, 1),

	types.CmdAlterOperation: arity(1, 1),
	types.CmdOldName:        arity(1, 1),
	types.CmdName:           arity(1, 1),
	types.CmdDataType:       arity(1, 1),
	types.CmdUnsigned:       {},
	types.CmdEnumValues:     arity(1, -1),
	types.CmdPrecision:      arity(1, 1),
	types.CmdScale:          arity(1, 1),
	types.CmdNotNull:        {},
	types.CmdDefault:        arity(1, 1),
	types.CmdAutoIncrement:  {},
	types.CmdConstraint:     arity(1, 1),
	types.CmdIndex:          {},
	types.CmdUnique:         {},
	types.CmdFields:         arity(1, -1),
	types.CmdReferences:     arity(1, 1),
	types.CmdTable:          arity(1, 1),
	types.CmdOnDelete:       arity(1, 1),
	types.CmdOnUpdate:       arity(1, 1),
	types.CmdInvisible:      {},
	types.CmdComment:        arity(1, 1),
}

var renderers = [types.NumCommands]renderFunc{
	types.CmdSelect:     renderSelect,
	types.CmdFrom:       renderFrom,
	types.CmdWhere:      clause("WHERE"),
	types.CmdGroupBy:    list("GROUP BY"),
	types.CmdHaving:     clause("HAVING"),
	types.CmdOrderBy:    list("ORDER BY"),
	types.CmdLimit:      clause("LIMIT"),
	types.CmdOffset:     clause("OFFSET"),
	types.CmdForUpdate:  renderForUpdate,
	types.CmdInsertInto: renderInsertInto,
	types.CmdValues:     renderValues,
	types.CmdUpdate:     clause("UPDATE"),
	types.CmdSet:        renderSet,
	types.CmdDeleteFrom: clause("DELETE FROM"),
	types.CmdUnion:      compound("UNION"),
	types.CmdUnionAll:   compound("UNION ALL"),

	types.CmdAs:       renderAs,
	types.CmdDistinct: list("DISTINCT"),
	types.CmdAsc:      suffix("ASC"),
	types.CmdDesc:     suffix("DESC"),
	types.CmdRaw:      renderRaw,
	types.CmdEscape:   renderEscape,

	types.CmdAnd:     logical("AND"),
	types.CmdOr:      logical("OR"),
	types.CmdNot:     renderNot,
	types.CmdEq:      renderEq,
	types.CmdGt:      comparison(types.GT),
	types.CmdLt:      comparison(types.LT),
	types.CmdGte:     comparison(types.GE),
	types.CmdLte:     comparison(types.LE),
	types.CmdLike:    comparison(types.LIKE),
	types.CmdIn:      renderIn,
	types.CmdExists:  renderExists,
	types.CmdBetween: renderBetween,

	types.CmdSum:         function("SUM"),
	types.CmdMin:         function("MIN"),
	types.CmdMax:         function("MAX"),
	types.CmdAvg:         function("AVG"),
	types.CmdCount:       function("COUNT"),
	types.CmdCoalesce:    function("COALESCE"),
	types.CmdUpper:       function("UPPER"),
	types.CmdLower:       function("LOWER"),
	types.CmdConcat:      renderConcat,
	types.CmdRound:       function("ROUND"),
	types.CmdAbs:         function("ABS"),
	types.CmdPower:       function("POWER"),
	types.CmdCeil:        function("CEIL"),
	types.CmdFloor:       function("FLOOR"),
	types.CmdSqrt:        function("SQRT"),
	types.CmdDate:        function("DATE"),
	types.CmdGroupConcat: renderGroupConcat,
	types.CmdIf:          renderIf,
	types.CmdNow:         renderNow,

	types.CmdAdd:      arithmetic("+"),
	types.CmdSubtract: arithmetic("-"),
	types.CmdMultiply: arithmetic("*"),
	types.CmdDivide:   arithmetic("/"),

	types.CmdCreateTable:   renderCreateTable,
	types.CmdAlterTable:    renderAlterTable,
	types.CmdDropTable:     renderDropTable,
	types.CmdTruncateTable: renderTruncateTable,
	types.CmdCreateIndex:   renderCreateIndex,
	types.CmdDropIndex:     renderDropIndex,
	types.CmdTemporary:     renderNothing,
	types.CmdIfNotExists:   renderNothing,
	types.CmdIfExists:      renderNothing,
	types.CmdLikeTable:     renderLikeTable,
	types.CmdDefinitions:   renderDefinitions,
	types.CmdOnTable:       renderOnTable,

	types.CmdAlterOperation: renderAlterOperation,
	types.CmdOldName:        renderOldName,
	types.CmdName:           renderName,
	types.CmdDataType:       renderDataType,
	types.CmdUnsigned:       renderUnsigned,
	types.CmdEnumValues:     renderNothing,
	types.CmdPrecision:      renderNothing,
	types.CmdScale:          renderNothing,
	types.CmdNotNull:        renderNotNull,
	types.CmdDefault:        renderDefault,
	types.CmdAutoIncrement:  renderAutoIncrement,
	types.CmdConstraint:     renderConstraint,
	types.CmdIndex:          renderIndex,
	types.CmdUnique:         renderUnique,
	types.CmdFields:         renderFields,
	types.CmdReferences:     renderReferences,
	types.CmdTable:          renderTable,
	types.CmdOnDelete:       referentialAction("ON DELETE"),
	types.CmdOnUpdate:       renderOnUpdate,
	types.CmdInvisible:      renderInvisible,
	types.CmdComment:        renderComment,
}

func init() {
	for _, c := range types.AllCommands() {
		if renderers[c] == nil {
			panic(fmt.Sprintf("compiler: command %s has no renderer", c))
		}
		for _, d := range types.Dialects() {
			if Order(c, d) < 0 {
				panic(fmt.Sprintf("compiler: command %s has no %s order", c, d))
			}
		}
	}
}

// Info describes a registered command for tooling.
type Info struct {
	Command   types.Command
	Order     map[types.Dialect]int
	MinArgs   int
	MaxArgs   int // -1 when unbounded or unchecked
	Aggregate bool
	Star      bool
	Distinct  bool
	Negatable bool
}

// Commands returns the registry contents in declaration order.
func Commands() []Info {
	all := types.AllCommands()
	out := make([]Info, 0, len(all))
	for _, c := range all {
		m := metaTable[c]
		info := Info{
			Command:   c,
			Order:     make(map[types.Dialect]int, 3),
			MinArgs:   m.minArgs,
			MaxArgs:   m.maxArgs,
			Aggregate: m.aggregate,
			Star:      m.star,
			Distinct:  m.distinct,
			Negatable: m.negatable,
		}
		if !m.checked {
			info.MaxArgs = -1
		}
		for _, d := range types.Dialects() {
			info.Order[d] = Order(c, d)
		}
		out = append(out, info)
	}
	return out
}
