// Package schema checks AST table and column references against a DBML
// project before compilation.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/ormql/internal/types"
)

// ErrUnknownTable is wrapped by errors for tables the project does not define.
var ErrUnknownTable = errors.New("unknown table")

// ErrUnknownColumn is wrapped by errors for columns the project does not define.
var ErrUnknownColumn = errors.New("unknown column")

// Index holds the tables and columns of a DBML project.
type Index struct {
	tables map[string]map[string]bool // table -> column set
}

// NewFromDBML indexes the tables of project.
func NewFromDBML(project *dbml.Project) (*Index, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	idx := &Index{tables: make(map[string]map[string]bool)}
	for _, table := range project.Tables {
		cols := make(map[string]bool)
		for _, col := range table.Columns {
			cols[col.Name] = true
		}
		idx.tables[table.Name] = cols
	}
	return idx, nil
}

// NewFromNames indexes bare table names with no column information. Column
// checks are skipped for such tables.
func NewFromNames(names ...string) *Index {
	idx := &Index{tables: make(map[string]map[string]bool)}
	for _, n := range names {
		idx.tables[n] = nil
	}
	return idx
}

// HasTable reports whether name is a known table.
func (idx *Index) HasTable(name string) bool {
	_, ok := idx.tables[name]
	return ok
}

// HasColumn reports whether table defines column. Tables indexed without
// column information accept any column.
func (idx *Index) HasColumn(table, column string) bool {
	cols, ok := idx.tables[table]
	if !ok {
		return false
	}
	return cols == nil || cols[column]
}

// tableRefs lists the commands whose arguments name existing tables.
// create_table names a new table and insert_into and references carry the
// table inside a larger argument, so they are handled separately.
var tableRefs = map[types.Command]bool{
	types.CmdFrom:          true,
	types.CmdUpdate:        true,
	types.CmdDeleteFrom:    true,
	types.CmdAlterTable:    true,
	types.CmdDropTable:     true,
	types.CmdTruncateTable: true,
	types.CmdOnTable:       true,
	types.CmdLikeTable:     true,
}

// Check walks node and reports every table reference the index does not
// know, plus unknown columns named by ALTER TABLE definitions that drop,
// modify or rename a column. All problems are joined into one error.
func (idx *Index) Check(node any) error {
	c := &checker{idx: idx, created: make(map[string]bool)}
	c.walk(node, nil)
	return errors.Join(c.errs...)
}

type checker struct {
	idx     *Index
	created map[string]bool
	errs    []error
}

func (c *checker) walk(node any, path types.Path) {
	switch n := node.(type) {
	case map[string]any:
		c.object(n, path)
	case []any:
		for i, el := range n {
			c.walk(el, path.Append(types.IndexStep(i)))
		}
	}
}

func (c *checker) object(obj map[string]any, path types.Path) {
	// Tables created in the same tree may be referenced by later keys.
	if name, ok := get(obj, types.CmdCreateTable).(string); ok {
		c.created[tableName(name)] = true
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := obj[key]
		cmd, ok := types.LookupCommand(key)
		if !ok || types.IsUndefined(v) {
			continue
		}
		at := path.Append(types.KeyStep(cmd))
		switch {
		case cmd == types.CmdInsertInto:
			c.table(firstOf(v), at)
		case cmd == types.CmdReferences:
			if ref, ok := v.(map[string]any); ok {
				c.table(firstOf(get(ref, types.CmdTable)), at.Append(types.KeyStep(types.CmdTable)))
			}
		case tableRefs[cmd]:
			for _, name := range names(v) {
				c.table(name, at)
			}
		}
		if cmd == types.CmdAlterTable {
			c.alteredColumns(obj, v, at)
		}
		c.walk(v, at)
	}
}

func (c *checker) table(name string, at types.Path) {
	if name == "" || c.created[name] || c.idx.HasTable(name) {
		return
	}
	c.errs = append(c.errs, fmt.Errorf("%w %q at %s", ErrUnknownTable, name, at))
}

// alteredColumns checks that columns an ALTER TABLE expects to exist do.
func (c *checker) alteredColumns(obj map[string]any, table any, at types.Path) {
	name, ok := table.(string)
	if !ok || !c.idx.HasTable(name) {
		return
	}
	defs, _ := get(obj, types.CmdDefinitions).([]any)
	for i, d := range defs {
		def, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if get(def, types.CmdConstraint) != nil {
			continue
		}
		if index, _ := get(def, types.CmdIndex).(bool); index {
			continue
		}
		op, _ := get(def, types.CmdAlterOperation).(string)
		col := ""
		switch strings.ToLower(op) {
		case "drop", "modify":
			col, _ = get(def, types.CmdName).(string)
			if old, ok := get(def, types.CmdOldName).(string); ok {
				col = old
			}
		case "rename":
			col, _ = get(def, types.CmdOldName).(string)
		}
		if col != "" && !c.idx.HasColumn(name, col) {
			c.errs = append(c.errs, fmt.Errorf("%w %q on %s at %s[%d]", ErrUnknownColumn, col, name, at, i))
		}
	}
}

// names extracts table names from a command argument. Strings may carry an
// alias ("users u"); objects and subqueries are skipped.
func names(v any) []string {
	switch x := v.(type) {
	case string:
		return []string{tableName(x)}
	case []any:
		var out []string
		for _, el := range x {
			if s, ok := el.(string); ok {
				out = append(out, tableName(s))
			}
		}
		return out
	default:
		return nil
	}
}

// get reads a command from obj under either spelling of its key.
func get(obj map[string]any, c types.Command) any {
	if v, ok := obj[c.String()]; ok && !types.IsUndefined(v) {
		return v
	}
	if v, ok := obj["$"+c.String()]; ok && !types.IsUndefined(v) {
		return v
	}
	return nil
}

func firstOf(v any) string {
	switch x := v.(type) {
	case string:
		return tableName(x)
	case []any:
		if len(x) > 0 {
			if s, ok := x[0].(string); ok {
				return tableName(s)
			}
		}
	}
	return ""
}

func tableName(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], "`\"")
}
