package compiler

import (
	"strings"

	"github.com/zoobzio/ormql/internal/render"
	"github.com/zoobzio/ormql/internal/types"
)

// Alter operations.
const (
	opAdd    = "add"
	opDrop   = "drop"
	opModify = "modify"
	opRename = "rename"
)

// Constraint kinds.
const (
	constraintPrimaryKey = "primary_key"
	constraintUnique     = "unique"
	constraintForeignKey = "foreign_key"
)

func alterOp(def types.Object) string {
	v, ok := lookup(def, types.CmdAlterOperation)
	if !ok {
		return ""
	}
	return strings.ToLower(render.Text(v))
}

func (s *scope) alterOp() string {
	return alterOp(s.parent)
}

// pgModify reports whether the parent definition modifies a Postgres column,
// where every change is its own ALTER COLUMN action.
func (s *scope) pgModify() bool {
	return s.dialect == types.Postgres && s.alterOp() == opModify
}

// pgModifyActions lists, in sibling order, the commands that each emit an
// action when modifying a Postgres column.
var pgModifyActions = []types.Command{
	types.CmdDataType,
	types.CmdUnsigned,
	types.CmdNotNull,
	types.CmdDefault,
	types.CmdAutoIncrement,
}

// pgAction renders one Postgres column modification action. Actions after
// the first continue the action list of the previous sibling.
func (s *scope) pgAction(action string) string {
	for _, c := range pgModifyActions {
		if c == s.command() {
			break
		}
		v, ok := s.neighbour(c)
		if !ok {
			continue
		}
		if c == types.CmdUnsigned || c == types.CmdAutoIncrement {
			if !isTrue(v) {
				continue
			}
		}
		s.continues = true
		return action
	}
	return action
}

// skipDefinition reports whether a definition cannot be expressed on the
// dialect and is dropped from the statement.
func skipDefinition(def types.Object, defs types.Array, s *scope) (string, bool) {
	op := alterOp(def)
	kind, isConstraint := lookup(def, types.CmdConstraint)
	index, _ := lookup(def, types.CmdIndex)
	isIndex := !isConstraint && isTrue(index)

	switch {
	case isIndex && !s.caps.InlineIndexes:
		return "inline index", true
	case op == opModify && !s.caps.ColumnModification:
		return "column modification", true
	case isConstraint && op != "" && !s.caps.MultiAlterOperation:
		return "constraint alteration", true
	case isConstraint && s.caps.AutoIncrement == render.AutoIncrementRowID &&
		strings.ToLower(render.Text(kind)) == constraintPrimaryKey && coversAutoIncrement(def, defs):
		return "primary key on auto-increment column", true
	}
	return "", false
}

// coversAutoIncrement reports whether a key constraint includes a column
// declared auto-increment in the same definition list. On SQLite that column
// is already INTEGER PRIMARY KEY.
func coversAutoIncrement(def types.Object, defs types.Array) bool {
	fields, ok := lookup(def, types.CmdFields)
	if !ok {
		return false
	}
	covered := make(map[string]bool)
	for _, f := range flatten(fields) {
		covered[render.Text(f)] = true
	}
	for _, other := range defs {
		obj, ok := other.(types.Object)
		if !ok || !isTrue(valueOf(obj, types.CmdAutoIncrement)) {
			continue
		}
		if name, ok := lookup(obj, types.CmdName); ok && covered[render.Text(name)] {
			return true
		}
	}
	return false
}

func valueOf(obj types.Object, c types.Command) any {
	v, _ := lookup(obj, c)
	return v
}

// keptDefinitions marks which sibling definitions the dialect can express.
// Reasons are returned for the dropped ones.
func (s *scope) keptDefinitions() ([]bool, []string) {
	raw, ok := s.neighbour(types.CmdDefinitions)
	if !ok {
		return nil, nil
	}
	defs := flatten(raw)
	keep := make([]bool, len(defs))
	var reasons []string
	for i, d := range defs {
		obj, ok := normalize(d).(types.Object)
		if !ok {
			keep[i] = true
			continue
		}
		if reason, skip := skipDefinition(obj, defs, s); skip {
			reasons = append(reasons, reason)
			continue
		}
		keep[i] = true
	}
	return keep, reasons
}

func renderCreateTable(args any, s *scope) (string, error) {
	var b strings.Builder
	b.WriteString("CREATE ")
	if s.truthy(types.CmdTemporary) {
		b.WriteString("TEMPORARY ")
	}
	b.WriteString("TABLE ")
	if s.truthy(types.CmdIfNotExists) {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(render.Text(args))
	return b.String(), nil
}

func renderLikeTable(args any, s *scope) (string, error) {
	source := render.Text(args)
	switch s.dialect {
	case types.MySQL:
		return "LIKE " + source, nil
	case types.Postgres:
		return "(LIKE " + source + " INCLUDING ALL)", nil
	default:
		return "AS SELECT * FROM " + source + " WHERE 0", nil
	}
}

func renderAlterTable(args any, s *scope) (string, error) {
	if keep, _ := s.keptDefinitions(); len(keep) > 0 && !anyTrue(keep) {
		return "", nil
	}
	return "ALTER TABLE " + render.Text(args), nil
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}

// renderDefinitions lists column, index and constraint definitions. Inside
// CREATE TABLE they are parenthesised. Inside ALTER TABLE they are
// comma-separated, except on SQLite, which accepts one operation per
// statement and gets one ALTER TABLE per definition.
func renderDefinitions(args any, s *scope) (string, error) {
	compiled := flatten(args)
	keep, reasons := s.keptDefinitions()
	for _, reason := range reasons {
		s.suppressed(reason)
	}
	out := make([]string, 0, len(compiled))
	for i, def := range compiled {
		if i < len(keep) && !keep[i] {
			continue
		}
		if text := render.Text(def); text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return "", nil
	}

	if _, ok := s.neighbour(types.CmdCreateTable); ok {
		return "(" + strings.Join(out, ", ") + ")", nil
	}
	if table, ok := s.neighbour(types.CmdAlterTable); ok && !s.caps.MultiAlterOperation {
		for _, def := range out[1:] {
			s.next = append(s.next, "ALTER TABLE "+render.Text(table)+" "+def)
		}
		return out[0], nil
	}
	return strings.Join(out, ", "), nil
}

func renderDropTable(args any, s *scope) (string, error) {
	prefix := "DROP TABLE "
	if s.truthy(types.CmdIfExists) {
		prefix += "IF EXISTS "
	}
	tables := render.Texts(flatten(args))
	if s.dialect == types.SQLite && len(tables) > 1 {
		// SQLite drops one table per statement.
		for _, table := range tables[1:] {
			s.next = append(s.next, prefix+table)
		}
		return prefix + tables[0], nil
	}
	return prefix + strings.Join(tables, ", "), nil
}

func renderTruncateTable(args any, s *scope) (string, error) {
	if !s.caps.Truncate {
		return "DELETE FROM " + render.Text(args), nil
	}
	return "TRUNCATE TABLE " + render.Text(args), nil
}

func renderCreateIndex(args any, s *scope) (string, error) {
	var b strings.Builder
	b.WriteString("CREATE ")
	if s.truthy(types.CmdUnique) {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if s.truthy(types.CmdIfNotExists) {
		if s.dialect == types.MySQL {
			s.suppressed("IF NOT EXISTS on CREATE INDEX")
		} else {
			b.WriteString("IF NOT EXISTS ")
		}
	}
	b.WriteString(render.Text(args))
	return b.String(), nil
}

func renderDropIndex(args any, s *scope) (string, error) {
	var b strings.Builder
	b.WriteString("DROP INDEX ")
	if s.truthy(types.CmdIfExists) {
		if s.dialect == types.MySQL {
			s.suppressed("IF EXISTS on DROP INDEX")
		} else {
			b.WriteString("IF EXISTS ")
		}
	}
	b.WriteString(render.Text(args))
	return b.String(), nil
}

// renderOnTable names the indexed table. Only MySQL needs it when dropping.
func renderOnTable(args any, s *scope) (string, error) {
	if _, ok := s.neighbour(types.CmdDropIndex); ok && s.dialect != types.MySQL {
		return "", nil
	}
	return "ON " + render.Text(args), nil
}

func renderAlterOperation(args any, s *scope) (string, error) {
	_, isConstraint := s.neighbour(types.CmdConstraint)
	isIndex := !isConstraint && s.truthy(types.CmdIndex)

	switch op := strings.ToLower(render.Text(args)); op {
	case opAdd:
		if isConstraint || isIndex {
			return "ADD", nil
		}
		return "ADD COLUMN", nil
	case opDrop:
		if isConstraint || isIndex {
			return "DROP", nil
		}
		return "DROP COLUMN", nil
	case opModify:
		switch s.dialect {
		case types.MySQL:
			if _, ok := s.neighbour(types.CmdOldName); ok {
				return "CHANGE COLUMN", nil
			}
			return "MODIFY COLUMN", nil
		default:
			// Postgres actions each carry their own ALTER COLUMN.
			return "", nil
		}
	case opRename:
		return "RENAME COLUMN", nil
	default:
		return "", s.errorf("unknown alter operation %q", op)
	}
}

func renderOldName(args any, s *scope) (string, error) {
	switch s.alterOp() {
	case opRename:
		return s.quote(render.Text(args)) + " TO", nil
	case opModify:
		if s.dialect == types.MySQL {
			return s.quote(render.Text(args)), nil
		}
	}
	return "", nil
}

// renderName renders a column name. Constraints and indexes render their
// own names.
func renderName(args any, s *scope) (string, error) {
	if _, ok := s.neighbour(types.CmdConstraint); ok {
		return "", nil
	}
	if s.truthy(types.CmdIndex) || s.pgModify() {
		return "", nil
	}
	return s.quote(render.Text(args)), nil
}

// postgresTypes maps MySQL-flavoured type names onto Postgres equivalents.
var postgresTypes = map[string]string{
	"TINYINT":    "SMALLINT",
	"MEDIUMINT":  "INTEGER",
	"DOUBLE":     "DOUBLE PRECISION",
	"DATETIME":   "TIMESTAMP",
	"TINYTEXT":   "TEXT",
	"MEDIUMTEXT": "TEXT",
	"LONGTEXT":   "TEXT",
	"TINYBLOB":   "BYTEA",
	"BLOB":       "BYTEA",
	"MEDIUMBLOB": "BYTEA",
	"LONGBLOB":   "BYTEA",
	"BINARY":     "BYTEA",
	"VARBINARY":  "BYTEA",
}

// unsized lists Postgres types that take no length argument.
var unsized = map[string]bool{
	"SMALLINT": true,
	"INT":      true,
	"INTEGER":  true,
	"BIGINT":   true,
	"TEXT":     true,
	"BYTEA":    true,
}

func renderDataType(args any, s *scope) (string, error) {
	base := render.Text(args)
	if s.pgModify() {
		col, err := s.columnName()
		if err != nil {
			return "", err
		}
		if strings.EqualFold(base, "enum") {
			// ALTER COLUMN ... TYPE takes no constraint.
			list, err := s.enumValues()
			if err != nil {
				return "", err
			}
			return s.pgAction("ALTER COLUMN "+col+" TYPE TEXT") + ", ADD CHECK (" + col + " IN (" + list + "))", nil
		}
		typ, err := s.columnType(base)
		if err != nil {
			return "", err
		}
		return s.pgAction("ALTER COLUMN " + col + " TYPE " + typ), nil
	}
	return s.columnType(base)
}

// columnType builds the full type of the column in the parent definition,
// reading its precision, scale and enum values.
func (s *scope) columnType(base string) (string, error) {
	typ := strings.ToUpper(base)

	if typ == "ENUM" {
		list, err := s.enumValues()
		if err != nil {
			return "", err
		}
		if s.caps.NativeEnum {
			return "ENUM(" + list + ")", nil
		}
		col, err := s.columnName()
		if err != nil {
			return "", err
		}
		return "TEXT CHECK (" + col + " IN (" + list + "))", nil
	}

	switch s.dialect {
	case types.SQLite:
		if s.truthy(types.CmdAutoIncrement) {
			// Only the exact type INTEGER aliases the rowid.
			return "INTEGER", nil
		}
	case types.Postgres:
		if mapped, ok := postgresTypes[typ]; ok {
			typ = mapped
		}
		if unsized[typ] {
			return typ, nil
		}
	}

	precision, ok := s.neighbour(types.CmdPrecision)
	if !ok {
		return typ, nil
	}
	size := render.Text(precision)
	if scale, ok := s.neighbour(types.CmdScale); ok {
		size += ", " + render.Text(scale)
	}
	return typ + "(" + size + ")", nil
}

// enumValues renders the quoted enum_values of the parent definition.
func (s *scope) enumValues() (string, error) {
	raw, ok := s.neighbour(types.CmdEnumValues)
	if !ok {
		return "", s.errorf("enum column has no enum_values")
	}
	values := flatten(raw)
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = render.Literal(s.dialect, v)
	}
	return strings.Join(quoted, ", "), nil
}

func renderUnsigned(args any, s *scope) (string, error) {
	if !isTrue(args) {
		return "", nil
	}
	if s.caps.Unsigned == render.UnsignedKeyword {
		if s.dialect == types.SQLite && s.truthy(types.CmdAutoIncrement) {
			// UNSIGNED INTEGER would no longer alias the rowid.
			return s.suppressed("UNSIGNED on auto-increment column")
		}
		return "UNSIGNED", nil
	}
	col, err := s.columnName()
	if err != nil {
		return "", err
	}
	check := "CHECK (" + col + " >= 0)"
	if s.pgModify() {
		return s.pgAction("ADD " + check), nil
	}
	return check, nil
}

func renderNotNull(args any, s *scope) (string, error) {
	if s.pgModify() {
		col, err := s.columnName()
		if err != nil {
			return "", err
		}
		if isTrue(args) {
			return s.pgAction("ALTER COLUMN " + col + " SET NOT NULL"), nil
		}
		return s.pgAction("ALTER COLUMN " + col + " DROP NOT NULL"), nil
	}
	if isTrue(args) {
		return "NOT NULL", nil
	}
	return "NULL", nil
}

func renderDefault(args any, s *scope) (string, error) {
	value := render.Operand(args)
	if s.pgModify() {
		col, err := s.columnName()
		if err != nil {
			return "", err
		}
		return s.pgAction("ALTER COLUMN " + col + " SET DEFAULT " + value), nil
	}
	return "DEFAULT " + value, nil
}

func renderAutoIncrement(args any, s *scope) (string, error) {
	if !isTrue(args) {
		return "", nil
	}
	switch s.caps.AutoIncrement {
	case render.AutoIncrementIdentity:
		if s.pgModify() {
			col, err := s.columnName()
			if err != nil {
				return "", err
			}
			return s.pgAction("ALTER COLUMN " + col + " ADD GENERATED BY DEFAULT AS IDENTITY"), nil
		}
		return "GENERATED BY DEFAULT AS IDENTITY", nil
	case render.AutoIncrementRowID:
		return "PRIMARY KEY", nil
	default:
		return "AUTO_INCREMENT", nil
	}
}

// renderUnique marks a column unique. Indexes and CREATE INDEX read the flag
// themselves.
func renderUnique(args any, s *scope) (string, error) {
	if !isTrue(args) {
		return "", nil
	}
	for _, c := range []types.Command{types.CmdCreateIndex, types.CmdIndex, types.CmdConstraint} {
		if _, ok := s.neighbour(c); ok {
			return "", nil
		}
	}
	return "UNIQUE", nil
}

func (s *scope) definitionName() string {
	v, ok := s.neighbour(types.CmdName)
	if !ok {
		return ""
	}
	return s.quote(render.Text(v))
}

func renderConstraint(args any, s *scope) (string, error) {
	kind := strings.ToLower(render.Text(args))
	name := s.definitionName()

	if s.alterOp() == opDrop {
		switch {
		case s.dialect == types.MySQL && kind == constraintForeignKey:
			return "FOREIGN KEY " + name, nil
		case s.dialect == types.MySQL && kind == constraintPrimaryKey:
			return "PRIMARY KEY", nil
		case s.dialect == types.MySQL && kind == constraintUnique:
			return "INDEX " + name, nil
		case name == "":
			return "", s.errorf("dropping a constraint requires its name")
		default:
			return "CONSTRAINT " + name, nil
		}
	}

	var keyword string
	switch kind {
	case constraintPrimaryKey:
		keyword = "PRIMARY KEY"
	case constraintUnique:
		keyword = "UNIQUE"
	case constraintForeignKey:
		keyword = "FOREIGN KEY"
	default:
		return "", s.errorf("unknown constraint type %q", kind)
	}
	if name == "" {
		return keyword, nil
	}
	return "CONSTRAINT " + name + " " + keyword, nil
}

func renderIndex(args any, s *scope) (string, error) {
	if !isTrue(args) {
		return "", nil
	}
	if _, ok := s.neighbour(types.CmdConstraint); ok {
		return "", nil
	}
	if !s.caps.InlineIndexes {
		return s.suppressed("inline index")
	}
	keyword := "INDEX"
	if s.truthy(types.CmdUnique) && s.alterOp() != opDrop {
		keyword = "UNIQUE INDEX"
	}
	if name := s.definitionName(); name != "" {
		return keyword + " " + name, nil
	}
	return keyword, nil
}

// renderFields renders a parenthesised column list. Expressions are
// embedded as compiled.
func renderFields(args any, s *scope) (string, error) {
	if s.alterOp() == opDrop {
		return "", nil
	}
	fields := flatten(args)
	out := make([]string, len(fields))
	for i, f := range fields {
		if name, ok := f.(string); ok {
			out[i] = s.quote(name)
			continue
		}
		out[i] = render.Operand(f)
	}
	return "(" + strings.Join(out, ", ") + ")", nil
}

func renderReferences(args any, s *scope) (string, error) {
	if s.alterOp() == opDrop {
		return "", nil
	}
	return "REFERENCES " + render.Text(args), nil
}

func renderTable(args any, _ *scope) (string, error) {
	return render.Text(args), nil
}

// referentialAction renders a foreign key action such as ON DELETE CASCADE.
func referentialAction(keyword string) renderFunc {
	return func(args any, s *scope) (string, error) {
		if s.alterOp() == opDrop {
			return "", nil
		}
		return keyword + " " + strings.ToUpper(render.Text(args)), nil
	}
}

// renderOnUpdate is a referential action next to references and a column
// attribute otherwise.
func renderOnUpdate(args any, s *scope) (string, error) {
	if _, ok := s.neighbour(types.CmdReferences); ok {
		return referentialAction("ON UPDATE")(args, s)
	}
	if !s.caps.ColumnOnUpdate {
		return s.suppressed("column ON UPDATE")
	}
	return "ON UPDATE " + render.Operand(args), nil
}

func renderInvisible(args any, s *scope) (string, error) {
	if !isTrue(args) {
		return "", nil
	}
	if !s.caps.InvisibleIndexes {
		return s.suppressed("INVISIBLE")
	}
	return "INVISIBLE", nil
}

func renderComment(args any, s *scope) (string, error) {
	if !s.caps.Comments {
		return s.suppressed("COMMENT")
	}
	text := strings.ReplaceAll(render.Text(args), `\`, `\\`)
	return `COMMENT "` + strings.ReplaceAll(text, `"`, `""`) + `"`, nil
}
