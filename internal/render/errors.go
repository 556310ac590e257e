package render

import (
	"fmt"

	"github.com/zoobzio/ormql/internal/types"
)

// StructuralError indicates an AST node whose shape a renderer cannot accept,
// such as an argument list of the wrong length. It is never recovered from
// internally and carries the path of the offending node.
type StructuralError struct {
	Path    types.Path
	Command types.Command
	Dialect types.Dialect
	Reason  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s at %s: %s", e.Dialect, e.Command, e.Path, e.Reason)
}

// NewStructuralError creates a structural error for the command at path.
func NewStructuralError(path types.Path, dialect types.Dialect, format string, args ...any) error {
	cmd := types.CmdUnknown
	if last, ok := path.Last(); ok && !last.IsIndex() {
		cmd = last.Command
	}
	return &StructuralError{
		Path:    path,
		Command: cmd,
		Dialect: dialect,
		Reason:  fmt.Sprintf(format, args...),
	}
}
