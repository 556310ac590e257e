package compiler

import "github.com/zoobzio/ormql/internal/types"

// isNegated reports whether the node at the end of path sits under an odd run
// of consecutive not commands. The last step is the command being rendered
// and is not counted; the scan stops at the first step that is not a not.
func isNegated(path types.Path) bool {
	count := 0
	for i := len(path) - 2; i >= 0; i-- {
		if path[i].IsIndex() || path[i].Command != types.CmdNot {
			break
		}
		count++
	}
	return count%2 == 1
}
