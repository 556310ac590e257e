package ormql

import "github.com/zoobzio/ormql/internal/compiler"

// CommandInfo describes a registered command: its sibling order per dialect,
// accepted argument count (MaxArgs is -1 when unbounded), and whether it is
// an aggregate, accepts * or DISTINCT, or renders its own negated form.
type CommandInfo = compiler.Info

// Commands returns the command registry in declaration order.
func Commands() []CommandInfo {
	return compiler.Commands()
}
