package compiler

import (
	"testing"

	"github.com/zoobzio/ormql/internal/types"
)

func pathOf(steps ...any) types.Path {
	var p types.Path
	for _, s := range steps {
		switch v := s.(type) {
		case types.Command:
			p = p.Append(types.KeyStep(v))
		case int:
			p = p.Append(types.IndexStep(v))
		}
	}
	return p
}

func TestIsNegated(t *testing.T) {
	tests := []struct {
		name string
		path types.Path
		want bool
	}{
		{"empty", nil, false},
		{"bare", pathOf(types.CmdEq), false},
		{"single", pathOf(types.CmdWhere, types.CmdNot, types.CmdEq), true},
		{"double", pathOf(types.CmdWhere, types.CmdNot, types.CmdNot, types.CmdEq), false},
		{"triple", pathOf(types.CmdNot, types.CmdNot, types.CmdNot, types.CmdEq), true},
		{"last step excluded", pathOf(types.CmdWhere, types.CmdNot), false},
		{"run broken by and", pathOf(types.CmdNot, types.CmdAnd, 0, types.CmdEq), false},
		{"run broken by index", pathOf(types.CmdNot, 0, types.CmdEq), false},
		{"only contiguous run counts", pathOf(types.CmdNot, types.CmdWhere, types.CmdNot, types.CmdEq), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNegated(tt.path); got != tt.want {
				t.Errorf("isNegated(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
