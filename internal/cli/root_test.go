package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"compile", "commands", "apply", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRoot_DialectFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, `{"create_table": "t", "definitions": [{"name": "n", "data_type": "int", "unsigned": true}]}`, "compile", "-d", "postgres")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t (\"n\" INT CHECK (\"n\" >= 0));\n", out)
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ormql.yaml"), []byte("dialect: mysql\nformat: yaml\n"), 0o600))
	t.Chdir(dir)

	out, _, err := execute(t, "select: '*'\nfrom: t\n", "compile")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t;\n", out)
}

func TestRoot_DebugLogging(t *testing.T) {
	t.Chdir(t.TempDir())

	_, errOut, err := execute(t, `{"select": "*", "from": "t", "for_update": true}`, "compile", "-d", "sqlite", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, errOut, "FOR UPDATE")
	assert.Contains(t, errOut, "level=DEBUG")
}

func TestRoot_InvalidDialect(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "", "compile", "-d", "oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dialect")
}
