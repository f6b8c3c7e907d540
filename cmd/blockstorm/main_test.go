package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockstorm/internal/script"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestScriptPrintsBlocks(t *testing.T) {
	path := writeFile(t, "promote.lua", `
local first = doc.blocks()[1]
doc.set(first.id, {content = "Hello brave world"})
doc.promote(first.id, 6, 11)
doc.append("two\nlines", "quote")
print("blocks", doc.len())
`)

	out, _, err := execute(t, "script", path)
	require.NoError(t, err)
	assert.Equal(t, "blocks\t4\n"+
		"p\tfalse\tHello \n"+
		"p\ttrue\tbrave\n"+
		"p\tfalse\t world\n"+
		"quote\tfalse\ttwo\\nlines\n", out)
}

func TestScriptUsesConfiguredDefaultTag(t *testing.T) {
	cfg := writeFile(t, "blockstorm.yaml", "editor:\n  default_tag: quote\n")
	path := writeFile(t, "empty.lua", "-- nothing to do\n")

	out, _, err := execute(t, "script", "--config", cfg, path)
	require.NoError(t, err)
	assert.Equal(t, "quote\tfalse\t\n", out)
}

func TestScriptTimeout(t *testing.T) {
	path := writeFile(t, "spin.lua", "while true do end\n")

	_, _, err := execute(t, "script", "--timeout", "50ms", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, script.ErrExecutionTimeout)
}

func TestScriptRequiresFile(t *testing.T) {
	_, _, err := execute(t, "script")
	assert.Error(t, err)
}

func TestScriptRejectsBadLogLevel(t *testing.T) {
	path := writeFile(t, "empty.lua", "")

	_, _, err := execute(t, "script", "--log-level", "loud", path)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "blockstorm dev (commit unknown, built unknown)\n", out)
}

func TestReadParagraphs(t *testing.T) {
	path := writeFile(t, "notes.txt", "first line\r\nsame paragraph\n\n\n  \nsecond\n")

	paragraphs, err := readParagraphs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first line\nsame paragraph", "second"}, paragraphs)
}

func TestReadParagraphsLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	path := writeFile(t, "long.txt", "short\n\n"+long)

	paragraphs, err := readParagraphs(path)
	require.NoError(t, err)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "short", paragraphs[0])
	assert.Len(t, paragraphs[1], len(long))
}

func TestReadParagraphsMissingFile(t *testing.T) {
	_, err := readParagraphs(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestEditFlags(t *testing.T) {
	cmd := newEditCmd()
	assert.NotNil(t, cmd.Flags().Lookup("metrics-addr"))
	assert.NotNil(t, cmd.Flags().Lookup("import"))
}
