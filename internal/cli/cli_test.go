package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14flow/pkg/dom"
)

const tree = `
tag: html
style: "margin: 0"
children:
  - tag: div
    style: "height: 50px; background-color: red"
  - tag: div
    style: "position: absolute; left: 10px; top: 10px; width: 40px; height: 20px; background-color: blue"
  - tag: p
    children:
      - text: hello world
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stderr)
	cmd.SetOut(&stdout)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTree(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tree), 0o644))
	return path
}

func TestReflowDump(t *testing.T) {
	out, _, err := run(t, "reflow", "--dump", "--sequential", writeTree(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "+ Block "), lines[0])
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "| "), line)
	}
}

func TestReflowWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "tree.json")
	dotPath := filepath.Join(dir, "tree.dot")
	pngPath := filepath.Join(dir, "tree.png")

	_, _, err := run(t, "reflow", "--validate",
		"--json", jsonPath, "--dot", dotPath, "--png", pngPath, writeTree(t))
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var node map[string]any
	require.NoError(t, jsoniter.Unmarshal(data, &node))
	assert.Equal(t, "Block", node["class"])
	assert.Len(t, node["children"], 3)

	dot, err := os.ReadFile(dotPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dot), "digraph flows {"))
	assert.Contains(t, string(dot), "style=dashed")

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	r, g, b, _ := img.At(20, 20).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b}, "absolute box paints over the block")
}

func TestReflowSVG(t *testing.T) {
	svgPath := filepath.Join(t.TempDir(), "tree.svg")
	_, _, err := run(t, "reflow", "--dot", svgPath, writeTree(t))
	require.NoError(t, err)

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestReflowLogsAtConfiguredLevel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "l14flow.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logger:\n  format: json\n"), 0o644))

	_, stderr, err := run(t, "--config", cfgPath, "--log-level", "debug", "reflow", writeTree(t))
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"phase done"`)
	assert.Contains(t, stderr, `"phase":"build_display_list"`)
	assert.Contains(t, stderr, `"msg":"reflow complete"`)
}

func TestReflowErrors(t *testing.T) {
	_, _, err := run(t, "reflow", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = run(t, "reflow")
	assert.Error(t, err)

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "reflow", writeTree(t))
	assert.Error(t, err)
}

func TestClassList(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a b", "add", "c", "a"}, "a b c\n"},
		{[]string{"a  b a", "remove", "a"}, "b\n"},
		{[]string{"a b", "toggle", "a"}, "false\nb\n"},
		{[]string{"a b", "toggle", "c", "false"}, "false\na b\n"},
		{[]string{"a b c", "replace", "a", "c"}, "true\nc b\n"},
		{[]string{"a b", "contains", "b"}, "true\n"},
		{[]string{"a b", "item", "1"}, "b\n"},
		{[]string{" a\tb  a ", "value"}, "a b\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := run(t, append([]string{"classlist"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestClassListErrors(t *testing.T) {
	_, _, err := run(t, "classlist", "a", "add", "b c")
	assert.ErrorIs(t, err, dom.ErrInvalidCharacter)

	_, _, err = run(t, "classlist", "a", "toggle", "")
	assert.ErrorIs(t, err, dom.ErrSyntax)

	_, _, err = run(t, "classlist", "a", "item", "3")
	assert.ErrorContains(t, err, "out of range")

	_, _, err = run(t, "classlist", "a", "frobnicate")
	assert.ErrorContains(t, err, "unknown operation")
}

func TestReflowExpect(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.png")
	treePath := writeTree(t)

	_, _, err := run(t, "reflow", "--png", ref, treePath)
	require.NoError(t, err)
	_, _, err = run(t, "reflow", "--sequential", "--expect", ref, treePath)
	require.NoError(t, err)

	changed := filepath.Join(dir, "changed.yaml")
	require.NoError(t, os.WriteFile(changed, []byte(strings.Replace(tree, "background-color: red", "background-color: green", 1)), 0o644))
	diff := filepath.Join(dir, "diff.png")
	_, _, err = run(t, "reflow", "--expect", ref, "--diff", diff, changed)
	require.ErrorIs(t, err, ErrReferenceMismatch)
	assert.FileExists(t, diff)
}

func TestReflowStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pngPath := filepath.Join(t.TempDir(), "tree.png")
	var stderr bytes.Buffer
	cmd := NewRootCommand(&stderr)
	cmd.SetArgs([]string{"reflow", "--png", pngPath, writeTree(t)})
	err := cmd.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, pngPath)
}
