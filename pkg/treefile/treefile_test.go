package treefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const sample = `
tag: html
style: "font-size: 14px"
children:
  - tag: div
    style: "float: left; width: 100px"
  - tag: p
    children:
      - text: hello world
`

func TestParse(t *testing.T) {
	root, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "html", root.Tag)
	assert.Equal(t, 14.0, root.Style.GetFontSize())
	require.Len(t, root.Children, 2)
	width, ok := root.Children[0].Style.GetWidth()
	require.True(t, ok)
	assert.Equal(t, 100.0, width)

	text := root.Children[1].Children[0]
	assert.True(t, text.IsText())
	assert.Equal(t, "hello world", text.Text)
}

func TestParseReportsEveryProblem(t *testing.T) {
	doc := `
tag: html
children:
  - tag: div
    text: both
  - style: "color: red"
  - {}
  - tag: p
    children:
      - text: ok
      - text: styled
        style: "color: red"
      - null
`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 5)
	assert.Equal(t, "/0: node has both tag and text", errs[0].Error())
	assert.Equal(t, "/1: node has neither tag nor text", errs[1].Error())
	assert.Equal(t, "/2: node has neither tag nor text", errs[2].Error())
	assert.Equal(t, "/3/1: text node cannot have style or children", errs[3].Error())
	assert.Equal(t, "/3/2: null child", errs[4].Error())
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown field": "tag: html\ncolour: red\n",
		"text root":     "text: hi\n",
		"bad yaml":      "tag: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	root, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "html", root.Tag)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
