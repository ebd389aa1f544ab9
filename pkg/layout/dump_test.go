package layout

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dumpDocument() *StyledNode {
	return el("html", "",
		el("div", "position: relative; height: 20px",
			el("p", "", txt("hi")),
			el("div", "position: absolute; top: 0px; width: 5px; height: 5px")))
}

func TestDump(t *testing.T) {
	root, _ := layoutTree(t, dumpDocument(), false)

	var buf bytes.Buffer
	Dump(&buf, root.Flow())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "+ Block"))
	assert.True(t, strings.HasPrefix(lines[1], "| + Block"))
	assert.True(t, strings.HasPrefix(lines[2], "| | + Block"))
	assert.True(t, strings.HasPrefix(lines[3], "| | | + Inline"))
	assert.Contains(t, lines[4], "IS_ABSOLUTELY_POSITIONED")
	assert.Contains(t, lines[4], " cb=")
}

func TestMarshalFlowTree(t *testing.T) {
	root, _ := layoutTree(t, dumpDocument(), false)

	data, err := MarshalFlowTree(root.Flow())
	require.NoError(t, err)

	var tree struct {
		Class    string `json:"class"`
		Children []struct {
			Class          string   `json:"class"`
			ID             uint64   `json:"id"`
			AbsDescendants []uint64 `json:"abs_descendants"`
			Children       []struct {
				Class           string `json:"class"`
				ContainingBlock uint64 `json:"containing_block"`
			} `json:"children"`
		} `json:"children"`
	}
	require.NoError(t, jsoniter.Unmarshal(data, &tree))
	assert.Equal(t, "Block", tree.Class)
	require.Len(t, tree.Children, 1)
	positioned := tree.Children[0]
	require.Len(t, positioned.AbsDescendants, 1)
	require.Len(t, positioned.Children, 2)
	assert.Equal(t, positioned.ID, positioned.Children[1].ContainingBlock)
}

func TestToDOT(t *testing.T) {
	root, _ := layoutTree(t, dumpDocument(), false)

	dot := ToDOT(root.Flow())
	assert.True(t, strings.HasPrefix(dot, "digraph flows {"))
	assert.Equal(t, 4, strings.Count(dot, "->")-strings.Count(dot, "style=dashed"))
	assert.Equal(t, 1, strings.Count(dot, "style=dashed"))
}
