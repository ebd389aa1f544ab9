package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14flow/pkg/css"
)

func TestVariantAccessors(t *testing.T) {
	block := NewBlockFlow(css.NewStyle(), ForceNonfloated)
	inline := NewInlineFlow([]*Fragment{NewTextFragment(css.NewStyle(), "hi")})
	cell := NewTableCellFlow(css.ParseInlineStyle("display: table-cell"))

	assert.Same(t, block, block.AsBlock())
	assert.Same(t, inline, inline.AsInline())
	assert.Same(t, cell, cell.AsTableCell())
	// Every block-like variant exposes its block view.
	assert.Same(t, &cell.BlockFlow, cell.AsBlock())

	requirePanicIs(t, ErrWrongFlowVariant, func() { inline.AsBlock() })
	requirePanicIs(t, ErrWrongFlowVariant, func() { block.AsTable() })
	requirePanicIs(t, ErrWrongFlowVariant, func() { block.ColumnComputedInlineSizes() })

	_, err := TryAsBlock(inline)
	var wv *WrongVariantError
	require.True(t, errors.As(err, &wv))
	assert.Equal(t, "AsBlock", wv.Op)
	assert.Equal(t, ClassInline, wv.Class)

	b, err := TryAsBlock(cell)
	require.NoError(t, err)
	assert.Same(t, &cell.BlockFlow, b)

	_, err = TryAsTableRow(cell)
	assert.ErrorIs(t, err, ErrWrongFlowVariant)
}

func TestClassification(t *testing.T) {
	assert.True(t, ClassTableRowGroup.IsProperTableChild())
	assert.True(t, ClassTableColGroup.IsProperTableChild())
	assert.True(t, ClassTableCaption.IsProperTableChild())
	assert.False(t, ClassTableCell.IsProperTableChild())
	assert.False(t, ClassBlock.IsTableKind())
	assert.True(t, ClassTableWrapper.IsTableKind())

	fixed := NewBlockFlow(css.ParseInlineStyle("position: fixed"), ForceNonfloated)
	rel := NewBlockFlow(css.ParseInlineStyle("position: relative"), ForceNonfloated)
	assert.True(t, IsFixed(fixed))
	assert.True(t, IsPositioned(fixed))
	assert.True(t, IsRelativelyPositioned(rel))
	assert.True(t, rel.IsAbsoluteContainingBlock())
	assert.False(t, NewBlockFlow(css.NewStyle(), ForceNonfloated).IsAbsoluteContainingBlock())
	assert.True(t, IsLeaf(rel))
}

func TestPhaseNotImplemented(t *testing.T) {
	inline := NewInlineFlow(nil)
	colgroup := NewTableColGroupFlow(css.ParseInlineStyle("display: table-column-group"), nil)
	requirePanicIs(t, ErrNotImplemented, func() { inline.GeneratedContainingBlockRect() })
	requirePanicIs(t, ErrNotImplemented, func() { colgroup.GeneratedContainingBlockRect() })
}

func TestAnonymousTableBoxes(t *testing.T) {
	table := NewTableFlow(css.ParseInlineStyle("display: table; text-align: right"))
	tref := NewFlowRef(table)
	defer tref.Release()

	cellA := NewFlowRef(NewTableCellFlow(css.ParseInlineStyle("display: table-cell")))
	cellB := NewFlowRef(NewTableCellFlow(css.ParseInlineStyle("display: table-cell")))
	require.True(t, NeedAnonymousFlow(ClassTable, cellA.Flow()))
	AppendChild(table, cellA)
	AppendChild(table, cellB)

	// Both cells share one anonymous row.
	require.Equal(t, 1, ChildCount(table))
	row := kid(table, 0)
	assert.Equal(t, ClassTableRow, row.Class())
	assert.True(t, row.AsTableRow().Fragment.Anonymous)
	assert.Equal(t, css.TextAlignRight, row.Base().Flags.TextAlign())
	assert.Equal(t, 2, ChildCount(row))
}

func TestAnonymousCellAroundBlock(t *testing.T) {
	row := NewTableRowFlow(css.ParseInlineStyle("display: table-row"))
	rref := NewFlowRef(row)
	defer rref.Release()

	AppendChild(row, NewFlowRef(NewBlockFlow(css.NewStyle(), ForceNonfloated)))
	require.Equal(t, 1, ChildCount(row))
	cell := kid(row, 0)
	assert.Equal(t, ClassTableCell, cell.Class())
	assert.Equal(t, ClassBlock, kid(cell, 0).Class())
}

func TestGenerateMissingChildFlow(t *testing.T) {
	group := NewTableRowGroupFlow(css.ParseInlineStyle("display: table-row-group"))
	ref := GenerateMissingChildFlow(group)
	assert.Equal(t, ClassTableRow, ref.Flow().Class())
	ref.Release()

	requirePanicIs(t, ErrNoAnonymousChild, func() {
		GenerateMissingChildFlow(NewBlockFlow(css.NewStyle(), ForceNonfloated))
	})
}

func TestBuildFlowTreeAnonymousTableParts(t *testing.T) {
	doc := el("html", "",
		el("table", "display: table",
			el("td", "display: table-cell", txt("one")),
			el("td", "display: table-cell", txt("two"))))
	root := BuildFlowTree(doc)
	defer root.Release()

	wrapper := kid(root.Flow(), 0)
	require.Equal(t, ClassTableWrapper, wrapper.Class())
	table := kid(wrapper, 0)
	require.Equal(t, ClassTable, table.Class())
	require.Equal(t, 1, ChildCount(table), "exactly one anonymous row")
	row := kid(table, 0)
	assert.Equal(t, ClassTableRow, row.Class())
	assert.Equal(t, 2, ChildCount(row))
}

func TestRepairStyle(t *testing.T) {
	f := NewBlockFlow(css.ParseInlineStyle("float: left"), FloatIfNecessary)
	f.Flags.Insert(HasRightFloatedDescendants)
	f.RemoveDamage(AllDamage)

	f.RepairStyle(css.ParseInlineStyle("float: right"))
	assert.True(t, f.Flags.Contains(FloatsRight))
	assert.False(t, f.Flags.Contains(FloatsLeft))
	assert.True(t, f.Flags.Contains(HasRightFloatedDescendants), "derived bits survive")
	assert.False(t, f.RestyleDamage().Contains(ReconstructFlowDamage))

	f.RepairStyle(css.ParseInlineStyle("position: absolute"))
	assert.True(t, f.RestyleDamage().Contains(ReconstructFlowDamage))
}

func TestBuildFlowTreeAbsoluteInsideInline(t *testing.T) {
	doc := el("html", "",
		el("div", "position: relative",
			txt("before"),
			el("span", "display: inline",
				el("div", "position: absolute; width: 50px; height: 50px", txt("abs"))),
			txt("after")))
	root := BuildFlowTree(doc)
	defer root.Release()

	cb := kid(root.Flow(), 0)
	require.Equal(t, 3, ChildCount(cb), "the inline run splits around the absolute box")
	assert.Equal(t, ClassInline, kid(cb, 0).Class())
	abs := kid(cb, 1)
	assert.Equal(t, ClassBlock, abs.Class())
	assert.Equal(t, ClassInline, kid(cb, 2).Class())

	assert.Equal(t, 1, cb.Base().AbsDescendants.Len())
	assert.Same(t, cb, abs.Base().AbsoluteCB.Flow())
	assert.Zero(t, root.Flow().Base().AbsDescendants.Len())
}

func TestBuildFlowTreeBlockInsideInline(t *testing.T) {
	doc := el("html", "",
		el("div", "",
			el("span", "display: inline",
				txt("a"),
				el("div", "height: 40px; background-color: red"),
				el("em", "display: inline; float: left; width: 10px; height: 10px"),
				txt("b"))))
	root, _ := layoutTree(t, doc, false)

	div := kid(root.Flow(), 0)
	require.Equal(t, 4, ChildCount(div))
	assert.Equal(t, ClassInline, kid(div, 0).Class())

	block := kid(div, 1)
	assert.Equal(t, ClassBlock, block.Class())
	assert.Equal(t, 40.0, block.Base().Position.Height)
	assert.Greater(t, block.Base().Position.Y, 0.0, "below the first line")

	float := kid(div, 2)
	assert.True(t, float.Base().Flags.Contains(FloatsLeft))
	assert.Equal(t, ClassInline, kid(div, 3).Class())
}
