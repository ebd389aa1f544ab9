package layout

// FlowClass tags the concrete variant of a Flow. The set is closed.
type FlowClass uint8

const (
	ClassBlock FlowClass = iota
	ClassInline
	ClassListItem
	ClassTableWrapper
	ClassTable
	ClassTableColGroup
	ClassTableRowGroup
	ClassTableRow
	ClassTableCaption
	ClassTableCell
)

var classNames = [...]string{
	ClassBlock:         "Block",
	ClassInline:        "Inline",
	ClassListItem:      "ListItem",
	ClassTableWrapper:  "TableWrapper",
	ClassTable:         "Table",
	ClassTableColGroup: "TableColGroup",
	ClassTableRowGroup: "TableRowGroup",
	ClassTableRow:      "TableRow",
	ClassTableCaption:  "TableCaption",
	ClassTableCell:     "TableCell",
}

func (c FlowClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "Unknown"
}

func (c FlowClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsProperTableChild reports whether c may appear directly inside a table:
// a row, row group, column group or caption.
func (c FlowClass) IsProperTableChild() bool {
	switch c {
	case ClassTableRow, ClassTableRowGroup, ClassTableColGroup, ClassTableCaption:
		return true
	}
	return false
}

// IsTableKind reports whether c is any of the table-related variants.
func (c FlowClass) IsTableKind() bool {
	switch c {
	case ClassTableWrapper, ClassTable, ClassTableColGroup, ClassTableRowGroup,
		ClassTableRow, ClassTableCaption, ClassTableCell:
		return true
	}
	return false
}
