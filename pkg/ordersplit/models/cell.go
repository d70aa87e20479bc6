// Package models defines data structures for order splitting.
package models

// CellKind classifies the stored value of a cell.
type CellKind int

const (
	// CellBlank is an empty cell.
	CellBlank CellKind = iota
	// CellText is a shared, inline or formula string.
	CellText
	// CellNumber is a numeric cell; Value holds the stored decimal text.
	CellNumber
	// CellBool is a boolean cell; Value is "TRUE" or "FALSE".
	CellBool
	// CellOther covers errors, dates and anything unrecognised.
	CellOther
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellBlank:
		return "blank"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	default:
		return "other"
	}
}

// Cell represents a single cell value.
type Cell struct {
	// Kind is the value type.
	Kind CellKind `json:"kind"`
	// Value is the raw stored text (no number formatting applied).
	Value string `json:"value,omitempty"`
}

// IsBlank reports whether the cell carries no value.
func (c Cell) IsBlank() bool {
	return c.Kind == CellBlank || c.Value == ""
}

// Row represents a single row of cells.
type Row struct {
	// Index is the source row number (1-based).
	Index int `json:"r"`
	// Cells is indexed by column position (0-based).
	Cells []Cell `json:"c,omitempty"`
}

// Cell returns the cell at the 0-based column, or a blank cell when the row
// is shorter than that.
func (r Row) Cell(col int) Cell {
	if col < 0 || col >= len(r.Cells) {
		return Cell{Kind: CellBlank}
	}
	return r.Cells[col]
}
