package models

// IdentifierColumn is the 0-based position of the order identifier (column G).
const IdentifierColumn = 6

// Workbook represents a loaded workbook.
type Workbook struct {
	// Name is the workbook file name (no path).
	Name string `json:"name"`
	// Sheets lists worksheets in workbook order.
	Sheets []Sheet `json:"sheets"`
}

// DataRowCount returns the number of non-header rows across all sheets.
func (w *Workbook) DataRowCount() int {
	n := 0
	for _, s := range w.Sheets {
		n += len(s.DataRows())
	}
	return n
}
