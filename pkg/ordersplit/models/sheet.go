package models

// Sheet represents an ordered sequence of rows under a unique name.
type Sheet struct {
	// Name is the sheet name, unique within its workbook.
	Name string `json:"name"`
	// Rows contains the stored rows in file order. The first row, if any,
	// is the header.
	Rows []Row `json:"rows,omitempty"`
}

// Header returns the first row and true, or false for an empty sheet.
func (s Sheet) Header() (Row, bool) {
	if len(s.Rows) == 0 {
		return Row{}, false
	}
	return s.Rows[0], true
}

// DataRows returns every row after the header.
func (s Sheet) DataRows() []Row {
	if len(s.Rows) < 2 {
		return nil
	}
	return s.Rows[1:]
}
