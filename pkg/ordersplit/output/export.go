package output

import (
	"encoding/csv"
	"encoding/xml"
	"errors"
	"io"

	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
)

// ErrEmptySheet indicates the sheet has no rows to export.
var ErrEmptySheet = errors.New("sheet is empty")

// ExportOptions selects rows and columns for export.
type ExportOptions struct {
	// Columns lists 1-based column numbers. Zero entries are ignored.
	Columns []int
	// Keep exports only Columns; otherwise Columns are dropped.
	Keep bool
	// SkipHeader omits the first row.
	SkipHeader bool
}

// DefaultExportOptions drops no columns and skips the header.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{SkipHeader: true}
}

func (o ExportOptions) include(col int) bool {
	listed := false
	for _, c := range o.Columns {
		if c > 0 && c-1 == col {
			listed = true
			break
		}
	}
	if o.Keep {
		return listed
	}
	return !listed
}

// records returns the selected cell values of the sheet.
func records(sheet models.Sheet, opts ExportOptions) ([][]string, error) {
	if len(sheet.Rows) == 0 {
		return nil, ErrEmptySheet
	}
	rows := sheet.Rows
	if opts.SkipHeader {
		rows = rows[1:]
	}

	width := 0
	for _, r := range sheet.Rows {
		if len(r.Cells) > width {
			width = len(r.Cells)
		}
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := []string{}
		for col := 0; col < width; col++ {
			if opts.include(col) {
				rec = append(rec, r.Cell(col).Value)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// WriteCSV exports the sheet as CSV with CRLF line endings.
func WriteCSV(w io.Writer, sheet models.Sheet, opts ExportOptions) error {
	recs, err := records(sheet, opts)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.WriteAll(recs); err != nil {
		return err
	}
	return cw.Error()
}

// WriteXML exports the sheet as <workbook><row><cell>...</cell></row></workbook>.
func WriteXML(w io.Writer, sheet models.Sheet, opts ExportOptions) error {
	recs, err := records(sheet, opts)
	if err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	workbook := xml.StartElement{Name: xml.Name{Local: "workbook"}}
	row := xml.StartElement{Name: xml.Name{Local: "row"}}
	cell := xml.StartElement{Name: xml.Name{Local: "cell"}}

	if err := enc.EncodeToken(workbook); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := enc.EncodeToken(row); err != nil {
			return err
		}
		for _, v := range rec {
			if err := enc.EncodeElement(v, cell); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(row.End()); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(workbook.End()); err != nil {
		return err
	}
	return enc.Flush()
}
