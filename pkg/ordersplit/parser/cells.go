package parser

import (
	"strconv"
	"strings"

	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
	"github.com/xuri/excelize/v2"
)

// ExtractRows reads every stored row of a sheet in file order.
// Interior empty rows are kept; trailing empty rows and trailing blank cells
// are dropped.
func ExtractRows(f *excelize.File, sheetName string) ([]models.Row, error) {
	iter, err := f.Rows(sheetName)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var result []models.Row
	lastData := 0
	for rowNum := 1; iter.Next(); rowNum++ {
		values, err := iter.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}

		row := models.Row{Index: rowNum}
		width := 0
		for colIdx, value := range values {
			cell := models.Cell{Kind: models.CellBlank}
			if value != "" {
				cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
				if err != nil {
					return nil, err
				}
				cellType, err := f.GetCellType(sheetName, cellName)
				if err != nil {
					return nil, err
				}
				cell = newCell(cellType, value)
				width = colIdx + 1
			}
			row.Cells = append(row.Cells, cell)
		}
		row.Cells = row.Cells[:width]

		result = append(result, row)
		if width > 0 {
			lastData = len(result)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	return result[:lastData], nil
}

// newCell builds a cell from its stored type and raw value. Booleans are
// stored as 1/0 and are rendered the way spreadsheet applications show them.
func newCell(t excelize.CellType, raw string) models.Cell {
	kind := cellKind(t, raw)
	if kind == models.CellBool {
		if raw == "1" || strings.EqualFold(raw, "true") {
			return models.Cell{Kind: kind, Value: "TRUE"}
		}
		return models.Cell{Kind: kind, Value: "FALSE"}
	}
	return models.Cell{Kind: kind, Value: raw}
}

// cellKind maps the stored cell type to a CellKind.
func cellKind(t excelize.CellType, raw string) models.CellKind {
	if raw == "" {
		return models.CellBlank
	}
	switch t {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.CellText
	case excelize.CellTypeBool:
		return models.CellBool
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			return models.CellNumber
		}
		return models.CellOther
	default:
		return models.CellOther
	}
}

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func ParseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
