package parser

import (
	"fmt"
	"path/filepath"

	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ReadWorkbook loads every worksheet of the xlsx file at path, in workbook
// order. Non-worksheet sheets are skipped. A nil logger is allowed.
func ReadWorkbook(path string, logger *zap.Logger) (*models.Workbook, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	parts, err := InspectContainer(path)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	wb := &models.Workbook{Name: filepath.Base(path)}
	for _, part := range parts {
		if !part.Worksheet {
			logger.Warn("Skipping non-worksheet sheet", zap.String("sheet", part.Name), zap.String("part", part.Path))
			continue
		}
		rows, err := ExtractRows(f, part.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrCorruptPart, part.Name, err)
		}
		logger.Debug("Sheet loaded", zap.String("sheet", part.Name), zap.Int("rows", len(rows)))
		wb.Sheets = append(wb.Sheets, models.Sheet{Name: part.Name, Rows: rows})
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSheets, path)
	}
	return wb, nil
}
