package ordersplit

import (
	"errors"

	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/classify"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/layout"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/naming"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/parser"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/writer"
	"go.uber.org/zap"
)

// SplitXLSXByOrder splits filePath into outputPath with default options. The
// caller chose outputPath explicitly, so an existing file there is replaced.
func SplitXLSXByOrder(filePath, outputPath string) (*models.SplitSummary, error) {
	opts := DefaultOptions()
	opts.Overwrite = true
	return Split(filePath, outputPath, opts)
}

// Split reads the workbook at inputPath, groups its data rows by the order
// identifier in column G and writes one sheet per order to outputPath.
//
// Failures are *ReadError, *EmptyResultError or *WriteError; no summary is
// returned with them. Rows with an invalid identifier are counted, not
// reported as errors.
func Split(inputPath, outputPath string, opts Options) (*models.SplitSummary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	logger := opts.logger().With(zap.String("input", inputPath), zap.String("output", outputPath))
	logger.Info("Splitting workbook by order", zap.String("mode", string(opts.Mode)))

	wb, err := parser.ReadWorkbook(inputPath, logger)
	if err != nil {
		return nil, &ReadError{Path: inputPath, Err: err}
	}

	copts := classify.Options{Mode: opts.Mode, Logger: logger}
	if opts.Mode == ModeOrderOperation {
		copts.Transform = func(row models.Row, o classify.Outcome) models.Row {
			return layout.OrderOperationRow(row, o.Key, o.Operation)
		}
	}
	c := classify.New(copts)
	for _, sheet := range wb.Sheets {
		c.AddSheet(sheet)
	}
	res := c.Result()

	if len(res.Groups) == 0 {
		return nil, &EmptyResultError{Path: inputPath, DataRows: wb.DataRowCount(), Skipped: res.Skipped}
	}

	alloc := naming.NewAllocator()
	sheets := make([]writer.Sheet, 0, len(res.Groups))
	for _, g := range res.Groups {
		name := alloc.Allocate(g.Key)
		if name != g.Key {
			logger.Debug("Sheet name differs from order identifier", zap.String("order", g.Key), zap.String("sheet", name))
		}
		sheets = append(sheets, writer.Sheet{Name: name, Rows: g.Rows})
	}

	header := res.Header
	if header != nil && opts.Mode == ModeOrderOperation {
		h := layout.OrderOperationHeader(*header)
		header = &h
	}

	if err := writer.Write(outputPath, header, sheets, writer.Options{Overwrite: opts.Overwrite, Logger: logger}); err != nil {
		if errors.Is(err, writer.ErrNoSheets) {
			return nil, &EmptyResultError{Path: inputPath, DataRows: wb.DataRowCount(), Skipped: res.Skipped}
		}
		return nil, &WriteError{Path: outputPath, Err: err}
	}

	summary := &models.SplitSummary{
		Status:             models.StatusSuccess,
		OutputPath:         outputPath,
		SheetsCreated:      len(sheets),
		RowsExported:       res.Exported,
		SkippedInvalidRows: res.Skipped,
	}
	logger.Info("Split complete",
		zap.Int("sheets_created", summary.SheetsCreated),
		zap.Int("rows_exported", summary.RowsExported),
		zap.Int("skipped_invalid_rows", summary.SkippedInvalidRows))
	return summary, nil
}
