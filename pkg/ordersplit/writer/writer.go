// Package writer serializes grouped rows into a new xlsx workbook.
package writer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	// ErrNoSheets indicates there is nothing to write.
	ErrNoSheets = errors.New("no sheets to write")
	// ErrOutputDir indicates the destination directory is missing.
	ErrOutputDir = errors.New("output directory not found")
	// ErrOutputExists indicates the destination exists and overwrite is off.
	ErrOutputExists = errors.New("output file already exists")
	// ErrRowLimit indicates a sheet would exceed the format's row limit.
	ErrRowLimit = fmt.Errorf("sheet exceeds %d rows", excelize.TotalRows)
	// ErrDuplicateSheet indicates two sheets would share a name under case
	// folding.
	ErrDuplicateSheet = errors.New("duplicate sheet name")
	// ErrColumnLimit indicates a row would exceed the format's column limit.
	ErrColumnLimit = fmt.Errorf("row exceeds %d columns", excelize.MaxColumns)
)

// Sheet is one output worksheet.
type Sheet struct {
	// Name must already be unique and legal.
	Name string
	// Rows are written in order below the header.
	Rows []models.Row
}

// Options configures Write.
type Options struct {
	// Overwrite allows replacing an existing destination file.
	Overwrite bool
	// Logger may be nil.
	Logger *zap.Logger
}

// Write builds a workbook with one sheet per entry, each starting with header
// when it is non-nil, and publishes it at path. The destination is either
// fully written or left untouched.
func Write(path string, header *models.Row, sheets []Sheet, opts Options) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputDir, dir)
	}
	if !opts.Overwrite {
		if _, err := os.Lstat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return fmt.Errorf("sheet %q: %w", s.Name, err)
			}
		} else {
			if idx, err := f.GetSheetIndex(s.Name); err != nil {
				return fmt.Errorf("sheet %q: %w", s.Name, err)
			} else if idx != -1 {
				return fmt.Errorf("%w: %q", ErrDuplicateSheet, s.Name)
			}
			if _, err := f.NewSheet(s.Name); err != nil {
				return fmt.Errorf("sheet %q: %w", s.Name, err)
			}
		}
		if err := writeSheet(f, s, header); err != nil {
			return fmt.Errorf("sheet %q: %w", s.Name, err)
		}
		logger.Debug("Sheet written", zap.String("sheet", s.Name), zap.Int("rows", len(s.Rows)))
	}

	return publish(f, path, opts.Overwrite)
}

func writeSheet(f *excelize.File, s Sheet, header *models.Row) error {
	sw, err := f.NewStreamWriter(s.Name)
	if err != nil {
		return err
	}

	rowNum := 1
	put := func(r models.Row) error {
		if rowNum > excelize.TotalRows {
			return ErrRowLimit
		}
		if len(r.Cells) > excelize.MaxColumns {
			return ErrColumnLimit
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		rowNum++
		return sw.SetRow(cell, rowValues(r))
	}

	if header != nil {
		if err := put(*header); err != nil {
			return err
		}
	}
	for _, r := range s.Rows {
		if err := put(r); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// rowValues converts cells to stream writer values. Blank cells become nil
// so no cell element is emitted for them.
func rowValues(r models.Row) []interface{} {
	values := make([]interface{}, len(r.Cells))
	for i, c := range r.Cells {
		switch {
		case c.IsBlank():
			values[i] = nil
		case c.Kind == models.CellNumber:
			values[i] = parser.ParseValue(c.Value)
		case c.Kind == models.CellBool:
			values[i] = c.Value == "TRUE"
		default:
			values[i] = c.Value
		}
	}
	return values
}

// publish writes f next to dest and moves it into place. With overwrite off
// the final step is a hard link, which fails instead of replacing a file
// that appeared in the meantime.
func publish(f *excelize.File, dest string, overwrite bool) error {
	tmp := filepath.Join(filepath.Dir(dest), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dest), uuid.NewString()))
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if overwrite {
		return os.Rename(tmp, dest)
	}
	err = link(tmp, dest)
	if linkUnsupported(err) {
		err = copyExclusive(tmp, dest)
	}
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrOutputExists, dest)
	}
	return err
}

var link = os.Link

// linkUnsupported reports whether err means the filesystem has no hard links
// (FAT, exFAT, some network shares).
func linkUnsupported(err error) bool {
	return errors.Is(err, errors.ErrUnsupported) || errors.Is(err, syscall.EPERM)
}

// copyExclusive copies src to a newly created dest and fails with
// fs.ErrExist when dest already exists. A partial dest is removed.
func copyExclusive(src, dest string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(dest)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	return out.Close()
}
