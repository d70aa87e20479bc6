package ordersplit

import (
	"errors"
	"fmt"

	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/parser"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/writer"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = parser.ErrFileNotFound

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrEmptyResult indicates no data row carried a valid order identifier.
var ErrEmptyResult = errors.New("no valid order rows")

// ErrOutputExists indicates the destination exists and overwrite is off.
var ErrOutputExists = writer.ErrOutputExists

// ErrInvalidOptions indicates the options passed to Split are unusable.
var ErrInvalidOptions = errors.New("invalid options")

// Error kinds reported by Kind.
const (
	KindRead        = "ReadError"
	KindEmptyResult = "EmptyResultError"
	KindWrite       = "WriteError"
)

// ReadError reports that the input workbook could not be loaded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// EmptyResultError reports that no group was produced, either because the
// workbook had no data rows or because every row was invalid.
type EmptyResultError struct {
	Path     string
	DataRows int
	Skipped  int
}

func (e *EmptyResultError) Error() string {
	if e.DataRows == 0 {
		return fmt.Sprintf("%v in %s: workbook has no data rows", ErrEmptyResult, e.Path)
	}
	return fmt.Sprintf("%v in %s: all %d data rows have an invalid order identifier in column G",
		ErrEmptyResult, e.Path, e.Skipped)
}

func (e *EmptyResultError) Unwrap() error {
	return ErrEmptyResult
}

// WriteError reports that the output workbook could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Kind names the error kind of err, or returns "" for other errors.
func Kind(err error) string {
	var (
		readErr  *ReadError
		emptyErr *EmptyResultError
		writeErr *WriteError
	)
	switch {
	case errors.As(err, &readErr):
		return KindRead
	case errors.As(err, &emptyErr):
		return KindEmptyResult
	case errors.As(err, &writeErr):
		return KindWrite
	}
	return ""
}
