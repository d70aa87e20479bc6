// Package output renders split summaries and exports sheets as text formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
)

// ToJSON serializes a summary.
func ToJSON(summary *models.SplitSummary, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(summary, "", "  ")
	}
	return json.Marshal(summary)
}

// WriteSummary prints the counters one per line.
func WriteSummary(w io.Writer, summary *models.SplitSummary) error {
	_, err := fmt.Fprintf(w,
		"Status: %s\nOutput file: %s\nSheets created: %d\nRows exported: %d\nRows skipped (invalid G): %d\n",
		summary.Status, summary.OutputPath, summary.SheetsCreated, summary.RowsExported, summary.SkippedInvalidRows)
	return err
}
