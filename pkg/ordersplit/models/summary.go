package models

// StatusSuccess is the only status a returned summary carries.
const StatusSuccess = "success"

// SplitSummary reports the outcome of a successful split.
type SplitSummary struct {
	// Status is always StatusSuccess.
	Status string `json:"status"`
	// OutputPath echoes the destination path.
	OutputPath string `json:"output_path"`
	// SheetsCreated is the number of groups written as sheets.
	SheetsCreated int `json:"sheets_created"`
	// RowsExported is the number of rows assigned to a group.
	RowsExported int `json:"rows_exported"`
	// SkippedInvalidRows is the number of rows whose identifier was invalid.
	SkippedInvalidRows int `json:"skipped_invalid_rows"`
}
