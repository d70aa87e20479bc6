package models

// Group holds the rows sharing one normalized order identifier.
type Group struct {
	// Key is the normalized identifier.
	Key string `json:"key"`
	// Rows are kept in first-seen order.
	Rows []Row `json:"rows"`
}
