package store

import "time"

// TransactionRecord is the row shape persisted by the transaction store.
// Dates are stored as YYYY-MM-DD text.
type TransactionRecord struct {
	ID          string
	UserID      string
	Description string
	Amount      float64
	Category    string
	Date        string
	Type        string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
