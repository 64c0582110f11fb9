package domain

import (
	"fmt"
	"strings"
	"time"
)

type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// TransactionRecord is a single expense or income entry. Records are created
// by the store and are immutable input to every analytical component.
type TransactionRecord struct {
	ID          string
	UserID      string // optional
	Description string
	Amount      float64 // always > 0
	Category    string
	Date        time.Time // calendar date, time component ignored
	Type        TransactionType
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// NewTransactionInput carries the caller-supplied fields of a record before
// the store assigns an ID. Category may be empty; the creation path fills it
// in from the classifier.
type NewTransactionInput struct {
	UserID      string
	Description string
	Amount      float64
	Category    string
	Date        time.Time
	Type        TransactionType
}

// Validate rejects malformed input before it reaches any analytical
// component. Analytics assume validated records.
func (in NewTransactionInput) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("description must not be empty")
	}
	if in.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", in.Amount)
	}
	switch in.Type {
	case TypeExpense, TypeIncome:
	default:
		return fmt.Errorf("type must be %q or %q, got %q", TypeExpense, TypeIncome, in.Type)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("date must be set")
	}
	return nil
}
