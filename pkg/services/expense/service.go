package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/fin-tools/spendsight/pkg/models/domain"
	"github.com/fin-tools/spendsight/pkg/services/classify"
)

// Store is the persistence boundary for transaction records.
type Store interface {
	Add(ctx context.Context, record domain.TransactionRecord) (domain.TransactionRecord, error)
	List(ctx context.Context) ([]domain.TransactionRecord, error)
}

// Predictor fills in a category on creation when the caller omitted one.
type Predictor interface {
	Predict(description string) domain.CategoryPrediction
}

// Service validates transaction input and owns the category-autofill rule of
// the creation path. Analytical components receive only records that passed
// through here.
type Service struct {
	store     Store
	predictor Predictor
}

func NewService(store Store, predictor Predictor) *Service {
	return &Service{
		store:     store,
		predictor: predictor,
	}
}

// Add validates the input, predicts a category when none was supplied and
// persists the record. An unavailable classifier degrades to the default
// category instead of failing the creation.
func (s *Service) Add(ctx context.Context, in domain.NewTransactionInput) (domain.TransactionRecord, error) {
	if in.Type == "" {
		in.Type = domain.TypeExpense
	}
	if err := in.Validate(); err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("invalid transaction: %w", err)
	}

	category := in.Category
	if category == "" {
		category = classify.DefaultCategory
		if s.predictor != nil {
			category = s.predictor.Predict(in.Description).Category
		}
	}

	record := domain.TransactionRecord{
		UserID:      in.UserID,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    category,
		Date:        time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, time.UTC),
		Type:        in.Type,
	}
	return s.store.Add(ctx, record)
}

// List returns the full snapshot of records for analytical calls.
func (s *Service) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	return s.store.List(ctx)
}
