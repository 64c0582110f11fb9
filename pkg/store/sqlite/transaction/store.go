package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fin-tools/spendsight/pkg/models/domain"
	"github.com/fin-tools/spendsight/pkg/models/store"
)

const dateLayout = "2006-01-02"

// Store persists transaction records. Add assigns the record ID.
type Store interface {
	Add(ctx context.Context, record domain.TransactionRecord) (domain.TransactionRecord, error)
	List(ctx context.Context) ([]domain.TransactionRecord, error)
}

type transactionStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &transactionStore{db: db}, nil
}

func (s *transactionStore) Add(ctx context.Context, record domain.TransactionRecord) (domain.TransactionRecord, error) {
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()

	row := mapDomainToStore(record)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, user_id, description, amount, category, date, type, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		row.UserID,
		row.Description,
		row.Amount,
		row.Category,
		row.Date,
		row.Type,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("insert transaction: %w", err)
	}
	return record, nil
}

func (s *transactionStore) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, description, amount, category, date, type, created_at, updated_at
		FROM transactions
		ORDER BY date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var row store.TransactionRecord
		err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.Description,
			&row.Amount,
			&row.Category,
			&row.Date,
			&row.Type,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		record, err := mapStoreToDomain(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func mapDomainToStore(r domain.TransactionRecord) store.TransactionRecord {
	return store.TransactionRecord{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        r.Date.Format(dateLayout),
		Type:        string(r.Type),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func mapStoreToDomain(r store.TransactionRecord) (domain.TransactionRecord, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("parse stored date %q: %w", r.Date, err)
	}
	return domain.TransactionRecord{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        date,
		Type:        domain.TransactionType(r.Type),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}
