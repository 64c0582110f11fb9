package api

import "time"

type Transaction struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id,omitempty"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Type        string     `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type CreateTransactionRequest struct {
	UserID      string  `json:"user_id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Type        string  `json:"type,omitempty"`
}

type ParseRequest struct {
	Text string `json:"text"`
}

type Error struct {
	Error string `json:"error"`
}
