package api

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ParsedExpense struct {
	Amount      *float64 `json:"amount"`
	Currency    string   `json:"currency,omitempty"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
}

type CategoryPrediction struct {
	Category      string             `json:"category"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}

type Anomaly struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Score         float64 `json:"score"`
	Method        string  `json:"method"`
	Reason        string  `json:"reason"`
}

type ForecastPoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Amount float64 `json:"forecasted_amount"`
}

type Forecast struct {
	Series          []ForecastPoint `json:"forecast"`
	TotalForecasted float64         `json:"total_forecasted_spend"`
	Trend           string          `json:"trend"`
	DaysAhead       int             `json:"days_ahead"`
}

type Breakdown struct {
	CategoryTotals  map[string]float64 `json:"category_breakdown"`
	TotalSpending   float64            `json:"total_spending"`
	HighestCategory string             `json:"highest_category,omitempty"`
}

type Insight struct {
	Kind      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	Priority  Priority  `json:"priority,omitempty"`
	Anomalies []Anomaly `json:"data,omitempty"`
}

type HealthReport struct {
	Status       string          `json:"status"`
	DataPoints   int             `json:"data_points"`
	ModelsLoaded map[string]bool `json:"models_loaded"`
}
