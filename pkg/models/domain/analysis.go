package domain

import "time"

// ParsedExpense is the structured result of free-text extraction. Amount and
// Currency are absent when no value pattern matched; Date falls back to the
// current day when no date cue was found.
type ParsedExpense struct {
	Amount      *float64
	Currency    string // symbol or code as written, e.g. "₹" or "euro"
	Date        time.Time
	Description string // residual text after extraction, never empty
	Category    string
	Confidence  float64 // in [0,1]; 0 when the classifier is unavailable
}

// CategoryPrediction is the classifier output for one description.
type CategoryPrediction struct {
	Category      string
	Confidence    float64            // max class probability
	Probabilities map[string]float64 // per-class, sums to ~1
}

type AnomalyMethod string

const (
	MethodStatistical  AnomalyMethod = "statistical"
	MethodMultivariate AnomalyMethod = "multivariate"
)

// AnomalyRecord flags one transaction. Score semantics depend on Method:
// statistical scores are signed z-scores, multivariate scores are isolation
// scores where lower means more anomalous.
type AnomalyRecord struct {
	TransactionID string
	Amount        float64
	Category      string
	Description   string
	Score         float64
	Method        AnomalyMethod
	Reason        string
}

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

type ForecastPoint struct {
	Date   time.Time
	Amount float64 // never negative
}

// SpendForecast is a daily spending projection over the requested horizon.
type SpendForecast struct {
	Series          []ForecastPoint // exactly DaysAhead points, in order
	TotalForecasted float64
	Trend           Trend
	DaysAhead       int
}

// SpendingBreakdown is a structural view of spending by category.
type SpendingBreakdown struct {
	CategoryTotals  map[string]float64
	TotalSpending   float64
	HighestCategory string
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type InsightKind string

const (
	InsightSummary       InsightKind = "summary"
	InsightCategoryFocus InsightKind = "category_focus"
	InsightAnomalyAlert  InsightKind = "anomaly_alert"
	InsightForecast      InsightKind = "forecast"
	InsightSavingTip     InsightKind = "saving_tip"
	InsightInfo          InsightKind = "info"
)

// Insight is one narrative finding. Anomalies is only populated for
// anomaly_alert insights; every other kind carries text fields alone.
type Insight struct {
	Kind      InsightKind
	Title     string
	Message   string
	Priority  Priority
	Anomalies []AnomalyRecord
}
