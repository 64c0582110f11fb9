package expense

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fin-tools/spendsight/pkg/adapters"
	"github.com/fin-tools/spendsight/pkg/models/api"
	"github.com/fin-tools/spendsight/pkg/models/domain"
	"github.com/fin-tools/spendsight/pkg/services/anomaly"
	"github.com/fin-tools/spendsight/pkg/services/classify"
	"github.com/fin-tools/spendsight/pkg/services/config"
	"github.com/fin-tools/spendsight/pkg/services/forecast"
	"github.com/fin-tools/spendsight/pkg/services/insight"
)

const (
	dateLayout     = "2006-01-02"
	maxHorizonDays = 365
)

// Service is the record creation and listing boundary.
type Service interface {
	Add(ctx context.Context, in domain.NewTransactionInput) (domain.TransactionRecord, error)
	List(ctx context.Context) ([]domain.TransactionRecord, error)
}

// Parser turns free text into a structured expense.
type Parser interface {
	Parse(raw string) domain.ParsedExpense
}

type Handler struct {
	expenses Service
	parser   Parser
	cfg      config.Config
}

func NewHandler(expenses Service, parser Parser, cfg config.Config) *Handler {
	return &Handler{
		expenses: expenses,
		parser:   parser,
		cfg:      cfg,
	}
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.expenses.List(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	response := make([]api.Transaction, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapTransactionDomainToApi(rec))
	}
	respondJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			respondError(ctx, w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	record, err := h.expenses.Add(ctx, domain.NewTransactionInput{
		UserID:      req.UserID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Type:        domain.TransactionType(req.Type),
	})
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(ctx, w, http.StatusCreated, adapters.MapTransactionDomainToApi(record))
}

func (h *Handler) ParseText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	parsed := h.parser.Parse(req.Text)
	respondJSON(ctx, w, http.StatusOK, adapters.MapParsedExpenseDomainToApi(parsed))
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.expenses.List(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	respondJSON(ctx, w, http.StatusOK, adapters.MapBreakdownDomainToApi(insight.Breakdown(records)))
}

// Anomalies runs multivariate detection by default; ?method=statistical
// selects the per-category z-score pass instead. The two result sets are
// intentionally never merged.
func (h *Handler) Anomalies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.expenses.List(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	var anomalies []domain.AnomalyRecord
	switch method := r.URL.Query().Get("method"); method {
	case "", string(domain.MethodMultivariate):
		anomalies = anomaly.DetectMultivariate(records, h.cfg.Contamination)
	case string(domain.MethodStatistical):
		anomalies = anomaly.DetectStatistical(records, h.cfg.ZThreshold)
	default:
		respondError(ctx, w, http.StatusBadRequest, "unknown detection method "+strconv.Quote(method))
		return
	}
	respondJSON(ctx, w, http.StatusOK, adapters.MapAnomaliesDomainToApi(anomalies))
}

func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := h.cfg.ForecastDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHorizonDays {
			respondError(ctx, w, http.StatusBadRequest, "days must be an integer between 1 and 365")
			return
		}
		days = parsed
	}

	records, err := h.expenses.List(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	projection, err := forecast.Forecast(records, days)
	if errors.Is(err, forecast.ErrInsufficientData) {
		// A short history is an expected state, not a fault.
		respondJSON(ctx, w, http.StatusOK, api.Error{Error: err.Error()})
		return
	}
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to compute forecast")
		return
	}
	respondJSON(ctx, w, http.StatusOK, adapters.MapForecastDomainToApi(*projection))
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.expenses.List(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	settings := insight.Settings{
		Contamination: h.cfg.Contamination,
		ForecastDays:  h.cfg.ForecastDays,
		FocusShare:    insight.DefaultSettings().FocusShare,
	}

	insights := insight.Generate(records, settings)
	response := make([]api.Insight, 0, len(insights))
	for _, i := range insights {
		response = append(response, adapters.MapInsightDomainToApi(i))
	}
	respondJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.expenses.List(ctx)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	_, modelErr := classify.Shared(h.cfg.ModelDir)
	respondJSON(ctx, w, http.StatusOK, api.HealthReport{
		Status:     "active",
		DataPoints: len(records),
		ModelsLoaded: map[string]bool{
			"categorization":    modelErr == nil,
			"anomaly_detection": len(records) >= anomaly.MinMultivariateRecords,
			"forecasting":       len(records) >= forecast.MinRecords,
			"insights":          true,
		},
	})
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	respondJSON(ctx, w, status, api.Error{Error: message})
}
