package adapters

import (
	"github.com/fin-tools/spendsight/pkg/models/api"
	"github.com/fin-tools/spendsight/pkg/models/domain"
)

const dateLayout = "2006-01-02"

func MapTransactionDomainToApi(r domain.TransactionRecord) api.Transaction {
	return api.Transaction{
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

func MapParsedExpenseDomainToApi(p domain.ParsedExpense) api.ParsedExpense {
	return api.ParsedExpense{
		Amount:      p.Amount,
		Currency:    p.Currency,
		Date:        p.Date.Format(dateLayout),
		Description: p.Description,
		Category:    p.Category,
		Confidence:  p.Confidence,
	}
}

func MapPredictionDomainToApi(p domain.CategoryPrediction) api.CategoryPrediction {
	return api.CategoryPrediction{
		Category:      p.Category,
		Confidence:    p.Confidence,
		Probabilities: p.Probabilities,
	}
}

func MapAnomalyDomainToApi(a domain.AnomalyRecord) api.Anomaly {
	return api.Anomaly{
		TransactionID: a.TransactionID,
		Amount:        a.Amount,
		Category:      a.Category,
		Description:   a.Description,
		Score:         a.Score,
		Method:        string(a.Method),
		Reason:        a.Reason,
	}
}

func MapAnomaliesDomainToApi(anomalies []domain.AnomalyRecord) []api.Anomaly {
	res := make([]api.Anomaly, 0, len(anomalies))
	for _, a := range anomalies {
		res = append(res, MapAnomalyDomainToApi(a))
	}
	return res
}

func MapForecastDomainToApi(f domain.SpendForecast) api.Forecast {
	res := api.Forecast{
		Series:          make([]api.ForecastPoint, 0, len(f.Series)),
		TotalForecasted: f.TotalForecasted,
		Trend:           string(f.Trend),
		DaysAhead:       f.DaysAhead,
	}
	for _, p := range f.Series {
		res.Series = append(res.Series, api.ForecastPoint{
			Date:   p.Date.Format(dateLayout),
			Amount: p.Amount,
		})
	}
	return res
}

func MapBreakdownDomainToApi(b domain.SpendingBreakdown) api.Breakdown {
	return api.Breakdown{
		CategoryTotals:  b.CategoryTotals,
		TotalSpending:   b.TotalSpending,
		HighestCategory: b.HighestCategory,
	}
}

func MapPriorityDomainToApi(p domain.Priority) api.Priority {
	switch p {
	case domain.PriorityLow:
		return api.PriorityLow
	case domain.PriorityMedium:
		return api.PriorityMedium
	case domain.PriorityHigh:
		return api.PriorityHigh
	default:
		return api.PriorityLow
	}
}

func MapInsightDomainToApi(i domain.Insight) api.Insight {
	res := api.Insight{
		Kind:    string(i.Kind),
		Title:   i.Title,
		Message: i.Message,
	}
	if i.Kind != domain.InsightInfo {
		res.Priority = MapPriorityDomainToApi(i.Priority)
	}
	if len(i.Anomalies) > 0 {
		res.Anomalies = MapAnomaliesDomainToApi(i.Anomalies)
	}
	return res
}
