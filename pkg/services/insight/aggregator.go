package insight

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fin-tools/spendsight/pkg/models/domain"
	"github.com/fin-tools/spendsight/pkg/services/anomaly"
	"github.com/fin-tools/spendsight/pkg/services/forecast"
)

var amountPrinter = message.NewPrinter(language.English)

// inr renders a monetary amount with thousands separators, e.g. ₹1,234.56.
func inr(v float64) string {
	return amountPrinter.Sprintf("₹%.2f", v)
}

// Settings holds the thresholds the aggregator hands down to the detectors
// and the forecaster.
type Settings struct {
	// Contamination is the expected outlier fraction for multivariate detection.
	Contamination float64
	// ForecastDays is the projection horizon quoted in the forecast insight.
	ForecastDays int
	// FocusShare is the spend share above which the top category is worth a
	// medium-priority callout (default: 0.4).
	FocusShare float64
}

func DefaultSettings() Settings {
	return Settings{
		Contamination: anomaly.DefaultContamination,
		ForecastDays:  forecast.DefaultHorizonDays,
		FocusShare:    0.4,
	}
}

// Generate composes anomaly detection, forecasting and a category breakdown
// into narrative insights. Emission order is fixed - summary, category_focus,
// anomaly_alert, forecast, saving_tip - and is never re-sorted by priority.
// Empty input yields exactly one info insight.
func Generate(records []domain.TransactionRecord, settings Settings) []domain.Insight {
	if len(records) == 0 {
		return []domain.Insight{{
			Kind:    domain.InsightInfo,
			Message: "No data available to generate insights.",
		}}
	}

	breakdown := Breakdown(records)
	insights := []domain.Insight{{
		Kind:    domain.InsightSummary,
		Title:   "Total Spending Overview",
		Message: fmt.Sprintf("You have spent a total of %s across %d transactions.", inr(breakdown.TotalSpending), len(records)),
		Priority: domain.PriorityLow,
	}}

	if breakdown.HighestCategory != "" {
		top := breakdown.CategoryTotals[breakdown.HighestCategory]
		share := top / breakdown.TotalSpending
		priority := domain.PriorityLow
		if share > settings.FocusShare {
			priority = domain.PriorityMedium
		}
		insights = append(insights, domain.Insight{
			Kind:  domain.InsightCategoryFocus,
			Title: fmt.Sprintf("High Spending in %s", breakdown.HighestCategory),
			Message: fmt.Sprintf("%s accounts for %.1f%% of your total spending (%s).",
				breakdown.HighestCategory, share*100, inr(top)),
			Priority: priority,
		})
	}

	if anomalies := anomaly.DetectMultivariate(records, settings.Contamination); len(anomalies) > 0 {
		insights = append(insights, domain.Insight{
			Kind:  domain.InsightAnomalyAlert,
			Title: "Unusual Activity Detected",
			Message: fmt.Sprintf("We found %d transactions that look out of character for your spending habits.",
				len(anomalies)),
			Priority:  domain.PriorityHigh,
			Anomalies: anomalies,
		})
	}

	if projection, err := forecast.Forecast(records, settings.ForecastDays); err == nil {
		priority := domain.PriorityLow
		if projection.Trend == domain.TrendIncreasing {
			priority = domain.PriorityMedium
		}
		insights = append(insights, domain.Insight{
			Kind:  domain.InsightForecast,
			Title: fmt.Sprintf("Spending Trend: %s", capitalize(string(projection.Trend))),
			Message: fmt.Sprintf("Based on current trends, you are projected to spend %s over the next %d days.",
				inr(projection.TotalForecasted), projection.DaysAhead),
			Priority: priority,
		})

		if projection.Trend == domain.TrendIncreasing {
			insights = append(insights, domain.Insight{
				Kind:  domain.InsightSavingTip,
				Title: "Saving Opportunity",
				Message: "Your spending is on an upward trend. " +
					"High-impact areas like food and subscriptions could be optimized to save ₹200-500 next month.",
				Priority: domain.PriorityMedium,
			})
		}
	}

	return insights
}

// Breakdown aggregates per-category totals. Ties on the highest category
// resolve to the alphabetically first name so the result is deterministic.
func Breakdown(records []domain.TransactionRecord) domain.SpendingBreakdown {
	totals := make(map[string]float64)
	total := 0.0
	for _, r := range records {
		totals[r.Category] += r.Amount
		total += r.Amount
	}

	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	highest := ""
	for _, c := range categories {
		if highest == "" || totals[c] > totals[highest] {
			highest = c
		}
	}

	return domain.SpendingBreakdown{
		CategoryTotals:  totals,
		TotalSpending:   total,
		HighestCategory: highest,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
