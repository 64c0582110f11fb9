package forecast

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/fin-tools/spendsight/pkg/models/domain"
)

const (
	// MinRecords is the smallest history a trend fit is attempted on.
	MinRecords = 10

	// DefaultHorizonDays is the projection window when the caller does not
	// ask for a specific one.
	DefaultHorizonDays = 30

	// trendDeadZone keeps near-flat slopes labeled stable so noise does not
	// flip the trend between runs.
	trendDeadZone = 0.01
)

// ErrInsufficientData reports a history too short to fit. Callers surface it
// as a structured "not enough data" result, never a fault.
var ErrInsufficientData = errors.New("not enough data for forecasting (minimum 10 records required)")

// Forecast projects daily spending horizonDays into the future from a linear
// trend over the history. Daily totals are re-indexed over the full
// continuous date range with zero-fill for missing days; skipping the gaps
// would bias the fit toward active days. Projections are clamped at zero and
// the series always has exactly horizonDays points.
func Forecast(records []domain.TransactionRecord, horizonDays int) (*domain.SpendForecast, error) {
	if len(records) < MinRecords {
		return nil, ErrInsufficientData
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	daily := aggregateDaily(records)

	// A single aggregated day gives the regression no x spread and the fit
	// degenerates to NaN; degrade to a flat line at the daily mean instead.
	var intercept, slope float64
	if len(daily.amounts) < 2 {
		intercept = stat.Mean(daily.amounts, nil)
	} else {
		days := make([]float64, len(daily.amounts))
		for i := range days {
			days[i] = float64(i)
		}
		intercept, slope = stat.LinearRegression(days, daily.amounts, nil, false)
	}

	lastDay := len(daily.amounts) - 1
	series := make([]domain.ForecastPoint, 0, horizonDays)
	total := 0.0
	for i := 1; i <= horizonDays; i++ {
		day := lastDay + i
		amount := intercept + slope*float64(day)
		if amount < 0 {
			amount = 0
		}
		total += amount
		series = append(series, domain.ForecastPoint{
			Date:   daily.start.AddDate(0, 0, day),
			Amount: amount,
		})
	}

	return &domain.SpendForecast{
		Series:          series,
		TotalForecasted: total,
		Trend:           classifyTrend(slope),
		DaysAhead:       horizonDays,
	}, nil
}

type dailySeries struct {
	start   time.Time
	amounts []float64 // one entry per calendar day, gaps filled with 0
}

// aggregateDaily sums amounts per calendar date and re-indexes the result
// over the continuous range from the earliest to the latest record date.
func aggregateDaily(records []domain.TransactionRecord) dailySeries {
	totals := make(map[time.Time]float64)
	var start, end time.Time
	for _, r := range records {
		day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		totals[day] += r.Amount
		if start.IsZero() || day.Before(start) {
			start = day
		}
		if day.After(end) {
			end = day
		}
	}

	numDays := int(end.Sub(start).Hours()/24) + 1
	amounts := make([]float64, numDays)
	for day, total := range totals {
		amounts[int(day.Sub(start).Hours()/24)] = total
	}

	return dailySeries{start: start, amounts: amounts}
}

func classifyTrend(slope float64) domain.Trend {
	switch {
	case slope > trendDeadZone:
		return domain.TrendIncreasing
	case slope < -trendDeadZone:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}
