package anomaly

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fin-tools/spendsight/pkg/models/domain"
)

// featureEncoder maps records into the feature space of the multivariate
// detector: standardized amount, standardized day of week, and a one-hot
// category block fixed at fit time. Categories unseen at fit time encode as
// an all-zero indicator.
type featureEncoder struct {
	categories []string
	catIndex   map[string]int

	amountMean, amountStd float64
	dowMean, dowStd       float64
}

func fitEncoder(records []domain.TransactionRecord) *featureEncoder {
	seen := make(map[string]bool)
	amounts := make([]float64, len(records))
	dows := make([]float64, len(records))
	for i, r := range records {
		seen[r.Category] = true
		amounts[i] = r.Amount
		dows[i] = dayOfWeek(r)
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	catIndex := make(map[string]int, len(categories))
	for i, c := range categories {
		catIndex[c] = i
	}

	return &featureEncoder{
		categories: categories,
		catIndex:   catIndex,
		amountMean: stat.Mean(amounts, nil),
		amountStd:  stat.PopStdDev(amounts, nil),
		dowMean:    stat.Mean(dows, nil),
		dowStd:     stat.PopStdDev(dows, nil),
	}
}

func (e *featureEncoder) width() int {
	return 2 + len(e.categories)
}

func (e *featureEncoder) encode(r domain.TransactionRecord) []float64 {
	row := make([]float64, e.width())
	row[0] = standardize(r.Amount, e.amountMean, e.amountStd)
	row[1] = standardize(dayOfWeek(r), e.dowMean, e.dowStd)
	if i, ok := e.catIndex[r.Category]; ok {
		row[2+i] = 1
	}
	return row
}

func (e *featureEncoder) matrix(records []domain.TransactionRecord) [][]float64 {
	rows := make([][]float64, len(records))
	for i, r := range records {
		rows[i] = e.encode(r)
	}
	return rows
}

// standardize guards against a constant column, which would otherwise divide
// by zero.
func standardize(v, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (v - mean) / std
}

// dayOfWeek uses Monday=0 indexing so weekend spending sits at the top of
// the range.
func dayOfWeek(r domain.TransactionRecord) float64 {
	return float64((int(r.Date.Weekday()) + 6) % 7)
}
