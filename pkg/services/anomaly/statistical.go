package anomaly

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fin-tools/spendsight/pkg/models/domain"
)

const (
	// DefaultZThreshold flags amounts more than two standard deviations from
	// their category mean.
	DefaultZThreshold = 2.0

	// minGroupSize is the smallest category group with a meaningful spread.
	minGroupSize = 3
)

// DetectStatistical finds per-category amount spikes. Groups with fewer than
// three records or zero variance are skipped; results are ordered by category
// and then by input order within a category.
func DetectStatistical(records []domain.TransactionRecord, zThreshold float64) []domain.AnomalyRecord {
	groups := make(map[string][]domain.TransactionRecord)
	for _, r := range records {
		groups[r.Category] = append(groups[r.Category], r)
	}

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var anomalies []domain.AnomalyRecord
	for _, category := range categories {
		group := groups[category]
		if len(group) < minGroupSize {
			continue
		}

		amounts := make([]float64, len(group))
		for i, r := range group {
			amounts[i] = r.Amount
		}
		mean := stat.Mean(amounts, nil)
		std := stat.StdDev(amounts, nil)
		if std == 0 {
			continue
		}

		for i, r := range group {
			z := (amounts[i] - mean) / std
			if z > zThreshold || z < -zThreshold {
				anomalies = append(anomalies, domain.AnomalyRecord{
					TransactionID: r.ID,
					Amount:        r.Amount,
					Category:      r.Category,
					Description:   r.Description,
					Score:         z,
					Method:        domain.MethodStatistical,
					Reason: fmt.Sprintf("Amount is %.1f standard deviations from the %s average",
						z, category),
				})
			}
		}
	}
	return anomalies
}
