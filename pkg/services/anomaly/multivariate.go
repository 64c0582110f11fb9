package anomaly

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fin-tools/spendsight/pkg/models/domain"
)

const (
	// DefaultContamination is the expected outlier fraction of a batch.
	DefaultContamination = 0.05

	// MinMultivariateRecords is the smallest batch worth fitting a forest on.
	MinMultivariateRecords = 10

	forestTrees = 100
	forestSeed  = 42
)

const multivariateReason = "Multivariate anomaly (unusual combination of amount, category, and timing)"

// DetectMultivariate fits an isolation forest over [standardized amount,
// standardized day-of-week, one-hot category] and flags roughly the
// contamination fraction of the batch. It catches combination anomalies a
// per-category amount test cannot see: a normal amount in the wrong category
// or at the wrong time. Fewer than ten records yields an empty result, not
// an error. The fixed seed makes the flagged set identical across runs.
func DetectMultivariate(records []domain.TransactionRecord, contamination float64) []domain.AnomalyRecord {
	if len(records) < MinMultivariateRecords {
		return nil
	}
	if contamination <= 0 || contamination >= 1 {
		contamination = DefaultContamination
	}

	encoder := fitEncoder(records)
	matrix := encoder.matrix(records)
	forest := fitIsolationForest(matrix, forestTrees, len(records), forestSeed)

	scores := make([]float64, len(records))
	for i, row := range matrix {
		scores[i] = forest.score(row)
	}

	// Cut at the (1-contamination) empirical quantile; everything above it is
	// an outlier. Reported scores are shifted so outliers sit below zero and
	// lower means more anomalous.
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	cutoff := stat.Quantile(1-contamination, stat.Empirical, sorted, nil)

	var anomalies []domain.AnomalyRecord
	for i, r := range records {
		if scores[i] <= cutoff {
			continue
		}
		anomalies = append(anomalies, domain.AnomalyRecord{
			TransactionID: r.ID,
			Amount:        r.Amount,
			Category:      r.Category,
			Description:   r.Description,
			Score:         cutoff - scores[i],
			Method:        domain.MethodMultivariate,
			Reason:        multivariateReason,
		})
	}
	return anomalies
}
