package anomaly

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/spendsight/pkg/models/domain"
)

func makeRecords(category string, amounts ...float64) []domain.TransactionRecord {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]domain.TransactionRecord, len(amounts))
	for i, amount := range amounts {
		records[i] = domain.TransactionRecord{
			ID:          fmt.Sprintf("%s-%d", category, i),
			Description: fmt.Sprintf("%s purchase %d", category, i),
			Amount:      amount,
			Category:    category,
			Date:        base.AddDate(0, 0, i),
			Type:        domain.TypeExpense,
		}
	}
	return records
}

func TestDetectStatistical(t *testing.T) {
	t.Run("flags a clear amount spike", func(t *testing.T) {
		records := makeRecords("Food",
			100, 101, 99, 100, 102, 98, 100, 101, 99, 100, 1000)

		anomalies := DetectStatistical(records, DefaultZThreshold)

		require.Len(t, anomalies, 1)
		assert.Equal(t, "Food-10", anomalies[0].TransactionID)
		assert.Equal(t, domain.MethodStatistical, anomalies[0].Method)
		assert.Greater(t, anomalies[0].Score, DefaultZThreshold)
		assert.Contains(t, anomalies[0].Reason, "standard deviations")
		assert.Contains(t, anomalies[0].Reason, "Food")
	})

	t.Run("never flags groups smaller than three", func(t *testing.T) {
		records := makeRecords("Food", 1, 100000)
		assert.Empty(t, DetectStatistical(records, DefaultZThreshold))
	})

	t.Run("skips zero-variance groups", func(t *testing.T) {
		records := makeRecords("Food", 50, 50, 50, 50)
		assert.Empty(t, DetectStatistical(records, DefaultZThreshold))
	})

	t.Run("groups are independent per category", func(t *testing.T) {
		records := append(
			makeRecords("Food", 100, 101, 99, 100, 102, 98, 100, 101, 99, 100, 1000),
			// Too small a group to ever flag, despite the extreme value.
			makeRecords("Travel", 5, 90000)...,
		)

		anomalies := DetectStatistical(records, DefaultZThreshold)

		require.Len(t, anomalies, 1)
		assert.Equal(t, "Food", anomalies[0].Category)
	})

	t.Run("empty input yields no anomalies", func(t *testing.T) {
		assert.Empty(t, DetectStatistical(nil, DefaultZThreshold))
	})
}
