package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/spendsight/pkg/models/domain"
)

func TestDetectMultivariate(t *testing.T) {
	t.Run("returns empty below minimum batch size", func(t *testing.T) {
		records := makeRecords("Food", 1, 2, 3, 4, 5, 6, 7, 8, 9)
		assert.Empty(t, DetectMultivariate(records, DefaultContamination))
	})

	t.Run("flags an extreme amount outlier", func(t *testing.T) {
		records := makeRecords("Food",
			10, 11, 12, 10, 11, 12, 10, 11, 12, 10,
			11, 12, 10, 11, 12, 10, 11, 12, 10, 11,
			1000)

		anomalies := DetectMultivariate(records, DefaultContamination)

		require.NotEmpty(t, anomalies)
		assert.Equal(t, "Food-20", anomalies[0].TransactionID)
		assert.Equal(t, domain.MethodMultivariate, anomalies[0].Method)
		assert.Less(t, anomalies[0].Score, 0.0)
		assert.Contains(t, anomalies[0].Reason, "unusual combination")
	})

	t.Run("identical input yields identical flagged set", func(t *testing.T) {
		records := append(
			makeRecords("Food", 10, 11, 12, 13, 14, 15, 16, 17, 18, 19),
			makeRecords("Shopping", 20, 21, 22, 23, 24, 500)...,
		)

		first := DetectMultivariate(records, DefaultContamination)
		second := DetectMultivariate(records, DefaultContamination)

		assert.Equal(t, first, second)
	})

	t.Run("invalid contamination falls back to default", func(t *testing.T) {
		records := makeRecords("Food",
			10, 11, 12, 10, 11, 12, 10, 11, 12, 10, 1000)

		assert.Equal(t,
			DetectMultivariate(records, DefaultContamination),
			DetectMultivariate(records, -1))
	})
}

func TestFeatureEncoder(t *testing.T) {
	t.Run("single-category batch has a constant category column", func(t *testing.T) {
		records := makeRecords("Food", 10, 20, 30, 40, 50)

		encoder := fitEncoder(records)
		matrix := encoder.matrix(records)

		require.Equal(t, 3, encoder.width())
		for _, row := range matrix {
			assert.Equal(t, matrix[0][2], row[2])
		}
	})

	t.Run("unseen category encodes as all-zero indicator", func(t *testing.T) {
		encoder := fitEncoder(makeRecords("Food", 10, 20, 30))

		row := encoder.encode(makeRecords("Travel", 10)[0])

		for _, v := range row[2:] {
			assert.Equal(t, 0.0, v)
		}
	})

	t.Run("categories occupy sorted one-hot slots", func(t *testing.T) {
		records := append(makeRecords("Transport", 10, 20), makeRecords("Food", 30, 40)...)
		encoder := fitEncoder(records)

		food := encoder.encode(records[2])
		transport := encoder.encode(records[0])

		assert.Equal(t, 1.0, food[2])
		assert.Equal(t, 0.0, food[3])
		assert.Equal(t, 0.0, transport[2])
		assert.Equal(t, 1.0, transport[3])
	})

	t.Run("constant column standardizes to zero", func(t *testing.T) {
		records := makeRecords("Food", 50, 50, 50)
		encoder := fitEncoder(records)

		row := encoder.encode(records[0])
		assert.Equal(t, 0.0, row[0])
	})
}
