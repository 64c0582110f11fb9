package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/spendsight/pkg/models/domain"
	"github.com/fin-tools/spendsight/pkg/services/classify"
)

type stubPredictor struct {
	prediction domain.CategoryPrediction
	lastInput  string
}

func (s *stubPredictor) Predict(description string) domain.CategoryPrediction {
	s.lastInput = description
	return s.prediction
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	}
}

func TestExtractor_Parse(t *testing.T) {
	predictor := &stubPredictor{
		prediction: domain.CategoryPrediction{Category: "Food", Confidence: 0.85},
	}
	extractor := NewExtractor(predictor, WithClock(fixedClock()))

	t.Run("symbol amount with relative date", func(t *testing.T) {
		parsed := extractor.Parse("Spent ₹250 on lunch yesterday")

		require.NotNil(t, parsed.Amount)
		assert.Equal(t, 250.0, *parsed.Amount)
		assert.Equal(t, "₹", parsed.Currency)
		assert.Equal(t, time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), parsed.Date)
		assert.Contains(t, parsed.Description, "lunch")
		assert.NotContains(t, parsed.Description, "Spent")
		assert.NotContains(t, parsed.Description, "yesterday")
		assert.NotContains(t, parsed.Description, "250")
		assert.Equal(t, "Food", parsed.Category)
		assert.Equal(t, 0.85, parsed.Confidence)
	})

	t.Run("dollar amount with today", func(t *testing.T) {
		parsed := extractor.Parse("Paid $15 for netflix sub today")

		require.NotNil(t, parsed.Amount)
		assert.Equal(t, 15.0, *parsed.Amount)
		assert.Equal(t, "$", parsed.Currency)
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed.Date)
		assert.Equal(t, "netflix sub", parsed.Description)
	})

	t.Run("currency word after amount", func(t *testing.T) {
		parsed := extractor.Parse("50 euro for transport")

		require.NotNil(t, parsed.Amount)
		assert.Equal(t, 50.0, *parsed.Amount)
		assert.Equal(t, "euro", parsed.Currency)
		// No date cue: defaults to the current day.
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed.Date)
		assert.Equal(t, "transport", parsed.Description)
	})

	t.Run("digit separator date with on cue", func(t *testing.T) {
		parsed := extractor.Parse("Bought coffee for 5.50 on 12/01/2026")

		require.NotNil(t, parsed.Amount)
		assert.Equal(t, 5.5, *parsed.Amount)
		assert.Empty(t, parsed.Currency)
		assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), parsed.Date)
		assert.Equal(t, "coffee", parsed.Description)
	})

	t.Run("no amount at all", func(t *testing.T) {
		parsed := extractor.Parse("monthly rent payment")

		assert.Nil(t, parsed.Amount)
		assert.Empty(t, parsed.Currency)
		assert.Equal(t, "monthly rent payment", parsed.Description)
	})

	t.Run("empty input falls back to trimmed original", func(t *testing.T) {
		parsed := extractor.Parse("   ")

		assert.Nil(t, parsed.Amount)
		assert.Equal(t, "", parsed.Description)
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed.Date)
	})

	t.Run("only filler words falls back to original", func(t *testing.T) {
		parsed := extractor.Parse("paid for")

		assert.Equal(t, "paid for", parsed.Description)
	})
}

func TestExtractor_Parse_DateGuard(t *testing.T) {
	extractor := NewExtractor(nil, WithClock(fixedClock()))

	t.Run("year-like number is an amount not a date", func(t *testing.T) {
		parsed := extractor.Parse("Spent 2024 dollars at airport")

		require.NotNil(t, parsed.Amount)
		assert.Equal(t, 2024.0, *parsed.Amount)
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed.Date)
	})

	t.Run("fraction-like token resolves as a date", func(t *testing.T) {
		// Known misfire of the digit-separator guard: "5/6" is not a date
		// here but still resolves to June 5th. Kept on purpose.
		parsed := extractor.Parse("paid 100 chapter 5/6 notes")

		require.NotNil(t, parsed.Amount)
		assert.Equal(t, 100.0, *parsed.Amount)
		assert.Equal(t, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), parsed.Date)
	})

	t.Run("invalid digit date is ignored", func(t *testing.T) {
		parsed := extractor.Parse("paid 100 ref 31/31 invoice")

		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed.Date)
	})

	t.Run("amount extraction runs before date extraction", func(t *testing.T) {
		// The leading number is consumed as the amount, so the remaining
		// "/4" fragment can no longer be mistaken for a date.
		parsed := extractor.Parse("split 3/4 with roommate")

		require.NotNil(t, parsed.Amount)
		assert.Equal(t, 3.0, *parsed.Amount)
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed.Date)
	})

	t.Run("last week resolves to the past", func(t *testing.T) {
		parsed := extractor.Parse("gym fees 40 last week")

		require.NotNil(t, parsed.Amount)
		assert.True(t, parsed.Date.Before(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	})
}

func TestExtractor_Parse_NoPredictor(t *testing.T) {
	extractor := NewExtractor(nil, WithClock(fixedClock()))

	parsed := extractor.Parse("Spent ₹250 on lunch yesterday")

	assert.Equal(t, classify.DefaultCategory, parsed.Category)
	assert.Equal(t, 0.0, parsed.Confidence)
}

func TestExtractor_Parse_PredictorReceivesCleanedDescription(t *testing.T) {
	predictor := &stubPredictor{
		prediction: domain.CategoryPrediction{Category: "Food", Confidence: 0.9},
	}
	extractor := NewExtractor(predictor, WithClock(fixedClock()))

	extractor.Parse("Spent ₹250 on lunch yesterday")

	assert.Equal(t, "lunch", predictor.lastInput)
}
