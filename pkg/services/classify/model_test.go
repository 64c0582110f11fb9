package classify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingSamples() []LabeledDescription {
	return []LabeledDescription{
		{Description: "starbucks coffee", Category: "Food"},
		{Description: "lunch at diner", Category: "Food"},
		{Description: "grocery store run", Category: "Food"},
		{Description: "dinner with friends", Category: "Food"},
		{Description: "uber ride downtown", Category: "Transport"},
		{Description: "metro card top up", Category: "Transport"},
		{Description: "taxi to airport", Category: "Transport"},
		{Description: "fuel refill", Category: "Transport"},
		{Description: "electricity bill", Category: "Utilities"},
		{Description: "water bill payment", Category: "Utilities"},
		{Description: "internet bill", Category: "Utilities"},
	}
}

func TestTrain(t *testing.T) {
	t.Run("trains on labeled descriptions", func(t *testing.T) {
		model, err := Train(trainingSamples())
		require.NoError(t, err)
		require.NotNil(t, model)
	})

	t.Run("rejects empty training set", func(t *testing.T) {
		_, err := Train(nil)
		assert.Error(t, err)
	})

	t.Run("rejects single-category training set", func(t *testing.T) {
		_, err := Train([]LabeledDescription{
			{Description: "starbucks coffee", Category: "Food"},
			{Description: "lunch at diner", Category: "Food"},
		})
		assert.ErrorIs(t, err, ErrTooFewCategories)
	})
}

func TestModel_Predict(t *testing.T) {
	model, err := Train(trainingSamples())
	require.NoError(t, err)

	t.Run("classifies a food description", func(t *testing.T) {
		pred := model.Predict("starbucks coffee")

		assert.Equal(t, "Food", pred.Category)
		assert.Greater(t, pred.Confidence, 0.5)
		assert.LessOrEqual(t, pred.Confidence, 1.0)

		sum := 0.0
		for _, p := range pred.Probabilities {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("corrects known typos before classifying", func(t *testing.T) {
		pred := model.Predict("Strbucks cofee")
		assert.Equal(t, "Food", pred.Category)
	})

	t.Run("empty description returns default category", func(t *testing.T) {
		pred := model.Predict("")

		assert.Equal(t, DefaultCategory, pred.Category)
		assert.Equal(t, 0.0, pred.Confidence)
	})

	t.Run("punctuation-only description returns default category", func(t *testing.T) {
		pred := model.Predict("!!! ??? ...")

		assert.Equal(t, DefaultCategory, pred.Category)
		assert.GreaterOrEqual(t, pred.Confidence, 0.0)
		assert.LessOrEqual(t, pred.Confidence, 1.0)
	})

	t.Run("out-of-vocabulary text returns default category", func(t *testing.T) {
		pred := model.Predict("zanzibar quux")

		assert.Equal(t, DefaultCategory, pred.Category)
		assert.Equal(t, 0.0, pred.Confidence)
	})
}

func TestModel_SaveLoad(t *testing.T) {
	model, err := Train(trainingSamples())
	require.NoError(t, err)

	t.Run("round trip preserves predictions", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, model.Save(dir))

		loaded, err := Load(dir)
		require.NoError(t, err)

		want := model.Predict("uber ride downtown")
		got := loaded.Predict("uber ride downtown")
		assert.Equal(t, want.Category, got.Category)
		assert.InDelta(t, want.Confidence, got.Confidence, 1e-9)
	})

	t.Run("missing bundle maps to ErrModelNotTrained", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.ErrorIs(t, err, ErrModelNotTrained)
	})

	t.Run("mismatched featurizer and classifier are rejected", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, model.Save(dir))

		// Simulate a featurizer from another training run by rewriting the
		// manifest bundle ID.
		manifestPath := filepath.Join(dir, manifestFileName)
		raw, err := os.ReadFile(manifestPath)
		require.NoError(t, err)

		var manifest bundleManifest
		require.NoError(t, json.Unmarshal(raw, &manifest))
		manifest.BundleID = "other-training-run"
		raw, err = json.Marshal(manifest)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(manifestPath, raw, 0o644))

		_, err = Load(dir)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrModelNotTrained)
	})
}

func TestShared(t *testing.T) {
	t.Run("missing bundle is not cached", func(t *testing.T) {
		ResetShared()
		dir := t.TempDir()

		_, err := Shared(dir)
		assert.ErrorIs(t, err, ErrModelNotTrained)

		model, err := Train(trainingSamples())
		require.NoError(t, err)
		require.NoError(t, model.Save(dir))

		loaded, err := Shared(dir)
		require.NoError(t, err)
		require.NotNil(t, loaded)
	})

	t.Run("loads exactly once", func(t *testing.T) {
		ResetShared()
		dir := t.TempDir()

		model, err := Train(trainingSamples())
		require.NoError(t, err)
		require.NoError(t, model.Save(dir))

		first, err := Shared(dir)
		require.NoError(t, err)
		second, err := Shared(dir)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})
}

func TestSharedPredictor_DegradesWithoutModel(t *testing.T) {
	ResetShared()

	pred := SharedPredictor{Dir: t.TempDir()}.Predict("starbucks coffee")

	assert.Equal(t, DefaultCategory, pred.Category)
	assert.Equal(t, 0.0, pred.Confidence)
}
