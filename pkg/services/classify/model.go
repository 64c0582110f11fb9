package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jbrukh/bayesian"

	"github.com/fin-tools/spendsight/pkg/models/domain"
)

const (
	// DefaultCategory is returned for degenerate input and by callers that
	// degrade when no trained model is available.
	DefaultCategory = "Other"

	bundleVersion      = 1
	manifestFileName   = "manifest.json"
	featurizerFileName = "featurizer.gob"
	classifierFileName = "classifier.gob"
)

var (
	// ErrModelNotTrained signals that no trained artifact bundle exists.
	// Callers must treat it as a degraded outcome, not a fault.
	ErrModelNotTrained = errors.New("category model not trained")

	// ErrTooFewCategories is returned when the training set does not span
	// at least two distinct categories.
	ErrTooFewCategories = errors.New("training data must cover at least two categories")
)

// LabeledDescription is one training sample.
type LabeledDescription struct {
	Description string
	Category    string
}

// Model pairs a frozen-vocabulary featurizer with a TF-IDF weighted
// multinomial classifier. The two are trained together and persisted as one
// jointly versioned bundle; mixing artifacts from different training runs is
// rejected at load time.
type Model struct {
	featurizer *Featurizer
	classifier *bayesian.Classifier
	classes    []bayesian.Class
}

type bundleManifest struct {
	Version   int       `json:"version"`
	BundleID  string    `json:"bundle_id"`
	CreatedAt time.Time `json:"created_at"`
	Classes   []string  `json:"classes"`
}

// Train fits the featurizer vocabulary and the classifier on labeled
// descriptions. Sample order does not affect the result.
func Train(samples []LabeledDescription) (*Model, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples provided")
	}

	seen := make(map[string]bool)
	for _, s := range samples {
		if s.Category != "" {
			seen[s.Category] = true
		}
	}
	if len(seen) < 2 {
		return nil, ErrTooFewCategories
	}

	labels := make([]string, 0, len(seen))
	for c := range seen {
		labels = append(labels, c)
	}
	sort.Strings(labels)

	classes := make([]bayesian.Class, 0, len(labels))
	for _, l := range labels {
		classes = append(classes, bayesian.Class(l))
	}

	featurizer := newFeaturizer(uuid.NewString())
	classifier := bayesian.NewClassifierTfIdf(classes...)
	for _, s := range samples {
		if s.Category == "" {
			continue
		}
		terms := Tokenize(CleanText(s.Description))
		if len(terms) == 0 {
			continue
		}
		featurizer.fit(terms)
		classifier.Learn(terms, bayesian.Class(s.Category))
	}
	classifier.ConvertTermsFreqToTfIdf()

	return &Model{
		featurizer: featurizer,
		classifier: classifier,
		classes:    classes,
	}, nil
}

// Predict classifies a description. Empty or out-of-vocabulary text yields
// the default category with zero confidence instead of an error.
func (m *Model) Predict(description string) domain.CategoryPrediction {
	terms := m.featurizer.Transform(description)
	if len(terms) == 0 {
		return domain.CategoryPrediction{
			Category:   DefaultCategory,
			Confidence: 0,
		}
	}

	scores, inx, _, err := m.classifier.SafeProbScores(terms)
	if err != nil {
		// Probability underflow on a long document. The argmax from raw log
		// scores is still meaningful, the calibrated confidence is not.
		_, inx, _ = m.classifier.LogScores(terms)
		return domain.CategoryPrediction{
			Category:   string(m.classes[inx]),
			Confidence: 0,
		}
	}

	probs := make(map[string]float64, len(m.classes))
	for i, c := range m.classes {
		probs[string(c)] = scores[i]
	}

	return domain.CategoryPrediction{
		Category:      string(m.classes[inx]),
		Confidence:    scores[inx],
		Probabilities: probs,
	}
}

// Save writes the featurizer and classifier blobs plus a manifest into dir.
// The manifest carries a shared bundle ID so a featurizer can never be loaded
// next to a classifier from another training run.
func (m *Model) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bundle dir: %w", err)
	}

	manifest := bundleManifest{
		Version:   bundleVersion,
		BundleID:  m.featurizer.BundleID,
		CreatedAt: time.Now().UTC(),
	}
	for _, c := range m.classes {
		manifest.Classes = append(manifest.Classes, string(c))
	}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFileName), raw, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if err := m.featurizer.save(filepath.Join(dir, featurizerFileName)); err != nil {
		return err
	}
	if err := m.classifier.WriteToFile(filepath.Join(dir, classifierFileName)); err != nil {
		return fmt.Errorf("write classifier: %w", err)
	}
	return nil
}

// Load reads a bundle directory written by Save. A missing bundle maps to
// ErrModelNotTrained; a manifest mismatch is a hard error.
func Load(dir string) (*Model, error) {
	raw, err := os.ReadFile(filepath.Join(dir, manifestFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrModelNotTrained
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest bundleManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if manifest.Version != bundleVersion {
		return nil, fmt.Errorf("unsupported bundle version %d", manifest.Version)
	}

	featurizer, err := loadFeaturizer(filepath.Join(dir, featurizerFileName))
	if err != nil {
		return nil, err
	}
	if featurizer.BundleID != manifest.BundleID {
		return nil, fmt.Errorf("featurizer bundle %q does not match manifest bundle %q",
			featurizer.BundleID, manifest.BundleID)
	}

	classifier, err := bayesian.NewClassifierFromFile(filepath.Join(dir, classifierFileName))
	if err != nil {
		return nil, fmt.Errorf("read classifier: %w", err)
	}

	classes := classifier.Classes
	if len(classes) != len(manifest.Classes) {
		return nil, fmt.Errorf("classifier has %d classes, manifest lists %d",
			len(classes), len(manifest.Classes))
	}
	for i, c := range classes {
		if string(c) != manifest.Classes[i] {
			return nil, fmt.Errorf("classifier class %q does not match manifest class %q",
				c, manifest.Classes[i])
		}
	}

	return &Model{
		featurizer: featurizer,
		classifier: classifier,
		classes:    classes,
	}, nil
}
