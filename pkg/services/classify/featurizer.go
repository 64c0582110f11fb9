package classify

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Featurizer projects descriptions into the term vocabulary frozen at train
// time. Terms never seen during training are dropped at predict time so the
// classifier only ever scores a known term space.
type Featurizer struct {
	BundleID   string // ties the featurizer to the classifier trained with it
	Vocabulary map[string]int
}

func newFeaturizer(bundleID string) *Featurizer {
	return &Featurizer{
		BundleID:   bundleID,
		Vocabulary: make(map[string]int),
	}
}

// fit extends the vocabulary with every term of the document.
func (f *Featurizer) fit(terms []string) {
	for _, t := range terms {
		if _, ok := f.Vocabulary[t]; !ok {
			f.Vocabulary[t] = len(f.Vocabulary)
		}
	}
}

// Transform cleans and tokenizes text, then keeps only in-vocabulary terms.
func (f *Featurizer) Transform(text string) []string {
	terms := Tokenize(CleanText(text))
	kept := terms[:0]
	for _, t := range terms {
		if _, ok := f.Vocabulary[t]; ok {
			kept = append(kept, t)
		}
	}
	return kept
}

func (f *Featurizer) save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create featurizer file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(f); err != nil {
		return fmt.Errorf("encode featurizer: %w", err)
	}
	return nil
}

func loadFeaturizer(path string) (*Featurizer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open featurizer file: %w", err)
	}
	defer file.Close()

	var f Featurizer
	if err := gob.NewDecoder(file).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode featurizer: %w", err)
	}
	return &f, nil
}
