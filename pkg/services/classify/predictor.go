package classify

import "github.com/fin-tools/spendsight/pkg/models/domain"

// SharedPredictor predicts through the process-wide model cache and degrades
// to the default category while no trained bundle exists. It can be wired at
// startup before any training has happened; predictions pick up the model as
// soon as a bundle is loadable.
type SharedPredictor struct {
	Dir string
}

func (p SharedPredictor) Predict(description string) domain.CategoryPrediction {
	model, err := Shared(p.Dir)
	if err != nil {
		return domain.CategoryPrediction{Category: DefaultCategory}
	}
	return model.Predict(description)
}
