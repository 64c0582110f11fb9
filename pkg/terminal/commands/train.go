package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fin-tools/spendsight/pkg/services/classify"
)

type TrainCmd struct {
	dataPath string
	modelDir string
}

// NewTrainCmd trains the category classifier from a labeled CSV
// (description,category) and writes the artifact bundle.
func NewTrainCmd() *cobra.Command {
	tc := &TrainCmd{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the category classifier from a labeled dataset",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.dataPath, "data", "", "Path to a labeled CSV with description,category columns")
	cmd.Flags().StringVar(&tc.modelDir, "model", "models/category", "Directory to write the trained bundle to")

	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (tc *TrainCmd) run(cmd *cobra.Command, args []string) error {
	samples, err := readLabeledCSV(tc.dataPath)
	if err != nil {
		return err
	}

	model, err := classify.Train(samples)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	if err := model.Save(tc.modelDir); err != nil {
		return fmt.Errorf("failed to save model bundle: %w", err)
	}

	fmt.Printf("Trained on %d samples, bundle written to %s\n", len(samples), tc.modelDir)
	return nil
}

func readLabeledCSV(path string) ([]classify.LabeledDescription, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var samples []classify.LabeledDescription
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected description,category columns", i+1)
		}
		// Skip a header row if present.
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "description") {
			continue
		}
		samples = append(samples, classify.LabeledDescription{
			Description: row[0],
			Category:    row[1],
		})
	}
	return samples, nil
}
