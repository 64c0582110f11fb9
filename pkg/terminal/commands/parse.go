package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fin-tools/spendsight/pkg/adapters"
	"github.com/fin-tools/spendsight/pkg/services/classify"
	"github.com/fin-tools/spendsight/pkg/services/extract"
)

type ParseCmd struct {
	modelDir string
}

// NewParseCmd runs a one-shot free-text parse, useful for smoke testing the
// extraction pipeline against a trained model.
func NewParseCmd() *cobra.Command {
	pc := &ParseCmd{}
	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a free-text expense description",
		Args:  cobra.ExactArgs(1),
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.modelDir, "model", "models/category", "Directory holding the trained bundle")

	return cmd
}

func (pc *ParseCmd) run(cmd *cobra.Command, args []string) error {
	extractor := extract.NewExtractor(classify.SharedPredictor{Dir: pc.modelDir})
	parsed := extractor.Parse(args[0])

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(adapters.MapParsedExpenseDomainToApi(parsed)); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
