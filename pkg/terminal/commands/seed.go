package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fin-tools/spendsight/pkg/models/domain"
	"github.com/fin-tools/spendsight/pkg/services/expense"
	"github.com/fin-tools/spendsight/pkg/store/sqlite"
	"github.com/fin-tools/spendsight/pkg/store/sqlite/transaction"
)

var seedCategories = []string{"Food", "Transport", "Utilities", "Shopping", "Health", "Entertainment"}

// Per-category description templates for the generated training dataset.
// Misspelled variants are included on purpose so the typo correction step
// has something to chew on.
var seedDescriptions = map[string][]string{
	"Food":          {"starbucks coffee", "strbucks cofee", "lunch at diner", "grocery store run", "walmrt grocceries"},
	"Transport":     {"uber ride", "uber ridee", "metro card top up", "fuel refill", "taxi to airport"},
	"Utilities":     {"electricity bill", "electcity bill", "water bill", "internet bill", "bill for power"},
	"Shopping":      {"amazon prime sub", "amzn mktp order", "new shoes", "clothes shopping", "amzon order"},
	"Health":        {"pharmacy cvs", "pfizer meds", "dentist visit", "gym membership", "doctor appointment"},
	"Entertainment": {"netflix subscription", "movie night", "concert tickets", "spotify premium", "video game"},
}

type SeedCmd struct {
	dbPath  string
	dataOut string
	days    int
}

// NewSeedCmd populates a database with a month of sample spending (plus one
// deliberate outlier) and optionally writes a labeled training CSV.
func NewSeedCmd() *cobra.Command {
	sc := &SeedCmd{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the store with sample transactions and generate training data",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.dbPath, "db", "spendsight.db", "Path to the sqlite database")
	cmd.Flags().StringVar(&sc.dataOut, "dataset", "", "Optional path to also write a labeled training CSV")
	cmd.Flags().IntVar(&sc.days, "days", 30, "Number of past days to spread sample records over")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: sc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store, err := transaction.NewStore(db)
	if err != nil {
		return err
	}
	service := expense.NewService(store, nil)

	count, err := sc.seedTransactions(ctx, service, rng)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d transactions into %s\n", count, sc.dbPath)

	if sc.dataOut != "" {
		rows, err := writeTrainingCSV(sc.dataOut)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d labeled samples to %s\n", rows, sc.dataOut)
	}
	return nil
}

func (sc *SeedCmd) seedTransactions(ctx context.Context, service *expense.Service, rng *rand.Rand) (int, error) {
	start := time.Now().AddDate(0, 0, -sc.days)
	count := 0

	for day := 0; day < sc.days; day++ {
		category := seedCategories[rng.Intn(len(seedCategories))]
		variants := seedDescriptions[category]
		_, err := service.Add(ctx, domain.NewTransactionInput{
			Description: variants[rng.Intn(len(variants))],
			Amount:      10 + rng.Float64()*40,
			Category:    category,
			Date:        start.AddDate(0, 0, day),
			Type:        domain.TypeExpense,
		})
		if err != nil {
			return count, fmt.Errorf("failed to seed record: %w", err)
		}
		count++
	}

	// One out-of-character purchase so the detectors have something to find.
	_, err := service.Add(ctx, domain.NewTransactionInput{
		Description: "Luxury Watch",
		Amount:      1500,
		Category:    "Shopping",
		Date:        time.Now(),
		Type:        domain.TypeExpense,
	})
	if err != nil {
		return count, fmt.Errorf("failed to seed anomaly record: %w", err)
	}
	return count + 1, nil
}

func writeTrainingCSV(path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create dataset dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create dataset: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"description", "category"}); err != nil {
		return 0, err
	}

	rows := 0
	for _, category := range seedCategories {
		for _, description := range seedDescriptions[category] {
			if err := writer.Write([]string{description, category}); err != nil {
				return rows, err
			}
			rows++
		}
	}
	writer.Flush()
	return rows, writer.Error()
}
