package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fin-tools/spendsight/pkg/server"
	"github.com/fin-tools/spendsight/pkg/services/classify"
	"github.com/fin-tools/spendsight/pkg/services/config"
	"github.com/fin-tools/spendsight/pkg/services/expense"
	"github.com/fin-tools/spendsight/pkg/services/extract"
	"github.com/fin-tools/spendsight/pkg/store/sqlite"
	"github.com/fin-tools/spendsight/pkg/store/sqlite/transaction"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Spendsight web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: cfg.DbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store, err := transaction.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create transaction store: %w", err)
	}

	predictor := classify.SharedPredictor{Dir: cfg.ModelDir}
	expenseService := expense.NewService(store, predictor)
	extractor := extract.NewExtractor(predictor)

	if _, err := classify.Shared(cfg.ModelDir); err != nil {
		logger.Warn().Err(err).Msgf("category model unavailable, predictions degrade to %q", classify.DefaultCategory)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" {
		host = "0.0.0.0"
	}
	if port == "" {
		port = "8000"
	}
	addr := net.JoinHostPort(host, port)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:      addr,
		Analytics: cfg,
		Dependencies: server.Dependencies{
			Expenses: expenseService,
			Parser:   extractor,
		},
	})

	return webAPI.Start()
}
