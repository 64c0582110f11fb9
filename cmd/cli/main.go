package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fin-tools/spendsight/pkg/terminal/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spendsight",
		Short: "Offline tooling for the Spendsight pipeline",
	}

	rootCmd.AddCommand(
		commands.NewTrainCmd(),
		commands.NewSeedCmd(),
		commands.NewParseCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
