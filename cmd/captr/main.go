package main

import (
	"os"

	"github.com/spf13/cobra"

	"captr/internal/interfaces/cli/migrate"
	"captr/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "captr",
		Short: "Captr - business card scanning backend",
		Long:  `Captr is the backend for the Captr business card scanner: contact storage, OCR scanning, usage metering, and subscriptions.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
