// Package cmd implements the budgetctl maintenance commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/budget-backend/internal/bootstrap"
	"github.com/GregMSThompson/budget-backend/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "budgetctl",
	Short:         "Maintenance tasks for the budget backend",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect opens Firestore with the same configuration the API uses.
func connect() (*bootstrap.Bootstrap, error) {
	return bootstrap.RunStoreOnly(config.New())
}
