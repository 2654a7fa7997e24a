package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/budget-backend/internal/categories"
	"github.com/GregMSThompson/budget-backend/internal/models"
)

type categorySeeder interface {
	SeedDefaults(ctx context.Context, defaults []models.Category) (int, error)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage the shared category table",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in default categories to Firestore",
	RunE:  runSeed,
}

func init() {
	categoriesCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	bs, err := connect()
	if err != nil {
		return err
	}
	defer bs.Close()

	return seed(cmd, newCategorySeeder(bs), categories.Defaults())
}

func seed(cmd *cobra.Command, seeder categorySeeder, table *categories.Table) error {
	n, err := seeder.SeedDefaults(cmd.Context(), table.All())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d default categories\n", n)
	return nil
}
