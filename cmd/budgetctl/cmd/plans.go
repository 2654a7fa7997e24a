package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

type planRecomputer interface {
	Recompute(ctx context.Context, uid string) (int, error)
}

var flagUID string

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Savings plan maintenance",
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute daily limit and progress for every plan of a user",
	RunE:  runRecompute,
}

func init() {
	recomputeCmd.Flags().StringVar(&flagUID, "uid", "", "owner of the plans to repair")
	plansCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(plansCmd)
}

func runRecompute(cmd *cobra.Command, _ []string) error {
	if flagUID == "" {
		return errors.New("--uid is required")
	}
	bs, err := connect()
	if err != nil {
		return err
	}
	defer bs.Close()

	return recompute(cmd, newPlanRecomputer(bs), flagUID)
}

func recompute(cmd *cobra.Command, svc planRecomputer, uid string) error {
	n, err := svc.Recompute(cmd.Context(), uid)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "repaired %d savings plans for %s\n", n, uid)
	return nil
}
