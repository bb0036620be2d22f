package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/attrition"
	"github.com/spektr-org/attrition/schema"
)

// ============================================================================
// ATTRITION CLI: EDA figures for the HR attrition report
// ============================================================================

const version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatalf("%v", err)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attrition",
		Short: "Render the HR attrition EDA figures",
		Long: `Reads people-analytics/data/WA_Fn-UseC_-HR-Employee-Attrition.csv from the
working directory and writes six PNG figures (H1..H6) with French labels to
assets/images/people-analytics/attrition_hr/.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := schema.Default(".")
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			if err := attrition.Run(cfg, attrition.WithLogger(logger)); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), attrition.SuccessMessage(cfg))
			return nil
		},
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
