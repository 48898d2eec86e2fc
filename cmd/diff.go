package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var diffAgainst string

func init() {
	diffCmd.Flags().StringVar(&diffAgainst, "against", "", "compare the store with every file matching this glob (** supported)")
}

func resetDiffCommandState() {
	diffAgainst = ""
}

var diffCmd = &cobra.Command{
	Use:   "diff [left] [right]",
	Short: "Compare two encrypted stores",
	Long: `Decrypts two stores and reports every field that differs. Passwords are
compared but never printed.

With one file, the configured store is compared against it. With --against,
the configured store is compared against every matching file, e.g. backups.

Exit codes:
  0 - The stores are identical
  1 - Differences found
  2 - A store could not be read`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting diff command")

	opts := workflows.DiffOptions{Against: diffAgainst}
	switch len(args) {
	case 1:
		opts.Left = args[0]
	case 2:
		opts.Left, opts.Right = args[0], args[1]
	}
	if opts.Against == "" && opts.Left == "" {
		return fmt.Errorf("diff needs a store file to compare with, or --against")
	}

	spinner, cleanup := startSpinner("Comparing stores...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return failWithCode(spinner, "Failed to load config", err, 2)
	}

	var report bytes.Buffer
	result, err := workflows.Diff(context.Background(), env, opts, &report)
	if err != nil {
		return failWithCode(spinner, "Failed to compare stores", err, 2)
	}

	if result.Total == 0 {
		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" No differences in %d comparison(s)", len(result.Comparisons))
		return nil
	}

	spinner.FinalMSG = report.String() + ui.Warning.Sprint("⚠") + fmt.Sprintf(" %d difference(s) found", result.Total)
	return &ExitError{Code: 1}
}
