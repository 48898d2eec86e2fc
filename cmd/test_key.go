package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check that your key can encrypt and decrypt",
	Long: `Encrypts a throwaway store for the configured recipient and decrypts it
again. Nothing in the real store is read or changed.`,
	RunE: runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting test command")

	spinner, cleanup := startSpinner("Testing key...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.CheckKey(context.Background(), env)
	if err != nil {
		return fail(spinner, "Key test failed", err)
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Encrypted and decrypted for %s in %s",
		ui.Highlight.Sprint(result.Recipient), result.Elapsed.Round(time.Millisecond))
	return nil
}
