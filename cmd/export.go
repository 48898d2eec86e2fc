package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	exportRecipient string
	exportOutput    string
	exportForce     bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportRecipient, "recipient", "r", "", "key to encrypt the copy for")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "file to write the copy to")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite an existing output file")
}

func resetExportCommandState() {
	exportRecipient = ""
	exportOutput = ""
	exportForce = false
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-encrypt the store for another key",
	Long: `Writes a copy of the whole store encrypted for another recipient, e.g.
the key of a new machine. The configured store is not changed.

Examples:
  baccounts export --recipient laptop@example.com --output laptop.asc`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting export command")

	spinner, cleanup := startSpinner("Exporting store...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.Export(context.Background(), env, workflows.ExportOptions{
		Recipient: exportRecipient,
		Output:    exportOutput,
		Force:     exportForce,
	})
	if err != nil {
		return fail(spinner, "Failed to export store", err)
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Exported %d profile(s) to %s for %s",
		result.Profiles, ui.Path.Sprint(result.Output), ui.Highlight.Sprint(result.Recipient))
	return nil
}
