package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	removeProfile string
	removeSite    string
)

func init() {
	removeCmd.Flags().StringVarP(&removeProfile, "name", "n", "", "profile to search (defaults to the default profile)")
	removeCmd.Flags().StringVarP(&removeSite, "site", "s", "", "fragment of the site URL")
}

func resetRemoveCommandState() {
	removeProfile = ""
	removeSite = ""
}

var removeCmd = &cobra.Command{
	Use:     "remove [site]",
	Aliases: []string{"rm"},
	Short:   "Remove a site from a profile",
	Long: `Removes the one site whose URL contains the given fragment.

Examples:
  baccounts remove old-forum
  baccounts remove --site example.org --name work`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting remove command")

	query := removeSite
	if len(args) == 1 {
		query = args[0]
	}

	spinner, cleanup := startSpinner("Removing site...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.Remove(context.Background(), env, workflows.RemoveOptions{
		Profile: removeProfile,
		Query:   query,
	})
	if err != nil {
		return fail(spinner, "Failed to remove site", err)
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Removed %s from profile %s",
		ui.Highlight.Sprint(result.URL), ui.Highlight.Sprint(result.Profile))
	return nil
}
