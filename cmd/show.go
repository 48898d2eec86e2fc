package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	showProfile string
	showSite    string
	showPrint   bool
	showReveal  bool
)

func init() {
	showCmd.Flags().StringVarP(&showProfile, "name", "n", "", "profile to search (defaults to the default profile)")
	showCmd.Flags().StringVarP(&showSite, "site", "s", "", "fragment of the site URL")
	showCmd.Flags().BoolVar(&showPrint, "print", false, "print the password to stdout instead of copying it")
	showCmd.Flags().BoolVar(&showReveal, "reveal", false, "show the password on the terminal until Enter is pressed")
}

func resetShowCommandState() {
	showProfile = ""
	showSite = ""
	showPrint = false
	showReveal = false
}

var showCmd = &cobra.Command{
	Use:   "show [site]",
	Short: "Copy a site's password to the clipboard",
	Long: `Finds the one site whose URL contains the given fragment and copies its
password to the clipboard.

The fragment can be passed as an argument or with --site. If it matches no
site or more than one, nothing is copied.

Examples:
  baccounts show github
  baccounts show --site mail.example --name work --print`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting show command")

	query := showSite
	if len(args) == 1 {
		query = args[0]
	}

	spinner, cleanup := startSpinner("Decrypting store...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.Show(context.Background(), env, workflows.ShowOptions{
		Profile: showProfile,
		Query:   query,
		Print:   showPrint || showReveal,
	})
	if err != nil {
		return fail(spinner, "Failed to show password", err)
	}

	site := fmt.Sprintf("%s (%s)", ui.Highlight.Sprint(result.Site.Name), result.Site.Account)
	switch {
	case result.Copied:
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Copied the password for " + site + " to the clipboard"
	case showReveal:
		spinner.FinalMSG = ""
		cleanup()
		if err := revealPassword(result.Password); err != nil {
			return fail(spinner, "Failed to show password", err)
		}
	default:
		spinner.FinalMSG = string(result.Password)
	}
	return nil
}
