package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/utils"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	updateProfile string
	updateSite    string
	updateStdin   bool

	// readPassword is replaced in tests.
	readPassword = utils.ReadPassword
)

func init() {
	updateCmd.Flags().StringVarP(&updateProfile, "name", "n", "", "profile to search (defaults to the default profile)")
	updateCmd.Flags().StringVarP(&updateSite, "site", "s", "", "fragment of the site URL")
	updateCmd.Flags().BoolVar(&updateStdin, "stdin", false, "read the new password from stdin instead of prompting")
}

func resetUpdateCommandState() {
	updateProfile = ""
	updateSite = ""
	updateStdin = false
}

var updateCmd = &cobra.Command{
	Use:   "update [site]",
	Short: "Set a new password for a site",
	Long: `Replaces the password of the one site whose URL contains the given
fragment. The new password is read twice from the terminal and must be at
least 8 characters long.

Examples:
  baccounts update github
  printf 'new-password' | baccounts update --site github --stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting update command")

	query := updateSite
	if len(args) == 1 {
		query = args[0]
	}

	password, err := readNewPassword()
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " Failed to read password: " + err.Error())
		return &ExitError{Code: 1, Err: err}
	}

	spinner, cleanup := startSpinner("Updating password...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.Update(context.Background(), env, workflows.UpdateOptions{
		Profile:  updateProfile,
		Query:    query,
		Password: password,
	})
	if err != nil {
		return fail(spinner, "Failed to update password", err)
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Updated the password for %s in profile %s",
		ui.Highlight.Sprint(result.Host), ui.Highlight.Sprint(result.Profile))
	return nil
}

func readNewPassword() ([]byte, error) {
	if updateStdin {
		data, err := utils.ReadStdin()
		if err != nil {
			return nil, err
		}
		password := bytes.TrimRight(data, "\r\n")
		return password, utils.CheckPassword(password)
	}
	return utils.ReadNewPassword(readPassword)
}
