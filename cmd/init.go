package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/configs"
	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/utils"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	initMail      string
	initProfile   string
	initRecipient string
	initForce     bool
)

func init() {
	initCmd.Flags().StringVarP(&initMail, "mail", "m", "", "default account for new sites")
	initCmd.Flags().StringVarP(&initProfile, "name", "n", "", "name of the default profile (defaults to your username)")
	initCmd.Flags().StringVarP(&initRecipient, "recipient", "r", "", "key to encrypt the store for; saved to the config file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing store")
}

func resetInitCommandState() {
	initMail = ""
	initProfile = ""
	initRecipient = ""
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new encrypted store",
	Long: `Creates an empty encrypted store with one default profile.

The store is encrypted for the configured recipient. Pass --recipient to
choose the key and remember it in the config file.

Examples:
  baccounts init --mail me@example.com
  baccounts init --recipient 0xDEADBEEF --name work`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting init command")

	spinner, cleanup := startSpinner("Creating store...", verbose)
	defer cleanup()

	settings, cfg, configPath, err := loadConfig()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	if initRecipient != "" {
		cfg.Store.Recipient = initRecipient
		if err := configs.SaveConfig(configPath, cfg); err != nil {
			return fail(spinner, "Failed to save config", err)
		}
		Logger.Infof("Saved recipient %s to %s", initRecipient, configPath)
	}

	env, err := newEnv(settings, cfg)
	if err != nil {
		return fail(spinner, "Failed to set up the store", err)
	}

	profile := initProfile
	if profile == "" {
		if profile, err = utils.GetUsername(); err != nil {
			return fail(spinner, "Failed to get username", err)
		}
	}

	if initMail != "" && !utils.IsValidEmail(initMail) {
		Logger.WarnfAlways("%s does not look like an email address", initMail)
	}

	result, err := workflows.Init(context.Background(), env, workflows.InitOptions{
		DefaultAccount: initMail,
		Profile:        profile,
		Force:          initForce,
	})
	if err != nil {
		return fail(spinner, "Failed to create store", err)
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Created %s for %s with default profile %s",
		ui.Path.Sprint(result.StorePath), ui.Highlight.Sprint(result.Recipient), ui.Highlight.Sprint(result.Profile)) +
		"\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("baccounts generate --url <url>") + " to add a site"
	return nil
}
