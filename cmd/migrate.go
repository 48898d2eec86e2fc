package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/utils"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	migrateFrom         string
	migrateForce        bool
	migrateRemoveSource bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "plaintext store to import, or - for stdin (defaults to the store path)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite an existing encrypted store")
	migrateCmd.Flags().BoolVar(&migrateRemoveSource, "remove-source", false, "delete the plaintext file after a successful import")
}

func resetMigrateCommandState() {
	migrateFrom = ""
	migrateForce = false
	migrateRemoveSource = false
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Encrypt a plaintext store from an older release",
	Long: `Imports an unencrypted JSON store and writes it encrypted to the
configured store path.

When --from is omitted or equals the store path, the plaintext file is
replaced by its encrypted form in one atomic rename.

Examples:
  baccounts migrate
  baccounts migrate --from ~/backup/baccounts.json --remove-source
  cat baccounts.json | baccounts migrate --from -`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting migrate command")

	spinner, cleanup := startSpinner("Migrating store...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	opts := workflows.MigrateOptions{
		From:         migrateFrom,
		Force:        migrateForce,
		RemoveSource: migrateRemoveSource,
	}
	switch migrateFrom {
	case "-":
		opts.From = ""
		if opts.Data, err = utils.ReadStdin(); err != nil {
			return fail(spinner, "Failed to read stdin", err)
		}
	case "":
		opts.From = env.StorePath
	default:
		if opts.From, err = utils.ExpandHome(migrateFrom); err != nil {
			return fail(spinner, "Failed to resolve source", err)
		}
	}

	result, err := workflows.Migrate(context.Background(), env, opts)
	if err != nil {
		return fail(spinner, "Failed to migrate store", err)
	}

	msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Encrypted %d profile(s) and %d site(s) from %s into %s",
		result.Profiles, result.Sites, ui.Path.Sprint(result.Source), ui.Path.Sprint(env.StorePath))
	if result.SourceRemoved {
		msg += "\n" + ui.Info.Sprint("→") + " Removed " + ui.Path.Sprint(result.Source)
	}
	if result.Problems != nil {
		msg += "\n" + ui.Warning.Sprint("⚠") + " The imported store has problems; run " + ui.Code.Sprint("baccounts doctor")
	}
	spinner.FinalMSG = msg
	return nil
}
