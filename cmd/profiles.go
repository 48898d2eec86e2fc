package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

// The profile commands have no flags of their own.
func resetProfileCommandsState() {}

var addProfileCmd = &cobra.Command{
	Use:   "add-profile <name>",
	Short: "Add an empty profile",
	Long: `Adds an empty profile. The first profile of a store becomes the default.

Examples:
  baccounts add-profile work`,
	Args: cobra.ExactArgs(1),
	RunE: runAddProfile,
}

var setDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Make a profile the default",
	Long: `Makes the named profile the default, used whenever --name is omitted.
Every other profile stops being the default.

Examples:
  baccounts set-default work`,
	Args: cobra.ExactArgs(1),
	RunE: runSetDefault,
}

func runAddProfile(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting add-profile command")

	spinner, cleanup := startSpinner("Adding profile...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.AddProfile(context.Background(), env, workflows.AddProfileOptions{Name: args[0]})
	if err != nil {
		return fail(spinner, "Failed to add profile", err)
	}

	msg := ui.Success.Sprint("✓") + " Added profile " + ui.Highlight.Sprint(result.Name)
	if result.Default {
		msg += " as the default"
	}
	spinner.FinalMSG = msg
	return nil
}

func runSetDefault(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting set-default command")

	spinner, cleanup := startSpinner("Setting default profile...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.SetDefault(context.Background(), env, workflows.SetDefaultOptions{Name: args[0]})
	if err != nil {
		return fail(spinner, "Failed to set default profile", err)
	}

	msg := ui.Success.Sprint("✓") + " " + ui.Highlight.Sprint(result.Name) + " is the default profile"
	if result.Previous != "" && result.Previous != result.Name {
		msg += fmt.Sprintf(" (was %s)", result.Previous)
	}
	spinner.FinalMSG = msg
	return nil
}
