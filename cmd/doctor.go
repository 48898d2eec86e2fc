package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var doctorJSONOutput bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on the store",
	Long: `Runs a series of health checks on the store and reports issues.

The doctor command checks:
  - A recipient is configured
  - The store file exists and only you can read it
  - No temporary files were left by a failed write
  - The store decrypts and parses
  - Profile names are unique and exactly one profile is the default

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (critical issues)

Use --json for machine-readable output.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	spinner, cleanup := startSpinner("Running health checks...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return failWithCode(spinner, "Failed to load config", err, 2)
	}

	result, err := workflows.Doctor(context.Background(), env)
	if err != nil {
		return failWithCode(spinner, "Failed to run health checks", err, 2)
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status.String(), check.Message)
	}

	var out bytes.Buffer
	if doctorJSONOutput {
		encoder := json.NewEncoder(&out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return failWithCode(spinner, "Failed to encode results", err, 2)
		}
	} else {
		printDoctorResults(&out, result)
		switch {
		case result.Summary.Errors > 0:
			out.WriteString(ui.Error.Sprint("✗") + " Health checks completed with errors")
		case result.Summary.Warnings > 0:
			out.WriteString(ui.Warning.Sprint("⚠") + " Health checks completed with warnings")
		default:
			out.WriteString(ui.Success.Sprint("✓") + " Health checks completed")
		}
	}
	spinner.FinalMSG = out.String()

	if result.Summary.Errors > 0 {
		return &ExitError{Code: 2}
	}
	if result.Summary.Warnings > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

func printDoctorResults(out *bytes.Buffer, result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		var statusIcon string
		switch check.Status {
		case workflows.CheckPass:
			statusIcon = ui.Success.Sprint("✓")
		case workflows.CheckWarning:
			statusIcon = ui.Warning.Sprint("⚠")
		case workflows.CheckError:
			statusIcon = ui.Error.Sprint("✗")
		}
		fmt.Fprintf(out, "%s %s: %s\n", statusIcon, check.Name, check.Message)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Fprintf(out, ", %s", ui.Warning.Sprint(fmt.Sprintf("%d warning(s)", result.Summary.Warnings)))
	}
	if result.Summary.Errors > 0 {
		fmt.Fprintf(out, ", %s", ui.Error.Sprint(fmt.Sprintf("%d error(s)", result.Summary.Errors)))
	}
	fmt.Fprintln(out)

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Suggestions:")
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(out, "  %s %s\n", ui.Info.Sprint("→"), suggestion)
		}
	}
	fmt.Fprintln(out)
}
