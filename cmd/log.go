package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/audit"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logProfile   string
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVar(&logLimit, "number", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVarP(&logProfile, "name", "n", "", "filter by profile")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logProfile = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the local audit log of store operations. Passwords and site
URLs beyond the host are never logged.

Examples:
  baccounts log                          # View full log
  baccounts log --number 10              # Last 10 entries
  baccounts log --reverse                # Most recent first
  baccounts log --name work              # Filter by profile
  baccounts log --operation show,update  # Filter by operation
  baccounts log --since 2024-01-01       # Filter by date
  baccounts log --json                   # JSON output`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.Log(context.Background(), env, workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Profile:    logProfile,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	if errors.Is(err, berrors.ErrNotFound) {
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No audit log found. Operations are logged once you run a store command."
		return nil
	}
	if err != nil {
		return fail(spinner, "Failed to read audit log", err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			spinner.FinalMSG = "No audit log entries found."
		} else {
			spinner.FinalMSG = "No audit log entries found matching the filters."
		}
		return nil
	}

	var out bytes.Buffer
	switch {
	case logJSON:
		data, err := json.MarshalIndent(result.Entries, "", "  ")
		if err != nil {
			return fail(spinner, "Failed to marshal entries to JSON", err)
		}
		out.Write(data)
	case logOneline:
		for _, e := range result.Entries {
			fmt.Fprintf(&out, "%s %s %s %s\n", entryDate(e), e.User, e.Operation, entryDetails(e))
		}
	default:
		table := ui.NewTable("TIME", "USER", "OPERATION", "DETAILS")
		for _, e := range result.Entries {
			table.Row(entryDateTime(e), e.User, e.Operation, entryDetails(e))
		}
		if err := table.Render(&out); err != nil {
			return fail(spinner, "Failed to render the log", err)
		}
	}

	spinner.FinalMSG = out.String()
	return nil
}

// entryDate returns the YYYY-MM-DD part of the entry timestamp.
func entryDate(e audit.Entry) string {
	if len(e.Timestamp) >= 10 {
		return e.Timestamp[:10]
	}
	return e.Timestamp
}

// entryDateTime returns the timestamp as "YYYY-MM-DD HH:MM:SS".
func entryDateTime(e audit.Entry) string {
	if len(e.Timestamp) >= 19 {
		return e.Timestamp[:10] + " " + e.Timestamp[11:19]
	}
	return e.Timestamp
}

func entryDetails(e audit.Entry) string {
	var parts []string
	if e.Profile != "" {
		parts = append(parts, "profile="+e.Profile)
	}
	if e.Host != "" {
		parts = append(parts, "host="+e.Host)
	}
	if e.Recipient != "" {
		parts = append(parts, "recipient="+e.Recipient)
	}
	if e.OutputPath != "" {
		parts = append(parts, "output="+e.OutputPath)
	}
	if e.Source != "" {
		parts = append(parts, "source="+e.Source)
	}
	if e.Count != 0 {
		parts = append(parts, fmt.Sprintf("count=%d", e.Count))
	}
	return strings.Join(parts, " ")
}
