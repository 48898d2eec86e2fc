package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	listProfile string
	listFormat  string
)

func init() {
	listCmd.Flags().StringVarP(&listProfile, "name", "n", "", "only list this profile")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "output format: table, json or yaml")
}

func resetListCommandState() {
	listProfile = ""
	listFormat = "table"
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List profiles and sites",
	Long: `Lists every profile and its sites. Passwords are never shown.

The default profile is marked with '*'.

Examples:
  baccounts list
  baccounts list --name work --format json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting list command")

	spinner, cleanup := startSpinner("Decrypting store...", verbose)
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	result, err := workflows.List(context.Background(), env, workflows.ListOptions{Profile: listProfile})
	if err != nil {
		return fail(spinner, "Failed to list sites", err)
	}

	var out bytes.Buffer
	switch listFormat {
	case "json":
		encoder := json.NewEncoder(&out)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(result)
	case "yaml":
		encoder := yaml.NewEncoder(&out)
		encoder.SetIndent(2)
		err = encoder.Encode(result)
		if err == nil {
			err = encoder.Close()
		}
	case "table":
		err = renderListTable(&out, result)
	default:
		err = fmt.Errorf("unknown format %q", listFormat)
	}
	if err != nil {
		return fail(spinner, "Failed to render the list", err)
	}

	spinner.FinalMSG = out.String()
	return nil
}

func renderListTable(out *bytes.Buffer, result *workflows.ListResult) error {
	table := ui.NewTable("PROFILE", "HOST", "ACCOUNT", "URL")
	for _, p := range result.Profiles {
		name := p.Name
		if p.Default {
			name += "*"
		}
		if len(p.Sites) == 0 {
			table.Row(name, ui.Muted.Sprint("no sites"), "", "")
			continue
		}
		for _, site := range p.Sites {
			table.Row(name, site.Host, site.Account, site.URL)
		}
	}

	if table.Len() == 0 {
		out.WriteString("No profiles. Run " + ui.Code.Sprint("baccounts add-profile <name>") + "\n")
		return nil
	}
	return table.Render(out)
}
