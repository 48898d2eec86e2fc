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
	generateURL     string
	generateProfile string
	generateMail    string
	generateLength  int
	generateCharset string
	generateForce   bool
	generatePrint   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateURL, "url", "u", "", "URL of the site (https:// is added when no scheme is given)")
	generateCmd.Flags().StringVarP(&generateProfile, "name", "n", "", "profile to add the site to (defaults to the default profile)")
	generateCmd.Flags().StringVarP(&generateMail, "mail", "m", "", "account for the site (defaults to the store's default account)")
	generateCmd.Flags().IntVarP(&generateLength, "len", "l", 0, "password length (defaults to generate.length in the config)")
	generateCmd.Flags().StringVar(&generateCharset, "charset", "", "password characters: alnum or ascii (defaults to generate.charset in the config)")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "replace the password of an existing site")
	generateCmd.Flags().BoolVar(&generatePrint, "print", false, "print the password to stdout instead of copying it")
}

func resetGenerateCommandState() {
	generateURL = ""
	generateProfile = ""
	generateMail = ""
	generateLength = 0
	generateCharset = ""
	generateForce = false
	generatePrint = false
}

var generateCmd = &cobra.Command{
	Use:     "generate [url]",
	Aliases: []string{"gen"},
	Short:   "Generate a password for a site",
	Long: `Generates a random password for a site, saves it in the store and copies
it to the clipboard.

Sites are keyed by host, so generating for a host that is already stored
fails unless --force is given.

Examples:
  baccounts generate https://github.com/login
  baccounts generate --url mail.example.com --mail me@example.com --len 24`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting generate command")

	rawURL := generateURL
	if len(args) == 1 {
		rawURL = args[0]
	}

	spinner, cleanup := startSpinner("Generating password...", verbose)
	defer cleanup()

	if rawURL == "" {
		return fail(spinner, "Failed to generate password", fmt.Errorf("a site URL is required"))
	}
	url := utils.NormalizeURL(rawURL)
	Logger.Debugf("Normalized %q to %q", rawURL, url)

	settings, cfg, _, err := loadConfig()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}
	env, err := newEnv(settings, cfg)
	if err != nil {
		return fail(spinner, "Failed to set up the store", err)
	}

	length := cfg.Generate.Length
	if cmd.Flags().Changed("len") {
		length = generateLength
	}
	charset := cfg.Generate.Charset
	if generateCharset != "" {
		charset = generateCharset
	}

	result, err := workflows.Generate(context.Background(), env, workflows.GenerateOptions{
		Profile: generateProfile,
		URL:     url,
		Account: generateMail,
		Length:  length,
		Charset: charset,
		Force:   generateForce,
		Print:   generatePrint,
	})
	if err != nil {
		return fail(spinner, "Failed to generate password", err)
	}

	verb := "Added"
	if result.Replaced {
		verb = "Replaced"
	}
	msg := ui.Success.Sprint("✓") + fmt.Sprintf(" %s %s (%s) in profile %s",
		verb, ui.Highlight.Sprint(result.Host), result.Account, ui.Highlight.Sprint(result.Profile))
	if result.Copied {
		msg += "\n" + ui.Info.Sprint("→") + " The password is in your clipboard"
	} else {
		msg += "\n" + string(result.Password)
	}
	spinner.FinalMSG = msg
	return nil
}
