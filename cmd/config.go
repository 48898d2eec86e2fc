package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/configs"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/utils"
)

var (
	configShowJSON bool
	configForce    bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetRecipientCmd)
}

func resetConfigCommandState() {
	configShowJSON = false
	configForce = false
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage baccounts configuration",
	Long: `Shows and edits the config file, by default
$XDG_CONFIG_HOME/baccounts/config.toml.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration after defaults, the config file and --file are
applied.

Examples:
  baccounts config show
  baccounts config show --json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configSetRecipientCmd = &cobra.Command{
	Use:   "set-recipient <key id>",
	Short: "Set the key the store is encrypted for",
	Long: `Sets the recipient the store is encrypted for: a gpg key id or email with
the gpg backend, or a key name or base64 public key with the box backend.

The store itself is re-encrypted for the new recipient on the next write.

Examples:
  baccounts config set-recipient 0xDEADBEEF
  baccounts config set-recipient me@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetRecipient,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config show command")

	_, cfg, path, err := loadConfig()
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " Failed to load config: " + err.Error())
		return &ExitError{Code: 1, Err: err}
	}

	cfg = effective(cfg)
	if configShowJSON {
		output, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	source := ui.Path.Sprint(path)
	if !utils.FileExists(path) {
		source += " " + ui.Muted.Sprint("not found, using defaults")
	}
	fmt.Println(ui.Info.Sprint("Configuration") + " from " + source + ":")
	fmt.Println()

	recipient := cfg.Store.Recipient
	if recipient == "" {
		recipient = ui.Warning.Sprint("(not set)")
	}
	fmt.Printf("  %-12s %s\n", "Store:", ui.Path.Sprint(cfg.Store.Path))
	fmt.Printf("  %-12s %s\n", "Recipient:", recipient)
	fmt.Printf("  %-12s %s\n", "Backend:", ui.Highlight.Sprint(cfg.Cipher.Backend))
	switch cfg.Cipher.Backend {
	case configs.BackendGPG:
		binary := cfg.Cipher.GPGBinary
		if len(cfg.Cipher.GPGArgs) > 0 {
			binary += " " + strings.Join(cfg.Cipher.GPGArgs, " ")
		}
		fmt.Printf("  %-12s %s\n", "GPG:", binary)
	case configs.BackendBox:
		fmt.Printf("  %-12s %s\n", "Identity:", ui.Path.Sprint(cfg.Cipher.Identity))
		fmt.Printf("  %-12s %s\n", "Keys:", ui.Path.Sprint(cfg.Cipher.KeysDir))
	}
	fmt.Printf("  %-12s %d characters, %s\n", "Passwords:", cfg.Generate.Length, cfg.Generate.Charset)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config init command")

	settings, cfg, path, err := loadConfig()
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " Failed to load config: " + err.Error())
		return &ExitError{Code: 1, Err: err}
	}

	if utils.FileExists(path) && !configForce {
		err := fmt.Errorf("%s: %w", path, berrors.ErrFileExists)
		fmt.Println(ui.Error.Sprint("✗") + " " + formatError(err))
		return &ExitError{Code: 1, Err: err}
	}
	if configForce {
		cfg = configs.DefaultConfig(settings)
	}

	if err := configs.SaveConfig(path, cfg); err != nil {
		return Logger.ErrorfAndReturn("Failed to write config: %w", err)
	}

	fmt.Println(ui.Success.Sprint("✓") + " Wrote " + ui.Path.Sprint(path))
	return nil
}

func runConfigSetRecipient(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config set-recipient command")

	_, cfg, path, err := loadConfig()
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " Failed to load config: " + err.Error())
		return &ExitError{Code: 1, Err: err}
	}

	previous := cfg.Store.Recipient
	cfg.Store.Recipient = args[0]
	if err := configs.SaveConfig(path, cfg); err != nil {
		return Logger.ErrorfAndReturn("Failed to save config: %w", err)
	}
	Logger.Infof("Recipient changed from %q to %q", previous, args[0])

	fmt.Println(ui.Success.Sprint("✓") + " Recipient set to " + ui.Highlight.Sprint(args[0]))
	fmt.Println(ui.Info.Sprint("→") + " The store is re-encrypted for it on the next change, or run " +
		ui.Code.Sprint("baccounts test") + " to check the key now")
	return nil
}
