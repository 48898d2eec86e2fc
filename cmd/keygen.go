package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuenishi/baccounts/internal/configs"
	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/utils"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	keygenName  string
	keygenForce bool
	keygenUse   bool
)

func init() {
	keygenCmd.Flags().StringVarP(&keygenName, "name", "n", "", "key name (defaults to your username)")
	keygenCmd.Flags().BoolVar(&keygenForce, "force", false, "overwrite an existing key pair")
	keygenCmd.Flags().BoolVar(&keygenUse, "use", false, "switch the config to the box backend with this key")
}

func resetKeygenCommandState() {
	keygenName = ""
	keygenForce = false
	keygenUse = false
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Create a key pair for the built-in box backend",
	Long: `Creates a Curve25519 key pair for the box cipher backend, for machines
without gpg. The public key is saved next to other recipients' keys and can
be shared; the private key is readable only by you.

Examples:
  baccounts keygen --use
  baccounts keygen --name laptop`,
	RunE: runKeygen,
}

func runKeygen(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting keygen command")

	spinner, cleanup := startSpinner("Generating key pair...", verbose)
	defer cleanup()

	_, cfg, configPath, err := loadConfig()
	if err != nil {
		return fail(spinner, "Failed to load config", err)
	}

	name := keygenName
	if name == "" {
		if name, err = utils.GetUsername(); err != nil {
			return fail(spinner, "Failed to get username", err)
		}
	}

	keysDir, err := utils.ExpandHome(cfg.Cipher.KeysDir)
	if err != nil {
		return fail(spinner, "Failed to resolve keys directory", err)
	}

	result, err := workflows.Keygen(workflows.KeygenOptions{
		Name:    name,
		KeysDir: keysDir,
		Force:   keygenForce,
	})
	if err != nil {
		return fail(spinner, "Failed to generate key pair", err)
	}

	msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Created key %s\n  private: %s\n  public:  %s",
		ui.Highlight.Sprint(name), ui.Path.Sprint(result.PrivateKeyPath), ui.Path.Sprint(result.PublicKeyPath))

	if keygenUse {
		cfg.Cipher.Backend = configs.BackendBox
		cfg.Cipher.Identity = result.PrivateKeyPath
		cfg.Cipher.KeysDir = keysDir
		cfg.Store.Recipient = name
		if err := configs.SaveConfig(configPath, cfg); err != nil {
			return fail(spinner, "Failed to save config", err)
		}
		msg += "\n" + ui.Info.Sprint("→") + " Using the box backend with recipient " + ui.Highlight.Sprint(name) +
			" (saved to " + ui.Path.Sprint(configPath) + ")"
	} else {
		msg += "\n" + ui.Info.Sprint("→") + " Share " + ui.Path.Sprint(result.PublicKeyPath) +
			" and use " + ui.Code.Sprint(name) + " or " + ui.Code.Sprint(result.PublicKey) + " as a recipient"
	}
	spinner.FinalMSG = msg
	return nil
}
