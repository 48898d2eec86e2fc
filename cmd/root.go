package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kuenishi/baccounts/internal/configs"
	logger "github.com/kuenishi/baccounts/internal/logging"
	"github.com/kuenishi/baccounts/internal/workflows"
)

var (
	verbose    bool
	debug      bool
	storeFile  string
	configFile string
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "baccounts",
		Short: "baccounts - an encrypted store for site accounts and passwords",
		Long: `baccounts keeps site accounts and their passwords in a single encrypted
file. Every read decrypts the file, every write encrypts it again and
replaces the file atomically.

Sites are grouped into profiles; one profile is the default and is used
whenever --name is omitted. Sites are found by any unique fragment of their
URL.

Run 'baccounts help <command>' for more details on a specific command.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing baccounts with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			figure.NewColorFigure("baccounts", "standard", "green", true).Print()
			fmt.Println()
			fmt.Println("Run 'baccounts --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVarP(&storeFile, "file", "f", "", "encrypted store file (overrides store.path)")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/baccounts/config.toml)")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(updateCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(addProfileCmd)
	RootCmd.AddCommand(setDefaultCmd)
	RootCmd.AddCommand(diffCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(testCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(migrateCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(configCmd)
}

// loadConfig resolves the settings and the config file, applying the
// --config override. It returns the path the config came from so commands
// can save it back.
func loadConfig() (*configs.Settings, *configs.Config, string, error) {
	settings, err := configs.NewSettings()
	if err != nil {
		return nil, nil, "", err
	}

	path := settings.ConfigPath
	if configFile != "" {
		path = configFile
	}
	Logger.Debugf("Loading config from %s", path)

	cfg, err := configs.LoadConfig(settings, path)
	if err != nil {
		return nil, nil, "", err
	}
	return settings, cfg, path, nil
}

// effective returns cfg with the --file override applied. cfg itself is
// left as loaded so it can be saved back unchanged.
func effective(cfg *configs.Config) *configs.Config {
	if storeFile == "" {
		return cfg
	}
	Logger.Debugf("Store path overridden by --file: %s", storeFile)
	c := *cfg
	c.Store.Path = storeFile
	return &c
}

// newEnv builds the workflow environment for cfg and the current flags.
func newEnv(settings *configs.Settings, cfg *configs.Config) (*workflows.Env, error) {
	cfg = effective(cfg)
	env, err := workflows.NewEnv(settings, cfg, Logger)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Store %s, recipient %q, backend %s", env.StorePath, env.Recipient, cfg.Cipher.Backend)
	return env, nil
}

// loadEnv loads the config and builds the workflow environment.
func loadEnv() (*workflows.Env, error) {
	settings, cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newEnv(settings, cfg)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	storeFile = ""
	configFile = ""
	Logger = logger.Logger{}

	resetInitCommandState()
	resetListCommandState()
	resetShowCommandState()
	resetGenerateCommandState()
	resetUpdateCommandState()
	resetRemoveCommandState()
	resetProfileCommandsState()
	resetDiffCommandState()
	resetExportCommandState()
	resetDoctorCommandState()
	resetMigrateCommandState()
	resetKeygenCommandState()
	resetLogCommandState()
	resetConfigCommandState()

	resetFlags(RootCmd)
}

// resetFlags marks every flag of c and its subcommands as unset so values
// from a previous Execute don't leak into the next one.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
