// Package configs manages user configuration for baccounts.
//
// # Settings
//
// NewSettings resolves the per-user locations:
//   - config.toml under $XDG_CONFIG_HOME/baccounts
//   - audit.jsonl and the box keyring under $XDG_DATA_HOME/baccounts
//   - the store file, ~/.baccounts by default
//
// # Configuration
//
// The config file is TOML:
//
//	[store]
//	path = "/home/alice/.baccounts"
//	recipient = "alice@example.com"
//
//	[cipher]
//	backend = "gpg"   # or "box"
//	gpg_binary = "gpg"
//	gpg_args = []
//	identity = ""     # box private key
//	keys_dir = ""     # box public keys, <name>.pub
//
//	[generate]
//	length = 16
//	charset = "alnum" # or "ascii"
//
// Keys missing from the file keep their defaults. LoadConfig returns the
// defaults when the file does not exist.
package configs
