// Package workflows provides high-level orchestration for baccounts commands.
//
// Workflows coordinate the config, gateway, accounts and audit packages to
// implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds an Env from the configuration
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Decrypting the store through the gateway
//   - Resolving the profile and the site query
//   - Staging changes on a copy of the profile and committing it with
//     Store.UpdateProfile
//   - Re-encrypting the store atomically
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - List, Show: read the store
//   - Generate, Update, Remove: change one site
//   - AddProfile, SetDefault: change profiles
//   - Init, Migrate: create a store, empty or from a plaintext file
//   - Diff, Export, CheckKey, Doctor, Log: compare, re-encrypt and inspect
//   - Keygen: create a key pair for the box backend
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Show(ctx, env, opts)
//	if errors.Is(err, berrors.ErrAmbiguousOrMissingSite) {
//	    // Suggest a longer query
//	}
//
// # Context Usage
//
// Workflows that run the cipher accept a context.Context as their first
// parameter. It is passed to the cipher process, so cancelling it stops a
// hung gpg.
package workflows
