// Package errors provides typed error values for baccounts.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Lookup errors: a file, profile or site could not be resolved
//     (ErrNotFound, ErrAmbiguousOrMissingSite)
//   - Model errors: data violates the store format (ErrInvalidURL, ErrMalformedStore)
//   - Crypto errors: the cipher process failed (ErrDecryptFailed, ErrEncryptFailed)
//   - Input errors: user supplied values were rejected
//   - Configuration errors: config.toml cannot be used (ErrInvalidConfig)
//
// # Usage
//
// Wrap sentinels with the context needed to act on them:
//
//	return fmt.Errorf("profile %q: %w", name, errors.ErrNotFound)
//
// Handle them in the CLI layer:
//
//	if errors.Is(err, berrors.ErrAmbiguousOrMissingSite) {
//	    // list the candidates and ask for a longer query
//	}
package errors
