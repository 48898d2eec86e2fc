package errors

import "errors"

// Lookup errors indicate something the caller asked for could not be resolved.
var (
	// ErrNotFound indicates a missing store file or a missing profile.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousOrMissingSite indicates a site query matched zero or several sites.
	ErrAmbiguousOrMissingSite = errors.New("site query did not match exactly one site")
)

// Model errors indicate data that violates the store format.
var (
	// ErrInvalidURL indicates a site URL could not be parsed or has no host.
	ErrInvalidURL = errors.New("invalid site URL")

	// ErrMalformedStore indicates the decrypted document is not a valid store.
	ErrMalformedStore = errors.New("malformed store document")

	// ErrProfileExists indicates a profile with the same name is already stored.
	ErrProfileExists = errors.New("profile already exists")

	// ErrSiteExists indicates a site for the same host is already stored.
	ErrSiteExists = errors.New("site already exists")
)

// Cryptographic errors indicate failures of the cipher backend.
var (
	// ErrDecryptFailed indicates the cipher could not be launched or failed to decrypt.
	ErrDecryptFailed = errors.New("failed to decrypt store")

	// ErrEncryptFailed indicates the cipher could not be launched or failed to encrypt.
	ErrEncryptFailed = errors.New("failed to encrypt store")

	// ErrNoRecipient indicates no encryption recipient was configured.
	ErrNoRecipient = errors.New("no recipient configured")

	// ErrInvalidKey indicates a key file is malformed.
	ErrInvalidKey = errors.New("invalid key")
)

// Input errors indicate user supplied values were rejected.
var (
	// ErrPasswordMismatch indicates the two password inputs differ.
	ErrPasswordMismatch = errors.New("password inputs don't match")

	// ErrPasswordTooShort indicates a new password is below the minimum length.
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrInvalidDateFormat indicates a --since or --until value is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Configuration errors indicate a config file with unusable values.
var (
	// ErrInvalidConfig indicates config.toml holds an unknown backend or charset.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Workflow errors indicate a command refused to run.
var (
	// ErrFileExists indicates init, export or keygen would overwrite an existing file.
	ErrFileExists = errors.New("file already exists")
)
