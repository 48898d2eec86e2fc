package workflows

import (
	"fmt"
	"path/filepath"

	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/gateway"
	"github.com/kuenishi/baccounts/internal/utils"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// Name is the key name; the public half is saved as <KeysDir>/<Name>.pub.
	Name string

	// KeysDir holds public keys and, as <Name>.key, the private key.
	KeysDir string

	// Force overwrites an existing key pair.
	Force bool
}

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	PrivateKeyPath string
	PublicKeyPath  string

	// PublicKey is the base64 form accepted as a box recipient.
	PublicKey string
}

// Keygen creates a key pair for the box cipher backend.
//
// Returns ErrFileExists if a private key with that name already exists and
// Force is not set.
func Keygen(opts KeygenOptions) (*KeygenResult, error) {
	if opts.Name == "" || filepath.Base(opts.Name) != opts.Name {
		return nil, fmt.Errorf("%w: key name %q", berrors.ErrInvalidKey, opts.Name)
	}

	priv := filepath.Join(opts.KeysDir, opts.Name+".key")
	pub := filepath.Join(opts.KeysDir, opts.Name+gateway.BoxPublicKeyExt)
	if utils.FileExists(priv) && !opts.Force {
		return nil, fmt.Errorf("%s: %w", priv, berrors.ErrFileExists)
	}

	encoded, err := gateway.GenerateBoxKey(priv, pub)
	if err != nil {
		return nil, err
	}

	return &KeygenResult{PrivateKeyPath: priv, PublicKeyPath: pub, PublicKey: encoded}, nil
}
