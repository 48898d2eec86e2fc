package gateway

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kuenishi/baccounts/internal/accounts"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	logger "github.com/kuenishi/baccounts/internal/logging"
)

// StoreFileMode is the permission of written store files.
const StoreFileMode = 0600

// Gateway reads and writes encrypted stores through a Cipher.
type Gateway struct {
	cipher Cipher
	log    logger.Logger
}

// New returns a gateway using cipher.
func New(cipher Cipher, log logger.Logger) *Gateway {
	return &Gateway{cipher: cipher, log: log}
}

// Decrypt loads the store encrypted at path.
//
// Returns ErrNotFound if path does not exist, ErrDecryptFailed if the cipher
// fails and ErrMalformedStore if the plaintext is not a store.
func (g *Gateway) Decrypt(ctx context.Context, path string) (*accounts.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store file %s: %w", path, berrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %s: %v", berrors.ErrDecryptFailed, path, err)
	}

	g.log.Debugf("Decrypting %s", path)
	plaintext, err := g.decryptFile(ctx, path)
	if err != nil {
		return nil, err
	}
	g.log.Debugf("Decrypted %d bytes", len(plaintext))

	store, err := accounts.Parse(plaintext)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	g.log.Infof("Loaded %d profiles from %s", len(store.Profiles), path)
	return store, nil
}

func (g *Gateway) decryptFile(ctx context.Context, path string) ([]byte, error) {
	if fd, ok := g.cipher.(FileDecrypter); ok {
		plaintext, err := fd.DecryptFile(ctx, path)
		if err != nil {
			return nil, ensure(berrors.ErrDecryptFailed, err)
		}
		return plaintext, nil
	}

	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", berrors.ErrDecryptFailed, path, err)
	}
	plaintext, err := g.cipher.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, ensure(berrors.ErrDecryptFailed, err)
	}
	return plaintext, nil
}

// Encrypt serializes store, encrypts it for recipient and atomically
// replaces path with the result.
//
// Returns ErrEncryptFailed when any step fails; the file at path is then
// left as it was.
func (g *Gateway) Encrypt(ctx context.Context, store *accounts.Store, recipient, path string) error {
	if recipient == "" {
		return fmt.Errorf("%w: %w", berrors.ErrEncryptFailed, berrors.ErrNoRecipient)
	}

	plaintext, err := accounts.Marshal(store)
	if err != nil {
		return fmt.Errorf("%w: %v", berrors.ErrEncryptFailed, err)
	}

	g.log.Debugf("Encrypting %d bytes for %s", len(plaintext), recipient)
	ciphertext, err := g.cipher.Encrypt(ctx, plaintext, recipient)
	if err != nil {
		return ensure(berrors.ErrEncryptFailed, err)
	}
	if len(ciphertext) == 0 {
		return fmt.Errorf("%w: cipher produced no output", berrors.ErrEncryptFailed)
	}

	tmpPath, err := writeAtomic(path, ciphertext, StoreFileMode)
	if err != nil {
		if tmpPath != "" {
			g.log.WarnfAlways("Left temporary file %s for inspection", tmpPath)
		}
		return fmt.Errorf("%w: %v", berrors.ErrEncryptFailed, err)
	}
	g.log.Infof("Wrote %s", path)
	return nil
}

// TempName returns the temporary file a write to path stages its data in.
func TempName(path, id string) string {
	return filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id))
}

// LeftoverTempFiles lists temporary files that failed writes to path left
// in its directory. Names are compared literally, so paths containing glob
// metacharacters are handled.
func LeftoverTempFiles(path string) ([]string, error) {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	prefix := "." + filepath.Base(path) + "."
	var leftovers []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && len(name) > len(prefix)+len(".tmp") &&
			strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".tmp") {
			leftovers = append(leftovers, filepath.Join(dir, name))
		}
	}
	return leftovers, nil
}

// writeAtomic writes data to a new file next to path and renames it over
// path. It returns the temporary path when the file was created but could
// not be moved into place.
func writeAtomic(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	tmpPath := TempName(path, uuid.NewString())

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return "", fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return tmpPath, fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return tmpPath, fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err := f.Close(); err != nil {
		return tmpPath, fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return tmpPath, fmt.Errorf("replacing %s: %w", path, err)
	}
	return "", nil
}

// ensure wraps err with sentinel unless it already carries it.
func ensure(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
