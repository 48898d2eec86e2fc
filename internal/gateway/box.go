package gateway

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

const (
	boxMessageType    = "BACCOUNTS MESSAGE"
	boxPublicKeyType  = "BACCOUNTS PUBLIC KEY"
	boxPrivateKeyType = "BACCOUNTS PRIVATE KEY"

	// BoxPublicKeyExt is the extension of public keys in a keyring directory.
	BoxPublicKeyExt = ".pub"
)

// Box seals documents with NaCl anonymous boxes (X25519 + XSalsa20-Poly1305).
type Box struct {
	// KeysDir holds recipient public keys as <name>.pub.
	KeysDir string

	// Identity is the private key file used to decrypt.
	Identity string
}

// Encrypt seals plaintext for recipient. The recipient is either a key name
// in KeysDir or a base64 encoded public key.
func (b *Box) Encrypt(ctx context.Context, plaintext []byte, recipient string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", berrors.ErrEncryptFailed, err)
	}
	if recipient == "" {
		return nil, fmt.Errorf("%w: %w", berrors.ErrEncryptFailed, berrors.ErrNoRecipient)
	}
	pub, err := b.resolveRecipient(recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", berrors.ErrEncryptFailed, err)
	}

	sealed, err := box.SealAnonymous(nil, plaintext, pub, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: sealing: %v", berrors.ErrEncryptFailed, err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: boxMessageType, Bytes: sealed}), nil
}

// Decrypt opens an armored message with the identity key.
func (b *Box) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", berrors.ErrDecryptFailed, err)
	}
	block, _ := pem.Decode(ciphertext)
	if block == nil || block.Type != boxMessageType {
		return nil, fmt.Errorf("%w: no %s block found", berrors.ErrDecryptFailed, boxMessageType)
	}

	priv, err := LoadBoxPrivateKey(b.Identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", berrors.ErrDecryptFailed, err)
	}
	pub, err := publicFromPrivate(priv)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", berrors.ErrDecryptFailed, err)
	}

	plaintext, ok := box.OpenAnonymous(nil, block.Bytes, pub, priv)
	if !ok {
		return nil, fmt.Errorf("%w: message is not sealed for identity %s", berrors.ErrDecryptFailed, b.Identity)
	}
	return plaintext, nil
}

func (b *Box) resolveRecipient(recipient string) (*[32]byte, error) {
	if b.KeysDir != "" {
		path := filepath.Join(b.KeysDir, recipient+BoxPublicKeyExt)
		if _, err := os.Stat(path); err == nil {
			return LoadBoxPublicKey(path)
		}
	}
	raw, err := base64.StdEncoding.DecodeString(recipient)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("recipient %q is neither a known key nor a base64 public key: %w", recipient, berrors.ErrInvalidKey)
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}

func publicFromPrivate(priv *[32]byte) (*[32]byte, error) {
	pubBytes, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("deriving public key: %w", err)
	}
	var pub [32]byte
	copy(pub[:], pubBytes)
	return &pub, nil
}

// GenerateBoxKey creates a key pair and saves it to disk. The public key is
// returned in the base64 form accepted as a recipient.
func GenerateBoxKey(privatePath, publicPath string) (string, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate key pair: %w", err)
	}

	for _, dir := range []string{filepath.Dir(privatePath), filepath.Dir(publicPath)} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", fmt.Errorf("failed to create key directory %s: %w", dir, err)
		}
	}

	privPem := pem.EncodeToMemory(&pem.Block{Type: boxPrivateKeyType, Bytes: priv[:]})
	if err := os.WriteFile(privatePath, privPem, 0600); err != nil {
		return "", fmt.Errorf("failed to save private key at %s: %w", privatePath, err)
	}
	pubPem := pem.EncodeToMemory(&pem.Block{Type: boxPublicKeyType, Bytes: pub[:]})
	// #nosec G306 -- public keys are meant to be shared
	if err := os.WriteFile(publicPath, pubPem, 0644); err != nil {
		return "", fmt.Errorf("failed to save public key at %s: %w", publicPath, err)
	}

	return base64.StdEncoding.EncodeToString(pub[:]), nil
}

// LoadBoxPublicKey loads a public key saved by GenerateBoxKey.
func LoadBoxPublicKey(path string) (*[32]byte, error) {
	return loadBoxKey(path, boxPublicKeyType)
}

// LoadBoxPrivateKey loads a private key saved by GenerateBoxKey.
func LoadBoxPrivateKey(path string) (*[32]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("no identity key configured: %w", berrors.ErrInvalidKey)
	}
	return loadBoxKey(path, boxPrivateKeyType)
}

func loadBoxKey(path, blockType string) (*[32]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("key file %s: %w", path, berrors.ErrNotFound)
		}
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != blockType || len(block.Bytes) != 32 {
		return nil, fmt.Errorf("failed to decode %s from %s: %w", blockType, path, berrors.ErrInvalidKey)
	}
	var key [32]byte
	copy(key[:], block.Bytes)
	return &key, nil
}
