package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kuenishi/baccounts/internal/accounts"
	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// CheckKeyResult contains the outcome of a key check.
type CheckKeyResult struct {
	Recipient string
	Elapsed   time.Duration
}

// CheckKey encrypts a throwaway store for the configured recipient and
// decrypts it again, proving both halves of the key pair work before real
// data depends on them.
//
// Returns ErrEncryptFailed or ErrDecryptFailed from the failing half.
func CheckKey(ctx context.Context, env *Env) (*CheckKeyResult, error) {
	start := time.Now()

	dir, err := os.MkdirTemp("", "baccounts-check-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	sample := accounts.NewStore("sample@example.com")
	p, err := sample.AddProfile("sample")
	if err != nil {
		return nil, err
	}
	site, err := accounts.NewSite("https://sample.example.com", accounts.EncodeSecret([]byte(start.Format(time.RFC3339Nano))), "sample@example.com")
	if err != nil {
		return nil, err
	}
	if err := p.UpdateSite(site); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "sample.asc")
	if err := env.Gateway.Encrypt(ctx, sample, env.Recipient, path); err != nil {
		return nil, err
	}
	back, err := env.Gateway.Decrypt(ctx, path)
	if err != nil {
		return nil, err
	}

	if n := accounts.Diff(sample, back, nil); n != 0 {
		return nil, fmt.Errorf("%w: round trip changed %d fields", berrors.ErrDecryptFailed, n)
	}

	return &CheckKeyResult{Recipient: env.Recipient, Elapsed: time.Since(start)}, nil
}
