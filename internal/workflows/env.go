package workflows

import (
	"context"
	"fmt"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/configs"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/gateway"
	logger "github.com/kuenishi/baccounts/internal/logging"
	"github.com/kuenishi/baccounts/internal/utils"
)

// Env is what every workflow needs to reach the store.
type Env struct {
	Gateway   *gateway.Gateway
	StorePath string
	Recipient string
	AuditPath string
	Logger    logger.Logger
}

// NewCipher builds the cipher backend selected in the config.
func NewCipher(cfg *configs.Config) (gateway.Cipher, error) {
	switch cfg.Cipher.Backend {
	case configs.BackendGPG:
		return gateway.NewGPG(cfg.Cipher.GPGBinary, cfg.Cipher.GPGArgs...), nil
	case configs.BackendBox:
		identity, err := utils.ExpandHome(cfg.Cipher.Identity)
		if err != nil {
			return nil, err
		}
		keysDir, err := utils.ExpandHome(cfg.Cipher.KeysDir)
		if err != nil {
			return nil, err
		}
		return &gateway.Box{KeysDir: keysDir, Identity: identity}, nil
	default:
		return nil, fmt.Errorf("%w: unknown cipher backend %q", berrors.ErrInvalidConfig, cfg.Cipher.Backend)
	}
}

// NewEnv wires a gateway for cfg.
func NewEnv(settings *configs.Settings, cfg *configs.Config, log logger.Logger) (*Env, error) {
	cipher, err := NewCipher(cfg)
	if err != nil {
		return nil, err
	}

	storePath, err := utils.ExpandHome(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	return &Env{
		Gateway:   gateway.New(cipher, log),
		StorePath: storePath,
		Recipient: cfg.Store.Recipient,
		AuditPath: settings.AuditPath,
		Logger:    log,
	}, nil
}

func (e *Env) load(ctx context.Context) (*accounts.Store, error) {
	return e.Gateway.Decrypt(ctx, e.StorePath)
}

func (e *Env) save(ctx context.Context, store *accounts.Store) error {
	return e.Gateway.Encrypt(ctx, store, e.Recipient, e.StorePath)
}

// profile resolves name (or the default profile when empty) and returns a
// copy the caller may modify before handing it to UpdateProfile.
func profile(store *accounts.Store, name string) (*accounts.Profile, error) {
	p := store.FindProfile(name)
	if p == nil {
		if name == "" {
			return nil, fmt.Errorf("default profile: %w", berrors.ErrNotFound)
		}
		return nil, fmt.Errorf("profile %q: %w", name, berrors.ErrNotFound)
	}
	return p.Clone(), nil
}
