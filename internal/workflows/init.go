package workflows

import (
	"context"
	"fmt"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/audit"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/utils"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// DefaultAccount is used for new sites that don't name an account.
	DefaultAccount string

	// Profile, when set, is created as the default profile.
	Profile string

	// Force overwrites an existing store file.
	Force bool
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	StorePath string
	Recipient string
	Profile   string
}

// Init writes a new empty store encrypted for the configured recipient.
//
// Returns ErrFileExists if the store file exists and Force is not set.
// Returns ErrNoRecipient if no recipient is configured.
func Init(ctx context.Context, env *Env, opts InitOptions) (*InitResult, error) {
	if utils.FileExists(env.StorePath) && !opts.Force {
		return nil, fmt.Errorf("%s: %w", env.StorePath, berrors.ErrFileExists)
	}

	store := accounts.NewStore(opts.DefaultAccount)
	if opts.Profile != "" {
		if _, err := store.AddProfile(opts.Profile); err != nil {
			return nil, err
		}
	}

	if err := env.save(ctx, store); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("init")
	entry.Profile = opts.Profile
	entry.Recipient = env.Recipient
	audit.Log(env.AuditPath, entry)

	return &InitResult{
		StorePath: env.StorePath,
		Recipient: env.Recipient,
		Profile:   opts.Profile,
	}, nil
}
