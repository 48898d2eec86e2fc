package workflows

import (
	"context"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/audit"
	"github.com/kuenishi/baccounts/internal/utils"
)

// UpdateOptions configures the update workflow.
type UpdateOptions struct {
	Profile string
	Query   string

	// Password is the new secret, at least utils.MinPasswordLength bytes.
	Password []byte
}

// UpdateResult contains the outcome of an update operation.
type UpdateResult struct {
	Profile string
	Host    string
}

// Update replaces the password of the one site matching the query.
//
// Returns ErrPasswordTooShort before touching the store.
// Returns ErrAmbiguousOrMissingSite unless exactly one site matches.
func Update(ctx context.Context, env *Env, opts UpdateOptions) (*UpdateResult, error) {
	if err := utils.CheckPassword(opts.Password); err != nil {
		return nil, err
	}

	store, err := env.load(ctx)
	if err != nil {
		return nil, err
	}

	p, err := profile(store, opts.Profile)
	if err != nil {
		return nil, err
	}

	old, err := p.FindSite(opts.Query)
	if err != nil {
		return nil, err
	}

	site, err := accounts.NewSite(old.URL, accounts.EncodeSecret(opts.Password), old.Account)
	if err != nil {
		return nil, err
	}
	if err := p.UpdateSite(site); err != nil {
		return nil, err
	}
	if err := store.UpdateProfile(p); err != nil {
		return nil, err
	}

	if err := env.save(ctx, store); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("update")
	entry.Profile = p.Name
	entry.Host = site.Name
	audit.Log(env.AuditPath, entry)

	return &UpdateResult{Profile: p.Name, Host: site.Name}, nil
}
