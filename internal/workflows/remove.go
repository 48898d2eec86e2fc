package workflows

import (
	"context"

	"github.com/kuenishi/baccounts/internal/audit"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	Profile string
	Query   string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	Profile string
	Host    string
	URL     string
}

// Remove deletes the one site matching the query.
//
// Returns ErrAmbiguousOrMissingSite unless exactly one site matches.
func Remove(ctx context.Context, env *Env, opts RemoveOptions) (*RemoveResult, error) {
	store, err := env.load(ctx)
	if err != nil {
		return nil, err
	}

	p, err := profile(store, opts.Profile)
	if err != nil {
		return nil, err
	}

	site, err := p.RemoveSite(opts.Query)
	if err != nil {
		return nil, err
	}
	if err := store.UpdateProfile(p); err != nil {
		return nil, err
	}

	if err := env.save(ctx, store); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("remove")
	entry.Profile = p.Name
	entry.Host = site.Name
	audit.Log(env.AuditPath, entry)

	return &RemoveResult{Profile: p.Name, Host: site.Name, URL: site.URL}, nil
}
