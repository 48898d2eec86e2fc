package workflows

import (
	"context"

	"github.com/kuenishi/baccounts/internal/audit"
)

// AddProfileOptions configures the add-profile workflow.
type AddProfileOptions struct {
	Name string
}

// AddProfileResult contains the outcome of an add-profile operation.
type AddProfileResult struct {
	Name string

	// Default is set when the new profile is the first and so the default.
	Default bool
}

// AddProfile appends an empty profile to the store.
//
// Returns ErrProfileExists if the name is taken.
func AddProfile(ctx context.Context, env *Env, opts AddProfileOptions) (*AddProfileResult, error) {
	store, err := env.load(ctx)
	if err != nil {
		return nil, err
	}

	p, err := store.AddProfile(opts.Name)
	if err != nil {
		return nil, err
	}

	if err := env.save(ctx, store); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("add-profile")
	entry.Profile = p.Name
	audit.Log(env.AuditPath, entry)

	return &AddProfileResult{Name: p.Name, Default: p.Default}, nil
}

// SetDefaultOptions configures the set-default workflow.
type SetDefaultOptions struct {
	Name string
}

// SetDefaultResult contains the outcome of a set-default operation.
type SetDefaultResult struct {
	Name     string
	Previous string
}

// SetDefault marks the named profile as the only default.
//
// Returns ErrNotFound if no profile has that name.
func SetDefault(ctx context.Context, env *Env, opts SetDefaultOptions) (*SetDefaultResult, error) {
	store, err := env.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &SetDefaultResult{Name: opts.Name}
	if prev := store.FindProfile(""); prev != nil {
		result.Previous = prev.Name
	}

	if err := store.SetDefault(opts.Name); err != nil {
		return nil, err
	}

	if err := env.save(ctx, store); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("set-default")
	entry.Profile = opts.Name
	audit.Log(env.AuditPath, entry)

	return result, nil
}
