package workflows

import (
	"context"

	"github.com/kuenishi/baccounts/internal/audit"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Profile restricts the listing to one profile. Empty lists all.
	Profile string
}

// SiteSummary describes a site without its secret.
type SiteSummary struct {
	Host    string `json:"host" yaml:"host"`
	URL     string `json:"url" yaml:"url"`
	Account string `json:"account" yaml:"account"`
}

// ProfileSummary describes a profile without secrets.
type ProfileSummary struct {
	Name    string        `json:"name" yaml:"name"`
	Default bool          `json:"default" yaml:"default"`
	Sites   []SiteSummary `json:"sites" yaml:"sites"`
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	Version        string           `json:"version" yaml:"version"`
	DefaultAccount string           `json:"default_account" yaml:"default_account"`
	Profiles       []ProfileSummary `json:"profiles" yaml:"profiles"`
}

// List decrypts the store and returns every profile and site without
// secrets, in store order with sites sorted by host.
//
// Returns ErrNotFound if the store file or the requested profile is missing.
func List(ctx context.Context, env *Env, opts ListOptions) (*ListResult, error) {
	store, err := env.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Version:        store.Version,
		DefaultAccount: store.DefaultAccount,
		Profiles:       []ProfileSummary{},
	}

	if opts.Profile != "" {
		if _, err := profile(store, opts.Profile); err != nil {
			return nil, err
		}
	}

	for _, p := range store.Profiles {
		if opts.Profile != "" && p.Name != opts.Profile {
			continue
		}
		summary := ProfileSummary{Name: p.Name, Default: p.Default, Sites: []SiteSummary{}}
		for _, host := range p.Hosts() {
			site := p.Sites[host]
			summary.Sites = append(summary.Sites, SiteSummary{Host: host, URL: site.URL, Account: site.Account})
		}
		result.Profiles = append(result.Profiles, summary)
	}

	entry := audit.NewEntry("list")
	entry.Profile = opts.Profile
	audit.Log(env.AuditPath, entry)

	return result, nil
}
