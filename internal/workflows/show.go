package workflows

import (
	"context"
	"fmt"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/audit"
)

// ShowOptions configures the show workflow.
type ShowOptions struct {
	// Profile names the profile; empty selects the default profile.
	Profile string

	// Query is matched as a substring against site URLs.
	Query string

	// Print returns the password instead of copying it to the clipboard.
	Print bool
}

// ShowResult contains the outcome of a show operation.
type ShowResult struct {
	Profile string
	Site    accounts.Site

	// Copied is set when the password went to the clipboard.
	Copied bool

	// Password is only set when Print was requested.
	Password []byte
}

// Show finds the one site matching the query and reveals its password.
//
// Returns ErrNotFound if the profile doesn't exist.
// Returns ErrAmbiguousOrMissingSite unless exactly one site matches.
func Show(ctx context.Context, env *Env, opts ShowOptions) (*ShowResult, error) {
	store, err := env.load(ctx)
	if err != nil {
		return nil, err
	}

	p, err := profile(store, opts.Profile)
	if err != nil {
		return nil, err
	}

	site, err := p.FindSite(opts.Query)
	if err != nil {
		return nil, err
	}

	password, err := site.DecodeSecret()
	if err != nil {
		return nil, err
	}

	copied, err := deliver(password, opts.Print)
	if err != nil {
		return nil, fmt.Errorf("copying password to clipboard: %w", err)
	}

	result := &ShowResult{
		Profile: p.Name,
		Site:    *site,
		Copied:  copied,
	}
	result.Site.Secret = ""
	if !copied {
		result.Password = password
	}

	entry := audit.NewEntry("show")
	entry.Profile = p.Name
	entry.Host = site.Name
	audit.Log(env.AuditPath, entry)

	return result, nil
}
