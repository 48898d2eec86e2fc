package workflows

import (
	"context"
	"fmt"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/audit"
	"github.com/kuenishi/baccounts/internal/configs"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/utils"
)

// GenerateOptions configures the generate workflow.
type GenerateOptions struct {
	Profile string
	URL     string

	// Account defaults to the store's default account.
	Account string

	// Length and Charset default to configs.DefaultPasswordLength and alnum.
	Length  int
	Charset string

	// Force replaces an existing site for the same host.
	Force bool

	// Print returns the password instead of copying it to the clipboard.
	Print bool
}

// GenerateResult contains the outcome of a generate operation.
type GenerateResult struct {
	Profile  string
	Host     string
	Account  string
	Replaced bool
	Copied   bool

	// Password is only set when Print was requested.
	Password []byte
}

// Generate creates a random password for a site and saves it in the store.
//
// Returns ErrInvalidURL if the URL has no host.
// Returns ErrSiteExists if the host is already stored and Force is not set.
// Returns ErrEncryptFailed if the store could not be written; the previous
// file is then unchanged.
func Generate(ctx context.Context, env *Env, opts GenerateOptions) (*GenerateResult, error) {
	host, err := accounts.HostOf(opts.URL)
	if err != nil {
		return nil, err
	}

	length := opts.Length
	if length == 0 {
		length = configs.DefaultPasswordLength
	}
	password, err := utils.GeneratePassword(length, opts.Charset)
	if err != nil {
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

	_, exists := p.Sites[host]
	if exists && !opts.Force {
		return nil, fmt.Errorf("%s in profile %q: %w", host, p.Name, berrors.ErrSiteExists)
	}

	account := opts.Account
	if account == "" {
		account = store.DefaultAccount
	}
	if !utils.IsValidEmail(account) {
		env.Logger.Warnf("Account %q does not look like an email address", account)
	}

	site, err := accounts.NewSite(opts.URL, accounts.EncodeSecret(password), account)
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

	entry := audit.NewEntry("generate")
	entry.Profile = p.Name
	entry.Host = host
	audit.Log(env.AuditPath, entry)

	result := &GenerateResult{
		Profile:  p.Name,
		Host:     host,
		Account:  account,
		Replaced: exists,
	}

	// The store is already saved, so a clipboard failure falls back to printing.
	copied, err := deliver(password, opts.Print)
	if err != nil {
		env.Logger.WarnfAlways("Could not copy to clipboard: %v", err)
	}
	result.Copied = copied
	if !copied {
		result.Password = password
	}

	return result, nil
}
