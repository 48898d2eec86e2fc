package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kuenishi/baccounts/internal/audit"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/utils"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// Recipient receives the exported copy.
	Recipient string

	// Output is the file to write. It must differ from the store file.
	Output string

	// Force overwrites an existing output file.
	Force bool
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	Output    string
	Recipient string
	Profiles  int
}

// Export re-encrypts the whole store for another recipient, e.g. a key on a
// new machine.
//
// Returns ErrNoRecipient if Recipient is empty.
// Returns ErrFileExists if Output exists and Force is not set.
func Export(ctx context.Context, env *Env, opts ExportOptions) (*ExportResult, error) {
	if opts.Recipient == "" {
		return nil, fmt.Errorf("export: %w", berrors.ErrNoRecipient)
	}
	if opts.Output == "" {
		return nil, fmt.Errorf("export: no output file given")
	}
	if filepath.Clean(opts.Output) == filepath.Clean(env.StorePath) {
		return nil, fmt.Errorf("export: output %s is the store file itself", opts.Output)
	}
	if utils.FileExists(opts.Output) && !opts.Force {
		return nil, fmt.Errorf("%s: %w", opts.Output, berrors.ErrFileExists)
	}

	store, err := env.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(opts.Output), 0700); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", opts.Output, err)
	}
	if err := env.Gateway.Encrypt(ctx, store, opts.Recipient, opts.Output); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("export")
	entry.Recipient = opts.Recipient
	entry.OutputPath = opts.Output
	audit.Log(env.AuditPath, entry)

	return &ExportResult{
		Output:    opts.Output,
		Recipient: opts.Recipient,
		Profiles:  len(store.Profiles),
	}, nil
}
