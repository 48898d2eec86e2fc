package workflows

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/audit"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/utils"
)

// MigrateOptions configures the migrate workflow.
type MigrateOptions struct {
	// From is a plaintext store file written by early releases.
	From string

	// Data is used instead of reading From, e.g. when piped on stdin.
	Data []byte

	// Force overwrites an existing encrypted store.
	Force bool

	// RemoveSource deletes From after the encrypted store is written.
	RemoveSource bool
}

// MigrateResult contains the outcome of a migrate operation.
type MigrateResult struct {
	Source   string
	Profiles int
	Sites    int

	// Problems lists convention violations found in the imported store.
	Problems error

	SourceRemoved bool
}

// IsLegacyStore reports whether path holds an unencrypted JSON store.
func IsLegacyStore(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return isPlaintextStore(data)
}

func isPlaintextStore(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	_, err := accounts.Parse(trimmed)
	return err == nil
}

// Migrate imports a plaintext store and writes it encrypted to the
// configured store path. Migrating the store path onto itself replaces the
// plaintext file in one rename.
//
// Returns ErrMalformedStore if the input is not a store.
// Returns ErrFileExists if an encrypted store exists and Force is not set.
func Migrate(ctx context.Context, env *Env, opts MigrateOptions) (*MigrateResult, error) {
	data := opts.Data
	source := opts.From
	if data == nil {
		if source == "" {
			return nil, fmt.Errorf("migrate: no source given")
		}
		var err error
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
	}
	if source == "" {
		source = "-"
	}

	store, err := accounts.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	inPlace := source != "-" && filepath.Clean(source) == filepath.Clean(env.StorePath)
	if !inPlace && utils.FileExists(env.StorePath) && !opts.Force {
		return nil, fmt.Errorf("%s: %w", env.StorePath, berrors.ErrFileExists)
	}

	result := &MigrateResult{
		Source:   source,
		Profiles: len(store.Profiles),
		Problems: store.Validate(),
	}
	for _, p := range store.Profiles {
		result.Sites += len(p.Sites)
	}
	if result.Problems != nil {
		env.Logger.Warnf("Imported store has problems: %v", result.Problems)
	}

	if store.Version == "" {
		store.Version = accounts.SchemaVersion
	}

	if err := env.save(ctx, store); err != nil {
		return nil, err
	}

	if opts.RemoveSource && !inPlace && source != "-" {
		if err := os.Remove(source); err != nil {
			env.Logger.WarnfAlways("Could not remove %s: %v", source, err)
		} else {
			result.SourceRemoved = true
		}
	}

	entry := audit.NewEntry("migrate")
	entry.Source = source
	entry.Count = result.Sites
	audit.Log(env.AuditPath, entry)

	return result, nil
}
