package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hengadev/errsx"

	"github.com/kuenishi/baccounts/internal/accounts"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/gateway"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Doctor runs health checks on the store.
//
// The doctor workflow checks:
//   - A recipient is configured
//   - The store file exists and is private to the user
//   - No temporary files were left by a failed write
//   - The store decrypts and parses
//   - The store follows its conventions (unique names, one default
//     profile, sites keyed by host)
func Doctor(ctx context.Context, env *Env) (*DoctorResult, error) {
	results := []CheckResult{
		checkRecipient(env),
		checkStoreFile(env),
		checkLeftoverTempFiles(env),
	}

	store, decrypted := checkDecrypt(ctx, env)
	results = append(results, decrypted)
	if store != nil {
		results = append(results, checkConventions(store)...)
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

func checkRecipient(env *Env) CheckResult {
	if env.Recipient == "" {
		return CheckResult{
			Name:       "Recipient",
			Status:     CheckError,
			Message:    "No recipient configured; the store cannot be written",
			Suggestion: "Run 'baccounts config set-recipient <key id>'",
		}
	}
	return CheckResult{
		Name:    "Recipient",
		Status:  CheckPass,
		Message: fmt.Sprintf("Encrypting for %s", env.Recipient),
	}
}

func checkStoreFile(env *Env) CheckResult {
	info, err := os.Stat(env.StorePath)
	if errors.Is(err, os.ErrNotExist) {
		return CheckResult{
			Name:       "Store file",
			Status:     CheckError,
			Message:    fmt.Sprintf("%s does not exist", env.StorePath),
			Suggestion: "Run 'baccounts init' to create a store",
		}
	}
	if err != nil {
		return CheckResult{
			Name:    "Store file",
			Status:  CheckError,
			Message: fmt.Sprintf("Cannot stat %s: %v", env.StorePath, err),
		}
	}

	if perm := info.Mode().Perm(); perm&^gateway.StoreFileMode != 0 {
		return CheckResult{
			Name:       "Store file",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s has permissions %04o", env.StorePath, perm),
			Suggestion: fmt.Sprintf("Run 'chmod 600 %s'", env.StorePath),
		}
	}

	return CheckResult{
		Name:    "Store file",
		Status:  CheckPass,
		Message: fmt.Sprintf("%s exists with permissions %04o", env.StorePath, info.Mode().Perm()),
	}
}

func checkLeftoverTempFiles(env *Env) CheckResult {
	matches, err := gateway.LeftoverTempFiles(env.StorePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return CheckResult{
			Name:    "Temporary files",
			Status:  CheckWarning,
			Message: fmt.Sprintf("Cannot look for temporary files: %v", err),
		}
	}
	if len(matches) > 0 {
		return CheckResult{
			Name:       "Temporary files",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%d temporary files left by failed writes", len(matches)),
			Suggestion: fmt.Sprintf("Inspect and remove %s", gateway.TempName(env.StorePath, "*")),
		}
	}
	return CheckResult{
		Name:    "Temporary files",
		Status:  CheckPass,
		Message: "No temporary files left behind",
	}
}

func checkDecrypt(ctx context.Context, env *Env) (*accounts.Store, CheckResult) {
	store, err := env.load(ctx)
	switch {
	case err == nil:
		return store, CheckResult{
			Name:    "Decryption",
			Status:  CheckPass,
			Message: fmt.Sprintf("Store decrypts with %d profiles", len(store.Profiles)),
		}
	case errors.Is(err, berrors.ErrNotFound):
		return nil, CheckResult{
			Name:    "Decryption",
			Status:  CheckWarning,
			Message: "Skipped, no store file",
		}
	case errors.Is(err, berrors.ErrMalformedStore):
		return nil, CheckResult{
			Name:       "Decryption",
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Restore the store from a backup",
		}
	case IsLegacyStore(env.StorePath):
		return nil, CheckResult{
			Name:       "Decryption",
			Status:     CheckError,
			Message:    fmt.Sprintf("%s is an unencrypted store", env.StorePath),
			Suggestion: fmt.Sprintf("Run 'baccounts migrate --from %s'", env.StorePath),
		}
	default:
		return nil, CheckResult{
			Name:       "Decryption",
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Run 'baccounts test' to check your key",
		}
	}
}

func checkConventions(store *accounts.Store) []CheckResult {
	err := store.Validate()
	if err == nil {
		return []CheckResult{{
			Name:    "Store conventions",
			Status:  CheckPass,
			Message: "Profile names are unique, one default, sites keyed by host",
		}}
	}

	errs, ok := err.(errsx.Map)
	if !ok {
		return []CheckResult{{Name: "Store conventions", Status: CheckError, Message: err.Error()}}
	}

	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	results := make([]CheckResult, 0, len(keys))
	for _, key := range keys {
		results = append(results, CheckResult{
			Name:       "Store conventions",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s: %v", key, errs[key]),
			Suggestion: "Use 'baccounts set-default' and 'baccounts remove' to resolve duplicates",
		})
	}
	return results
}

// calculateDoctorSummary counts checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
