package workflows

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/audit"
	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// DiffOptions configures the diff workflow.
type DiffOptions struct {
	// Left and Right are encrypted store files. An empty Left is the
	// configured store; an empty Right compares Left against it.
	Left  string
	Right string

	// Against compares the configured store with every file matching this
	// glob (** supported). It takes precedence over Left and Right.
	Against string
}

// Comparison is the outcome of comparing two store files.
type Comparison struct {
	Left       string
	Right      string
	Mismatches int
}

// DiffResult contains the outcome of a diff operation.
type DiffResult struct {
	Comparisons []Comparison

	// Total is the sum of mismatches over all comparisons.
	Total int
}

// Diff decrypts pairs of stores and writes a report of every difference to
// w, preceded by a header line per pair.
//
// Returns ErrNotFound if a file is missing or the glob matches nothing.
func Diff(ctx context.Context, env *Env, opts DiffOptions, w io.Writer) (*DiffResult, error) {
	pairs, err := diffPairs(env, opts)
	if err != nil {
		return nil, err
	}

	result := &DiffResult{}
	for _, pair := range pairs {
		lhs, err := env.Gateway.Decrypt(ctx, pair[0])
		if err != nil {
			return nil, err
		}
		rhs, err := env.Gateway.Decrypt(ctx, pair[1])
		if err != nil {
			return nil, err
		}

		fmt.Fprintf(w, "--- %s\n+++ %s\n", pair[0], pair[1])
		n := accounts.Diff(lhs, rhs, w)
		env.Logger.Infof("%d mismatches between %s and %s", n, pair[0], pair[1])

		result.Comparisons = append(result.Comparisons, Comparison{Left: pair[0], Right: pair[1], Mismatches: n})
		result.Total += n
	}

	entry := audit.NewEntry("diff")
	entry.Count = result.Total
	audit.Log(env.AuditPath, entry)

	return result, nil
}

func diffPairs(env *Env, opts DiffOptions) ([][2]string, error) {
	if opts.Against != "" {
		matches, err := doublestar.FilepathGlob(opts.Against, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", opts.Against, err)
		}
		sort.Strings(matches)

		var pairs [][2]string
		for _, m := range matches {
			if m == env.StorePath {
				continue
			}
			pairs = append(pairs, [2]string{env.StorePath, m})
		}
		if len(pairs) == 0 {
			return nil, fmt.Errorf("no store files match %q: %w", opts.Against, berrors.ErrNotFound)
		}
		return pairs, nil
	}

	left, right := opts.Left, opts.Right
	if left == "" {
		left = env.StorePath
	}
	if right == "" {
		left, right = env.StorePath, left
	}
	return [][2]string{{left, right}}, nil
}
