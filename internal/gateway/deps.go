package gateway

import (
	"context"
	"os/exec"
)

// Package-level function variables for dependency injection in tests.
var (
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, name, args...)
	}
)
