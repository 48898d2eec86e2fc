package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// DefaultGPGBinary is used when GPG.Binary is empty.
const DefaultGPGBinary = "gpg"

// GPG runs an OpenPGP command line tool.
type GPG struct {
	// Binary is the tool to run, looked up in PATH.
	Binary string

	// ExtraArgs are inserted before the operation flags, e.g. --homedir.
	ExtraArgs []string
}

// NewGPG returns a GPG cipher for binary.
func NewGPG(binary string, extraArgs ...string) *GPG {
	return &GPG{Binary: binary, ExtraArgs: extraArgs}
}

func (g *GPG) binary() string {
	if g.Binary == "" {
		return DefaultGPGBinary
	}
	return g.Binary
}

func (g *GPG) args(op ...string) []string {
	args := make([]string, 0, len(g.ExtraArgs)+len(op))
	args = append(args, g.ExtraArgs...)
	return append(args, op...)
}

// DecryptFile runs `<tool> --decrypt <path>` and returns its stdout.
func (g *GPG) DecryptFile(ctx context.Context, path string) ([]byte, error) {
	return g.run(ctx, berrors.ErrDecryptFailed, nil, g.args("--decrypt", path)...)
}

// Decrypt pipes ciphertext through `<tool> --decrypt`.
func (g *GPG) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	return g.run(ctx, berrors.ErrDecryptFailed, ciphertext, g.args("--decrypt")...)
}

// Encrypt pipes plaintext through `<tool> --encrypt --armor -r <recipient>`.
func (g *GPG) Encrypt(ctx context.Context, plaintext []byte, recipient string) ([]byte, error) {
	if recipient == "" {
		return nil, fmt.Errorf("%w: %w", berrors.ErrEncryptFailed, berrors.ErrNoRecipient)
	}
	return g.run(ctx, berrors.ErrEncryptFailed, plaintext, g.args("--encrypt", "--armor", "-r", recipient)...)
}

// run starts the tool, writes input to its stdin (closing it before waiting
// so the child sees EOF) and returns everything it wrote to stdout.
func (g *GPG) run(ctx context.Context, sentinel error, input []byte, args ...string) ([]byte, error) {
	bin := g.binary()
	cmd := execCommand(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var stdin io.WriteCloser
	if input != nil {
		pipe, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("%w: opening stdin of %s: %v", sentinel, bin, err)
		}
		stdin = pipe
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting %s: %v", sentinel, bin, err)
	}

	if stdin != nil {
		_, writeErr := stdin.Write(input)
		closeErr := stdin.Close()
		if err := errors.Join(writeErr, closeErr); err != nil {
			_ = cmd.Wait()
			return nil, fmt.Errorf("%w: writing to %s: %v%s", sentinel, bin, err, detail(&stderr))
		}
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v%s", sentinel, bin, strings.Join(args, " "), err, detail(&stderr))
	}
	return stdout.Bytes(), nil
}

func detail(stderr *bytes.Buffer) string {
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return ""
	}
	return ": " + msg
}
