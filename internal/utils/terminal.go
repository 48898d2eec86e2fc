package utils

import (
	"bytes"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// MinPasswordLength is the shortest password accepted for a site.
const MinPasswordLength = 8

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}

// ReadPassword prompts for a password on /dev/tty (or CON on Windows)
// without echoing input, so stdin stays free for piped data.
func ReadPassword(prompt string) ([]byte, error) {
	path := ttyPath()

	tty, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for password input: %w", path, err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", path)
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return password, nil
}

// ReadNewPassword asks for a password twice and checks both inputs match
// and are at least MinPasswordLength bytes.
func ReadNewPassword(read func(prompt string) ([]byte, error)) ([]byte, error) {
	first, err := read("New password: ")
	if err != nil {
		return nil, err
	}
	if err := CheckPassword(first); err != nil {
		return nil, err
	}

	second, err := read("Retype password: ")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(first, second) {
		return nil, berrors.ErrPasswordMismatch
	}

	return first, nil
}

// CheckPassword rejects passwords shorter than MinPasswordLength.
func CheckPassword(password []byte) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: need at least %d characters, got %d", berrors.ErrPasswordTooShort, MinPasswordLength, len(password))
	}
	return nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsTTYAvailable returns true if /dev/tty (or CON on Windows) is available for reading.
func IsTTYAvailable() bool {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return false
	}
	defer tty.Close()

	return term.IsTerminal(int(tty.Fd()))
}

// WriteToTTY writes content directly to the terminal (bypassing stdout/stderr).
func WriteToTTY(content string) error {
	path := ttyPath()

	tty, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("cannot open %s for writing: %w", path, err)
	}
	defer tty.Close()

	if _, err := tty.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to TTY: %w", err)
	}

	return nil
}

// ClearScreen clears the terminal screen using ANSI escape sequences.
// Writes directly to TTY so a revealed password leaves no trace in scrollback.
func ClearScreen() error {
	// Clear screen, clear scrollback, move cursor to top-left.
	return WriteToTTY("\033[2J\033[3J\033[H")
}

// WaitForEnterFromTTY waits for the user to press Enter on the TTY.
func WaitForEnterFromTTY() error {
	path := ttyPath()

	tty, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s for reading: %w", path, err)
	}
	defer tty.Close()

	buf := make([]byte, 1)
	for {
		if _, err := tty.Read(buf); err != nil {
			return fmt.Errorf("failed to read from TTY: %w", err)
		}
		if buf[0] == '\n' || buf[0] == '\r' {
			return nil
		}
	}
}
