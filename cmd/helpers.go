package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/ui"
	"github.com/kuenishi/baccounts/internal/utils"
)

// ExitError carries a process exit code out of a command. The message for
// the user has already been printed when it is returned.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; cleanup adds one
// before printing.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print to stdout so tests can capture it.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// fail reports err through the spinner and returns it as exit status 1.
func fail(s *spinner.Spinner, action string, err error) error {
	return failWithCode(s, action, err, 1)
}

func failWithCode(s *spinner.Spinner, action string, err error, code int) error {
	Logger.Errorf("%s: %v", action, err)
	s.FinalMSG = ui.Error.Sprint("✗") + " " + action + ": " + formatError(err)
	return &ExitError{Code: code, Err: err}
}

// formatError renders err for the terminal, adding a hint for the errors
// users can act on.
func formatError(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, berrors.ErrAmbiguousOrMissingSite):
		return msg + "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("baccounts list") + " and use a longer fragment of the URL"
	case errors.Is(err, berrors.ErrNoRecipient):
		return msg + "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("baccounts config set-recipient <key id>")
	case errors.Is(err, berrors.ErrSiteExists):
		return msg + "\n" + ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to replace it or " + ui.Code.Sprint("baccounts update") + " to change its password"
	case errors.Is(err, berrors.ErrFileExists):
		return msg + "\n" + ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it"
	case errors.Is(err, berrors.ErrDecryptFailed):
		return msg + "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("baccounts doctor") + " to check the store and your key"
	default:
		return msg
	}
}

// revealPassword shows password on the terminal until Enter is pressed and
// then clears the screen. Without a terminal it prints to stdout.
func revealPassword(password []byte) error {
	if !utils.IsTTYAvailable() {
		fmt.Println(string(password))
		return nil
	}

	if err := utils.WriteToTTY(string(password) + "\n\n" + ui.Muted.Sprint("Press Enter to clear the screen") + "\n"); err != nil {
		return err
	}
	if err := utils.WaitForEnterFromTTY(); err != nil {
		return err
	}
	return utils.ClearScreen()
}
