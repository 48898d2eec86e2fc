package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kuenishi/baccounts/cmd"
	"github.com/kuenishi/baccounts/internal/ui"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
		os.Exit(1)
	}
}
