package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/artpar/blockade/internal/core/config"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess       = 0
	ExitConfigError   = 1
	ExitBlockadeError = 2
	ExitUsageError    = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	var settingsErr *settingsError
	switch {
	case errors.As(err, &settingsErr):
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return ExitConfigError
	case config.KindOf(err) != "", errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(stderr, "blockade error: %v\n", err)
		return ExitBlockadeError
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsageError
	}
}

// settingsError marks failures to load the CLI's own settings, as opposed to
// problems with the blockade file.
type settingsError struct {
	Err error
}

func (e *settingsError) Error() string { return e.Err.Error() }

func (e *settingsError) Unwrap() error { return e.Err }
