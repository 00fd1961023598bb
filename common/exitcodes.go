package common

import "os"

// ExitCode is panicked by pretty.Exit and recovered in main, so that
// deferred cleanups still run before the process terminates.
type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) ShowMessage() {
	if len(it.Message) > 0 {
		printout(os.Stderr, it.Message)
	}
}
