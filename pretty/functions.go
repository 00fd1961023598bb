package pretty

import (
	"fmt"

	"github.com/oranginaround/bw-tui/common"
)

// Exit never returns; it panics with ExitCode which main recovers, so that
// deferred cleanups still run before the process terminates.
func Exit(code int, format string, rest ...interface{}) error {
	exit := common.ExitCode{
		Code:    code,
		Message: fmt.Sprintf(format, rest...),
	}
	panic(exit)
}

// Guard watches that condition holds, and if it does not, exits the
// process with the given exit code and message.
func Guard(condition bool, code int, format string, rest ...interface{}) {
	if !condition {
		Exit(code, format, rest...)
	}
}

func Note(format string, rest ...interface{}) {
	message := fmt.Sprintf(format, rest...)
	common.Log("%sNote: %s%s", Cyan, message, Reset)
}

func Warning(format string, rest ...interface{}) {
	message := fmt.Sprintf(format, rest...)
	common.Log("%sWarning: %s%s", Yellow, message, Reset)
}
