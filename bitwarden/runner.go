package bitwarden

import (
	"bytes"
	"errors"
	"os"
	"os/exec"

	"github.com/oranginaround/bw-tui/common"
)

// Runner executes one CLI invocation and waits for it to finish. All
// calls are synchronous; there is no cancellation of an in-flight
// invocation.
type Runner interface {
	Run(extraEnv []string, args ...string) (stdout, stderr []byte, code int, err error)
}

type cliRunner struct {
	path string
}

func (it cliRunner) Run(extraEnv []string, args ...string) ([]byte, []byte, int, error) {
	common.Trace("Running: %s %v", it.path, args)
	command := exec.Command(it.path, args...)
	command.Env = append(os.Environ(), extraEnv...)
	command.Stdin = nil

	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	err := command.Run()
	code := 0
	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			code = exit.ExitCode()
			err = nil
		} else {
			code = -1
		}
	}
	common.Trace("Exit %d from: %s %s", code, it.path, args[0])
	return stdout.Bytes(), stderr.Bytes(), code, err
}
