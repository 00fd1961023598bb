// Package clipboard is the write-only sink that copied credentials go to.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	atotto "github.com/atotto/clipboard"
	"github.com/google/shlex"

	"github.com/oranginaround/bw-tui/common"
	"github.com/oranginaround/bw-tui/pretty"
	"github.com/oranginaround/bw-tui/settings"
)

// ErrUnavailable means no clipboard mechanism is present. The UI then
// falls back to a bounded on-screen reveal instead of failing silently.
var ErrUnavailable = errors.New("no clipboard available")

// Sink is the single capability the session controller needs.
type Sink interface {
	Copy(text string) error
}

// NewSink prefers a user-configured external command and otherwise uses
// the native clipboard.
func NewSink() Sink {
	if line := settings.ClipboardCommand(); len(line) > 0 {
		argv, err := ParseCommand(line)
		if err != nil {
			pretty.Warning("Ignoring clipboard command: %v", err)
		} else {
			common.Debug("Using external clipboard command %q.", argv[0])
			return commandSink{argv: argv}
		}
	}
	return nativeSink{}
}

// ParseCommand tokenizes a configured clipboard command line, for
// example "xclip -selection clipboard".
func ParseCommand(line string) ([]string, error) {
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("cannot parse clipboard command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty clipboard command")
	}
	return argv, nil
}

type nativeSink struct{}

func (nativeSink) Copy(text string) error {
	if atotto.Unsupported {
		return ErrUnavailable
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// commandSink pipes the text through stdin of the configured command,
// never through its arguments.
type commandSink struct {
	argv []string
}

func (it commandSink) Copy(text string) error {
	command := exec.Command(it.argv[0], it.argv[1:]...)
	command.Stdin = strings.NewReader(text)
	if err := command.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, it.argv[0], err)
	}
	return nil
}
