package pretty

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/oranginaround/bw-tui/common"
)

var (
	Colorless   bool
	Iconic      bool
	Interactive bool
	Yellow      string
	Cyan        string
	Reset       string
)

func Setup() {
	stdin := isatty.IsTerminal(os.Stdin.Fd())
	stdout := isatty.IsTerminal(os.Stdout.Fd())
	stderr := isatty.IsTerminal(os.Stderr.Fd())

	if os.Getenv("NO_COLOR") != "" {
		Colorless = true
	}
	if os.Getenv("TERM") == "" {
		Colorless = true
	}

	// Prompting and full-screen UI need all three to be a TTY.
	Interactive = stdin && stdout && stderr

	visualOutput := stdout && !Colorless

	common.Trace("Interactive mode enabled: %v; colors enabled: %v", Interactive, visualOutput)
	if visualOutput {
		Yellow = csi("93m")
		Cyan = csi("96m")
		Reset = csi("0m")
		Iconic = true
	}
}

func csi(code string) string {
	return "\033[" + code
}
