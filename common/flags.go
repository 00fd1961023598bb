package common

import "os"

const (
	// DebugEnvVariable enables verbose diagnostic logging to a local file.
	DebugEnvVariable = `BW_DEBUG`
	// SessionEnvVariable is where the Bitwarden CLI expects its session token.
	SessionEnvVariable = `BW_SESSION`
	// MasterPasswordEnvVariable carries the master password to "bw unlock"
	// so that it never appears on a command line.
	MasterPasswordEnvVariable = `BWTUI_MASTER`
)

var (
	LogLinenumbers bool
	LogHides       = []string{}

	silentFlag bool
	debugFlag  bool
	traceFlag  bool
)

// DefineVerbosity sets logging verbosity for the full process lifetime.
// Trace implies debug. BW_DEBUG=1 in the environment also turns debugging
// on, and routes diagnostics into a local log file (see StartDebugFile).
func DefineVerbosity(silent, debug, trace bool) {
	silentFlag = silent
	debugFlag = debug || trace
	traceFlag = trace
	if DebugEnv() {
		debugFlag = true
	}
	Debug("Verbosity: silent=%v, debug=%v, trace=%v", silentFlag, debugFlag, traceFlag)
}

func DebugEnv() bool {
	return os.Getenv(DebugEnvVariable) == "1"
}

func Silent() bool {
	return silentFlag
}

func DebugFlag() bool {
	return debugFlag
}

func TraceFlag() bool {
	return traceFlag
}
