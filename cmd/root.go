package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oranginaround/bw-tui/bitwarden"
	"github.com/oranginaround/bw-tui/clipboard"
	"github.com/oranginaround/bw-tui/common"
	"github.com/oranginaround/bw-tui/interactive"
	"github.com/oranginaround/bw-tui/pretty"
	"github.com/oranginaround/bw-tui/settings"
)

var (
	configFile  string
	debugFlag   bool
	traceFlag   bool
	versionFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "bw-tui",
	Short: "Terminal interface for the Bitwarden CLI.",
	Long: `bw-tui is a terminal interface for browsing your Bitwarden vault,
searching items, and copying credentials without leaving the console.

It shells out to the official Bitwarden CLI (bw), which must be
installed and logged in ("bw login") before starting.

Keys:
  j/k or arrows  move selection
  / or s         search by name or username
  c or Enter     copy password
  u              copy username
  S              sync vault
  Esc            clear search / cancel
  q              quit

BW_DEBUG=1 in the environment writes verbose diagnostics to bw-tui.log.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.DefineVerbosity(false, debugFlag, traceFlag)
		if common.DebugEnv() {
			common.Uncritical("debug log", common.StartDebugFile("bw-tui.log"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			common.Stdout("%s\n", common.Version)
			return
		}
		launch()
	},
}

// Execute runs the one and only command. Startup failures before the UI
// is up exit with a plain message and a non-zero code.
func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	err := rootCmd.Execute()
	pretty.Guard(err == nil, 1, "Error: %v", err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file to use.")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Turn on debugging output.")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "Turn on tracing output.")
	rootCmd.Flags().BoolVar(&versionFlag, "version", false, "Just show bw-tui version and exit.")
}

func launch() {
	pretty.Guard(pretty.Interactive, 1, "bw-tui requires an interactive terminal (TTY).")

	err := settings.Initialize(configFile)
	pretty.Guard(err == nil, 1, "Configuration problem: %v", err)

	client := bitwarden.NewClient()
	pretty.Guard(client.Available(), 2, "Bitwarden CLI (bw) is not available.\nInstall it first: npm install -g @bitwarden/cli")

	status, err := client.Status()
	pretty.Guard(err == nil, 2, "Cannot query vault status: %v", err)
	pretty.Guard(status != bitwarden.StatusUnauthenticated, 3, "You are not logged in to Bitwarden.\nLog in first: bw login")

	// With an inherited session and an already unlocked vault, the
	// password prompt can be skipped.
	inherited := bitwarden.SessionToken("")
	if status == bitwarden.StatusUnlocked {
		inherited = bitwarden.InheritedSession()
		if len(inherited) > 0 {
			pretty.Note("Reusing unlocked session from %s.", common.SessionEnvVariable)
		}
	}

	sink := clipboard.NewSink()

	// Stderr logging would corrupt the full-screen UI from here on.
	common.QuietScreen()

	options := interactive.Options{
		ClearAfter:    settings.ClipboardClearAfter(),
		RevealTimeout: settings.RevealTimeout(),
		Icons:         settings.IconsEnabled() && pretty.Iconic,
	}
	err = interactive.Run(client, sink, inherited, options)
	pretty.Guard(err == nil, 1, "UI error: %v", err)
}
