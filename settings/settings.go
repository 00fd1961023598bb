package settings

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/oranginaround/bw-tui/common"
)

const (
	cliPathKey             = `cli.path`
	clipboardCommandKey    = `clipboard.command`
	clipboardClearAfterKey = `clipboard.clear_after`
	revealTimeoutKey       = `reveal.timeout`
	iconsKey               = `ui.icons`
)

// HomeVariable overrides where the configuration file is looked up.
const HomeVariable = `BWTUI_HOME`

var loaded bool

// Home returns the directory holding bw-tui.yaml.
func Home() string {
	if custom := os.Getenv(HomeVariable); len(custom) > 0 {
		return custom
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, common.DefaultApplicationName)
}

// Initialize loads configuration once. A missing config file is fine;
// defaults and BWTUI_* environment overrides still apply. An explicit
// configFile that cannot be read is an error.
func Initialize(configFile string) error {
	if loaded {
		return nil
	}
	viper.SetDefault(cliPathKey, "")
	viper.SetDefault(clipboardCommandKey, "")
	viper.SetDefault(clipboardClearAfterKey, 30)
	viper.SetDefault(revealTimeoutKey, 10)
	viper.SetDefault(iconsKey, true)

	viper.SetEnvPrefix("bwtui")
	viper.AutomaticEnv()

	if len(configFile) > 0 {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	} else {
		viper.SetConfigName(common.DefaultApplicationName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(Home())
		if err := viper.ReadInConfig(); err != nil {
			common.Trace("No configuration file in use: %v", err)
		}
	}
	loaded = true
	common.Debug("Settings loaded from %q.", viper.ConfigFileUsed())
	return nil
}

// CliPath is an explicit path to the Bitwarden CLI binary; empty means
// resolve "bw" from PATH and common install locations.
func CliPath() string {
	return viper.GetString(cliPathKey)
}

// ClipboardCommand is an optional external command line used instead of
// the native clipboard; the secret is piped through stdin.
func ClipboardCommand() string {
	return viper.GetString(clipboardCommandKey)
}

// ClipboardClearAfter tells how long a copied secret stays on the
// clipboard before it is overwritten. Zero disables clearing.
func ClipboardClearAfter() time.Duration {
	return time.Duration(viper.GetInt(clipboardClearAfterKey)) * time.Second
}

// RevealTimeout bounds the on-screen reveal fallback used when no
// clipboard is available.
func RevealTimeout() time.Duration {
	seconds := viper.GetInt(revealTimeoutKey)
	if seconds < 1 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}

func IconsEnabled() bool {
	return viper.GetBool(iconsKey)
}
