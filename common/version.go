package common

const (
	DefaultApplicationName = `bw-tui`

	Version = `v0.2.0`
)
