// Package interactive is the terminal session controller: a Bubble Tea
// model that drives unlocking, browsing, searching, and copying vault
// credentials. Subprocess work runs inside commands that report back as
// typed messages, so all state has a single owner in the update loop.
package interactive
