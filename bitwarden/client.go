package bitwarden

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/oranginaround/bw-tui/common"
	"github.com/oranginaround/bw-tui/settings"
)

var commonLocations = []string{
	"/usr/local/bin/bw",
	"/opt/homebrew/bin/bw",
	"/usr/bin/bw",
	"/snap/bin/bw",
}

// Client wraps the Bitwarden CLI. All operations block on a subprocess
// and surface non-zero exits or malformed output as errors, never as
// silently empty results.
type Client struct {
	runner Runner
}

func NewClient() *Client {
	return &Client{runner: cliRunner{path: resolveCliPath()}}
}

// NewClientWithRunner is used by tests to substitute a scripted runner.
func NewClientWithRunner(runner Runner) *Client {
	return &Client{runner: runner}
}

func resolveCliPath() string {
	if custom := settings.CliPath(); len(custom) > 0 {
		return custom
	}
	if found, err := exec.LookPath("bw"); err == nil {
		return found
	}
	for _, candidate := range commonLocations {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "bw"
}

// Available tells whether the CLI can be invoked at all. It runs
// "bw --version" rather than poking the filesystem, so a broken install
// also shows up here.
func (it *Client) Available() bool {
	stdout, _, code, err := it.runner.Run(nil, "--version")
	if err != nil || code != 0 {
		return false
	}
	common.Debug("Found Bitwarden CLI version %q.", string(bytes.TrimSpace(stdout)))
	return true
}

type wireStatus struct {
	Status string `json:"status"`
}

// Status reports whether the vault is unauthenticated, locked, or unlocked.
func (it *Client) Status() (Status, error) {
	stdout, stderr, code, err := it.run("status", nil, "status")
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", classify("status", stderr, nil)
	}
	var report wireStatus
	if err := json.Unmarshal(stdout, &report); err != nil {
		return "", failure("status", KindParse, stdout, err)
	}
	switch status := Status(report.Status); status {
	case StatusUnauthenticated, StatusLocked, StatusUnlocked:
		return status, nil
	default:
		return "", failure("status", KindParse, stdout, fmt.Errorf("unexpected vault status %q", report.Status))
	}
}

// Unlock decrypts the vault and returns the session token. The master
// password travels in the child environment (--passwordenv), so it never
// shows up in any process listing.
func (it *Client) Unlock(masterPassword string) (SessionToken, error) {
	env := []string{common.MasterPasswordEnvVariable + "=" + masterPassword}
	stdout, stderr, code, err := it.run("unlock", env, "unlock", "--raw", "--passwordenv", common.MasterPasswordEnvVariable)
	if err != nil {
		return "", err
	}
	if code != 0 {
		boundary := classify("unlock", stderr, nil)
		if boundary.Kind == KindUnknown {
			// Unlock is the authentication step, so an unclassified
			// non-zero exit still means the password was not accepted.
			boundary.Kind = KindAuth
		}
		return "", boundary
	}
	token := SessionToken(bytes.TrimSpace(stdout))
	if len(token) == 0 {
		return "", failure("unlock", KindParse, stderr, fmt.Errorf("empty session token"))
	}
	common.Debug("Unlock succeeded, session token length %d.", len(token))
	return token, nil
}

type wireLogin struct {
	Username string `json:"username"`
}

type wireItem struct {
	ID    string     `json:"id"`
	Type  ItemType   `json:"type"`
	Name  string     `json:"name"`
	Login *wireLogin `json:"login"`
}

// ListItems returns summaries of every vault item, in the order the CLI
// reports them. No secret material is retained from the listing.
func (it *Client) ListItems(token SessionToken) ([]ItemSummary, error) {
	stdout, stderr, code, err := it.run("list", token.env(), "list", "items")
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, classify("list", stderr, nil)
	}
	var entries []wireItem
	if err := json.Unmarshal(stdout, &entries); err != nil {
		return nil, failure("list", KindParse, stderr, err)
	}
	summaries := make([]ItemSummary, 0, len(entries))
	for _, entry := range entries {
		summary := ItemSummary{
			ID:   entry.ID,
			Name: entry.Name,
			Type: entry.Type,
		}
		if entry.Login != nil {
			summary.Username = entry.Login.Username
		}
		summaries = append(summaries, summary)
	}
	common.Debug("Listed %d vault items.", len(summaries))
	return summaries, nil
}

// FetchSecret retrieves one password. The caller owns the returned buffer
// and must Wipe it as soon as the value has been used, also on its own
// error paths.
func (it *Client) FetchSecret(token SessionToken, itemID string) ([]byte, error) {
	stdout, stderr, code, err := it.run("get", token.env(), "get", "password", itemID)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		Wipe(stdout)
		return nil, classify("get", stderr, nil)
	}
	secret := bytes.TrimSpace(stdout)
	if len(secret) == 0 {
		return nil, failure("get", KindParse, stderr, fmt.Errorf("item %s has no password", itemID))
	}
	common.Debug("Fetched secret for item %s (length %d).", itemID, len(secret))
	return secret, nil
}

// Sync pulls the latest vault contents from the server.
func (it *Client) Sync(token SessionToken) error {
	_, stderr, code, err := it.run("sync", token.env(), "sync")
	if err != nil {
		return err
	}
	if code != 0 {
		return classify("sync", stderr, nil)
	}
	common.Debug("Vault synced.")
	return nil
}

// Lock invalidates the session. Best-effort: callers log failures and
// move on.
func (it *Client) Lock(token SessionToken) error {
	_, stderr, code, err := it.run("lock", token.env(), "lock")
	if err != nil {
		return err
	}
	if code != 0 {
		return classify("lock", stderr, nil)
	}
	common.Debug("Vault locked.")
	return nil
}

// InheritedSession returns a session token inherited from the calling
// shell environment, if any. With one of those, and a vault that is
// already unlocked, the password prompt can be skipped.
func InheritedSession() SessionToken {
	return SessionToken(os.Getenv(common.SessionEnvVariable))
}

func (it SessionToken) env() []string {
	if len(it) == 0 {
		return nil
	}
	return []string{common.SessionEnvVariable + "=" + string(it)}
}

// run funnels every invocation through one place so that a missing or
// non-executable binary always maps to the unavailable kind.
func (it *Client) run(op string, env []string, args ...string) ([]byte, []byte, int, error) {
	stdout, stderr, code, err := it.runner.Run(env, args...)
	if err != nil {
		return nil, nil, code, failure(op, KindUnavailable, stderr, err)
	}
	return stdout, stderr, code, nil
}
