package interactive

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oranginaround/bw-tui/bitwarden"
	"github.com/oranginaround/bw-tui/clipboard"
)

// Vault is the slice of the CLI adapter the controller needs; tests
// substitute a scripted fake.
type Vault interface {
	Unlock(masterPassword string) (bitwarden.SessionToken, error)
	ListItems(token bitwarden.SessionToken) ([]bitwarden.ItemSummary, error)
	FetchSecret(token bitwarden.SessionToken, itemID string) ([]byte, error)
	Sync(token bitwarden.SessionToken) error
	Lock(token bitwarden.SessionToken) error
}

type unlockDoneMsg struct {
	token bitwarden.SessionToken
	err   error
}

type itemsLoadedMsg struct {
	items []bitwarden.ItemSummary
	err   error
}

type copyDoneMsg struct {
	name string
	// revealed carries the secret only when the clipboard was
	// unavailable; it is shown on screen for a bounded time.
	revealed string
	err      error
}

type syncDoneMsg struct {
	err error
}

type clipboardClearMsg struct {
	seq int64
}

type revealExpiredMsg struct {
	seq int64
}

func (m *model) unlockCmd(masterPassword string) tea.Cmd {
	vault := m.vault
	return func() tea.Msg {
		token, err := vault.Unlock(masterPassword)
		return unlockDoneMsg{token: token, err: err}
	}
}

func (m *model) loadItemsCmd() tea.Cmd {
	vault, token := m.vault, m.token
	return func() tea.Msg {
		items, err := vault.ListItems(token)
		return itemsLoadedMsg{items: items, err: err}
	}
}

// copyCmd fetches the secret, pushes it to the clipboard sink, and wipes
// the fetched buffer before the result message is emitted, on every path.
func (m *model) copyCmd(item bitwarden.ItemSummary) tea.Cmd {
	vault, sink, token := m.vault, m.sink, m.token
	return func() tea.Msg {
		secret, err := vault.FetchSecret(token, item.ID)
		if err != nil {
			bitwarden.Wipe(secret)
			return copyDoneMsg{name: item.Name, err: err}
		}
		text := string(secret)
		bitwarden.Wipe(secret)
		err = sink.Copy(text)
		if errors.Is(err, clipboard.ErrUnavailable) {
			return copyDoneMsg{name: item.Name, revealed: text, err: err}
		}
		if err != nil {
			return copyDoneMsg{name: item.Name, err: err}
		}
		return copyDoneMsg{name: item.Name}
	}
}

func (m *model) syncCmd() tea.Cmd {
	vault, token := m.vault, m.token
	return func() tea.Msg {
		return syncDoneMsg{err: vault.Sync(token)}
	}
}
