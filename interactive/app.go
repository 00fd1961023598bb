package interactive

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oranginaround/bw-tui/bitwarden"
	"github.com/oranginaround/bw-tui/clipboard"
	"github.com/oranginaround/bw-tui/common"
	"github.com/oranginaround/bw-tui/store"
)

type mode int

const (
	modeLocked mode = iota
	modeBrowse
	modeSearch
)

// Options carries the tunable timeouts from settings, so the model does
// not read configuration on its own.
type Options struct {
	// ClearAfter is how long a copied password stays on the clipboard.
	// Zero disables clearing.
	ClearAfter time.Duration
	// RevealTimeout bounds the on-screen fallback when no clipboard is
	// available.
	RevealTimeout time.Duration
	// Icons toggles item type icons in the vault list.
	Icons bool
}

type model struct {
	vault Vault
	sink  clipboard.Sink
	items *store.Store
	opts  Options

	mode   mode
	token  bitwarden.SessionToken
	cursor int

	password textinput.Model
	search   textinput.Model
	spin     spinner.Model
	styles   *Styles

	width  int
	height int

	busy     bool
	busyText string

	toast    *Toast
	toastSeq int64

	// reveal holds a secret only during the bounded clipboard fallback;
	// it is dropped when the timer fires or on the next keystroke.
	reveal     string
	revealName string
	revealSeq  int64

	clipSeq  int64
	showHelp bool
	quitting bool
}

func newModel(vault Vault, sink clipboard.Sink, inherited bitwarden.SessionToken, opts Options) *model {
	styles := NewStyles()

	password := textinput.New()
	password.Placeholder = "master password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.Width = 40
	password.Focus()

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "name or username"
	search.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = styles.Spinner

	if opts.RevealTimeout <= 0 {
		opts.RevealTimeout = 10 * time.Second
	}

	m := &model{
		vault:    vault,
		sink:     sink,
		items:    store.New(),
		opts:     opts,
		mode:     modeLocked,
		password: password,
		search:   search,
		spin:     s,
		styles:   styles,
		width:    100,
		height:   30,
	}
	if len(inherited) > 0 {
		m.token = inherited
		m.mode = modeBrowse
		m.busy = true
		m.busyText = "Loading vault items..."
	}
	return m
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, textinput.Blink}
	if m.mode == modeBrowse {
		cmds = append(cmds, m.loadItemsCmd())
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.busy {
			return m, cmd
		}

	case toastExpiredMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}

	case unlockDoneMsg:
		return m.afterUnlock(msg)

	case itemsLoadedMsg:
		return m.afterLoad(msg)

	case copyDoneMsg:
		return m.afterCopy(msg)

	case syncDoneMsg:
		return m.afterSync(msg)

	case clipboardClearMsg:
		// Only the most recent copy owns the clipboard; stale timers
		// must not wipe somebody else's content.
		if msg.seq == m.clipSeq {
			if err := m.sink.Copy(""); err != nil {
				common.Uncritical("clipboard clear", err)
			}
		}

	case revealExpiredMsg:
		if msg.seq == m.revealSeq {
			m.dropReveal()
		}
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.busy {
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Any keystroke ends an active reveal early.
	if len(m.reveal) > 0 {
		m.dropReveal()
		return m, nil
	}

	switch m.mode {
	case modeLocked:
		return m.handleLockedKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *model) handleLockedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Confirm):
		masterPassword := m.password.Value()
		if len(masterPassword) == 0 {
			return m, nil
		}
		m.password.Reset()
		m.busy = true
		m.busyText = "Unlocking vault..."
		return m, tea.Batch(m.unlockCmd(masterPassword), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

func (m *model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.search.Reset()
		m.items.SetFilter("")
		m.cursor = 0
		m.mode = modeBrowse
		return m, nil

	// Copy works against the filtered view, like in browse mode. This
	// means 'c' cannot be typed into a query, matching the original
	// key layout.
	case key.Matches(msg, keys.Copy):
		return m.startCopy()

	case key.Matches(msg, keys.SearchUp):
		m.moveUp()
		return m, nil

	case key.Matches(msg, keys.SearchDown):
		m.moveDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.items.SetFilter(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m *model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = true

	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Up):
		m.moveUp()

	case key.Matches(msg, keys.Down):
		m.moveDown()

	case key.Matches(msg, keys.Top):
		m.cursor = 0

	case key.Matches(msg, keys.Bottom):
		if last := m.items.VisibleLen() - 1; last >= 0 {
			m.cursor = last
		}

	case key.Matches(msg, keys.CopyUsername):
		return m.copyUsername()

	case key.Matches(msg, keys.Copy):
		return m.startCopy()

	case key.Matches(msg, keys.Sync):
		m.busy = true
		m.busyText = "Syncing vault..."
		return m, tea.Batch(m.syncCmd(), m.spin.Tick)

	case key.Matches(msg, keys.Cancel):
		if len(m.items.Filter()) > 0 {
			m.search.Reset()
			m.items.SetFilter("")
			m.cursor = 0
		}
	}

	return m, nil
}

// Selection is clamped at both list boundaries; no wraparound.
func (m *model) moveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *model) moveDown() {
	if m.cursor < m.items.VisibleLen()-1 {
		m.cursor++
	}
}

func (m *model) startCopy() (tea.Model, tea.Cmd) {
	item, ok := m.items.At(m.cursor)
	if !ok {
		return m, m.showToast(ToastWarning, "Nothing selected")
	}
	if !item.HasPassword() {
		return m, m.showToast(ToastWarning, fmt.Sprintf("No password on %s item %q", item.Type, item.Name))
	}
	m.busy = true
	m.busyText = fmt.Sprintf("Copying password for %q...", item.Name)
	return m, tea.Batch(m.copyCmd(item), m.spin.Tick)
}

func (m *model) copyUsername() (tea.Model, tea.Cmd) {
	item, ok := m.items.At(m.cursor)
	if !ok {
		return m, m.showToast(ToastWarning, "Nothing selected")
	}
	if len(item.Username) == 0 {
		return m, m.showToast(ToastWarning, fmt.Sprintf("No username on %q", item.Name))
	}
	if err := m.sink.Copy(item.Username); err != nil {
		common.Error("copy username", err)
		return m, m.showToast(ToastError, "Clipboard unavailable")
	}
	return m, m.showToast(ToastSuccess, fmt.Sprintf("Username copied for %q", item.Name))
}

func (m *model) afterUnlock(msg unlockDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.password.Reset()
		if bitwarden.IsKind(msg.err, bitwarden.KindAuth) {
			return m, m.showToast(ToastError, "Invalid master password. Try again.")
		}
		common.Error("unlock", msg.err)
		return m, m.showToast(ToastError, msg.err.Error())
	}
	m.token = msg.token
	m.mode = modeBrowse
	m.busy = true
	m.busyText = "Loading vault items..."
	return m, tea.Batch(m.loadItemsCmd(), m.spin.Tick)
}

func (m *model) afterLoad(msg itemsLoadedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		common.Error("list items", msg.err)
		if bitwarden.IsKind(msg.err, bitwarden.KindSessionExpired) {
			m.relock()
			return m, m.showToast(ToastError, "Session expired, unlock again")
		}
		// Previous store contents stay untouched on failure.
		return m, m.showToast(ToastError, msg.err.Error())
	}
	m.items.Load(msg.items)
	m.search.Reset()
	m.cursor = 0
	return m, nil
}

func (m *model) afterCopy(msg copyDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if len(msg.revealed) > 0 {
		m.revealSeq++
		m.reveal = msg.revealed
		m.revealName = msg.name
		seq := m.revealSeq
		expire := tea.Tick(m.opts.RevealTimeout, func(time.Time) tea.Msg {
			return revealExpiredMsg{seq: seq}
		})
		toast := m.showToast(ToastWarning, "Clipboard unavailable, revealing on screen")
		return m, tea.Batch(toast, expire)
	}
	if msg.err != nil {
		common.Error("copy password", msg.err)
		if bitwarden.IsKind(msg.err, bitwarden.KindSessionExpired) {
			m.relock()
			return m, m.showToast(ToastError, "Session expired, unlock again")
		}
		return m, m.showToast(ToastError, msg.err.Error())
	}
	cmds := []tea.Cmd{m.showToast(ToastSuccess, fmt.Sprintf("Password copied for %q", msg.name))}
	if m.opts.ClearAfter > 0 {
		m.clipSeq++
		seq := m.clipSeq
		cmds = append(cmds, tea.Tick(m.opts.ClearAfter, func(time.Time) tea.Msg {
			return clipboardClearMsg{seq: seq}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m *model) afterSync(msg syncDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.busy = false
		common.Error("sync", msg.err)
		if bitwarden.IsKind(msg.err, bitwarden.KindSessionExpired) {
			m.relock()
			return m, m.showToast(ToastError, "Session expired, unlock again")
		}
		return m, m.showToast(ToastError, msg.err.Error())
	}
	m.busyText = "Loading vault items..."
	return m, tea.Batch(m.loadItemsCmd(), m.showToast(ToastSuccess, "Vault synced"))
}

func (m *model) relock() {
	m.token = ""
	m.mode = modeLocked
	m.password.Reset()
	m.password.Focus()
}

func (m *model) dropReveal() {
	m.reveal = ""
	m.revealName = ""
}

// Run starts the interactive session and blocks until the user quits.
// After the program returns, exactly one best-effort lock is issued when
// a session token is held.
func Run(vault Vault, sink clipboard.Sink, inherited bitwarden.SessionToken, opts Options) error {
	m := newModel(vault, sink, inherited, opts)
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if last, ok := final.(*model); ok {
		finalize(vault, last)
	}
	return nil
}

func finalize(vault Vault, m *model) {
	if len(m.token) > 0 {
		common.Uncritical("lock", vault.Lock(m.token))
	}
}
