package interactive

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oranginaround/bw-tui/bitwarden"
	"github.com/oranginaround/bw-tui/clipboard"
)

type fakeVault struct {
	token     bitwarden.SessionToken
	unlockErr error

	items   []bitwarden.ItemSummary
	listErr error

	secret   string
	fetchErr error
	syncErr  error

	lockCalls  int
	lastSecret []byte
}

func (it *fakeVault) Unlock(masterPassword string) (bitwarden.SessionToken, error) {
	if it.unlockErr != nil {
		return "", it.unlockErr
	}
	return it.token, nil
}

func (it *fakeVault) ListItems(token bitwarden.SessionToken) ([]bitwarden.ItemSummary, error) {
	if it.listErr != nil {
		return nil, it.listErr
	}
	return it.items, nil
}

func (it *fakeVault) FetchSecret(token bitwarden.SessionToken, itemID string) ([]byte, error) {
	if it.fetchErr != nil {
		return nil, it.fetchErr
	}
	it.lastSecret = []byte(it.secret)
	return it.lastSecret, nil
}

func (it *fakeVault) Sync(token bitwarden.SessionToken) error {
	return it.syncErr
}

func (it *fakeVault) Lock(token bitwarden.SessionToken) error {
	it.lockCalls++
	return nil
}

type fakeSink struct {
	copied []string
	fail   error
}

func (it *fakeSink) Copy(text string) error {
	if it.fail != nil {
		return it.fail
	}
	it.copied = append(it.copied, text)
	return nil
}

func sampleItems() []bitwarden.ItemSummary {
	return []bitwarden.ItemSummary{
		{ID: "aa-11", Name: "GitHub", Username: "alice", Type: bitwarden.TypeLogin},
		{ID: "bb-22", Name: "Gmail", Username: "bob", Type: bitwarden.TypeLogin},
		{ID: "cc-33", Name: "Backup codes", Type: bitwarden.TypeNote},
	}
}

func authFailure() error {
	return &bitwarden.Error{Op: "unlock", Kind: bitwarden.KindAuth, Stderr: "Invalid master password."}
}

func expiredFailure(op string) error {
	return &bitwarden.Error{Op: op, Kind: bitwarden.KindSessionExpired, Stderr: "Vault is locked."}
}

// browsingModel builds a model already unlocked and loaded, skipping the
// subprocess round trips.
func browsingModel(vault *fakeVault, sink clipboard.Sink) *model {
	m := newModel(vault, sink, "tok", Options{ClearAfter: 30 * time.Second})
	m.busy = false
	m.items.Load(vault.items)
	return m
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
	upKey    = tea.KeyMsg{Type: tea.KeyUp}
)

func TestFailedUnlockNeverReachesBrowse(t *testing.T) {
	vault := &fakeVault{unlockErr: authFailure()}
	m := newModel(vault, &fakeSink{}, "", Options{})

	m.Update(runes("wrong"))
	m.Update(enterKey)
	assert.True(t, m.busy)

	m.Update(m.unlockCmd("wrong")())

	assert.Equal(t, modeLocked, m.mode)
	assert.False(t, m.busy)
	require.NotNil(t, m.toast)
	assert.Equal(t, ToastError, m.toast.Type)
	assert.Empty(t, m.token)
}

func TestUnlockSuccessLoadsItems(t *testing.T) {
	vault := &fakeVault{token: "tok", items: sampleItems()}
	m := newModel(vault, &fakeSink{}, "", Options{})

	m.Update(m.unlockCmd("correct horse")())
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, bitwarden.SessionToken("tok"), m.token)
	assert.True(t, m.busy)

	m.Update(m.loadItemsCmd()())
	assert.False(t, m.busy)
	assert.Equal(t, 3, m.items.Len())
	assert.Equal(t, 0, m.cursor)
}

func TestNavigationClampsAtBoundaries(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	for i := 0; i < 5; i++ {
		m.Update(downKey)
	}
	assert.Equal(t, 2, m.cursor)

	for i := 0; i < 5; i++ {
		m.Update(upKey)
	}
	assert.Equal(t, 0, m.cursor)

	m.Update(runes("G"))
	assert.Equal(t, 2, m.cursor)
	m.Update(runes("g"))
	assert.Equal(t, 0, m.cursor)
}

func TestSearchNarrowsAndEscapeRestores(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.Update(runes("/"))
	assert.Equal(t, modeSearch, m.mode)

	m.Update(runes("git"))
	assert.Equal(t, 1, m.items.VisibleLen())
	first, ok := m.items.At(0)
	require.True(t, ok)
	assert.Equal(t, "GitHub", first.Name)
	assert.Equal(t, 0, m.cursor)

	m.Update(escKey)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "", m.items.Filter())
	assert.Equal(t, 3, m.items.VisibleLen())
}

func TestSearchMatchesUsername(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.Update(runes("/"))
	m.Update(runes("bo"))

	require.Equal(t, 1, m.items.VisibleLen())
	match, _ := m.items.At(0)
	assert.Equal(t, "Gmail", match.Name)
}

func TestSearchKeepsLetterKeysTypable(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.Update(runes("/"))
	m.Update(runes("j"))
	m.Update(runes("k"))

	assert.Equal(t, "jk", m.items.Filter())
	assert.Equal(t, 0, m.cursor)
}

func TestArrowKeysMoveWhileSearching(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.Update(runes("/"))
	m.Update(downKey)
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, "", m.items.Filter())

	m.Update(upKey)
	assert.Equal(t, 0, m.cursor)
}

func TestBottomClampsOnShortLists(t *testing.T) {
	vault := &fakeVault{items: sampleItems()[:1]}
	m := browsingModel(vault, &fakeSink{})

	m.Update(runes("G"))
	assert.Equal(t, 0, m.cursor)

	m.items.Load(nil)
	m.Update(runes("G"))
	assert.Equal(t, 0, m.cursor)
}

func TestTypingQIntoSearchDoesNotQuit(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.Update(runes("/"))
	m.Update(runes("q"))

	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.items.Filter())
}

func TestCopyWipesFetchedSecret(t *testing.T) {
	vault := &fakeVault{items: sampleItems(), secret: "swordfish"}
	sink := &fakeSink{}
	m := browsingModel(vault, sink)

	item, ok := m.items.At(0)
	require.True(t, ok)
	msg := m.copyCmd(item)()

	assert.Equal(t, []string{"swordfish"}, sink.copied)
	for at, b := range vault.lastSecret {
		assert.Zerof(t, b, "secret byte %d survived the copy", at)
	}

	m.Update(msg)
	require.NotNil(t, m.toast)
	assert.Equal(t, ToastSuccess, m.toast.Type)
	assert.Empty(t, m.reveal)
}

func TestClipboardClearsAfterTimeout(t *testing.T) {
	vault := &fakeVault{items: sampleItems(), secret: "swordfish"}
	sink := &fakeSink{}
	m := browsingModel(vault, sink)

	item, _ := m.items.At(0)
	m.Update(m.copyCmd(item)())
	require.Equal(t, int64(1), m.clipSeq)

	m.Update(clipboardClearMsg{seq: 1})
	assert.Equal(t, []string{"swordfish", ""}, sink.copied)
}

func TestStaleClipboardClearIsIgnored(t *testing.T) {
	vault := &fakeVault{items: sampleItems(), secret: "swordfish"}
	sink := &fakeSink{}
	m := browsingModel(vault, sink)

	item, _ := m.items.At(0)
	m.Update(m.copyCmd(item)())
	m.Update(m.copyCmd(item)())
	require.Equal(t, int64(2), m.clipSeq)

	m.Update(clipboardClearMsg{seq: 1})
	assert.Equal(t, []string{"swordfish", "swordfish"}, sink.copied)
}

func TestClipboardFailureRevealsOnScreen(t *testing.T) {
	vault := &fakeVault{items: sampleItems(), secret: "swordfish"}
	sink := &fakeSink{fail: clipboard.ErrUnavailable}
	m := browsingModel(vault, sink)

	item, _ := m.items.At(0)
	m.Update(m.copyCmd(item)())

	assert.Equal(t, "swordfish", m.reveal)
	assert.Equal(t, "GitHub", m.revealName)
	require.NotNil(t, m.toast)
	assert.Equal(t, ToastWarning, m.toast.Type)

	m.Update(revealExpiredMsg{seq: m.revealSeq})
	assert.Empty(t, m.reveal)
	assert.Empty(t, m.revealName)
}

func TestAnyKeyEndsRevealEarly(t *testing.T) {
	vault := &fakeVault{items: sampleItems(), secret: "swordfish"}
	m := browsingModel(vault, &fakeSink{fail: clipboard.ErrUnavailable})

	item, _ := m.items.At(0)
	m.Update(m.copyCmd(item)())
	require.NotEmpty(t, m.reveal)

	m.Update(downKey)
	assert.Empty(t, m.reveal)
}

func TestFetchFailureShowsErrorNotSilence(t *testing.T) {
	vault := &fakeVault{items: sampleItems(), fetchErr: fmt.Errorf("boom")}
	sink := &fakeSink{}
	m := browsingModel(vault, sink)

	item, _ := m.items.At(0)
	m.Update(m.copyCmd(item)())

	assert.Empty(t, sink.copied)
	assert.Empty(t, m.reveal)
	require.NotNil(t, m.toast)
	assert.Equal(t, ToastError, m.toast.Type)
}

func TestCopyOnNoteWarnsWithoutFetching(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.cursor = 2
	_, cmd := m.startCopy()
	require.NotNil(t, cmd)

	assert.False(t, m.busy)
	require.NotNil(t, m.toast)
	assert.Equal(t, ToastWarning, m.toast.Type)
	assert.Nil(t, vault.lastSecret)
}

func TestCopyUsernameSkipsSecretFetch(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	sink := &fakeSink{}
	m := browsingModel(vault, sink)

	m.Update(runes("u"))
	assert.Equal(t, []string{"alice"}, sink.copied)
	assert.Nil(t, vault.lastSecret)
}

func TestSessionExpiryRelocksAndKeepsStore(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})
	require.Equal(t, 3, m.items.Len())

	m.Update(itemsLoadedMsg{err: expiredFailure("list")})

	assert.Equal(t, modeLocked, m.mode)
	assert.Empty(t, m.token)
	assert.Equal(t, 3, m.items.Len())
}

func TestListFailureRetainsPreviousItems(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.Update(itemsLoadedMsg{err: &bitwarden.Error{Op: "list", Kind: bitwarden.KindParse}})

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 3, m.items.Len())
	require.NotNil(t, m.toast)
	assert.Equal(t, ToastError, m.toast.Type)
}

func TestSyncReloadsItems(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.Update(runes("S"))
	assert.True(t, m.busy)

	m.Update(m.syncCmd()())
	assert.True(t, m.busy)

	m.Update(m.loadItemsCmd()())
	assert.False(t, m.busy)
	assert.Equal(t, 3, m.items.Len())
}

func TestQuitIssuesExactlyOneLock(t *testing.T) {
	vault := &fakeVault{items: sampleItems()}
	m := browsingModel(vault, &fakeSink{})

	m.Update(runes("q"))
	assert.True(t, m.quitting)

	finalize(vault, m)
	assert.Equal(t, 1, vault.lockCalls)
}

func TestQuitWhileLockedSkipsLockCall(t *testing.T) {
	vault := &fakeVault{}
	m := newModel(vault, &fakeSink{}, "", Options{})

	m.Update(escKey)
	assert.True(t, m.quitting)

	finalize(vault, m)
	assert.Equal(t, 0, vault.lockCalls)
}
