package interactive

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastType defines the type of a transient status notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast is one transient status message shown near the footer.
type Toast struct {
	ID      int64
	Type    ToastType
	Message string
}

type toastExpiredMsg struct {
	id int64
}

const toastDuration = 3 * time.Second

// showToast replaces the current toast and schedules its expiry. Stale
// expiry messages are matched by ID and ignored.
func (m *model) showToast(kind ToastType, message string) tea.Cmd {
	m.toastSeq++
	m.toast = &Toast{ID: m.toastSeq, Type: kind, Message: message}
	id := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	switch m.toast.Type {
	case ToastSuccess:
		return m.styles.ToastSuccess.Render(m.toast.Message)
	case ToastWarning:
		return m.styles.ToastWarning.Render(m.toast.Message)
	case ToastError:
		return m.styles.ToastError.Render(m.toast.Message)
	default:
		return m.styles.ToastInfo.Render(m.toast.Message)
	}
}
