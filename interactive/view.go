package interactive

import (
	"fmt"
	"strings"

	"github.com/oranginaround/bw-tui/bitwarden"
	"github.com/oranginaround/bw-tui/common"
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	boxWidth := m.width - 8
	if boxWidth < 60 {
		boxWidth = 60
	}
	if boxWidth > 100 {
		boxWidth = 100
	}
	contentWidth := boxWidth - 6

	var b strings.Builder
	b.WriteString(m.renderHeader(contentWidth))

	switch {
	case m.showHelp:
		b.WriteString(m.renderHelp())
	case m.mode == modeLocked:
		b.WriteString(m.renderLocked())
	default:
		b.WriteString(m.renderBrowse(contentWidth))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter(contentWidth))

	if toast := m.renderToast(); len(toast) > 0 {
		b.WriteString("\n")
		b.WriteString(toast)
	}

	return m.styles.Box(b.String(), boxWidth, m.width, m.height)
}

func (m *model) renderHeader(contentWidth int) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("bw-tui"))
	b.WriteString(m.styles.Subtext.Render(" " + common.Version + " "))
	b.WriteString(m.styles.Separator.Render("|"))
	b.WriteString(" ")
	if m.mode == modeLocked {
		b.WriteString(m.styles.Warning.Render("Vault locked"))
	} else {
		b.WriteString(m.styles.Success.Render("Vault unlocked"))
		b.WriteString(m.styles.Subtext.Render(fmt.Sprintf("  %d items", m.items.Len())))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Separator.Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n\n")
	return b.String()
}

func (m *model) renderLocked() string {
	var b strings.Builder
	if m.busy {
		b.WriteString(m.spin.View())
		b.WriteString(" ")
		b.WriteString(m.styles.Subtext.Render(m.busyText))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.styles.Label.Render("Master Password"))
	b.WriteString("\n\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")
	return b.String()
}

func (m *model) renderBrowse(contentWidth int) string {
	var b strings.Builder

	// Filter line
	switch {
	case m.mode == modeSearch:
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	case len(m.items.Filter()) > 0:
		b.WriteString(m.styles.Accent.Render("Filter: " + m.items.Filter()))
		b.WriteString("\n\n")
	}

	if m.busy {
		b.WriteString(m.spin.View())
		b.WriteString(" ")
		b.WriteString(m.styles.Subtext.Render(m.busyText))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.reveal) > 0 {
		return b.String() + m.renderReveal()
	}

	visible := m.items.VisibleItems()
	if len(visible) == 0 {
		if len(m.items.Filter()) > 0 {
			b.WriteString(m.styles.Subtext.Render(fmt.Sprintf("No matches for %q", m.items.Filter())))
		} else {
			b.WriteString(m.styles.Subtext.Render("No items in vault"))
		}
		b.WriteString("\n")
		return b.String()
	}

	maxVisible := m.height - 14
	if maxVisible < 5 {
		maxVisible = 5
	}
	if maxVisible > 20 {
		maxVisible = 20
	}

	startIdx := 0
	if m.cursor >= maxVisible {
		startIdx = m.cursor - maxVisible + 1
	}

	for i := startIdx; i < len(visible) && i < startIdx+maxVisible; i++ {
		item := visible[i]

		name := truncate(item.Name, 28)
		detail := item.Username
		if len(detail) == 0 && item.Type.String() != "login" {
			detail = "(" + item.Type.String() + ")"
		}
		line := fmt.Sprintf("%-29s %s", name, truncate(detail, contentWidth-33))
		if m.opts.Icons {
			line = itemIcon(item.Type) + " " + line
		}

		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if remaining := len(visible) - startIdx - maxVisible; remaining > 0 {
		b.WriteString(m.styles.Subtext.Render(fmt.Sprintf("  ... +%d more", remaining)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.items.Filter()) > 0 {
		b.WriteString(m.styles.Subtext.Render(fmt.Sprintf("Item %d of %d (%d total)", m.cursor+1, len(visible), m.items.Len())))
	} else {
		b.WriteString(m.styles.Subtext.Render(fmt.Sprintf("Item %d of %d", m.cursor+1, len(visible))))
	}
	b.WriteString("\n")

	return b.String()
}

func (m *model) renderReveal() string {
	var b strings.Builder
	b.WriteString(m.styles.Warning.Render("Password for " + m.revealName))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Accent.Bold(true).Render(m.reveal))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Subtext.Render(fmt.Sprintf("Shown for %s, any key hides it", m.opts.RevealTimeout)))
	return m.styles.RevealBox.Render(b.String()) + "\n"
}

func (m *model) renderHelp() string {
	var b strings.Builder
	sections := []struct {
		title string
		keys  []KeyHint
	}{
		{"Movement", []KeyHint{
			{"j/↓ k/↑", "move selection"},
			{"g G", "top / bottom"},
		}},
		{"Actions", []KeyHint{
			{"/ s", "search"},
			{"c Enter", "copy password"},
			{"u", "copy username"},
			{"S", "sync vault"},
			{"Esc", "clear search"},
		}},
		{"Global", []KeyHint{
			{"?", "help"},
			{"q", "quit"},
			{"Ctrl+C", "force quit"},
		}},
	}
	for _, section := range sections {
		b.WriteString(m.styles.Title.Render(section.title))
		b.WriteString("\n")
		for _, hint := range section.keys {
			b.WriteString("  ")
			b.WriteString(m.styles.HelpKey.Render(fmt.Sprintf("%-10s", hint.Key)))
			b.WriteString(" ")
			b.WriteString(m.styles.HelpDesc.Render(hint.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// KeyHint is one keyboard shortcut for the footer and help screens.
type KeyHint struct {
	Key  string
	Desc string
}

func (m *model) renderFooter(contentWidth int) string {
	var hints []KeyHint
	switch m.mode {
	case modeLocked:
		hints = []KeyHint{{"Enter", "unlock"}, {"Esc", "quit"}}
	case modeSearch:
		hints = []KeyHint{{"Esc", "clear"}, {"Enter", "copy"}, {"↑↓", "move"}}
	default:
		hints = []KeyHint{{"/", "search"}, {"c", "copy"}, {"u", "user"}, {"S", "sync"}, {"?", "help"}, {"q", "quit"}}
	}

	var b strings.Builder
	b.WriteString(m.styles.Separator.Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n")
	for i, hint := range hints {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(m.styles.KeyHint.Render(hint.Key))
		b.WriteString(" ")
		b.WriteString(m.styles.Subtext.Render(hint.Desc))
	}
	return b.String()
}

func itemIcon(kind bitwarden.ItemType) string {
	switch kind {
	case bitwarden.TypeLogin:
		return "🔑"
	case bitwarden.TypeNote:
		return "📝"
	case bitwarden.TypeCard:
		return "💳"
	case bitwarden.TypeIdentity:
		return "👤"
	}
	return "  "
}

func truncate(text string, limit int) string {
	if limit < 4 {
		limit = 4
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}
