package interactive

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the vault browser.
type Styles struct {
	theme Theme

	Title   lipgloss.Style
	Subtext lipgloss.Style
	Label   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Separator lipgloss.Style
	Spinner   lipgloss.Style

	Normal   lipgloss.Style
	Selected lipgloss.Style

	KeyHint  lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	RevealBox lipgloss.Style
}

func NewStyles() *Styles {
	theme := DefaultTheme()
	toast := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return &Styles{
		theme: theme,

		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtext: lipgloss.NewStyle().Foreground(theme.TextMuted),
		Label:   lipgloss.NewStyle().Foreground(theme.TextDim),
		Accent:  lipgloss.NewStyle().Foreground(theme.Accent),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Info:    lipgloss.NewStyle().Foreground(theme.Info),

		Separator: lipgloss.NewStyle().Foreground(theme.BorderDim),
		Spinner:   lipgloss.NewStyle().Foreground(theme.Accent),

		Normal:   lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(theme.TextBright).Background(theme.Highlight).Bold(true).Padding(0, 1),

		KeyHint:  lipgloss.NewStyle().Foreground(theme.TextDim).Background(theme.Surface).Padding(0, 1),
		HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		HelpDesc: lipgloss.NewStyle().Foreground(theme.TextMuted),

		ToastInfo:    toast.BorderForeground(theme.Info),
		ToastSuccess: toast.BorderForeground(theme.Success),
		ToastWarning: toast.BorderForeground(theme.Warning),
		ToastError:   toast.BorderForeground(theme.Error),

		RevealBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Warning).Padding(0, 2),
	}
}

// Box wraps view content in the standard rounded frame, centered on the
// terminal.
func (s *Styles) Box(content string, boxWidth, termWidth, termHeight int) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.theme.Border).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, frame)
}
