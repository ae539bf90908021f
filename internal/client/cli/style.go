package cli

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func prompt(status string) string {
	return promptStyle.Render("fitlog") + " " + statusStyle.Render(status) + promptStyle.Render(" > ")
}
