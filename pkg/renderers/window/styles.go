package window

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	dim      lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	value    lipgloss.Style
	invalid  lipgloss.Style
	button   lipgloss.Style
	buttonOn lipgloss.Style
	panel    lipgloss.Style
	failure  lipgloss.Style
	warn     lipgloss.Style
}

func defaultStyles() styles {
	brand := lipgloss.AdaptiveColor{Light: "26", Dark: "81"}
	subtle := lipgloss.AdaptiveColor{Light: "245", Dark: "244"}
	border := lipgloss.AdaptiveColor{Light: "250", Dark: "238"}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(brand),
		dim:      lipgloss.NewStyle().Foreground(subtle),
		label:    lipgloss.NewStyle(),
		focused:  lipgloss.NewStyle().Bold(true).Foreground(brand),
		value:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		invalid:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		button:   lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(border),
		buttonOn: lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(brand).Bold(true).Foreground(brand),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}
