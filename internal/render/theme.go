package render

import "github.com/charmbracelet/lipgloss"

// Theme is the console palette. Colors are ANSI 256 codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	SoldOut lipgloss.Color
}

var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	Accent:             lipgloss.Color("75"),
	Border:             lipgloss.Color("240"),
	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("231"),
	Success:            lipgloss.Color("78"),
	Error:              lipgloss.Color("203"),
	Info:               lipgloss.Color("75"),
	SoldOut:            lipgloss.Color("160"),
}

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	faint    lipgloss.Style
	normal   lipgloss.Style
	selected lipgloss.Style
	errorMsg lipgloss.Style
	soldOut  lipgloss.Style
	panel    lipgloss.Style
	modal    lipgloss.Style
	button   lipgloss.Style
	primary  lipgloss.Style
	disabled lipgloss.Style
	input    lipgloss.Style
	focused  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		header:   lipgloss.NewStyle().Bold(true).Foreground(t.NormalText),
		faint:    lipgloss.NewStyle().Foreground(t.FaintText),
		normal:   lipgloss.NewStyle().Foreground(t.NormalText),
		selected: lipgloss.NewStyle().Background(t.SelectedBackground).Foreground(t.SelectedForeground).Bold(true),
		errorMsg: lipgloss.NewStyle().Foreground(t.Error),
		soldOut:  lipgloss.NewStyle().Foreground(t.SoldOut).Bold(true),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		modal:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Accent).Padding(1, 2),
		button:   lipgloss.NewStyle().Foreground(t.NormalText).Padding(0, 1).Border(lipgloss.NormalBorder(), false, true),
		primary:  lipgloss.NewStyle().Foreground(t.SelectedForeground).Background(t.Accent).Bold(true).Padding(0, 1),
		disabled: lipgloss.NewStyle().Foreground(t.FaintText).Background(t.SelectedBackground).Padding(0, 1),
		input:    lipgloss.NewStyle().Foreground(t.NormalText).Underline(true),
		focused:  lipgloss.NewStyle().Foreground(t.SelectedForeground).Background(t.SelectedBackground).Underline(true),
	}
}

func (t Theme) severityColor(sev string) lipgloss.Color {
	switch sev {
	case "success":
		return t.Success
	case "error":
		return t.Error
	}
	return t.Info
}
