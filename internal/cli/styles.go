// Package cli provides styled terminal output using lipgloss.
package cli

import "github.com/charmbracelet/lipgloss"

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#C8102E")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates skipped inputs.
	WarningColor = lipgloss.Color("#FFE66D")
	// SubtleColor is used for borders and secondary text.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	// TableCellStyle pads table cells.
	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// NumberCellStyle right-aligns numeric cells.
	NumberCellStyle = TableCellStyle.
			Align(lipgloss.Right)

	// TotalStyle highlights totals.
	TotalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	WarningIcon = "!"
)

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}
