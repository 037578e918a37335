package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#1E90FF") // Loop blue
	accentColor  = lipgloss.Color("#FFA500") // Orange
	successColor = lipgloss.Color("#00AA00") // Green
	errorColor   = lipgloss.Color("#CC0000") // Red
	mutedColor   = lipgloss.Color("#888888") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Section header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintTitle prints the file name heading of a report
func PrintTitle(w io.Writer, title string) {
	fmt.Fprintln(w, TitleStyle.Render(title))
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints an informational message
func PrintInfo(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header
func PrintSection(w io.Writer, title string) {
	fmt.Fprintln(w, HeaderStyle.Render(title))
}

// FormatDuration formats a duration with millisecond precision
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
