// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Palette follows the portal's green theme

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#38A169") // Green-500 - portal brand
	Secondary = lipgloss.Color("#48BB78") // Green-400
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Surface   = lipgloss.Color("#374151") // Elevated surface background

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Warning)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Table
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Padding(0, 1)

	TableRowActive = lipgloss.NewStyle().
			Background(Surface).
			Foreground(Text)

	// Pagination
	PageNumber = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(Muted)

	PageActive = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(Primary)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted)

	// Buttons
	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Primary).
			Padding(0, 2).
			MarginRight(1)

	ButtonBlurred = lipgloss.NewStyle().
			Foreground(Muted).
			Background(Surface).
			Padding(0, 2).
			MarginRight(1)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2).
			MarginRight(1)
)
