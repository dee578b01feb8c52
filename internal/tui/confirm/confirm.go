// ABOUTME: Blocking confirmation dialog with an async saving state
// ABOUTME: Used by delete flows; the confirm button disables while saving

package confirm

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/produkportal/produk-cli/internal/tui/styles"
)

// ConfirmedMsg is sent when the user confirms.
type ConfirmedMsg struct{}

// CancelledMsg is sent when the user cancels or dismisses the dialog.
type CancelledMsg struct{}

// Model is a yes/no dialog. While saving, input is ignored and the confirm
// button shows a spinner instead of its label.
type Model struct {
	title  string
	prompt string

	confirmFocused bool
	saving         bool
	spinner        spinner.Model
}

// New creates a dialog with the confirm button focused.
func New(title, prompt string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Model{
		title:          title,
		prompt:         prompt,
		confirmFocused: true,
		spinner:        sp,
	}
}

// StartSaving switches to the saving state and returns the spinner tick.
func (m *Model) StartSaving() tea.Cmd {
	m.saving = true
	return m.spinner.Tick
}

// StopSaving re-enables the buttons, keeping the dialog open. Called when
// the async operation fails so the user can retry or cancel.
func (m *Model) StopSaving() {
	m.saving = false
}

// Saving reports whether the async operation is still running.
func (m *Model) Saving() bool {
	return m.saving
}

// Update handles input and spinner ticks.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.saving {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if m.saving {
			return nil
		}
		switch msg.String() {
		case "left", "right", "tab":
			m.confirmFocused = !m.confirmFocused
		case "enter":
			if m.confirmFocused {
				return func() tea.Msg { return ConfirmedMsg{} }
			}
			return func() tea.Msg { return CancelledMsg{} }
		case "esc":
			return func() tea.Msg { return CancelledMsg{} }
		}
	}
	return nil
}

// View renders the dialog panel.
func (m *Model) View() string {
	confirmLabel := "Ya"
	if m.saving {
		confirmLabel = m.spinner.View() + " Menyimpan..."
	}

	var confirm, cancel string
	switch {
	case m.saving:
		confirm = styles.ButtonDisabled.Render(confirmLabel)
		cancel = styles.ButtonDisabled.Render("Batal")
	case m.confirmFocused:
		confirm = styles.ButtonFocused.Render(confirmLabel)
		cancel = styles.ButtonBlurred.Render("Batal")
	default:
		confirm = styles.ButtonBlurred.Render(confirmLabel)
		cancel = styles.ButtonFocused.Render("Batal")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(m.title),
		m.prompt,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, confirm, cancel),
	)
	return styles.ActivePanel.Render(body)
}
