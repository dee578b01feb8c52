// ABOUTME: Login screen as a bubbletea model wrapping a huh form
// ABOUTME: Emits SubmitMsg with credentials when the form completes

package login

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/produkportal/produk-cli/internal/tui/styles"
)

// SubmitMsg is sent when the user submits credentials.
type SubmitMsg struct {
	Email    string
	Password string
}

// Model is the login screen.
type Model struct {
	form     *huh.Form
	email    string
	password string
	notice   string
	done     bool
}

// New creates a fresh login form.
func New() *Model {
	m := &Model{}
	m.form = m.buildForm()
	return m
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&m.email),
			huh.NewInput().
				Title("Kata sandi").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		).Title("Masuk"),
	).WithTheme(styles.FormTheme())
}

// Reset clears state after a failed attempt so the form can run again.
func (m *Model) Reset() tea.Cmd {
	m.password = ""
	m.done = false
	m.form = m.buildForm()
	return m.form.Init()
}

// SetNotice shows a transient message above the form.
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// Init implements tea.Model-style initialization.
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update drives the form and emits SubmitMsg on completion.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.done {
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.done = true
		email, password := m.email, m.password
		return tea.Batch(cmd, func() tea.Msg {
			return SubmitMsg{Email: email, Password: password}
		})
	}
	return cmd
}

// View renders the form with any notice above it.
func (m *Model) View() string {
	out := m.form.View()
	if m.notice != "" {
		out = styles.Notice.Render(m.notice) + "\n\n" + out
	}
	return out
}
