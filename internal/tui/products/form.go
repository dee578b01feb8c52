// ABOUTME: Product create/edit form screen
// ABOUTME: Saves through the portal API and reports back to the list

package products

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/produkportal/produk-cli/internal/api"
	"github.com/produkportal/produk-cli/internal/tui/styles"
)

// FormDoneMsg is sent when the form closes.
type FormDoneMsg struct {
	Saved bool
}

// savedMsg is sent when the create/update call finishes.
type savedMsg struct {
	err error
}

// Form is the create/edit screen. A zero id creates, otherwise it updates.
type Form struct {
	client *api.Client
	id     int

	name        string
	description string

	form    *huh.Form
	spinner spinner.Model
	saving  bool
	done    bool
}

// NewForm creates the form, prefilled when editing an existing product.
func NewForm(client *api.Client, product *api.Product) *Form {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	f := &Form{client: client, spinner: sp}
	if product != nil {
		f.id = product.ID
		f.name = product.Name
		f.description = product.Description
	}
	f.form = f.buildForm()
	return f
}

func (f *Form) buildForm() *huh.Form {
	title := "Tambah Produk"
	if f.id != 0 {
		title = "Edit Produk"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nama").
				Value(&f.name),
			huh.NewText().
				Title("Deskripsi").
				Value(&f.description),
		).Title(title),
	).WithTheme(styles.FormTheme())
}

// Init starts the form.
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// save runs the create or update call.
func (f *Form) save() tea.Cmd {
	client, id, name, description := f.client, f.id, f.name, f.description
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var err error
		if id == 0 {
			_, err = client.CreateProduct(ctx, name, description)
		} else {
			_, err = client.UpdateProduct(ctx, id, name, description)
		}
		return savedMsg{err: err}
	}
}

// Update drives the form, then the save call.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !f.saving {
			return nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return cmd

	case savedMsg:
		f.saving = false
		if msg.err != nil {
			// Stay open so the user can correct and retry.
			f.done = false
			f.form = f.buildForm()
			return tea.Batch(f.form.Init(), notify("Gagal menyimpan produk", msg.err))
		}
		return tea.Batch(
			func() tea.Msg { return NoticeMsg("Produk berhasil disimpan") },
			func() tea.Msg { return FormDoneMsg{Saved: true} },
		)

	case tea.KeyMsg:
		if f.saving {
			return nil
		}
		if msg.String() == "esc" {
			return func() tea.Msg { return FormDoneMsg{} }
		}
	}

	if f.done || f.saving {
		return nil
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.done = true
		f.saving = true
		return tea.Batch(cmd, f.spinner.Tick, f.save())
	}
	return cmd
}

// View renders the form or the saving state.
func (f *Form) View() string {
	if f.saving {
		return f.spinner.View() + " Menyimpan..."
	}
	return f.form.View() + "\n" + styles.Help.Render("esc batal")
}
