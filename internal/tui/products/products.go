// ABOUTME: Product list screen: generic table, pagination, delete flow
// ABOUTME: Fetches pages from the portal API and reports notices upward

package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/produkportal/produk-cli/internal/api"
	"github.com/produkportal/produk-cli/internal/tui/confirm"
	"github.com/produkportal/produk-cli/internal/tui/pagination"
	"github.com/produkportal/produk-cli/internal/tui/styles"
	"github.com/produkportal/produk-cli/internal/tui/table"
)

const pageLimit = 10

// NoticeMsg is a transient user notification bubbled up to the app footer.
type NoticeMsg string

// EditRequestMsg asks the app to open the edit form for a product.
type EditRequestMsg struct {
	ID int
}

// loadedMsg is sent when a product page arrives.
type loadedMsg struct {
	items []api.Product
	meta  *api.Meta
	err   error
}

// detailMsg is sent when a single product detail arrives.
type detailMsg struct {
	product api.Product
	err     error
}

// deletedMsg is sent when a delete call finishes.
type deletedMsg struct {
	id  int
	err error
}

// Model is the product management screen.
type Model struct {
	client *api.Client

	items   []api.Product
	meta    api.Meta
	query   string
	loading bool

	table   *table.Model
	pag     *pagination.Model
	spinner spinner.Model

	confirmDialog *confirm.Model
	deleteID      int
	editID        int
	wantConfirm   bool
	wantEdit      bool
	detailRequest int
	requestedPage int

	detail *api.Product
}

// New creates the product screen.
func New(client *api.Client) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Model{
		client:  client,
		spinner: sp,
		loading: true,
	}
}

// Init starts the first page fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(1))
}

// fetch loads one product page.
func (m *Model) fetch(page int) tea.Cmd {
	client, query := m.client, m.query
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		items, meta, err := client.ListProducts(ctx, api.ProductFilter{
			Query: query,
			Page:  page,
			Limit: pageLimit,
		})
		return loadedMsg{items: items, meta: meta, err: err}
	}
}

// fetchDetail loads one product for the detail panel.
func (m *Model) fetchDetail(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		product, err := client.GetProduct(ctx, id)
		return detailMsg{product: product, err: err}
	}
}

// deleteProduct runs the async delete for the confirmation dialog.
func (m *Model) deleteProduct(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		return deletedMsg{id: id, err: client.DeleteProduct(ctx, id)}
	}
}

// rebuild recreates the table and pagination from the current page.
func (m *Model) rebuild() {
	records := make([]any, len(m.items))
	for i := range m.items {
		records[i] = m.items[i]
	}

	columns := []table.Column{
		{Name: "Nama", Accessor: "name"},
		{Name: "Deskripsi", Accessor: "description", Truncate: true},
		{Name: "Diperbarui", Accessor: "updated_at", Type: table.TypeDate},
	}
	actions := []table.Action{
		{Name: "Edit", Action: func(id any) {
			m.editID = asInt(id)
			m.wantEdit = true
		}},
		{Name: "Hapus", Action: func(id any) {
			m.deleteID = asInt(id)
			m.wantConfirm = true
		}},
	}
	m.table = table.New(records, columns, actions, table.Options{
		ShowActions:  true,
		RowClickable: true,
		OnRowClick: func(id any) {
			m.detailRequest = asInt(id)
		},
	})

	m.pag = pagination.New(m.meta.TotalPage, m.meta.Page, func(page int) {
		m.requestedPage = page
	})
}

// Update handles messages for the screen.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.confirmDialog != nil {
			return m.confirmDialog.Update(msg)
		}
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			return notify("Terjadi error", msg.err)
		}
		m.items = msg.items
		if msg.meta != nil {
			m.meta = *msg.meta
		} else {
			m.meta = api.Meta{Page: 1, TotalPage: 1, Limit: pageLimit}
		}
		m.detail = nil
		m.rebuild()
		return nil

	case detailMsg:
		if msg.err != nil {
			return notify("Terjadi error", msg.err)
		}
		product := msg.product
		m.detail = &product
		return nil

	case confirm.ConfirmedMsg:
		if m.confirmDialog == nil {
			return nil
		}
		return tea.Batch(m.confirmDialog.StartSaving(), m.deleteProduct(m.deleteID))

	case confirm.CancelledMsg:
		m.confirmDialog = nil
		return nil

	case deletedMsg:
		if msg.err != nil {
			// Failure keeps the dialog open and the row intact.
			if m.confirmDialog != nil {
				m.confirmDialog.StopSaving()
			}
			return notify("Gagal menghapus produk", msg.err)
		}
		m.confirmDialog = nil
		m.removeItem(msg.id)
		return func() tea.Msg { return NoticeMsg("Produk berhasil dihapus") }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

// handleKey routes keyboard input: the dialog is modal, then the detail
// panel, then pagination, then the table.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirmDialog != nil {
		return m.confirmDialog.Update(msg)
	}

	if m.detail != nil {
		if msg.String() == "esc" {
			m.detail = nil
		}
		return nil
	}

	switch msg.String() {
	case "r":
		m.loading = true
		return tea.Batch(m.spinner.Tick, m.fetch(m.meta.Page))
	case "left", "h", "right", "l":
		if m.pag == nil {
			return nil
		}
		m.pag.Update(msg)
		if m.requestedPage != 0 {
			page := m.requestedPage
			m.requestedPage = 0
			m.loading = true
			return tea.Batch(m.spinner.Tick, m.fetch(page))
		}
		return nil
	}

	if m.table == nil {
		return nil
	}
	cmd := m.table.Update(msg)

	switch {
	case m.wantConfirm:
		m.wantConfirm = false
		m.confirmDialog = confirm.New("Hapus Produk", "Apakah anda yakin menghapus produk ini?")
	case m.wantEdit:
		m.wantEdit = false
		id := m.editID
		return func() tea.Msg { return EditRequestMsg{ID: id} }
	case m.detailRequest != 0:
		id := m.detailRequest
		m.detailRequest = 0
		return m.fetchDetail(id)
	}
	return cmd
}

// ModalOpen reports whether a modal (dialog or detail panel) is showing,
// so global keys like quit can defer to it.
func (m *Model) ModalOpen() bool {
	return m.confirmDialog != nil || m.detail != nil
}

// Reload refetches the current page.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	page := m.meta.Page
	if page == 0 {
		page = 1
	}
	return tea.Batch(m.spinner.Tick, m.fetch(page))
}

// removeItem drops a deleted product from the record list and re-renders.
func (m *Model) removeItem(id int) {
	kept := m.items[:0]
	for _, item := range m.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.items = kept

	records := make([]any, len(m.items))
	for i := range m.items {
		records[i] = m.items[i]
	}
	if m.table != nil {
		m.table.SetRecords(records)
	}
}

// View renders the screen.
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Daftar Produk"))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + " Memuat...")
	case m.detail != nil:
		sb.WriteString(m.detailView())
	default:
		if m.table != nil {
			sb.WriteString(m.table.View())
		}
		if m.pag != nil {
			sb.WriteString("\n")
			sb.WriteString(m.pag.View())
		}
		sb.WriteString("\n\n")
		sb.WriteString(styles.Help.Render("↑/↓ pilih  ·  a pilihan  ·  enter detail  ·  ←/→ halaman  ·  r muat ulang  ·  q keluar"))
	}

	if m.confirmDialog != nil {
		sb.WriteString("\n\n")
		sb.WriteString(m.confirmDialog.View())
	}
	return sb.String()
}

// detailView renders the single-product panel shown on row activation.
func (m *Model) detailView() string {
	p := m.detail
	body := fmt.Sprintf("Nama:       %s\nDeskripsi:  %s\nDibuat:     %s\nDiperbarui: %s",
		p.Name, p.Description, p.CreatedAt, p.UpdatedAt)
	return styles.Panel.Render(body) + "\n" + styles.Help.Render("esc kembali")
}

// notify converts an API failure into footer notices, one per envelope
// error entry. Network failures never crash the screen.
func notify(title string, err error) tea.Cmd {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if msgs := apiErr.Messages(); len(msgs) > 0 {
			return func() tea.Msg { return NoticeMsg(title + ": " + strings.Join(msgs, "; ")) }
		}
	}
	return func() tea.Msg { return NoticeMsg(title + ": " + err.Error()) }
}

// asInt normalizes a resolved id value (json numbers arrive as float64).
func asInt(id any) int {
	switch v := id.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
