// ABOUTME: Generic list table rendering records against a column spec
// ABOUTME: Supports typed cells, a row action menu, and row activation

package table

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/produkportal/produk-cli/internal/tui/icons"
	"github.com/produkportal/produk-cli/internal/tui/styles"
)

// Cell type tags. Anything else renders as plain text.
const (
	TypeString  = "string"
	TypeDate    = "date"
	TypeBoolean = "boolean"
	TypeLatex   = "latex"
	TypeCustom  = "custom"
)

// maxCellWidth caps truncated columns, matching the portal's narrow cells.
const maxCellWidth = 36

// Column declares how one field of a record is rendered.
type Column struct {
	Name     string
	Accessor string
	Type     string
	// Custom renders the resolved value for TypeCustom columns. A nil
	// renderer yields an empty cell, not an error.
	Custom   func(value any) string
	Truncate bool
}

// Action is one entry of the per-row action menu. Invoked with the row's
// id field.
type Action struct {
	Name   string
	Action func(id any)
}

// Options configures table behavior.
type Options struct {
	ShowActions  bool
	RowClickable bool
	OnRowClick   func(id any)
	// Latex is the math-typesetting collaborator for TypeLatex cells.
	// Nil renders the raw source text.
	Latex func(source string) string
}

// Model is the generic list table.
type Model struct {
	records []any
	columns []Column
	actions []Action
	opts    Options

	cursor     int
	menuOpen   bool
	menuCursor int
}

// New creates a table over the given records and column spec.
func New(records []any, columns []Column, actions []Action, opts Options) *Model {
	return &Model{
		records: records,
		columns: columns,
		actions: actions,
		opts:    opts,
	}
}

// SetRecords replaces the record list, clamping the cursor. Used after a
// delete removes a row.
func (m *Model) SetRecords(records []any) {
	m.records = records
	if m.cursor >= len(records) {
		m.cursor = len(records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.menuOpen = false
}

// Cursor returns the selected row index.
func (m *Model) Cursor() int {
	return m.cursor
}

// MenuOpen reports whether the action menu is showing.
func (m *Model) MenuOpen() bool {
	return m.menuOpen
}

// SelectedID resolves the id field of the selected record.
func (m *Model) SelectedID() (any, bool) {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return nil, false
	}
	return Lookup(m.records[m.cursor], "id")
}

// Update handles keyboard input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if m.menuOpen {
		switch key.String() {
		case "up", "k":
			if m.menuCursor > 0 {
				m.menuCursor--
			}
		case "down", "j":
			if m.menuCursor < len(m.actions)-1 {
				m.menuCursor++
			}
		case "enter":
			m.menuOpen = false
			if id, ok := m.SelectedID(); ok && m.menuCursor < len(m.actions) {
				m.actions[m.menuCursor].Action(id)
			}
		case "esc", "a":
			m.menuOpen = false
		}
		return nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "a":
		if m.opts.ShowActions && len(m.actions) > 0 && len(m.records) > 0 {
			m.menuOpen = true
			m.menuCursor = 0
		}
	case "enter":
		if m.opts.RowClickable && m.opts.OnRowClick != nil {
			if id, ok := m.SelectedID(); ok {
				m.opts.OnRowClick(id)
			}
		}
	}
	return nil
}

// View renders the table, plus the action menu overlay when open.
func (m *Model) View() string {
	if len(m.records) == 0 {
		return styles.Subtitle.Render("Tidak ada data")
	}

	cells := make([][]string, len(m.records))
	for i, record := range m.records {
		row := make([]string, len(m.columns))
		for j, col := range m.columns {
			row[j] = m.renderCell(record, col)
		}
		cells[i] = row
	}

	widths := make([]int, len(m.columns))
	for j, col := range m.columns {
		widths[j] = lipgloss.Width(col.Name)
		for i := range cells {
			if w := lipgloss.Width(cells[i][j]); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var sb strings.Builder
	var header strings.Builder
	for j, col := range m.columns {
		header.WriteString(styles.TableHeader.Render(pad(col.Name, widths[j])))
	}
	sb.WriteString(header.String())
	sb.WriteString("\n")

	for i := range cells {
		var row strings.Builder
		for j := range m.columns {
			row.WriteString(styles.TableCell.Render(pad(cells[i][j], widths[j])))
		}
		line := row.String()
		if i == m.cursor {
			line = styles.TableRowActive.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m.menuOpen {
		sb.WriteString("\n")
		sb.WriteString(m.menuView())
	}

	return sb.String()
}

// menuView renders the popover-equivalent action list for the selected row.
func (m *Model) menuView() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Pilihan"))
	sb.WriteString("\n")
	for i, action := range m.actions {
		prefix := "  "
		name := action.Name
		if i == m.menuCursor {
			prefix = "> "
			name = styles.StatusOK.Render(name)
		}
		sb.WriteString(prefix + name + "\n")
	}
	return styles.ActivePanel.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderCell resolves and formats one cell. Failures render empty cells;
// the table never errors on bad records.
func (m *Model) renderCell(record any, col Column) string {
	if col.Accessor == "" {
		return ""
	}
	value, ok := Lookup(record, col.Accessor)
	if !ok {
		return ""
	}

	switch col.Type {
	case TypeDate:
		return formatDate(stringify(value))
	case TypeBoolean:
		if b, ok := value.(bool); ok && b {
			return styles.StatusOK.Render(icons.Yes.String())
		}
		return styles.StatusError.Render(icons.No.String())
	case TypeLatex:
		text := stringify(value)
		if m.opts.Latex != nil {
			text = m.opts.Latex(text)
		}
		return truncate(text, col.Truncate)
	case TypeCustom:
		if col.Custom == nil {
			return ""
		}
		return truncate(col.Custom(value), col.Truncate)
	default:
		return truncate(stringify(value), col.Truncate)
	}
}

// stringify converts a resolved value to display text. Nil renders empty.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatDate renders a timestamp the way the portal shows dates. An
// unparseable value falls back to the raw string.
func formatDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format("Mon Jan 2 2006")
		}
	}
	return raw
}

// truncate constrains a cell to the max width when requested.
func truncate(text string, constrain bool) string {
	if !constrain {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxCellWidth {
		return text
	}
	return string(runes[:maxCellWidth-1]) + "…"
}

// pad right-pads text to the given display width.
func pad(text string, width int) string {
	if diff := width - lipgloss.Width(text); diff > 0 {
		return text + strings.Repeat(" ", diff)
	}
	return text
}
