// ABOUTME: Windowed page-number strip with prev/next controls
// ABOUTME: Shows a subset of pages around the current page plus an ellipsis

package pagination

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/produkportal/produk-cli/internal/tui/icons"
	"github.com/produkportal/produk-cli/internal/tui/styles"
)

// windowThreshold is the page count above which windowing kicks in. At or
// below it every page number is rendered with no ellipsis.
const windowThreshold = 5

// defaultWindow is the visible window size for the far-from-end case.
const defaultWindow = 3

// Model tracks the current page and the computed left/right windows.
type Model struct {
	current  int
	total    int
	window   int
	onChange func(page int)

	left  []int
	right []int
}

// New creates a pagination strip. onChange fires synchronously whenever a
// page is selected; it may be nil.
func New(totalPages, activePage int, onChange func(page int)) *Model {
	if activePage < 1 {
		activePage = 1
	}
	m := &Model{
		current:  activePage,
		total:    totalPages,
		window:   defaultWindow,
		onChange: onChange,
	}
	m.recompute()
	return m
}

// SetWindow overrides the visible window size.
func (m *Model) SetWindow(size int) {
	if size > 0 {
		m.window = size
		m.recompute()
	}
}

// SetTotal updates the page count, clamping the current page into range.
func (m *Model) SetTotal(totalPages int) {
	m.total = totalPages
	if m.current > totalPages && totalPages > 0 {
		m.current = totalPages
	}
	m.recompute()
}

// Current returns the current page.
func (m *Model) Current() int {
	return m.current
}

// Windows returns the computed left and right page windows. Only
// meaningful when the total exceeds the windowing threshold.
func (m *Model) Windows() (left, right []int) {
	return m.left, m.right
}

// Prev moves one page back. Out of range is a no-op, not an error.
func (m *Model) Prev() {
	m.step(m.current - 1)
}

// Next moves one page forward. Out of range is a no-op.
func (m *Model) Next() {
	m.step(m.current + 1)
}

// Select jumps to a page and fires onChange.
func (m *Model) Select(page int) {
	m.step(page)
}

// step applies a page change, clamped to [1, total].
func (m *Model) step(page int) {
	if page < 1 || page > m.total {
		return
	}
	m.current = page
	m.recompute()
	if m.onChange != nil {
		m.onChange(page)
	}
}

// recompute derives the page windows from the current page and total. Runs
// on every page or total change. Mirrors the portal's strip: three cases
// by distance to the last page.
func (m *Model) recompute() {
	m.left, m.right = nil, nil
	if m.total <= windowThreshold {
		return
	}

	d := m.total - m.current
	switch {
	case d <= 1:
		m.left = pages(m.current-3, m.current-1)
		m.right = pages(m.current-1, m.total+1)
	case d <= 3:
		m.left = pages(m.current-1, m.current+1)
		m.right = pages(m.current+2, m.total+1)
	default:
		m.left = pages(m.current, m.current+m.window)
		m.right = pages(m.total-1, m.total+1)
	}
}

// pages returns [start, stop) like the portal's range helper.
func pages(start, stop int) []int {
	if stop <= start {
		return nil
	}
	out := make([]int, 0, stop-start)
	for p := start; p < stop; p++ {
		out = append(out, p)
	}
	return out
}

// Update maps keyboard input onto the prev/next controls.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "left", "h":
		m.Prev()
	case "right", "l":
		m.Next()
	}
	return nil
}

// View renders the strip: prev control, page numbers (windowed when the
// total is large enough), next control.
func (m *Model) View() string {
	if m.total <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.PageNumber.Render(icons.PrevPage.String()))

	if m.total <= windowThreshold {
		for p := 1; p <= m.total; p++ {
			sb.WriteString(m.page(p))
		}
	} else {
		for _, p := range m.left {
			sb.WriteString(m.page(p))
		}
		sb.WriteString(styles.PageNumber.Render("…"))
		for _, p := range m.right {
			sb.WriteString(m.page(p))
		}
	}

	sb.WriteString(styles.PageNumber.Render(icons.NextPage.String()))
	return sb.String()
}

func (m *Model) page(p int) string {
	if p == m.current {
		return styles.PageActive.Render(strconv.Itoa(p))
	}
	return styles.PageNumber.Render(strconv.Itoa(p))
}
