// ABOUTME: Tests for the product list screen
// ABOUTME: Verifies load, delete success/failure, and the edit/page flows

package products

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/produkportal/produk-cli/internal/api"
	"github.com/produkportal/produk-cli/internal/tui/confirm"
)

func samplePage() loadedMsg {
	return loadedMsg{
		items: []api.Product{
			{ID: 1, Name: "Kopi", Description: "Arabika", UpdatedAt: "2024-05-01T10:30:00Z"},
			{ID: 7, Name: "Teh", Description: "Melati", UpdatedAt: "2024-06-02T08:00:00Z"},
		},
		meta: &api.Meta{Page: 1, Limit: 10, TotalPage: 3, TotalCount: 22},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadedMsg_BuildsTableAndPagination(t *testing.T) {
	m := New(nil)
	m.Update(samplePage())

	if m.loading {
		t.Error("expected loading cleared")
	}
	if m.table == nil || m.pag == nil {
		t.Fatal("expected table and pagination built")
	}

	out := m.View()
	for _, want := range []string{"Kopi", "Teh", "Melati"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view, got:\n%s", want, out)
		}
	}
}

func TestLoadedMsg_FailureNotifies(t *testing.T) {
	m := New(nil)
	cmd := m.Update(loadedMsg{err: errors.New("boom")})
	if cmd == nil {
		t.Fatal("expected notice command")
	}
	notice, ok := cmd().(NoticeMsg)
	if !ok {
		t.Fatalf("expected NoticeMsg, got %T", cmd())
	}
	if !strings.Contains(string(notice), "Terjadi error") {
		t.Errorf("unexpected notice: %q", notice)
	}
}

func TestDeleteFlow_MenuOpensConfirmDialog(t *testing.T) {
	m := New(nil)
	m.Update(samplePage())

	// Select the second row, open the action menu, move to Hapus, invoke.
	m.Update(keyMsg("down"))
	m.Update(keyMsg("a"))
	m.Update(keyMsg("down"))
	m.Update(keyMsg("enter"))

	if m.confirmDialog == nil {
		t.Fatal("expected confirmation dialog")
	}
	if m.deleteID != 7 {
		t.Errorf("expected deleteID 7, got %d", m.deleteID)
	}
}

func TestDeletedMsg_SuccessRemovesRowAndCloses(t *testing.T) {
	m := New(nil)
	m.Update(samplePage())
	m.confirmDialog = confirm.New("Hapus Produk", "Yakin?")

	cmd := m.Update(deletedMsg{id: 7})

	if m.confirmDialog != nil {
		t.Error("expected dialog closed on success")
	}
	if len(m.items) != 1 || m.items[0].ID != 1 {
		t.Errorf("expected only product 1 left, got %+v", m.items)
	}
	if cmd == nil {
		t.Fatal("expected notice command")
	}
	if notice, ok := cmd().(NoticeMsg); !ok || notice != "Produk berhasil dihapus" {
		t.Errorf("unexpected notice: %v", cmd())
	}
	if strings.Contains(m.View(), "Teh") {
		t.Error("expected deleted row gone from view")
	}
}

func TestDeletedMsg_FailureKeepsDialogAndRow(t *testing.T) {
	m := New(nil)
	m.Update(samplePage())
	m.confirmDialog = confirm.New("Hapus Produk", "Yakin?")
	m.confirmDialog.StartSaving()

	cmd := m.Update(deletedMsg{id: 7, err: errors.New("500")})

	if m.confirmDialog == nil {
		t.Fatal("expected dialog kept open on failure")
	}
	if m.confirmDialog.Saving() {
		t.Error("expected saving state cleared for retry")
	}
	if len(m.items) != 2 {
		t.Errorf("expected both rows intact, got %+v", m.items)
	}
	if cmd == nil {
		t.Fatal("expected notice command")
	}
	if notice, ok := cmd().(NoticeMsg); !ok || !strings.Contains(string(notice), "Gagal menghapus produk") {
		t.Errorf("unexpected notice: %v", cmd())
	}
}

func TestEditFlow_EmitsEditRequest(t *testing.T) {
	m := New(nil)
	m.Update(samplePage())

	m.Update(keyMsg("a"))
	cmd := m.Update(keyMsg("enter")) // Edit is the first menu entry

	if cmd == nil {
		t.Fatal("expected edit request command")
	}
	req, ok := cmd().(EditRequestMsg)
	if !ok {
		t.Fatalf("expected EditRequestMsg, got %T", cmd())
	}
	if req.ID != 1 {
		t.Errorf("expected edit request for id 1, got %d", req.ID)
	}
}

func TestPageChange_TriggersFetch(t *testing.T) {
	m := New(nil)
	m.Update(samplePage())

	cmd := m.Update(keyMsg("right"))

	if cmd == nil {
		t.Fatal("expected a fetch command for the next page")
	}
	if !m.loading {
		t.Error("expected loading state while fetching")
	}
	if m.requestedPage != 0 {
		t.Errorf("expected requestedPage consumed, got %d", m.requestedPage)
	}
}

func TestDialogIsModal(t *testing.T) {
	m := New(nil)
	m.Update(samplePage())
	m.confirmDialog = confirm.New("Hapus Produk", "Yakin?")

	before := m.table.Cursor()
	m.Update(keyMsg("down"))
	if m.table.Cursor() != before {
		t.Error("expected table input blocked while dialog open")
	}
	if !m.ModalOpen() {
		t.Error("expected ModalOpen true with dialog showing")
	}
}

func TestNotify_FlattensAPIErrorMessages(t *testing.T) {
	apiErr := &api.APIError{Status: 422, Failures: []any{"nama wajib diisi"}}
	cmd := notify("Gagal", apiErr)

	notice, ok := cmd().(NoticeMsg)
	if !ok {
		t.Fatalf("expected NoticeMsg, got %T", cmd())
	}
	if string(notice) != "Gagal: nama wajib diisi" {
		t.Errorf("unexpected notice: %q", notice)
	}
}
