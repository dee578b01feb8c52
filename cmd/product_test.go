// ABOUTME: Tests for the product commands
// ABOUTME: Verifies table formatting and argument validation

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/produkportal/produk-cli/internal/api"
)

func TestFormatProductTable(t *testing.T) {
	items := []api.Product{
		{ID: 1, Name: "Kopi", Description: "Arabika", UpdatedAt: "2024-05-01T10:30:00Z"},
		{ID: 2, Name: "Teh", Description: "Melati", UpdatedAt: "2024-06-02T08:00:00Z"},
	}
	meta := &api.Meta{Page: 2, Limit: 10, TotalPage: 4, TotalCount: 38}

	out := formatProductTable(items, meta)

	for _, want := range []string{"Kopi", "Teh", "Arabika", "Halaman 2 dari 4 (38 produk)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
	// 2024-05-01 is a Wednesday.
	if !strings.Contains(out, "Wed May 1 2024") {
		t.Errorf("expected formatted date, got:\n%s", out)
	}
}

func TestFormatProductTable_Empty(t *testing.T) {
	out := formatProductTable(nil, nil)
	if !strings.Contains(out, "Tidak ada data") {
		t.Errorf("expected empty-state message, got:\n%s", out)
	}
}

func TestRunProductGet_InvalidID(t *testing.T) {
	var buf bytes.Buffer
	exitCode := runProductGet(context.Background(), &buf, "abc")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "invalid product id") {
		t.Errorf("expected invalid id message, got %q", buf.String())
	}
}

func TestRunProductDelete_InvalidID(t *testing.T) {
	var buf bytes.Buffer
	exitCode := runProductDelete(context.Background(), &buf, "x1")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}
