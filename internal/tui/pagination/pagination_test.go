// ABOUTME: Tests for the windowed pagination strip
// ABOUTME: Verifies window computation, clamping, and change callbacks

package pagination

import (
	"strings"
	"testing"
)

func TestView_SmallTotalShowsAllPagesNoEllipsis(t *testing.T) {
	m := New(3, 1, nil)

	out := m.View()
	for _, page := range []string{"1", "2", "3"} {
		if !strings.Contains(out, page) {
			t.Errorf("expected page %s in strip, got:\n%s", page, out)
		}
	}
	if strings.Contains(out, "…") {
		t.Errorf("expected no ellipsis for small totals, got:\n%s", out)
	}

	left, right := m.Windows()
	if left != nil || right != nil {
		t.Errorf("expected no windows at or below threshold, got %v / %v", left, right)
	}
}

func TestWindows_FarFromEnd(t *testing.T) {
	m := New(10, 1, nil)

	left, right := m.Windows()
	assertPages(t, "left", left, []int{1, 2, 3})
	assertPages(t, "right", right, []int{9, 10})

	if !strings.Contains(m.View(), "…") {
		t.Error("expected ellipsis between windows")
	}
}

func TestWindows_NearEnd(t *testing.T) {
	// Distance to last page is 3: window straddles the current page.
	m := New(10, 7, nil)

	left, right := m.Windows()
	assertPages(t, "left", left, []int{6, 7})
	assertPages(t, "right", right, []int{9, 10})
}

func TestWindows_AtEnd(t *testing.T) {
	m := New(10, 10, nil)

	left, right := m.Windows()
	assertPages(t, "left", left, []int{7, 8})
	assertPages(t, "right", right, []int{9, 10})
}

func TestPrev_AtFirstPageIsNoOp(t *testing.T) {
	var fired []int
	m := New(10, 1, func(page int) { fired = append(fired, page) })

	m.Prev()

	if m.Current() != 1 {
		t.Errorf("expected current to stay 1, got %d", m.Current())
	}
	if len(fired) != 0 {
		t.Errorf("expected no onChange for out-of-range step, got %v", fired)
	}
}

func TestNext_AtLastPageIsNoOp(t *testing.T) {
	var fired []int
	m := New(10, 10, func(page int) { fired = append(fired, page) })

	m.Next()

	if m.Current() != 10 {
		t.Errorf("expected current to stay 10, got %d", m.Current())
	}
	if len(fired) != 0 {
		t.Errorf("expected no onChange, got %v", fired)
	}
}

func TestSelect_FiresOnChangeAndRecomputes(t *testing.T) {
	var fired []int
	m := New(10, 1, func(page int) { fired = append(fired, page) })

	m.Select(5)

	if m.Current() != 5 {
		t.Errorf("expected current 5, got %d", m.Current())
	}
	if len(fired) != 1 || fired[0] != 5 {
		t.Errorf("expected single onChange(5), got %v", fired)
	}

	left, _ := m.Windows()
	assertPages(t, "left", left, []int{5, 6, 7})
}

func TestSelect_OutOfRangeIgnored(t *testing.T) {
	var fired []int
	m := New(10, 3, func(page int) { fired = append(fired, page) })

	m.Select(0)
	m.Select(11)

	if m.Current() != 3 || len(fired) != 0 {
		t.Errorf("expected out-of-range selects ignored, current=%d fired=%v", m.Current(), fired)
	}
}

func TestSetTotal_ClampsCurrent(t *testing.T) {
	m := New(10, 9, nil)
	m.SetTotal(4)

	if m.Current() != 4 {
		t.Errorf("expected current clamped to 4, got %d", m.Current())
	}
	left, right := m.Windows()
	if left != nil || right != nil {
		t.Errorf("expected windowing off for total 4, got %v / %v", left, right)
	}
}

func TestSetWindow(t *testing.T) {
	m := New(20, 1, nil)
	m.SetWindow(5)

	left, _ := m.Windows()
	assertPages(t, "left", left, []int{1, 2, 3, 4, 5})
}

func TestView_EmptyForZeroTotal(t *testing.T) {
	if out := New(0, 1, nil).View(); out != "" {
		t.Errorf("expected empty strip, got %q", out)
	}
}

func assertPages(t *testing.T, label string, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s window = %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s window = %v, want %v", label, got, want)
		}
	}
}
