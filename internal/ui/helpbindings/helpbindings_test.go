package helpbindings

import (
	"strings"
	"testing"

	"github.com/llehouerou/vitrine/internal/ui/testutil"
)

func newTestHelp(height int, contexts ...string) (*Model, *testutil.PopupHarness) {
	m := New()
	m.SetContexts(contexts)
	m.SetSize(80, height)
	return &m, testutil.NewPopupHarness(&m)
}

func TestHelpBindings_Close(t *testing.T) {
	for _, key := range []string{"esc", "q", "?"} {
		t.Run(key, func(t *testing.T) {
			_, h := newTestHelp(24, "global")

			h.Press(key)

			if _, ok := h.LastAction().(Close); !ok {
				t.Fatalf("last action = %#v, want Close", h.LastAction())
			}
		})
	}
}

func TestHelpBindings_Scroll(t *testing.T) {
	for _, keys := range [][2]string{{"down", "up"}, {"j", "k"}} {
		t.Run(keys[0], func(t *testing.T) {
			m, h := newTestHelp(8, "global", "albums", "gallery", "preview")

			h.Press(keys[0], keys[0], keys[0])
			afterDown := m.scrollOffset
			if afterDown == 0 {
				t.Fatal("scroll offset should increase after scrolling down")
			}

			h.Press(keys[1])
			if m.scrollOffset != afterDown-1 {
				t.Errorf("scroll offset = %d, want %d", m.scrollOffset, afterDown-1)
			}
		})
	}
}

func TestHelpBindings_ScrollUpAtTopDoesNothing(t *testing.T) {
	m, h := newTestHelp(24, "global")

	h.Press("up", "k")

	if m.scrollOffset != 0 {
		t.Errorf("scroll offset = %d, want 0 when at top", m.scrollOffset)
	}
	if len(h.Actions()) != 0 {
		t.Error("scrolling should not close the popup")
	}
}

func TestHelpBindings_View(t *testing.T) {
	_, h := newTestHelp(100, "preview", "global")

	for _, want := range []string{"Help", "close", "Global", "Preview"} {
		if !h.ViewContains(want) {
			t.Errorf("view missing %q:\n%s", want, h.View())
		}
	}

	// Categories keep their fixed order whatever order the contexts came in.
	view := h.View()
	if strings.Index(view, "Global") > strings.Index(view, "Preview") {
		t.Error("Global should appear before Preview")
	}
}

func TestHelpBindings_EmptyViewWhenNoSize(t *testing.T) {
	m := New()
	m.SetContexts([]string{"global"})
	h := testutil.NewPopupHarness(&m)

	if h.View() != "" {
		t.Errorf("view = %q, want empty when no size", h.View())
	}
}

func TestHelpBindings_SetContextsResetsScroll(t *testing.T) {
	m, h := newTestHelp(8, "global", "albums", "gallery", "preview")
	h.Press("down", "down")
	if m.scrollOffset == 0 {
		t.Fatal("expected to scroll")
	}

	m.SetContexts([]string{"global"})

	if m.scrollOffset != 0 {
		t.Errorf("scroll offset = %d after SetContexts, want 0", m.scrollOffset)
	}
}

func TestHelpBindings_SpaceKeyIsNamed(t *testing.T) {
	_, h := newTestHelp(100, "gallery")

	if !h.ViewContains("space, x") {
		t.Errorf("view missing the space binding:\n%s", h.View())
	}
}

func TestKeyLabel(t *testing.T) {
	if got := keyLabel([]string{" ", "x"}); got != "space, x" {
		t.Errorf("keyLabel = %q, want %q", got, "space, x")
	}
}
