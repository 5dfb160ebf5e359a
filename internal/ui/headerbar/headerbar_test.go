package headerbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vitrine/internal/ui/testutil"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		want    []string
		notWant []string
	}{
		{
			name:    "album list",
			state:   State{Max: 5},
			want:    []string{"vitrine", "0/5"},
			notWant: []string{"›"},
		},
		{
			name:  "inside album",
			state: State{Album: "Holidays", Selected: 3, Max: 5},
			want:  []string{"vitrine", "Holidays", "3/5"},
		},
		{
			name:  "pager",
			state: State{Album: "Holidays", Preview: "beach.jpg", Selected: 1, Max: 1},
			want:  []string{"Holidays", "beach.jpg", "1/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := testutil.StripANSI(Render(tt.state, 60))
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("header %q missing %q", out, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("header %q should not contain %q", out, w)
				}
			}
		})
	}
}

func TestRender_FitsWidth(t *testing.T) {
	s := State{Album: strings.Repeat("very long album name ", 10), Selected: 2, Max: 10}
	out := Render(s, 40)
	if w := lipgloss.Width(out); w != 40 {
		t.Errorf("width = %d, want 40", w)
	}
	if !strings.Contains(testutil.StripANSI(out), "2/10") {
		t.Error("badge must survive truncation")
	}
}

func TestRender_TooNarrow(t *testing.T) {
	if got := Render(State{Max: 1}, 5); got != "" {
		t.Errorf("Render at width 5 = %q, want empty", got)
	}
}
