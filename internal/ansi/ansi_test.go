package ansi

import "testing"

func TestPaint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled bool
		codes   []string
		want    string
	}{
		{"disabled", false, []string{Red}, "redux"},
		{"no codes", true, nil, "redux"},
		{"single", true, []string{Red}, Red + "redux" + Reset},
		{"stacked", true, []string{Bold, Green}, Bold + Green + "redux" + Reset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Paint(tt.enabled, "redux", tt.codes...); got != tt.want {
				t.Errorf("Paint = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	t.Parallel()
	in := Bold + Red + "✗ redux" + Reset + Dim + " (state)" + Reset
	if got, want := Strip(in), "✗ redux (state)"; got != want {
		t.Errorf("Strip = %q, want %q", got, want)
	}
}
