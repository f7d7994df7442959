package resort

import "testing"

func TestStatusColorCoversEveryVariant(t *testing.T) {
	want := map[Status]string{
		StatusOpen:   "#2e7d32",
		StatusClosed: "#c62828",
		StatusHold:   "#f9a825",
	}
	for _, s := range AllStatuses {
		if got := s.Color(); got != want[s] {
			t.Errorf("%s.Color() = %q, want %q", s, got, want[s])
		}
	}
}

func TestOnlyClosedDashes(t *testing.T) {
	for _, s := range AllStatuses {
		want := s == StatusClosed
		if got := s.Dashed(); got != want {
			t.Errorf("%s.Dashed() = %v, want %v", s, got, want)
		}
	}
}

func TestStatusBadgeIsUppercased(t *testing.T) {
	if got := StatusHold.Badge(); got != "HOLD" {
		t.Fatalf("StatusHold.Badge() = %q, want HOLD", got)
	}
}

func TestTypeGlyphIsTotal(t *testing.T) {
	for _, ty := range AllTypes {
		if g := ty.Glyph(); g == "" || g == "?" {
			t.Errorf("%s.Glyph() fell through to %q", ty, g)
		}
	}
}

func TestDifficultyColorIsTotal(t *testing.T) {
	seen := map[string]Difficulty{}
	for _, d := range AllDifficulties {
		c := d.Color()
		if c == "" || c == "#9e9e9e" {
			t.Errorf("%s.Color() fell through to %q", d, c)
		}
		if prev, dup := seen[c]; dup {
			t.Errorf("difficulties %s and %s share color %s", prev, d, c)
		}
		seen[c] = d
	}
}
