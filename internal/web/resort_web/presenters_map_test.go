package resort_web

import (
	"testing"
	"time"

	"alpenworks.io/resort-services/internal/resort"
)

func fixtureLifts() []resort.Lift {
	return []resort.Lift{
		{
			ID:         "1",
			Name:       "Weltcup-Express",
			Status:     resort.StatusOpen,
			Type:       resort.TypeExpress,
			Difficulty: resort.DifficultyIntermediate,
			Path:       []resort.Point{{X: 120, Y: 150}, {X: 180, Y: 80}, {X: 250, Y: 50}},
			WaitTime:   7,
		},
		{
			ID:         "2",
			Name:       "Rosskopfbahn",
			Status:     resort.StatusClosed,
			Type:       resort.TypeQuad,
			Difficulty: resort.DifficultyAdvanced,
			Path:       []resort.Point{{X: 300, Y: 400}, {X: 350, Y: 300}},
			WaitTime:   0,
		},
		{
			ID:         "3",
			Name:       "Zauberteppich",
			Status:     resort.StatusHold,
			Type:       resort.TypeMagicCarpet,
			Difficulty: resort.DifficultyBeginner,
			Path:       []resort.Point{{X: 50, Y: 500}},
			WaitTime:   3,
		},
	}
}

var now = time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

func overlayFor(selected string) MapOverlayVM {
	return BuildMapOverlayVM(fixtureLifts(), selected, now)
}

func TestSelectedPathGetsEmphasizedStroke(t *testing.T) {
	vm := overlayFor("1")

	var selectedCount int
	for _, p := range vm.Paths {
		if p.Selected {
			selectedCount++
			if p.LiftID != "1" {
				t.Errorf("selected path is %s, want 1", p.LiftID)
			}
			if p.StrokeWidth <= strokeWidthMuted {
				t.Errorf("selected stroke width %d not emphasized", p.StrokeWidth)
			}
			if p.Stroke == strokeMuted {
				t.Errorf("selected path still muted")
			}
		} else if p.Stroke != strokeMuted || p.StrokeWidth != strokeWidthMuted {
			t.Errorf("unselected path %s not uniform muted: %+v", p.LiftID, p)
		}
	}
	if selectedCount != 1 {
		t.Fatalf("selected paths = %d, want exactly 1", selectedCount)
	}
}

func TestClosedLiftDashesIndependentOfSelection(t *testing.T) {
	for _, selected := range []string{"", "1", "2"} {
		vm := overlayFor(selected)
		for _, p := range vm.Paths {
			wantDashed := p.LiftID == "2"
			if gotDashed := p.DashArray != ""; gotDashed != wantDashed {
				t.Errorf("selected=%q path %s dashed=%v, want %v", selected, p.LiftID, gotDashed, wantDashed)
			}
		}
	}
}

func TestPathDescriptorStartsAtAnchor(t *testing.T) {
	vm := overlayFor("1")
	if vm.Paths[0].D != "M120,150 L180,80 L250,50" {
		t.Fatalf("path descriptor = %q", vm.Paths[0].D)
	}
}

func TestMarkersAnchorAtRouteOrigin(t *testing.T) {
	vm := overlayFor("")
	byID := map[string]MarkerVM{}
	for _, m := range vm.Markers {
		byID[m.LiftID] = m
	}
	if m := byID["1"]; m.X != 120 || m.Y != 150 {
		t.Errorf("marker 1 at (%v,%v), want (120,150)", m.X, m.Y)
	}
	if m := byID["3"]; m.X != 50 || m.Y != 500 {
		t.Errorf("marker 3 at (%v,%v), want (50,500)", m.X, m.Y)
	}
}

func TestSelectedMarkerEnlargedAndStackedLast(t *testing.T) {
	vm := overlayFor("1")

	last := vm.Markers[len(vm.Markers)-1]
	if last.LiftID != "1" || !last.Selected {
		t.Fatalf("last marker = %+v, want selected lift 1 on top", last)
	}
	if last.Radius <= markerRadius {
		t.Fatalf("selected marker radius %d not enlarged", last.Radius)
	}
	for _, m := range vm.Markers[:len(vm.Markers)-1] {
		if m.Radius != markerRadius {
			t.Errorf("baseline marker %s radius %d, want %d", m.LiftID, m.Radius, markerRadius)
		}
	}
}

func TestMarkerFillFollowsStatus(t *testing.T) {
	vm := overlayFor("")
	want := map[string]string{
		"1": resort.StatusOpen.Color(),
		"2": resort.StatusClosed.Color(),
		"3": resort.StatusHold.Color(),
	}
	for _, m := range vm.Markers {
		if m.Fill != want[m.LiftID] {
			t.Errorf("marker %s fill %q, want %q", m.LiftID, m.Fill, want[m.LiftID])
		}
	}
}

func TestSelectionReplacementLeavesOneSelectedRow(t *testing.T) {
	first := overlayFor("1")
	second := overlayFor("2")

	count := func(vm MapOverlayVM) (n int, id string) {
		for _, r := range vm.Rows {
			if r.Selected {
				n++
				id = r.LiftID
			}
		}
		return
	}

	if n, id := count(first); n != 1 || id != "1" {
		t.Fatalf("first selection: %d rows selected (%s), want exactly 1", n, id)
	}
	if n, id := count(second); n != 1 || id != "2" {
		t.Fatalf("second selection: %d rows selected (%s), want exactly 2's row", n, id)
	}
}

func TestDetailPanelFormatsWaitAndBadges(t *testing.T) {
	lift := fixtureLifts()[2] // hold, 3 minutes
	vm := BuildLiftDetailVM(lift)

	if vm.Wait != "3 minutes" {
		t.Errorf("wait = %q, want \"3 minutes\"", vm.Wait)
	}
	if vm.StatusBadge != "HOLD" {
		t.Errorf("status badge = %q, want HOLD", vm.StatusBadge)
	}
	if vm.DifficultyBadge != "BEGINNER" {
		t.Errorf("difficulty badge = %q", vm.DifficultyBadge)
	}
}

func TestNoSelectionRendersAllMuted(t *testing.T) {
	vm := overlayFor("")
	for _, p := range vm.Paths {
		if p.Selected {
			t.Errorf("path %s selected with empty selection", p.LiftID)
		}
	}
	for _, m := range vm.Markers {
		if m.Selected || m.Radius != markerRadius {
			t.Errorf("marker %s not baseline: %+v", m.LiftID, m)
		}
	}
}
