package resort_web

import (
	"fmt"
	"time"

	"alpenworks.io/resort-services/internal/resort"
)

// Binary visual weight: the selected lift gets the emphasized stroke,
// everything else shares the muted one.
const (
	strokeSelected      = "#1b2a4a"
	strokeMuted         = "#8fa3b0"
	strokeWidthSelected = 4
	strokeWidthMuted    = 2

	dashClosed = "7 5"

	markerRadius         = 9
	markerRadiusSelected = 14
)

func BuildMapPageVM(lifts []resort.Lift, selected, session string, pollSeconds int, now time.Time) MapPageVM {
	if pollSeconds <= 0 {
		pollSeconds = 5
	}
	return MapPageVM{
		Title:       "Resort Map",
		Session:     session,
		Width:       resort.MapWidth,
		Height:      resort.MapHeight,
		PollSeconds: pollSeconds,
		Overlay:     BuildMapOverlayVM(lifts, selected, now),
	}
}

func BuildMapOverlayVM(lifts []resort.Lift, selected string, now time.Time) MapOverlayVM {
	return MapOverlayVM{
		SelectedLiftID: selected,
		UpdatedAt:      now.Format("15:04:05"),
		Paths:          buildPaths(lifts, selected),
		Markers:        buildMarkers(lifts, selected),
		Rows:           buildRows(lifts, selected),
	}
}

func buildPaths(lifts []resort.Lift, selected string) []PathVM {
	paths := make([]PathVM, 0, len(lifts))
	for _, l := range lifts {
		vm := PathVM{
			LiftID:      l.ID,
			D:           resort.PathData(l.Path),
			Stroke:      strokeMuted,
			StrokeWidth: strokeWidthMuted,
			Selected:    l.ID == selected,
		}
		if vm.Selected {
			vm.Stroke = strokeSelected
			vm.StrokeWidth = strokeWidthSelected
		}
		// Closed lifts dash regardless of selection.
		if l.Status.Dashed() {
			vm.DashArray = dashClosed
		}
		paths = append(paths, vm)
	}
	return paths
}

func buildMarkers(lifts []resort.Lift, selected string) []MarkerVM {
	markers := make([]MarkerVM, 0, len(lifts))
	var selectedMarker *MarkerVM
	for _, l := range lifts {
		anchor := l.Anchor()
		vm := MarkerVM{
			LiftID:   l.ID,
			X:        anchor.X,
			Y:        anchor.Y,
			Fill:     l.Status.Color(),
			Glyph:    l.Type.Glyph(),
			Radius:   markerRadius,
			Selected: l.ID == selected,
		}
		if vm.Selected {
			vm.Radius = markerRadiusSelected
			selectedMarker = &vm
			continue
		}
		markers = append(markers, vm)
	}
	// Selected marker last so it stacks above the baseline markers.
	if selectedMarker != nil {
		markers = append(markers, *selectedMarker)
	}
	return markers
}

func buildRows(lifts []resort.Lift, selected string) []LiftRowVM {
	rows := make([]LiftRowVM, 0, len(lifts))
	for _, l := range lifts {
		rows = append(rows, LiftRowVM{
			LiftID:          l.ID,
			Name:            l.Name,
			StatusBadge:     l.Status.Badge(),
			StatusColor:     l.Status.Color(),
			DifficultyBadge: l.Difficulty.Badge(),
			DifficultyColor: l.Difficulty.Color(),
			Wait:            formatWait(l.WaitTime),
			Selected:        l.ID == selected,
		})
	}
	return rows
}

func BuildLiftDetailVM(l resort.Lift) LiftDetailVM {
	return LiftDetailVM{
		LiftID:          l.ID,
		Name:            l.Name,
		StatusBadge:     l.Status.Badge(),
		StatusColor:     l.Status.Color(),
		DifficultyBadge: l.Difficulty.Badge(),
		DifficultyColor: l.Difficulty.Color(),
		Wait:            formatWait(l.WaitTime),
		Glyph:           l.Type.Glyph(),
		Description:     l.Description,
		ImageURL:        l.ImageURL,
		WebcamURL:       l.WebcamURL,
	}
}

func formatWait(minutes int) string {
	return fmt.Sprintf("%d minutes", minutes)
}
