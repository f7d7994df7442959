package resort_web

// View models double as template data and as the /api/map JSON
// projection.

// PathVM is one lift's route line in the SVG overlay layer.
type PathVM struct {
	LiftID      string `json:"lift_id"`
	D           string `json:"d"` // move-then-line-to descriptor
	Stroke      string `json:"stroke"`
	StrokeWidth int    `json:"stroke_width"`
	DashArray   string `json:"dash_array,omitempty"` // empty renders solid
	Selected    bool   `json:"selected"`
}

// MarkerVM is one lift's marker, anchored at its route origin.
// Markers render in slice order, so the selected marker sits last and
// stacks on top.
type MarkerVM struct {
	LiftID   string  `json:"lift_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Fill     string  `json:"fill"`
	Glyph    string  `json:"glyph"`
	Radius   int     `json:"radius"`
	Selected bool    `json:"selected"`
}

// LiftRowVM is one entry in the selectable lift list.
type LiftRowVM struct {
	LiftID          string `json:"lift_id"`
	Name            string `json:"name"`
	StatusBadge     string `json:"status_badge"`
	StatusColor     string `json:"status_color"`
	DifficultyBadge string `json:"difficulty_badge"`
	DifficultyColor string `json:"difficulty_color"`
	Wait            string `json:"wait"`
	Selected        bool   `json:"selected"`
}

// LiftDetailVM is the hover-revealed detail panel.
type LiftDetailVM struct {
	LiftID          string `json:"lift_id"`
	Name            string `json:"name"`
	StatusBadge     string `json:"status_badge"`
	StatusColor     string `json:"status_color"`
	DifficultyBadge string `json:"difficulty_badge"`
	DifficultyColor string `json:"difficulty_color"`
	Wait            string `json:"wait"`
	Glyph           string `json:"glyph"`
	Description     string `json:"description,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	WebcamURL       string `json:"webcam_url,omitempty"`
}

// MapOverlayVM is the derived presentation for one selection state:
// the path overlay, the marker layer, and the lift list.
type MapOverlayVM struct {
	SelectedLiftID string      `json:"selected_lift_id"`
	UpdatedAt      string      `json:"updated_at"`
	Paths          []PathVM    `json:"paths"`
	Markers        []MarkerVM  `json:"markers"`
	Rows           []LiftRowVM `json:"rows"`
}

// MapPageVM is the full map page.
type MapPageVM struct {
	Title       string
	Session     string
	Width       int
	Height      int
	PollSeconds int
	Overlay     MapOverlayVM
}
