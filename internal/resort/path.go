package resort

import (
	"strconv"
	"strings"
)

// Map canvas dimensions. Ingest projects geographic routes into this
// pixel space and the web overlay renders it 1:1.
const (
	MapWidth  = 800
	MapHeight = 600
)

// PathData joins a route into an SVG path descriptor: move to the
// first point, then a line to each subsequent point in original order.
func PathData(path []Point) string {
	var b strings.Builder
	for i, p := range path {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(formatCoord(p.X))
		b.WriteString(",")
		b.WriteString(formatCoord(p.Y))
	}
	return b.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
