package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"alpenworks.io/resort-services/internal/common"
	"alpenworks.io/resort-services/internal/resort"
)

// Nominatim requires an identifying agent on every request.
var userAgent = "resort-services/" + common.Version

const (
	nominatimURL = "https://nominatim.openstreetmap.org/search"
	overpassURL  = "https://overpass-api.de/api/interpreter"

	// Lifts are pulled from a disc around the geocoded point rather
	// than the (often sprawling) administrative boundary.
	searchRadiusMeters = 5000

	defaultCapacity = 1800
	defaultWaitTime = 5
)

// Bounds is the geographic bounding box of the resort area, used to
// project routes into the map canvas.
type Bounds struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

type Extractor struct {
	Client *http.Client
}

func NewExtractor() *Extractor {
	return &Extractor{Client: &http.Client{Timeout: 30 * time.Second}}
}

type nominatimResult struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	BoundingBox []string `json:"boundingbox"`
	DisplayName string   `json:"display_name"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

func (ex *Extractor) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := ex.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// Geocode resolves an area name to its centre point and bounding box.
func (ex *Extractor) Geocode(ctx context.Context, area string) (lat, lon float64, bounds Bounds, err error) {
	query := url.Values{}
	query.Set("q", area)
	query.Set("format", "json")
	query.Set("limit", "1")

	var results []nominatimResult
	if err = ex.getJSON(ctx, nominatimURL+"?"+query.Encode(), &results); err != nil {
		return 0, 0, Bounds{}, fmt.Errorf("nominatim: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, Bounds{}, fmt.Errorf("nominatim: no match for %q", area)
	}

	result := results[0]
	if lat, err = strconv.ParseFloat(result.Lat, 64); err != nil {
		return 0, 0, Bounds{}, fmt.Errorf("nominatim lat: %w", err)
	}
	if lon, err = strconv.ParseFloat(result.Lon, 64); err != nil {
		return 0, 0, Bounds{}, fmt.Errorf("nominatim lon: %w", err)
	}

	// Nominatim box order is [minlat, maxlat, minlon, maxlon].
	if len(result.BoundingBox) != 4 {
		return 0, 0, Bounds{}, fmt.Errorf("nominatim: bounding box has %d entries", len(result.BoundingBox))
	}
	bb := make([]float64, 4)
	for i, s := range result.BoundingBox {
		if bb[i], err = strconv.ParseFloat(s, 64); err != nil {
			return 0, 0, Bounds{}, fmt.Errorf("nominatim bounding box: %w", err)
		}
	}
	bounds = Bounds{MinLon: bb[2], MinLat: bb[0], MaxLon: bb[3], MaxLat: bb[1]}

	return lat, lon, bounds, nil
}

// QueryAerialways fetches every aerialway way (with its member nodes)
// around the given point.
func (ex *Extractor) QueryAerialways(ctx context.Context, lat, lon float64) (overpassResponse, error) {
	overpassQuery := fmt.Sprintf(`[out:json][timeout:60];
(
  way["aerialway"](around:%d,%f,%f);
);
out body;
>;
out skel qt;`, searchRadiusMeters, lat, lon)

	form := url.Values{}
	form.Set("data", overpassQuery)

	req, err := http.NewRequestWithContext(ctx, "POST", overpassURL, strings.NewReader(form.Encode()))
	if err != nil {
		return overpassResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := ex.Client.Do(req)
	if err != nil {
		return overpassResponse{}, fmt.Errorf("overpass: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return overpassResponse{}, fmt.Errorf("overpass: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return overpassResponse{}, fmt.Errorf("overpass: %w", err)
	}

	var decoded overpassResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return overpassResponse{}, fmt.Errorf("overpass: %w", err)
	}
	return decoded, nil
}

// projectPoint maps a geographic coordinate into map canvas pixels by
// linear interpolation across the area's bounding box.
func projectPoint(lon, lat float64, bounds Bounds) resort.Point {
	x := (lon - bounds.MinLon) / (bounds.MaxLon - bounds.MinLon) * resort.MapWidth
	y := (lat - bounds.MinLat) / (bounds.MaxLat - bounds.MinLat) * resort.MapHeight
	return resort.Point{X: x, Y: y}
}

func liftTypeFor(aerialway string) resort.Type {
	switch aerialway {
	case "gondola", "cable_car", "mixed_lift":
		return resort.TypeExpress
	case "chair_lift", "drag_lift", "t-bar", "platter":
		return resort.TypeQuad
	case "magic_carpet", "conveyor":
		return resort.TypeMagicCarpet
	default:
		return resort.TypeQuad
	}
}

func capacityFor(tags map[string]string) int {
	if raw, ok := tags["aerialway:capacity"]; ok {
		if capacity, err := strconv.Atoi(raw); err == nil && capacity > 0 {
			return capacity
		}
	}
	return defaultCapacity
}

func difficultyFor(tags map[string]string) resort.Difficulty {
	if difficulty, err := resort.ParseDifficulty(tags["piste:difficulty"]); err == nil {
		return difficulty
	}
	return resort.DifficultyIntermediate
}

// BuildLifts turns an Overpass response into the lift collection. Ways
// with fewer than two resolvable coordinates are skipped.
func BuildLifts(response overpassResponse, bounds Bounds) []resort.Lift {
	nodes := make(map[int64]overpassElement)
	for _, el := range response.Elements {
		if el.Type == "node" {
			nodes[el.ID] = el
		}
	}

	var lifts []resort.Lift
	for _, el := range response.Elements {
		if el.Type != "way" {
			continue
		}

		path := make([]resort.Point, 0, len(el.Nodes))
		for _, nodeID := range el.Nodes {
			node, ok := nodes[nodeID]
			if !ok {
				continue
			}
			path = append(path, projectPoint(node.Lon, node.Lat, bounds))
		}
		if len(path) < 2 {
			continue
		}

		name := el.Tags["name"]
		if name == "" {
			name = "Unnamed Lift"
		}

		capacity := capacityFor(el.Tags)
		lifts = append(lifts, resort.Lift{
			ID:          fmt.Sprintf("way-%d", el.ID),
			Name:        name,
			Status:      resort.StatusOpen,
			Type:        liftTypeFor(el.Tags["aerialway"]),
			Difficulty:  difficultyFor(el.Tags),
			Path:        path,
			WaitTime:    defaultWaitTime,
			Capacity:    capacity,
			CurrentLoad: capacity / 2,
			Description: el.Tags["description"],
		})
	}

	sort.Slice(lifts, func(i, j int) bool { return lifts[i].ID < lifts[j].ID })
	return lifts
}

// ExtractLifts runs the full pipeline: geocode the area, query its
// aerialways and project them into the map canvas.
func (ex *Extractor) ExtractLifts(ctx context.Context, area string) ([]resort.Lift, Bounds, error) {
	lat, lon, bounds, err := ex.Geocode(ctx, area)
	if err != nil {
		return nil, Bounds{}, err
	}

	response, err := ex.QueryAerialways(ctx, lat, lon)
	if err != nil {
		return nil, Bounds{}, err
	}

	lifts := BuildLifts(response, bounds)
	if err := resort.ValidateCollection(lifts); err != nil {
		return nil, Bounds{}, fmt.Errorf("extracted collection: %w", err)
	}
	return lifts, bounds, nil
}
