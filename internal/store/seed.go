package store

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"alpenworks.io/resort-services/internal/resort"
)

//go:embed seed/zauchensee.toml
var seedFS embed.FS

// DefaultSeedName identifies the embedded lift collection used when no
// seed path and no database are configured.
const DefaultSeedName = "seed/zauchensee.toml"

type seedFile struct {
	Lifts []seedLift `toml:"lifts"`
}

type seedLift struct {
	ID          string      `toml:"id"`
	Name        string      `toml:"name"`
	Status      string      `toml:"status"`
	Type        string      `toml:"type"`
	Difficulty  string      `toml:"difficulty"`
	Path        [][]float64 `toml:"path"`
	WaitTime    int         `toml:"wait_time"`
	Capacity    int         `toml:"capacity"`
	CurrentLoad int         `toml:"current_load"`
	Description string      `toml:"description,omitempty"`
	ImageURL    string      `toml:"image_url,omitempty"`
	WebcamURL   string      `toml:"webcam_url,omitempty"`
}

func (s seedLift) toLift() (resort.Lift, error) {
	status, err := resort.ParseStatus(s.Status)
	if err != nil {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", s.ID, err)
	}
	liftType, err := resort.ParseType(s.Type)
	if err != nil {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", s.ID, err)
	}
	difficulty, err := resort.ParseDifficulty(s.Difficulty)
	if err != nil {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", s.ID, err)
	}

	path := make([]resort.Point, 0, len(s.Path))
	for _, pair := range s.Path {
		if len(pair) != 2 {
			return resort.Lift{}, fmt.Errorf("lift %s: path point has %d coordinates, want 2", s.ID, len(pair))
		}
		path = append(path, resort.Point{X: pair[0], Y: pair[1]})
	}

	return resort.Lift{
		ID:          s.ID,
		Name:        s.Name,
		Status:      status,
		Type:        liftType,
		Difficulty:  difficulty,
		Path:        path,
		WaitTime:    s.WaitTime,
		Capacity:    s.Capacity,
		CurrentLoad: s.CurrentLoad,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		WebcamURL:   s.WebcamURL,
	}, nil
}

func fromLift(l resort.Lift) seedLift {
	path := make([][]float64, 0, len(l.Path))
	for _, p := range l.Path {
		path = append(path, []float64{p.X, p.Y})
	}
	return seedLift{
		ID:          l.ID,
		Name:        l.Name,
		Status:      string(l.Status),
		Type:        string(l.Type),
		Difficulty:  string(l.Difficulty),
		Path:        path,
		WaitTime:    l.WaitTime,
		Capacity:    l.Capacity,
		CurrentLoad: l.CurrentLoad,
		Description: l.Description,
		ImageURL:    l.ImageURL,
		WebcamURL:   l.WebcamURL,
	}
}

func decodeSeed(file seedFile) ([]resort.Lift, error) {
	lifts := make([]resort.Lift, 0, len(file.Lifts))
	for _, s := range file.Lifts {
		l, err := s.toLift()
		if err != nil {
			return nil, err
		}
		lifts = append(lifts, l)
	}
	if err := resort.ValidateCollection(lifts); err != nil {
		return nil, err
	}
	return lifts, nil
}

// SeedStore serves an immutable lift collection loaded from a TOML
// seed file.
type SeedStore struct {
	lifts []resort.Lift
	byID  map[string]resort.Lift
}

func newSeedStore(lifts []resort.Lift) *SeedStore {
	byID := make(map[string]resort.Lift, len(lifts))
	for _, l := range lifts {
		byID[l.ID] = l
	}
	return &SeedStore{lifts: lifts, byID: byID}
}

// NewEmbeddedSeedStore loads the lift collection compiled into the
// binary.
func NewEmbeddedSeedStore() (*SeedStore, error) {
	raw, err := seedFS.ReadFile(DefaultSeedName)
	if err != nil {
		return nil, fmt.Errorf("embedded seed: %w", err)
	}

	var file seedFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("embedded seed: %w", err)
	}

	lifts, err := decodeSeed(file)
	if err != nil {
		return nil, fmt.Errorf("embedded seed: %w", err)
	}
	return newSeedStore(lifts), nil
}

// LoadSeedStore loads a lift collection from a TOML seed file on disk.
func LoadSeedStore(path string) (*SeedStore, error) {
	var file seedFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}

	lifts, err := decodeSeed(file)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return newSeedStore(lifts), nil
}

// WriteSeedFile writes a lift collection as a TOML seed file, the
// format LoadSeedStore reads back.
func WriteSeedFile(path string, lifts []resort.Lift) error {
	if err := resort.ValidateCollection(lifts); err != nil {
		return err
	}

	out := seedFile{Lifts: make([]seedLift, 0, len(lifts))}
	for _, l := range lifts {
		out.Lifts = append(out.Lifts, fromLift(l))
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(out)
}

func (s *SeedStore) Lifts(ctx context.Context) ([]resort.Lift, error) {
	// Copy so callers cannot mutate the seeded collection.
	out := make([]resort.Lift, len(s.lifts))
	copy(out, s.lifts)
	return out, nil
}

func (s *SeedStore) Lift(ctx context.Context, id string) (resort.Lift, error) {
	l, ok := s.byID[id]
	if !ok {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", id, resort.ErrUnknownLift)
	}
	return l, nil
}
