package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	database "alpenworks.io/resort-services/internal/db"
	"alpenworks.io/resort-services/internal/resort"
)

const liftColumns = `id, name, status, type, difficulty, path, wait_time,
	capacity, current_load, description, image_url, webcam_url`

// PostgresStore serves lifts from the ski_lifts table. The path column
// holds the route as a JSON array of [x, y] pairs, mirroring the seed
// file format.
type PostgresStore struct {
	db *database.Database
}

func NewPostgresStore(db *database.Database) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Lifts(ctx context.Context) ([]resort.Lift, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM ski_lifts ORDER BY name", liftColumns))
	if err != nil {
		return nil, fmt.Errorf("select lifts: %w", err)
	}
	defer rows.Close()

	var lifts []resort.Lift
	for rows.Next() {
		l, err := scanLift(rows.Scan)
		if err != nil {
			return nil, err
		}
		lifts = append(lifts, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select lifts: %w", err)
	}

	if err := resort.ValidateCollection(lifts); err != nil {
		return nil, fmt.Errorf("ski_lifts table: %w", err)
	}
	return lifts, nil
}

func (s *PostgresStore) Lift(ctx context.Context, id string) (resort.Lift, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM ski_lifts WHERE id = $1", liftColumns), id)

	l, err := scanLift(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", id, resort.ErrUnknownLift)
	}
	if err != nil {
		return resort.Lift{}, err
	}
	return l, nil
}

func scanLift(scan func(...any) error) (resort.Lift, error) {
	var (
		l        resort.Lift
		status   string
		liftType string
		diff     string
		pathJSON []byte
	)

	err := scan(&l.ID, &l.Name, &status, &liftType, &diff, &pathJSON,
		&l.WaitTime, &l.Capacity, &l.CurrentLoad,
		&l.Description, &l.ImageURL, &l.WebcamURL)
	if err != nil {
		return resort.Lift{}, err
	}

	if l.Status, err = resort.ParseStatus(status); err != nil {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", l.ID, err)
	}
	if l.Type, err = resort.ParseType(liftType); err != nil {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", l.ID, err)
	}
	if l.Difficulty, err = resort.ParseDifficulty(diff); err != nil {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", l.ID, err)
	}
	if l.Path, err = decodePathJSON(pathJSON); err != nil {
		return resort.Lift{}, fmt.Errorf("lift %s: %w", l.ID, err)
	}
	return l, nil
}

func decodePathJSON(raw []byte) ([]resort.Point, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("path column: %w", err)
	}

	path := make([]resort.Point, 0, len(pairs))
	for _, pair := range pairs {
		path = append(path, resort.Point{X: pair[0], Y: pair[1]})
	}
	return path, nil
}

// EncodePathJSON is the inverse of the path column decoding, used by
// the ingest loader.
func EncodePathJSON(path []resort.Point) ([]byte, error) {
	pairs := make([][2]float64, 0, len(path))
	for _, p := range path {
		pairs = append(pairs, [2]float64{p.X, p.Y})
	}
	return json.Marshal(pairs)
}
