package ingest

import (
	"context"
	"fmt"

	database "alpenworks.io/resort-services/internal/db"
	"alpenworks.io/resort-services/internal/resort"
	"alpenworks.io/resort-services/internal/store"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ski_lifts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		type TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		path JSONB NOT NULL,
		wait_time INT NOT NULL DEFAULT 0,
		capacity INT NOT NULL DEFAULT 0,
		current_load INT NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		webcam_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS lift_status_samples (
		sample_id BIGSERIAL PRIMARY KEY,
		lift_id TEXT NOT NULL,
		queue_count INT NOT NULL,
		wait_minutes INT NOT NULL,
		sampled_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func EnsureSchema(ctx context.Context, db *database.Database) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const upsertLiftQuery = `INSERT INTO ski_lifts
	(id, name, status, type, difficulty, path, wait_time,
	 capacity, current_load, description, image_url, webcam_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	type = EXCLUDED.type,
	difficulty = EXCLUDED.difficulty,
	path = EXCLUDED.path,
	capacity = EXCLUDED.capacity,
	description = EXCLUDED.description`

// InsertLifts upserts the extracted collection. Re-running an extract
// refreshes geometry and metadata but leaves operational state (status,
// wait, load) to the status watcher.
func InsertLifts(ctx context.Context, db *database.Database, lifts []resort.Lift) error {
	for _, l := range lifts {
		pathJSON, err := store.EncodePathJSON(l.Path)
		if err != nil {
			return fmt.Errorf("lift %s: %w", l.ID, err)
		}

		_, err = db.ExecContext(ctx, upsertLiftQuery,
			l.ID, l.Name, string(l.Status), string(l.Type), string(l.Difficulty),
			pathJSON, l.WaitTime, l.Capacity, l.CurrentLoad,
			l.Description, l.ImageURL, l.WebcamURL)
		if err != nil {
			return fmt.Errorf("upsert lift %s: %w", l.ID, err)
		}
	}
	return nil
}
