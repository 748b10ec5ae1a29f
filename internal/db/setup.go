package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the three workout log tables. Deleting a workout cascades to
// its workout_exercise rows. The exercise_id column carries no foreign key:
// deleting a library exercise must leave old workout entries in place, with
// their (then orphaned) exercise reference; reads join them away. Entry
// inserts validate the exercise id themselves, inside the create transaction.
const schema = `
CREATE TABLE IF NOT EXISTS exercise (
	id           SERIAL PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	category     TEXT NOT NULL,
	muscle_group TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS workout (
	id               SERIAL PRIMARY KEY,
	date             DATE NOT NULL,
	title            TEXT NOT NULL,
	notes            TEXT NOT NULL DEFAULT '',
	duration_minutes INT NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS workout_exercise (
	id          SERIAL PRIMARY KEY,
	workout_id  INT NOT NULL REFERENCES workout(id) ON DELETE CASCADE,
	exercise_id INT NOT NULL,
	sets        INT NOT NULL DEFAULT 1,
	reps        INT NOT NULL DEFAULT 1,
	weight      REAL NOT NULL DEFAULT 0,
	notes       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS workout_exercise_workout_id_idx ON workout_exercise (workout_id);
CREATE INDEX IF NOT EXISTS workout_exercise_exercise_id_idx ON workout_exercise (exercise_id);
`

// Setup creates the schema if not present yet.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
