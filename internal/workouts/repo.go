package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrUnknownExercise = errors.New("workout entry references unknown exercise")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns all workouts with their exercise entry counts,
// most recent date first, ties broken by creation time.
func (r *Repo) List(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT w.id, w.date, w.title, w.notes, w.duration_minutes, w.created_at, COUNT(we.id)
			FROM workout w
			LEFT JOIN workout_exercise we ON w.id = we.workout_id
			GROUP BY w.id
			ORDER BY w.date DESC, w.created_at DESC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}
	return workouts, nil
}

// Get returns a workout with its full sequence of exercise entries, each
// joined with the library exercise it references. Entries whose exercise
// was deleted from the library keep their row but are not returned.
func (r *Repo) Get(ctx context.Context, id int) (_ *WorkoutDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var details WorkoutDetails
	var date time.Time
	err = r.db.QueryRow(
		ctx,
		`SELECT id, date, title, notes, duration_minutes, created_at
			FROM workout
			WHERE id = $1;`,
		id,
	).Scan(&details.ID, &date, &details.Title, &details.Notes, &details.DurationMinutes, &details.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	details.Date = date.Format(dateLayout)

	rows, err := r.db.Query(
		ctx,
		`SELECT we.id, we.workout_id, we.exercise_id, we.sets, we.reps, we.weight, we.notes,
				e.name, e.category, e.muscle_group
			FROM workout_exercise we
			JOIN exercise e ON we.exercise_id = e.id
			WHERE we.workout_id = $1
			ORDER BY we.id;`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entry rows: %w", err)
	}

	details.Exercises = make([]WorkoutExercise, 0)
	for rows.Next() {
		var we WorkoutExercise
		if err := rows.Scan(
			&we.ID, &we.WorkoutID, &we.ExerciseID, &we.Sets, &we.Reps, &we.Weight, &we.Notes,
			&we.ExerciseName, &we.Category, &we.MuscleGroup,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		details.Exercises = append(details.Exercises, we)
	}
	details.ExerciseCount = len(details.Exercises)

	return &details, nil
}

// Add inserts the workout and all its exercise entries in one transaction.
// Any failed entry insert rolls the whole workout back, so a partially
// written workout is never observable.
func (r *Repo) Add(ctx context.Context, req NewWorkoutRequest) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entries", len(req.Exercises)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// all entries must reference library exercises before anything is written
	for _, entry := range req.Exercises {
		var exists bool
		if err = tx.QueryRow(
			ctx,
			`SELECT EXISTS(SELECT 1 FROM exercise WHERE id = $1);`,
			entry.ExerciseID,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check exercise %d: %w", entry.ExerciseID, err)
		}
		if !exists {
			err = fmt.Errorf("%w: %d", ErrUnknownExercise, entry.ExerciseID)
			return nil, err
		}
	}

	workout := Workout{
		Date:            req.Date,
		Title:           req.Title,
		Notes:           req.Notes,
		DurationMinutes: req.DurationMinutes,
		ExerciseCount:   len(req.Exercises),
	}
	err = tx.QueryRow(
		ctx,
		`INSERT INTO workout (date, title, notes, duration_minutes)
			VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;`,
		req.Date, req.Title, req.Notes, req.DurationMinutes,
	).Scan(&workout.ID, &workout.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	for _, entry := range req.Exercises {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO workout_exercise (workout_id, exercise_id, sets, reps, weight, notes)
				VALUES ($1, $2, $3, $4, $5, $6);`,
			workout.ID, entry.ExerciseID, entry.Sets, entry.Reps, entry.Weight, entry.Notes,
		); err != nil {
			return nil, fmt.Errorf("insert workout entry: %w", err)
		}
	}

	span.SetAttributes(attribute.Int("workout.id", workout.ID))

	return &workout, nil
}

// Delete removes the workout; its entries go with it via the FK cascade.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	workouts := make([]Workout, 0)
	for rows.Next() {
		var w Workout
		var date time.Time
		if err := rows.Scan(&w.ID, &date, &w.Title, &w.Notes, &w.DurationMinutes, &w.CreatedAt, &w.ExerciseCount); err != nil {
			return nil, err
		}
		w.Date = date.Format(dateLayout)
		workouts = append(workouts, w)
	}
	return workouts, nil
}
