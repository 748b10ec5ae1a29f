package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const dateLayout = "2006-01-02"

// Repo provides the read-only queries for the analyzer. No mutation here.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) TotalWorkouts(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.totalWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout;`).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

func (r *Repo) TotalExercises(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.totalExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exercise;`).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

func (r *Repo) TotalVolume(ctx context.Context) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.totalVolume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var total float64
	if err := r.db.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(sets * reps * weight), 0) FROM workout_exercise;`,
	).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// WorkoutDates returns the date of every workout (duplicates included),
// most recent first.
func (r *Repo) WorkoutDates(ctx context.Context) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.workoutDates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT date FROM workout ORDER BY date DESC;`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func (r *Repo) RecentWorkouts(ctx context.Context, limit int) (_ []workouts.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.recentWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT w.id, w.date, w.title, w.notes, w.duration_minutes, w.created_at, COUNT(we.id)
			FROM workout w
			LEFT JOIN workout_exercise we ON w.id = we.workout_id
			GROUP BY w.id
			ORDER BY w.date DESC, w.created_at DESC
			LIMIT $1;`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	recent := make([]workouts.Workout, 0, limit)
	for rows.Next() {
		var w workouts.Workout
		var date time.Time
		if err := rows.Scan(&w.ID, &date, &w.Title, &w.Notes, &w.DurationMinutes, &w.CreatedAt, &w.ExerciseCount); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Date = date.Format(dateLayout)
		recent = append(recent, w)
	}
	return recent, nil
}

// VolumeByMuscle sums volume per muscle group, biggest first. Entries whose
// exercise was deleted from the library drop out of the join.
func (r *Repo) VolumeByMuscle(ctx context.Context) (_ []MuscleVolume, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.volumeByMuscle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT e.muscle_group, SUM(we.sets * we.reps * we.weight) AS total_volume
			FROM workout_exercise we
			JOIN exercise e ON we.exercise_id = e.id
			GROUP BY e.muscle_group
			ORDER BY total_volume DESC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	volumes := make([]MuscleVolume, 0)
	for rows.Next() {
		var mv MuscleVolume
		if err := rows.Scan(&mv.MuscleGroup, &mv.TotalVolume); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		volumes = append(volumes, mv)
	}
	return volumes, nil
}

// ExerciseProgress returns every logged entry of the given exercise,
// oldest first, with volume computed in the query.
func (r *Repo) ExerciseProgress(ctx context.Context, exerciseID int) (_ []ProgressSample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.exerciseProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`SELECT w.date, we.sets, we.reps, we.weight,
				(we.sets * we.reps * we.weight) AS volume,
				e.name
			FROM workout_exercise we
			JOIN workout w ON we.workout_id = w.id
			JOIN exercise e ON we.exercise_id = e.id
			WHERE we.exercise_id = $1
			ORDER BY w.date ASC;`,
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	samples := make([]ProgressSample, 0)
	for rows.Next() {
		var s ProgressSample
		var date time.Time
		if err := rows.Scan(&date, &s.Sets, &s.Reps, &s.Weight, &s.Volume, &s.ExerciseName); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		s.Date = date.Format(dateLayout)
		samples = append(samples, s)
	}
	return samples, nil
}
