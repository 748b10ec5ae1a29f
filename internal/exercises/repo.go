package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise already exists")
)

// postgres unique_violation
const pgUniqueViolationCode = "23505"

type ListParams struct {
	Category    string
	MuscleGroup string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (name, category, muscle_group, description)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		exercise.Name, exercise.Category, exercise.MuscleGroup, exercise.Description,
	).Scan(&exercise.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return nil, ErrExerciseExists
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))

	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var e Exercise
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, category, muscle_group, description
			FROM exercise
			WHERE id = $1;`,
		id,
	).Scan(&e.ID, &e.Name, &e.Category, &e.MuscleGroup, &e.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	return &e, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// ListAll returns the exercises matching the given filters,
// ordered by muscle group and then name.
func (r *Repo) ListAll(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category", params.Category))
	span.SetAttributes(attribute.String("muscle_group", params.MuscleGroup))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, category, muscle_group, description
			FROM exercise
			WHERE ($1::text = '' OR category = $1)
			AND ($2::text = '' OR muscle_group = $2)
			ORDER BY muscle_group, name;`,
		params.Category, params.MuscleGroup,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.MuscleGroup, &e.Description); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}

	return exercises, nil
}

// Categories returns the distinct category and muscle group values present
// in the exercise table, each sorted ascending.
func (r *Repo) Categories(ctx context.Context) (_ *Categories, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.categories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	categories, err := r.distinctValues(ctx, `SELECT DISTINCT category FROM exercise ORDER BY category;`)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	muscleGroups, err := r.distinctValues(ctx, `SELECT DISTINCT muscle_group FROM exercise ORDER BY muscle_group;`)
	if err != nil {
		return nil, fmt.Errorf("distinct muscle groups: %w", err)
	}

	return &Categories{
		Categories:   categories,
		MuscleGroups: muscleGroups,
	}, nil
}

func (r *Repo) distinctValues(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}

func (r *Repo) Count(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exercise;`).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}
