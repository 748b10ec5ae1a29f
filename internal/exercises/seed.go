package exercises

import (
	"context"
	"fmt"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// starter exercise library, inserted once when the exercise table is empty
var seedExercises = []Exercise{
	// Chest
	{Name: "Bench Press", Category: "Strength", MuscleGroup: "Chest", Description: "Classic barbell bench press for chest development"},
	{Name: "Incline Dumbbell Press", Category: "Strength", MuscleGroup: "Chest", Description: "Upper chest focused dumbbell press"},
	{Name: "Push-Up", Category: "Bodyweight", MuscleGroup: "Chest", Description: "Classic bodyweight chest exercise"},
	{Name: "Cable Flyes", Category: "Isolation", MuscleGroup: "Chest", Description: "Cable crossover flyes for inner chest"},
	{Name: "Dips", Category: "Bodyweight", MuscleGroup: "Chest", Description: "Tricep and chest compound movement"},
	// Back
	{Name: "Pull-Up", Category: "Bodyweight", MuscleGroup: "Back", Description: "Classic lat-focused bodyweight pull"},
	{Name: "Deadlift", Category: "Strength", MuscleGroup: "Back", Description: "King of all compound movements"},
	{Name: "Barbell Row", Category: "Strength", MuscleGroup: "Back", Description: "Bent-over barbell row for upper back thickness"},
	{Name: "Lat Pulldown", Category: "Strength", MuscleGroup: "Back", Description: "Cable lat pulldown for lat width"},
	{Name: "Seated Cable Row", Category: "Strength", MuscleGroup: "Back", Description: "Seated cable row for mid-back"},
	// Legs
	{Name: "Squat", Category: "Strength", MuscleGroup: "Legs", Description: "King of lower body exercises"},
	{Name: "Romanian Deadlift", Category: "Strength", MuscleGroup: "Legs", Description: "Hip-hinge for hamstrings and glutes"},
	{Name: "Leg Press", Category: "Strength", MuscleGroup: "Legs", Description: "Quad-focused machine press"},
	{Name: "Leg Curl", Category: "Isolation", MuscleGroup: "Legs", Description: "Hamstring isolation curl machine"},
	{Name: "Calf Raise", Category: "Isolation", MuscleGroup: "Legs", Description: "Standing or seated calf raises"},
	{Name: "Lunges", Category: "Bodyweight", MuscleGroup: "Legs", Description: "Unilateral leg exercise"},
	// Shoulders
	{Name: "Overhead Press", Category: "Strength", MuscleGroup: "Shoulders", Description: "Barbell or dumbbell overhead press"},
	{Name: "Lateral Raise", Category: "Isolation", MuscleGroup: "Shoulders", Description: "Dumbbell lateral raise for side delts"},
	{Name: "Face Pull", Category: "Isolation", MuscleGroup: "Shoulders", Description: "Rear delt cable face pull"},
	{Name: "Arnold Press", Category: "Isolation", MuscleGroup: "Shoulders", Description: "Rotating dumbbell shoulder press"},
	// Arms
	{Name: "Barbell Curl", Category: "Isolation", MuscleGroup: "Biceps", Description: "Classic barbell bicep curl"},
	{Name: "Hammer Curl", Category: "Isolation", MuscleGroup: "Biceps", Description: "Neutral grip dumbbell curl"},
	{Name: "Tricep Pushdown", Category: "Isolation", MuscleGroup: "Triceps", Description: "Cable tricep pushdown"},
	{Name: "Skull Crusher", Category: "Isolation", MuscleGroup: "Triceps", Description: "Lying tricep extension"},
	// Core
	{Name: "Plank", Category: "Bodyweight", MuscleGroup: "Core", Description: "Isometric core hold"},
	{Name: "Crunches", Category: "Bodyweight", MuscleGroup: "Core", Description: "Classic abdominal crunch"},
	{Name: "Russian Twist", Category: "Bodyweight", MuscleGroup: "Core", Description: "Rotational core exercise"},
	{Name: "Hanging Leg Raise", Category: "Bodyweight", MuscleGroup: "Core", Description: "Hanging ab raise for lower abs"},
}

// Seed inserts the starter exercise library, but only if the table is empty.
func (r *Repo) Seed(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.seed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	count, err := r.Count(ctx)
	if err != nil {
		return fmt.Errorf("exercises count: %w", err)
	}
	if count > 0 {
		log.Debugf("exercise table not empty (%d rows), skipping seed", count)
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
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

	for _, e := range seedExercises {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO exercise (name, category, muscle_group, description)
				VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING;`,
			e.Name, e.Category, e.MuscleGroup, e.Description,
		); err != nil {
			return fmt.Errorf("seed exercise [%s]: %w", e.Name, err)
		}
	}

	log.Infof("seeded %d exercises", len(seedExercises))
	return nil
}
