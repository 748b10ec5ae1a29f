package integration_testing

import (
	"context"

	"github.com/2beens/workoutlog/internal/exercises"
	"github.com/2beens/workoutlog/internal/workouts"
)

func (s *IntegrationTestSuite) entryRowCount() int {
	var count int
	err := s.dbPool.QueryRow(
		context.Background(),
		`SELECT COUNT(*) FROM workout_exercise;`,
	).Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *IntegrationTestSuite) addExercise(name, category, muscleGroup string) *exercises.Exercise {
	added, err := s.exercisesRepo.Add(context.Background(), exercises.Exercise{
		Name:        name,
		Category:    category,
		MuscleGroup: muscleGroup,
	})
	s.Require().NoError(err)
	s.Require().NotNil(added)
	return added
}

func (s *IntegrationTestSuite) TestExerciseAdd_duplicateName() {
	ctx := context.Background()
	s.addExercise("Bench Press", "Strength", "Chest")

	_, err := s.exercisesRepo.Add(ctx, exercises.Exercise{
		Name:        "Bench Press",
		Category:    "Machine",
		MuscleGroup: "Chest",
	})
	s.Require().ErrorIs(err, exercises.ErrExerciseExists)

	count, err := s.exercisesRepo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *IntegrationTestSuite) TestWorkoutAdd_rollsBackOnUnknownExercise() {
	ctx := context.Background()
	bench := s.addExercise("Bench Press", "Strength", "Chest")

	_, err := s.workoutsRepo.Add(ctx, workouts.NewWorkoutRequest{
		Date:  "2026-08-30",
		Title: "Push Day",
		Exercises: []workouts.NewWorkoutEntry{
			{ExerciseID: bench.ID, Sets: 3, Reps: 10, Weight: 80},
			{ExerciseID: 4242, Sets: 3, Reps: 10, Weight: 20},
		},
	})
	s.Require().ErrorIs(err, workouts.ErrUnknownExercise)

	// the whole create must have rolled back, valid entry included
	listed, err := s.workoutsRepo.List(ctx)
	s.Require().NoError(err)
	s.Empty(listed)
	s.Equal(0, s.entryRowCount())
}

func (s *IntegrationTestSuite) TestWorkoutDelete_cascadesEntries() {
	ctx := context.Background()
	bench := s.addExercise("Bench Press", "Strength", "Chest")
	squat := s.addExercise("Squat", "Strength", "Legs")

	added, err := s.workoutsRepo.Add(ctx, workouts.NewWorkoutRequest{
		Date:  "2026-08-30",
		Title: "Full Body",
		Exercises: []workouts.NewWorkoutEntry{
			{ExerciseID: bench.ID, Sets: 3, Reps: 10, Weight: 80},
			{ExerciseID: squat.ID, Sets: 5, Reps: 5, Weight: 120},
		},
	})
	s.Require().NoError(err)
	s.Equal(2, s.entryRowCount())

	s.Require().NoError(s.workoutsRepo.Delete(ctx, added.ID))

	_, err = s.workoutsRepo.Get(ctx, added.ID)
	s.Require().ErrorIs(err, workouts.ErrWorkoutNotFound)
	s.Equal(0, s.entryRowCount())
}

func (s *IntegrationTestSuite) TestExerciseDelete_softOrphansEntries() {
	ctx := context.Background()
	bench := s.addExercise("Bench Press", "Strength", "Chest")
	squat := s.addExercise("Squat", "Strength", "Legs")

	added, err := s.workoutsRepo.Add(ctx, workouts.NewWorkoutRequest{
		Date:  "2026-08-30",
		Title: "Full Body",
		Exercises: []workouts.NewWorkoutEntry{
			{ExerciseID: bench.ID, Sets: 3, Reps: 10, Weight: 80},
			{ExerciseID: squat.ID, Sets: 5, Reps: 5, Weight: 120},
		},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.exercisesRepo.Delete(ctx, bench.ID))

	// the orphaned entry row stays in the table
	s.Equal(2, s.entryRowCount())

	// but reads join it away
	details, err := s.workoutsRepo.Get(ctx, added.ID)
	s.Require().NoError(err)
	s.Require().Len(details.Exercises, 1)
	s.Equal(squat.ID, details.Exercises[0].ExerciseID)
	s.Equal("Squat", details.Exercises[0].ExerciseName)

	volumes, err := s.statsRepo.VolumeByMuscle(ctx)
	s.Require().NoError(err)
	s.Require().Len(volumes, 1)
	s.Equal("Legs", volumes[0].MuscleGroup)
}

func (s *IntegrationTestSuite) TestSeed_onlyWhenEmpty() {
	ctx := context.Background()

	s.Require().NoError(s.exercisesRepo.Seed(ctx))
	count, err := s.exercisesRepo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(28, count)

	// second run must be a no-op
	s.Require().NoError(s.exercisesRepo.Seed(ctx))
	count, err = s.exercisesRepo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(28, count)
}
