package stats

import (
	"context"
	"time"

	"github.com/2beens/workoutlog/internal/workouts"
)

// repoMock is a canned stats repo; set the fields to what the analyzer
// should see.
type repoMock struct {
	totalWorkouts  int
	totalExercises int
	totalVolume    float64
	workoutDates   []time.Time
	recentWorkouts []workouts.Workout
	volumeByMuscle []MuscleVolume
	progress       map[int][]ProgressSample
}

func NewMockStatsRepo() *repoMock {
	return &repoMock{
		progress: make(map[int][]ProgressSample),
	}
}

func (r *repoMock) TotalWorkouts(_ context.Context) (int, error) {
	return r.totalWorkouts, nil
}

func (r *repoMock) TotalExercises(_ context.Context) (int, error) {
	return r.totalExercises, nil
}

func (r *repoMock) TotalVolume(_ context.Context) (float64, error) {
	return r.totalVolume, nil
}

func (r *repoMock) WorkoutDates(_ context.Context) ([]time.Time, error) {
	return r.workoutDates, nil
}

func (r *repoMock) RecentWorkouts(_ context.Context, limit int) ([]workouts.Workout, error) {
	if len(r.recentWorkouts) > limit {
		return r.recentWorkouts[:limit], nil
	}
	return r.recentWorkouts, nil
}

func (r *repoMock) VolumeByMuscle(_ context.Context) ([]MuscleVolume, error) {
	return r.volumeByMuscle, nil
}

func (r *repoMock) ExerciseProgress(_ context.Context, exerciseID int) ([]ProgressSample, error) {
	return r.progress[exerciseID], nil
}
