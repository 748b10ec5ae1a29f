package workouts

import (
	"context"
	"fmt"
	"sort"
	"time"
)

type repoMock struct {
	workouts map[int]*WorkoutDetails
	// known exercise ids and names, the mock's stand-in for the FK check
	exercises map[int]string
	nextID    int
}

func NewMockWorkoutsRepo(knownExercises map[int]string) *repoMock {
	if knownExercises == nil {
		knownExercises = make(map[int]string)
	}
	return &repoMock{
		workouts:  make(map[int]*WorkoutDetails),
		exercises: knownExercises,
		nextID:    1,
	}
}

func (r *repoMock) List(_ context.Context) ([]Workout, error) {
	workouts := make([]Workout, 0, len(r.workouts))
	for _, details := range r.workouts {
		w := details.Workout
		w.ExerciseCount = len(details.Exercises)
		workouts = append(workouts, w)
	}
	sort.Slice(workouts, func(i, j int) bool {
		if workouts[i].Date != workouts[j].Date {
			return workouts[i].Date > workouts[j].Date
		}
		return workouts[i].CreatedAt.After(workouts[j].CreatedAt)
	})
	return workouts, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*WorkoutDetails, error) {
	details, ok := r.workouts[id]
	if !ok {
		return nil, ErrWorkoutNotFound
	}
	return details, nil
}

func (r *repoMock) Add(_ context.Context, req NewWorkoutRequest) (*Workout, error) {
	// all-or-nothing: check every entry before writing anything
	for _, entry := range req.Exercises {
		if _, ok := r.exercises[entry.ExerciseID]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownExercise, entry.ExerciseID)
		}
	}

	workout := Workout{
		ID:              r.nextID,
		Date:            req.Date,
		Title:           req.Title,
		Notes:           req.Notes,
		DurationMinutes: req.DurationMinutes,
		CreatedAt:       time.Now(),
		ExerciseCount:   len(req.Exercises),
	}
	r.nextID++

	details := &WorkoutDetails{Workout: workout}
	for i, entry := range req.Exercises {
		details.Exercises = append(details.Exercises, WorkoutExercise{
			ID:           i + 1,
			WorkoutID:    workout.ID,
			ExerciseID:   entry.ExerciseID,
			Sets:         entry.Sets,
			Reps:         entry.Reps,
			Weight:       entry.Weight,
			Notes:        entry.Notes,
			ExerciseName: r.exercises[entry.ExerciseID],
		})
	}
	r.workouts[workout.ID] = details

	return &workout, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.workouts[id]; !ok {
		return ErrWorkoutNotFound
	}
	delete(r.workouts, id)
	return nil
}
