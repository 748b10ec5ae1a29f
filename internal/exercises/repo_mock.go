package exercises

import (
	"context"
	"sort"
)

type repoMock struct {
	exercises map[int]*Exercise
	nextID    int
}

func NewMockExercisesRepo() *repoMock {
	return &repoMock{
		exercises: make(map[int]*Exercise),
		nextID:    1,
	}
}

func (r *repoMock) Add(_ context.Context, exercise Exercise) (*Exercise, error) {
	for _, e := range r.exercises {
		if e.Name == exercise.Name {
			return nil, ErrExerciseExists
		}
	}
	exercise.ID = r.nextID
	r.nextID++
	r.exercises[exercise.ID] = &exercise
	return &exercise, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, ErrExerciseNotFound
	}
	return e, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.exercises[id]; !ok {
		return ErrExerciseNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r *repoMock) ListAll(_ context.Context, params ListParams) ([]Exercise, error) {
	result := make([]Exercise, 0)
	for _, e := range r.exercises {
		if params.Category != "" && e.Category != params.Category {
			continue
		}
		if params.MuscleGroup != "" && e.MuscleGroup != params.MuscleGroup {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].MuscleGroup != result[j].MuscleGroup {
			return result[i].MuscleGroup < result[j].MuscleGroup
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *repoMock) Categories(_ context.Context) (*Categories, error) {
	categoriesSet := make(map[string]struct{})
	muscleGroupsSet := make(map[string]struct{})
	for _, e := range r.exercises {
		categoriesSet[e.Category] = struct{}{}
		muscleGroupsSet[e.MuscleGroup] = struct{}{}
	}

	categories := make([]string, 0, len(categoriesSet))
	for c := range categoriesSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	muscleGroups := make([]string, 0, len(muscleGroupsSet))
	for mg := range muscleGroupsSet {
		muscleGroups = append(muscleGroups, mg)
	}
	sort.Strings(muscleGroups)

	return &Categories{
		Categories:   categories,
		MuscleGroups: muscleGroups,
	}, nil
}
