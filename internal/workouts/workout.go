package workouts

import "time"

// Workout is a logged training session on a calendar date.
// Date is the "YYYY-MM-DD" calendar day, with no time-of-day.
type Workout struct {
	ID              int       `json:"id"`
	Date            string    `json:"date"`
	Title           string    `json:"title"`
	Notes           string    `json:"notes"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	ExerciseCount   int       `json:"exercise_count"`
}

// WorkoutExercise is one exercise performed within a workout, joined with
// the library entry it references when read back.
type WorkoutExercise struct {
	ID           int     `json:"id"`
	WorkoutID    int     `json:"workout_id"`
	ExerciseID   int     `json:"exercise_id"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
	Notes        string  `json:"notes"`
	ExerciseName string  `json:"exercise_name"`
	Category     string  `json:"category"`
	MuscleGroup  string  `json:"muscle_group"`
}

// WorkoutDetails is a workout together with all its exercise entries.
type WorkoutDetails struct {
	Workout
	Exercises []WorkoutExercise `json:"exercises"`
}

// NewWorkoutRequest is the create payload: the workout row plus its
// nested exercise entries, inserted as one transaction.
type NewWorkoutRequest struct {
	Date            string            `json:"date"`
	Title           string            `json:"title"`
	Notes           string            `json:"notes"`
	DurationMinutes int               `json:"duration_minutes"`
	Exercises       []NewWorkoutEntry `json:"exercises"`
}

type NewWorkoutEntry struct {
	ExerciseID int     `json:"exercise_id"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Notes      string  `json:"notes"`
}

const dateLayout = "2006-01-02"

// Validate checks field presence and ranges before anything hits the store.
func (req *NewWorkoutRequest) Validate() string {
	if req.Date == "" || req.Title == "" {
		return "date and title are required"
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return "date must be in YYYY-MM-DD format"
	}
	if req.DurationMinutes < 0 {
		return "duration_minutes must be non-negative"
	}
	for _, entry := range req.Exercises {
		if entry.ExerciseID <= 0 {
			return "exercise_id must be a positive integer"
		}
		if entry.Sets <= 0 || entry.Reps <= 0 {
			return "sets and reps must be positive integers"
		}
		if entry.Weight < 0 {
			return "weight must be non-negative"
		}
	}
	return ""
}
