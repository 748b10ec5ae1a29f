package stats

import "github.com/2beens/workoutlog/internal/workouts"

// ProgressSample is one logged entry of an exercise, with its volume
// (sets * reps * weight) computed at query time.
type ProgressSample struct {
	Date         string  `json:"date"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
	Volume       float64 `json:"volume"`
	ExerciseName string  `json:"exercise_name"`
}

type MuscleVolume struct {
	MuscleGroup string  `json:"muscle_group"`
	TotalVolume float64 `json:"total_volume"`
}

// WeekCount is the number of workouts in one year-week bucket, e.g. "2026-W35".
type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// Summary is the dashboard payload: totals, the current streak and the
// recent/weekly breakdowns, all recomputed on every call.
type Summary struct {
	TotalWorkouts  int                `json:"totalWorkouts"`
	TotalVolume    float64            `json:"totalVolume"`
	TotalExercises int                `json:"totalExercises"`
	WeekWorkouts   int                `json:"weekWorkouts"`
	Streak         int                `json:"streak"`
	RecentWorkouts []workouts.Workout `json:"recentWorkouts"`
	VolumeByMuscle []MuscleVolume     `json:"volumeByMuscle"`
	WeeklyData     []WeekCount        `json:"weeklyData"`
}
