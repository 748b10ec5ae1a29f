package stats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workouts"
)

const (
	recentWorkoutsLimit = 5
	weeklyDataDays      = 56
)

type statsRepo interface {
	TotalWorkouts(ctx context.Context) (int, error)
	TotalExercises(ctx context.Context) (int, error)
	TotalVolume(ctx context.Context) (float64, error)
	WorkoutDates(ctx context.Context) ([]time.Time, error)
	RecentWorkouts(ctx context.Context, limit int) ([]workouts.Workout, error)
	VolumeByMuscle(ctx context.Context) ([]MuscleVolume, error)
	ExerciseProgress(ctx context.Context, exerciseID int) ([]ProgressSample, error)
}

// Analyzer computes the summary statistics over the stored workout data.
// Everything is recomputed per call; the data volumes are personal-scale.
type Analyzer struct {
	repo statsRepo
	now  func() time.Time
}

func NewAnalyzer(repo statsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
		now:  time.Now,
	}
}

func (a *Analyzer) Summary(ctx context.Context) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	totalWorkouts, err := a.repo.TotalWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("total workouts: %w", err)
	}
	totalVolume, err := a.repo.TotalVolume(ctx)
	if err != nil {
		return nil, fmt.Errorf("total volume: %w", err)
	}
	totalExercises, err := a.repo.TotalExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("total exercises: %w", err)
	}
	workoutDates, err := a.repo.WorkoutDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("workout dates: %w", err)
	}
	recentWorkouts, err := a.repo.RecentWorkouts(ctx, recentWorkoutsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent workouts: %w", err)
	}
	volumeByMuscle, err := a.repo.VolumeByMuscle(ctx)
	if err != nil {
		return nil, fmt.Errorf("volume by muscle: %w", err)
	}

	now := a.now()
	return &Summary{
		TotalWorkouts:  totalWorkouts,
		TotalVolume:    math.Round(totalVolume),
		TotalExercises: totalExercises,
		WeekWorkouts:   countSince(workoutDates, now, 7),
		Streak:         streak(distinctDates(workoutDates), now),
		RecentWorkouts: recentWorkouts,
		VolumeByMuscle: volumeByMuscle,
		WeeklyData:     weeklyBuckets(workoutDates, now),
	}, nil
}

func (a *Analyzer) ExerciseProgress(ctx context.Context, exerciseID int) (_ []ProgressSample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.exerciseProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return a.repo.ExerciseProgress(ctx, exerciseID)
}

// streak counts consecutive workout days, walking the distinct dates from
// the most recent one backwards. The i-th date may be i or i+1 whole days
// behind today, which tolerates today itself not being logged yet.
func streak(datesDesc []time.Time, now time.Time) int {
	count := 0
	for i, date := range datesDesc {
		diff := int(now.Sub(date).Hours() / 24)
		if diff == i || diff == i+1 {
			count++
		} else {
			break
		}
	}
	return count
}

// countSince counts the dates within the last `days` calendar days, boundary
// day included. The stored dates carry no time-of-day, so the cutoff must not
// either, otherwise the boundary date slips out of the window.
func countSince(dates []time.Time, now time.Time, days int) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, -days)
	count := 0
	for _, d := range dates {
		if !d.Before(cutoff) {
			count++
		}
	}
	return count
}

// weeklyBuckets groups the workout dates of the last 56 days by ISO
// (year, week), ascending by week.
func weeklyBuckets(dates []time.Time, now time.Time) []WeekCount {
	cutoff := now.AddDate(0, 0, -weeklyDataDays)

	type yearWeek struct {
		year int
		week int
	}
	counts := make(map[yearWeek]int)
	for _, d := range dates {
		if d.Before(cutoff) {
			continue
		}
		y, w := d.ISOWeek()
		counts[yearWeek{year: y, week: w}]++
	}

	weeks := make([]yearWeek, 0, len(counts))
	for yw := range counts {
		weeks = append(weeks, yw)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].year != weeks[j].year {
			return weeks[i].year < weeks[j].year
		}
		return weeks[i].week < weeks[j].week
	})

	buckets := make([]WeekCount, 0, len(weeks))
	for _, yw := range weeks {
		buckets = append(buckets, WeekCount{
			Week:  fmt.Sprintf("%d-W%02d", yw.year, yw.week),
			Count: counts[yw],
		})
	}
	return buckets
}

// distinctDates keeps the first occurrence of each date, preserving order.
func distinctDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	distinct := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		distinct = append(distinct, d)
	}
	return distinct
}
