package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxWeightPerDay(t *testing.T) {
	samples := []ProgressSample{
		{Date: "2026-08-20", Sets: 3, Reps: 10, Weight: 60, Volume: 1800},
		{Date: "2026-08-20", Sets: 2, Reps: 5, Weight: 70, Volume: 700},
		{Date: "2026-08-24", Sets: 3, Reps: 8, Weight: 65, Volume: 1560.4},
		{Date: "2026-08-24", Sets: 4, Reps: 12, Weight: 50, Volume: 2400},
	}

	points := MaxWeightPerDay(samples)
	require.Len(t, points, 2)
	// heaviest set wins the day, order stays date ascending
	assert.Equal(t, ChartPoint{Date: "2026-08-20", Weight: 70, Volume: 700, Sets: 2, Reps: 5}, points[0])
	assert.Equal(t, ChartPoint{Date: "2026-08-24", Weight: 65, Volume: 1560, Sets: 3, Reps: 8}, points[1])
}

func TestMaxWeightPerDay_empty(t *testing.T) {
	assert.Empty(t, MaxWeightPerDay(nil))
}

func TestBuildExerciseChart(t *testing.T) {
	samples := []ProgressSample{
		{Date: "2026-08-20", Sets: 3, Reps: 10, Weight: 60, Volume: 1800},
		{Date: "2026-08-22", Sets: 3, Reps: 8, Weight: 62.5, Volume: 1500},
		{Date: "2026-08-24", Sets: 3, Reps: 8, Weight: 65, Volume: 1560},
	}

	chart := BuildExerciseChart(samples)
	require.Len(t, chart.Points, 3)
	assert.Equal(t, 65.0, chart.MaxWeight)
	// (60 + 62.5 + 65) / 3 = 62.5
	assert.Equal(t, 62.5, chart.AvgWeight)
	assert.Equal(t, 4860.0, chart.TotalVolume)
	assert.Equal(t, []float64{60, 62.5, 65}, chart.RunningMax)
}

func TestBuildExerciseChart_avgRounding(t *testing.T) {
	samples := []ProgressSample{
		{Date: "2026-08-20", Weight: 60},
		{Date: "2026-08-22", Weight: 61},
		{Date: "2026-08-24", Weight: 62},
		// avg 61.0; add one more for a repeating decimal
		{Date: "2026-08-26", Weight: 70},
	}

	chart := BuildExerciseChart(samples)
	// (60 + 61 + 62 + 70) / 4 = 63.25, rounded to one decimal
	assert.Equal(t, 63.3, chart.AvgWeight)
}

func TestBuildExerciseChart_trimsToRecentDays(t *testing.T) {
	var samples []ProgressSample
	for i := 0; i < 30; i++ {
		samples = append(samples, ProgressSample{
			Date:   fmt.Sprintf("2026-07-%02d", i+1),
			Weight: float64(40 + i),
			Volume: 1000,
		})
	}

	chart := BuildExerciseChart(samples)
	require.Len(t, chart.Points, chartPointsLimit)
	// oldest days fall off the front
	assert.Equal(t, "2026-07-11", chart.Points[0].Date)
	assert.Equal(t, "2026-07-30", chart.Points[len(chart.Points)-1].Date)
	assert.Equal(t, 69.0, chart.MaxWeight)
	assert.Equal(t, 20000.0, chart.TotalVolume)
}

func TestBuildExerciseChart_empty(t *testing.T) {
	chart := BuildExerciseChart(nil)
	assert.Empty(t, chart.Points)
	assert.Empty(t, chart.RunningMax)
	assert.Equal(t, 0.0, chart.MaxWeight)
	assert.Equal(t, 0.0, chart.AvgWeight)
	assert.Equal(t, 0.0, chart.TotalVolume)
}

func TestRunningMax(t *testing.T) {
	points := []ChartPoint{
		{Weight: 60},
		{Weight: 55},
		{Weight: 65},
		{Weight: 62.5},
	}
	assert.Equal(t, []float64{60, 60, 65, 65}, RunningMax(points))
	assert.Empty(t, RunningMax(nil))
}
