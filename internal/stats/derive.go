package stats

import "math"

// Chart derivations for the progress view. All pure functions over the
// progress samples; they carry no authority over persisted state.

// ChartPoint is one plotted day: the heaviest set of that day with its
// volume rounded for display.
type ChartPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Volume float64 `json:"volume"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
}

// ExerciseChart is the chart payload for one exercise. RunningMax holds, per
// point, the heaviest weight seen up to that day — the plotted PR line.
type ExerciseChart struct {
	Points      []ChartPoint `json:"points"`
	RunningMax  []float64    `json:"running_max"`
	MaxWeight   float64      `json:"max_weight"`
	AvgWeight   float64      `json:"avg_weight"`
	TotalVolume float64      `json:"total_volume"`
}

const chartPointsLimit = 20

// BuildExerciseChart groups the samples by date keeping the heaviest set
// per day, trims to the most recent days, and derives the display stats.
func BuildExerciseChart(samples []ProgressSample) *ExerciseChart {
	points := MaxWeightPerDay(samples)
	if len(points) > chartPointsLimit {
		points = points[len(points)-chartPointsLimit:]
	}

	chart := &ExerciseChart{
		Points:     points,
		RunningMax: RunningMax(points),
	}
	for _, p := range points {
		if p.Weight > chart.MaxWeight {
			chart.MaxWeight = p.Weight
		}
		chart.AvgWeight += p.Weight
		chart.TotalVolume += p.Volume
	}
	if len(points) > 0 {
		chart.AvgWeight = math.Round(chart.AvgWeight/float64(len(points))*10) / 10
	}
	return chart
}

// MaxWeightPerDay collapses the samples to one point per date, keeping the
// one with the highest weight. Samples arrive ordered by date ascending
// and the order is preserved.
func MaxWeightPerDay(samples []ProgressSample) []ChartPoint {
	byDate := make(map[string]int)
	points := make([]ChartPoint, 0)
	for _, s := range samples {
		point := ChartPoint{
			Date:   s.Date,
			Weight: s.Weight,
			Volume: math.Round(s.Volume),
			Sets:   s.Sets,
			Reps:   s.Reps,
		}
		if i, ok := byDate[s.Date]; ok {
			if s.Weight > points[i].Weight {
				points[i] = point
			}
			continue
		}
		byDate[s.Date] = len(points)
		points = append(points, point)
	}
	return points
}

// RunningMax returns, for each point, the maximum weight seen up to and
// including it.
func RunningMax(points []ChartPoint) []float64 {
	maxes := make([]float64, len(points))
	var currentMax float64
	for i, p := range points {
		if p.Weight > currentMax {
			currentMax = p.Weight
		}
		maxes[i] = currentMax
	}
	return maxes
}
