package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, repo *repoMock) *mux.Router {
	t.Helper()
	handler := NewHandler(newTestAnalyzer(repo))
	r := mux.NewRouter()
	handler.SetupRoutes(r.PathPrefix("/api").Subrouter())
	return r
}

func TestHandler_Routes(t *testing.T) {
	r := newTestRouter(t, NewMockStatsRepo())

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"progress-summary": {
			name:   "progress-summary",
			path:   "/api/progress/summary",
			method: "GET",
		},
		"exercise-progress": {
			name:   "exercise-progress",
			path:   "/api/progress/exercise/7",
			method: "GET",
		},
		"exercise-chart": {
			name:   "exercise-chart",
			path:   "/api/progress/exercise/7/chart",
			method: "GET",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			muxRoute := r.Get(route.name)
			require.NotNil(t, muxRoute)
			assert.True(t, muxRoute.Match(req, routeMatch), caseName)
		})
	}
}

func TestHandler_HandleSummary(t *testing.T) {
	repo := NewMockStatsRepo()
	repo.totalWorkouts = 4
	repo.totalVolume = 9000.4
	repo.workoutDates = []time.Time{daysAgo(0), daysAgo(1)}
	r := newTestRouter(t, repo)

	req, err := http.NewRequest("GET", "/api/progress/summary", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var summary Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 4, summary.TotalWorkouts)
	assert.Equal(t, 9000.0, summary.TotalVolume)
	assert.Equal(t, 2, summary.Streak)
	assert.Equal(t, 2, summary.WeekWorkouts)
}

func TestHandler_HandleExerciseProgress(t *testing.T) {
	repo := NewMockStatsRepo()
	repo.progress[7] = []ProgressSample{
		{Date: "2026-08-20", Sets: 3, Reps: 10, Weight: 60, Volume: 1800, ExerciseName: "Bench Press"},
	}
	r := newTestRouter(t, repo)

	req, err := http.NewRequest("GET", "/api/progress/exercise/7", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var samples []ProgressSample
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &samples))
	require.Len(t, samples, 1)
	assert.Equal(t, "Bench Press", samples[0].ExerciseName)
}

func TestHandler_HandleExerciseProgress_noSamples(t *testing.T) {
	r := newTestRouter(t, NewMockStatsRepo())

	req, err := http.NewRequest("GET", "/api/progress/exercise/99", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	// an unknown or never-logged exercise is just an empty history
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_HandleExerciseChart(t *testing.T) {
	repo := NewMockStatsRepo()
	repo.progress[7] = []ProgressSample{
		{Date: "2026-08-20", Sets: 3, Reps: 10, Weight: 60, Volume: 1800},
		{Date: "2026-08-20", Sets: 2, Reps: 5, Weight: 70, Volume: 700},
		{Date: "2026-08-24", Sets: 3, Reps: 8, Weight: 65, Volume: 1560},
	}
	r := newTestRouter(t, repo)

	req, err := http.NewRequest("GET", "/api/progress/exercise/7/chart", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var chart ExerciseChart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chart))
	require.Len(t, chart.Points, 2)
	assert.Equal(t, []float64{70, 70}, chart.RunningMax)
	assert.Equal(t, 70.0, chart.MaxWeight)
	assert.Equal(t, 67.5, chart.AvgWeight)
	assert.Equal(t, 2260.0, chart.TotalVolume)
}

func TestHandler_badExerciseID(t *testing.T) {
	r := newTestRouter(t, NewMockStatsRepo())

	req, err := http.NewRequest("GET", "/api/progress/exercise/not-a-number", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
