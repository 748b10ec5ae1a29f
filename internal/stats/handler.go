package stats

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/progress/summary", handler.HandleSummary).Methods("GET", "OPTIONS").Name("progress-summary")
	router.HandleFunc("/progress/exercise/{exerciseId}", handler.HandleExerciseProgress).Methods("GET", "OPTIONS").Name("exercise-progress")
	router.HandleFunc("/progress/exercise/{exerciseId}/chart", handler.HandleExerciseChart).Methods("GET", "OPTIONS").Name("exercise-chart")
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.summary")
	defer span.End()

	summary, err := handler.analyzer.Summary(ctx)
	if err != nil {
		log.Errorf("failed to get stats summary: %s", err)
		pkg.WriteJSONError(w, "failed to get summary", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("failed to marshal stats summary: %s", err)
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, summaryJson, http.StatusOK)
}

func (handler *Handler) HandleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exerciseProgress")
	defer span.End()

	exerciseID, ok := exerciseID(w, r)
	if !ok {
		return
	}

	samples, err := handler.analyzer.ExerciseProgress(ctx, exerciseID)
	if err != nil {
		log.Errorf("failed to get progress for exercise %d: %s", exerciseID, err)
		pkg.WriteJSONError(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}

	samplesJson, err := json.Marshal(samples)
	if err != nil {
		log.Errorf("failed to marshal exercise progress: %s", err)
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, samplesJson, http.StatusOK)
}

func (handler *Handler) HandleExerciseChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exerciseChart")
	defer span.End()

	exerciseID, ok := exerciseID(w, r)
	if !ok {
		return
	}

	samples, err := handler.analyzer.ExerciseProgress(ctx, exerciseID)
	if err != nil {
		log.Errorf("failed to get progress for exercise %d: %s", exerciseID, err)
		pkg.WriteJSONError(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}

	chartJson, err := json.Marshal(BuildExerciseChart(samples))
	if err != nil {
		log.Errorf("failed to marshal exercise chart: %s", err)
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, chartJson, http.StatusOK)
}

func exerciseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["exerciseId"]
	if idStr == "" {
		pkg.WriteJSONError(w, "exercise id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		pkg.WriteJSONError(w, "exercise id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
