package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context, params ListParams) ([]Exercise, error)
	Categories(ctx context.Context) (*Categories, error)
}

type Handler struct {
	repo    exercisesRepo
	metrics *metrics.Manager
}

func NewHandler(repo exercisesRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/exercises", handler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	router.HandleFunc("/exercises/categories", handler.HandleCategories).Methods("GET", "OPTIONS").Name("exercise-categories")
	router.HandleFunc("/exercises", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	router.HandleFunc("/exercises/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	exercises, err := handler.repo.ListAll(ctx, ListParams{
		Category:    r.URL.Query().Get("category"),
		MuscleGroup: r.URL.Query().Get("muscle_group"),
	})
	if err != nil {
		log.Errorf("list exercises error: %s", err)
		pkg.WriteJSONError(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.categories")
	defer span.End()

	categories, err := handler.repo.Categories(ctx)
	if err != nil {
		log.Errorf("get exercise categories error: %s", err)
		pkg.WriteJSONError(w, "failed to get categories", http.StatusInternalServerError)
		return
	}

	categoriesJson, err := json.Marshal(categories)
	if err != nil {
		log.Errorf("marshal exercise categories error: %s", err)
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, categoriesJson, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if exercise.Name == "" || exercise.Category == "" || exercise.MuscleGroup == "" {
		pkg.WriteJSONError(w, "name, category, and muscle_group are required", http.StatusBadRequest)
		return
	}

	addedExercise, err := handler.repo.Add(ctx, exercise)
	if err != nil {
		if errors.Is(err, ErrExerciseExists) {
			pkg.WriteJSONError(w, "exercise already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add new exercise [%s]: %s", exercise.Name, err)
		pkg.WriteJSONError(w, "failed to add new exercise", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterExercisesCreated.Inc()

	addedExJson, err := json.Marshal(addedExercise)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		pkg.WriteJSONError(w, "failed to add new exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: [%s] [%s]: %d", addedExercise.MuscleGroup, addedExercise.Name, addedExercise.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedExJson, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		pkg.WriteJSONError(w, "id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		pkg.WriteJSONError(w, "id NaN", http.StatusBadRequest)
		return
	}

	// referencing workout entries are left as-is, only the library entry goes away
	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			log.Debugf("exercise %d not found", id)
			pkg.WriteJSONError(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete exercise %d: %s", id, err)
		pkg.WriteJSONError(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise %d deleted", id)
	pkg.WriteJSONResponseOK(w, `{"message":"Exercise deleted"}`)
}
