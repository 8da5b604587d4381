package routines

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/zenfit/internal/telemetry/metrics"
	"github.com/2beens/zenfit/internal/telemetry/tracing"
	"github.com/2beens/zenfit/internal/workout"
	"github.com/2beens/zenfit/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=routines_test

type routinesCatalog interface {
	Add(ctx context.Context, routine workout.Routine) error
	Delete(ctx context.Context, routineID string) error
	List(ctx context.Context) []workout.Routine
	Materialize(ctx context.Context, routineID string) (*workout.Draft, error)
}

type ListResponse struct {
	Routines []workout.Routine `json:"routines"`
	Total    int               `json:"total"`
}

type DeleteRoutineResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	catalog routinesCatalog
	metrics *metrics.Manager
}

func NewHandler(catalog routinesCatalog, metrics *metrics.Manager) *Handler {
	return &Handler{
		catalog: catalog,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/routines", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-routine")
	router.HandleFunc("/routines", handler.HandleList).Methods("GET", "OPTIONS").Name("list-routines")
	router.HandleFunc("/routines/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-routine")
	router.HandleFunc("/routines/{id}/materialize", handler.HandleMaterialize).Methods("GET", "OPTIONS").Name("materialize-routine")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var routine workout.Routine
	if err := json.NewDecoder(r.Body).Decode(&routine); err != nil {
		log.Tracef("new routine, unmarshal json params: %s", err)
		http.Error(w, "add routine failed", http.StatusBadRequest)
		return
	}

	if routine.ID == "" {
		routine.ID = uuid.NewString()
	}
	if routine.Type == workout.ActivityRunning && routine.Running != nil {
		derived := routine.Running.DeriveTotals()
		routine.Running = &derived
	}

	if err := routine.Validate(); err != nil {
		log.Tracef("new routine, invalid: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.catalog.Add(ctx, routine); err != nil {
		if errors.Is(err, ErrRoutineExists) {
			http.Error(w, "routine already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add new routine [%s]: %s", routine.Name, err)
		http.Error(w, "error, failed to add new routine", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterRoutinesAdded.Inc()

	routineJson, err := json.Marshal(routine)
	if err != nil {
		log.Errorf("failed to marshal new routine: %s", err)
		http.Error(w, "error, failed to add new routine", http.StatusInternalServerError)
		return
	}

	log.Debugf("new routine added: [%s] %s", routine.ID, routine.Name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, routineJson, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.delete")
	defer span.End()

	vars := mux.Vars(r)
	routineID := vars["id"]
	if routineID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.catalog.Delete(ctx, routineID); err != nil {
		log.Errorf("failed to delete routine %s: %s", routineID, err)
		http.Error(w, "routine not deleted", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterRoutinesDeleted.Inc()

	deleteRespJson, err := json.Marshal(DeleteRoutineResponse{
		DeletedID: routineID,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.list")
	defer span.End()

	routines := handler.catalog.List(ctx)
	if routines == nil {
		routines = []workout.Routine{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Routines: routines,
		Total:    len(routines),
	})
	if err != nil {
		log.Errorf("marshal routines error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}

func (handler *Handler) HandleMaterialize(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.materialize")
	defer span.End()

	vars := mux.Vars(r)
	routineID := vars["id"]
	if routineID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	draft, err := handler.catalog.Materialize(ctx, routineID)
	if err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			http.Error(w, "routine not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to materialize routine %s: %s", routineID, err)
		http.Error(w, "materialize routine failed", http.StatusInternalServerError)
		return
	}

	draftJson, err := json.Marshal(draft)
	if err != nil {
		log.Errorf("failed to marshal draft: %s", err)
		http.Error(w, "failed to marshal draft", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, draftJson)
}
