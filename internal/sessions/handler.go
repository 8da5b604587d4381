package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/zenfit/internal/telemetry/metrics"
	"github.com/2beens/zenfit/internal/telemetry/tracing"
	"github.com/2beens/zenfit/internal/workout"
	"github.com/2beens/zenfit/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsStore interface {
	Add(ctx context.Context, session workout.Session) error
	Delete(ctx context.Context, date, sessionID string) error
	List(ctx context.Context, date string) []workout.Session
	ListAll(ctx context.Context) []workout.Session
}

type ListResponse struct {
	Sessions []workout.Session `json:"sessions"`
	Total    int               `json:"total"`
}

type DeleteSessionResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	store   sessionsStore
	metrics *metrics.Manager
}

func NewHandler(store sessionsStore, metrics *metrics.Manager) *Handler {
	return &Handler{
		store:   store,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/sessions", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	router.HandleFunc("/sessions", handler.HandleListAll).Methods("GET", "OPTIONS").Name("list-sessions")
	router.HandleFunc("/sessions/day/{date}", handler.HandleListDay).Methods("GET", "OPTIONS").Name("list-day-sessions")
	router.HandleFunc("/sessions/{date}/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-session")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session workout.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Tracef("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Date == "" {
		session.Date = time.Now().Format(workout.DateLayout)
	}
	if session.Type == workout.ActivityRunning && session.Running != nil {
		derived := session.Running.DeriveTotals()
		session.Running = &derived
	}

	if err := session.Validate(); err != nil {
		log.Tracef("new session, invalid: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.store.Add(ctx, session); err != nil {
		if errors.Is(err, ErrSessionExists) {
			http.Error(w, "session already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add new session [%s] [%s]: %s", session.Date, session.Type, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsAdded.Inc()

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	log.Debugf("new session added: [%s] on %s", session.ID, session.Date)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	vars := mux.Vars(r)
	date := vars["date"]
	sessionID := vars["id"]
	if date == "" || sessionID == "" {
		http.Error(w, "error, date or id empty", http.StatusBadRequest)
		return
	}

	// deletion is idempotent, an unknown (date, id) is not an error
	if err := handler.store.Delete(ctx, date, sessionID); err != nil {
		log.Errorf("failed to delete session [%s] on [%s]: %s", sessionID, date, err)
		http.Error(w, "session not deleted", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsDeleted.Inc()

	deleteRespJson, err := json.Marshal(DeleteSessionResponse{
		DeletedID: sessionID,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleListDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.listDay")
	defer span.End()

	vars := mux.Vars(r)
	date := vars["date"]
	if date == "" {
		http.Error(w, "error, date empty", http.StatusBadRequest)
		return
	}

	handler.writeSessions(w, handler.store.List(ctx, date))
}

func (handler *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.listAll")
	defer span.End()

	handler.writeSessions(w, handler.store.ListAll(ctx))
}

func (handler *Handler) writeSessions(w http.ResponseWriter, sessions []workout.Session) {
	if sessions == nil {
		sessions = []workout.Session{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
	if err != nil {
		log.Errorf("marshal sessions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}
