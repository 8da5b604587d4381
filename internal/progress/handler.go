package progress

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/zenfit/internal/telemetry/tracing"
	"github.com/2beens/zenfit/pkg"
)

const (
	// defaults match the progress charts: last 30 days, top 8 exercises
	defaultWindowDays = 30
	defaultTopCount   = 8
)

type RunningSeriesResponse struct {
	Series []RunningPoint `json:"series"`
	Total  int            `json:"total"`
}

type VolumesResponse struct {
	Volumes []ExerciseVolume `json:"volumes"`
	Total   int              `json:"total"`
}

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/progress/running", handler.HandleRunningSeries).Methods("GET", "OPTIONS").Name("progress-running")
	router.HandleFunc("/progress/volumes", handler.HandleExerciseVolumes).Methods("GET", "OPTIONS").Name("progress-volumes")
	router.HandleFunc("/progress/summary", handler.HandleSummary).Methods("GET", "OPTIONS").Name("progress-summary")
}

func (handler *Handler) HandleRunningSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.runningSeries")
	defer span.End()

	windowDays, ok := queryIntParam(w, r, "days", defaultWindowDays)
	if !ok {
		return
	}

	series := handler.analyzer.RunningSeries(ctx, windowDays)
	if series == nil {
		series = []RunningPoint{}
	}

	seriesJson, err := json.Marshal(RunningSeriesResponse{
		Series: series,
		Total:  len(series),
	})
	if err != nil {
		log.Errorf("marshal running series error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, seriesJson)
}

func (handler *Handler) HandleExerciseVolumes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.exerciseVolumes")
	defer span.End()

	windowDays, ok := queryIntParam(w, r, "days", defaultWindowDays)
	if !ok {
		return
	}
	top, ok := queryIntParam(w, r, "top", defaultTopCount)
	if !ok {
		return
	}

	volumes := handler.analyzer.ExerciseVolumes(ctx, windowDays, top)
	if volumes == nil {
		volumes = []ExerciseVolume{}
	}

	volumesJson, err := json.Marshal(VolumesResponse{
		Volumes: volumes,
		Total:   len(volumes),
	})
	if err != nil {
		log.Errorf("marshal volumes error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, volumesJson)
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.summary")
	defer span.End()

	summaryJson, err := json.Marshal(handler.analyzer.Summary(ctx))
	if err != nil {
		log.Errorf("marshal summary error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summaryJson)
}

func queryIntParam(w http.ResponseWriter, r *http.Request, name string, defaultValue int) (int, bool) {
	valueStr := r.URL.Query().Get(name)
	if valueStr == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 1 {
		http.Error(w, "invalid <"+name+"> parameter (has to be a positive number)", http.StatusBadRequest)
		return 0, false
	}
	return value, true
}
