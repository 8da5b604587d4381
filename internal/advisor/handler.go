package advisor

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/zenfit/internal/middleware"
	"github.com/2beens/zenfit/internal/telemetry/metrics"
	"github.com/2beens/zenfit/internal/telemetry/tracing"
	"github.com/2beens/zenfit/pkg"
)

type InsightResponse struct {
	Insight  string `json:"insight"`
	Fallback bool   `json:"fallback"`
}

type Handler struct {
	service *Service
	metrics *metrics.Manager
}

func NewHandler(service *Service, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	requestsPerMin int,
) {
	advisorSubrouter := router.PathPrefix("/advisor").Subrouter()
	advisorSubrouter.
		HandleFunc("/insight", handler.HandleInsight).
		Methods("GET", "OPTIONS").Name("advisor-insight")

	// the UI keeps a busy flag so it fires one request at a time; the
	// rate limit is the server side guard against quota burning
	advisorSubrouter.Use(middleware.RateLimit(rateLimiter, "advisor", requestsPerMin, handler.metrics))
}

func (handler *Handler) HandleInsight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.advisor.insight")
	defer span.End()

	handler.metrics.CounterAdvisoryRequests.Inc()

	insight, fromFallback := handler.service.Advise(ctx)
	if fromFallback {
		handler.metrics.CounterAdvisoryFallbacks.Inc()
	}

	insightJson, err := json.Marshal(InsightResponse{
		Insight:  insight,
		Fallback: fromFallback,
	})
	if err != nil {
		log.Errorf("failed to marshal insight response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, insightJson)
}
