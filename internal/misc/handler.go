package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/rollfit/internal/telemetry/tracing"
	"github.com/2beens/rollfit/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc_test

// HealthCheck reports whether a backend the service depends on is reachable.
type HealthCheck interface {
	Name() string
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Backends map[string]string `json:"backends"`
}

type Handler struct {
	versionInfo  string
	checks       []HealthCheck
	checkTimeout time.Duration
}

func NewHandler(versionInfo string, checks ...HealthCheck) *Handler {
	return &Handler{
		versionInfo:  versionInfo,
		checks:       checks,
		checkTimeout: 2 * time.Second,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, handler.checkTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Backends: make(map[string]string, len(handler.checks)),
	}
	statusCode := http.StatusOK
	for _, check := range handler.checks {
		if err := check.Ping(ctx); err != nil {
			log.Errorf("health check [%s]: %s", check.Name(), err)
			resp.Backends[check.Name()] = "unavailable"
			resp.Status = "degraded"
			statusCode = http.StatusServiceUnavailable
			continue
		}
		resp.Backends[check.Name()] = "ok"
	}
	span.SetAttributes(attribute.String("health.status", resp.Status))

	pkg.WriteJSON(w, resp, statusCode)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
