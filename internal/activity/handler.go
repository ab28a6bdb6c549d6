package activity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/rollfit/internal/auth"
	"github.com/2beens/rollfit/internal/telemetry/tracing"
	"github.com/2beens/rollfit/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=activity_test

type service interface {
	List(ctx context.Context, params ListParams) (_ []Event, total int, err error)
}

type ListResponse struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle list activity, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle list activity, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}
	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 || size > 500 {
		http.Error(w, "invalid size (has to be between 1 and 500)", http.StatusBadRequest)
		return
	}

	params := ListParams{
		EventParams: EventParams{
			UserID: userID,
		},
		Page: page,
		Size: size,
	}
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		eventType := EventType(typeStr)
		if !eventType.IsValid() {
			http.Error(w, "invalid event type", http.StatusBadRequest)
			return
		}
		params.Type = &eventType
	}

	events, total, err := h.service.List(ctx, params)
	if err != nil {
		log.Errorf("list activity events of [%s]: %s", userID, err)
		http.Error(w, "failed to get activity events", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{Events: events, Total: total}, http.StatusOK)
}
