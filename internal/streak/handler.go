package streak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/2beens/rollfit/internal/auth"
	"github.com/2beens/rollfit/internal/telemetry/tracing"
	"github.com/2beens/rollfit/pkg"

	"github.com/coocood/freecache"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=streak_test

type streakTracker interface {
	EvaluateLogin(ctx context.Context, userID string, today Date) (*Record, error)
	RecordWorkoutCompletion(ctx context.Context, userID string, today Date) (*Record, error)
	Get(ctx context.Context, userID string) (*Record, error)
}

// DayRequest is the optional body of the streak write endpoints.
// An empty today means the server's calendar date.
type DayRequest struct {
	Today string `json:"today" validate:"omitempty,datetime=2006-01-02"`
}

type RecordResponse struct {
	UserID string `json:"userId"`
	Record
}

type GoalResponse struct {
	Streak   int `json:"streak"`
	NextGoal int `json:"nextGoal"`
}

type Handler struct {
	tracker  streakTracker
	cache    *freecache.Cache
	cacheTTL int
	validate *validator.Validate

	// writes counts invalidations; a read only fills the cache when no
	// write happened while it was loading the record
	cacheMutex sync.Mutex
	writes     uint64
}

// NewHandler creates the streak handler. Reads are cached for cacheTTLSeconds
// in a cache of cacheSizeBytes; a non positive TTL disables the cache.
func NewHandler(tracker streakTracker, cacheSizeBytes, cacheTTLSeconds int) *Handler {
	return &Handler{
		tracker:  tracker,
		cache:    freecache.NewCache(cacheSizeBytes),
		cacheTTL: cacheTTLSeconds,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) HandleEvaluateLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streak.login")
	defer span.End()

	today, err := h.parseToday(r)
	if err != nil {
		log.Debugf("evaluate login, bad request: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	rec, err := h.tracker.EvaluateLogin(ctx, userID, today)
	if err != nil {
		log.Errorf("evaluate login for user [%s]: %s", userID, err)
		writeTrackerError(w, err)
		return
	}
	h.invalidate(userID)

	pkg.WriteJSON(w, RecordResponse{UserID: userID, Record: *rec}, http.StatusOK)
}

func (h *Handler) HandleRecordWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streak.workout")
	defer span.End()

	today, err := h.parseToday(r)
	if err != nil {
		log.Debugf("record workout, bad request: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	rec, err := h.tracker.RecordWorkoutCompletion(ctx, userID, today)
	if err != nil {
		log.Errorf("record workout for user [%s]: %s", userID, err)
		writeTrackerError(w, err)
		return
	}
	h.invalidate(userID)

	pkg.WriteJSON(w, RecordResponse{UserID: userID, Record: *rec}, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streak.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeTrackerError(w, ErrNotAuthenticated)
		return
	}

	if h.cacheTTL > 0 {
		if cached, err := h.cache.Get(cacheKey(userID)); err == nil {
			log.Tracef("streak record of [%s] found in cache", userID)
			pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
			return
		}
	}

	writesBefore := h.writesSoFar()
	rec, err := h.tracker.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			log.Errorf("get streak record for user [%s]: %s", userID, err)
		}
		writeTrackerError(w, err)
		return
	}

	respJson, err := json.Marshal(RecordResponse{UserID: userID, Record: *rec})
	if err != nil {
		log.Errorf("marshal streak record: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if h.cacheTTL > 0 {
		h.cacheIfUnchanged(userID, respJson, writesBefore)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (h *Handler) HandleNextGoal(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.streak.goal")
	defer span.End()

	streakStr := mux.Vars(r)["streak"]
	streak, err := strconv.Atoi(streakStr)
	if err != nil || streak < 0 {
		http.Error(w, "parse form error, parameter <streak>", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, GoalResponse{Streak: streak, NextGoal: NextGoal(streak)}, http.StatusOK)
}

func (h *Handler) parseToday(r *http.Request) (Date, error) {
	var req DayRequest
	if r.Body == nil {
		return DateOf(time.Now()), nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return Date{}, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return Date{}, fmt.Errorf("invalid request: %w", err)
	}
	if req.Today == "" {
		return DateOf(time.Now()), nil
	}
	return ParseDate(req.Today)
}

func (h *Handler) invalidate(userID string) {
	h.cacheMutex.Lock()
	defer h.cacheMutex.Unlock()
	h.writes++
	h.cache.Del(cacheKey(userID))
}

func (h *Handler) writesSoFar() uint64 {
	h.cacheMutex.Lock()
	defer h.cacheMutex.Unlock()
	return h.writes
}

func (h *Handler) cacheIfUnchanged(userID string, respJson []byte, writesBefore uint64) {
	h.cacheMutex.Lock()
	defer h.cacheMutex.Unlock()
	if h.writes != writesBefore {
		log.Tracef("streak record of [%s] changed while loading, not cached", userID)
		return
	}
	if err := h.cache.Set(cacheKey(userID), respJson, h.cacheTTL); err != nil {
		log.Errorf("cache streak record of [%s]: %s", userID, err)
	}
}

func cacheKey(userID string) []byte {
	return []byte("streak::" + userID)
}

func writeTrackerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	case errors.Is(err, ErrDateOutOfRange):
		http.Error(w, "date out of range", http.StatusBadRequest)
	case errors.Is(err, ErrPreconditionFailed):
		http.Error(w, "streak record missing, evaluate login first", http.StatusPreconditionFailed)
	case errors.Is(err, ErrRecordNotFound):
		http.Error(w, "streak record not found", http.StatusNotFound)
	case errors.Is(err, ErrPersistenceUnavailable):
		http.Error(w, "streak storage unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
