package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/2beens/rollfit/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a panicking handler into a 500 for the client. The panic
// is logged at error level (so it reaches sentry) with the request id that
// LogRequest put on the response.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				// net/http uses this one to abort a response on purpose
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				log.WithFields(log.Fields{
					"request-id": w.Header().Get(RequestIDHeader),
					"method":     r.Method,
					"path":       r.URL.Path,
				}).Errorf("panic serving request: %v\n%s", recovered, debug.Stack())

				http.Error(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
