package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/kraftedge/oms/pkg/composables"
)

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.status = http.StatusOK
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

// WithLogger attaches a request-scoped logrus entry (request id, method,
// path) to the context and logs completion with status and duration.
// Panics are recovered, logged with a stack, and answered with a 500.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			entry := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			sw := &statusWriter{ResponseWriter: w}
			r = r.WithContext(composables.WithLogger(r.Context(), entry))

			defer func() {
				if rec := recover(); rec != nil {
					entry.WithField("stack", string(debug.Stack())).Errorf("panic: %v", rec)
					if !sw.written {
						http.Error(sw, "internal error", http.StatusInternalServerError)
					}
					return
				}
				entry.WithFields(logrus.Fields{
					"status":   sw.status,
					"duration": time.Since(start).String(),
				}).Info("completed")
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
