package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"gadgetfinder-backend/internal/logging"
)

// Logger attaches a request-scoped logger to the context and logs each
// completed request.
func Logger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.WithFields(logrus.Fields{
				"request_id":  r.Header.Get(RequestIDHeader),
				"http.method": r.Method,
				"http.path":   r.URL.Path,
				"http.remote": r.RemoteAddr,
			})

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(logging.WithLogger(r.Context(), reqLog)))

			reqLog.WithFields(logrus.Fields{
				"http.status":   ww.Status(),
				"http.bytes":    ww.BytesWritten(),
				"http.duration": time.Since(start).String(),
			}).Debug("request complete")
		})
	}
}
