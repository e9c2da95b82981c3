package middleware

import (
	"net/http"
	"strings"
	"time"

	"stylefeed-backend/pkg/logger"
	"stylefeed-backend/pkg/utils"

	"github.com/google/uuid"
)

// RequestLogger tags each request with a short ID, stores a scoped logger
// in the context, and emits one line per request with timing and status.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.NewString()[:8]
		reqLogger := logger.WithRequestID(requestID)
		r = r.WithContext(logger.NewContext(r.Context(), &reqLogger))
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		evt := reqLogger.Info()
		switch {
		case rec.status >= 500:
			evt = reqLogger.Error()
		case rec.status >= 400:
			evt = reqLogger.Warn()
		}

		evt = evt.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration_ms", time.Since(start)).
			Str("ip", getClientIP(r))
		if q := r.URL.RawQuery; q != "" {
			evt = evt.Str("query", q)
		}
		if claims, err := utils.ExtractClaims(r); err == nil && claims != nil {
			evt = evt.Int64("user_id", claims.UserID)
		}
		evt.Msg("request")
	})
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// getClientIP resolves the caller address, honoring proxy headers. The
// first X-Forwarded-For entry is the original client.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
