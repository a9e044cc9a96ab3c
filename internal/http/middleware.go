package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/example/group-scheduler/internal/application"
	"github.com/example/group-scheduler/internal/auth"
	"github.com/example/group-scheduler/internal/logging"
	"github.com/example/group-scheduler/internal/metrics"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// sessionCookieName is the fallback token carrier for browser clients.
const sessionCookieName = "session_token"

func extractToken(req *http.Request) string {
	header := req.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := req.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireSession rejects requests without a valid token and attaches the
// authenticated principal to the request context.
func RequireSession(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	base := defaultLogger(logger)
	respond := responder{logger: base}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := extractToken(req)
			if token == "" {
				respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			claims, err := validator.Validate(token)
			if err != nil {
				base.Info("rejected invalid token",
					slog.String("path", req.URL.Path),
					slog.String("error", err.Error()),
				)
				respond.writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}
			principal := application.Principal{UserID: claims.UserID, Email: claims.Email}
			next.ServeHTTP(w, req.WithContext(ContextWithPrincipal(req.Context(), principal)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs each request with a monotonically increasing id and
// stores a request scoped logger on the context.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	base := defaultLogger(logger)
	var counter atomic.Uint64
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestID := counter.Add(1)
			requestLogger := base.With(
				slog.Uint64("request_id", requestID),
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
			)
			requestLogger.Info("request started")

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			ctx := logging.ContextWithLogger(req.Context(), requestLogger)
			next.ServeHTTP(recorder, req.WithContext(ctx))

			requestLogger.Info("request completed",
				slog.Int("status", recorder.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Metrics records request counts and latencies per route.
func Metrics(registry *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(recorder, req)

			route := metricsRoute(req.URL.Path)
			registry.RequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(recorder.status)).Inc()
			registry.RequestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// metricsRoute collapses resource ids so label cardinality stays bounded.
func metricsRoute(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "/"
	}
	switch segments[0] {
	case "groups":
		if len(segments) >= 2 && segments[1] != "join" {
			segments[1] = "{id}"
		}
		if len(segments) >= 4 && segments[2] == "members" {
			segments[3] = "{id}"
		}
	case "busy", "events":
		if len(segments) >= 2 {
			segments[1] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}
