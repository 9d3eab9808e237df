package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/shoestock/internal/logging"
	"github.com/dmitrijs2005/shoestock/internal/server/auth"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/workers"
)

type ctxKey string

const workerCodeKey ctxKey = "workerCode"

// WorkerCodeFromContext returns the authenticated worker code placed into
// the request context by the auth middleware.
func WorkerCodeFromContext(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(workerCodeKey).(string)
	return code, ok
}

// authMiddleware guards the shoe endpoints. It extracts the bearer token,
// verifies its signature and expiry, resolves the acting worker and puts
// the worker code into the request context. On any failure it answers 401
// itself and never calls through.
func authMiddleware(secret []byte, repo workers.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeMessage(w, http.StatusUnauthorized, "Token is missing")
				return
			}

			// A bare token without the Bearer prefix is accepted too.
			token := strings.TrimPrefix(header, "Bearer ")

			workerCode, err := auth.GetWorkerCodeFromToken(token, secret)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Token is invalid")
				return
			}

			// The token subject must still exist.
			if _, err := repo.GetByWorkerCode(r.Context(), workerCode); err != nil {
				writeMessage(w, http.StatusUnauthorized, "Token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), workerCodeKey, workerCode)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger logs every request with a generated request id.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"request_id", uuid.NewString(),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
			)
		})
	}
}
