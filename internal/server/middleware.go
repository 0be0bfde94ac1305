package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// AdminDirectory answers whether a Telegram user id belongs to an admin
// stored in the database. The statically configured ids are checked first.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AdminAuth guards the API behind the X-Admin-ID header. The id must be
// either one of the configured admin ids or present in the admins
// collection.
func AdminAuth(adminIDs []int64, directory AdminDirectory, logger *zap.Logger) func(http.Handler) http.Handler {
	allowed := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		allowed[id] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-Admin-ID")
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeForbidden(w)
				return
			}

			if _, ok := allowed[userID]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ok, err := directory.IsAdmin(r.Context(), userID)
			if err != nil {
				logger.Error("admin lookup failed", zap.Int64("userId", userID), zap.Error(err))
				writeForbidden(w)
				return
			}
			if !ok {
				logger.Warn("rejected non-admin request", zap.Int64("userId", userID))
				writeForbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"FORBIDDEN","message":"admin access required"}`))
}

// RequestLogger logs every request with its duration and status code.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
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
