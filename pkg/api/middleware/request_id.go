package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ThisisBizness/Study-Buddy/pkg/logger"
)

// RequestID tags every request with a short id that the log handler prints
// with each record.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		ctx := logger.ContextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
