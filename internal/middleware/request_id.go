// Package middleware holds http.Handler wrappers shared by the server routes.
package middleware

import (
	"net/http"

	"github.com/go-sod/kdset/internal/logging"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags the request with an id, reusing the client's X-Request-ID when it sent one, and
// stores a logger carrying that id in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		ctx := r.Context()
		logger := logging.FromContext(ctx).With("request_id", id)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithLogger(ctx, logger)))
	})
}
