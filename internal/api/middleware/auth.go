// Package middleware holds the HTTP middleware of the service:
// header-based authentication and request metrics.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// HeaderUserID is the header carrying the authenticated user
const HeaderUserID = "X-User-ID"

// Auth requires a positive integer X-User-ID header and stores it in the
// request context. Identity is established upstream; this service only
// consumes the header.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing "+HeaderUserID+" header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid "+HeaderUserID+" header")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// GetUserID extracts the authenticated user from the request context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
