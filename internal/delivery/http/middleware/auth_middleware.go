package middleware

import (
	"context"
	"net/http"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/pkg/utils"
)

// AuthMiddleware validates the bearer token (Authorization header or
// accessToken cookie) and puts the verified claims on the request context.
// Claims alone are trusted; no DB hit per request.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
