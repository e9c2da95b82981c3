package middleware

import (
	"net/http"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/pkg/utils"
)

// AdminMiddleware ensures the authenticated user has the 'admin' role.
// MUST be used AFTER AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(domain.UserContextKey).(*domain.AuthClaims)
		if !ok || claims == nil {
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if claims.Role != domain.RoleAdmin {
			utils.WriteError(w, http.StatusForbidden, "admins only")
			return
		}

		next.ServeHTTP(w, r)
	})
}
