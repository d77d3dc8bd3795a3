package middleware

import (
	"net/http"

	"dawrni-api/internal/domain/entity"
	"dawrni-api/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCompany is a convenience middleware for company-only endpoints
func RequireCompany(next http.Handler) http.Handler {
	return RequireRole(entity.RoleCompany)(next)
}

// RequireClient is a convenience middleware for client-only endpoints
func RequireClient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleClient)(next)
}
