package middleware

import (
	"context"
	"net/http"

	"dawrni-api/internal/domain/entity"
)

func rolePtr(role entity.Role) *entity.Role {
	return &role
}

func withRole(r *http.Request, role entity.Role) context.Context {
	return context.WithValue(r.Context(), RoleKey, role)
}
