package handler

import (
	"net/http"

	"nihongo-server/internal/middleware"
)

// actorFromRequest names the authenticated caller for audit entries.
func actorFromRequest(r *http.Request) string {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return "anonymous"
	}
	return claims.Email
}
