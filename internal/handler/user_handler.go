package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"nihongo-server/internal/middleware"
	"nihongo-server/internal/model"
	"nihongo-server/internal/service"
	"nihongo-server/pkg/apierror"
)

type UserHandler struct {
	service *service.AuthService
}

func NewUserHandler(service *service.AuthService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PublicUserList{Users: users}, nil)
}

// UpdateRole changes a user's role. An update to the role the record
// already has answers 304, a real change answers 200. Outstanding
// session tokens keep their issued role until they expire.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "user id is required", "userID", http.StatusBadRequest))
		return
	}

	var payload model.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if strings.TrimSpace(payload.Role) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "role is required", "role", http.StatusBadRequest))
		return
	}

	actor := ""
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actor = claims.Email
	}

	changed, err := h.service.UpdateUserRole(r.Context(), actor, userID, payload.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	if !changed {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"updated": true, "role": strings.ToLower(strings.TrimSpace(payload.Role))}, nil)
}
