package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nihongo-server/internal/model"
	"nihongo-server/internal/service"
	"nihongo-server/pkg/apierror"
)

type TutorialHandler struct {
	service *service.TutorialService
}

func NewTutorialHandler(service *service.TutorialService) *TutorialHandler {
	return &TutorialHandler{service: service}
}

func (h *TutorialHandler) List(w http.ResponseWriter, r *http.Request) {
	tutorials, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"tutorials": tutorials}, nil)
}

func (h *TutorialHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.TutorialRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	tutorial, err := h.service.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, tutorial, nil)
}

func (h *TutorialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tutorialID := chi.URLParam(r, "tutorialID")
	if tutorialID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "tutorial id is required", "tutorialID", http.StatusBadRequest))
		return
	}

	if err := h.service.Delete(r.Context(), actorFromRequest(r), tutorialID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
