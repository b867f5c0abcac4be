package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nihongo-server/internal/model"
	"nihongo-server/internal/service"
	"nihongo-server/pkg/apierror"
)

type LessonHandler struct {
	service *service.LessonService
}

func NewLessonHandler(service *service.LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"lessons": lessons}, nil)
}

func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LessonRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	lesson, err := h.service.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, lesson, nil)
}

func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	lessonID := chi.URLParam(r, "lessonID")
	if lessonID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "lesson id is required", "lessonID", http.StatusBadRequest))
		return
	}

	var payload model.LessonRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if err := h.service.Update(r.Context(), actorFromRequest(r), lessonID, payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"updated": true}, nil)
}

func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")
	if lessonID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "lesson id is required", "lessonID", http.StatusBadRequest))
		return
	}

	if err := h.service.Delete(r.Context(), actorFromRequest(r), lessonID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
