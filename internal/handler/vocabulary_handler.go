package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"nihongo-server/internal/model"
	"nihongo-server/internal/service"
	"nihongo-server/pkg/apierror"
)

type VocabularyHandler struct {
	service *service.VocabularyService
}

func NewVocabularyHandler(service *service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{service: service}
}

func (h *VocabularyHandler) ListByLesson(w http.ResponseWriter, r *http.Request) {
	lessonNumber, err := strconv.Atoi(chi.URLParam(r, "lessonNumber"))
	if err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "lesson number must be an integer", "lessonNumber", http.StatusBadRequest))
		return
	}

	entries, err := h.service.ListByLesson(r.Context(), lessonNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"vocabularies": entries}, nil)
}

func (h *VocabularyHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"vocabularies": entries}, nil)
}

func (h *VocabularyHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.VocabularyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	entry, err := h.service.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, entry, nil)
}

func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	vocabularyID := chi.URLParam(r, "vocabularyID")
	if vocabularyID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "vocabulary id is required", "vocabularyID", http.StatusBadRequest))
		return
	}

	var payload model.VocabularyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if err := h.service.Update(r.Context(), actorFromRequest(r), vocabularyID, payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"updated": true}, nil)
}

func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vocabularyID := chi.URLParam(r, "vocabularyID")
	if vocabularyID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "vocabulary id is required", "vocabularyID", http.StatusBadRequest))
		return
	}

	if err := h.service.Delete(r.Context(), actorFromRequest(r), vocabularyID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
