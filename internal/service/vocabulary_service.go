package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"nihongo-server/internal/model"
	"nihongo-server/pkg/apierror"
)

type VocabularyStore interface {
	ListByLesson(ctx context.Context, lessonNumber int) ([]model.Vocabulary, error)
	ListAll(ctx context.Context) ([]model.Vocabulary, error)
	Insert(ctx context.Context, entry model.Vocabulary) (model.Vocabulary, error)
	Update(ctx context.Context, id string, entry model.Vocabulary) error
	Delete(ctx context.Context, id string) error
}

type VocabularyService struct {
	vocabularies VocabularyStore
	audit        *AuditService
}

func NewVocabularyService(vocabularies VocabularyStore, audit *AuditService) *VocabularyService {
	return &VocabularyService{vocabularies: vocabularies, audit: audit}
}

func (s *VocabularyService) ListByLesson(ctx context.Context, lessonNumber int) ([]model.Vocabulary, error) {
	if lessonNumber <= 0 {
		return nil, apierror.New("BAD_REQUEST", "lesson number must be positive", "lesson_no", http.StatusBadRequest)
	}
	return s.vocabularies.ListByLesson(ctx, lessonNumber)
}

func (s *VocabularyService) ListAll(ctx context.Context) ([]model.Vocabulary, error) {
	return s.vocabularies.ListAll(ctx)
}

func (s *VocabularyService) Create(ctx context.Context, actor string, req model.VocabularyRequest) (model.Vocabulary, error) {
	if err := validateVocabulary(req); err != nil {
		return model.Vocabulary{}, err
	}

	entry, err := s.vocabularies.Insert(ctx, model.Vocabulary{
		Word:          strings.TrimSpace(req.Word),
		Pronunciation: strings.TrimSpace(req.Pronunciation),
		Meaning:       strings.TrimSpace(req.Meaning),
		WhenToSay:     strings.TrimSpace(req.WhenToSay),
		LessonNumber:  req.LessonNumber,
		CreatedBy:     actor,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return model.Vocabulary{}, err
	}

	s.audit.Record(ctx, actor, model.AuditActionCreate, "vocabulary/"+entry.ID.Hex(), entry.Word)
	return entry, nil
}

func (s *VocabularyService) Update(ctx context.Context, actor string, id string, req model.VocabularyRequest) error {
	if err := validateVocabulary(req); err != nil {
		return err
	}

	err := s.vocabularies.Update(ctx, id, model.Vocabulary{
		Word:          strings.TrimSpace(req.Word),
		Pronunciation: strings.TrimSpace(req.Pronunciation),
		Meaning:       strings.TrimSpace(req.Meaning),
		WhenToSay:     strings.TrimSpace(req.WhenToSay),
		LessonNumber:  req.LessonNumber,
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionUpdate, "vocabulary/"+id, req.Word)
	return nil
}

func (s *VocabularyService) Delete(ctx context.Context, actor string, id string) error {
	if err := s.vocabularies.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "vocabulary/"+id, "")
	return nil
}

func validateVocabulary(req model.VocabularyRequest) error {
	if strings.TrimSpace(req.Word) == "" {
		return apierror.New("BAD_REQUEST", "word is required", "word", http.StatusBadRequest)
	}
	if req.LessonNumber <= 0 {
		return apierror.New("BAD_REQUEST", "lesson number must be positive", "lesson_no", http.StatusBadRequest)
	}
	return nil
}
