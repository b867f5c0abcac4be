package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"nihongo-server/internal/model"
	"nihongo-server/pkg/apierror"
)

type LessonStore interface {
	List(ctx context.Context) ([]model.LessonSummary, error)
	Insert(ctx context.Context, lesson model.Lesson) (model.Lesson, error)
	Update(ctx context.Context, id string, name string, number int) error
	Delete(ctx context.Context, id string) error
}

type LessonService struct {
	lessons LessonStore
	audit   *AuditService
}

func NewLessonService(lessons LessonStore, audit *AuditService) *LessonService {
	return &LessonService{lessons: lessons, audit: audit}
}

func (s *LessonService) List(ctx context.Context) ([]model.LessonSummary, error) {
	return s.lessons.List(ctx)
}

func (s *LessonService) Create(ctx context.Context, actor string, req model.LessonRequest) (model.Lesson, error) {
	if err := validateLesson(req); err != nil {
		return model.Lesson{}, err
	}

	lesson, err := s.lessons.Insert(ctx, model.Lesson{
		Name:      strings.TrimSpace(req.Name),
		Number:    req.Number,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return model.Lesson{}, err
	}

	s.audit.Record(ctx, actor, model.AuditActionCreate, "lesson/"+lesson.ID.Hex(), lesson.Name)
	return lesson, nil
}

func (s *LessonService) Update(ctx context.Context, actor string, id string, req model.LessonRequest) error {
	if err := validateLesson(req); err != nil {
		return err
	}

	if err := s.lessons.Update(ctx, id, strings.TrimSpace(req.Name), req.Number); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionUpdate, "lesson/"+id, req.Name)
	return nil
}

func (s *LessonService) Delete(ctx context.Context, actor string, id string) error {
	if err := s.lessons.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "lesson/"+id, "")
	return nil
}

func validateLesson(req model.LessonRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apierror.New("BAD_REQUEST", "lesson name is required", "name", http.StatusBadRequest)
	}
	if req.Number <= 0 {
		return apierror.New("BAD_REQUEST", "lesson number must be positive", "number", http.StatusBadRequest)
	}
	return nil
}
