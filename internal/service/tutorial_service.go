package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nihongo-server/internal/model"
	"nihongo-server/pkg/apierror"
)

type TutorialStore interface {
	List(ctx context.Context) ([]model.Tutorial, error)
	Insert(ctx context.Context, tutorial model.Tutorial) (model.Tutorial, error)
	Delete(ctx context.Context, id string) error
}

type TutorialService struct {
	tutorials TutorialStore
	audit     *AuditService
}

func NewTutorialService(tutorials TutorialStore, audit *AuditService) *TutorialService {
	return &TutorialService{tutorials: tutorials, audit: audit}
}

func (s *TutorialService) List(ctx context.Context) ([]model.Tutorial, error) {
	return s.tutorials.List(ctx)
}

func (s *TutorialService) Create(ctx context.Context, actor string, req model.TutorialRequest) (model.Tutorial, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Link = strings.TrimSpace(req.Link)

	if req.Title == "" {
		return model.Tutorial{}, apierror.New("BAD_REQUEST", "title is required", "title", http.StatusBadRequest)
	}
	if parsed, err := url.Parse(req.Link); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return model.Tutorial{}, apierror.New("BAD_REQUEST", "link must be an absolute URL", "link", http.StatusBadRequest)
	}

	tutorial, err := s.tutorials.Insert(ctx, model.Tutorial{
		Title:     req.Title,
		Link:      req.Link,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return model.Tutorial{}, err
	}

	s.audit.Record(ctx, actor, model.AuditActionCreate, "tutorial/"+tutorial.ID.Hex(), tutorial.Title)
	return tutorial, nil
}

func (s *TutorialService) Delete(ctx context.Context, actor string, id string) error {
	if err := s.tutorials.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditActionDelete, "tutorial/"+id, "")
	return nil
}
