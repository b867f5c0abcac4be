package service

import (
	"context"
	"log/slog"
	"time"

	"nihongo-server/internal/model"
)

type AuditStore interface {
	Insert(ctx context.Context, entry model.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

const defaultAuditLimit = 100

// AuditService records security-relevant actions. A nil *AuditService
// is valid and records nothing, which keeps tests and callers simple.
type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

// Record is best effort: failures are logged, never propagated.
func (s *AuditService) Record(ctx context.Context, actor string, action string, target string, detail string) {
	if s == nil || s.store == nil {
		return
	}

	entry := model.AuditEntry{
		Actor:     actor,
		Action:    action,
		Target:    target,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, entry); err != nil {
		slog.Warn("audit record failed", "action", action, "actor", actor, "error", err)
	}
}

func (s *AuditService) List(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultAuditLimit
	}
	return s.store.ListRecent(ctx, limit)
}
