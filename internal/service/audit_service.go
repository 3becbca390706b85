package service

import (
	"context"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"

	"go.uber.org/zap"
)

// AuditProducer publishes audit entries to the broker; the kafka audit
// writer satisfies it and a nil producer is a no-op.
type AuditProducer interface {
	Publish(ctx context.Context, entry *model.AuditLog) error
}

type AuditService struct {
	repo     *mysql.AuditRepository
	producer AuditProducer
	log      *zap.Logger
}

func NewAuditService(repo *mysql.AuditRepository, producer AuditProducer, log *zap.Logger) *AuditService {
	return &AuditService{repo: repo, producer: producer, log: log}
}

// Record is best-effort: audit failures are logged, never surfaced to the
// request that triggered them.
func (s *AuditService) Record(ctx context.Context, actorID uint64, action, targetType string, targetID uint64, detail string) {
	entry := &model.AuditLog{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	}
	if err := s.repo.Create(entry); err != nil {
		s.log.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}

	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, entry); err != nil {
		s.log.Warn("audit publish failed", zap.String("action", action), zap.Error(err))
	}
}

// List expects page/limit already clamped by the handler.
func (s *AuditService) List(f mysql.AuditFilter, page, limit int) ([]model.AuditLog, int64, error) {
	list, count, err := s.repo.List(f, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}
