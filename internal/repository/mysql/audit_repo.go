package mysql

import (
	"communityhub/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Create(entry *model.AuditLog) error {
	return r.DB.Create(entry).Error
}

type AuditFilter struct {
	ActorID uint64
	Action  string
}

func (r *AuditRepository) List(f AuditFilter, offset, limit int) ([]model.AuditLog, int64, error) {
	var (
		list  []model.AuditLog
		count int64
	)
	q := r.DB.Model(&model.AuditLog{})
	if f.ActorID != 0 {
		q = q.Where("actor_id = ?", f.ActorID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}
