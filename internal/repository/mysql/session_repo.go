package mysql

import (
	"time"

	"communityhub/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(s *model.Session) error {
	return r.DB.Create(s).Error
}

func (r *SessionRepository) FindByID(id string) (*model.Session, error) {
	var s model.Session
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SessionRepository) ListByUser(userID uint64, offset, limit int) ([]model.Session, int64, error) {
	var (
		list  []model.Session
		count int64
	)
	q := r.DB.Model(&model.Session{}).Where("user_id = ?", userID)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}

func (r *SessionRepository) Revoke(id string, now time.Time) error {
	return r.DB.Model(&model.Session{}).Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

func (r *SessionRepository) RevokeAllForUser(userID uint64, now time.Time) error {
	return r.DB.Model(&model.Session{}).Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}
