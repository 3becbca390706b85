package mysql

import (
	"communityhub/internal/model"

	"gorm.io/gorm"
)

type SearchLogRepository struct {
	DB *gorm.DB
}

func NewSearchLogRepository(db *gorm.DB) *SearchLogRepository {
	return &SearchLogRepository{DB: db}
}

func (r *SearchLogRepository) Create(entry *model.SearchLog) error {
	return r.DB.Create(entry).Error
}

func (r *SearchLogRepository) List(offset, limit int) ([]model.SearchLog, int64, error) {
	var (
		list  []model.SearchLog
		count int64
	)
	q := r.DB.Model(&model.SearchLog{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}
