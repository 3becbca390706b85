package mysql

import (
	"communityhub/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.First(&comment, "id = ? AND status = 0", id).Error
	return &comment, err
}

func (r *CommentRepository) Update(comment *model.Comment) error {
	return r.DB.Save(comment).Error
}

func (r *CommentRepository) SetStatus(id uint64, status int) error {
	return r.DB.Model(&model.Comment{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *CommentRepository) ListByPost(postID uint64, offset, limit int) ([]model.Comment, int64, error) {
	var (
		list  []model.Comment
		count int64
	)
	q := r.DB.Model(&model.Comment{}).Where("post_id = ? AND status = 0", postID)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at ASC, id ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}
