package mysql

import (
	"communityhub/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

type PostFilter struct {
	CommunityID uint64
	AuthorID    uint64
	Search      string
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, "id = ? AND status = 0", id).Error
	return &post, err
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *PostRepository) SetStatus(id uint64, status int) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *PostRepository) List(f PostFilter, offset, limit int) ([]model.Post, int64, error) {
	var (
		list  []model.Post
		count int64
	)
	q := r.DB.Model(&model.Post{}).Where("status = 0")
	if f.CommunityID != 0 {
		q = q.Where("community_id = ?", f.CommunityID)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ?", "%"+f.Search+"%")
	}
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}
