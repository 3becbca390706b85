package mysql

import (
	"communityhub/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(c *model.Category) error {
	return r.DB.Create(c).Error
}

func (r *CategoryRepository) FindByID(id uint64) (*model.Category, error) {
	var c model.Category
	err := r.DB.First(&c, "id = ? AND status = 0", id).Error
	return &c, err
}

func (r *CategoryRepository) Update(c *model.Category) error {
	return r.DB.Save(c).Error
}

func (r *CategoryRepository) SoftDelete(id uint64) error {
	return r.DB.Model(&model.Category{}).Where("id = ?", id).
		Update("status", model.StatusDeleted).Error
}

func (r *CategoryRepository) List(search string, offset, limit int) ([]model.Category, int64, error) {
	var (
		list  []model.Category
		count int64
	)
	q := r.DB.Model(&model.Category{}).Where("status = 0")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}
