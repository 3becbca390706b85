package mysql

import (
	"communityhub/internal/model"

	"gorm.io/gorm"
)

type ConfigRepository struct {
	DB *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{DB: db}
}

func (r *ConfigRepository) Create(c *model.Configuration) error {
	return r.DB.Create(c).Error
}

func (r *ConfigRepository) FindByID(id uint64) (*model.Configuration, error) {
	var c model.Configuration
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *ConfigRepository) FindByKey(key string) (*model.Configuration, error) {
	var c model.Configuration
	err := r.DB.Where("`key` = ?", key).First(&c).Error
	return &c, err
}

func (r *ConfigRepository) Update(c *model.Configuration) error {
	return r.DB.Save(c).Error
}

// Delete is a hard delete; configurations are admin-managed and idempotent
// to remove.
func (r *ConfigRepository) Delete(id uint64) error {
	return r.DB.Delete(&model.Configuration{}, id).Error
}

func (r *ConfigRepository) List(offset, limit int) ([]model.Configuration, int64, error) {
	var (
		list  []model.Configuration
		count int64
	)
	q := r.DB.Model(&model.Configuration{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("`key` ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}
