package service

import (
	"context"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"
)

type CategoryService struct {
	repo  *mysql.CategoryRepository
	audit *AuditService
}

func NewCategoryService(repo *mysql.CategoryRepository, audit *AuditService) *CategoryService {
	return &CategoryService{repo: repo, audit: audit}
}

func (s *CategoryService) Create(ctx context.Context, adminID uint64, name, description string) (*model.Category, error) {
	if name == "" {
		return nil, ErrInvalid
	}
	category := &model.Category{Name: name, Description: description}
	if err := s.repo.Create(category); err != nil {
		return nil, wrapDBErr(err)
	}
	s.audit.Record(ctx, adminID, "category.create", "category", category.ID, name)
	return category, nil
}

func (s *CategoryService) Get(id uint64) (*model.Category, error) {
	category, err := s.repo.FindByID(id)
	return category, wrapDBErr(err)
}

func (s *CategoryService) Update(ctx context.Context, adminID, id uint64, name, description string) (*model.Category, error) {
	if name == "" {
		return nil, ErrInvalid
	}
	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	category.Name = name
	category.Description = description
	if err := s.repo.Update(category); err != nil {
		return nil, wrapDBErr(err)
	}
	s.audit.Record(ctx, adminID, "category.update", "category", id, name)
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, adminID, id uint64) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return wrapDBErr(err)
	}
	if err := s.repo.SoftDelete(id); err != nil {
		return err
	}
	s.audit.Record(ctx, adminID, "category.delete", "category", id, "")
	return nil
}

func (s *CategoryService) List(search string, page, limit int) ([]model.Category, int64, error) {
	list, count, err := s.repo.List(search, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}
