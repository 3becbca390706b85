package service

import (
	"context"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"
)

type ConfigurationService struct {
	repo  *mysql.ConfigRepository
	audit *AuditService
}

func NewConfigurationService(repo *mysql.ConfigRepository, audit *AuditService) *ConfigurationService {
	return &ConfigurationService{repo: repo, audit: audit}
}

func (s *ConfigurationService) Create(ctx context.Context, adminID uint64, key, value, description string) (*model.Configuration, error) {
	if key == "" {
		return nil, ErrInvalid
	}
	c := &model.Configuration{
		Key:         key,
		Value:       value,
		Description: description,
		UpdatedBy:   adminID,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, wrapDBErr(err)
	}
	s.audit.Record(ctx, adminID, "configuration.create", "configuration", c.ID, key)
	return c, nil
}

func (s *ConfigurationService) GetByKey(key string) (*model.Configuration, error) {
	c, err := s.repo.FindByKey(key)
	return c, wrapDBErr(err)
}

func (s *ConfigurationService) Update(ctx context.Context, adminID, id uint64, value, description string) (*model.Configuration, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	c.Value = value
	c.Description = description
	c.UpdatedBy = adminID
	if err := s.repo.Update(c); err != nil {
		return nil, wrapDBErr(err)
	}
	s.audit.Record(ctx, adminID, "configuration.update", "configuration", id, c.Key)
	return c, nil
}

func (s *ConfigurationService) Delete(ctx context.Context, adminID, id uint64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.audit.Record(ctx, adminID, "configuration.delete", "configuration", id, "")
	return nil
}

func (s *ConfigurationService) List(page, limit int) ([]model.Configuration, int64, error) {
	list, count, err := s.repo.List(pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}
