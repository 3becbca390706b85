package mysql

import (
	"communityhub/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) FindByID(id uint64) (*model.Report, error) {
	var report model.Report
	err := r.DB.First(&report, id).Error
	return &report, err
}

// HasOpen reports whether the reporter already has an unresolved report on
// the same target.
func (r *ReportRepository) HasOpen(reporterID uint64, targetType string, targetID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Report{}).
		Where("reporter_id = ? AND target_type = ? AND target_id = ? AND status = ?",
			reporterID, targetType, targetID, model.ReportOpen).
		Count(&count).Error
	return count > 0, err
}

func (r *ReportRepository) List(status *int, offset, limit int) ([]model.Report, int64, error) {
	var (
		list  []model.Report
		count int64
	)
	q := r.DB.Model(&model.Report{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}

func (r *ReportRepository) Resolve(id uint64, status int, adminID uint64) error {
	return r.DB.Model(&model.Report{}).Where("id = ? AND status = ?", id, model.ReportOpen).
		Updates(map[string]any{"status": status, "resolved_by": adminID}).Error
}

func (r *ReportRepository) CreateAppeal(a *model.Appeal) error {
	return r.DB.Create(a).Error
}

func (r *ReportRepository) FindAppealByID(id uint64) (*model.Appeal, error) {
	var a model.Appeal
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *ReportRepository) ListAppeals(status *int, offset, limit int) ([]model.Appeal, int64, error) {
	var (
		list  []model.Appeal
		count int64
	)
	q := r.DB.Model(&model.Appeal{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}

func (r *ReportRepository) ResolveAppeal(id uint64, status int, adminID uint64) error {
	return r.DB.Model(&model.Appeal{}).Where("id = ? AND status = ?", id, model.AppealPending).
		Updates(map[string]any{"status": status, "resolved_by": adminID}).Error
}
