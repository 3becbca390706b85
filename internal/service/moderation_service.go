package service

import (
	"context"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"
)

const (
	ResolveDismiss = "dismiss"
	ResolveRemove  = "remove"
)

type ModerationService struct {
	repo     *mysql.ReportRepository
	posts    *mysql.PostRepository
	comments *mysql.CommentRepository
	audit    *AuditService
}

func NewModerationService(repo *mysql.ReportRepository, posts *mysql.PostRepository, comments *mysql.CommentRepository, audit *AuditService) *ModerationService {
	return &ModerationService{repo: repo, posts: posts, comments: comments, audit: audit}
}

// targetAuthor resolves the author of a report target regardless of its
// current status (removed targets must still be appealable).
func (s *ModerationService) targetAuthor(targetType string, targetID uint64) (uint64, error) {
	switch targetType {
	case model.TargetPost:
		var post model.Post
		if err := s.posts.DB.First(&post, targetID).Error; err != nil {
			return 0, wrapDBErr(err)
		}
		return post.AuthorID, nil
	case model.TargetComment:
		var comment model.Comment
		if err := s.comments.DB.First(&comment, targetID).Error; err != nil {
			return 0, wrapDBErr(err)
		}
		return comment.AuthorID, nil
	default:
		return 0, ErrInvalid
	}
}

func (s *ModerationService) Report(ctx context.Context, reporterID uint64, targetType string, targetID uint64, reason string) (*model.Report, error) {
	if reason == "" {
		return nil, ErrInvalid
	}
	switch targetType {
	case model.TargetPost:
		if _, err := s.posts.FindByID(targetID); err != nil {
			return nil, wrapDBErr(err)
		}
	case model.TargetComment:
		if _, err := s.comments.FindByID(targetID); err != nil {
			return nil, wrapDBErr(err)
		}
	default:
		return nil, ErrInvalid
	}

	open, err := s.repo.HasOpen(reporterID, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDuplicate
	}

	report := &model.Report{
		ReporterID: reporterID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
	}
	if err := s.repo.Create(report); err != nil {
		return nil, wrapDBErr(err)
	}
	return report, nil
}

func (s *ModerationService) GetReport(id uint64) (*model.Report, error) {
	report, err := s.repo.FindByID(id)
	return report, wrapDBErr(err)
}

func (s *ModerationService) ListReports(status *int, page, limit int) ([]model.Report, int64, error) {
	list, count, err := s.repo.List(status, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}

// Resolve closes an open report. "remove" takes the target down, "dismiss"
// leaves it alone.
func (s *ModerationService) Resolve(ctx context.Context, adminID, reportID uint64, action string) (*model.Report, error) {
	report, err := s.repo.FindByID(reportID)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	if report.Status != model.ReportOpen {
		return nil, ErrInvalid
	}

	var status int
	switch action {
	case ResolveDismiss:
		status = model.ReportDismissed
	case ResolveRemove:
		status = model.ReportRemoved
		if err := s.setTargetStatus(report, model.StatusRemoved); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalid
	}

	if err := s.repo.Resolve(reportID, status, adminID); err != nil {
		return nil, err
	}
	report.Status = status
	report.ResolvedBy = adminID
	s.audit.Record(ctx, adminID, "report.resolve", report.TargetType, report.TargetID, action)
	return report, nil
}

func (s *ModerationService) setTargetStatus(report *model.Report, status int) error {
	switch report.TargetType {
	case model.TargetPost:
		return s.posts.SetStatus(report.TargetID, status)
	case model.TargetComment:
		return s.comments.SetStatus(report.TargetID, status)
	default:
		return ErrInvalid
	}
}

// Appeal lets the removed target's author contest the removal, once per
// report.
func (s *ModerationService) Appeal(ctx context.Context, authorID, reportID uint64, statement string) (*model.Appeal, error) {
	if statement == "" {
		return nil, ErrInvalid
	}
	report, err := s.repo.FindByID(reportID)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	if report.Status != model.ReportRemoved {
		return nil, ErrInvalid
	}
	targetAuthor, err := s.targetAuthor(report.TargetType, report.TargetID)
	if err != nil {
		return nil, err
	}
	if targetAuthor != authorID {
		return nil, ErrForbidden
	}

	appeal := &model.Appeal{
		ReportID:  reportID,
		AuthorID:  authorID,
		Statement: statement,
	}
	if err := s.repo.CreateAppeal(appeal); err != nil {
		return nil, wrapDBErr(err)
	}
	return appeal, nil
}

func (s *ModerationService) ListAppeals(status *int, page, limit int) ([]model.Appeal, int64, error) {
	list, count, err := s.repo.ListAppeals(status, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}

// ResolveAppeal accepts (restoring the target) or rejects a pending appeal.
func (s *ModerationService) ResolveAppeal(ctx context.Context, adminID, appealID uint64, accept bool) (*model.Appeal, error) {
	appeal, err := s.repo.FindAppealByID(appealID)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	if appeal.Status != model.AppealPending {
		return nil, ErrInvalid
	}
	report, err := s.repo.FindByID(appeal.ReportID)
	if err != nil {
		return nil, wrapDBErr(err)
	}

	status := model.AppealRejected
	outcome := "reject"
	if accept {
		status = model.AppealAccepted
		outcome = "accept"
		if err := s.setTargetStatus(report, model.StatusNormal); err != nil {
			return nil, err
		}
	}
	if err := s.repo.ResolveAppeal(appealID, status, adminID); err != nil {
		return nil, err
	}
	appeal.Status = status
	appeal.ResolvedBy = adminID
	s.audit.Record(ctx, adminID, "appeal.resolve", report.TargetType, report.TargetID, outcome)
	return appeal, nil
}
