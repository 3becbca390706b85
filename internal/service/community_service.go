package service

import (
	"context"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"
)

type CommunityService struct {
	repo       *mysql.CommunityRepository
	members    *mysql.MemberRepository
	categories *mysql.CategoryRepository
	audit      *AuditService
}

func NewCommunityService(repo *mysql.CommunityRepository, members *mysql.MemberRepository, categories *mysql.CategoryRepository, audit *AuditService) *CommunityService {
	return &CommunityService{repo: repo, members: members, categories: categories, audit: audit}
}

func (s *CommunityService) Create(ctx context.Context, userID uint64, name, description string, categoryID uint64) (*model.Community, error) {
	if name == "" {
		return nil, ErrInvalid
	}
	if categoryID != 0 {
		if _, err := s.categories.FindByID(categoryID); err != nil {
			return nil, wrapDBErr(err)
		}
	}

	community := &model.Community{
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		CreatorID:   userID,
	}
	if err := s.repo.Create(community); err != nil {
		return nil, wrapDBErr(err)
	}
	s.audit.Record(ctx, userID, "community.create", "community", community.ID, name)
	return community, nil
}

func (s *CommunityService) Get(id uint64) (*model.Community, error) {
	community, err := s.repo.FindByID(id)
	return community, wrapDBErr(err)
}

// canManage applies the ownership rule: creator or admin.
func canManage(ownerID uint64, actor *pkg.Claims) bool {
	return actor.UserID == ownerID || actor.Role == model.RoleAdmin
}

func (s *CommunityService) Update(ctx context.Context, actor *pkg.Claims, id uint64, description string, categoryID uint64) (*model.Community, error) {
	community, err := s.repo.FindByID(id)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	if !canManage(community.CreatorID, actor) {
		return nil, ErrForbidden
	}
	if categoryID != 0 {
		if _, err := s.categories.FindByID(categoryID); err != nil {
			return nil, wrapDBErr(err)
		}
	}
	community.Description = description
	community.CategoryID = categoryID
	if err := s.repo.Update(community); err != nil {
		return nil, wrapDBErr(err)
	}
	s.audit.Record(ctx, actor.UserID, "community.update", "community", id, "")
	return community, nil
}

func (s *CommunityService) Delete(ctx context.Context, actor *pkg.Claims, id uint64) error {
	community, err := s.repo.FindByID(id)
	if err != nil {
		return wrapDBErr(err)
	}
	if !canManage(community.CreatorID, actor) {
		return ErrForbidden
	}
	if err := s.repo.SoftDelete(id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.UserID, "community.delete", "community", id, community.Name)
	return nil
}

func (s *CommunityService) List(search string, categoryID uint64, page, limit int) ([]model.Community, int64, error) {
	list, count, err := s.repo.List(search, categoryID, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}

func (s *CommunityService) Join(userID, communityID uint64) error {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return wrapDBErr(err)
	}
	return s.members.Join(&model.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
	})
}

func (s *CommunityService) Leave(userID, communityID uint64) error {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return wrapDBErr(err)
	}
	return s.members.Leave(communityID, userID)
}

func (s *CommunityService) ListMembers(communityID uint64, page, limit int) ([]model.CommunityMember, int64, error) {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return nil, 0, wrapDBErr(err)
	}
	list, count, err := s.members.List(communityID, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}

func (s *CommunityService) ListRules(communityID uint64) ([]model.CommunityRule, error) {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return nil, wrapDBErr(err)
	}
	rules, err := s.repo.ListRules(communityID)
	return rules, wrapDBErr(err)
}

func (s *CommunityService) AddRule(ctx context.Context, actor *pkg.Claims, communityID uint64, text string) (*model.CommunityRule, error) {
	if text == "" {
		return nil, ErrInvalid
	}
	community, err := s.repo.FindByID(communityID)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	if !canManage(community.CreatorID, actor) {
		return nil, ErrForbidden
	}
	count, err := s.repo.CountRules(communityID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxRulesPerCommunity {
		return nil, ErrDuplicate
	}
	maxOrder, err := s.repo.MaxRuleOrder(communityID)
	if err != nil {
		return nil, err
	}
	rule := &model.CommunityRule{
		CommunityID: communityID,
		OrderIndex:  maxOrder + 1,
		Text:        text,
	}
	if err := s.repo.CreateRule(rule); err != nil {
		return nil, wrapDBErr(err)
	}
	s.audit.Record(ctx, actor.UserID, "community.rule.add", "community", communityID, text)
	return rule, nil
}

func (s *CommunityService) UpdateRule(ctx context.Context, actor *pkg.Claims, communityID, ruleID uint64, text string) (*model.CommunityRule, error) {
	if text == "" {
		return nil, ErrInvalid
	}
	community, err := s.repo.FindByID(communityID)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	if !canManage(community.CreatorID, actor) {
		return nil, ErrForbidden
	}
	rule, err := s.repo.FindRule(communityID, ruleID)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	rule.Text = text
	if err := s.repo.UpdateRule(rule); err != nil {
		return nil, wrapDBErr(err)
	}
	s.audit.Record(ctx, actor.UserID, "community.rule.update", "community", communityID, text)
	return rule, nil
}

func (s *CommunityService) DeleteRule(ctx context.Context, actor *pkg.Claims, communityID, ruleID uint64) error {
	community, err := s.repo.FindByID(communityID)
	if err != nil {
		return wrapDBErr(err)
	}
	if !canManage(community.CreatorID, actor) {
		return ErrForbidden
	}
	if err := s.repo.DeleteRule(communityID, ruleID); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.UserID, "community.rule.delete", "community", communityID, "")
	return nil
}
