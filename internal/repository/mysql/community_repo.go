package mysql

import (
	"communityhub/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

// Create inserts the community and makes the creator an owner-member in
// the same transaction.
func (r *CommunityRepository) Create(c *model.Community) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		mRepo := &MemberRepository{DB: tx}
		return mRepo.Join(&model.CommunityMember{
			CommunityID: c.ID,
			UserID:      c.CreatorID,
			Role:        1,
		})
	})
}

func (r *CommunityRepository) FindByID(id uint64) (*model.Community, error) {
	var c model.Community
	err := r.DB.First(&c, "id = ? AND status = 0", id).Error
	return &c, err
}

func (r *CommunityRepository) Update(c *model.Community) error {
	return r.DB.Save(c).Error
}

func (r *CommunityRepository) SoftDelete(id uint64) error {
	return r.DB.Model(&model.Community{}).Where("id = ?", id).
		Update("status", model.StatusDeleted).Error
}

func (r *CommunityRepository) List(search string, categoryID uint64, offset, limit int) ([]model.Community, int64, error) {
	var (
		list  []model.Community
		count int64
	)
	q := r.DB.Model(&model.Community{}).Where("status = 0")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, count, err
}

func (r *CommunityRepository) ListRules(communityID uint64) ([]model.CommunityRule, error) {
	var rules []model.CommunityRule
	err := r.DB.Where("community_id = ?", communityID).
		Order("order_index ASC").Find(&rules).Error
	return rules, err
}

func (r *CommunityRepository) CountRules(communityID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CommunityRule{}).
		Where("community_id = ?", communityID).Count(&count).Error
	return count, err
}

// MaxRuleOrder returns the highest order index in use, 0 when no rules
// exist. Deleted rules leave gaps, so the next index comes from the max
// rather than the count.
func (r *CommunityRepository) MaxRuleOrder(communityID uint64) (int, error) {
	var max int
	err := r.DB.Model(&model.CommunityRule{}).
		Where("community_id = ?", communityID).
		Select("COALESCE(MAX(order_index), 0)").Scan(&max).Error
	return max, err
}

func (r *CommunityRepository) CreateRule(rule *model.CommunityRule) error {
	return r.DB.Create(rule).Error
}

func (r *CommunityRepository) FindRule(communityID, ruleID uint64) (*model.CommunityRule, error) {
	var rule model.CommunityRule
	err := r.DB.First(&rule, "id = ? AND community_id = ?", ruleID, communityID).Error
	return &rule, err
}

func (r *CommunityRepository) UpdateRule(rule *model.CommunityRule) error {
	return r.DB.Save(rule).Error
}

// DeleteRule is idempotent: deleting an absent rule is not an error.
func (r *CommunityRepository) DeleteRule(communityID, ruleID uint64) error {
	return r.DB.Where("id = ? AND community_id = ?", ruleID, communityID).
		Delete(&model.CommunityRule{}).Error
}
