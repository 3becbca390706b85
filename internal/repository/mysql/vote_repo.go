package mysql

import (
	"context"
	"errors"

	"communityhub/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

// Apply upserts the caller's vote and keeps the target's score column in
// step, all in one transaction. value 0 retracts. The returned delta is the
// net score change (0 when the call was a no-op).
func (r *VoteRepository) Apply(ctx context.Context, userID uint64, targetType string, targetID uint64, value int) (int64, error) {
	var delta int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Vote
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			userID, targetType, targetID).First(&existing).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		switch {
		case !found && value == 0:
			return nil
		case !found:
			if err := tx.Create(&model.Vote{
				UserID:     userID,
				TargetType: targetType,
				TargetID:   targetID,
				Value:      value,
			}).Error; err != nil {
				return err
			}
			delta = int64(value)
		case value == 0:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			delta = -int64(existing.Value)
		case value == existing.Value:
			return nil
		default:
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				return err
			}
			delta = int64(value - existing.Value)
		}

		if delta == 0 {
			return nil
		}
		return bumpScore(tx, targetType, targetID, delta)
	})
	return delta, err
}

func bumpScore(tx *gorm.DB, targetType string, targetID uint64, delta int64) error {
	var target any
	switch targetType {
	case model.TargetPost:
		target = &model.Post{}
	case model.TargetComment:
		target = &model.Comment{}
	default:
		return errors.New("unknown vote target")
	}
	return tx.Model(target).Where("id = ?", targetID).
		UpdateColumn("score", gorm.Expr("score + ?", delta)).Error
}

func (r *VoteRepository) Find(userID uint64, targetType string, targetID uint64) (*model.Vote, error) {
	var vote model.Vote
	err := r.DB.Where("user_id = ? AND target_type = ? AND target_id = ?",
		userID, targetType, targetID).First(&vote).Error
	return &vote, err
}

// Sum recounts a target's score from the vote rows, used to rebuild the
// cache after a miss.
func (r *VoteRepository) Sum(ctx context.Context, targetType string, targetID uint64) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.Vote{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Select("COALESCE(SUM(value), 0)").Scan(&total).Error
	return total, err
}
