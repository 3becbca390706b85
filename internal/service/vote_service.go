package service

import (
	"context"

	"communityhub/internal/model"
	"communityhub/internal/repository/mysql"
)

// ScoreCache is what the redis cache exposes; tests swap in a map-backed
// fake.
type ScoreCache interface {
	Get(ctx context.Context, targetType string, targetID uint64) (int64, bool, error)
	Set(ctx context.Context, targetType string, targetID uint64, score int64) error
	Bump(ctx context.Context, targetType string, targetID uint64, delta int64) error
	Invalidate(ctx context.Context, targetType string, targetID uint64) error
}

type VoteService struct {
	repo     *mysql.VoteRepository
	posts    *mysql.PostRepository
	comments *mysql.CommentRepository
	cache    ScoreCache
}

func NewVoteService(repo *mysql.VoteRepository, posts *mysql.PostRepository, comments *mysql.CommentRepository, cache ScoreCache) *VoteService {
	return &VoteService{repo: repo, posts: posts, comments: comments, cache: cache}
}

func (s *VoteService) targetExists(targetType string, targetID uint64) error {
	switch targetType {
	case model.TargetPost:
		_, err := s.posts.FindByID(targetID)
		return wrapDBErr(err)
	case model.TargetComment:
		_, err := s.comments.FindByID(targetID)
		return wrapDBErr(err)
	default:
		return ErrInvalid
	}
}

// Cast applies a vote: value 1/-1 sets, 0 clears, repeating the current
// value is a no-op. Cache upkeep is best-effort; a failed bump invalidates
// so the next read recounts.
func (s *VoteService) Cast(ctx context.Context, userID uint64, targetType string, targetID uint64, value int) error {
	if value < -1 || value > 1 {
		return ErrInvalid
	}
	if err := s.targetExists(targetType, targetID); err != nil {
		return err
	}
	delta, err := s.repo.Apply(ctx, userID, targetType, targetID, value)
	if err != nil {
		return wrapDBErr(err)
	}
	if delta != 0 {
		if err := s.cache.Bump(ctx, targetType, targetID, delta); err != nil {
			_ = s.cache.Invalidate(ctx, targetType, targetID)
		}
	}
	return nil
}

// Score reads the cached total, recounting from the vote rows on a miss
// and warming the key.
func (s *VoteService) Score(ctx context.Context, targetType string, targetID uint64) (int64, error) {
	if err := s.targetExists(targetType, targetID); err != nil {
		return 0, err
	}
	if score, ok, err := s.cache.Get(ctx, targetType, targetID); err == nil && ok {
		return score, nil
	}
	score, err := s.repo.Sum(ctx, targetType, targetID)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Set(ctx, targetType, targetID, score)
	return score, nil
}

// Mine returns the caller's current vote value on a target, 0 when none.
func (s *VoteService) Mine(userID uint64, targetType string, targetID uint64) (int, error) {
	vote, err := s.repo.Find(userID, targetType, targetID)
	if err != nil {
		if wrapDBErr(err) == ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return vote.Value, nil
}
