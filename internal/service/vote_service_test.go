package service

import (
	"context"
	"testing"

	"communityhub/internal/model"
	"communityhub/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVoteFixture(t *testing.T) (*VoteService, *postFixture, *model.Post, *memScoreCache) {
	t.Helper()
	f := newPostFixture(t)
	cache := newMemScoreCache()
	svc := NewVoteService(
		mysql.NewVoteRepository(f.db),
		mysql.NewPostRepository(f.db),
		mysql.NewCommentRepository(f.db),
		cache,
	)
	post, err := f.posts.Create(context.Background(), f.author.ID, f.community.ID, "voting", "")
	require.NoError(t, err)
	return svc, f, post, cache
}

func TestVoteCast(t *testing.T) {
	svc, f, post, _ := newVoteFixture(t)
	ctx := context.Background()

	t.Run("upvote counts", func(t *testing.T) {
		require.NoError(t, svc.Cast(ctx, f.stranger.ID, model.TargetPost, post.ID, 1))
		score, err := svc.Score(ctx, model.TargetPost, post.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, score)
	})

	t.Run("repeat same value is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Cast(ctx, f.stranger.ID, model.TargetPost, post.ID, 1))
		score, err := svc.Score(ctx, model.TargetPost, post.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, score)
	})

	t.Run("flip swings by two", func(t *testing.T) {
		require.NoError(t, svc.Cast(ctx, f.stranger.ID, model.TargetPost, post.ID, -1))
		score, err := svc.Score(ctx, model.TargetPost, post.ID)
		require.NoError(t, err)
		assert.EqualValues(t, -1, score)
	})

	t.Run("zero clears", func(t *testing.T) {
		require.NoError(t, svc.Cast(ctx, f.stranger.ID, model.TargetPost, post.ID, 0))
		score, err := svc.Score(ctx, model.TargetPost, post.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, score)

		mine, err := svc.Mine(f.stranger.ID, model.TargetPost, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, mine)
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Cast(ctx, f.stranger.ID, model.TargetPost, post.ID, 2), ErrInvalid)
	})

	t.Run("voting a missing target is 404", func(t *testing.T) {
		assert.ErrorIs(t, svc.Cast(ctx, f.stranger.ID, model.TargetPost, 9999, 1), ErrNotFound)
	})
}

func TestVoteScoreColumnAndCache(t *testing.T) {
	svc, f, post, cache := newVoteFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Cast(ctx, f.author.ID, model.TargetPost, post.ID, 1))
	require.NoError(t, svc.Cast(ctx, f.stranger.ID, model.TargetPost, post.ID, 1))
	require.NoError(t, svc.Cast(ctx, f.admin.ID, model.TargetPost, post.ID, -1))

	t.Run("denormalized column tracks the sum", func(t *testing.T) {
		got, err := f.posts.Get(post.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, got.Score)
	})

	t.Run("miss recounts and warms the cache", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx, model.TargetPost, post.ID))
		score, err := svc.Score(ctx, model.TargetPost, post.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, score)

		cached, ok, err := cache.Get(ctx, model.TargetPost, post.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.EqualValues(t, 1, cached)
	})
}

func TestVoteOnComment(t *testing.T) {
	svc, f, post, _ := newVoteFixture(t)
	ctx := context.Background()

	comment, err := f.comments.Create(ctx, f.author.ID, post.ID, 0, "comment to vote on")
	require.NoError(t, err)

	require.NoError(t, svc.Cast(ctx, f.stranger.ID, model.TargetComment, comment.ID, 1))
	score, err := svc.Score(ctx, model.TargetComment, comment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, score)

	got, err := f.comments.Get(comment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Score)
}
