package service

import (
	"context"
	"fmt"
	"testing"

	"communityhub/internal/model"
	"communityhub/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type postFixture struct {
	posts     *PostService
	comments  *CommentService
	community *model.Community
	author    *model.User
	stranger  *model.User
	admin     *model.User
	db        *gorm.DB
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	db := newTestDB(t)
	communities := NewCommunityService(
		mysql.NewCommunityRepository(db),
		mysql.NewMemberRepository(db),
		mysql.NewCategoryRepository(db),
		newTestAudit(t, db),
	)
	posts := NewPostService(
		mysql.NewPostRepository(db),
		mysql.NewCommunityRepository(db),
		mysql.NewMemberRepository(db),
	)
	comments := NewCommentService(mysql.NewCommentRepository(db), mysql.NewPostRepository(db))

	author := createUser(t, db, "alice", model.RoleMember)
	stranger := createUser(t, db, "bob", model.RoleMember)
	admin := createUser(t, db, "root", model.RoleAdmin)

	community, err := communities.Create(context.Background(), author.ID, "gophers", "", 0)
	require.NoError(t, err)

	return &postFixture{
		posts:     posts,
		comments:  comments,
		community: community,
		author:    author,
		stranger:  stranger,
		admin:     admin,
		db:        db,
	}
}

func TestPostCreate(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	t.Run("non-member cannot post", func(t *testing.T) {
		_, err := f.posts.Create(ctx, f.stranger.ID, f.community.ID, "hello", "body")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("member posts and reads back", func(t *testing.T) {
		post, err := f.posts.Create(ctx, f.author.ID, f.community.ID, "hello", "body")
		require.NoError(t, err)

		got, err := f.posts.Get(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Title)
		assert.Equal(t, "body", got.Content)
		assert.Equal(t, f.author.ID, got.AuthorID)
	})

	t.Run("unknown community is 404", func(t *testing.T) {
		_, err := f.posts.Create(ctx, f.author.ID, 9999, "hello", "body")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostOwnership(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.posts.Create(ctx, f.author.ID, f.community.ID, "hello", "body")
	require.NoError(t, err)

	t.Run("stranger cannot update", func(t *testing.T) {
		_, err := f.posts.Update(ctx, memberClaims(f.stranger), post.ID, "hijack", "")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := f.posts.Delete(ctx, memberClaims(f.stranger), post.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin can update", func(t *testing.T) {
		updated, err := f.posts.Update(ctx, memberClaims(f.admin), post.ID, "moderated", "body")
		require.NoError(t, err)
		assert.Equal(t, "moderated", updated.Title)
	})

	t.Run("author delete is idempotent and hides the post", func(t *testing.T) {
		require.NoError(t, f.posts.Delete(ctx, memberClaims(f.author), post.ID))
		require.NoError(t, f.posts.Delete(ctx, memberClaims(f.author), post.ID))
		_, err := f.posts.Get(post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteSurfacesStorageErrors(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.posts.Create(ctx, f.author.ID, f.community.ID, "hello", "body")
	require.NoError(t, err)
	comment, err := f.comments.Create(ctx, f.stranger.ID, post.ID, 0, "nice post")
	require.NoError(t, err)

	// Only a missing row counts as already-gone; a broken store must not
	// be reported as a successful delete.
	t.Run("post delete", func(t *testing.T) {
		require.NoError(t, f.db.Migrator().DropTable(&model.Post{}))
		err := f.posts.Delete(ctx, memberClaims(f.author), post.ID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("comment delete", func(t *testing.T) {
		require.NoError(t, f.db.Migrator().DropTable(&model.Comment{}))
		err := f.comments.Delete(ctx, memberClaims(f.stranger), comment.ID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestPostListFilters(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := f.posts.Create(ctx, f.author.ID, f.community.ID, fmt.Sprintf("topic %d", i), "")
		require.NoError(t, err)
	}
	deleted, err := f.posts.Create(ctx, f.author.ID, f.community.ID, "topic gone", "")
	require.NoError(t, err)
	require.NoError(t, f.posts.Delete(ctx, memberClaims(f.author), deleted.ID))

	t.Run("deleted posts excluded", func(t *testing.T) {
		_, count, err := f.posts.List(mysql.PostFilter{CommunityID: f.community.ID}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 7, count)
	})

	t.Run("title search", func(t *testing.T) {
		list, count, err := f.posts.List(mysql.PostFilter{Search: "topic 3"}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
		require.Len(t, list, 1)
		assert.Equal(t, "topic 3", list[0].Title)
	})

	t.Run("pagination slices", func(t *testing.T) {
		list, count, err := f.posts.List(mysql.PostFilter{CommunityID: f.community.ID}, 2, 3)
		require.NoError(t, err)
		assert.EqualValues(t, 7, count)
		assert.Len(t, list, 3)

		last, count, err := f.posts.List(mysql.PostFilter{CommunityID: f.community.ID}, 3, 3)
		require.NoError(t, err)
		assert.EqualValues(t, 7, count)
		assert.Len(t, last, 1)
	})
}

func TestCommentLifecycle(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.posts.Create(ctx, f.author.ID, f.community.ID, "hello", "body")
	require.NoError(t, err)

	comment, err := f.comments.Create(ctx, f.stranger.ID, post.ID, 0, "nice post")
	require.NoError(t, err)

	t.Run("reply must share the post", func(t *testing.T) {
		other, err := f.posts.Create(ctx, f.author.ID, f.community.ID, "second", "")
		require.NoError(t, err)
		_, err = f.comments.Create(ctx, f.author.ID, other.ID, comment.ID, "misplaced reply")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("reply on same post works", func(t *testing.T) {
		reply, err := f.comments.Create(ctx, f.author.ID, post.ID, comment.ID, "thanks")
		require.NoError(t, err)
		assert.Equal(t, comment.ID, reply.ParentID)
	})

	t.Run("only author or admin mutates", func(t *testing.T) {
		_, err := f.comments.Update(ctx, memberClaims(f.author), comment.ID, "edited by author of post")
		assert.ErrorIs(t, err, ErrForbidden)

		updated, err := f.comments.Update(ctx, memberClaims(f.stranger), comment.ID, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
	})

	t.Run("list excludes deleted", func(t *testing.T) {
		require.NoError(t, f.comments.Delete(ctx, memberClaims(f.stranger), comment.ID))
		list, count, err := f.comments.ListByPost(post.ID, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
		require.Len(t, list, 1)
		assert.Equal(t, "thanks", list[0].Content)
	})
}
