package service

import (
	"context"
	"testing"

	"communityhub/internal/model"
	"communityhub/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModerationFixture(t *testing.T) (*ModerationService, *postFixture, *model.Post) {
	t.Helper()
	f := newPostFixture(t)
	svc := NewModerationService(
		mysql.NewReportRepository(f.db),
		mysql.NewPostRepository(f.db),
		mysql.NewCommentRepository(f.db),
		newTestAudit(t, f.db),
	)
	post, err := f.posts.Create(context.Background(), f.author.ID, f.community.ID, "reported", "body")
	require.NoError(t, err)
	return svc, f, post
}

func TestReportLifecycle(t *testing.T) {
	svc, f, post := newModerationFixture(t)
	ctx := context.Background()

	report, err := svc.Report(ctx, f.stranger.ID, model.TargetPost, post.ID, "spam")
	require.NoError(t, err)
	assert.Equal(t, model.ReportOpen, report.Status)

	t.Run("duplicate open report conflicts", func(t *testing.T) {
		_, err := svc.Report(ctx, f.stranger.ID, model.TargetPost, post.ID, "spam again")
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("missing target is 404", func(t *testing.T) {
		_, err := svc.Report(ctx, f.stranger.ID, model.TargetPost, 9999, "spam")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("dismiss leaves target visible", func(t *testing.T) {
		resolved, err := svc.Resolve(ctx, f.admin.ID, report.ID, ResolveDismiss)
		require.NoError(t, err)
		assert.Equal(t, model.ReportDismissed, resolved.Status)

		_, err = f.posts.Get(post.ID)
		assert.NoError(t, err)
	})

	t.Run("resolving twice is invalid", func(t *testing.T) {
		_, err := svc.Resolve(ctx, f.admin.ID, report.ID, ResolveDismiss)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestReportRemoveAndAppeal(t *testing.T) {
	svc, f, post := newModerationFixture(t)
	ctx := context.Background()

	report, err := svc.Report(ctx, f.stranger.ID, model.TargetPost, post.ID, "rule breaking")
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, f.admin.ID, report.ID, ResolveRemove)
	require.NoError(t, err)
	assert.Equal(t, model.ReportRemoved, resolved.Status)

	t.Run("removed target hidden", func(t *testing.T) {
		_, err := f.posts.Get(post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("only the author may appeal", func(t *testing.T) {
		_, err := svc.Appeal(ctx, f.stranger.ID, report.ID, "unfair")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	appeal, err := svc.Appeal(ctx, f.author.ID, report.ID, "that was satire")
	require.NoError(t, err)

	t.Run("second appeal conflicts", func(t *testing.T) {
		_, err := svc.Appeal(ctx, f.author.ID, report.ID, "again")
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("accepted appeal restores the target", func(t *testing.T) {
		resolved, err := svc.ResolveAppeal(ctx, f.admin.ID, appeal.ID, true)
		require.NoError(t, err)
		assert.Equal(t, model.AppealAccepted, resolved.Status)

		_, err = f.posts.Get(post.ID)
		assert.NoError(t, err)
	})

	t.Run("resolving a settled appeal is invalid", func(t *testing.T) {
		_, err := svc.ResolveAppeal(ctx, f.admin.ID, appeal.ID, false)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestAppealOnDismissedReport(t *testing.T) {
	svc, f, post := newModerationFixture(t)
	ctx := context.Background()

	report, err := svc.Report(ctx, f.stranger.ID, model.TargetPost, post.ID, "spam")
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, f.admin.ID, report.ID, ResolveDismiss)
	require.NoError(t, err)

	// nothing was removed, so there is nothing to appeal
	_, err = svc.Appeal(ctx, f.author.ID, report.ID, "pointless")
	assert.ErrorIs(t, err, ErrInvalid)
}
