package service

import (
	"context"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"
)

type PostService struct {
	repo        *mysql.PostRepository
	communities *mysql.CommunityRepository
	members     *mysql.MemberRepository
}

func NewPostService(repo *mysql.PostRepository, communities *mysql.CommunityRepository, members *mysql.MemberRepository) *PostService {
	return &PostService{repo: repo, communities: communities, members: members}
}

func (s *PostService) Create(ctx context.Context, userID, communityID uint64, title, content string) (*model.Post, error) {
	if title == "" {
		return nil, ErrInvalid
	}
	if _, err := s.communities.FindByID(communityID); err != nil {
		return nil, wrapDBErr(err)
	}
	ok, err := s.members.IsMember(communityID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	post := &model.Post{
		CommunityID: communityID,
		AuthorID:    userID,
		Title:       title,
		Content:     content,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, wrapDBErr(err)
	}
	return post, nil
}

func (s *PostService) Get(id uint64) (*model.Post, error) {
	post, err := s.repo.FindByID(id)
	return post, wrapDBErr(err)
}

func (s *PostService) Update(ctx context.Context, actor *pkg.Claims, id uint64, title, content string) (*model.Post, error) {
	if title == "" {
		return nil, ErrInvalid
	}
	post, err := s.repo.FindByID(id)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	if !canManage(post.AuthorID, actor) {
		return nil, ErrForbidden
	}
	post.Title = title
	post.Content = content
	if err := s.repo.Update(post); err != nil {
		return nil, wrapDBErr(err)
	}
	return post, nil
}

// Delete soft-deletes and is idempotent: an already-deleted post is a
// success, only a live post owned by someone else is forbidden.
func (s *PostService) Delete(ctx context.Context, actor *pkg.Claims, id uint64) error {
	post, err := s.repo.FindByID(id)
	if err != nil {
		if wrapDBErr(err) == ErrNotFound {
			return nil // already gone
		}
		return err
	}
	if !canManage(post.AuthorID, actor) {
		return ErrForbidden
	}
	return s.repo.SetStatus(id, model.StatusDeleted)
}

func (s *PostService) List(f mysql.PostFilter, page, limit int) ([]model.Post, int64, error) {
	list, count, err := s.repo.List(f, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}
