package service

import (
	"context"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"
)

type CommentService struct {
	repo  *mysql.CommentRepository
	posts *mysql.PostRepository
}

func NewCommentService(repo *mysql.CommentRepository, posts *mysql.PostRepository) *CommentService {
	return &CommentService{repo: repo, posts: posts}
}

func (s *CommentService) Create(ctx context.Context, userID, postID, parentID uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, ErrInvalid
	}
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, wrapDBErr(err)
	}
	if parentID != 0 {
		parent, err := s.repo.FindByID(parentID)
		if err != nil {
			return nil, wrapDBErr(err)
		}
		if parent.PostID != postID {
			return nil, ErrNotFound
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, wrapDBErr(err)
	}
	return comment, nil
}

func (s *CommentService) Get(id uint64) (*model.Comment, error) {
	comment, err := s.repo.FindByID(id)
	return comment, wrapDBErr(err)
}

func (s *CommentService) Update(ctx context.Context, actor *pkg.Claims, id uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, ErrInvalid
	}
	comment, err := s.repo.FindByID(id)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	if !canManage(comment.AuthorID, actor) {
		return nil, ErrForbidden
	}
	comment.Content = content
	if err := s.repo.Update(comment); err != nil {
		return nil, wrapDBErr(err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *pkg.Claims, id uint64) error {
	comment, err := s.repo.FindByID(id)
	if err != nil {
		if wrapDBErr(err) == ErrNotFound {
			return nil // already gone
		}
		return err
	}
	if !canManage(comment.AuthorID, actor) {
		return ErrForbidden
	}
	return s.repo.SetStatus(id, model.StatusDeleted)
}

func (s *CommentService) ListByPost(postID uint64, page, limit int) ([]model.Comment, int64, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, 0, wrapDBErr(err)
	}
	list, count, err := s.repo.ListByPost(postID, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}
