package service

import (
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"

	"go.uber.org/zap"
)

type SearchService struct {
	posts       *mysql.PostRepository
	communities *mysql.CommunityRepository
	logs        *mysql.SearchLogRepository
	log         *zap.Logger
}

func NewSearchService(posts *mysql.PostRepository, communities *mysql.CommunityRepository, logs *mysql.SearchLogRepository, log *zap.Logger) *SearchService {
	return &SearchService{posts: posts, communities: communities, logs: logs, log: log}
}

// record is best-effort; a failed insert never fails the search.
func (s *SearchService) record(userID uint64, query, typ string, results int64) {
	err := s.logs.Create(&model.SearchLog{
		UserID:  userID,
		Query:   query,
		Type:    typ,
		Results: results,
	})
	if err != nil {
		s.log.Warn("search log write failed", zap.String("query", query), zap.Error(err))
	}
}

func (s *SearchService) SearchPosts(userID uint64, query string, page, limit int) ([]model.Post, int64, error) {
	if query == "" {
		return nil, 0, ErrInvalid
	}
	list, count, err := s.posts.List(mysql.PostFilter{Search: query}, pkg.Offset(page, limit), limit)
	if err != nil {
		return nil, 0, wrapDBErr(err)
	}
	s.record(userID, query, "posts", count)
	return list, count, nil
}

func (s *SearchService) SearchCommunities(userID uint64, query string, page, limit int) ([]model.Community, int64, error) {
	if query == "" {
		return nil, 0, ErrInvalid
	}
	list, count, err := s.communities.List(query, 0, pkg.Offset(page, limit), limit)
	if err != nil {
		return nil, 0, wrapDBErr(err)
	}
	s.record(userID, query, "communities", count)
	return list, count, nil
}

func (s *SearchService) ListLogs(page, limit int) ([]model.SearchLog, int64, error) {
	list, count, err := s.logs.List(pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}
