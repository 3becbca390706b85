package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Category{},
		&model.Community{},
		&model.CommunityMember{},
		&model.CommunityRule{},
		&model.Post{},
		&model.Comment{},
		&model.Vote{},
		&model.Report{},
		&model.Appeal{},
		&model.AuditLog{},
		&model.Configuration{},
		&model.SearchLog{},
	))
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// memTokenStore is the in-memory TokenStore used instead of redis.
type memTokenStore struct {
	mu     sync.Mutex
	tokens map[uint64]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[uint64]string)}
}

func (s *memTokenStore) AddUserToken(userID uint64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
	return nil
}

func (s *memTokenStore) GetUserToken(userID uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[userID]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

func (s *memTokenStore) ExtendUserToken(userID uint64) error { return nil }

func (s *memTokenStore) DeleteUserToken(userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}

type scoreKey struct {
	targetType string
	targetID   uint64
}

// memScoreCache replaces the redis score cache in tests.
type memScoreCache struct {
	mu     sync.Mutex
	scores map[scoreKey]int64
}

func newMemScoreCache() *memScoreCache {
	return &memScoreCache{scores: make(map[scoreKey]int64)}
}

func (c *memScoreCache) Get(_ context.Context, targetType string, targetID uint64) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	score, ok := c.scores[scoreKey{targetType, targetID}]
	return score, ok, nil
}

func (c *memScoreCache) Set(_ context.Context, targetType string, targetID uint64, score int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[scoreKey{targetType, targetID}] = score
	return nil
}

func (c *memScoreCache) Bump(_ context.Context, targetType string, targetID uint64, delta int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := scoreKey{targetType, targetID}
	if _, ok := c.scores[k]; ok {
		c.scores[k] += delta
	}
	return nil
}

func (c *memScoreCache) Invalidate(_ context.Context, targetType string, targetID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.scores, scoreKey{targetType, targetID})
	return nil
}

// memProducer records published audit entries.
type memProducer struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (p *memProducer) Publish(_ context.Context, entry *model.AuditLog) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, *entry)
	return nil
}

func newTestAudit(t *testing.T, db *gorm.DB) *AuditService {
	t.Helper()
	return NewAuditService(mysql.NewAuditRepository(db), &memProducer{}, zap.NewNop())
}

func createUser(t *testing.T, db *gorm.DB, username string, role int) *model.User {
	t.Helper()
	hash, err := pkg.HashPassword("password-123")
	require.NoError(t, err)
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func memberClaims(user *model.User) *pkg.Claims {
	return &pkg.Claims{UserID: user.ID, Role: user.Role}
}
