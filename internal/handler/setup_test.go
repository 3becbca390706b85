package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"communityhub/internal/handler"
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"
	"communityhub/internal/router"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[uint64]string
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
		return "", service.ErrNotFound
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

type memScoreCache struct {
	mu     sync.Mutex
	scores map[scoreKey]int64
}

func (c *memScoreCache) Get(_ context.Context, tt string, id uint64) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.scores[scoreKey{tt, id}]
	return s, ok, nil
}

func (c *memScoreCache) Set(_ context.Context, tt string, id uint64, score int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[scoreKey{tt, id}] = score
	return nil
}

func (c *memScoreCache) Bump(_ context.Context, tt string, id uint64, delta int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.scores[scoreKey{tt, id}]; ok {
		c.scores[scoreKey{tt, id}] += delta
	}
	return nil
}

func (c *memScoreCache) Invalidate(_ context.Context, tt string, id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.scores, scoreKey{tt, id})
	return nil
}

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:handler-%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

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

	log := zap.NewNop()
	tokens := &memTokenStore{tokens: make(map[uint64]string)}
	scores := &memScoreCache{scores: make(map[scoreKey]int64)}
	maker := pkg.NewTokenMaker("test-access", "test-refresh", 0, 0)

	users := mysql.NewUserRepository(db)
	sessions := mysql.NewSessionRepository(db)
	categories := mysql.NewCategoryRepository(db)
	communities := mysql.NewCommunityRepository(db)
	members := mysql.NewMemberRepository(db)
	posts := mysql.NewPostRepository(db)
	comments := mysql.NewCommentRepository(db)
	votes := mysql.NewVoteRepository(db)
	reports := mysql.NewReportRepository(db)
	audits := mysql.NewAuditRepository(db)
	configs := mysql.NewConfigRepository(db)
	searchLogs := mysql.NewSearchLogRepository(db)

	auditSvc := service.NewAuditService(audits, nil, log)
	authSvc := service.NewAuthService(users, sessions, tokens, maker, auditSvc)
	categorySvc := service.NewCategoryService(categories, auditSvc)
	communitySvc := service.NewCommunityService(communities, members, categories, auditSvc)
	postSvc := service.NewPostService(posts, communities, members)
	commentSvc := service.NewCommentService(comments, posts)
	voteSvc := service.NewVoteService(votes, posts, comments, scores)
	moderationSvc := service.NewModerationService(reports, posts, comments, auditSvc)
	configSvc := service.NewConfigurationService(configs, auditSvc)
	searchSvc := service.NewSearchService(posts, communities, searchLogs, log)

	engine := router.InitRouter(router.Deps{
		Maker:      maker,
		Tokens:     tokens,
		Log:        log,
		Auth:       handler.NewAuthHandler(authSvc),
		Category:   handler.NewCategoryHandler(categorySvc),
		Community:  handler.NewCommunityHandler(communitySvc),
		Post:       handler.NewPostHandler(postSvc),
		Comment:    handler.NewCommentHandler(commentSvc),
		Vote:       handler.NewVoteHandler(voteSvc),
		Moderation: handler.NewModerationHandler(moderationSvc),
		Admin:      handler.NewAdminHandler(auditSvc, configSvc, searchSvc),
		Search:     handler.NewSearchHandler(searchSvc),
	})

	return &testServer{engine: engine, db: db, auth: authSvc}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account and returns its access token and id.
func (s *testServer) registerAndLogin(t *testing.T, username string, role int) (string, uint64) {
	t.Helper()
	ctx := context.Background()
	user, err := s.auth.Join(ctx, username, username+"@example.com", "password-123", role, &pkg.Claims{Role: model.RoleAdmin})
	require.NoError(t, err)
	pair, _, err := s.auth.Login(ctx, username, "password-123", "go-test", role)
	require.NoError(t, err)
	return pair.AccessToken, user.ID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type pageEnvelope struct {
	Pagination pkg.Pagination    `json:"pagination"`
	Data       []json.RawMessage `json:"data"`
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
