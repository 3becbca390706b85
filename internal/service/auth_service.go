package service

import (
	"context"
	"time"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/mysql"

	"github.com/google/uuid"
)

// TokenStore is the trusted-token side of a session; the redis
// SessionStore implements it in production.
type TokenStore interface {
	AddUserToken(userID uint64, token string) error
	GetUserToken(userID uint64) (string, error)
	ExtendUserToken(userID uint64) error
	DeleteUserToken(userID uint64) error
}

type AuthService struct {
	users    *mysql.UserRepository
	sessions *mysql.SessionRepository
	tokens   TokenStore
	maker    *pkg.TokenMaker
	audit    *AuditService
}

func NewAuthService(users *mysql.UserRepository, sessions *mysql.SessionRepository, tokens TokenStore, maker *pkg.TokenMaker, audit *AuditService) *AuthService {
	return &AuthService{users: users, sessions: sessions, tokens: tokens, maker: maker, audit: audit}
}

// Join registers a new account. Admin accounts need an existing admin
// actor once any admin exists; the very first admin bootstraps itself.
func (s *AuthService) Join(ctx context.Context, username, email, password string, role int, actor *pkg.Claims) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalid
	}

	if role == model.RoleAdmin {
		count, err := s.users.CountAdmins()
		if err != nil {
			return nil, err
		}
		if count > 0 && (actor == nil || actor.Role != model.RoleAdmin) {
			return nil, ErrForbidden
		}
	}

	hash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, wrapDBErr(err)
	}
	if role == model.RoleAdmin {
		var actorID uint64
		if actor != nil {
			actorID = actor.UserID
		}
		s.audit.Record(ctx, actorID, "auth.admin.join", "user", user.ID, username)
	}
	return user, nil
}

// Login checks credentials for the given role, issues a token pair, stores
// the trusted access copy and records the session.
func (s *AuthService) Login(ctx context.Context, login, password, userAgent string, role int) (*pkg.Pair, *model.Session, error) {
	user, err := s.users.FindByLogin(login)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	if user.Role != role || !pkg.CheckPassword(user.Password, password) {
		return nil, nil, ErrNotFound
	}

	pair, err := s.maker.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	if err := s.tokens.AddUserToken(user.ID, pair.AccessToken); err != nil {
		return nil, nil, err
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(s.maker.RefreshTTL),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, nil, err
	}
	return pair, session, nil
}

func (s *AuthService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := s.maker.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := s.maker.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	// The refreshed access token becomes the trusted copy.
	if err := s.tokens.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) Logout(userID uint64) error {
	if err := s.tokens.DeleteUserToken(userID); err != nil {
		return err
	}
	return s.sessions.RevokeAllForUser(userID, time.Now())
}

func (s *AuthService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrInvalid
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		return wrapDBErr(err)
	}
	if !pkg.CheckPassword(user.Password, oldPassword) {
		return ErrForbidden
	}
	hash, err := pkg.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(user, hash); err != nil {
		return err
	}
	// Existing sessions die with the old password.
	return s.Logout(userID)
}

func (s *AuthService) ListSessions(userID uint64, page, limit int) ([]model.Session, int64, error) {
	list, count, err := s.sessions.ListByUser(userID, pkg.Offset(page, limit), limit)
	return list, count, wrapDBErr(err)
}

// RevokeSession revokes one session; only its owner or an admin may. The
// owner's trusted token is dropped too, forcing a fresh login.
func (s *AuthService) RevokeSession(actor *pkg.Claims, sessionID string) error {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return wrapDBErr(err)
	}
	if session.UserID != actor.UserID && actor.Role != model.RoleAdmin {
		return ErrForbidden
	}
	if err := s.sessions.Revoke(sessionID, time.Now()); err != nil {
		return err
	}
	return s.tokens.DeleteUserToken(session.UserID)
}
