package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	userTokenPrefix = "login:user:token"
	userTokenExpire = 30 * time.Minute
)

// SessionStore holds the trusted access token per user. A new login
// overwrites the key, which is what invalidates the previous session.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore() *SessionStore {
	return &SessionStore{rdb: Client}
}

func (s *SessionStore) key(userID uint64) string {
	return fmt.Sprintf("%s:%d", userTokenPrefix, userID)
}

func (s *SessionStore) AddUserToken(userID uint64, token string) error {
	if err := s.rdb.Set(context.Background(), s.key(userID), token, userTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (s *SessionStore) GetUserToken(userID uint64) (string, error) {
	token, err := s.rdb.Get(context.Background(), s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (s *SessionStore) ExtendUserToken(userID uint64) error {
	if _, err := s.rdb.Expire(context.Background(), s.key(userID), userTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (s *SessionStore) DeleteUserToken(userID uint64) error {
	if err := s.rdb.Del(context.Background(), s.key(userID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
