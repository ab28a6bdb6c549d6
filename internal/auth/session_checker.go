package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultSessionTTL = 24 * 7 * time.Hour
	sessionKeyPrefix  = "rollfit-session||"
)

var _ Resolver = (*SessionChecker)(nil)

// SessionChecker resolves opaque session tokens stored in redis by the auth
// service. Each session is a hash with the fields userId and createdAt (unix seconds).
type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func SessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (sc *SessionChecker) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	session, err := sc.redisClient.HGetAll(ctx, SessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	if len(session) == 0 {
		return "", ErrInvalidToken
	}

	userID := session["userId"]
	if userID == "" {
		return "", fmt.Errorf("%w: session without user", ErrInvalidToken)
	}

	createdAtUnix, err := strconv.ParseInt(session["createdAt"], 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: parse session created at: %w", ErrInvalidToken, err)
	}

	createdAt := time.Unix(createdAtUnix, 0)
	if sc.now().Sub(createdAt) > sc.ttl {
		return "", ErrSessionExpired
	}

	return userID, nil
}
