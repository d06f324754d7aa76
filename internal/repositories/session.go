package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/clima-dashboard/internal/logger"
)

const sessionKeyPrefix = "session:"

// SessionRepository keeps opaque login session tokens in redis.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

// Save maps token to userID for ttl.
func (r *SessionRepository) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	err := r.rdb.Set(ctx, sessionKeyPrefix+token, userID, ttl).Err()
	logger.Log.Infow("redis set",
		"key", sessionKeyPrefix+"*",
		"user_id", userID,
		"ttl", ttl,
		"error", err,
	)
	return err
}

// GetUserID returns the user bound to token, or 0 when the session is unknown or expired.
func (r *SessionRepository) GetUserID(ctx context.Context, token string) (int64, error) {
	val, err := r.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		logger.Log.Errorw("redis get failed", "error", err)
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
