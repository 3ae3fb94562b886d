package store

import (
	"context"
	"fmt"
	"strconv"

	"score-server/internal/interfaces"
	"score-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure RedisStore implements NotificationStore.
var _ interfaces.NotificationStore = (*RedisStore)(nil)

const (
	detailsKeyPrefix = "notif:details:"
	fidSetKey        = "notif:fids"
)

// RedisStore is the durable NotificationStore. Each fid maps to a hash with
// url/token fields, and all registered fids are tracked in one set so Count
// and FIDs stay O(1)/O(n) without a keyspace scan.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed NotificationStore.
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client: client,
		logger: logger.Named("RedisNotificationStore"),
	}
}

func detailsKey(fid int64) string {
	return detailsKeyPrefix + strconv.FormatInt(fid, 10)
}

func (s *RedisStore) Get(ctx context.Context, fid int64) (*models.NotificationDetails, error) {
	values, err := s.client.HGetAll(ctx, detailsKey(fid)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification details from redis: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return &models.NotificationDetails{
		URL:   values["url"],
		Token: values["token"],
	}, nil
}

func (s *RedisStore) Set(ctx context.Context, fid int64, details models.NotificationDetails) error {
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, detailsKey(fid), "url", details.URL, "token", details.Token)
	pipe.SAdd(ctx, fidSetKey, fid)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("Failed to set notification details in redis", zap.Error(err), zap.Int64("fid", fid))
		return fmt.Errorf("failed to set notification details in redis: %w", err)
	}
	s.logger.Debug("Saved notification details", zap.Int64("fid", fid))
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, fid int64) (bool, error) {
	pipe := s.client.Pipeline()
	delCmd := pipe.Del(ctx, detailsKey(fid))
	pipe.SRem(ctx, fidSetKey, fid)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("Failed to delete notification details from redis", zap.Error(err), zap.Int64("fid", fid))
		return false, fmt.Errorf("failed to delete notification details from redis: %w", err)
	}
	existed := delCmd.Val() > 0
	s.logger.Debug("Deleted notification details", zap.Int64("fid", fid), zap.Bool("existed", existed))
	return existed, nil
}

func (s *RedisStore) Has(ctx context.Context, fid int64) (bool, error) {
	ok, err := s.client.SIsMember(ctx, fidSetKey, fid).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check notification details in redis: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	count, err := s.client.SCard(ctx, fidSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations in redis: %w", err)
	}
	return count, nil
}

func (s *RedisStore) FIDs(ctx context.Context) ([]int64, error) {
	members, err := s.client.SMembers(ctx, fidSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list registered fids from redis: %w", err)
	}
	fids := make([]int64, 0, len(members))
	for _, m := range members {
		fid, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			s.logger.Warn("Skipping malformed fid in redis set", zap.String("member", m))
			continue
		}
		fids = append(fids, fid)
	}
	return fids, nil
}
