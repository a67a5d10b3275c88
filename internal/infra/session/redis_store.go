package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
)

// RedisCartStore keeps one JSON cart snapshot per session under cart:<session>.
type RedisCartStore struct {
	client  redis.Cmdable
	baseTTL time.Duration
	jitter  time.Duration
	logger  *slog.Logger
}

func NewRedisCartStore(client redis.Cmdable, cfg config.CartConfig, logger *slog.Logger) *RedisCartStore {
	return &RedisCartStore{
		client:  client,
		baseTTL: cfg.TTL,
		jitter:  cfg.TTLJitter,
		logger:  logger,
	}
}

// Load returns an empty snapshot for unknown or expired sessions.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (cart.Snapshot, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.EmptySnapshot(), nil
	}
	if err != nil {
		return cart.Snapshot{}, errs.Wrap(err, "redis get cart")
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A cart that cannot be read is dropped rather than blocking the session forever.
		s.logger.WarnContext(ctx, "discarding unreadable cart", slog.String("error", err.Error()))
		return cart.EmptySnapshot(), nil
	}
	return snap, nil
}

func (s *RedisCartStore) Save(ctx context.Context, sessionID string, snap cart.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return errs.Wrap(err, "marshal cart")
	}
	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl()).Err(); err != nil {
		return errs.Wrap(err, "redis set cart")
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return errs.Wrap(err, "redis delete cart")
	}
	return nil
}

func (s *RedisCartStore) ttl() time.Duration {
	if s.jitter <= 0 {
		return s.baseTTL
	}
	return s.baseTTL + rand.N(s.jitter)
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}
