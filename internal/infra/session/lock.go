package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCheckoutLock is a SET NX lock per cart session. It expires on its own after ttl so a
// crashed checkout cannot wedge the cart.
type RedisCheckoutLock struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCheckoutLock(client redis.UniversalClient, ttl time.Duration) *RedisCheckoutLock {
	return &RedisCheckoutLock{client: client, ttl: ttl}
}

func (l *RedisCheckoutLock) Acquire(ctx context.Context, sessionID string) (func(context.Context) error, error) {
	key := lockKey(sessionID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, errs.Wrap(err, "redis acquire checkout lock")
	}
	if !ok {
		return nil, commands.ErrCheckoutInProgress
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return errs.Wrap(err, "redis release checkout lock")
		}
		return nil
	}
	return release, nil
}

func lockKey(sessionID string) string {
	return "cart:lock:" + sessionID
}
