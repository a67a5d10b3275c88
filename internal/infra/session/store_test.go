//go:build unit

package session_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/infra/session"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/tests/common/builder"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func newStore(client *redis.Client) *session.RedisCartStore {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return session.NewRedisCartStore(client, config.CartConfig{TTL: time.Hour, TTLJitter: time.Minute}, logger)
}

func TestRedisCartStore(t *testing.T) {
	ctx := context.Background()

	t.Run("success: round trip keeps lines, discounts and tax", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := newStore(client)

		c := cart.New(cart.EmptySnapshot())
		key, err := c.Add(builder.NewProductBuilder().WithPrice("12.50").BuildDomain(), 2)
		require.NoError(t, err)
		_, err = c.Discount(builder.Dec("10"), cart.DiscountPercent, map[string]string{"name": "ten"})
		require.NoError(t, err)
		c.Tax(builder.Dec("0.05"))

		require.NoError(t, store.Save(ctx, "s1", c.Export()))
		assert.True(t, mr.Exists("cart:s1"))

		ttl := mr.TTL("cart:s1")
		assert.GreaterOrEqual(t, ttl, time.Hour)
		assert.Less(t, ttl, time.Hour+time.Minute)

		snap, err := store.Load(ctx, "s1")
		require.NoError(t, err)
		loaded := cart.New(snap)
		line, ok := loaded.Get(key)
		require.True(t, ok)
		assert.Equal(t, 2, line.Qty)
		assert.True(t, c.Total().Equal(loaded.Total()))
		assert.True(t, c.TotalTax().Equal(loaded.TotalTax()))
	})

	t.Run("success: unknown session loads an empty cart", func(t *testing.T) {
		_, client := setupRedis(t)
		store := newStore(client)

		snap, err := store.Load(ctx, "missing")
		require.NoError(t, err)
		assert.True(t, snap.IsEmpty())
		assert.NotNil(t, snap.Discounts)
	})

	t.Run("success: unreadable cart is discarded", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := newStore(client)
		require.NoError(t, mr.Set("cart:bad", "{not json"))

		snap, err := store.Load(ctx, "bad")
		require.NoError(t, err)
		assert.True(t, snap.IsEmpty())
	})

	t.Run("success: delete removes the key", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := newStore(client)
		require.NoError(t, store.Save(ctx, "s2", cart.EmptySnapshot()))

		require.NoError(t, store.Delete(ctx, "s2"))
		assert.False(t, mr.Exists("cart:s2"))
	})

	t.Run("success: expired cart is gone", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := newStore(client)
		require.NoError(t, store.Save(ctx, "s3", cart.EmptySnapshot()))

		mr.FastForward(2 * time.Hour)

		assert.False(t, mr.Exists("cart:s3"))
	})

	t.Run("error: redis unavailable", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
		t.Cleanup(func() { _ = client.Close() })
		store := newStore(client)

		_, err := store.Load(ctx, "s4")
		assert.Error(t, err)
	})
}

func TestRedisCheckoutLock(t *testing.T) {
	ctx := context.Background()

	t.Run("success: second acquire is rejected until release", func(t *testing.T) {
		mr, client := setupRedis(t)
		lock := session.NewRedisCheckoutLock(client, time.Minute)

		release, err := lock.Acquire(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, mr.Exists("cart:lock:s1"))

		_, err = lock.Acquire(ctx, "s1")
		assert.True(t, errs.Is(err, commands.ErrCheckoutInProgress))

		require.NoError(t, release(ctx))
		assert.False(t, mr.Exists("cart:lock:s1"))

		release2, err := lock.Acquire(ctx, "s1")
		require.NoError(t, err)
		require.NoError(t, release2(ctx))
	})

	t.Run("success: sessions do not block each other", func(t *testing.T) {
		_, client := setupRedis(t)
		lock := session.NewRedisCheckoutLock(client, time.Minute)

		_, err := lock.Acquire(ctx, "a")
		require.NoError(t, err)
		_, err = lock.Acquire(ctx, "b")
		require.NoError(t, err)
	})

	t.Run("success: expired lock can be taken over and the stale release is a no-op", func(t *testing.T) {
		mr, client := setupRedis(t)
		lock := session.NewRedisCheckoutLock(client, time.Second)

		stale, err := lock.Acquire(ctx, "s1")
		require.NoError(t, err)
		mr.FastForward(2 * time.Second)

		_, err = lock.Acquire(ctx, "s1")
		require.NoError(t, err)

		require.NoError(t, stale(ctx))
		assert.True(t, mr.Exists("cart:lock:s1"))
	})
}
