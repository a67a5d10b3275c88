//go:build unit

package backoff_test

import (
	"context"
	"testing"
	"time"

	"storefront-checkout/internal/pkg/backoff"

	"github.com/stretchr/testify/assert"
)

func TestExponential(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 4; attempt++ {
		want := time.Duration(1<<attempt) * base
		got := backoff.Exponential(attempt, base)

		assert.GreaterOrEqual(t, got, want)
		assert.LessOrEqual(t, got, want+want/5)
	}
}

func TestSleep(t *testing.T) {
	t.Run("returns at once when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := backoff.Sleep(ctx, time.Hour)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
