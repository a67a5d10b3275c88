//go:build unit

package cart_test

import (
	"testing"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/pkg/money"
	"storefront-checkout/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// one line, price 10.00, qty 3, nothing else
func tenTimesThree(t *testing.T) (*cart.Cart, string) {
	t.Helper()
	c := newCart()
	key, err := c.Add(builder.NewProductBuilder().WithPrice("10.00").BuildDomain(), 3)
	require.NoError(t, err)
	return c, key
}

func TestCartPricing(t *testing.T) {
	t.Run("割引なし", func(t *testing.T) {
		c, key := tenTimesThree(t)

		assert.Equal(t, "30.00", money.Format(c.SubtotalForKey(key)))
		assert.Equal(t, "30.00", money.Format(c.Subtotal()))
		assert.Equal(t, "30.00", money.Format(c.Total()))
		assert.Equal(t, "0.00", money.Format(c.TotalDiscount()))
		assert.Equal(t, "0.00", money.Format(c.TotalTax()))
		assert.Equal(t, "0.00", money.Format(c.TotalShipping()))
	})

	t.Run("10%割引", func(t *testing.T) {
		c, key := tenTimesThree(t)
		_, err := c.Discount(dec("10"), cart.DiscountPercent, map[string]string{"name": "ten"})
		require.NoError(t, err)

		assert.Equal(t, "3.00", money.Format(c.DiscountForKey(key)))
		assert.Equal(t, "3.00", money.Format(c.TotalDiscount()))
		assert.Equal(t, "27.00", money.Format(c.Total()))
	})

	t.Run("5ドル定額割引は合計に一度だけ適用", func(t *testing.T) {
		c, key := tenTimesThree(t)
		_, err := c.Discount(dec("5"), cart.DiscountFlat, map[string]string{"name": "five"})
		require.NoError(t, err)

		assert.Equal(t, "0.00", money.Format(c.DiscountForKey(key)))
		assert.Equal(t, "30.00", money.Format(c.TotalForKey(key)))
		assert.Equal(t, "5.00", money.Format(c.TotalDiscountFlat()))
		assert.Equal(t, "5.00", money.Format(c.TotalDiscount()))
		assert.Equal(t, "25.00", money.Format(c.Total()))
	})

	t.Run("合計は負にならない", func(t *testing.T) {
		c, _ := tenTimesThree(t)
		_, _ = c.Discount(dec("40"), cart.DiscountFlat, map[string]string{"name": "forty"})
		assert.Equal(t, "0.00", money.Format(c.Total()))

		_, _ = c.Discount(dec("150"), cart.DiscountPercent, map[string]string{"name": "overdone"})
		assert.False(t, c.Total().IsNegative())
		assert.Equal(t, "0.00", money.Format(c.Total()))
	})

	t.Run("税額は行ごとに丸める", func(t *testing.T) {
		c := newCart()
		a, _ := c.Add(builder.NewProductBuilder().WithPrice("9.99").BuildDomain(), 3)
		b, _ := c.Add(builder.NewProductBuilder().WithPrice("0.35").BuildDomain(), 1)
		c.Tax(dec("0.0825"))

		// 29.97 * 0.0825 = 2.472525
		assert.Equal(t, "2.47", money.Format(c.TaxForKey(a)))
		// 0.35 * 0.0825 = 0.028875
		assert.Equal(t, "0.03", money.Format(c.TaxForKey(b)))
		assert.Equal(t, "2.50", money.Format(c.TotalTax()))
		assert.Equal(t, "32.82", money.Format(c.Total()))
	})

	t.Run("割合割引は単価で丸めてから数量を掛ける", func(t *testing.T) {
		c := newCart()
		key, _ := c.Add(builder.NewProductBuilder().WithPrice("9.99").BuildDomain(), 3)
		_, _ = c.Discount(dec("15"), cart.DiscountPercent, map[string]string{"name": "fifteen"})

		// round(1.4985) = 1.50 per unit
		assert.Equal(t, "4.50", money.Format(c.DiscountForKey(key)))
		assert.Equal(t, "25.47", money.Format(c.Total()))
	})

	t.Run("送料は数量分加算", func(t *testing.T) {
		c := newCart()
		key, _ := c.Add(builder.NewProductBuilder().WithPrice("10.00").WithShipping("2.50").BuildDomain(), 2)

		assert.Equal(t, "5.00", money.Format(c.ShippingForKey(key)))
		assert.Equal(t, "25.00", money.Format(c.TotalForKey(key)))
		assert.Equal(t, "25.00", money.Format(c.Total()))
	})

	t.Run("明細をまとめて取得", func(t *testing.T) {
		c := newCart()
		_, _ = c.Add(builder.NewProductBuilder().WithPrice("20.00").WithShipping("1.00").BuildDomain(), 2)
		_, _ = c.Discount(dec("10"), cart.DiscountPercent, map[string]string{"name": "ten"})
		_, _ = c.Discount(dec("1.50"), cart.DiscountFlat, map[string]string{"name": "flat"})
		c.Tax(dec("0.05"))

		got := c.Breakdown()

		assert.Equal(t, "40.00", money.Format(got.Subtotal))
		assert.Equal(t, "2.00", money.Format(got.Shipping))
		assert.Equal(t, "2.00", money.Format(got.Tax))
		assert.Equal(t, "5.50", money.Format(got.Discount))
		// 40 + 2 + 2 - 4 - 1.50
		assert.Equal(t, "38.50", money.Format(got.Total))
		assert.Equal(t, 2, got.Count)
	})

	t.Run("存在しないキーは0", func(t *testing.T) {
		c, _ := tenTimesThree(t)
		assert.True(t, c.SubtotalForKey("nope").IsZero())
		assert.True(t, c.TotalForKey("nope").IsZero())
		assert.True(t, c.DiscountForKey("nope").IsZero())
	})
}
