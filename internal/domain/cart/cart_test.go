//go:build unit

package cart_test

import (
	"testing"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/money"
	"storefront-checkout/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCart() *cart.Cart {
	return cart.New(cart.EmptySnapshot())
}

func TestFingerprint(t *testing.T) {
	t.Run("オプションの選択順に依存しない", func(t *testing.T) {
		id := uuid.New()
		a := builder.NewProductBuilder().With(func(b *builder.ProductBuilder) { b.ID = id }).
			WithOption("Size: Large", "0", 0, 1).
			WithOption("Color: Red", "0", 0, 2).
			BuildDomain()
		b := builder.NewProductBuilder().With(func(b *builder.ProductBuilder) { b.ID = id }).
			WithOption("Color: Red", "0", 0, 2).
			WithOption("Size: Large", "0", 0, 1).
			BuildDomain()

		assert.Equal(t, cart.Fingerprint(a), cart.Fingerprint(b))
		assert.Equal(t, id.String()+"|Color: Red,Size: Large", cart.Fingerprint(a))
	})

	t.Run("選択が異なれば別のキー", func(t *testing.T) {
		id := uuid.New()
		base := func() *builder.ProductBuilder {
			return builder.NewProductBuilder().With(func(b *builder.ProductBuilder) { b.ID = id })
		}
		keys := map[string]struct{}{
			cart.Fingerprint(base().BuildDomain()):                                       {},
			cart.Fingerprint(base().WithOption("Size: Large", "0", 0, 1).BuildDomain()): {},
			cart.Fingerprint(base().WithOption("Size: Small", "0", 0, 1).BuildDomain()): {},
			cart.Fingerprint(base().WithOption("Size: Small", "0", 0, 1).
				WithOption("Color: Red", "0", 0, 2).BuildDomain()): {},
		}
		assert.Len(t, keys, 4)
	})

	t.Run("オプションなしは末尾が区切り文字", func(t *testing.T) {
		p := builder.NewProductBuilder().BuildDomain()
		assert.Equal(t, p.ID.String()+"|", cart.Fingerprint(p))
	})
}

func TestCartAdd(t *testing.T) {
	t.Run("オプション価格を単価に加算する", func(t *testing.T) {
		c := newCart()
		p := builder.NewProductBuilder().WithPrice("10.00").WithFakePrice("12.00").
			WithOption("Size: Large", "2.50", 0, 1).
			WithCustomOption("Engraving: Initials", "1.25").
			BuildDomain()

		key, err := c.Add(p, 1)
		require.NoError(t, err)

		line, ok := c.Get(key)
		require.True(t, ok)
		assert.Equal(t, "13.75", money.Format(line.Price))
		assert.Equal(t, "15.75", money.Format(line.FakePrice))
		assert.Nil(t, line.MaxQty)
	})

	t.Run("表示価格が0ならオプション価格を加算しない", func(t *testing.T) {
		c := newCart()
		p := builder.NewProductBuilder().WithOption("Size: Large", "2.50", 0, 1).BuildDomain()

		key, err := c.Add(p, 1)
		require.NoError(t, err)

		line, _ := c.Get(key)
		assert.True(t, line.FakePrice.IsZero())
	})

	t.Run("同じキーの追加は数量の合算と等価", func(t *testing.T) {
		p := builder.NewProductBuilder().BuildDomain()

		twice := newCart()
		_, err := twice.Add(p, 2)
		require.NoError(t, err)
		key, err := twice.Add(p, 3)
		require.NoError(t, err)

		once := newCart()
		_, err = once.Add(p, 5)
		require.NoError(t, err)

		if diff := cmp.Diff(once.Export(), twice.Export(), cmpOpts...); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}
		line, _ := twice.Get(key)
		assert.Equal(t, 5, line.Qty)
		assert.Len(t, twice.All(), 1)
	})

	t.Run("在庫管理商品は在庫数を上限に新規行を作る", func(t *testing.T) {
		c := newCart()
		p := builder.NewProductBuilder().Tracked(4).BuildDomain()

		key, err := c.Add(p, 3)
		require.NoError(t, err)

		line, _ := c.Get(key)
		require.NotNil(t, line.MaxQty)
		assert.Equal(t, 4, *line.MaxQty)
		assert.Equal(t, 3, line.Qty)
	})

	t.Run("オプションの在庫数が商品の在庫数より優先される", func(t *testing.T) {
		c := newCart()
		p := builder.NewProductBuilder().Tracked(10).WithOption("Size: Large", "0", 2, 1).BuildDomain()

		key, err := c.Add(p, 2)
		require.NoError(t, err)

		line, _ := c.Get(key)
		assert.Equal(t, 2, *line.MaxQty)

		_, err = c.Add(p, 1)
		require.Error(t, err)
		assert.True(t, errs.Is(err, cart.ErrInsufficientStock))
	})

	t.Run("在庫不足は変更せずエラーを記録する", func(t *testing.T) {
		cases := []struct {
			name    string
			stock   int
			qty     int
			wantMsg string
			wantErr error
		}{
			{name: "売り切れ", stock: 0, qty: 1, wantMsg: "This item is currently sold out.", wantErr: cart.ErrOutOfStock},
			{name: "残り1点", stock: 1, qty: 2, wantMsg: "There is only 1 of this item left.", wantErr: cart.ErrInsufficientStock},
			{name: "残り複数", stock: 3, qty: 4, wantMsg: "There are only 3 of this item left.", wantErr: cart.ErrInsufficientStock},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				c := newCart()
				p := builder.NewProductBuilder().Tracked(tc.stock).BuildDomain()

				key, err := c.Add(p, tc.qty)

				require.Error(t, err)
				assert.Empty(t, key)
				assert.True(t, errs.Is(err, tc.wantErr))
				assert.True(t, errs.Is(err, errs.ErrStock))
				assert.Equal(t, tc.wantMsg, err.Error())
				assert.Equal(t, tc.wantMsg, c.Error())
				assert.Empty(t, c.All())
			})
		}
	})

	t.Run("既存行に追加して在庫を超える場合も数量は変わらない", func(t *testing.T) {
		c := newCart()
		p := builder.NewProductBuilder().Tracked(5).BuildDomain()
		key, err := c.Add(p, 4)
		require.NoError(t, err)

		_, err = c.Add(p, 2)
		require.Error(t, err)

		line, _ := c.Get(key)
		assert.Equal(t, 4, line.Qty)
	})

	t.Run("数量0以下はNG", func(t *testing.T) {
		c := newCart()
		_, err := c.Add(builder.NewProductBuilder().BuildDomain(), 0)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestCartQuantity(t *testing.T) {
	t.Run("数量0の設定は削除と等価", func(t *testing.T) {
		p := builder.NewProductBuilder().BuildDomain()
		other := builder.NewProductBuilder().BuildDomain()

		viaQty := newCart()
		key, _ := viaQty.Add(p, 2)
		_, _ = viaQty.Add(other, 1)
		require.True(t, viaQty.SetQuantity(key, 0))

		viaRemove := newCart()
		key2, _ := viaRemove.Add(p, 2)
		_, _ = viaRemove.Add(other, 1)
		require.True(t, viaRemove.Remove(key2))

		if diff := cmp.Diff(viaRemove.Export(), viaQty.Export(), cmpOpts...); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("上限を超える数量は上限に丸める", func(t *testing.T) {
		c := newCart()
		key, _ := c.Add(builder.NewProductBuilder().Tracked(3).BuildDomain(), 1)

		require.True(t, c.SetQuantity(key, 10))
		line, _ := c.Get(key)
		assert.Equal(t, 3, line.Qty)
	})

	t.Run("存在しないキーはfalse", func(t *testing.T) {
		c := newCart()
		assert.False(t, c.SetQuantity("missing|", 1))
		assert.False(t, c.SetMaxQuantity("missing|", 1))
		assert.False(t, c.Remove("missing|"))
	})

	t.Run("上限の変更は数量を丸めない", func(t *testing.T) {
		c := newCart()
		key, _ := c.Add(builder.NewProductBuilder().Tracked(5).BuildDomain(), 5)

		require.True(t, c.SetMaxQuantity(key, 2))
		line, _ := c.Get(key)
		assert.Equal(t, 5, line.Qty)
		assert.Equal(t, 2, *line.MaxQty)

		require.True(t, c.SetMaxQuantity(key, 0))
		_, ok := c.Get(key)
		assert.False(t, ok)
	})

	t.Run("削除後も挿入順が保たれる", func(t *testing.T) {
		c := newCart()
		k1, _ := c.Add(builder.NewProductBuilder().BuildDomain(), 1)
		k2, _ := c.Add(builder.NewProductBuilder().BuildDomain(), 2)
		k3, _ := c.Add(builder.NewProductBuilder().BuildDomain(), 3)

		require.True(t, c.Remove(k2))
		assert.Equal(t, []string{k1, k3}, c.Keys())
		assert.Equal(t, 4, c.Count())

		require.True(t, c.SetQuantity(k3, 7))
		line, _ := c.Get(k3)
		assert.Equal(t, 7, line.Qty)
	})
}

func TestCartState(t *testing.T) {
	t.Run("読み込み時にエラーがクリアされる", func(t *testing.T) {
		c := newCart()
		_, err := c.Add(builder.NewProductBuilder().Tracked(0).BuildDomain(), 1)
		require.Error(t, err)
		snap := c.Export()
		require.NotEmpty(t, snap.Error)

		reloaded := cart.New(snap)
		assert.Empty(t, reloaded.Error())
	})

	t.Run("エクスポートした状態は独立している", func(t *testing.T) {
		c := newCart()
		key, _ := c.Add(builder.NewProductBuilder().Tracked(5).BuildDomain(), 2)
		snap := c.Export()

		c.SetQuantity(key, 4)
		c.SetMaxQuantity(key, 4)

		assert.Equal(t, 2, snap.Items[0].Qty)
		assert.Equal(t, 5, *snap.Items[0].MaxQty)
	})

	t.Run("履歴の状態を読み込める", func(t *testing.T) {
		original := newCart()
		_, _ = original.Add(builder.NewProductBuilder().WithPrice("4.00").BuildDomain(), 2)
		archived := original.Export()

		c := newCart()
		_, _ = c.Add(builder.NewProductBuilder().BuildDomain(), 9)
		c.Load(archived)

		assert.Equal(t, 2, c.Count())
		assert.Equal(t, "8.00", money.Format(c.Total()))
	})

	t.Run("破棄で空になる", func(t *testing.T) {
		c := newCart()
		_, _ = c.Add(builder.NewProductBuilder().BuildDomain(), 2)
		_, _ = c.Discount(dec("5"), cart.DiscountFlat, map[string]string{"name": "promo"})
		c.Tax(dec("0.09"))

		c.Destroy()

		assert.Empty(t, c.All())
		assert.Empty(t, c.Discounts())
		assert.False(t, c.HasTax())
		assert.Equal(t, "0.00", money.Format(c.Total()))
	})

	t.Run("デコード結果はキャッシュされる", func(t *testing.T) {
		c := newCart()
		p := builder.NewProductBuilder().BuildDomain()
		_, _ = c.Add(p, 1)

		first, err := c.Decoded()
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Equal(t, p.ID, first[0].Decoded.ID)

		_, _ = c.Add(builder.NewProductBuilder().BuildDomain(), 1)
		second, err := c.Decoded()
		require.NoError(t, err)
		assert.Len(t, second, 1)

		assert.Len(t, cart.New(c.Export()).All(), 2)
	})

	t.Run("オプションをグループ名で表示順に並べる", func(t *testing.T) {
		c := newCart()
		p := builder.NewProductBuilder().
			WithOption("Size: Large", "1.00", 0, 2).
			WithOption("Color: Red", "0", 0, 1).
			BuildDomain()
		key, _ := c.Add(p, 1)

		opts, ok := c.Options(key)
		require.True(t, ok)
		require.Len(t, opts, 2)
		assert.Equal(t, "Color", opts[0].Group)
		assert.Equal(t, "Size", opts[1].Group)
		assert.Equal(t, "1.00", money.Format(opts[1].Price))

		_, ok = c.Options("missing|")
		assert.False(t, ok)
	})
}

func TestCartDiscountAndTax(t *testing.T) {
	t.Run("明示的なIDでの再適用は上書き", func(t *testing.T) {
		c := newCart()
		k1, err := c.Discount(dec("5"), cart.DiscountFlat, map[string]string{"id": "42", "name": "SPRING"})
		require.NoError(t, err)
		k2, err := c.Discount(dec("7"), cart.DiscountFlat, map[string]string{"id": "42", "name": "SPRING"})
		require.NoError(t, err)

		assert.Equal(t, "42", k1)
		assert.Equal(t, k1, k2)
		require.Len(t, c.Discounts(), 1)
		assert.Equal(t, "7", c.Discounts()[0].Rate.String())
	})

	t.Run("IDなしは内容のハッシュで重複しない", func(t *testing.T) {
		c := newCart()
		k1, _ := c.Discount(dec("5"), cart.DiscountFlat, map[string]string{"name": "welcome"})
		k2, _ := c.Discount(dec("5"), cart.DiscountFlat, map[string]string{"name": "welcome"})
		k3, _ := c.Discount(dec("5"), cart.DiscountFlat, map[string]string{"name": "other"})

		assert.Equal(t, k1, k2)
		assert.NotEqual(t, k1, k3)
		assert.Len(t, c.Discounts(), 2)
	})

	t.Run("種別が不正ならNG", func(t *testing.T) {
		c := newCart()
		_, err := c.Discount(dec("5"), cart.DiscountKind("bogo"), nil)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("税率は引数なしで読み取りのみ", func(t *testing.T) {
		c := newCart()
		assert.True(t, c.Tax().IsZero())
		assert.False(t, c.HasTax())

		c.Tax(dec("0.0825"))
		assert.Equal(t, "0.0825", c.Tax().String())
		assert.True(t, c.HasTax())
	})
}
