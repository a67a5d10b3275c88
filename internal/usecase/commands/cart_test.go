//go:build unit

package commands_test

import (
	"context"
	"testing"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/tests/common/builder"
	commandsmock "storefront-checkout/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type cartFixture struct {
	store     *memoryStore
	catalog   *commandsmock.MockProductCatalog
	discounts *commandsmock.MockDiscountRepository
	uc        commands.CartCommands
}

func newCartFixture(t *testing.T) *cartFixture {
	ctrl := gomock.NewController(t)
	f := &cartFixture{
		store:     newMemoryStore(),
		catalog:   commandsmock.NewMockProductCatalog(ctrl),
		discounts: commandsmock.NewMockDiscountRepository(ctrl),
	}
	f.uc = commands.NewCartUseCase(f.store, f.catalog, f.discounts, config.NewTestConfig(), discardLogger())
	return f
}

// seed stores a cart holding one line of the given product at qty.
func (f *cartFixture) seed(t *testing.T, sessionID string, p cart.Product, qty int) string {
	t.Helper()
	c := cart.New(cart.EmptySnapshot())
	key, err := c.Add(p, qty)
	require.NoError(t, err)
	require.NoError(t, f.store.Save(context.Background(), sessionID, c.Export()))
	return key
}

func TestCartCommands_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("success: adding the same selection twice merges lines", func(t *testing.T) {
		f := newCartFixture(t)
		p := builder.NewProductBuilder().BuildDomain()
		f.catalog.EXPECT().Product(ctx, p.ID, gomock.Any()).Return(&p, nil).Times(2)
		in := commands.AddItemInput{ProductID: p.ID, Qty: 2}

		first, err := f.uc.AddItem(ctx, "s1", in)
		require.NoError(t, err)
		second, err := f.uc.AddItem(ctx, "s1", in)
		require.NoError(t, err)

		assert.Equal(t, first.Key, second.Key)
		assert.Equal(t, 4, second.Count)
		assert.Len(t, f.store.cart("s1").All(), 1)
	})

	t.Run("error: unknown product is not found", func(t *testing.T) {
		f := newCartFixture(t)
		id := uuid.New()
		f.catalog.EXPECT().Product(ctx, id, gomock.Any()).Return(nil, notFound())

		_, err := f.uc.AddItem(ctx, "s1", commands.AddItemInput{ProductID: id, Qty: 1})

		assert.True(t, errs.Is(err, commands.ErrProductNotFound))
		assert.Zero(t, f.store.saves)
	})

	t.Run("error: non-positive quantity never reaches the catalog", func(t *testing.T) {
		f := newCartFixture(t)

		_, err := f.uc.AddItem(ctx, "s1", commands.AddItemInput{ProductID: uuid.New(), Qty: 0})

		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("error: more than the stock is a stock error", func(t *testing.T) {
		f := newCartFixture(t)
		p := builder.NewProductBuilder().Tracked(1).BuildDomain()
		f.catalog.EXPECT().Product(ctx, p.ID, gomock.Any()).Return(&p, nil)

		_, err := f.uc.AddItem(ctx, "s1", commands.AddItemInput{ProductID: p.ID, Qty: 2})

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrStock))
		assert.Equal(t, "There is only 1 of this item left.", err.Error())
	})
}

func TestCartCommands_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("success: quantities are applied, zero removes and unknown keys are ignored", func(t *testing.T) {
		f := newCartFixture(t)
		keep := f.seed(t, "s1", builder.NewProductBuilder().WithPrice("10.00").BuildDomain(), 1)
		c := f.store.cart("s1")
		drop, err := c.Add(builder.NewProductBuilder().BuildDomain(), 1)
		require.NoError(t, err)
		require.NoError(t, f.store.Save(ctx, "s1", c.Export()))

		totals, err := f.uc.UpdateQuantities(ctx, "s1", map[string]int{keep: 3, drop: 0, "missing": 9})

		require.NoError(t, err)
		assert.Equal(t, "30.00", totals.Total.StringFixed(2))
		got := f.store.cart("s1")
		assert.Equal(t, 3, got.Count())
		_, ok := got.Get(drop)
		assert.False(t, ok)
	})

	t.Run("error: negative quantity is rejected", func(t *testing.T) {
		f := newCartFixture(t)
		key := f.seed(t, "s1", builder.NewProductBuilder().BuildDomain(), 1)

		_, err := f.uc.UpdateQuantities(ctx, "s1", map[string]int{key: -1})

		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("success: remove deletes the line", func(t *testing.T) {
		f := newCartFixture(t)
		key := f.seed(t, "s1", builder.NewProductBuilder().BuildDomain(), 1)

		require.NoError(t, f.uc.RemoveItem(ctx, "s1", key))
		assert.Zero(t, f.store.cart("s1").Count())
	})

	t.Run("error: removing an unknown line", func(t *testing.T) {
		f := newCartFixture(t)

		err := f.uc.RemoveItem(ctx, "s1", "nope")

		assert.True(t, errs.Is(err, cart.ErrLineNotFound))
	})
}

func TestCartCommands_ApplyPromoCode(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	percent := func(mutate func(d *commands.DiscountSnapshot)) *commands.DiscountSnapshot {
		d := &commands.DiscountSnapshot{
			ID:   uuid.New(),
			Name: "Ten off",
			Code: "SAVE10",
			Kind: cart.DiscountPercent,
			Rate: builder.Dec("10"),
		}
		if mutate != nil {
			mutate(d)
		}
		return d
	}

	tests := []struct {
		name      string
		discount  *commands.DiscountSnapshot
		findErr   error
		userID    *uuid.UUID
		wantErr   error
		wantTotal string
	}{
		{name: "success: percent code", discount: percent(nil), wantTotal: "27.00"},
		{name: "success: flat code", discount: percent(func(d *commands.DiscountSnapshot) {
			d.Kind = cart.DiscountFlat
			d.Rate = builder.Dec("5")
		}), wantTotal: "25.00"},
		{name: "success: one-time code not yet used", discount: percent(func(d *commands.DiscountSnapshot) { d.OneTime = true }), wantTotal: "27.00"},
		{name: "success: owner redeems a personal code", discount: percent(func(d *commands.DiscountSnapshot) { d.UserID = &owner }), userID: &owner, wantTotal: "27.00"},
		{name: "error: unknown code", findErr: notFound(), wantErr: commands.ErrPromoNotFound},
		{name: "error: used one-time code", discount: percent(func(d *commands.DiscountSnapshot) {
			d.OneTime = true
			d.Used = true
		}), wantErr: commands.ErrPromoUsed},
		{name: "success: used code that is not one-time still applies", discount: percent(func(d *commands.DiscountSnapshot) { d.Used = true }), wantTotal: "27.00"},
		{name: "error: personal code for a guest", discount: percent(func(d *commands.DiscountSnapshot) { d.UserID = &owner }), wantErr: commands.ErrPromoForbidden},
		{name: "error: personal code for another customer", discount: percent(func(d *commands.DiscountSnapshot) { d.UserID = &owner }), userID: &stranger, wantErr: commands.ErrPromoForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newCartFixture(t)
			f.seed(t, "s1", builder.NewProductBuilder().WithPrice("10.00").BuildDomain(), 3)
			f.discounts.EXPECT().FindByCode(ctx, "SAVE10").Return(tc.discount, tc.findErr)

			totals, err := f.uc.ApplyPromoCode(ctx, "s1", " SAVE10 ", tc.userID)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.wantErr))
				assert.Empty(t, f.store.cart("s1").Discounts())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, totals.Total.StringFixed(2))
			ds := f.store.cart("s1").Discounts()
			require.Len(t, ds, 1)
			assert.Equal(t, tc.discount.ID.String(), ds[0].ID())
			assert.Equal(t, "Ten off", ds[0].Name())
		})
	}

	t.Run("error: blank code is unknown without a lookup", func(t *testing.T) {
		f := newCartFixture(t)

		_, err := f.uc.ApplyPromoCode(ctx, "s1", "  ", nil)

		assert.True(t, errs.Is(err, commands.ErrPromoNotFound))
	})

	t.Run("error: lookup failure is a database error", func(t *testing.T) {
		f := newCartFixture(t)
		f.discounts.EXPECT().FindByCode(ctx, "X").
			Return(nil, infra.WrapRepoErr(discardLogger(), infra.KindDBFailure, "timeout", nil))

		_, err := f.uc.ApplyPromoCode(ctx, "s1", "X", nil)

		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func TestCartCommands_ApplyStateTax(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		shipping string
		billing  string
		wantTax  string
		wantRate string
	}{
		{"success: same configured state is taxed", "CA", "CA", "2.70", "0.09"},
		{"success: state match ignores case", "ca", "Ca", "2.70", "0.09"},
		{"success: different states are not taxed", "CA", "NY", "0.00", "0"},
		{"success: unconfigured state is not taxed", "OR", "OR", "0.00", "0"},
		{"success: missing billing state is not taxed", "CA", "", "0.00", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newCartFixture(t)
			f.seed(t, "s1", builder.NewProductBuilder().WithPrice("10.00").BuildDomain(), 3)

			totals, err := f.uc.ApplyStateTax(ctx, "s1", tc.shipping, tc.billing)

			require.NoError(t, err)
			assert.Equal(t, tc.wantTax, totals.Tax.StringFixed(2))
			c := f.store.cart("s1")
			assert.True(t, c.HasTax())
			assert.True(t, c.Tax().Equal(builder.Dec(tc.wantRate)))
		})
	}
}
