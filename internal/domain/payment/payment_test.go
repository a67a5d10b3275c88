//go:build unit

package payment_test

import (
	"testing"

	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestCard(t *testing.T) {
	t.Run("有効期限の書式", func(t *testing.T) {
		c := payment.Card{Number: "4111111111111111", ExpirationMonth: "9", ExpirationYear: "2027"}

		assert.Equal(t, "0927", c.ExpirationMMYY())
		assert.Equal(t, "2027-09", c.ExpirationYYYYMM())
		assert.Equal(t, "XXXX1111", c.Masked())
	})

	t.Run("2桁の年", func(t *testing.T) {
		c := payment.Card{ExpirationMonth: "12", ExpirationYear: "28"}

		assert.Equal(t, "1228", c.ExpirationMMYY())
		assert.Equal(t, "2028-12", c.ExpirationYYYYMM())
	})
}

func TestAddress(t *testing.T) {
	t.Run("最初の空白で姓名を分割", func(t *testing.T) {
		var a payment.Address
		a.SplitName("Mary Ann Smith")

		assert.Equal(t, "Mary", a.FirstName)
		assert.Equal(t, "Ann Smith", a.LastName)
	})

	t.Run("空白なしは名のみ", func(t *testing.T) {
		var a payment.Address
		a.SplitName("Cher")

		assert.Equal(t, "Cher", a.FirstName)
		assert.Empty(t, a.LastName)
	})
}

func TestErrorClasses(t *testing.T) {
	err := payment.Invalid("No charge amount was passed.")

	assert.Equal(t, "No charge amount was passed.", err.Error())
	assert.True(t, errs.Is(err, payment.ErrValidation))
	assert.False(t, errs.Is(err, payment.ErrTransport))

	res := payment.Failed("authorize.net", payment.Declined("This transaction has been declined."))
	assert.False(t, res.Success)
	assert.Equal(t, "This transaction has been declined.", res.Message)
	assert.True(t, errs.Is(res.Err, payment.ErrDecline))
}
