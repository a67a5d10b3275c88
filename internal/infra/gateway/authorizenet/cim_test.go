//go:build unit

package authorizenet_test

import (
	"strings"
	"testing"

	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/infra/gateway/authorizenet"
	"storefront-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var creds = authorizenet.Credentials{LoginID: "login", TransactionKey: "key", Test: true}

func TestCIMRequestSet(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr string
	}{
		{"state must be two letters", "billTo_state", "California", "setParameter(): billTo_state must be a valid two-character state code"},
		{"card number 13-16 digits", "cardNumber", "4111", "setParameter(): cardNumber must be 13 to 16 digits"},
		{"expiration YYYY-MM", "expirationDate", "09/27", "setParameter(): expirationDate must be YYYY-MM"},
		{"card code 3-4 digits", "cardCode", "12", "setParameter(): cardCode must be 3 to 4 digits"},
		{"amount without symbol", "transaction_amount", "$12.00", "setParameter(): transaction_amount must be up to 4 digits with a decimal (no dollar symbol)"},
		{"routing number 9 digits", "routingNumber", "12345", "setParameter(): routingNumber must be 9 digits"},
		{"account number 5-17 digits", "accountNumber", "1234", "setParameter(): accountNumber must be 5 to 17 digits"},
		{"account type enum", "accountType", "brokerage", "setParameter(): accountType must be (checking, savings or businessChecking)"},
		{"echeck type enum", "echeckType", "ARC", "setParameter(): echeckType must be (CCD, PPD, TEL or WEB)"},
		{"customer type enum", "customerType", "robot", "setParameter(): customerType must be (individual or business)"},
		{"validation mode enum", "validationMode", "always", "setParameter(): validationMode must be (none, testMode or liveMode)"},
		{"profile id numeric", "customerProfileId", "abc", "setParameter(): customerProfileId must be numeric"},
		{"first name up to 50", "billTo_firstName", strings.Repeat("a", 51), "setParameter(): billTo_firstName must be up to 50 characters (no symbols)"},
		{"unknown field", "nickname", "x", "setParameter(): nickname is not a recognized field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authorizenet.NewCIMRequest(authorizenet.GetCustomerProfile).Set(tt.field, tt.value)

			assert.Equal(t, []string{tt.wantErr}, r.Errors())
			assert.Empty(t, r.Get(tt.field))
		})
	}

	t.Run("success: valid values are kept", func(t *testing.T) {
		r := authorizenet.NewCIMRequest(authorizenet.GetCustomerProfile).
			Set("billTo_state", "ca").
			Set("transaction_amount", "12.5").
			Set("expirationDate", "2027-09")

		assert.Empty(t, r.Errors())
		assert.Equal(t, "ca", r.Get("billTo_state"))
	})
}

func TestCIMRequestBuild(t *testing.T) {
	t.Run("success: profile transaction element order", func(t *testing.T) {
		r := authorizenet.NewCIMRequest(authorizenet.CreateCustomerProfileTransaction).
			Set("refId", "r1").
			Set("transactionType", authorizenet.TransAuthCapture).
			Set("transaction_amount", "12.50").
			Set("tax_amount", "1.00").
			Set("customerProfileId", "111").
			Set("customerPaymentProfileId", "222").
			Set("order_invoiceNumber", "INV-1").
			Set("transactionCardCode", "123").
			AddLineItem(payment.LineItem{ID: "sku", Name: "Mug & Cup", Quantity: 2, UnitPrice: decimal.RequireFromString("5.75"), Taxable: true})

		doc, err := r.Build(creds)
		require.NoError(t, err)

		want := `<?xml version="1.0" encoding="utf-8"?>` +
			`<createCustomerProfileTransactionRequest xmlns="AnetApi/xml/v1/schema/AnetApiSchema.xsd">` +
			`<merchantAuthentication><name>login</name><transactionKey>key</transactionKey></merchantAuthentication>` +
			`<refId>r1</refId>` +
			`<transaction><profileTransAuthCapture>` +
			`<amount>12.50</amount>` +
			`<tax><amount>1.00</amount></tax>` +
			`<lineItems><itemId>sku</itemId><name>Mug &amp; Cup</name><quantity>2</quantity><unitPrice>5.75</unitPrice><taxable>true</taxable></lineItems>` +
			`<customerProfileId>111</customerProfileId><customerPaymentProfileId>222</customerPaymentProfileId>` +
			`<order><invoiceNumber>INV-1</invoiceNumber></order>` +
			`<cardCode>123</cardCode>` +
			`</profileTransAuthCapture></transaction>` +
			`</createCustomerProfileTransactionRequest>`
		assert.Equal(t, want, string(doc))
	})

	t.Run("error: every missing required field is reported", func(t *testing.T) {
		r := authorizenet.NewCIMRequest(authorizenet.CreateCustomerProfileTransaction).
			Set("transactionType", authorizenet.TransPriorAuthCapture).
			Set("transaction_amount", "5.00")

		_, err := r.Build(creds)
		require.Error(t, err)

		assert.True(t, errs.Is(err, payment.ErrValidation))
		assert.Contains(t, err.Error(), "customerProfileId is required")
		assert.Contains(t, err.Error(), "customerPaymentProfileId is required")
		assert.Contains(t, err.Error(), "transId is required")
	})

	t.Run("error: approval code outside capture only", func(t *testing.T) {
		r := authorizenet.NewCIMRequest(authorizenet.CreateCustomerProfileTransaction).
			Set("transactionType", authorizenet.TransAuthOnly).
			Set("transaction_amount", "5.00").
			Set("customerProfileId", "1").
			Set("customerPaymentProfileId", "2").
			Set("transactionApprovalCode", "ABC123")

		_, err := r.Build(creds)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "transactionApprovalCode must be 6 characters")
	})

	t.Run("error: more than 30 line items", func(t *testing.T) {
		r := authorizenet.NewCIMRequest(authorizenet.CreateCustomerProfileTransaction).
			Set("transactionType", authorizenet.TransAuthOnly).
			Set("transaction_amount", "5.00").
			Set("customerProfileId", "1").
			Set("customerPaymentProfileId", "2")
		for i := 0; i < 31; i++ {
			r.AddLineItem(payment.LineItem{ID: "x", Name: "x", Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
		}

		_, err := r.Build(creds)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "up to 30 distinct instances")
	})

	t.Run("success: bank account payment profile", func(t *testing.T) {
		r := authorizenet.NewCIMRequest(authorizenet.CreateCustomerPaymentProfile).
			Set("customerProfileId", "111").
			Set("paymentType", "bankAccount").
			Set("accountType", "checking").
			Set("routingNumber", "123456789").
			Set("accountNumber", "000123456").
			Set("nameOnAccount", "Jane Doe").
			Set("echeckType", "WEB").
			Set("bankName", "First Bank").
			Set("validationMode", "testMode")

		doc, err := r.Build(creds)
		require.NoError(t, err)

		assert.Contains(t, string(doc),
			`<payment><bankAccount><accountType>checking</accountType><routingNumber>123456789</routingNumber>`+
				`<accountNumber>000123456</accountNumber><nameOnAccount>Jane Doe</nameOnAccount>`+
				`<echeckType>WEB</echeckType><bankName>First Bank</bankName></bankAccount></payment>`)
		assert.True(t, strings.HasSuffix(string(doc), `<validationMode>testMode</validationMode></createCustomerPaymentProfileRequest>`))
	})

	t.Run("success: address id closes the address element", func(t *testing.T) {
		r := authorizenet.NewCIMRequest(authorizenet.UpdateCustomerShippingAddress).
			Set("customerProfileId", "111").
			Set("shipTo_city", "Austin").
			Set("customerAddressId", "333")

		doc, err := r.Build(creds)
		require.NoError(t, err)

		assert.Contains(t, string(doc), `<address><city>Austin</city><customerAddressId>333</customerAddressId></address>`)
	})

	t.Run("error: payment profile without payment type", func(t *testing.T) {
		r := authorizenet.NewCIMRequest(authorizenet.UpdateCustomerPaymentProfile).
			Set("customerProfileId", "111").
			Set("customerPaymentProfileId", "222")

		_, err := r.Build(creds)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "paymentType is required and must be (bankAccount or creditCard)")
	})
}
