package authorizenet

import (
	"context"

	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/pkg/clock"
)

// saveProfile stores the request's card and addresses as a new customer profile. Its outcome is
// reported separately and never changes the transaction result.
func (a *Adapter) saveProfile(ctx context.Context, req payment.Request) *payment.ProfileResult {
	r := NewCIMRequest(CreateCustomerProfile).
		Set("paymentType", "creditCard").
		SetIf("cardNumber", req.Card.Number).
		SetIf("cardCode", req.Card.Code)
	if req.Card.ExpirationMonth != "" && req.Card.ExpirationYear != "" {
		r.Set("expirationDate", req.Card.ExpirationYYYYMM())
	}

	bill := req.Address
	setAddress(r, "billTo_", bill)
	setAddress(r, "shipTo_", withFallback(req.Shipping, bill))

	r.Set("description", "CIM - "+clock.MicroStamp(a.clock))

	resp, err := a.SendCIM(ctx, r)
	if err != nil {
		return &payment.ProfileResult{Success: false, Message: err.Error()}
	}
	if !resp.OK() {
		return &payment.ProfileResult{Success: false, Message: resp.Text}
	}
	return &payment.ProfileResult{
		ProfileID:        resp.CustomerProfileID,
		PaymentProfileID: resp.CustomerPaymentProfileID,
		Success:          true,
		Message:          resp.Text,
	}
}

func setAddress(r *CIMRequest, prefix string, a payment.Address) {
	r.SetIf(prefix+"firstName", a.FirstName).
		SetIf(prefix+"lastName", a.LastName).
		SetIf(prefix+"company", a.Company).
		SetIf(prefix+"address", a.Street()).
		SetIf(prefix+"city", a.City).
		SetIf(prefix+"state", a.State).
		SetIf(prefix+"zip", a.Zip).
		SetIf(prefix+"country", a.Country).
		SetIf(prefix+"phoneNumber", a.Phone).
		SetIf(prefix+"faxNumber", a.Fax)
}

// withFallback fills every empty shipping field from billing.
func withFallback(ship, bill payment.Address) payment.Address {
	pick := func(s, b string) string {
		if s == "" {
			return b
		}
		return s
	}
	street := ship.Street()
	if street == "" {
		street = bill.Street()
	}
	return payment.Address{
		FirstName: pick(ship.FirstName, bill.FirstName),
		LastName:  pick(ship.LastName, bill.LastName),
		Company:   pick(ship.Company, bill.Company),
		Address:   street,
		City:      pick(ship.City, bill.City),
		State:     pick(ship.State, bill.State),
		Zip:       pick(ship.Zip, bill.Zip),
		Country:   pick(ship.Country, bill.Country),
		Phone:     pick(ship.Phone, bill.Phone),
		Fax:       pick(ship.Fax, bill.Fax),
	}
}
