package authorizenet

import (
	"net/url"
	"strings"

	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/pkg/errs"
)

const aimDelimiter = "|"

// aimMinFields covers everything up to and including the transaction id.
const aimMinFields = 7

var errMalformedResponse = errs.New("malformed gateway response")

// AIMResponse is the named view of the positional delimited reply.
type AIMResponse struct {
	Approved      bool
	ResponseCode  string
	SubCode       string
	ReasonCode    string
	Message       string
	AuthCode      string
	AVS           string
	TransactionID string
}

// ParseAIMResponse reads a delimited direct response. Response code "1" means approved.
func ParseAIMResponse(raw, delimiter string) (AIMResponse, error) {
	fields := strings.Split(strings.TrimSpace(raw), delimiter)
	if len(fields) < aimMinFields {
		return AIMResponse{}, errs.Wrapf(errMalformedResponse, "expected at least %d fields, got %d", aimMinFields, len(fields))
	}
	r := AIMResponse{
		ResponseCode:  fields[0],
		SubCode:       fields[1],
		ReasonCode:    fields[2],
		Message:       fields[3],
		AuthCode:      fields[4],
		AVS:           fields[5],
		TransactionID: fields[6],
	}
	r.Approved = r.ResponseCode == "1"
	return r, nil
}

// actionCode maps an operation onto the AIM x_type value.
func actionCode(op payment.Operation) string {
	switch op {
	case payment.OpAuthorize:
		return "AUTH_ONLY"
	case payment.OpCapture:
		return "PRIOR_AUTH_CAPTURE"
	case payment.OpCharge:
		return "AUTH_CAPTURE"
	case payment.OpRefund, payment.OpCredit:
		return "CREDIT"
	case payment.OpCancel:
		return "VOID"
	}
	return ""
}

// encodeAIM builds the form body. amount is already formatted to two decimals.
func encodeAIM(creds Credentials, action string, req payment.Request, amount string) url.Values {
	v := url.Values{}
	v.Set("x_login", creds.LoginID)
	v.Set("x_tran_key", creds.TransactionKey)
	v.Set("x_version", "3.1")
	v.Set("x_delim_char", aimDelimiter)
	v.Set("x_delim_data", "TRUE")
	v.Set("x_url", "FALSE")
	v.Set("x_type", action)
	v.Set("x_method", "CC")
	v.Set("x_trans_id", req.TransactionID)
	v.Set("x_relay_response", "FALSE")
	v.Set("x_card_num", req.Card.Number)
	v.Set("x_exp_date", req.Card.ExpirationMMYY())
	v.Set("x_amount", amount)

	bill := req.Address
	v.Set("x_first_name", bill.FirstName)
	v.Set("x_last_name", bill.LastName)
	v.Set("x_company", bill.Company)
	v.Set("x_address", bill.Street())
	v.Set("x_city", bill.City)
	v.Set("x_state", bill.State)
	v.Set("x_zip", bill.Zip)
	v.Set("x_country", bill.Country)
	v.Set("x_email", bill.Email)
	v.Set("x_phone", bill.Phone)
	v.Set("x_fax", bill.Fax)

	v.Set("x_invoice_num", req.Invoice)
	v.Set("x_description", req.Description)
	v.Set("x_card_code", req.Card.Code)

	ship := req.Shipping
	v.Set("x_ship_to_first_name", ship.FirstName)
	v.Set("x_ship_to_last_name", ship.LastName)
	v.Set("x_ship_to_company", ship.Company)
	v.Set("x_ship_to_address", ship.Street())
	v.Set("x_ship_to_city", ship.City)
	v.Set("x_ship_to_state", ship.State)
	v.Set("x_ship_to_zip", ship.Zip)
	v.Set("x_ship_to_country", ship.Country)
	return v
}
