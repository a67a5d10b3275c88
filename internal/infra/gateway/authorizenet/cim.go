package authorizenet

import (
	"fmt"
	"strconv"
	"strings"

	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/pkg/money"
	"storefront-checkout/internal/pkg/xmldoc"
)

const cimNamespace = "AnetApi/xml/v1/schema/AnetApiSchema.xsd"

// CIM direct responses are comma delimited regardless of the AIM setting.
const cimDelimiter = ","

const maxLineItems = 30

type RequestType string

const (
	CreateCustomerProfile            RequestType = "createCustomerProfileRequest"
	CreateCustomerPaymentProfile     RequestType = "createCustomerPaymentProfileRequest"
	CreateCustomerShippingAddress    RequestType = "createCustomerShippingAddressRequest"
	CreateCustomerProfileTransaction RequestType = "createCustomerProfileTransactionRequest"
	DeleteCustomerProfile            RequestType = "deleteCustomerProfileRequest"
	DeleteCustomerPaymentProfile     RequestType = "deleteCustomerPaymentProfileRequest"
	DeleteCustomerShippingAddress    RequestType = "deleteCustomerShippingAddressRequest"
	GetCustomerProfile               RequestType = "getCustomerProfileRequest"
	GetCustomerPaymentProfile        RequestType = "getCustomerPaymentProfileRequest"
	GetCustomerShippingAddress       RequestType = "getCustomerShippingAddressRequest"
	UpdateCustomerProfile            RequestType = "updateCustomerProfileRequest"
	UpdateCustomerPaymentProfile     RequestType = "updateCustomerPaymentProfileRequest"
	UpdateCustomerShippingAddress    RequestType = "updateCustomerShippingAddressRequest"
	ValidateCustomerPaymentProfile   RequestType = "validateCustomerPaymentProfileRequest"
)

// CIMRequest collects validated fields for one profile API call. Invalid values are not stored;
// their messages accumulate and Build refuses to produce a document while any are pending.
type CIMRequest struct {
	kind   RequestType
	params map[string]string
	items  []payment.LineItem
	errors []string
}

func NewCIMRequest(kind RequestType) *CIMRequest {
	return &CIMRequest{kind: kind, params: map[string]string{}}
}

func (r *CIMRequest) Kind() RequestType {
	return r.kind
}

func (r *CIMRequest) Set(field, value string) *CIMRequest {
	rl, ok := fieldRules[field]
	if !ok {
		r.errors = append(r.errors, fmt.Sprintf("setParameter(): %s is not a recognized field", field))
		return r
	}
	if !rl.ok(value) {
		r.errors = append(r.errors, fmt.Sprintf("setParameter(): %s must be %s", field, rl.text))
		return r
	}
	r.params[field] = value
	return r
}

// SetIf is Set skipped for empty values, for optional fields.
func (r *CIMRequest) SetIf(field, value string) *CIMRequest {
	if value == "" {
		return r
	}
	return r.Set(field, value)
}

func (r *CIMRequest) AddLineItem(item payment.LineItem) *CIMRequest {
	r.items = append(r.items, item)
	return r
}

func (r *CIMRequest) Get(field string) string {
	return r.params[field]
}

func (r *CIMRequest) Errors() []string {
	return append([]string(nil), r.errors...)
}

// Build renders the request document, or a validation error listing every problem found.
func (r *CIMRequest) Build(creds Credentials) ([]byte, error) {
	root := xmldoc.New(string(r.kind)).SetAttr("xmlns", cimNamespace)
	root.Add("merchantAuthentication").
		AddText("name", creds.LoginID).
		AddText("transactionKey", creds.TransactionKey)

	switch r.kind {
	case CreateCustomerProfile:
		r.opt(root, "refId", "refId")
		profile := root.Add("profile")
		r.opt(profile, "merchantCustomerId", "merchantCustomerId")
		r.opt(profile, "description", "description")
		r.opt(profile, "email", "email")
		if _, ok := r.params["paymentType"]; ok {
			pp := profile.Add("paymentProfiles")
			r.opt(pp, "customerType", "customerType")
			r.address(pp, "billTo", "billTo_")
			r.paymentMethod(pp)
		}
		if r.hasPrefix("shipTo_") {
			r.address(profile, "shipToList", "shipTo_")
		}
	case CreateCustomerPaymentProfile:
		r.opt(root, "refId", "refId")
		r.req(root, "customerProfileId", "customerProfileId")
		pp := root.Add("paymentProfile")
		r.opt(pp, "customerType", "customerType")
		r.address(pp, "billTo", "billTo_")
		r.paymentMethod(pp)
		r.req(root, "validationMode", "validationMode")
	case CreateCustomerShippingAddress:
		r.opt(root, "refId", "refId")
		r.req(root, "customerProfileId", "customerProfileId")
		r.address(root, "address", "shipTo_")
	case CreateCustomerProfileTransaction:
		r.opt(root, "refId", "refId")
		r.transaction(root.Add("transaction"))
	case DeleteCustomerProfile:
		r.opt(root, "refId", "refId")
		r.req(root, "customerProfileId", "customerProfileId")
	case DeleteCustomerPaymentProfile:
		r.opt(root, "refId", "refId")
		r.req(root, "customerProfileId", "customerProfileId")
		r.req(root, "customerPaymentProfileId", "customerPaymentProfileId")
	case DeleteCustomerShippingAddress:
		r.opt(root, "refId", "refId")
		r.req(root, "customerProfileId", "customerProfileId")
		r.req(root, "customerAddressId", "customerAddressId")
	case GetCustomerProfile:
		r.req(root, "customerProfileId", "customerProfileId")
	case GetCustomerPaymentProfile:
		r.req(root, "customerProfileId", "customerProfileId")
		r.req(root, "customerPaymentProfileId", "customerPaymentProfileId")
	case GetCustomerShippingAddress:
		r.req(root, "customerProfileId", "customerProfileId")
		r.req(root, "customerAddressId", "customerAddressId")
	case UpdateCustomerProfile:
		r.opt(root, "refId", "refId")
		profile := root.Add("profile")
		r.opt(profile, "merchantCustomerId", "merchantCustomerId")
		r.opt(profile, "description", "description")
		r.opt(profile, "email", "email")
		r.req(profile, "customerProfileId", "customerProfileId")
	case UpdateCustomerPaymentProfile:
		r.opt(root, "refId", "refId")
		r.req(root, "customerProfileId", "customerProfileId")
		pp := root.Add("paymentProfile")
		r.opt(pp, "customerType", "customerType")
		r.address(pp, "billTo", "billTo_")
		r.paymentMethod(pp)
		r.req(pp, "customerPaymentProfileId", "customerPaymentProfileId")
	case UpdateCustomerShippingAddress:
		r.opt(root, "refId", "refId")
		r.req(root, "customerProfileId", "customerProfileId")
		addr := r.address(root, "address", "shipTo_")
		r.req(addr, "customerAddressId", "customerAddressId")
	case ValidateCustomerPaymentProfile:
		r.req(root, "customerProfileId", "customerProfileId")
		r.req(root, "customerPaymentProfileId", "customerPaymentProfileId")
		r.opt(root, "customerShippingAddressId", "customerShippingAddressId")
		r.req(root, "validationMode", "validationMode")
	default:
		r.errors = append(r.errors, fmt.Sprintf("unsupported request type %q", r.kind))
	}

	if len(r.errors) > 0 {
		return nil, payment.Invalid(strings.Join(r.errors, "; "))
	}
	return root.Bytes(), nil
}

func (r *CIMRequest) transaction(parent *xmldoc.Element) {
	kind, ok := r.params["transactionType"]
	if !ok {
		r.missing("transactionType")
		return
	}
	t := parent.Add(kind)

	if kind == TransVoid {
		r.opt(t, "amount", "transaction_amount")
	} else {
		r.req(t, "amount", "transaction_amount")
	}
	r.group(t, "tax", "tax_")
	r.group(t, "shipping", "shipping_")
	r.group(t, "duty", "duty_")

	if len(r.items) > maxLineItems {
		r.errors = append(r.errors, fmt.Sprintf("lineItems: up to %d distinct instances of this element may be included", maxLineItems))
	}
	for _, it := range r.items {
		t.Add("lineItems").
			AddText("itemId", it.ID).
			AddText("name", it.Name).
			AddTextIf("description", it.Description).
			AddText("quantity", strconv.Itoa(it.Quantity)).
			AddText("unitPrice", money.Format(it.UnitPrice)).
			AddText("taxable", strconv.FormatBool(it.Taxable))
	}

	r.req(t, "customerProfileId", "customerProfileId")
	r.req(t, "customerPaymentProfileId", "customerPaymentProfileId")
	r.opt(t, "customerShippingAddressId", "customerShippingAddressId")

	if r.hasPrefix("order_") {
		order := t.Add("order")
		r.opt(order, "invoiceNumber", "order_invoiceNumber")
		r.opt(order, "description", "order_description")
		r.opt(order, "purchaseOrderNumber", "order_purchaseOrderNumber")
	}

	switch kind {
	case TransPriorAuthCapture, TransVoid:
		r.req(t, "transId", "transId")
	case TransRefund:
		// unlinked credits carry no prior transaction
		r.opt(t, "transId", "transId")
	}

	r.opt(t, "taxExempt", "transactionTaxExempt")
	r.opt(t, "recurringBilling", "transactionRecurringBilling")
	r.opt(t, "cardCode", "transactionCardCode")
	if _, ok := r.params["transactionApprovalCode"]; ok && kind != TransCaptureOnly {
		r.errors = append(r.errors, "setParameter(): transactionApprovalCode must be 6 characters and transactionType value must be ("+TransCaptureOnly+")")
	}
	r.opt(t, "approvalCode", "transactionApprovalCode")
}

func (r *CIMRequest) group(parent *xmldoc.Element, tag, prefix string) {
	if !r.hasPrefix(prefix) {
		return
	}
	g := parent.Add(tag)
	r.opt(g, "amount", prefix+"amount")
	r.opt(g, "name", prefix+"name")
	r.opt(g, "description", prefix+"description")
}

func (r *CIMRequest) address(parent *xmldoc.Element, tag, prefix string) *xmldoc.Element {
	a := parent.Add(tag)
	for _, f := range []string{"firstName", "lastName", "company", "address", "city", "state", "zip", "country", "phoneNumber", "faxNumber"} {
		r.opt(a, f, prefix+f)
	}
	return a
}

func (r *CIMRequest) paymentMethod(parent *xmldoc.Element) {
	p := parent.Add("payment")
	switch r.params["paymentType"] {
	case "creditCard", "creditcard":
		cc := p.Add("creditCard")
		r.req(cc, "cardNumber", "cardNumber")
		r.req(cc, "expirationDate", "expirationDate")
		r.opt(cc, "cardCode", "cardCode")
	case "bankAccount", "echeck":
		ba := p.Add("bankAccount")
		r.req(ba, "accountType", "accountType")
		r.req(ba, "routingNumber", "routingNumber")
		r.req(ba, "accountNumber", "accountNumber")
		r.req(ba, "nameOnAccount", "nameOnAccount")
		r.req(ba, "echeckType", "echeckType")
		r.req(ba, "bankName", "bankName")
	default:
		r.missing("paymentType")
	}
}

func (r *CIMRequest) opt(parent *xmldoc.Element, tag, field string) {
	if v, ok := r.params[field]; ok {
		parent.AddText(tag, v)
	}
}

func (r *CIMRequest) req(parent *xmldoc.Element, tag, field string) {
	v, ok := r.params[field]
	if !ok {
		r.missing(field)
		return
	}
	parent.AddText(tag, v)
}

func (r *CIMRequest) missing(field string) {
	// a field rejected by Set already has a message
	prefix := "setParameter(): " + field + " "
	for _, e := range r.errors {
		if strings.HasPrefix(e, prefix) {
			return
		}
	}
	rl := fieldRules[field]
	r.errors = append(r.errors, fmt.Sprintf("setParameter(): %s is required and must be %s", field, rl.text))
}

func (r *CIMRequest) hasPrefix(prefix string) bool {
	for k := range r.params {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// CIMResponse holds the fields read out of a profile API reply.
type CIMResponse struct {
	ResultCode               string
	Code                     string
	Text                     string
	RefID                    string
	CustomerProfileID        string
	CustomerPaymentProfileID string
	CustomerAddressID        string
	DirectResponse           string
	ValidationDirectResponse string
}

func ParseCIMResponse(body string) (CIMResponse, error) {
	r := CIMResponse{
		ResultCode:               Extract(body, "resultCode"),
		Code:                     Extract(body, "code"),
		Text:                     Extract(body, "text"),
		RefID:                    Extract(body, "refId"),
		CustomerProfileID:        Extract(body, "customerProfileId"),
		CustomerPaymentProfileID: Extract(body, "customerPaymentProfileId"),
		CustomerAddressID:        Extract(body, "customerAddressId"),
		DirectResponse:           Extract(body, "directResponse"),
		ValidationDirectResponse: Extract(body, "validationDirectResponse"),
	}
	if r.CustomerPaymentProfileID == "" {
		r.CustomerPaymentProfileID = Extract(Extract(body, "customerPaymentProfileIdList"), "numericString")
	}
	if r.ResultCode == "" {
		return CIMResponse{}, errMalformedResponse
	}
	return r, nil
}

func (r CIMResponse) OK() bool {
	return r.ResultCode == "Ok"
}

// Direct parses the embedded transaction reply with the AIM parser.
func (r CIMResponse) Direct() (AIMResponse, error) {
	return ParseAIMResponse(strings.ReplaceAll(r.DirectResponse, cimDelimiter, aimDelimiter), aimDelimiter)
}

// transactionType maps an operation onto the profile transaction element.
func transactionType(op payment.Operation) string {
	switch op {
	case payment.OpAuthorize:
		return TransAuthOnly
	case payment.OpCapture:
		return TransPriorAuthCapture
	case payment.OpCharge:
		return TransAuthCapture
	case payment.OpRefund, payment.OpCredit:
		return TransRefund
	case payment.OpCancel:
		return TransVoid
	}
	return ""
}
