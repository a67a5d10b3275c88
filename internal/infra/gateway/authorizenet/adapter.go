package authorizenet

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/money"
)

const (
	formContentType = "application/x-www-form-urlencoded"
	xmlContentType  = "text/xml"
)

var _ payment.Adapter = (*Adapter)(nil)

// Adapter routes an operation to CIM when the request references a stored profile, otherwise to
// AIM with the card on the request.
type Adapter struct {
	cfg       Config
	transport *Transport
	converter payment.CurrencyConverter
	clock     clock.Clock
	logger    *slog.Logger
}

// converter may be nil, in which case only USD requests are accepted.
func NewAdapter(cfg Config, transport *Transport, converter payment.CurrencyConverter, clk clock.Clock, logger *slog.Logger) *Adapter {
	return &Adapter{
		cfg:       cfg,
		transport: transport,
		converter: converter,
		clock:     clk,
		logger:    logger,
	}
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) Authorize(ctx context.Context, req payment.Request) payment.Result {
	return a.run(ctx, payment.OpAuthorize, req)
}

func (a *Adapter) Capture(ctx context.Context, req payment.Request) payment.Result {
	return a.run(ctx, payment.OpCapture, req)
}

func (a *Adapter) Charge(ctx context.Context, req payment.Request) payment.Result {
	return a.run(ctx, payment.OpCharge, req)
}

func (a *Adapter) Refund(ctx context.Context, req payment.Request) payment.Result {
	return a.run(ctx, payment.OpRefund, req)
}

func (a *Adapter) Cancel(ctx context.Context, req payment.Request) payment.Result {
	return a.run(ctx, payment.OpCancel, req)
}

// Credit is an unlinked refund: any prior transaction id on the request is ignored.
func (a *Adapter) Credit(ctx context.Context, req payment.Request) payment.Result {
	req.TransactionID = ""
	return a.run(ctx, payment.OpCredit, req)
}

func (a *Adapter) run(ctx context.Context, op payment.Operation, req payment.Request) payment.Result {
	if err := a.check(op, req); err != nil {
		return a.fail(op, err)
	}

	amount, err := a.usdAmount(ctx, req)
	if err != nil {
		return a.fail(op, err)
	}

	switch {
	case hasProfile(req):
		return a.sendCIM(ctx, op, req, amount)
	case !req.Card.IsZero(), settlesPrior(op, req):
		return a.sendAIM(ctx, op, req, amount)
	}
	return a.fail(op, payment.Invalid("No credit card was passed for us to "+string(op)+"."))
}

// settlesPrior reports whether op acts on an earlier AIM transaction by id alone; the gateway
// needs no card to capture or void it.
func settlesPrior(op payment.Operation, req payment.Request) bool {
	return (op == payment.OpCapture || op == payment.OpCancel) && req.TransactionID != ""
}

func (a *Adapter) check(op payment.Operation, req payment.Request) error {
	if a.cfg.Missing() {
		return payment.Misconfigured("The login credentials for Authorize.net are missing.")
	}
	noAmount := !req.Amount.IsPositive()
	noPayment := req.Card.IsZero() && !hasProfile(req)

	switch op {
	case payment.OpAuthorize:
		if noAmount {
			return payment.Invalid("No authorization amount was passed.")
		}
		if noPayment {
			return payment.Invalid("No credit card was passed for us to authorize.")
		}
	case payment.OpCapture:
		if req.TransactionID == "" {
			return payment.Invalid("No transaction ID was passed that we could capture.")
		}
	case payment.OpCharge:
		if noAmount {
			return payment.Invalid("No charge amount was passed.")
		}
		if noPayment {
			return payment.Invalid("No credit card was passed for us to charge.")
		}
	case payment.OpRefund:
		if req.TransactionID == "" {
			return payment.Invalid("No transaction ID was passed for the transaction we want to refund.")
		}
		if noAmount {
			return payment.Invalid("No refund amount was passed.")
		}
		if noPayment {
			return payment.Invalid("No credit card was passed for us to refund this amount to.")
		}
	case payment.OpCancel:
		if req.TransactionID == "" {
			return payment.Invalid("No transaction ID was passed that we could cancel.")
		}
	case payment.OpCredit:
		if noAmount {
			return payment.Invalid("No credit amount was passed.")
		}
		if noPayment {
			return payment.Invalid("No credit card was passed for us to credit.")
		}
	default:
		return payment.Misconfigured("This payment gateway doesn't include a " + string(op) + " method.")
	}
	return nil
}

func (a *Adapter) usdAmount(ctx context.Context, req payment.Request) (decimal.Decimal, error) {
	currency := req.CurrencyOrDefault()
	if currency == payment.DefaultCurrency {
		return req.Amount, nil
	}
	if a.converter == nil {
		return decimal.Zero, payment.Invalid("This gateway only accepts USD.")
	}
	converted, err := a.converter.Convert(ctx, req.Amount, currency, payment.DefaultCurrency)
	if err != nil {
		return decimal.Zero, payment.TransportFailure(err, "currency conversion failed")
	}
	return money.Round2(converted), nil
}

func (a *Adapter) sendAIM(ctx context.Context, op payment.Operation, req payment.Request, amount decimal.Decimal) payment.Result {
	action := actionCode(op)
	form := encodeAIM(a.cfg.Credentials, action, req, money.Format(amount))

	a.logger.DebugContext(ctx, "sending AIM transaction",
		slog.String("action", action),
		slog.String("card", req.Card.Masked()),
		slog.String("amount", money.Format(amount)))

	body, err := a.transport.Post(ctx, a.cfg.AIMURL, formContentType, []byte(form.Encode()))
	if err != nil {
		return a.fail(op, err)
	}
	parsed, err := ParseAIMResponse(string(body), aimDelimiter)
	if err != nil {
		return a.fail(op, payment.TransportFailure(err, "unreadable gateway response"))
	}

	res := a.fromDirect(op, parsed)
	res.Raw = string(body)

	if res.Success && (op == payment.OpAuthorize || op == payment.OpCharge) && (req.SaveProfile || a.cfg.SaveProfiles) {
		res.Profile = a.saveProfile(ctx, req)
	}
	return res
}

func (a *Adapter) sendCIM(ctx context.Context, op payment.Operation, req payment.Request, amount decimal.Decimal) payment.Result {
	r := NewCIMRequest(CreateCustomerProfileTransaction).
		Set("transactionType", transactionType(op)).
		Set("customerProfileId", req.Profile.ProfileID).
		Set("customerPaymentProfileId", req.Profile.PaymentProfileID).
		SetIf("customerShippingAddressId", req.Profile.ShippingAddressID).
		SetIf("transId", req.TransactionID)
	if amount.IsPositive() {
		r.Set("transaction_amount", money.Format(amount))
	}
	if op != payment.OpCapture && op != payment.OpCancel {
		r.SetIf("order_invoiceNumber", req.Invoice).
			SetIf("order_description", req.Description)
		if req.Totals.Tax.IsPositive() {
			r.Set("tax_amount", money.Format(req.Totals.Tax))
		}
		if req.Totals.Shipping.IsPositive() {
			r.Set("shipping_amount", money.Format(req.Totals.Shipping))
		}
		// the profile API caps line items; larger orders go without them
		if len(req.Items) <= maxLineItems {
			for _, it := range req.Items {
				r.AddLineItem(it)
			}
		}
	}
	if req.Card.Code != "" {
		r.Set("transactionCardCode", req.Card.Code)
	}

	resp, err := a.SendCIM(ctx, r)
	if err != nil {
		return a.fail(op, err)
	}

	ref := &payment.ProfileResult{
		ProfileID:        req.Profile.ProfileID,
		PaymentProfileID: req.Profile.PaymentProfileID,
		Success:          resp.OK(),
		Message:          resp.Text,
	}
	if !resp.OK() {
		res := a.fail(op, payment.Declined(nonEmpty(declineMessage(resp), "The transaction was declined.")))
		res.Profile = ref
		return res
	}

	res := payment.Result{
		Success: true,
		Message: resp.Text,
		Action:  actionCode(op),
		Test:    a.cfg.Test,
		Source:  Name,
	}
	if resp.DirectResponse != "" {
		parsed, err := resp.Direct()
		if err != nil {
			return a.fail(op, payment.TransportFailure(err, "unreadable direct response"))
		}
		res = a.fromDirect(op, parsed)
	}
	res.Raw = resp.DirectResponse
	res.Profile = ref
	return res
}

// declineMessage prefers the human message carried in the direct response over the API text.
func declineMessage(resp CIMResponse) string {
	if resp.DirectResponse != "" {
		if parsed, err := resp.Direct(); err == nil && parsed.Message != "" {
			return parsed.Message
		}
	}
	return resp.Text
}

// SendCIM validates and sends one profile API request. Validation failures never reach the network.
func (a *Adapter) SendCIM(ctx context.Context, r *CIMRequest) (CIMResponse, error) {
	doc, err := r.Build(a.cfg.Credentials)
	if err != nil {
		return CIMResponse{}, err
	}

	a.logger.DebugContext(ctx, "sending CIM request", slog.String("request", string(r.Kind())))

	body, err := a.transport.PostWithRetry(ctx, a.cfg.CIMURL, xmlContentType, doc, a.cfg.CIMRetries)
	if err != nil {
		return CIMResponse{}, err
	}
	resp, err := ParseCIMResponse(string(body))
	if err != nil {
		return CIMResponse{}, payment.TransportFailure(err, "unreadable profile response")
	}
	return resp, nil
}

func (a *Adapter) fromDirect(op payment.Operation, parsed AIMResponse) payment.Result {
	res := payment.Result{
		Success: parsed.Approved,
		Message: parsed.Message,
		Action:  actionCode(op),
		Test:    a.cfg.Test,
		Source:  Name,
	}
	if parsed.Approved {
		res.TransactionID = parsed.TransactionID
		return res
	}
	res.Err = payment.Declined(nonEmpty(parsed.Message, "The transaction was declined."))
	return res
}

func (a *Adapter) fail(op payment.Operation, err error) payment.Result {
	res := payment.Failed(Name, err)
	res.Action = actionCode(op)
	res.Test = a.cfg.Test
	if !errs.Is(err, payment.ErrDecline) {
		a.logger.Warn("gateway operation failed",
			slog.String("operation", string(op)),
			slog.String("error", err.Error()))
	}
	return res
}

func hasProfile(req payment.Request) bool {
	return req.Profile != nil && req.Profile.ProfileID != "" && req.Profile.PaymentProfileID != ""
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
