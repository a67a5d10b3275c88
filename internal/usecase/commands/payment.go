package commands

import (
	"context"
	"log/slog"

	"storefront-checkout/internal/domain/payment"
)

type PaymentCommands interface {
	Authorize(ctx context.Context, req payment.Request) payment.Result
	Capture(ctx context.Context, req payment.Request) payment.Result
	Charge(ctx context.Context, req payment.Request) payment.Result
	Refund(ctx context.Context, req payment.Request) payment.Result
	Cancel(ctx context.Context, req payment.Request) payment.Result
	Credit(ctx context.Context, req payment.Request) payment.Result
	Execute(ctx context.Context, op payment.Operation, req payment.Request) payment.Result
}

type paymentUseCaseImpl struct {
	gateway payment.Gateway
	logger  *slog.Logger
}

// NewPaymentUseCase wraps a gateway. The gateway may implement any subset of the operation
// interfaces; a nil gateway is accepted and every call then fails with a configuration error.
func NewPaymentUseCase(gateway payment.Gateway, logger *slog.Logger) PaymentCommands {
	return &paymentUseCaseImpl{
		gateway: gateway,
		logger:  logger,
	}
}

func (p *paymentUseCaseImpl) Authorize(ctx context.Context, req payment.Request) payment.Result {
	return p.Execute(ctx, payment.OpAuthorize, req)
}

func (p *paymentUseCaseImpl) Capture(ctx context.Context, req payment.Request) payment.Result {
	return p.Execute(ctx, payment.OpCapture, req)
}

func (p *paymentUseCaseImpl) Charge(ctx context.Context, req payment.Request) payment.Result {
	return p.Execute(ctx, payment.OpCharge, req)
}

func (p *paymentUseCaseImpl) Refund(ctx context.Context, req payment.Request) payment.Result {
	return p.Execute(ctx, payment.OpRefund, req)
}

func (p *paymentUseCaseImpl) Cancel(ctx context.Context, req payment.Request) payment.Result {
	return p.Execute(ctx, payment.OpCancel, req)
}

func (p *paymentUseCaseImpl) Credit(ctx context.Context, req payment.Request) payment.Result {
	return p.Execute(ctx, payment.OpCredit, req)
}

func (p *paymentUseCaseImpl) Execute(ctx context.Context, op payment.Operation, req payment.Request) payment.Result {
	source := ""
	if p.gateway != nil {
		source = p.gateway.Name()
	}

	call, err := p.resolve(op)
	if err == nil {
		err = checkFields(op, req)
	}
	if err != nil {
		p.logger.WarnContext(ctx, "payment rejected before reaching gateway",
			slog.String("operation", string(op)),
			slog.String("gateway", source),
			slog.String("reason", err.Error()),
		)
		return payment.Failed(source, err)
	}

	res := call(ctx, req)
	if res.Source == "" {
		res.Source = source
	}

	attrs := []any{
		slog.String("operation", string(op)),
		slog.String("gateway", source),
		slog.Bool("success", res.Success),
		slog.String("transaction_id", res.TransactionID),
		slog.String("amount", req.Amount.StringFixed(2)),
		slog.String("card", req.Card.Masked()),
	}
	if res.Success {
		p.logger.InfoContext(ctx, "payment completed", attrs...)
	} else {
		p.logger.WarnContext(ctx, "payment failed", append(attrs, slog.String("message", res.Message))...)
	}
	return res
}

type operationFunc func(context.Context, payment.Request) payment.Result

func (p *paymentUseCaseImpl) resolve(op payment.Operation) (operationFunc, error) {
	if p.gateway == nil {
		return nil, payment.Misconfigured("No payment gateway was passed.")
	}

	var call operationFunc
	switch op {
	case payment.OpAuthorize:
		if g, ok := p.gateway.(payment.Authorizer); ok {
			call = g.Authorize
		}
	case payment.OpCapture:
		if g, ok := p.gateway.(payment.Capturer); ok {
			call = g.Capture
		}
	case payment.OpCharge:
		if g, ok := p.gateway.(payment.Charger); ok {
			call = g.Charge
		}
	case payment.OpRefund:
		if g, ok := p.gateway.(payment.Refunder); ok {
			call = g.Refund
		}
	case payment.OpCancel:
		if g, ok := p.gateway.(payment.Canceler); ok {
			call = g.Cancel
		}
	case payment.OpCredit:
		if g, ok := p.gateway.(payment.Creditor); ok {
			call = g.Credit
		}
	}
	if call == nil {
		return nil, payment.Misconfigured("This payment gateway doesn't include a " + string(op) + " method.")
	}
	return call, nil
}

func checkFields(op payment.Operation, req payment.Request) error {
	noAmount := req.Amount.IsZero()

	switch op {
	case payment.OpAuthorize:
		if noAmount {
			return payment.Invalid("No authorization amount was passed.")
		}
	case payment.OpCapture:
		if req.TransactionID == "" {
			return payment.Invalid("No transaction ID was passed that we could capture.")
		}
	case payment.OpCharge:
		if noAmount {
			return payment.Invalid("No charge amount was passed.")
		}
	case payment.OpRefund:
		if req.TransactionID == "" {
			return payment.Invalid("No transaction ID was passed for the transaction we want to refund.")
		}
		if noAmount {
			return payment.Invalid("No refund amount was passed.")
		}
	case payment.OpCancel:
		if req.TransactionID == "" {
			return payment.Invalid("No transaction ID was passed that we could cancel.")
		}
	case payment.OpCredit:
		if noAmount {
			return payment.Invalid("No credit amount was passed.")
		}
	}
	return nil
}
