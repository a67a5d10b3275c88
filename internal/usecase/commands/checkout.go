package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"
)

var (
	ErrEmptyCart          = errs.Mark(errs.New("Your cart is empty."), errs.ErrValidation)
	ErrCheckoutInProgress = errs.New("checkout already in progress for this cart")
)

// InventoryFailMessage is shown when the cart had to be adjusted before charging.
const InventoryFailMessage = "Apologies! Our inventory is not sufficient to satisfy this order. " +
	"Someone purchased the product(s) just before you did! We have adjusted the product(s) quantities " +
	"and/or removed them from your cart. Please verify these new quantities and proceed with the " +
	"checkout again if you are satisfied. Your card has not been charged."

// CheckoutAddress is an address as the checkout form sends it, with a single full name.
type CheckoutAddress struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Address2 string `json:"address_2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Phone    string `json:"phone,omitempty"`
}

type CheckoutInput struct {
	SessionID   string
	Email       string
	Billing     CheckoutAddress
	Shipping    CheckoutAddress
	SameAddress bool
	Card        payment.Card
	UserID      *uuid.UUID
}

// OrderID is nil when the charge went through but the order could not be recorded.
type CheckoutResult struct {
	OrderID       *uuid.UUID
	TransactionID string
	Total         decimal.Decimal
	Test          bool
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	store      CartStore
	lock       CheckoutLock
	reconciler *InventoryReconciler
	payments   PaymentCommands
	uow        shared.UnitOfWork
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCheckoutUseCase(
	store CartStore,
	lock CheckoutLock,
	reconciler *InventoryReconciler,
	payments PaymentCommands,
	uow shared.UnitOfWork,
	clock clock.Clock,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		store:      store,
		lock:       lock,
		reconciler: reconciler,
		payments:   payments,
		uow:        uow,
		clock:      clock,
		logger:     logger,
	}
}

func (u *checkoutUseCaseImpl) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	release, err := u.lock.Acquire(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			u.logger.WarnContext(ctx, "failed to release checkout lock", slog.String("error", err.Error()))
		}
	}()

	snap, err := u.store.Load(ctx, in.SessionID)
	if err != nil {
		return nil, errs.Wrap(err, "load cart")
	}
	c := cart.New(snap)
	if c.Count() == 0 {
		return nil, ErrEmptyCart
	}

	in = normalizeCheckout(in)
	if err := validateCheckout(in); err != nil {
		return nil, err
	}

	enough, err := u.reconciler.EnoughInventory(ctx, c)
	if err != nil {
		return nil, err
	}
	if !enough {
		c.Error(InventoryFailMessage)
		if err := u.store.Save(ctx, in.SessionID, c.Export()); err != nil {
			return nil, errs.Wrap(err, "save adjusted cart")
		}
		return nil, errs.Mark(errs.Mark(errs.New(InventoryFailMessage), ErrInventoryInsufficient), errs.ErrStock)
	}

	req, err := buildChargeRequest(in, c)
	if err != nil {
		return nil, err
	}
	res := u.payments.Charge(ctx, req)
	if !res.Success {
		if res.Err != nil {
			return nil, res.Err
		}
		return nil, payment.Declined(res.Message)
	}

	if err := u.reconciler.SubtractInventory(ctx, c); err != nil {
		u.voidCharge(ctx, req, res)
		return nil, err
	}

	// Charged and deducted: a failed insert is only logged and the result carries no order id.
	var orderID *uuid.UUID
	if id, err := u.saveOrder(ctx, in, c, res); err != nil {
		u.logger.ErrorContext(ctx, "order not saved after successful charge",
			slog.String("transaction_id", res.TransactionID),
			slog.String("email", in.Email),
			slog.String("error", err.Error()),
		)
	} else {
		orderID = &id
	}

	total := c.Total()
	c.Destroy()
	if err := u.store.Delete(ctx, in.SessionID); err != nil {
		u.logger.WarnContext(ctx, "failed to clear cart after checkout", slog.String("error", err.Error()))
	}

	return &CheckoutResult{
		OrderID:       orderID,
		TransactionID: res.TransactionID,
		Total:         total,
		Test:          res.Test,
	}, nil
}

func (u *checkoutUseCaseImpl) voidCharge(ctx context.Context, charge payment.Request, charged payment.Result) {
	voided := u.payments.Cancel(context.WithoutCancel(ctx), payment.Request{
		TransactionID: charged.TransactionID,
		Card:          charge.Card,
		Profile:       charge.Profile,
	})
	if !voided.Success {
		u.logger.ErrorContext(ctx, "charge could not be voided after stock conflict",
			slog.String("transaction_id", charged.TransactionID),
			slog.String("message", voided.Message),
		)
	}
}

func (u *checkoutUseCaseImpl) saveOrder(ctx context.Context, in CheckoutInput, c *cart.Cart, res payment.Result) (uuid.UUID, error) {
	billing, err := json.Marshal(in.Billing)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "encode billing address")
	}
	shipping, err := json.Marshal(in.Shipping)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "encode shipping address")
	}
	exported, err := json.Marshal(c.Export())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "encode cart")
	}

	record := &shared.OrderRecord{
		Email:         in.Email,
		TransactionID: res.TransactionID,
		Total:         c.Total(),
		Billing:       billing,
		Shipping:      shipping,
		UserID:        in.UserID,
		Cart:          exported,
		Test:          res.Test,
		CreatedAt:     u.clock.Now(),
	}

	var orderID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Orders().Create(ctx, record)
		if err != nil {
			return err
		}
		orderID = id

		for _, d := range c.Discounts() {
			discountID, err := uuid.Parse(d.ID())
			if err != nil {
				continue
			}
			if err := tx.Discounts().MarkUsed(ctx, discountID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return orderID, nil
}

func (a CheckoutAddress) toPayment(email string) (payment.Address, error) {
	var out payment.Address
	if err := copier.Copy(&out, &a); err != nil {
		return payment.Address{}, errs.Wrap(err, "map address")
	}
	out.SplitName(a.Name)
	out.Email = email
	return out, nil
}

func normalizeCheckout(in CheckoutInput) CheckoutInput {
	if in.SameAddress {
		in.Billing = in.Shipping
	}
	in.Email = strings.TrimSpace(in.Email)
	for _, a := range []*CheckoutAddress{&in.Billing, &in.Shipping} {
		if a.Country == "United_States" {
			a.Country = "US"
		}
		a.State = strings.ToUpper(strings.TrimSpace(a.State))
	}
	return in
}

func validateCheckout(in CheckoutInput) error {
	var problems []string
	required := func(value, label string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, "The "+label+" field is required.")
		}
	}

	required(in.Email, "email")
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		problems = append(problems, "The email must be a valid email address.")
	}
	for _, side := range []struct {
		prefix string
		addr   CheckoutAddress
	}{{"billing", in.Billing}, {"shipping", in.Shipping}} {
		required(side.addr.Name, side.prefix+" name")
		required(side.addr.Address, side.prefix+" address")
		required(side.addr.City, side.prefix+" city")
		required(side.addr.Zip, side.prefix+" zip")
		if len(side.addr.State) != 2 {
			problems = append(problems, "The "+side.prefix+" state must be 2 characters.")
		}
	}
	required(in.Card.Number, "card number")
	required(in.Card.ExpirationMonth, "card expiration month")
	required(in.Card.ExpirationYear, "card expiration year")
	required(in.Card.Code, "card code")

	if len(problems) > 0 {
		return payment.Invalid(strings.Join(problems, " "))
	}
	return nil
}

func buildChargeRequest(in CheckoutInput, c *cart.Cart) (payment.Request, error) {
	billing, err := in.Billing.toPayment(in.Email)
	if err != nil {
		return payment.Request{}, err
	}
	shipping, err := in.Shipping.toPayment(in.Email)
	if err != nil {
		return payment.Request{}, err
	}

	items, err := c.Decoded()
	if err != nil {
		return payment.Request{}, err
	}
	lines := make([]payment.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, payment.LineItem{
			ID:        it.Decoded.ID.String(),
			Name:      it.Decoded.Name,
			Quantity:  it.Qty,
			UnitPrice: it.Price,
			Taxable:   c.HasTax(),
		})
	}

	b := c.Breakdown()
	return payment.Request{
		Address:  billing,
		Shipping: shipping,
		Card:     in.Card,
		Amount:   b.Total,
		Currency: payment.DefaultCurrency,
		Totals: payment.Totals{
			Subtotal:  b.Subtotal,
			Discounts: b.Discount,
			Tax:       b.Tax,
			Shipping:  b.Shipping,
		},
		Description: "Order of " + pluralItems(b.Count),
		Items:       lines,
	}, nil
}

func pluralItems(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}

// lockMargin is added to the gateway timeout to size the checkout lock.
const lockMargin = 15 * time.Second

// CheckoutLockTTL is how long a checkout may hold its session lock.
func CheckoutLockTTL(gatewayTimeout time.Duration) time.Duration {
	return gatewayTimeout + lockMargin
}
