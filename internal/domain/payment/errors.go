package payment

import "storefront-checkout/internal/pkg/errs"

var (
	ErrValidation    = errs.ErrValidation
	ErrConfiguration = errs.ErrConfiguration
	ErrDecline       = errs.ErrDecline
	ErrTransport     = errs.ErrTransport
)

// Invalid builds a validation failure carrying msg verbatim.
func Invalid(msg string) error {
	return errs.Mark(errs.New(msg), ErrValidation)
}

func Misconfigured(msg string) error {
	return errs.Mark(errs.New(msg), ErrConfiguration)
}

func Declined(msg string) error {
	return errs.Mark(errs.New(msg), ErrDecline)
}

func TransportFailure(err error, msg string) error {
	if err == nil {
		return errs.Mark(errs.New(msg), ErrTransport)
	}
	return errs.Mark(errs.Wrap(err, msg), ErrTransport)
}
