package offers

import "errors"

var (
	// ErrInvalidAmount is returned when the amount for a payment cannot
	// be settled on: either none was provided where one is required, or
	// the provided amount is below what the offer or invoice asks for.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency is returned for offers denominated in a fiat
	// currency, which we cannot convert to millisatoshis.
	ErrInvalidCurrency = errors.New("offer denominated in currency not " +
		"supported")

	// ErrPaymentActive is returned when a payment with the same id is
	// already being processed.
	ErrPaymentActive = errors.New("payment already active")

	// ErrNoPaths is returned when a fetched invoice carries no payment
	// paths to pay over.
	ErrNoPaths = errors.New("invoice contains no payment paths")
)
