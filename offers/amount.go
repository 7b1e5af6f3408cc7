package offers

import (
	"fmt"

	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/niteshbalusu11/lndk/bolt12"
)

// ValidateOfferAmount reconciles the amount a caller asked to pay with the
// amount the offer itself names, returning the amount in millisatoshis the
// payment should be made for. A requested amount of zero means the caller
// did not specify one.
func ValidateOfferAmount(offer *bolt12.Offer,
	requestedMsat uint64) (lnwire.MilliSatoshi, error) {

	if offer.Currency != "" {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCurrency,
			offer.Currency)
	}

	return reconcileAmount(lnwire.MilliSatoshi(offer.Amount),
		requestedMsat)
}

// ValidateInvoiceAmount reconciles a caller-provided amount with the amount
// an already-fetched invoice asks for.
func ValidateInvoiceAmount(invoice *bolt12.Invoice,
	requestedMsat uint64) (lnwire.MilliSatoshi, error) {

	return reconcileAmount(invoice.AmountMsats, requestedMsat)
}

// reconcileAmount applies the shared rule: an unset requested amount falls
// back to the stated amount, a set one must at least meet it.
func reconcileAmount(statedMsat lnwire.MilliSatoshi,
	requestedMsat uint64) (lnwire.MilliSatoshi, error) {

	requested := lnwire.MilliSatoshi(requestedMsat)

	if statedMsat == 0 {
		if requested == 0 {
			return 0, fmt.Errorf("%w: amount must be specified "+
				"when one is not set", ErrInvalidAmount)
		}

		return requested, nil
	}

	if requested == 0 {
		return statedMsat, nil
	}

	if requested < statedMsat {
		return 0, fmt.Errorf("%w: %v is less than the %v asked for",
			ErrInvalidAmount, requested, statedMsat)
	}

	return requested, nil
}
