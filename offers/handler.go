package offers

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/niteshbalusu11/lndk/bolt12"
)

// defaultResponseTimeout bounds how long we wait for an issuer to answer an
// invoice request when the caller does not set a timeout.
const defaultResponseTimeout = 15 * time.Second

// PaymentID identifies a payment attempt for the lifetime of the process.
// It is minted from the entropy source, never derived from payment data.
type PaymentID [32]byte

// String returns the payment id as hex.
func (p PaymentID) String() string {
	return fmt.Sprintf("%x", p[:])
}

// PaymentState tracks how far along an active payment attempt is.
type PaymentState uint8

const (
	// StateInvoiceRequested means the invoice request has been sent and
	// we are waiting for the invoice.
	StateInvoiceRequested PaymentState = iota

	// StateInvoiceReceived means the invoice arrived and is ready to be
	// paid.
	StateInvoiceReceived

	// StatePaymentDispatched means the payment has been handed to the
	// node for settlement.
	StatePaymentDispatched
)

// EntropySource provides the random bytes payment ids and invoice request
// metadata are minted from.
type EntropySource interface {
	// GetRandomBytes returns 32 bytes of cryptographically secure
	// randomness.
	GetRandomBytes() ([32]byte, error)
}

// CryptoRandSource is an EntropySource backed by crypto/rand.
type CryptoRandSource struct{}

// GetRandomBytes reads 32 bytes from the system's CSPRNG.
func (CryptoRandSource) GetRandomBytes() ([32]byte, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return b, err
	}

	return b, nil
}

// Destination is where an invoice request should be delivered: either
// directly to the issuer's node or into one of the offer's blinded paths.
// Exactly one field is set.
type Destination struct {
	NodeID      *btcec.PublicKey
	BlindedPath *bolt12.BlindedPath
}

// FetchInvoiceRequest describes an invoice request to be delivered over
// onion messages.
type FetchInvoiceRequest struct {
	// Offer is the offer the request is made against.
	Offer *bolt12.Offer

	// Destination is where to deliver the request.
	Destination *Destination

	// Metadata is the payer-chosen entropy the invoice must echo.
	Metadata []byte

	// AmountMsats is the amount being offered to pay.
	AmountMsats lnwire.MilliSatoshi

	// PayerNote is an optional note to the issuer.
	PayerNote string

	// Timeout bounds how long to wait for the invoice to come back.
	Timeout time.Duration
}

// Messenger delivers invoice requests to offer issuers and collects their
// replies. Implementations speak the onion message protocol through an
// attached node.
type Messenger interface {
	// ResolveDestination determines where the offer's issuer can be
	// reached.
	ResolveDestination(ctx context.Context,
		offer *bolt12.Offer) (*Destination, error)

	// FetchInvoice sends an invoice request to the destination and
	// waits for the invoice reply.
	FetchInvoice(ctx context.Context,
		req *FetchInvoiceRequest) (*bolt12.Invoice, error)
}

// NodeClient is the slice of a lightning node the handler needs to settle
// invoices.
type NodeClient interface {
	// SendPayment pays the invoice for the given amount and blocks
	// until the payment resolves, returning the settlement preimage.
	SendPayment(ctx context.Context, invoice *bolt12.Invoice,
		amount lnwire.MilliSatoshi) (lntypes.Preimage, error)
}

// GetInvoiceParams carries everything needed to fetch an invoice for an
// offer.
type GetInvoiceParams struct {
	// Offer is the decoded offer to request an invoice for.
	Offer *bolt12.Offer

	// AmountMsats is the caller's amount in millisatoshis, zero when
	// the offer's own amount should be used.
	AmountMsats uint64

	// PayerNote is an optional note to send along with the request.
	PayerNote string

	// ResponseTimeout bounds the wait for the issuer's reply, zero for
	// the default.
	ResponseTimeout time.Duration

	// Messenger delivers the request.
	Messenger Messenger
}

// PayOfferParams carries everything needed to pay an offer end to end.
type PayOfferParams struct {
	GetInvoiceParams

	// Node settles the fetched invoice.
	Node NodeClient
}

// activePayment is the tracked state of one in-flight payment attempt.
type activePayment struct {
	state PaymentState
}

// Handler drives the offer payment flows. It owns the set of in-flight
// payment attempts; callers only ever see payment ids.
type Handler struct {
	entropy EntropySource

	mtx            sync.Mutex
	activePayments map[PaymentID]*activePayment
}

// NewHandler creates a Handler minting payment ids from the given entropy
// source.
func NewHandler(entropy EntropySource) *Handler {
	return &Handler{
		entropy:        entropy,
		activePayments: make(map[PaymentID]*activePayment),
	}
}

// newPaymentID mints a fresh payment id and registers it. An entropy
// collision with a live payment is rejected rather than silently reusing
// the id.
func (h *Handler) newPaymentID() (PaymentID, error) {
	idBytes, err := h.entropy.GetRandomBytes()
	if err != nil {
		return PaymentID{}, fmt.Errorf("payment id: %w", err)
	}

	id := PaymentID(idBytes)

	h.mtx.Lock()
	defer h.mtx.Unlock()

	if _, ok := h.activePayments[id]; ok {
		return PaymentID{}, ErrPaymentActive
	}

	h.activePayments[id] = &activePayment{
		state: StateInvoiceRequested,
	}

	return id, nil
}

// setPaymentState transitions a tracked payment to the given state.
func (h *Handler) setPaymentState(id PaymentID, state PaymentState) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if payment, ok := h.activePayments[id]; ok {
		payment.state = state
	}
}

// RemoveActivePayment drops a payment from the tracking map. Callers that
// fetch an invoice without paying it must call this once they are done
// with the payment id.
func (h *Handler) RemoveActivePayment(id PaymentID) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	delete(h.activePayments, id)
}

// NumActivePayments returns the number of payments currently in flight.
func (h *Handler) NumActivePayments() int {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	return len(h.activePayments)
}

// GetInvoice requests an invoice for an offer and returns it along with
// the payment id tracking the attempt. The payment stays in the active set
// so that it can be paid next; callers that will not pay it must remove it
// with RemoveActivePayment.
func (h *Handler) GetInvoice(ctx context.Context,
	params GetInvoiceParams) (*bolt12.Invoice, PaymentID, error) {

	amount, err := ValidateOfferAmount(params.Offer, params.AmountMsats)
	if err != nil {
		return nil, PaymentID{}, err
	}

	id, err := h.newPaymentID()
	if err != nil {
		return nil, PaymentID{}, err
	}

	invoice, err := h.fetchInvoice(ctx, id, amount, params)
	if err != nil {
		h.RemoveActivePayment(id)
		return nil, PaymentID{}, err
	}

	return invoice, id, nil
}

// fetchInvoice resolves the offer's destination, sends the invoice request
// and validates the invoice that comes back. The payment must already be
// registered under id.
func (h *Handler) fetchInvoice(ctx context.Context, id PaymentID,
	amount lnwire.MilliSatoshi,
	params GetInvoiceParams) (*bolt12.Invoice, error) {

	destination, err := params.Messenger.ResolveDestination(
		ctx, params.Offer,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve offer "+
			"destination: %w", err)
	}

	metadata, err := h.entropy.GetRandomBytes()
	if err != nil {
		return nil, fmt.Errorf("request metadata: %w", err)
	}

	timeout := params.ResponseTimeout
	if timeout == 0 {
		timeout = defaultResponseTimeout
	}

	log.Debugf("Requesting invoice for payment %v, amount %v", id,
		amount)

	invoice, err := params.Messenger.FetchInvoice(
		ctx, &FetchInvoiceRequest{
			Offer:       params.Offer,
			Destination: destination,
			Metadata:    metadata[:],
			AmountMsats: amount,
			PayerNote:   params.PayerNote,
			Timeout:     timeout,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch invoice: %w", err)
	}

	if err := validateFetchedInvoice(invoice, amount); err != nil {
		return nil, err
	}

	h.setPaymentState(id, StateInvoiceReceived)

	log.Infof("Received invoice for payment %v: amount %v, payment "+
		"hash %x", id, invoice.AmountMsats, invoice.PaymentHash)

	return invoice, nil
}

// validateFetchedInvoice checks an invoice received in response to one of
// our own requests before we hand it anywhere.
func validateFetchedInvoice(invoice *bolt12.Invoice,
	requested lnwire.MilliSatoshi) error {

	if len(invoice.PaymentPaths) == 0 {
		return ErrNoPaths
	}

	if invoice.AmountMsats > requested {
		return fmt.Errorf("%w: invoice asks for %v, requested %v",
			ErrInvalidAmount, invoice.AmountMsats, requested)
	}

	return nil
}

// PayOffer runs the full flow for an offer: fetch an invoice and pay it.
// The payment attempt is removed from the active set when the call
// returns, whichever way it resolves.
func (h *Handler) PayOffer(ctx context.Context,
	params PayOfferParams) (lntypes.Preimage, error) {

	amount, err := ValidateOfferAmount(params.Offer, params.AmountMsats)
	if err != nil {
		return lntypes.Preimage{}, err
	}

	id, err := h.newPaymentID()
	if err != nil {
		return lntypes.Preimage{}, err
	}
	defer h.RemoveActivePayment(id)

	invoice, err := h.fetchInvoice(ctx, id, amount, params.GetInvoiceParams)
	if err != nil {
		return lntypes.Preimage{}, err
	}

	return h.dispatchPayment(ctx, params.Node, id, invoice, amount)
}

// PayInvoice pays an already-fetched invoice under the given payment id.
// An id minted by GetInvoice continues that attempt, a zero id starts a
// fresh one. The attempt is removed from the active set when the call
// returns.
func (h *Handler) PayInvoice(ctx context.Context, node NodeClient,
	invoice *bolt12.Invoice, amountMsats uint64,
	id PaymentID) (lntypes.Preimage, error) {

	amount, err := ValidateInvoiceAmount(invoice, amountMsats)
	if err != nil {
		return lntypes.Preimage{}, err
	}

	if id == (PaymentID{}) {
		id, err = h.newPaymentID()
		if err != nil {
			return lntypes.Preimage{}, err
		}
		h.setPaymentState(id, StateInvoiceReceived)
	} else {
		if err := h.claimPayment(id); err != nil {
			return lntypes.Preimage{}, err
		}
	}
	defer h.RemoveActivePayment(id)

	return h.dispatchPayment(ctx, node, id, invoice, amount)
}

// claimPayment takes over an existing payment attempt for dispatch. The
// attempt must be sitting in the invoice-received state; anything else
// means another caller is already paying it.
func (h *Handler) claimPayment(id PaymentID) error {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	payment, ok := h.activePayments[id]
	if !ok {
		// The id was handed out earlier but already cleaned up,
		// treat it as a fresh attempt.
		h.activePayments[id] = &activePayment{
			state: StateInvoiceReceived,
		}
		return nil
	}

	if payment.state != StateInvoiceReceived {
		return ErrPaymentActive
	}

	return nil
}

// dispatchPayment hands the invoice to the node and waits for settlement.
func (h *Handler) dispatchPayment(ctx context.Context, node NodeClient,
	id PaymentID, invoice *bolt12.Invoice,
	amount lnwire.MilliSatoshi) (lntypes.Preimage, error) {

	h.setPaymentState(id, StatePaymentDispatched)

	log.Infof("Dispatching payment %v for %v to payment hash %x", id,
		amount, invoice.PaymentHash)

	preimage, err := node.SendPayment(ctx, invoice, amount)
	if err != nil {
		return lntypes.Preimage{}, fmt.Errorf("payment failed: %w",
			err)
	}

	log.Infof("Payment %v settled, preimage %v", id, preimage)

	return preimage, nil
}
