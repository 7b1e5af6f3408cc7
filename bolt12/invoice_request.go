package bolt12

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/tlv"
)

// Invoice request TLV record types. Everything the offer carries is echoed
// verbatim, these are the request-only additions.
const (
	invReqMetadataType  tlv.Type = 0
	invReqChainType     tlv.Type = 80
	invReqAmountType    tlv.Type = 82
	invReqQuantityType  tlv.Type = 86
	invReqPayerIDType   tlv.Type = 88
	invReqPayerNoteType tlv.Type = 89
)

// InvoiceRequest is an outgoing request for a BOLT12 invoice against an
// offer. It is sent to the offer's issuer over onion messages.
type InvoiceRequest struct {
	// Offer is the offer being requested against. Its TLV records are
	// replayed into the request unchanged.
	Offer *Offer

	// Metadata is payer-chosen entropy the invoice must echo back,
	// tying the invoice to this request.
	Metadata []byte

	// Chain is the genesis hash of the chain to be paid on. Unset for
	// mainnet.
	Chain *chainhash.Hash

	// AmountMsats is the amount being offered to pay. Required when the
	// offer itself names no amount.
	AmountMsats lnwire.MilliSatoshi

	// Quantity is the quantity requested, zero when the offer does not
	// deal in quantities.
	Quantity uint64

	// PayerID is the transient public key the request is signed with.
	PayerID *btcec.PublicKey

	// PayerNote is an optional free-form note to the issuer.
	PayerNote string
}

// Encode serializes the invoice request as a TLV stream: the offer's own
// records plus the invreq additions, in ascending type order.
func (r *InvoiceRequest) Encode() ([]byte, error) {
	var records []tlv.Record

	if len(r.Metadata) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			invReqMetadataType, &r.Metadata,
		))
	}

	records = append(records, r.Offer.records()...)

	if r.Chain != nil {
		var chain [32]byte
		copy(chain[:], r.Chain[:])
		records = append(records, tlv.MakePrimitiveRecord(
			invReqChainType, &chain,
		))
	}

	if r.AmountMsats != 0 {
		amount := uint64(r.AmountMsats)
		records = append(records, tu64Record(
			invReqAmountType, &amount,
		))
	}

	if r.Quantity != 0 {
		records = append(records, tu64Record(
			invReqQuantityType, &r.Quantity,
		))
	}

	if r.PayerID != nil {
		records = append(records, tlv.MakePrimitiveRecord(
			invReqPayerIDType, &r.PayerID,
		))
	}

	if r.PayerNote != "" {
		note := []byte(r.PayerNote)
		records = append(records, tlv.MakePrimitiveRecord(
			invReqPayerNoteType, &note,
		))
	}

	stream, err := tlv.NewStream(records...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
