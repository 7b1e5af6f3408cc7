package bolt12

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/tlv"
)

// Invoice TLV record types. The low range is echoed from the invoice
// request the invoice answers, the 160+ range is invoice-specific.
const (
	invoiceMetadataType       tlv.Type = 0
	invoiceDescriptionType    tlv.Type = 10
	invoiceChainType          tlv.Type = 80
	invoiceInvReqAmountType   tlv.Type = 82
	invoiceQuantityType       tlv.Type = 86
	invoicePayerIDType        tlv.Type = 88
	invoicePayerNoteType      tlv.Type = 89
	invoicePathsType          tlv.Type = 160
	invoiceBlindedPayType     tlv.Type = 162
	invoiceCreatedAtType      tlv.Type = 164
	invoiceRelativeExpiryType tlv.Type = 166
	invoicePaymentHashType    tlv.Type = 168
	invoiceAmountType         tlv.Type = 170
	invoiceFeaturesType       tlv.Type = 174
	invoiceNodeIDType         tlv.Type = 176
	invoiceSignatureType      tlv.Type = 240
)

var (
	// ErrNoPaymentHash is returned when an invoice is missing its
	// payment hash.
	ErrNoPaymentHash = errors.New("invoice missing payment hash")

	// ErrNoCreatedAt is returned when an invoice is missing its
	// creation timestamp.
	ErrNoCreatedAt = errors.New("invoice missing created_at")

	// ErrNoNodeID is returned when an invoice is missing its signing
	// node id.
	ErrNoNodeID = errors.New("invoice missing node id")

	// ErrNoSignature is returned when an invoice carries no signature.
	ErrNoSignature = errors.New("invoice missing signature")

	// ErrMismatchedPaths is returned when an invoice's blinded paths
	// and payment constraints have different counts, leaving hops we
	// cannot pay over.
	ErrMismatchedPaths = errors.New("invoice path and payinfo counts " +
		"differ")
)

// Invoice is a decoded BOLT12 invoice. Unlike BOLT11 invoices these are
// fetched over onion messages in response to an invoice request, so most
// fields echo what the payer asked for.
type Invoice struct {
	// Metadata echoes the invreq_metadata from the invoice request.
	Metadata []byte

	// Chain is the genesis hash of the chain the invoice must be paid
	// on.
	Chain chainhash.Hash

	// InvReqAmount echoes the amount the payer requested, in
	// millisatoshis, zero if the request named no amount.
	InvReqAmount lnwire.MilliSatoshi

	// Quantity echoes the quantity requested, zero when absent.
	Quantity uint64

	// PayerID is the transient key the payer signed the request with.
	PayerID *btcec.PublicKey

	// PayerNote is an optional free-form note from the payer.
	PayerNote string

	// Description is the offer description carried into the invoice.
	Description string

	// PaymentPaths pairs each blinded path with the constraints for
	// paying over it. Every invoice has at least one.
	PaymentPaths []*PaymentPath

	// CreatedAt is the unix timestamp in seconds the invoice was
	// created at.
	CreatedAt uint64

	// RelativeExpiry is the number of seconds after CreatedAt that the
	// invoice stops being payable. Zero means the default of 7200.
	RelativeExpiry uint32

	// PaymentHash is the hash the payment preimage must resolve.
	PaymentHash [32]byte

	// AmountMsats is the amount the invoice asks for.
	AmountMsats lnwire.MilliSatoshi

	// Features is the invoice's raw feature bit vector.
	Features []byte

	// NodeID is the key the invoice is signed with.
	NodeID *btcec.PublicKey

	// Signature is the BIP340 signature over the invoice's TLV merkle
	// root.
	Signature [64]byte
}

// DecodeInvoiceHex decodes an invoice from its hex string form, the
// encoding the RPC surface uses.
func DecodeInvoiceHex(invoiceHex string) (*Invoice, error) {
	data, err := hex.DecodeString(invoiceHex)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice hex: %w", err)
	}

	return DecodeInvoice(data)
}

// DecodeInvoice parses a raw BOLT12 invoice TLV stream and validates that
// the fields every invoice must carry are present.
func DecodeInvoice(data []byte) (*Invoice, error) {
	var (
		invoice     Invoice
		desc        []byte
		payerNote   []byte
		chain       [32]byte
		invReqAmt   uint64
		amount      uint64
		paths       []*BlindedPath
		payInfos    []*BlindedPayInfo
		paymentHash [32]byte
		signature   [64]byte
	)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(
			invoiceMetadataType, &invoice.Metadata,
		),
		tlv.MakePrimitiveRecord(invoiceDescriptionType, &desc),
		tlv.MakePrimitiveRecord(invoiceChainType, &chain),
		tu64Record(invoiceInvReqAmountType, &invReqAmt),
		tu64Record(invoiceQuantityType, &invoice.Quantity),
		tlv.MakePrimitiveRecord(invoicePayerIDType, &invoice.PayerID),
		tlv.MakePrimitiveRecord(invoicePayerNoteType, &payerNote),
		blindedPathsRecord(invoicePathsType, &paths),
		blindedPayInfosRecord(invoiceBlindedPayType, &payInfos),
		tu64Record(invoiceCreatedAtType, &invoice.CreatedAt),
		tu32Record(
			invoiceRelativeExpiryType, &invoice.RelativeExpiry,
		),
		tlv.MakePrimitiveRecord(invoicePaymentHashType, &paymentHash),
		tu64Record(invoiceAmountType, &amount),
		tlv.MakePrimitiveRecord(
			invoiceFeaturesType, &invoice.Features,
		),
		tlv.MakePrimitiveRecord(invoiceNodeIDType, &invoice.NodeID),
		tlv.MakePrimitiveRecord(invoiceSignatureType, &signature),
	)
	if err != nil {
		return nil, err
	}

	parsed, err := stream.DecodeWithParsedTypes(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid invoice tlv stream: %w", err)
	}

	if _, ok := parsed[invoicePaymentHashType]; !ok {
		return nil, ErrNoPaymentHash
	}
	if _, ok := parsed[invoiceCreatedAtType]; !ok {
		return nil, ErrNoCreatedAt
	}
	if invoice.NodeID == nil {
		return nil, ErrNoNodeID
	}
	if _, ok := parsed[invoiceSignatureType]; !ok {
		return nil, ErrNoSignature
	}

	// An invoice that names no chain is a mainnet invoice.
	if _, ok := parsed[invoiceChainType]; ok {
		copy(invoice.Chain[:], chain[:])
	} else {
		invoice.Chain = *chaincfg.MainNetParams.GenesisHash
	}

	if len(paths) != len(payInfos) {
		return nil, fmt.Errorf("%w: %d paths, %d payinfos",
			ErrMismatchedPaths, len(paths), len(payInfos))
	}

	invoice.PaymentPaths = make([]*PaymentPath, len(paths))
	for i := range paths {
		invoice.PaymentPaths[i] = &PaymentPath{
			PayInfo: payInfos[i],
			Path:    paths[i],
		}
	}

	invoice.Description = string(desc)
	invoice.PayerNote = string(payerNote)
	invoice.InvReqAmount = lnwire.MilliSatoshi(invReqAmt)
	invoice.AmountMsats = lnwire.MilliSatoshi(amount)
	invoice.PaymentHash = paymentHash
	invoice.Signature = signature

	return &invoice, nil
}

// Encode serializes the invoice back to its raw TLV stream.
func (i *Invoice) Encode() ([]byte, error) {
	var records []tlv.Record

	if len(i.Metadata) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			invoiceMetadataType, &i.Metadata,
		))
	}

	if i.Description != "" {
		desc := []byte(i.Description)
		records = append(records, tlv.MakePrimitiveRecord(
			invoiceDescriptionType, &desc,
		))
	}

	var chain [32]byte
	copy(chain[:], i.Chain[:])
	records = append(records, tlv.MakePrimitiveRecord(
		invoiceChainType, &chain,
	))

	if i.InvReqAmount != 0 {
		invReqAmt := uint64(i.InvReqAmount)
		records = append(records, tu64Record(
			invoiceInvReqAmountType, &invReqAmt,
		))
	}

	if i.Quantity != 0 {
		records = append(records, tu64Record(
			invoiceQuantityType, &i.Quantity,
		))
	}

	if i.PayerID != nil {
		records = append(records, tlv.MakePrimitiveRecord(
			invoicePayerIDType, &i.PayerID,
		))
	}

	if i.PayerNote != "" {
		note := []byte(i.PayerNote)
		records = append(records, tlv.MakePrimitiveRecord(
			invoicePayerNoteType, &note,
		))
	}

	if len(i.PaymentPaths) > 0 {
		paths := make([]*BlindedPath, len(i.PaymentPaths))
		payInfos := make([]*BlindedPayInfo, len(i.PaymentPaths))
		for n, pp := range i.PaymentPaths {
			paths[n] = pp.Path
			payInfos[n] = pp.PayInfo
		}

		records = append(records,
			blindedPathsRecord(invoicePathsType, &paths),
			blindedPayInfosRecord(
				invoiceBlindedPayType, &payInfos,
			),
		)
	}

	records = append(records, tu64Record(
		invoiceCreatedAtType, &i.CreatedAt,
	))

	if i.RelativeExpiry != 0 {
		records = append(records, tu32Record(
			invoiceRelativeExpiryType, &i.RelativeExpiry,
		))
	}

	paymentHash := i.PaymentHash
	records = append(records, tlv.MakePrimitiveRecord(
		invoicePaymentHashType, &paymentHash,
	))

	amount := uint64(i.AmountMsats)
	records = append(records, tu64Record(invoiceAmountType, &amount))

	if len(i.Features) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			invoiceFeaturesType, &i.Features,
		))
	}

	if i.NodeID != nil {
		records = append(records, tlv.MakePrimitiveRecord(
			invoiceNodeIDType, &i.NodeID,
		))
	}

	signature := i.Signature
	records = append(records, tlv.MakePrimitiveRecord(
		invoiceSignatureType, &signature,
	))

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
