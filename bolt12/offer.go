package bolt12

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/tlv"
)

// offerHRP is the human readable prefix every BOLT12 offer starts with.
const offerHRP = "lno"

// bech32Charset is the character set used by bech32 encoding. Offers use the
// bech32 alphabet but, unlike on-chain addresses, carry no checksum, so we
// map the characters ourselves instead of going through the full decoder.
const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Offer TLV record types, from the BOLT12 offer TLV range (1-79).
const (
	offerChainsType         tlv.Type = 2
	offerMetadataType       tlv.Type = 4
	offerCurrencyType       tlv.Type = 6
	offerAmountType         tlv.Type = 8
	offerDescriptionType    tlv.Type = 10
	offerFeaturesType       tlv.Type = 12
	offerAbsoluteExpiryType tlv.Type = 14
	offerPathsType          tlv.Type = 16
	offerIssuerType         tlv.Type = 18
	offerQuantityMaxType    tlv.Type = 20
	offerIssuerIDType       tlv.Type = 22
)

var (
	// ErrBadOfferStr is returned when the offer string itself cannot be
	// interpreted as checksum-less bech32.
	ErrBadOfferStr = errors.New("invalid offer string")

	// ErrNoIssuer is returned when an offer contains neither an issuer
	// node id nor any blinded paths, leaving no way to contact anyone.
	ErrNoIssuer = errors.New("offer has no issuer node id and no paths")
)

// Offer is a decoded BOLT12 offer: an amount-optional, reusable description
// of something payable. Offers are parsed once per request and never
// mutated afterwards.
type Offer struct {
	// Chains lists the genesis hashes of the chains the offer can be
	// paid on. Empty means Bitcoin mainnet.
	Chains []chainhash.Hash

	// Metadata is opaque data the issuer wants echoed back in the
	// invoice request.
	Metadata []byte

	// Currency is an ISO 4217 code when the offer is denominated in a
	// fiat currency rather than millisatoshis.
	Currency string

	// Amount is the offer amount. When Currency is empty it is in
	// millisatoshis, otherwise in the currency's minor unit. Zero means
	// the payer chooses the amount.
	Amount uint64

	// Description is the issuer-supplied description of the purpose of
	// the payment.
	Description string

	// Features is the offer's raw feature bit vector.
	Features []byte

	// AbsoluteExpiry is the unix timestamp in seconds after which the
	// offer is no longer valid, zero for no expiry.
	AbsoluteExpiry uint64

	// Paths are blinded paths over which the issuer can be reached.
	Paths []*BlindedPath

	// Issuer identifies who is offering the payment, for display only.
	Issuer string

	// QuantityMax bounds the quantity a payer may request, zero when the
	// offer does not deal in quantities.
	QuantityMax uint64

	// IssuerID is the public key the invoice will be signed with, if the
	// issuer exposes one directly instead of hiding behind Paths.
	IssuerID *btcec.PublicKey

	// encoded retains the original bech32 text the offer was parsed
	// from.
	encoded string
}

// String returns the offer in its original bech32 form.
func (o *Offer) String() string {
	return o.encoded
}

// SupportsChain reports whether the offer can be paid on the chain with the
// given genesis hash. An offer listing no chains is implicitly a Bitcoin
// mainnet offer.
func (o *Offer) SupportsChain(hash chainhash.Hash) bool {
	if len(o.Chains) == 0 {
		return hash == *chaincfg.MainNetParams.GenesisHash
	}

	for _, chain := range o.Chains {
		if chain == hash {
			return true
		}
	}

	return false
}

// DecodeOffer parses a bech32-encoded offer string, i.e. one starting with
// "lno". Per BOLT12 the string may be split into parts joined by "+" and
// optional whitespace, and carries no bech32 checksum.
func DecodeOffer(text string) (*Offer, error) {
	joined, err := joinOfferParts(text)
	if err != nil {
		return nil, err
	}

	// The string must not mix upper and lower case.
	lower := strings.ToLower(joined)
	if joined != lower && joined != strings.ToUpper(joined) {
		return nil, fmt.Errorf("%w: mixed case", ErrBadOfferStr)
	}

	sep := strings.LastIndex(lower, "1")
	if sep < 1 || sep == len(lower)-1 {
		return nil, fmt.Errorf("%w: missing separator", ErrBadOfferStr)
	}

	if lower[:sep] != offerHRP {
		return nil, fmt.Errorf("%w: unexpected prefix %q, offers "+
			"start with %q", ErrBadOfferStr, lower[:sep], offerHRP)
	}

	data5 := make([]byte, 0, len(lower)-sep-1)
	for _, c := range lower[sep+1:] {
		idx := strings.IndexRune(bech32Charset, c)
		if idx < 0 {
			return nil, fmt.Errorf("%w: invalid character %q",
				ErrBadOfferStr, c)
		}

		data5 = append(data5, byte(idx))
	}

	data, err := bech32.ConvertBits(data5, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadOfferStr, err)
	}

	offer, err := decodeOfferTLV(data)
	if err != nil {
		return nil, err
	}

	offer.encoded = joined

	return offer, nil
}

// joinOfferParts strips the "+" continuations that BOLT12 allows for
// splitting long offer strings across lines or messages.
func joinOfferParts(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty string", ErrBadOfferStr)
	}

	if !strings.Contains(trimmed, "+") {
		return trimmed, nil
	}

	parts := strings.Split(trimmed, "+")
	joined := strings.Builder{}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return "", fmt.Errorf("%w: empty continuation",
				ErrBadOfferStr)
		}

		joined.WriteString(part)
	}

	return joined.String(), nil
}

// decodeOfferTLV parses the offer's TLV stream.
func decodeOfferTLV(data []byte) (*Offer, error) {
	var (
		offer    Offer
		chains   []byte
		currency []byte
		desc     []byte
		issuer   []byte
	)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(offerChainsType, &chains),
		tlv.MakePrimitiveRecord(offerMetadataType, &offer.Metadata),
		tlv.MakePrimitiveRecord(offerCurrencyType, &currency),
		tu64Record(offerAmountType, &offer.Amount),
		tlv.MakePrimitiveRecord(offerDescriptionType, &desc),
		tlv.MakePrimitiveRecord(offerFeaturesType, &offer.Features),
		tu64Record(offerAbsoluteExpiryType, &offer.AbsoluteExpiry),
		blindedPathsRecord(offerPathsType, &offer.Paths),
		tlv.MakePrimitiveRecord(offerIssuerType, &issuer),
		tu64Record(offerQuantityMaxType, &offer.QuantityMax),
		tlv.MakePrimitiveRecord(offerIssuerIDType, &offer.IssuerID),
	)
	if err != nil {
		return nil, err
	}

	if err := stream.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("invalid offer tlv stream: %w", err)
	}

	if len(chains)%chainhash.HashSize != 0 {
		return nil, fmt.Errorf("offer chains record of %d bytes is "+
			"not a multiple of %d", len(chains),
			chainhash.HashSize)
	}
	for i := 0; i < len(chains); i += chainhash.HashSize {
		var hash chainhash.Hash
		copy(hash[:], chains[i:i+chainhash.HashSize])
		offer.Chains = append(offer.Chains, hash)
	}

	offer.Currency = string(currency)
	offer.Description = string(desc)
	offer.Issuer = string(issuer)

	if offer.IssuerID == nil && len(offer.Paths) == 0 {
		return nil, ErrNoIssuer
	}

	return &offer, nil
}

// records assembles the offer's TLV records in ascending type order,
// skipping absent optional fields. Shared with the invoice request encoder,
// which echoes the offer's records verbatim.
func (o *Offer) records() []tlv.Record {
	var records []tlv.Record

	if len(o.Chains) > 0 {
		chains := make([]byte, 0, len(o.Chains)*chainhash.HashSize)
		for _, chain := range o.Chains {
			chains = append(chains, chain[:]...)
		}
		chainsCopy := chains
		records = append(records, tlv.MakePrimitiveRecord(
			offerChainsType, &chainsCopy,
		))
	}

	if len(o.Metadata) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			offerMetadataType, &o.Metadata,
		))
	}

	if o.Currency != "" {
		currency := []byte(o.Currency)
		records = append(records, tlv.MakePrimitiveRecord(
			offerCurrencyType, &currency,
		))
	}

	if o.Amount != 0 {
		records = append(records, tu64Record(
			offerAmountType, &o.Amount,
		))
	}

	if o.Description != "" {
		desc := []byte(o.Description)
		records = append(records, tlv.MakePrimitiveRecord(
			offerDescriptionType, &desc,
		))
	}

	if len(o.Features) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			offerFeaturesType, &o.Features,
		))
	}

	if o.AbsoluteExpiry != 0 {
		records = append(records, tu64Record(
			offerAbsoluteExpiryType, &o.AbsoluteExpiry,
		))
	}

	if len(o.Paths) > 0 {
		records = append(records, blindedPathsRecord(
			offerPathsType, &o.Paths,
		))
	}

	if o.Issuer != "" {
		issuer := []byte(o.Issuer)
		records = append(records, tlv.MakePrimitiveRecord(
			offerIssuerType, &issuer,
		))
	}

	if o.QuantityMax != 0 {
		records = append(records, tu64Record(
			offerQuantityMaxType, &o.QuantityMax,
		))
	}

	if o.IssuerID != nil {
		records = append(records, tlv.MakePrimitiveRecord(
			offerIssuerIDType, &o.IssuerID,
		))
	}

	return records
}

// Encode serializes the offer to its bech32 text form.
func (o *Offer) Encode() (string, error) {
	var buf bytes.Buffer

	stream, err := tlv.NewStream(o.records()...)
	if err != nil {
		return "", err
	}
	if err := stream.Encode(&buf); err != nil {
		return "", err
	}

	data5, err := bech32.ConvertBits(buf.Bytes(), 8, 5, true)
	if err != nil {
		return "", err
	}

	encoded := strings.Builder{}
	encoded.WriteString(offerHRP)
	encoded.WriteString("1")
	for _, b := range data5 {
		encoded.WriteByte(bech32Charset[b])
	}

	return encoded.String(), nil
}

// tu64Record makes a record for a truncated uint64, the encoding BOLT12
// uses for amounts, expiries and quantities.
func tu64Record(typ tlv.Type, val *uint64) tlv.Record {
	return tlv.MakeDynamicRecord(
		typ, val, func() uint64 {
			return tlv.SizeTUint64(*val)
		},
		tlv.ETUint64, tlv.DTUint64,
	)
}

// tu32Record makes a record for a truncated uint32.
func tu32Record(typ tlv.Type, val *uint32) tlv.Record {
	return tlv.MakeDynamicRecord(
		typ, val, func() uint64 {
			return tlv.SizeTUint32(*val)
		},
		tlv.ETUint32, tlv.DTUint32,
	)
}
