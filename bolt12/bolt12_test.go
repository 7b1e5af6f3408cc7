package bolt12

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/tlv"
	"github.com/stretchr/testify/require"
)

// testPubKey derives a deterministic public key for tests from a one byte
// seed.
func testPubKey(t *testing.T, seed byte) *btcec.PublicKey {
	t.Helper()

	var keyBytes [32]byte
	keyBytes[31] = seed
	require.NotZero(t, seed)

	_, pub := btcec.PrivKeyFromBytes(keyBytes[:])
	return pub
}

func testBlindedPath(t *testing.T, seed byte) *BlindedPath {
	t.Helper()

	return &BlindedPath{
		IntroductionNode: &IntroductionNode{
			NodeID: testPubKey(t, seed),
		},
		BlindingPoint: testPubKey(t, seed+1),
		Hops: []*BlindedHop{
			{
				BlindedNodeID:    testPubKey(t, seed+2),
				EncryptedPayload: []byte{0x01, 0x02, 0x03},
			},
			{
				BlindedNodeID:    testPubKey(t, seed+3),
				EncryptedPayload: []byte{0xff},
			},
		},
	}
}

func testPayInfo(base uint32) *BlindedPayInfo {
	return &BlindedPayInfo{
		FeeBaseMsat:               base,
		FeeProportionalMillionths: 250,
		CltvExpiryDelta:           144,
		HTLCMinimumMsat:           1000,
		HTLCMaximumMsat:           21_000_000_000,
		Features:                  []byte{},
	}
}

// TestOfferEncodeDecode asserts that an offer survives the round trip
// through its bech32 text form.
func TestOfferEncodeDecode(t *testing.T) {
	t.Parallel()

	original := &Offer{
		Metadata:       []byte{0xde, 0xad, 0xbe, 0xef},
		Amount:         100_000,
		Description:    "coffee",
		AbsoluteExpiry: 1_700_000_000,
		Paths: []*BlindedPath{
			testBlindedPath(t, 1),
		},
		Issuer:      "barista",
		QuantityMax: 5,
		IssuerID:    testPubKey(t, 9),
	}

	encoded, err := original.Encode()
	require.NoError(t, err)
	require.True(t, len(encoded) > 4)
	require.Equal(t, "lno1", encoded[:4])

	decoded, err := DecodeOffer(encoded)
	require.NoError(t, err)

	require.Equal(t, original.Metadata, decoded.Metadata)
	require.Equal(t, original.Amount, decoded.Amount)
	require.Equal(t, original.Description, decoded.Description)
	require.Equal(t, original.AbsoluteExpiry, decoded.AbsoluteExpiry)
	require.Equal(t, original.Issuer, decoded.Issuer)
	require.Equal(t, original.QuantityMax, decoded.QuantityMax)
	require.Equal(t, original.IssuerID, decoded.IssuerID)
	require.Len(t, decoded.Paths, 1)
	require.Equal(t, original.Paths[0].BlindingPoint,
		decoded.Paths[0].BlindingPoint)
	require.Equal(t, original.Paths[0].Hops, decoded.Paths[0].Hops)
	require.Equal(t, encoded, decoded.String())
}

// TestDecodeOfferContinuations asserts that offers split with "+" and
// whitespace are joined before decoding.
func TestDecodeOfferContinuations(t *testing.T) {
	t.Parallel()

	offer := &Offer{
		Description: "split across lines",
		IssuerID:    testPubKey(t, 3),
	}
	encoded, err := offer.Encode()
	require.NoError(t, err)

	mid := len(encoded) / 2
	split := encoded[:mid] + "+\n  " + encoded[mid:]

	decoded, err := DecodeOffer(split)
	require.NoError(t, err)
	require.Equal(t, offer.Description, decoded.Description)

	// An empty continuation part is rejected.
	_, err = DecodeOffer(encoded + "+ ")
	require.ErrorIs(t, err, ErrBadOfferStr)
}

// TestDecodeOfferErrors exercises the reject paths of the offer parser.
func TestDecodeOfferErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		offer string
	}{
		{
			name:  "empty",
			offer: "",
		},
		{
			name:  "no separator",
			offer: "lnoqqqq",
		},
		{
			name:  "wrong prefix",
			offer: "lnbc1qqqq",
		},
		{
			name:  "invalid charset",
			offer: "lno1bbbb",
		},
		{
			name:  "mixed case",
			offer: "lno1qqQQ",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeOffer(test.offer)
			require.ErrorIs(t, err, ErrBadOfferStr)
		})
	}
}

// TestDecodeOfferNoIssuer asserts that an offer with neither an issuer id
// nor blinded paths is rejected.
func TestDecodeOfferNoIssuer(t *testing.T) {
	t.Parallel()

	offer := &Offer{
		Description: "unreachable",
	}
	encoded, err := offer.Encode()
	require.NoError(t, err)

	_, err = DecodeOffer(encoded)
	require.ErrorIs(t, err, ErrNoIssuer)
}

// TestOfferSupportsChain asserts the implicit-mainnet rule for offers
// listing no chains.
func TestOfferSupportsChain(t *testing.T) {
	t.Parallel()

	mainnet := *chaincfg.MainNetParams.GenesisHash
	regtest := *chaincfg.RegressionNetParams.GenesisHash

	noChains := &Offer{}
	require.True(t, noChains.SupportsChain(mainnet))
	require.False(t, noChains.SupportsChain(regtest))

	regtestOffer := &Offer{Chains: []chainhash.Hash{regtest}}
	require.True(t, regtestOffer.SupportsChain(regtest))
	require.False(t, regtestOffer.SupportsChain(mainnet))
}

// TestInvoiceEncodeDecode asserts an invoice round trips through its TLV
// stream, including multiple payment paths in order.
func TestInvoiceEncodeDecode(t *testing.T) {
	t.Parallel()

	var paymentHash [32]byte
	paymentHash[0] = 0xab

	var sig [64]byte
	sig[63] = 0x01

	original := &Invoice{
		Metadata:     []byte{0x01, 0x02},
		Chain:        *chaincfg.RegressionNetParams.GenesisHash,
		InvReqAmount: 42_000,
		Quantity:     2,
		PayerID:      testPubKey(t, 7),
		PayerNote:    "thanks",
		Description:  "coffee",
		PaymentPaths: []*PaymentPath{
			{
				PayInfo: testPayInfo(10),
				Path:    testBlindedPath(t, 1),
			},
			{
				PayInfo: testPayInfo(20),
				Path:    testBlindedPath(t, 10),
			},
		},
		CreatedAt:      1_700_000_000,
		RelativeExpiry: 3600,
		PaymentHash:    paymentHash,
		AmountMsats:    84_000,
		Features:       []byte{0x02, 0x00},
		NodeID:         testPubKey(t, 20),
		Signature:      sig,
	}

	encoded, err := original.Encode()
	require.NoError(t, err)

	decoded, err := DecodeInvoice(encoded)
	require.NoError(t, err)
	require.Equal(t, original, decoded)

	// Paths must come back in the order they were encoded.
	require.Equal(t, uint32(10),
		decoded.PaymentPaths[0].PayInfo.FeeBaseMsat)
	require.Equal(t, uint32(20),
		decoded.PaymentPaths[1].PayInfo.FeeBaseMsat)
}

// TestInvoiceMissingFields asserts that invoices lacking required records
// are rejected with the field-specific error.
func TestInvoiceMissingFields(t *testing.T) {
	t.Parallel()

	var paymentHash [32]byte
	paymentHash[0] = 0xab

	base := func() *Invoice {
		return &Invoice{
			PaymentPaths: []*PaymentPath{
				{
					PayInfo: testPayInfo(10),
					Path:    testBlindedPath(t, 1),
				},
			},
			CreatedAt:   1_700_000_000,
			PaymentHash: paymentHash,
			AmountMsats: 1000,
			NodeID:      testPubKey(t, 20),
		}
	}

	// The encoder always writes payment hash, created_at and signature,
	// so strip records at the TLV level to simulate their absence.
	strip := func(t *testing.T, inv *Invoice, typ byte) []byte {
		t.Helper()

		encoded, err := inv.Encode()
		require.NoError(t, err)

		var out bytes.Buffer
		rest := encoded
		for len(rest) > 0 {
			// All record types and lengths in these test
			// invoices fit in a single BigSize byte.
			recType := rest[0]
			recLen := int(rest[1])
			record := rest[:2+recLen]
			rest = rest[2+recLen:]

			if recType == typ {
				continue
			}
			out.Write(record)
		}

		return out.Bytes()
	}

	invoice := base()
	_, err := DecodeInvoice(strip(t, invoice, byte(invoicePaymentHashType)))
	require.ErrorIs(t, err, ErrNoPaymentHash)

	invoice = base()
	_, err = DecodeInvoice(strip(t, invoice, byte(invoiceCreatedAtType)))
	require.ErrorIs(t, err, ErrNoCreatedAt)

	invoice = base()
	invoice.NodeID = nil
	encoded, err := invoice.Encode()
	require.NoError(t, err)
	_, err = DecodeInvoice(encoded)
	require.ErrorIs(t, err, ErrNoNodeID)

	invoice = base()
	_, err = DecodeInvoice(strip(t, invoice, byte(invoiceSignatureType)))
	require.ErrorIs(t, err, ErrNoSignature)
}

// TestInvoiceChainDefault asserts that an invoice with no chain record is
// treated as a mainnet invoice.
func TestInvoiceChainDefault(t *testing.T) {
	t.Parallel()

	invoice := &Invoice{
		PaymentPaths: []*PaymentPath{
			{
				PayInfo: testPayInfo(10),
				Path:    testBlindedPath(t, 1),
			},
		},
		CreatedAt:   1_700_000_000,
		AmountMsats: 1000,
		NodeID:      testPubKey(t, 20),
	}

	encoded, err := invoice.Encode()
	require.NoError(t, err)

	// Drop the chain record, which the encoder always writes.
	var out bytes.Buffer
	rest := encoded
	for len(rest) > 0 {
		recType := rest[0]

		// Record type 80 has a two byte BigSize length prefix would
		// not appear here; lengths stay below 253 in this test.
		recLen := int(rest[1])
		record := rest[:2+recLen]
		rest = rest[2+recLen:]

		if recType == byte(invoiceChainType) {
			continue
		}
		out.Write(record)
	}

	decoded, err := DecodeInvoice(out.Bytes())
	require.NoError(t, err)
	require.Equal(t, *chaincfg.MainNetParams.GenesisHash, decoded.Chain)
}

// TestInvoiceMismatchedPaths asserts that differing path and payinfo
// counts are rejected.
func TestInvoiceMismatchedPaths(t *testing.T) {
	t.Parallel()

	paths := []*BlindedPath{
		testBlindedPath(t, 1),
		testBlindedPath(t, 10),
	}
	payInfos := []*BlindedPayInfo{
		testPayInfo(10),
	}

	var (
		createdAt   uint64 = 1_700_000_000
		amount      uint64 = 1000
		paymentHash [32]byte
		signature   [64]byte
		nodeID             = testPubKey(t, 20)
	)

	// Build the stream directly from records, bypassing the Invoice
	// type so the invalid combination can be produced.
	stream, err := tlv.NewStream(
		blindedPathsRecord(invoicePathsType, &paths),
		blindedPayInfosRecord(invoiceBlindedPayType, &payInfos),
		tu64Record(invoiceCreatedAtType, &createdAt),
		tlv.MakePrimitiveRecord(invoicePaymentHashType, &paymentHash),
		tu64Record(invoiceAmountType, &amount),
		tlv.MakePrimitiveRecord(invoiceNodeIDType, &nodeID),
		tlv.MakePrimitiveRecord(invoiceSignatureType, &signature),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, stream.Encode(&buf))

	_, err = DecodeInvoice(buf.Bytes())
	require.ErrorIs(t, err, ErrMismatchedPaths)
}

// TestIntroductionNodeEncoding asserts the two legal introduction node
// encodings round trip and the illegal combinations are rejected.
func TestIntroductionNodeEncoding(t *testing.T) {
	t.Parallel()

	// By public key.
	byKey := &IntroductionNode{NodeID: testPubKey(t, 5)}
	var buf bytes.Buffer
	require.NoError(t, encodeIntroductionNode(&buf, byKey))
	require.Equal(t, 33, buf.Len())

	decoded, err := decodeIntroductionNode(&buf)
	require.NoError(t, err)
	require.Equal(t, byKey, decoded)

	// By directed short channel id.
	byChan := &IntroductionNode{
		ShortChannelID: &DirectedShortChannelID{
			Direction: DirectionNodeTwo,
			SCID:      lnwire.NewShortChanIDFromInt(123456789),
		},
	}
	buf.Reset()
	require.NoError(t, encodeIntroductionNode(&buf, byChan))
	require.Equal(t, 9, buf.Len())

	decoded, err = decodeIntroductionNode(&buf)
	require.NoError(t, err)
	require.Equal(t, byChan, decoded)

	// Both set is rejected.
	both := &IntroductionNode{
		NodeID:         byKey.NodeID,
		ShortChannelID: byChan.ShortChannelID,
	}
	require.Error(t, encodeIntroductionNode(&buf, both))

	// Neither set is rejected.
	require.Error(t, encodeIntroductionNode(&buf, &IntroductionNode{}))

	// An unknown discriminator byte is rejected.
	_, err = decodeIntroductionNode(bytes.NewReader([]byte{0x09}))
	require.Error(t, err)
}

// TestInvoiceRequestEncode asserts the request stream echoes the offer
// records and appends the request fields.
func TestInvoiceRequestEncode(t *testing.T) {
	t.Parallel()

	offer := &Offer{
		Description: "coffee",
		IssuerID:    testPubKey(t, 9),
	}

	request := &InvoiceRequest{
		Offer:       offer,
		Metadata:    []byte{0x11, 0x22, 0x33},
		AmountMsats: 5000,
		PayerID:     testPubKey(t, 4),
		PayerNote:   "hello",
	}

	encoded, err := request.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	// The stream must start with the metadata record (type 0) and
	// contain the offer description record after it.
	require.Equal(t, byte(invReqMetadataType), encoded[0])
	require.Equal(t, byte(3), encoded[1])
	require.Equal(t, request.Metadata, encoded[2:5])
	require.Equal(t, byte(offerDescriptionType), encoded[5])
}
