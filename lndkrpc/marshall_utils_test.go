package lndkrpc

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/niteshbalusu11/lndk/bolt12"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T, fill byte) *btcec.PublicKey {
	t.Helper()

	var seed [32]byte
	for i := range seed {
		seed[i] = fill
	}

	_, pub := btcec.PrivKeyFromBytes(seed[:])
	return pub
}

// TestCreateInvoiceContents asserts that every invoice field survives the
// trip into the RPC representation.
func TestCreateInvoiceContents(t *testing.T) {
	t.Parallel()

	nodeID := testKey(t, 0x01)
	blindedNode := testKey(t, 0x02)
	blinding := testKey(t, 0x03)
	intro := testKey(t, 0x04)

	invoice := &bolt12.Invoice{
		Chain:       *chaincfg.MainNetParams.GenesisHash,
		Quantity:    3,
		AmountMsats: lnwire.MilliSatoshi(42_000),
		Description: "a cup of coffee",
		CreatedAt:   1_700_000_000,
		PayerNote:   "from carol",
		NodeID:      nodeID,
		PaymentPaths: []*bolt12.PaymentPath{
			{
				PayInfo: &bolt12.BlindedPayInfo{
					FeeBaseMsat:               1_000,
					FeeProportionalMillionths: 500,
					CltvExpiryDelta:           144,
					HTLCMinimumMsat:           1,
					HTLCMaximumMsat:           100_000_000,
				},
				Path: &bolt12.BlindedPath{
					IntroductionNode: &bolt12.IntroductionNode{
						NodeID: intro,
					},
					BlindingPoint: blinding,
					Hops: []*bolt12.BlindedHop{
						{
							BlindedNodeID:    blindedNode,
							EncryptedPayload: []byte{0x0a, 0x0b},
						},
					},
				},
			},
		},
	}
	copy(invoice.PaymentHash[:], []byte("payment hash payment hash pay ha"))
	copy(invoice.Signature[:], []byte("sixty four bytes of signature material padded out to full width!"))

	contents := CreateInvoiceContents(invoice)

	require.Equal(t, chaincfg.MainNetParams.GenesisHash.String(),
		contents.Chain)
	require.EqualValues(t, 3, contents.Quantity)
	require.EqualValues(t, 42_000, contents.AmountMsats)
	require.Equal(t, "a cup of coffee", contents.Description)
	require.Equal(t, invoice.PaymentHash[:], contents.PaymentHash.Hash)
	require.EqualValues(t, 1_700_000_000, contents.CreatedAt)
	require.Equal(t, nodeID.SerializeCompressed(), contents.NodeId.Key)
	require.Equal(t, hex.EncodeToString(invoice.Signature[:]),
		contents.Signature)
	require.Equal(t, "from carol", contents.PayerNote)
	require.Equal(t, []FeatureBit{FeatureBit_MPP_OPT}, contents.Features)

	require.Len(t, contents.PaymentPaths, 1)
	path := contents.PaymentPaths[0]

	require.EqualValues(t, 1_000, path.BlindedPayInfo.FeeBaseMsat)
	require.EqualValues(t, 500, path.BlindedPayInfo.FeeProportionalMillionths)
	require.EqualValues(t, 144, path.BlindedPayInfo.CltvExpiryDelta)
	require.EqualValues(t, 1, path.BlindedPayInfo.HtlcMinimumMsat)
	require.EqualValues(t, 100_000_000, path.BlindedPayInfo.HtlcMaximumMsat)

	require.Equal(t, intro.SerializeCompressed(),
		path.BlindedPath.IntroductionNode.NodeId.Key)
	require.Nil(t, path.BlindedPath.IntroductionNode.DirectedShortChannelId)
	require.Equal(t, blinding.SerializeCompressed(),
		path.BlindedPath.BlindingPoint.Key)
	require.Len(t, path.BlindedPath.BlindedHops, 1)
	require.Equal(t, blindedNode.SerializeCompressed(),
		path.BlindedPath.BlindedHops[0].BlindedNodeId.Key)
	require.Equal(t, []byte{0x0a, 0x0b},
		path.BlindedPath.BlindedHops[0].EncryptedPayload)
}

// TestCreateInvoiceContentsNoPaths asserts an invoice without payment paths
// marshals to an empty path sequence rather than nil-panicking.
func TestCreateInvoiceContentsNoPaths(t *testing.T) {
	t.Parallel()

	invoice := &bolt12.Invoice{
		Chain:       *chaincfg.MainNetParams.GenesisHash,
		AmountMsats: 1,
		CreatedAt:   1,
		NodeID:      testKey(t, 0x01),
	}

	contents := CreateInvoiceContents(invoice)
	require.Empty(t, contents.PaymentPaths)
}

// TestMarshalIntroductionNode covers the short channel id form of the
// introduction node, which has no direct public key.
func TestMarshalIntroductionNode(t *testing.T) {
	t.Parallel()

	scid := lnwire.NewShortChanIDFromInt(123_456_789)
	intro := marshalIntroductionNode(&bolt12.IntroductionNode{
		ShortChannelID: &bolt12.DirectedShortChannelID{
			Direction: bolt12.DirectionNodeTwo,
			SCID:      scid,
		},
	})

	require.Nil(t, intro.NodeId)
	require.Equal(t, Direction_NODE_TWO,
		intro.DirectedShortChannelId.Direction)
	require.EqualValues(t, 123_456_789, intro.DirectedShortChannelId.Scid)
}
