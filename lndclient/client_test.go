package lndclient

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/niteshbalusu11/lndk/bolt12"
	"github.com/stretchr/testify/require"
)

func testPubKey(t *testing.T, seed byte) *btcec.PublicKey {
	t.Helper()

	var keyBytes [32]byte
	keyBytes[31] = seed
	require.NotZero(t, seed)

	_, pub := btcec.PrivKeyFromBytes(keyBytes[:])
	return pub
}

// TestNetwork asserts the chain name to parameter mapping.
func TestNetwork(t *testing.T) {
	t.Parallel()

	infoFor := func(network string) *lnrpc.GetInfoResponse {
		return &lnrpc.GetInfoResponse{
			Chains: []*lnrpc.Chain{
				{
					Chain:   "bitcoin",
					Network: network,
				},
			},
		}
	}

	params, err := Network(infoFor("mainnet"))
	require.NoError(t, err)
	require.Equal(t, &chaincfg.MainNetParams, params)

	params, err = Network(infoFor("regtest"))
	require.NoError(t, err)
	require.Equal(t, &chaincfg.RegressionNetParams, params)

	_, err = Network(infoFor("litecoin"))
	require.Error(t, err)

	_, err = Network(&lnrpc.GetInfoResponse{})
	require.Error(t, err)
}

// TestMarshalBlindedPaymentPaths asserts the rpc conversion carries every
// field across and rejects channel-addressed introduction nodes.
func TestMarshalBlindedPaymentPaths(t *testing.T) {
	t.Parallel()

	intro := testPubKey(t, 1)
	blinding := testPubKey(t, 2)
	hopKey := testPubKey(t, 3)

	paths := []*bolt12.PaymentPath{
		{
			PayInfo: &bolt12.BlindedPayInfo{
				FeeBaseMsat:               100,
				FeeProportionalMillionths: 2500,
				CltvExpiryDelta:           80,
				HTLCMinimumMsat:           1000,
				HTLCMaximumMsat:           100_000,
			},
			Path: &bolt12.BlindedPath{
				IntroductionNode: &bolt12.IntroductionNode{
					NodeID: intro,
				},
				BlindingPoint: blinding,
				Hops: []*bolt12.BlindedHop{
					{
						BlindedNodeID:    hopKey,
						EncryptedPayload: []byte{0xaa},
					},
				},
			},
		},
	}

	rpcPaths, err := marshalBlindedPaymentPaths(paths)
	require.NoError(t, err)
	require.Len(t, rpcPaths, 1)

	got := rpcPaths[0]
	require.Equal(t, intro.SerializeCompressed(),
		got.BlindedPath.IntroductionNode)
	require.Equal(t, blinding.SerializeCompressed(),
		got.BlindedPath.BlindingPoint)
	require.Len(t, got.BlindedPath.BlindedHops, 1)
	require.Equal(t, hopKey.SerializeCompressed(),
		got.BlindedPath.BlindedHops[0].BlindedNode)
	require.Equal(t, []byte{0xaa},
		got.BlindedPath.BlindedHops[0].EncryptedData)
	require.Equal(t, uint64(100), got.BaseFeeMsat)
	require.Equal(t, uint32(2500), got.ProportionalFeeRate)
	require.Equal(t, uint32(80), got.TotalCltvDelta)
	require.Equal(t, uint64(1000), got.HtlcMinMsat)
	require.Equal(t, uint64(100_000), got.HtlcMaxMsat)

	// Channel-addressed introduction nodes cannot be queried against.
	scidPaths := []*bolt12.PaymentPath{
		{
			PayInfo: &bolt12.BlindedPayInfo{},
			Path: &bolt12.BlindedPath{
				IntroductionNode: &bolt12.IntroductionNode{
					ShortChannelID: &bolt12.DirectedShortChannelID{
						Direction: bolt12.DirectionNodeOne,
						SCID: lnwire.NewShortChanIDFromInt(
							42,
						),
					},
				},
				BlindingPoint: blinding,
			},
		},
	}
	_, err = marshalBlindedPaymentPaths(scidPaths)
	require.Error(t, err)
}

// TestFeeLimitFor asserts the one percent rule and its floor.
func TestFeeLimitFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, lnwire.MilliSatoshi(1000), feeLimitFor(500))
	require.Equal(t, lnwire.MilliSatoshi(1000), feeLimitFor(100_000))
	require.Equal(t, lnwire.MilliSatoshi(10_000), feeLimitFor(1_000_000))
}
