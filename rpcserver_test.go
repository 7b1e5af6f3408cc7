package lndk

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/niteshbalusu11/lndk/bolt12"
	"github.com/niteshbalusu11/lndk/lndclient"
	"github.com/niteshbalusu11/lndk/lndkrpc"
	"github.com/niteshbalusu11/lndk/offers"
	"github.com/niteshbalusu11/lndk/onionmsg"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var testPreimage = lntypes.Preimage{1, 2, 3, 4}

// mockLndConn satisfies lndConn without a node, reporting a regtest chain.
type mockLndConn struct {
	getInfoErr error
	sendErr    error
	closed     bool
}

func (m *mockLndConn) GetInfo(_ context.Context) (*lnrpc.GetInfoResponse,
	error) {

	if m.getInfoErr != nil {
		return nil, m.getInfoErr
	}

	return &lnrpc.GetInfoResponse{
		Chains: []*lnrpc.Chain{
			{Chain: "bitcoin", Network: "regtest"},
		},
	}, nil
}

func (m *mockLndConn) Close() error {
	m.closed = true
	return nil
}

func (m *mockLndConn) SendPayment(_ context.Context, _ *bolt12.Invoice,
	_ lnwire.MilliSatoshi) (lntypes.Preimage, error) {

	if m.sendErr != nil {
		return lntypes.Preimage{}, m.sendErr
	}

	return testPreimage, nil
}

func (m *mockLndConn) IdentityPubKey(_ context.Context) (*btcec.PublicKey,
	error) {

	return serverTestKey(0x01), nil
}

func (m *mockLndConn) DeriveSharedKey(_ context.Context,
	_ *btcec.PublicKey) ([32]byte, error) {

	return [32]byte{}, nil
}

func (m *mockLndConn) SendCustomMessage(_ context.Context,
	_ *btcec.PublicKey, _ uint32, _ []byte) error {

	return nil
}

func (m *mockLndConn) SubscribeCustomMessages(_ context.Context) (
	lnrpc.Lightning_SubscribeCustomMessagesClient, error) {

	return nil, errors.New("not implemented")
}

// mockOfferMessenger hands back a canned invoice instead of speaking onion
// messages.
type mockOfferMessenger struct {
	invoice  *bolt12.Invoice
	fetchErr error
}

func (m *mockOfferMessenger) ResolveDestination(_ context.Context,
	offer *bolt12.Offer) (*offers.Destination, error) {

	return &offers.Destination{NodeID: offer.IssuerID}, nil
}

func (m *mockOfferMessenger) FetchInvoice(_ context.Context,
	_ *offers.FetchInvoiceRequest) (*bolt12.Invoice, error) {

	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	return m.invoice, nil
}

func serverTestKey(fill byte) *btcec.PublicKey {
	var seed [32]byte
	for i := range seed {
		seed[i] = fill
	}

	_, pub := btcec.PrivKeyFromBytes(seed[:])
	return pub
}

// testOfferStr encodes a regtest offer asking for the given amount.
func testOfferStr(t *testing.T, amount uint64) string {
	t.Helper()

	offer := &bolt12.Offer{
		Chains: []chainhash.Hash{
			*chaincfg.RegressionNetParams.GenesisHash,
		},
		Amount:      amount,
		Description: "test offer",
		IssuerID:    serverTestKey(0x05),
	}

	encoded, err := offer.Encode()
	require.NoError(t, err)

	return encoded
}

// testInvoice builds an invoice carrying one blinded payment path.
func testInvoice(t *testing.T, amount lnwire.MilliSatoshi) *bolt12.Invoice {
	t.Helper()

	invoice := &bolt12.Invoice{
		Chain:       *chaincfg.RegressionNetParams.GenesisHash,
		AmountMsats: amount,
		Description: "test offer",
		CreatedAt:   1_700_000_000,
		NodeID:      serverTestKey(0x05),
		PaymentPaths: []*bolt12.PaymentPath{
			{
				PayInfo: &bolt12.BlindedPayInfo{
					FeeBaseMsat:     1_000,
					CltvExpiryDelta: 80,
					HTLCMaximumMsat: 1_000_000_000,
				},
				Path: &bolt12.BlindedPath{
					IntroductionNode: &bolt12.IntroductionNode{
						NodeID: serverTestKey(0x06),
					},
					BlindingPoint: serverTestKey(0x07),
					Hops: []*bolt12.BlindedHop{
						{
							BlindedNodeID:    serverTestKey(0x08),
							EncryptedPayload: []byte{0x01},
						},
					},
				},
			},
		},
	}
	copy(invoice.PaymentHash[:], []byte("payment hash payment hash pay ha"))
	copy(invoice.Signature[:], []byte("sixty four bytes of signature material padded out to full width!"))

	return invoice
}

func testInvoiceHex(t *testing.T, amount lnwire.MilliSatoshi) string {
	t.Helper()

	raw, err := testInvoice(t, amount).Encode()
	require.NoError(t, err)

	return hex.EncodeToString(raw)
}

// newTestServer wires an rpcServer to the given mocks and counts how often
// an lnd connection is made.
func newTestServer(conn *mockLndConn,
	messenger offers.Messenger) (*rpcServer, *int) {

	connects := 0
	cfg := DefaultConfig()
	server := newRPCServer(&cfg, offers.NewHandler(offers.CryptoRandSource{}))
	server.connect = func(_ *lndclient.Config) (lndConn, error) {
		connects++
		return conn, nil
	}
	server.newMessenger = func(_ lndConn) offers.Messenger {
		return messenger
	}

	return server, &connects
}

func authedContext() context.Context {
	return metadata.NewIncomingContext(
		context.Background(),
		metadata.Pairs("macaroon", "deadbeef"),
	)
}

// TestMissingMacaroon asserts that authenticated methods refuse requests
// without a macaroon before any connection to lnd is attempted.
func TestMissingMacaroon(t *testing.T) {
	t.Parallel()

	server, connects := newTestServer(&mockLndConn{}, &mockOfferMessenger{})

	_, err := server.PayOffer(
		context.Background(), &lndkrpc.PayOfferRequest{},
	)
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = server.GetInvoice(
		context.Background(), &lndkrpc.GetInvoiceRequest{},
	)
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = server.PayInvoice(
		context.Background(), &lndkrpc.PayInvoiceRequest{},
	)
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	require.Zero(t, *connects)
}

// TestInvalidMacaroonHex asserts that a non-hex macaroon is rejected
// without echoing its value back.
func TestInvalidMacaroonHex(t *testing.T) {
	t.Parallel()

	server, connects := newTestServer(&mockLndConn{}, &mockOfferMessenger{})

	ctx := metadata.NewIncomingContext(
		context.Background(),
		metadata.Pairs("macaroon", "not hex at all"),
	)

	_, err := server.PayOffer(ctx, &lndkrpc.PayOfferRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	require.NotContains(t, err.Error(), "not hex at all")
	require.Zero(t, *connects)
}

// TestPayOfferRPC runs the full PayOffer flow against mocks.
func TestPayOfferRPC(t *testing.T) {
	t.Parallel()

	conn := &mockLndConn{}
	messenger := &mockOfferMessenger{
		invoice: testInvoice(t, 1_000),
	}
	server, connects := newTestServer(conn, messenger)

	resp, err := server.PayOffer(authedContext(), &lndkrpc.PayOfferRequest{
		Offer: testOfferStr(t, 1_000),
	})
	require.NoError(t, err)
	require.Equal(t, testPreimage.String(), resp.PaymentPreimage)
	require.Equal(t, 1, *connects)
	require.True(t, conn.closed)
	require.Zero(t, server.handler.NumActivePayments())
}

// TestPayOfferWrongChain asserts that an offer for a different chain than
// the node's is rejected up front.
func TestPayOfferWrongChain(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(&mockLndConn{}, &mockOfferMessenger{})

	// An offer naming no chain is implicitly mainnet, while the mock
	// node runs regtest.
	offer := &bolt12.Offer{
		Description: "mainnet offer",
		Amount:      1_000,
		IssuerID:    serverTestKey(0x05),
	}
	encoded, err := offer.Encode()
	require.NoError(t, err)

	_, err = server.PayOffer(authedContext(), &lndkrpc.PayOfferRequest{
		Offer: encoded,
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestPayOfferBadOffer asserts that undecodable offers map to invalid
// argument.
func TestPayOfferBadOffer(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(&mockLndConn{}, &mockOfferMessenger{})

	_, err := server.PayOffer(authedContext(), &lndkrpc.PayOfferRequest{
		Offer: "lnbc1nonsense",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestConnectFailure asserts that an unreachable lnd surfaces as
// unavailable.
func TestConnectFailure(t *testing.T) {
	t.Parallel()

	conn := &mockLndConn{getInfoErr: errors.New("connection refused")}
	server, _ := newTestServer(conn, &mockOfferMessenger{})

	_, err := server.PayOffer(authedContext(), &lndkrpc.PayOfferRequest{
		Offer: testOfferStr(t, 1_000),
	})
	require.Equal(t, codes.Unavailable, status.Code(err))
	require.True(t, conn.closed)
}

// TestGetInvoiceRPC asserts the fetched invoice round trips through the
// response and that no payment attempt is left tracked afterwards.
func TestGetInvoiceRPC(t *testing.T) {
	t.Parallel()

	invoice := testInvoice(t, 1_000)
	server, _ := newTestServer(
		&mockLndConn{}, &mockOfferMessenger{invoice: invoice},
	)

	resp, err := server.GetInvoice(
		authedContext(), &lndkrpc.GetInvoiceRequest{
			Offer: testOfferStr(t, 1_000),
		},
	)
	require.NoError(t, err)

	// The attempt must have been released once marshalled.
	require.Zero(t, server.handler.NumActivePayments())

	decoded, err := bolt12.DecodeInvoiceHex(resp.InvoiceHexStr)
	require.NoError(t, err)
	require.Equal(t, invoice.PaymentHash, decoded.PaymentHash)

	require.Equal(t, invoice.PaymentHash[:],
		resp.InvoiceContents.PaymentHash.Hash)
	require.EqualValues(t, 1_000, resp.InvoiceContents.AmountMsats)
}

// TestGetInvoiceFetchError asserts fetch failures are reported and tracked
// state is cleaned up.
func TestGetInvoiceFetchError(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(
		&mockLndConn{},
		&mockOfferMessenger{fetchErr: errors.New("peer gone")},
	)

	_, err := server.GetInvoice(
		authedContext(), &lndkrpc.GetInvoiceRequest{
			Offer: testOfferStr(t, 1_000),
		},
	)
	require.Equal(t, codes.Internal, status.Code(err))
	require.Zero(t, server.handler.NumActivePayments())
}

// TestInvoiceRequestTimeoutRPC asserts that a recipient never answering the
// invoice request surfaces as an internal failure rather than a deadline
// code of its own.
func TestInvoiceRequestTimeoutRPC(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(
		&mockLndConn{},
		&mockOfferMessenger{
			fetchErr: fmt.Errorf("unable to fetch invoice: %w",
				onionmsg.ErrNoReply),
		},
	)

	_, err := server.PayOffer(authedContext(), &lndkrpc.PayOfferRequest{
		Offer: testOfferStr(t, 1_000),
	})
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestDecodeInvoiceRPC asserts invoices decode without authentication or a
// connection to lnd.
func TestDecodeInvoiceRPC(t *testing.T) {
	t.Parallel()

	server, connects := newTestServer(&mockLndConn{}, &mockOfferMessenger{})

	resp, err := server.DecodeInvoice(
		context.Background(), &lndkrpc.DecodeInvoiceRequest{
			Invoice: testInvoiceHex(t, 2_500),
		},
	)
	require.NoError(t, err)
	require.EqualValues(t, 2_500, resp.AmountMsats)
	require.Equal(t, "test offer", resp.Description)
	require.Zero(t, *connects)

	_, err = server.DecodeInvoice(
		context.Background(), &lndkrpc.DecodeInvoiceRequest{
			Invoice: "zz not hex",
		},
	)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestPayInvoiceRPC pays an invoice end to end against the mock node.
func TestPayInvoiceRPC(t *testing.T) {
	t.Parallel()

	conn := &mockLndConn{}
	server, _ := newTestServer(conn, &mockOfferMessenger{})

	resp, err := server.PayInvoice(
		authedContext(), &lndkrpc.PayInvoiceRequest{
			Invoice: testInvoiceHex(t, 1_000),
		},
	)
	require.NoError(t, err)
	require.Equal(t, testPreimage.String(), resp.PaymentPreimage)
	require.Zero(t, server.handler.NumActivePayments())
}

// TestPayInvoiceAmountTooLowRPC asserts that underpaying an invoice is
// rejected as an invalid argument.
func TestPayInvoiceAmountTooLowRPC(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(&mockLndConn{}, &mockOfferMessenger{})

	_, err := server.PayInvoice(
		authedContext(), &lndkrpc.PayInvoiceRequest{
			Invoice: testInvoiceHex(t, 5_000),
			Amount:  1_000,
		},
	)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestPayInvoiceSendFailureRPC asserts payment dispatch failures map to
// internal errors.
func TestPayInvoiceSendFailureRPC(t *testing.T) {
	t.Parallel()

	conn := &mockLndConn{sendErr: errors.New("no route")}
	server, _ := newTestServer(conn, &mockOfferMessenger{})

	_, err := server.PayInvoice(
		authedContext(), &lndkrpc.PayInvoiceRequest{
			Invoice: testInvoiceHex(t, 1_000),
		},
	)
	require.Equal(t, codes.Internal, status.Code(err))
}
