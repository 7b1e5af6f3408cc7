package lndclient

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnrpc/routerrpc"
	"github.com/lightningnetwork/lnd/lnrpc/signrpc"
	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/macaroons"
	"github.com/niteshbalusu11/lndk/bolt12"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	macaroon "gopkg.in/macaroon.v2"
)

// minFeeLimitMsat is the fee limit floor applied to route queries so that
// small payments are not starved of routes by a proportional limit alone.
const minFeeLimitMsat = 1000

// Config describes how to reach an lnd node.
type Config struct {
	// Host is the lnd gRPC host:port.
	Host string

	// TLSCertPath is the path to lnd's TLS certificate.
	TLSCertPath string

	// MacaroonHex is the hex-encoded macaroon to attach to every call.
	// It is held only for the lifetime of the connection and never
	// logged.
	MacaroonHex string
}

// Client is a connection to an lnd node, scoped to the calls the offer
// flows need.
type Client struct {
	conn *grpc.ClientConn

	lightning lnrpc.LightningClient
	router    routerrpc.RouterClient
	signer    signrpc.SignerClient
}

// Connect dials lnd with the given TLS certificate and macaroon.
func Connect(cfg *Config) (*Client, error) {
	creds, err := credentials.NewClientTLSFromFile(cfg.TLSCertPath, "")
	if err != nil {
		return nil, fmt.Errorf("unable to load lnd tls cert from "+
			"%v: %w", cfg.TLSCertPath, err)
	}

	macBytes, err := hex.DecodeString(cfg.MacaroonHex)
	if err != nil {
		return nil, fmt.Errorf("unable to decode macaroon hex: %w",
			err)
	}

	mac := &macaroon.Macaroon{}
	if err := mac.UnmarshalBinary(macBytes); err != nil {
		return nil, fmt.Errorf("unable to parse macaroon: %w", err)
	}

	macCred, err := macaroons.NewMacaroonCredential(mac)
	if err != nil {
		return nil, fmt.Errorf("unable to create macaroon "+
			"credential: %w", err)
	}

	conn, err := grpc.NewClient(
		cfg.Host,
		grpc.WithTransportCredentials(creds),
		grpc.WithPerRPCCredentials(macCred),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to lnd at %v: %w",
			cfg.Host, err)
	}

	log.Debugf("Connected to lnd at %v", cfg.Host)

	return &Client{
		conn:      conn,
		lightning: lnrpc.NewLightningClient(conn),
		router:    routerrpc.NewRouterClient(conn),
		signer:    signrpc.NewSignerClient(conn),
	}, nil
}

// Close tears down the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// GetInfo fetches the node's info, which doubles as our connectivity and
// authentication check.
func (c *Client) GetInfo(ctx context.Context) (*lnrpc.GetInfoResponse,
	error) {

	return c.lightning.GetInfo(ctx, &lnrpc.GetInfoRequest{})
}

// IdentityPubKey fetches and parses the node's identity public key.
func (c *Client) IdentityPubKey(ctx context.Context) (*btcec.PublicKey,
	error) {

	info, err := c.GetInfo(ctx)
	if err != nil {
		return nil, err
	}

	keyBytes, err := hex.DecodeString(info.IdentityPubkey)
	if err != nil {
		return nil, fmt.Errorf("invalid identity pubkey: %w", err)
	}

	return btcec.ParsePubKey(keyBytes)
}

// DeriveSharedKey performs ECDH between the node's identity key and the
// given ephemeral key, returning the sha256 of the compressed shared
// point. This lets us unwrap onions addressed to the node without ever
// holding its private key.
func (c *Client) DeriveSharedKey(ctx context.Context,
	ephemeral *btcec.PublicKey) ([32]byte, error) {

	var shared [32]byte

	resp, err := c.signer.DeriveSharedKey(ctx, &signrpc.SharedKeyRequest{
		EphemeralPubkey: ephemeral.SerializeCompressed(),
	})
	if err != nil {
		return shared, fmt.Errorf("unable to derive shared key: %w",
			err)
	}

	if len(resp.SharedKey) != 32 {
		return shared, fmt.Errorf("unexpected shared key length %d",
			len(resp.SharedKey))
	}

	copy(shared[:], resp.SharedKey)

	return shared, nil
}

// SendCustomMessage delivers a raw peer message to a connected peer.
func (c *Client) SendCustomMessage(ctx context.Context,
	peer *btcec.PublicKey, msgType uint32, data []byte) error {

	_, err := c.lightning.SendCustomMessage(
		ctx, &lnrpc.SendCustomMessageRequest{
			Peer: peer.SerializeCompressed(),
			Type: msgType,
			Data: data,
		},
	)

	return err
}

// SubscribeCustomMessages opens a stream of incoming peer messages of
// non-standard types.
func (c *Client) SubscribeCustomMessages(ctx context.Context) (
	lnrpc.Lightning_SubscribeCustomMessagesClient, error) {

	return c.lightning.SubscribeCustomMessages(
		ctx, &lnrpc.SubscribeCustomMessagesRequest{},
	)
}

// ConnectPeer ensures we have a transport to the given peer, making an
// outbound connection if needed. Already-connected errors are swallowed.
func (c *Client) ConnectPeer(ctx context.Context, peer *btcec.PublicKey,
	host string) error {

	_, err := c.lightning.ConnectPeer(ctx, &lnrpc.ConnectPeerRequest{
		Addr: &lnrpc.LightningAddress{
			Pubkey: hex.EncodeToString(
				peer.SerializeCompressed(),
			),
			Host: host,
		},
	})

	return err
}

// SendPayment pays a decoded invoice over one of its blinded paths. It
// queries for a route into the path and dispatches a single htlc along
// it, blocking until the attempt resolves.
func (c *Client) SendPayment(ctx context.Context, invoice *bolt12.Invoice,
	amount lnwire.MilliSatoshi) (lntypes.Preimage, error) {

	var zero lntypes.Preimage

	blindedPaths, err := marshalBlindedPaymentPaths(invoice.PaymentPaths)
	if err != nil {
		return zero, err
	}

	routes, err := c.lightning.QueryRoutes(
		ctx, &lnrpc.QueryRoutesRequest{
			AmtMsat:             int64(amount),
			BlindedPaymentPaths: blindedPaths,
			FeeLimit: &lnrpc.FeeLimit{
				Limit: &lnrpc.FeeLimit_FixedMsat{
					FixedMsat: int64(feeLimitFor(amount)),
				},
			},
		},
	)
	if err != nil {
		return zero, fmt.Errorf("unable to find route: %w", err)
	}

	if len(routes.Routes) == 0 {
		return zero, fmt.Errorf("no route to invoice destination")
	}

	attempt, err := c.router.SendToRouteV2(
		ctx, &routerrpc.SendToRouteRequest{
			PaymentHash: invoice.PaymentHash[:],
			Route:       routes.Routes[0],
		},
	)
	if err != nil {
		return zero, fmt.Errorf("unable to send payment: %w", err)
	}

	if attempt.Status != lnrpc.HTLCAttempt_SUCCEEDED {
		if attempt.Failure != nil {
			return zero, fmt.Errorf("payment failed: %v",
				attempt.Failure.Code)
		}

		return zero, fmt.Errorf("payment did not succeed: %v",
			attempt.Status)
	}

	preimage, err := lntypes.MakePreimage(attempt.Preimage)
	if err != nil {
		return zero, fmt.Errorf("invalid preimage in settled "+
			"attempt: %w", err)
	}

	return preimage, nil
}

// feeLimitFor bounds routing fees at one percent of the payment amount,
// with a small floor for tiny payments.
func feeLimitFor(amount lnwire.MilliSatoshi) lnwire.MilliSatoshi {
	limit := amount / 100
	if limit < minFeeLimitMsat {
		limit = minFeeLimitMsat
	}

	return limit
}

// marshalBlindedPaymentPaths converts decoded payment paths to their rpc
// form for route queries.
func marshalBlindedPaymentPaths(
	paths []*bolt12.PaymentPath) ([]*lnrpc.BlindedPaymentPath, error) {

	rpcPaths := make([]*lnrpc.BlindedPaymentPath, 0, len(paths))
	for _, path := range paths {
		intro := path.Path.IntroductionNode
		if intro == nil || intro.NodeID == nil {
			return nil, fmt.Errorf("introduction node must be " +
				"identified by public key to route to it")
		}

		hops := make([]*lnrpc.BlindedHop, 0, len(path.Path.Hops))
		for _, hop := range path.Path.Hops {
			hops = append(hops, &lnrpc.BlindedHop{
				BlindedNode: hop.BlindedNodeID.
					SerializeCompressed(),
				EncryptedData: hop.EncryptedPayload,
			})
		}

		rpcPaths = append(rpcPaths, &lnrpc.BlindedPaymentPath{
			BlindedPath: &lnrpc.BlindedPath{
				IntroductionNode: intro.NodeID.
					SerializeCompressed(),
				BlindingPoint: path.Path.BlindingPoint.
					SerializeCompressed(),
				BlindedHops: hops,
			},
			BaseFeeMsat: uint64(path.PayInfo.FeeBaseMsat),
			ProportionalFeeRate: path.PayInfo.
				FeeProportionalMillionths,
			TotalCltvDelta: uint32(path.PayInfo.CltvExpiryDelta),
			HtlcMinMsat:    uint64(path.PayInfo.HTLCMinimumMsat),
			HtlcMaxMsat:    uint64(path.PayInfo.HTLCMaximumMsat),
		})
	}

	return rpcPaths, nil
}

// Network maps the chain lnd reports to its chain parameters.
func Network(info *lnrpc.GetInfoResponse) (*chaincfg.Params, error) {
	if len(info.Chains) == 0 {
		return nil, fmt.Errorf("lnd reported no chains")
	}

	network := info.Chains[0].Network
	switch network {
	case "mainnet":
		return &chaincfg.MainNetParams, nil

	case "testnet":
		return &chaincfg.TestNet3Params, nil

	case "regtest":
		return &chaincfg.RegressionNetParams, nil

	case "simnet":
		return &chaincfg.SimNetParams, nil

	case "signet":
		return &chaincfg.SigNetParams, nil

	default:
		return nil, fmt.Errorf("unknown network: %v", network)
	}
}
