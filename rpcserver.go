package lndk

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/niteshbalusu11/lndk/bolt12"
	"github.com/niteshbalusu11/lndk/lndclient"
	"github.com/niteshbalusu11/lndk/lndkrpc"
	"github.com/niteshbalusu11/lndk/offers"
	"github.com/niteshbalusu11/lndk/onionmsg"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// lndConn is the slice of the lnd client the rpc server drives. It is
// satisfied by lndclient.Client and pulled out so tests can stand in a fake
// node.
type lndConn interface {
	offers.NodeClient
	onionmsg.NodeConn

	// GetInfo returns the node's basic info, doubling as a liveness
	// probe for the fresh connection.
	GetInfo(ctx context.Context) (*lnrpc.GetInfoResponse, error)

	// Close tears the connection down.
	Close() error
}

// connectFunc dials an lnd node with per-request credentials.
type connectFunc func(cfg *lndclient.Config) (lndConn, error)

// rpcServer implements the Offers gRPC service. Each authenticated call
// opens its own connection to lnd using the macaroon the caller attached,
// so the daemon itself never stores credentials.
type rpcServer struct {
	lndkrpc.UnimplementedOffersServer

	cfg     *Config
	handler *offers.Handler
	connect connectFunc

	// newMessenger builds the onion messenger speaking through a
	// connection, swappable in tests.
	newMessenger func(conn lndConn) offers.Messenger
}

// newRPCServer creates the Offers service around the given offer handler.
func newRPCServer(cfg *Config, handler *offers.Handler) *rpcServer {
	return &rpcServer{
		cfg:     cfg,
		handler: handler,
		connect: func(lndCfg *lndclient.Config) (lndConn, error) {
			return lndclient.Connect(lndCfg)
		},
		newMessenger: func(conn lndConn) offers.Messenger {
			return onionmsg.NewMessenger(conn)
		},
	}
}

// PayOffer fetches an invoice for the offer over onion messages and pays
// it, returning the preimage once the payment settles.
func (s *rpcServer) PayOffer(ctx context.Context,
	req *lndkrpc.PayOfferRequest) (*lndkrpc.PayOfferResponse, error) {

	rpcsLog.Infof("[PayOffer] received request")

	client, params, err := s.connectClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	offer, err := decodeOffer(req.Offer, params)
	if err != nil {
		return nil, err
	}

	preimage, err := s.handler.PayOffer(ctx, offers.PayOfferParams{
		GetInvoiceParams: offers.GetInvoiceParams{
			Offer:           offer,
			AmountMsats:     req.Amount,
			PayerNote:       req.PayerNote,
			ResponseTimeout: responseTimeout(req.ResponseInvoiceTimeout),
			Messenger:       s.newMessenger(client),
		},
		Node: client,
	})
	if err != nil {
		return nil, marshalOfferError(err)
	}

	rpcsLog.Infof("[PayOffer] payment succeeded")

	return &lndkrpc.PayOfferResponse{
		PaymentPreimage: preimage.String(),
	}, nil
}

// GetInvoice fetches an invoice for the offer without paying it. The
// returned invoice can be handed back to PayInvoice later.
func (s *rpcServer) GetInvoice(ctx context.Context,
	req *lndkrpc.GetInvoiceRequest) (*lndkrpc.GetInvoiceResponse, error) {

	rpcsLog.Infof("[GetInvoice] received request")

	client, params, err := s.connectClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	offer, err := decodeOffer(req.Offer, params)
	if err != nil {
		return nil, err
	}

	invoice, paymentID, err := s.handler.GetInvoice(
		ctx, offers.GetInvoiceParams{
			Offer:           offer,
			AmountMsats:     req.Amount,
			PayerNote:       req.PayerNote,
			ResponseTimeout: responseTimeout(req.ResponseInvoiceTimeout),
			Messenger:       s.newMessenger(client),
		},
	)
	if err != nil {
		return nil, marshalOfferError(err)
	}

	invoiceHex, err := encodeInvoiceHex(invoice)

	// The fetched invoice has been marshalled, so the attempt no longer
	// needs to be tracked. Callers that want to pay it do so through
	// PayInvoice, which runs its own attempt.
	s.handler.RemoveActivePayment(paymentID)

	if err != nil {
		return nil, err
	}

	rpcsLog.Infof("[GetInvoice] invoice fetch succeeded")

	return &lndkrpc.GetInvoiceResponse{
		InvoiceHexStr:   invoiceHex,
		InvoiceContents: lndkrpc.CreateInvoiceContents(invoice),
	}, nil
}

// DecodeInvoice decodes a hex encoded invoice. It needs neither a macaroon
// nor a connection to lnd.
func (s *rpcServer) DecodeInvoice(_ context.Context,
	req *lndkrpc.DecodeInvoiceRequest) (*lndkrpc.Bolt12InvoiceContents,
	error) {

	rpcsLog.Infof("[DecodeInvoice] received request")

	invoice, err := bolt12.DecodeInvoiceHex(req.Invoice)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument,
			"The provided invoice was invalid. Please provide a "+
				"valid invoice in hex format. Error: %v", err)
	}

	return lndkrpc.CreateInvoiceContents(invoice), nil
}

// PayInvoice pays an invoice previously fetched with GetInvoice.
func (s *rpcServer) PayInvoice(ctx context.Context,
	req *lndkrpc.PayInvoiceRequest) (*lndkrpc.PayInvoiceResponse, error) {

	rpcsLog.Infof("[PayInvoice] received request")

	client, _, err := s.connectClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	invoice, err := bolt12.DecodeInvoiceHex(req.Invoice)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument,
			"The provided invoice was invalid. Please provide a "+
				"valid invoice in hex format. Error: %v", err)
	}

	// A fresh payment id is minted for the attempt, callers paying an
	// invoice they fetched earlier already had that attempt released
	// when GetInvoice returned.
	preimage, err := s.handler.PayInvoice(
		ctx, client, invoice, req.Amount, offers.PaymentID{},
	)
	if err != nil {
		return nil, marshalOfferError(err)
	}

	rpcsLog.Infof("[PayInvoice] payment succeeded")

	return &lndkrpc.PayInvoiceResponse{
		PaymentPreimage: preimage.String(),
	}, nil
}

// connectClient authenticates the request and opens a connection to lnd
// with the caller's macaroon, returning the connected client and the chain
// parameters the node is running on.
func (s *rpcServer) connectClient(ctx context.Context) (lndConn,
	*chaincfg.Params, error) {

	macaroonHex, err := extractMacaroon(ctx)
	if err != nil {
		return nil, nil, err
	}

	client, err := s.connect(&lndclient.Config{
		Host:        s.cfg.Lnd.Host,
		TLSCertPath: s.cfg.Lnd.TLSCertPath,
		MacaroonHex: macaroonHex,
	})
	if err != nil {
		return nil, nil, status.Errorf(codes.Unavailable,
			"Couldn't connect to lnd: %v", err)
	}

	// The connection is lazy, probe it so that an unreachable or
	// misconfigured node surfaces here rather than mid-flow.
	info, err := client.GetInfo(ctx)
	if err != nil {
		client.Close()
		return nil, nil, status.Errorf(codes.Unavailable,
			"Couldn't connect to lnd: %v", err)
	}

	params, err := lndclient.Network(info)
	if err != nil {
		client.Close()
		return nil, nil, status.Errorf(codes.Internal,
			"Internal error: %v", err)
	}

	return client, params, nil
}

// extractMacaroon pulls the hex encoded lnd macaroon out of the request
// metadata. The value itself must never make it into logs or error
// messages.
func extractMacaroon(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated,
			"No LND macaroon provided: Make sure to provide "+
				"macaroon in request metadata")
	}

	values := md.Get("macaroon")
	if len(values) == 0 {
		return "", status.Error(codes.Unauthenticated,
			"No LND macaroon provided: Make sure to provide "+
				"macaroon in request metadata")
	}

	macaroonHex := values[0]
	if _, err := hex.DecodeString(macaroonHex); err != nil {
		return "", status.Error(codes.InvalidArgument,
			"Invalid macaroon provided: expected hex encoding")
	}

	return macaroonHex, nil
}

// decodeOffer parses a bech32 offer string and checks it is payable on the
// chain the backing node runs on.
func decodeOffer(offerStr string, params *chaincfg.Params) (*bolt12.Offer,
	error) {

	offer, err := bolt12.DecodeOffer(offerStr)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument,
			"The provided offer was invalid. Please provide a "+
				"valid offer in bech32 format, i.e. starting "+
				"with 'lno'. Error: %v", err)
	}

	if !offer.SupportsChain(*params.GenesisHash) {
		return nil, status.Errorf(codes.InvalidArgument,
			"Offer cannot be paid on network %v", params.Name)
	}

	return offer, nil
}

// encodeInvoiceHex serializes an invoice back into the hex form the RPC
// surface hands out.
func encodeInvoiceHex(invoice *bolt12.Invoice) (string, error) {
	raw, err := invoice.Encode()
	if err != nil {
		return "", status.Errorf(codes.Internal,
			"Error serializing invoice: %v", err)
	}

	return hex.EncodeToString(raw), nil
}

// responseTimeout converts the caller's timeout in seconds into a duration,
// zero meaning the handler's default.
func responseTimeout(seconds uint32) time.Duration {
	return time.Duration(seconds) * time.Second
}

// marshalOfferError maps offer flow failures onto gRPC status codes. Only
// caller mistakes surface as InvalidArgument, everything else (including a
// recipient that never answered the invoice request) is reported as an
// internal failure.
func marshalOfferError(err error) error {
	switch {
	case errors.Is(err, offers.ErrInvalidAmount),
		errors.Is(err, offers.ErrInvalidCurrency),
		errors.Is(err, offers.ErrPaymentActive):

		return status.Error(codes.InvalidArgument, err.Error())

	default:
		return status.Errorf(codes.Internal, "Internal error: %v", err)
	}
}
