package onionmsg

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	sphinx "github.com/lightningnetwork/lightning-onion"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/niteshbalusu11/lndk/bolt12"
	"github.com/niteshbalusu11/lndk/offers"
)

var (
	// ErrNoReply is returned when no invoice arrived before the
	// request's deadline.
	ErrNoReply = errors.New("no invoice received before timeout")

	// ErrChannelIntroduction is returned for blinded paths whose
	// introduction node is referenced by channel rather than by key,
	// which we cannot deliver to without graph access.
	ErrChannelIntroduction = errors.New("blinded path introduction " +
		"node referenced by channel is not supported")
)

// NodeConn is the slice of a node the messenger needs: peer message
// plumbing plus ECDH against the node's identity key, so that onions
// addressed to the node can be unwrapped without its private key ever
// leaving it.
type NodeConn interface {
	// IdentityPubKey returns the node's identity key.
	IdentityPubKey(ctx context.Context) (*btcec.PublicKey, error)

	// DeriveSharedKey performs ECDH between the node's identity key
	// and an ephemeral key, returning sha256 of the shared point.
	DeriveSharedKey(ctx context.Context,
		ephemeral *btcec.PublicKey) ([32]byte, error)

	// SendCustomMessage delivers a raw peer message.
	SendCustomMessage(ctx context.Context, peer *btcec.PublicKey,
		msgType uint32, data []byte) error

	// SubscribeCustomMessages streams incoming peer messages of
	// non-standard types.
	SubscribeCustomMessages(ctx context.Context) (
		lnrpc.Lightning_SubscribeCustomMessagesClient, error)
}

// Messenger exchanges BOLT12 artifacts with offer issuers over onion
// messages carried as custom peer messages through the attached node.
type Messenger struct {
	node NodeConn
}

// NewMessenger creates a Messenger speaking through the given node.
func NewMessenger(node NodeConn) *Messenger {
	return &Messenger{node: node}
}

// ResolveDestination determines where an offer's issuer can be reached:
// the first blinded path when the offer carries any, the issuer's node id
// otherwise.
func (m *Messenger) ResolveDestination(_ context.Context,
	offer *bolt12.Offer) (*offers.Destination, error) {

	if len(offer.Paths) > 0 {
		path := offer.Paths[0]
		if path.IntroductionNode == nil {
			return nil, fmt.Errorf("blinded path missing " +
				"introduction node")
		}

		return &offers.Destination{BlindedPath: path}, nil
	}

	if offer.IssuerID == nil {
		return nil, bolt12.ErrNoIssuer
	}

	return &offers.Destination{NodeID: offer.IssuerID}, nil
}

// FetchInvoice delivers an invoice request to the destination and waits
// for the invoice to come back over our reply path.
func (m *Messenger) FetchInvoice(ctx context.Context,
	req *offers.FetchInvoiceRequest) (*bolt12.Invoice, error) {

	ctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	nodeID, err := m.node.IdentityPubKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to get node identity: %w", err)
	}

	// Sign-less transient payer key. The issuer ties the invoice to the
	// request through the echoed metadata.
	payerKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	invReq := &bolt12.InvoiceRequest{
		Offer:       req.Offer,
		Metadata:    req.Metadata,
		AmountMsats: req.AmountMsats,
		PayerID:     payerKey.PubKey(),
		PayerNote:   req.PayerNote,
	}
	invReqBytes, err := invReq.Encode()
	if err != nil {
		return nil, fmt.Errorf("unable to encode invoice request: "+
			"%w", err)
	}

	replyPath, err := m.buildReplyPath(nodeID, req.Metadata)
	if err != nil {
		return nil, err
	}

	var replyPathBuf bytes.Buffer
	err = bolt12.EncodeBlindedPath(&replyPathBuf, replyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to encode reply path: %w", err)
	}

	peer, destPath, err := deliveryPath(req.Destination)
	if err != nil {
		return nil, err
	}

	sphinxPath, err := sphinxPathFromBlinded(destPath, &messagePayload{
		ReplyPath:      replyPathBuf.Bytes(),
		InvoiceRequest: invReqBytes,
	})
	if err != nil {
		return nil, err
	}

	onionKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	packet, err := sphinx.NewOnionPacket(
		sphinxPath, onionKey, nil, sphinx.DeterministicPacketFiller,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to build onion: %w", err)
	}

	var onionBuf bytes.Buffer
	if err := packet.Encode(&onionBuf); err != nil {
		return nil, fmt.Errorf("unable to encode onion: %w", err)
	}

	msgData, err := encodeOnionMessage(
		destPath.BlindingPoint, onionBuf.Bytes(),
	)
	if err != nil {
		return nil, err
	}

	// Subscribe before sending so the reply cannot slip past us.
	stream, err := m.node.SubscribeCustomMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to subscribe to peer "+
			"messages: %w", err)
	}

	log.Debugf("Sending invoice request onion to peer %x",
		peer.SerializeCompressed())

	err = m.node.SendCustomMessage(ctx, peer, OnionMessageType, msgData)
	if err != nil {
		return nil, fmt.Errorf("unable to send onion message: %w",
			err)
	}

	return m.awaitInvoice(ctx, stream, req.Metadata)
}

// buildReplyPath constructs a single hop blinded path terminating at our
// own node, tagged with the request metadata as its path id.
func (m *Messenger) buildReplyPath(nodeID *btcec.PublicKey,
	pathID []byte) (*bolt12.BlindedPath, error) {

	routeData, err := encodeFinalRouteData(pathID)
	if err != nil {
		return nil, err
	}

	sessionKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	path, err := sphinx.BuildBlindedPath(
		sessionKey, []*sphinx.HopInfo{
			{
				NodePub:   nodeID,
				PlainText: routeData,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to build reply path: %w", err)
	}

	return blindedFromSphinx(path), nil
}

// deliveryPath turns a resolved destination into the peer to hand the
// onion to and the blinded path to wrap it for. Direct node destinations
// are wrapped in a single hop path we blind ourselves, since onion
// messages are always blinded on the wire.
func deliveryPath(dest *offers.Destination) (*btcec.PublicKey,
	*bolt12.BlindedPath, error) {

	if dest.BlindedPath != nil {
		intro := dest.BlindedPath.IntroductionNode
		if intro.NodeID == nil {
			return nil, nil, ErrChannelIntroduction
		}

		return intro.NodeID, dest.BlindedPath, nil
	}

	sessionKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, err
	}

	routeData, err := encodeFinalRouteData(nil)
	if err != nil {
		return nil, nil, err
	}

	path, err := sphinx.BuildBlindedPath(
		sessionKey, []*sphinx.HopInfo{
			{
				NodePub:   dest.NodeID,
				PlainText: routeData,
			},
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to blind destination: "+
			"%w", err)
	}

	return dest.NodeID, blindedFromSphinx(path), nil
}

// awaitInvoice consumes the peer message stream until an onion message
// unwraps to an invoice for our path id, the stream ends, or the context
// expires.
func (m *Messenger) awaitInvoice(ctx context.Context,
	stream lnrpc.Lightning_SubscribeCustomMessagesClient,
	pathID []byte) (*bolt12.Invoice, error) {

	msgs := make(chan *lnrpc.CustomMessage)
	errs := make(chan error, 1)

	go func() {
		for {
			msg, err := stream.Recv()
			if err != nil {
				errs <- err
				return
			}

			select {
			case msgs <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case msg := <-msgs:
			if msg.Type != OnionMessageType {
				continue
			}

			invoice, err := m.handleReply(ctx, msg.Data, pathID)
			if err != nil {
				log.Debugf("Ignoring onion message from "+
					"%x: %v", msg.Peer, err)
				continue
			}

			return invoice, nil

		case err := <-errs:
			if ctx.Err() != nil {
				return nil, ErrNoReply
			}

			return nil, fmt.Errorf("peer message stream ended: "+
				"%w", err)

		case <-ctx.Done():
			return nil, ErrNoReply
		}
	}
}

// handleReply unwraps one onion message and extracts the invoice, if the
// message is addressed to us and carries the path id of our request.
func (m *Messenger) handleReply(ctx context.Context, data []byte,
	pathID []byte) (*bolt12.Invoice, error) {

	pathKey, onionBlob, err := decodeOnionMessage(data)
	if err != nil {
		return nil, err
	}

	var packet sphinx.OnionPacket
	if err := packet.Decode(bytes.NewReader(onionBlob)); err != nil {
		return nil, fmt.Errorf("invalid onion packet: %w", err)
	}

	nodeID, err := m.node.IdentityPubKey(ctx)
	if err != nil {
		return nil, err
	}

	router := sphinx.NewRouter(
		&nodeKeyECDH{ctx: ctx, node: m.node, pub: nodeID},
		sphinx.NewMemoryReplayLog(),
	)
	if err := router.Start(); err != nil {
		return nil, err
	}
	defer router.Stop()

	processed, err := router.ProcessOnionPacket(
		&packet, nil, 0, sphinx.WithBlindingPoint(pathKey),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to process onion: %w", err)
	}

	if processed.Action != sphinx.ExitNode {
		return nil, fmt.Errorf("onion message not addressed to us")
	}

	payload, err := decodeMessagePayload(processed.Payload.Payload)
	if err != nil {
		return nil, err
	}

	// The reply must come through our reply path, whose final hop data
	// carries the request's path id.
	decrypted, err := router.DecryptBlindedHopData(
		pathKey, payload.EncryptedData,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to decrypt hop data: %w", err)
	}

	gotPathID, err := decodeFinalRouteDataPathID(decrypted)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(gotPathID, pathID) {
		return nil, fmt.Errorf("reply path id mismatch")
	}

	if len(payload.InvoiceError) > 0 {
		return nil, fmt.Errorf("issuer rejected invoice request: %s",
			payload.InvoiceError)
	}

	if len(payload.Invoice) == 0 {
		return nil, fmt.Errorf("onion message carries no invoice")
	}

	return bolt12.DecodeInvoice(payload.Invoice)
}

// nodeKeyECDH adapts the node connection's shared key derivation to the
// sphinx router's key interface.
type nodeKeyECDH struct {
	ctx  context.Context
	node NodeConn
	pub  *btcec.PublicKey
}

// PubKey returns the node's identity key.
func (n *nodeKeyECDH) PubKey() *btcec.PublicKey {
	return n.pub
}

// ECDH derives the shared secret through the node.
func (n *nodeKeyECDH) ECDH(pub *btcec.PublicKey) ([32]byte, error) {
	return n.node.DeriveSharedKey(n.ctx, pub)
}
