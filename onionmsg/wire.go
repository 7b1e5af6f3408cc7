package onionmsg

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	sphinx "github.com/lightningnetwork/lightning-onion"
	"github.com/lightningnetwork/lnd/tlv"
	"github.com/niteshbalusu11/lndk/bolt12"
)

// OnionMessageType is the custom peer message type onion messages travel
// over.
const OnionMessageType uint32 = 513

// Onion message payload TLV types. The even low types are routing level,
// the 64+ range carries the BOLT12 artifacts.
const (
	replyPathType      tlv.Type = 2
	encryptedDataType  tlv.Type = 4
	invoiceRequestType tlv.Type = 64
	invoiceType        tlv.Type = 66
	invoiceErrorType   tlv.Type = 68
)

// pathIDType is the type of the path id record inside the encrypted data
// of a reply path's final hop.
const pathIDType tlv.Type = 6

// messagePayload is the decoded per-hop payload of an onion message. All
// fields are raw TLV values; higher layers decode the BOLT12 artifacts.
type messagePayload struct {
	// ReplyPath is a wire-encoded blinded path the recipient can
	// answer over.
	ReplyPath []byte

	// EncryptedData is the hop's encrypted routing data.
	EncryptedData []byte

	// InvoiceRequest is a wire-encoded BOLT12 invoice request.
	InvoiceRequest []byte

	// Invoice is a wire-encoded BOLT12 invoice.
	Invoice []byte

	// InvoiceError is an error the recipient raised about our request.
	InvoiceError []byte
}

// encode serializes the payload's present records as a TLV stream.
func (p *messagePayload) encode() ([]byte, error) {
	var records []tlv.Record

	if len(p.ReplyPath) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			replyPathType, &p.ReplyPath,
		))
	}

	if len(p.EncryptedData) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			encryptedDataType, &p.EncryptedData,
		))
	}

	if len(p.InvoiceRequest) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			invoiceRequestType, &p.InvoiceRequest,
		))
	}

	if len(p.Invoice) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			invoiceType, &p.Invoice,
		))
	}

	if len(p.InvoiceError) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			invoiceErrorType, &p.InvoiceError,
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

// decodeMessagePayload parses a hop payload TLV stream.
func decodeMessagePayload(data []byte) (*messagePayload, error) {
	var payload messagePayload

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(replyPathType, &payload.ReplyPath),
		tlv.MakePrimitiveRecord(
			encryptedDataType, &payload.EncryptedData,
		),
		tlv.MakePrimitiveRecord(
			invoiceRequestType, &payload.InvoiceRequest,
		),
		tlv.MakePrimitiveRecord(invoiceType, &payload.Invoice),
		tlv.MakePrimitiveRecord(
			invoiceErrorType, &payload.InvoiceError,
		),
	)
	if err != nil {
		return nil, err
	}

	err = stream.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid onion message payload: %w",
			err)
	}

	return &payload, nil
}

// encodeOnionMessage frames an onion packet for transport as a custom
// peer message: path key, u16 length, onion blob.
func encodeOnionMessage(pathKey *btcec.PublicKey,
	onionBlob []byte) ([]byte, error) {

	if len(onionBlob) > 65535 {
		return nil, fmt.Errorf("onion blob of %d bytes exceeds "+
			"maximum", len(onionBlob))
	}

	var buf bytes.Buffer
	buf.Write(pathKey.SerializeCompressed())

	var lenBytes [2]byte
	binary.BigEndian.PutUint16(lenBytes[:], uint16(len(onionBlob)))
	buf.Write(lenBytes[:])
	buf.Write(onionBlob)

	return buf.Bytes(), nil
}

// decodeOnionMessage parses the custom message framing back into the path
// key and onion blob.
func decodeOnionMessage(data []byte) (*btcec.PublicKey, []byte, error) {
	if len(data) < 33+2 {
		return nil, nil, fmt.Errorf("onion message of %d bytes too "+
			"short", len(data))
	}

	pathKey, err := btcec.ParsePubKey(data[:33])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid path key: %w", err)
	}

	blobLen := binary.BigEndian.Uint16(data[33:35])
	if len(data) != 35+int(blobLen) {
		return nil, nil, fmt.Errorf("onion message length %d does "+
			"not match declared %d", len(data)-35, blobLen)
	}

	return pathKey, data[35:], nil
}

// encodeFinalRouteData builds the plaintext routing data for the final
// hop of a path we construct ourselves: just a path id to recognize
// replies by.
func encodeFinalRouteData(pathID []byte) ([]byte, error) {
	var records []tlv.Record
	if len(pathID) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			pathIDType, &pathID,
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

// decodeFinalRouteDataPathID extracts the path id from decrypted final
// hop routing data.
func decodeFinalRouteDataPathID(data []byte) ([]byte, error) {
	var pathID []byte

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(pathIDType, &pathID),
	)
	if err != nil {
		return nil, err
	}

	if err := stream.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("invalid final hop data: %w", err)
	}

	return pathID, nil
}

// blindedFromSphinx converts a freshly built sphinx blinded path into the
// wire form carried inside offers and reply paths.
func blindedFromSphinx(path *sphinx.BlindedPath) *bolt12.BlindedPath {
	hops := make([]*bolt12.BlindedHop, len(path.BlindedHops))
	for i, hop := range path.BlindedHops {
		hops[i] = &bolt12.BlindedHop{
			BlindedNodeID:    hop.BlindedNodePub,
			EncryptedPayload: hop.CipherText,
		}
	}

	return &bolt12.BlindedPath{
		IntroductionNode: &bolt12.IntroductionNode{
			NodeID: path.IntroductionPoint,
		},
		BlindingPoint: path.BlindingPoint,
		Hops:          hops,
	}
}

// sphinxPathFromBlinded converts a blinded path into a sphinx path whose
// per-hop payloads carry each hop's encrypted data, with the final hop
// additionally carrying the given payload fields. Onion messages are
// fully blinded, so the blinded node ids are used for every hop, the
// introduction node included.
func sphinxPathFromBlinded(path *bolt12.BlindedPath,
	final *messagePayload) (*sphinx.PaymentPath, error) {

	numHops := len(path.Hops)
	if numHops == 0 {
		return nil, fmt.Errorf("blinded path has no hops")
	}
	if numHops > sphinx.NumMaxHops {
		return nil, fmt.Errorf("blinded path has %d hops, maximum "+
			"is %d", numHops, sphinx.NumMaxHops)
	}

	var sphinxPath sphinx.PaymentPath
	for i, hop := range path.Hops {
		payload := &messagePayload{
			EncryptedData: hop.EncryptedPayload,
		}

		if i == numHops-1 {
			payload.ReplyPath = final.ReplyPath
			payload.InvoiceRequest = final.InvoiceRequest
			payload.Invoice = final.Invoice
			payload.InvoiceError = final.InvoiceError
		}

		encoded, err := payload.encode()
		if err != nil {
			return nil, fmt.Errorf("hop %d payload: %w", i, err)
		}

		sphinxPath[i] = sphinx.OnionHop{
			NodePub: *hop.BlindedNodeID,
			HopPayload: sphinx.HopPayload{
				Type:    sphinx.PayloadTLV,
				Payload: encoded,
			},
		}
	}

	return &sphinxPath, nil
}
