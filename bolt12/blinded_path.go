package bolt12

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/tlv"
)

// Direction identifies which end of a channel the introduction node sits on
// when it is referenced by short channel id rather than by public key.
type Direction uint8

const (
	// DirectionNodeOne is the node with the numerically lesser public key
	// of the referenced channel.
	DirectionNodeOne Direction = 0

	// DirectionNodeTwo is the node with the numerically greater public
	// key of the referenced channel.
	DirectionNodeTwo Direction = 1
)

// DirectedShortChannelID references an introduction node by one of its
// channels rather than by its public key.
type DirectedShortChannelID struct {
	Direction Direction
	SCID      lnwire.ShortChannelID
}

// IntroductionNode is the entry point of a blinded path. Exactly one of
// NodeID or ShortChannelID is set, mirroring the sciddir_or_pubkey wire
// encoding which admits no third state.
type IntroductionNode struct {
	NodeID         *btcec.PublicKey
	ShortChannelID *DirectedShortChannelID
}

// BlindedHop is a single hop inside a blinded path. The encrypted payload is
// opaque to everyone but the hop itself and is carried byte for byte.
type BlindedHop struct {
	BlindedNodeID    *btcec.PublicKey
	EncryptedPayload []byte
}

// BlindedPath is a route whose hops beyond the introduction node are
// cryptographically obscured from the sender.
type BlindedPath struct {
	IntroductionNode *IntroductionNode
	BlindingPoint    *btcec.PublicKey
	Hops             []*BlindedHop
}

// BlindedPayInfo carries the aggregate fee and limit metadata needed to pay
// over the blinded path it accompanies.
type BlindedPayInfo struct {
	FeeBaseMsat               uint32
	FeeProportionalMillionths uint32
	CltvExpiryDelta           uint16
	HTLCMinimumMsat           lnwire.MilliSatoshi
	HTLCMaximumMsat           lnwire.MilliSatoshi
	Features                  []byte
}

// PaymentPath pairs a blinded path with the pay info that applies to it. An
// invoice carries the two halves in separate records whose lengths must
// match; decoding zips them back together.
type PaymentPath struct {
	PayInfo *BlindedPayInfo
	Path    *BlindedPath
}

// sciddir_or_pubkey discriminator values. A leading byte of 0 or 1 selects
// the directed short channel id form, 2 or 3 is the parity prefix of a
// compressed public key.
const (
	scidDirNodeOne = 0x00
	scidDirNodeTwo = 0x01
)

func writePublicKey(w io.Writer, pub *btcec.PublicKey) error {
	if pub == nil {
		return fmt.Errorf("cannot encode nil public key")
	}

	_, err := w.Write(pub.SerializeCompressed())
	return err
}

func readPublicKey(r io.Reader) (*btcec.PublicKey, error) {
	var keyBytes [33]byte
	if _, err := io.ReadFull(r, keyBytes[:]); err != nil {
		return nil, err
	}

	return btcec.ParsePubKey(keyBytes[:])
}

func introductionNodeSize(intro *IntroductionNode) uint64 {
	if intro.NodeID != nil {
		return 33
	}

	return 9
}

func encodeIntroductionNode(w io.Writer, intro *IntroductionNode) error {
	switch {
	case intro == nil:
		return fmt.Errorf("blinded path missing introduction node")

	case intro.NodeID != nil && intro.ShortChannelID != nil:
		return fmt.Errorf("introduction node has both node id and " +
			"short channel id set")

	case intro.NodeID != nil:
		return writePublicKey(w, intro.NodeID)

	case intro.ShortChannelID != nil:
		var scidBytes [9]byte
		scidBytes[0] = byte(intro.ShortChannelID.Direction)
		binary.BigEndian.PutUint64(
			scidBytes[1:], intro.ShortChannelID.SCID.ToUint64(),
		)

		_, err := w.Write(scidBytes[:])
		return err

	default:
		return fmt.Errorf("introduction node has neither node id " +
			"nor short channel id set")
	}
}

func decodeIntroductionNode(r io.Reader) (*IntroductionNode, error) {
	var first [1]byte
	if _, err := io.ReadFull(r, first[:]); err != nil {
		return nil, err
	}

	switch first[0] {
	case scidDirNodeOne, scidDirNodeTwo:
		var scidBytes [8]byte
		if _, err := io.ReadFull(r, scidBytes[:]); err != nil {
			return nil, err
		}

		return &IntroductionNode{
			ShortChannelID: &DirectedShortChannelID{
				Direction: Direction(first[0]),
				SCID: lnwire.NewShortChanIDFromInt(
					binary.BigEndian.Uint64(scidBytes[:]),
				),
			},
		}, nil

	case 0x02, 0x03:
		var keyBytes [33]byte
		keyBytes[0] = first[0]
		if _, err := io.ReadFull(r, keyBytes[1:]); err != nil {
			return nil, err
		}

		pub, err := btcec.ParsePubKey(keyBytes[:])
		if err != nil {
			return nil, err
		}

		return &IntroductionNode{NodeID: pub}, nil

	default:
		return nil, fmt.Errorf("invalid introduction node "+
			"discriminator: %x", first[0])
	}
}

func blindedPathSize(p *BlindedPath) uint64 {
	size := introductionNodeSize(p.IntroductionNode) + 33 + 1
	for _, hop := range p.Hops {
		size += 33 + 2 + uint64(len(hop.EncryptedPayload))
	}

	return size
}

func encodeBlindedPath(w io.Writer, p *BlindedPath) error {
	if err := encodeIntroductionNode(w, p.IntroductionNode); err != nil {
		return err
	}

	if err := writePublicKey(w, p.BlindingPoint); err != nil {
		return err
	}

	if len(p.Hops) > 255 {
		return fmt.Errorf("blinded path has %d hops, maximum is 255",
			len(p.Hops))
	}

	if _, err := w.Write([]byte{byte(len(p.Hops))}); err != nil {
		return err
	}

	for _, hop := range p.Hops {
		if err := writePublicKey(w, hop.BlindedNodeID); err != nil {
			return err
		}

		if len(hop.EncryptedPayload) > 65535 {
			return fmt.Errorf("encrypted payload of %d bytes "+
				"exceeds maximum", len(hop.EncryptedPayload))
		}

		var lenBytes [2]byte
		binary.BigEndian.PutUint16(
			lenBytes[:], uint16(len(hop.EncryptedPayload)),
		)
		if _, err := w.Write(lenBytes[:]); err != nil {
			return err
		}

		if _, err := w.Write(hop.EncryptedPayload); err != nil {
			return err
		}
	}

	return nil
}

func decodeBlindedPath(r io.Reader) (*BlindedPath, error) {
	intro, err := decodeIntroductionNode(r)
	if err != nil {
		return nil, err
	}

	blindingPoint, err := readPublicKey(r)
	if err != nil {
		return nil, err
	}

	var numHops [1]byte
	if _, err := io.ReadFull(r, numHops[:]); err != nil {
		return nil, err
	}

	hops := make([]*BlindedHop, 0, numHops[0])
	for i := 0; i < int(numHops[0]); i++ {
		nodeID, err := readPublicKey(r)
		if err != nil {
			return nil, err
		}

		var lenBytes [2]byte
		if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
			return nil, err
		}

		payload := make([]byte, binary.BigEndian.Uint16(lenBytes[:]))
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}

		hops = append(hops, &BlindedHop{
			BlindedNodeID:    nodeID,
			EncryptedPayload: payload,
		})
	}

	return &BlindedPath{
		IntroductionNode: intro,
		BlindingPoint:    blindingPoint,
		Hops:             hops,
	}, nil
}

// EncodeBlindedPath writes a single blinded path in its wire form.
func EncodeBlindedPath(w io.Writer, p *BlindedPath) error {
	return encodeBlindedPath(w, p)
}

// DecodeBlindedPath reads a single blinded path from its wire form.
func DecodeBlindedPath(r io.Reader) (*BlindedPath, error) {
	return decodeBlindedPath(r)
}

// encodeBlindedPaths is a tlv encoder for a sequence of blinded paths.
func encodeBlindedPaths(w io.Writer, val interface{}, _ *[8]byte) error {
	paths, ok := val.(*[]*BlindedPath)
	if !ok {
		return tlv.NewTypeForEncodingErr(val, "*[]*bolt12.BlindedPath")
	}

	for _, path := range *paths {
		if err := encodeBlindedPath(w, path); err != nil {
			return err
		}
	}

	return nil
}

// decodeBlindedPaths is a tlv decoder for a sequence of blinded paths.
func decodeBlindedPaths(r io.Reader, val interface{}, _ *[8]byte,
	l uint64) error {

	paths, ok := val.(*[]*BlindedPath)
	if !ok {
		return tlv.NewTypeForDecodingErr(
			val, "*[]*bolt12.BlindedPath", l, l,
		)
	}

	lr := &io.LimitedReader{R: r, N: int64(l)}
	for lr.N > 0 {
		path, err := decodeBlindedPath(lr)
		if err != nil {
			return err
		}

		*paths = append(*paths, path)
	}

	return nil
}

func blindedPathsRecord(typ tlv.Type, paths *[]*BlindedPath) tlv.Record {
	return tlv.MakeDynamicRecord(
		typ, paths, func() uint64 {
			var size uint64
			for _, path := range *paths {
				size += blindedPathSize(path)
			}
			return size
		},
		encodeBlindedPaths, decodeBlindedPaths,
	)
}

func blindedPayInfoSize(info *BlindedPayInfo) uint64 {
	return 4 + 4 + 2 + 8 + 8 + 2 + uint64(len(info.Features))
}

func encodeBlindedPayInfo(w io.Writer, info *BlindedPayInfo) error {
	var buf [8]byte

	binary.BigEndian.PutUint32(buf[:4], info.FeeBaseMsat)
	if _, err := w.Write(buf[:4]); err != nil {
		return err
	}

	binary.BigEndian.PutUint32(buf[:4], info.FeeProportionalMillionths)
	if _, err := w.Write(buf[:4]); err != nil {
		return err
	}

	binary.BigEndian.PutUint16(buf[:2], info.CltvExpiryDelta)
	if _, err := w.Write(buf[:2]); err != nil {
		return err
	}

	binary.BigEndian.PutUint64(buf[:], uint64(info.HTLCMinimumMsat))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	binary.BigEndian.PutUint64(buf[:], uint64(info.HTLCMaximumMsat))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	if len(info.Features) > 65535 {
		return fmt.Errorf("pay info features of %d bytes exceeds "+
			"maximum", len(info.Features))
	}

	binary.BigEndian.PutUint16(buf[:2], uint16(len(info.Features)))
	if _, err := w.Write(buf[:2]); err != nil {
		return err
	}

	_, err := w.Write(info.Features)
	return err
}

func decodeBlindedPayInfo(r io.Reader) (*BlindedPayInfo, error) {
	var (
		info BlindedPayInfo
		buf  [8]byte
	)

	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return nil, err
	}
	info.FeeBaseMsat = binary.BigEndian.Uint32(buf[:4])

	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return nil, err
	}
	info.FeeProportionalMillionths = binary.BigEndian.Uint32(buf[:4])

	if _, err := io.ReadFull(r, buf[:2]); err != nil {
		return nil, err
	}
	info.CltvExpiryDelta = binary.BigEndian.Uint16(buf[:2])

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	info.HTLCMinimumMsat = lnwire.MilliSatoshi(
		binary.BigEndian.Uint64(buf[:]),
	)

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	info.HTLCMaximumMsat = lnwire.MilliSatoshi(
		binary.BigEndian.Uint64(buf[:]),
	)

	if _, err := io.ReadFull(r, buf[:2]); err != nil {
		return nil, err
	}

	info.Features = make([]byte, binary.BigEndian.Uint16(buf[:2]))
	if _, err := io.ReadFull(r, info.Features); err != nil {
		return nil, err
	}

	return &info, nil
}

func encodeBlindedPayInfos(w io.Writer, val interface{}, _ *[8]byte) error {
	infos, ok := val.(*[]*BlindedPayInfo)
	if !ok {
		return tlv.NewTypeForEncodingErr(
			val, "*[]*bolt12.BlindedPayInfo",
		)
	}

	for _, info := range *infos {
		if err := encodeBlindedPayInfo(w, info); err != nil {
			return err
		}
	}

	return nil
}

func decodeBlindedPayInfos(r io.Reader, val interface{}, _ *[8]byte,
	l uint64) error {

	infos, ok := val.(*[]*BlindedPayInfo)
	if !ok {
		return tlv.NewTypeForDecodingErr(
			val, "*[]*bolt12.BlindedPayInfo", l, l,
		)
	}

	lr := &io.LimitedReader{R: r, N: int64(l)}
	for lr.N > 0 {
		info, err := decodeBlindedPayInfo(lr)
		if err != nil {
			return err
		}

		*infos = append(*infos, info)
	}

	return nil
}

func blindedPayInfosRecord(typ tlv.Type, infos *[]*BlindedPayInfo) tlv.Record {
	return tlv.MakeDynamicRecord(
		typ, infos, func() uint64 {
			var size uint64
			for _, info := range *infos {
				size += blindedPayInfoSize(info)
			}
			return size
		},
		encodeBlindedPayInfos, decodeBlindedPayInfos,
	)
}
