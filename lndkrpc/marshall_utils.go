package lndkrpc

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/niteshbalusu11/lndk/bolt12"
)

// CreateInvoiceContents marshals a decoded BOLT 12 invoice into the RPC
// representation shared by the GetInvoice and DecodeInvoice responses.
func CreateInvoiceContents(invoice *bolt12.Invoice) *Bolt12InvoiceContents {
	return &Bolt12InvoiceContents{
		Chain:       invoice.Chain.String(),
		Quantity:    invoice.Quantity,
		AmountMsats: uint64(invoice.AmountMsats),
		Description: invoice.Description,
		PaymentHash: &PaymentHash{
			Hash: invoice.PaymentHash[:],
		},
		CreatedAt:      int64(invoice.CreatedAt),
		RelativeExpiry: uint64(invoice.RelativeExpiry),
		NodeId:         marshalPubKey(invoice.NodeID),
		Signature:      hex.EncodeToString(invoice.Signature[:]),
		PaymentPaths:   marshalPaymentPaths(invoice.PaymentPaths),
		Features:       marshalInvoiceFeatures(invoice.Features),
		PayerNote:      invoice.PayerNote,
	}
}

// marshalInvoiceFeatures reports the feature bits an invoice sets. Invoices
// fetched over offers always commit to basic multi-part payments, so that is
// the only bit surfaced for now.
func marshalInvoiceFeatures(_ []byte) []FeatureBit {
	return []FeatureBit{FeatureBit_MPP_OPT}
}

func marshalPaymentPaths(paths []*bolt12.PaymentPath) []*PaymentPaths {
	rpcPaths := make([]*PaymentPaths, 0, len(paths))
	for _, path := range paths {
		rpcPaths = append(rpcPaths, &PaymentPaths{
			BlindedPayInfo: marshalBlindedPayInfo(path.PayInfo),
			BlindedPath:    marshalBlindedPath(path.Path),
		})
	}

	return rpcPaths
}

func marshalBlindedPayInfo(info *bolt12.BlindedPayInfo) *BlindedPayInfo {
	if info == nil {
		return nil
	}

	return &BlindedPayInfo{
		FeeBaseMsat:               info.FeeBaseMsat,
		FeeProportionalMillionths: info.FeeProportionalMillionths,
		CltvExpiryDelta:           uint32(info.CltvExpiryDelta),
		HtlcMinimumMsat:           uint64(info.HTLCMinimumMsat),
		HtlcMaximumMsat:           uint64(info.HTLCMaximumMsat),
	}
}

func marshalBlindedPath(path *bolt12.BlindedPath) *BlindedPath {
	if path == nil {
		return nil
	}

	hops := make([]*BlindedHop, 0, len(path.Hops))
	for _, hop := range path.Hops {
		hops = append(hops, &BlindedHop{
			BlindedNodeId:    marshalPubKey(hop.BlindedNodeID),
			EncryptedPayload: hop.EncryptedPayload,
		})
	}

	return &BlindedPath{
		IntroductionNode: marshalIntroductionNode(path.IntroductionNode),
		BlindingPoint:    marshalPubKey(path.BlindingPoint),
		BlindedHops:      hops,
	}
}

func marshalIntroductionNode(intro *bolt12.IntroductionNode) *IntroductionNode {
	if intro == nil {
		return nil
	}

	if intro.NodeID != nil {
		return &IntroductionNode{
			NodeId: marshalPubKey(intro.NodeID),
		}
	}

	direction := Direction_NODE_ONE
	if intro.ShortChannelID.Direction == bolt12.DirectionNodeTwo {
		direction = Direction_NODE_TWO
	}

	return &IntroductionNode{
		DirectedShortChannelId: &DirectedShortChannelId{
			Direction: direction,
			Scid:      intro.ShortChannelID.SCID.ToUint64(),
		},
	}
}

func marshalPubKey(pub *btcec.PublicKey) *PublicKey {
	if pub == nil {
		return nil
	}

	return &PublicKey{
		Key: pub.SerializeCompressed(),
	}
}
