package hybridmark

import (
	"fmt"

	"github.com/tastefully-stained/hybridmark/internal/payload"
	"github.com/tastefully-stained/hybridmark/internal/vote"
)

// slotBits assigns one bit to every carrier slot of a strategy: the
// coded header occupies the first headerRedundancy copies at fixed
// positions, then the coded body wraps around the remaining slots so
// spare capacity turns into extra redundancy.
func slotBits(bs payload.Bitstream, total int) []bool {
	hdrSlots := len(bs.Header) * headerRedundancy
	out := make([]bool, total)
	for s := range out {
		switch {
		case s < hdrSlots:
			out[s] = bs.Header[s%len(bs.Header)]
		case len(bs.Body) > 0:
			out[s] = bs.Body[(s-hdrSlots)%len(bs.Body)]
		}
	}
	return out
}

// minCarriers is the smallest carrier count a strategy must provide:
// the fixed header region plus one Golay codeword at the declared
// redundancy.
func minCarriers(redundancy int) int {
	return payload.HeaderCodedBits*headerRedundancy + redundancy*payload.CodedBits(1)
}

// capacityBits converts a carrier count into declared payload capacity
// in bits, honoring the configured redundancy factor.
func (o *Orchestrator) capacityBits(total int) int {
	slots := (total - payload.HeaderCodedBits*headerRedundancy) / o.redundancy
	if slots <= 0 {
		return 0
	}
	return payload.MaxDataBits(slots)
}

// checkCapacity validates an embed against the declared capacity.
// Exceeding capacity is an error, never a silent drop.
func (o *Orchestrator) checkCapacity(total, codedBody, w, h int) error {
	if total < minCarriers(o.redundancy) {
		return fmt.Errorf("%w: %dx%d provides %d carrier slots, %d required",
			ErrImageTooSmall, w, h, total, minCarriers(o.redundancy))
	}
	avail := total - payload.HeaderCodedBits*headerRedundancy
	if codedBody*o.redundancy > avail {
		return fmt.Errorf("%w: %d coded bits at redundancy %d exceed %d slots",
			ErrPayloadTooLarge, codedBody, o.redundancy, avail)
	}
	return nil
}

// decodeCarriers resolves a soft carrier vector into an Outcome:
// header first (independent of payload integrity), then the body under
// the length the header declares.
func (o *Orchestrator) decodeCarriers(soft []float64, strat Strategy) Outcome {
	cdc := payload.NewCodec(o.seed)
	hdrSlots := payload.HeaderCodedBits * headerRedundancy

	ht := vote.NewTally(payload.HeaderCodedBits)
	for s := 0; s < hdrSlots && s < len(soft); s++ {
		ht.Add(s%payload.HeaderCodedBits, soft[s])
	}
	hdrBits, hdrConf := ht.Decide()

	hdr, err := cdc.DecodeHeader(hdrBits)
	if err != nil {
		// Unreadable header: most likely not watermarked in this domain.
		return Outcome{Confidence: hdrConf, StrategyUsed: strat}
	}

	codedBody := hdr.CodedBodyBits()
	if codedBody > len(soft)-hdrSlots {
		// Header claims more payload than the image can carry; treat as
		// a foreign or corrupted mark.
		return Outcome{Confidence: hdrConf, StrategyUsed: strat}
	}

	bt := vote.NewTally(codedBody)
	if codedBody > 0 {
		for s := hdrSlots; s < len(soft); s++ {
			bt.Add((s-hdrSlots)%codedBody, soft[s])
		}
	}
	bodyBits, bodyConf := bt.Decide()

	conf := hdrConf
	if codedBody > 0 {
		conf = (hdrConf*float64(payload.HeaderCodedBits) + bodyConf*float64(codedBody)) /
			float64(payload.HeaderCodedBits+codedBody)
	}

	data, err := cdc.DecodeBody(bodyBits, hdr)
	if err != nil {
		// Degradation exceeded ECC tolerance: a normal, non-exceptional
		// outcome left to the caller to judge.
		return Outcome{Confidence: conf, StrategyUsed: strat}
	}
	return Outcome{
		Payload:      data,
		Confidence:   conf,
		StrategyUsed: strat,
		Recovered:    conf >= o.confidenceThreshold,
	}
}
