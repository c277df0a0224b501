// Package hybridmark imperceptibly embeds an opaque byte payload into a
// raster image and recovers it later, choosing between a block-DCT and
// a multilevel-DWT transform strategy or combining both for redundancy.
//
// All operations are pure functions over their inputs: no state is
// retained between calls, and an Orchestrator's configuration is
// immutable after New, so instances may be shared across goroutines.
package hybridmark

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/tastefully-stained/hybridmark/internal/blockdct"
	"github.com/tastefully-stained/hybridmark/internal/dct"
	"github.com/tastefully-stained/hybridmark/internal/payload"
	"github.com/tastefully-stained/hybridmark/internal/raster"
	"github.com/tastefully-stained/hybridmark/internal/wavelet"
)

var (
	// ErrPayloadTooLarge reports a payload exceeding the image capacity
	// or the codec maximum.
	ErrPayloadTooLarge = errors.New("payload too large for image capacity")
	// ErrImageTooSmall reports an image without enough carrier slots for
	// even the bitstream header.
	ErrImageTooSmall = errors.New("image is too small for embedding or extracting")
	// ErrInvalidStrategy reports an unknown strategy value.
	ErrInvalidStrategy = errors.New("invalid strategy")
	// ErrInvalidStrength reports a strength outside (0,1].
	ErrInvalidStrength = errors.New("invalid strength")
)

// DefaultShuffleSeed keys the payload shuffle when no seed is configured.
var DefaultShuffleSeed int64 = 1234567890

// Each header bit occupies exactly this many carrier slots, ahead of the
// payload, so extraction can recover the payload length before it knows
// anything else about the bitstream.
const headerRedundancy = 3

// Outcome is the result of one extraction call. Extraction failure (no
// watermark found, or damage beyond tolerance) is a normal outcome with
// Recovered=false, not an error.
type Outcome struct {
	// Payload is the recovered byte payload. It may be set even when
	// Recovered is false, if a payload decoded but its confidence fell
	// below the configured threshold.
	Payload []byte
	// Confidence in [0,1] is the mean agreement of the redundant
	// carrier estimates with the decoded bits.
	Confidence float64
	// StrategyUsed is the transform domain the outcome came from,
	// StrategyDCT or StrategyDWT.
	StrategyUsed Strategy
	// Recovered reports whether a checksum-valid payload was decoded
	// with confidence at or above the threshold.
	Recovered bool
}

// Embed embeds payload into src with the specified options.
// This is a convenience function that creates an Orchestrator and calls
// its Embed method.
func Embed(ctx context.Context, src image.Image, data []byte, opts ...Option) (image.Image, error) {
	o, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return o.Embed(ctx, src, data)
}

// Extract recovers a payload from src with the specified options.
// This is a convenience function that creates an Orchestrator and calls
// its Extract method.
func Extract(ctx context.Context, src image.Image, opts ...Option) (Outcome, error) {
	o, err := New(opts...)
	if err != nil {
		return Outcome{}, err
	}
	return o.Extract(ctx, src)
}

// EstimateCapacity reports the payload capacity of src in bits under
// the given strategy and options.
func EstimateCapacity(src image.Image, strategy Strategy, opts ...Option) (int, error) {
	o, err := New(opts...)
	if err != nil {
		return 0, err
	}
	return o.EstimateCapacity(src, strategy)
}

// Orchestrator composes the payload codec, the two watermark strategies
// and the content analyzer behind one embed/extract surface.
type Orchestrator struct {
	strategy            Strategy
	strength            float64
	blockSize           int
	levels              int
	redundancy          int
	confidenceThreshold float64
	edgeThreshold       float64
	varianceThreshold   float64
	seed                int64

	dctCache *dct.Cache
}

// New initializes an orchestrator. For default values, refer to the
// init method.
func New(opts ...Option) (*Orchestrator, error) {
	o := new(Orchestrator)
	if err := o.init(opts...); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orchestrator) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	if o.strength == 0 {
		o.strength = 0.5
	}
	if o.blockSize == 0 {
		o.blockSize = blockdct.DefaultBlockSize
	}
	if o.levels == 0 {
		o.levels = wavelet.DefaultLevels
	}
	if o.redundancy == 0 {
		o.redundancy = 3
	}
	if o.confidenceThreshold == 0 {
		o.confidenceThreshold = 0.80
	}
	if o.edgeThreshold == 0 {
		o.edgeThreshold = 0.05
	}
	if o.varianceThreshold == 0 {
		o.varianceThreshold = 100
	}
	if o.seed == 0 {
		o.seed = DefaultShuffleSeed
	}
	o.dctCache = dct.NewCache()
	return nil
}

// Embed embeds data into src and returns the watermarked image.
//
// Process:
//  1. Encodes the payload into a header-framed, Golay-protected bitstream.
//  2. Converts the image to YUV planes.
//  3. Resolves the strategy (analyzing content when Auto).
//  4. Embeds the bitstream into the luminance plane with the chosen
//     strategy, or with DCT then DWT when Hybrid.
//  5. Reconstructs the image.
//
// Capacity violations and undersized images are fatal; the strategy is
// never silently downgraded.
func (o *Orchestrator) Embed(ctx context.Context, src image.Image, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bs, err := payload.NewCodec(o.seed).Encode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes exceeds codec maximum %d",
			ErrPayloadTooLarge, len(data), payload.MaxPayload)
	}

	r := raster.FromImage(src)
	strat := o.strategy
	if strat == StrategyAuto {
		strat = o.SelectStrategy(analyzeLuma(r.Luma(), r.Width(), r.Height()))
	}

	switch strat {
	case StrategyDCT:
		err = o.embedDCT(r, bs)
	case StrategyDWT:
		err = o.embedDWT(r, bs)
	case StrategyHybrid:
		// Fixed order for determinism: DCT first, then DWT.
		if err = o.embedDCT(r, bs); err == nil {
			err = o.embedDWT(r, bs)
		}
	default:
		err = fmt.Errorf("%w: %v", ErrInvalidStrategy, strat)
	}
	if err != nil {
		return nil, err
	}
	return r.Build(), nil
}

// Extract tries the DCT strategy first, then DWT, decoding the payload
// after each attempt. The first outcome with a checksum-valid payload
// clearing the confidence threshold is returned with Recovered=true;
// otherwise the highest-confidence partial outcome is returned with
// Recovered=false. A configured single strategy restricts the attempts
// to that domain.
func (o *Orchestrator) Extract(ctx context.Context, src image.Image) (Outcome, error) {
	r := raster.FromImage(src)
	w, h := r.Width(), r.Height()

	order := []Strategy{StrategyDCT, StrategyDWT}
	switch o.strategy {
	case StrategyDCT:
		order = []Strategy{StrategyDCT}
	case StrategyDWT:
		order = []Strategy{StrategyDWT}
	}

	var best Outcome
	attempted := false
	for _, strat := range order {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		var soft []float64
		switch strat {
		case StrategyDCT:
			if blockdct.Carriers(w, h, o.blockSize) < minCarriers(o.redundancy) {
				continue
			}
			soft = blockdct.ExtractSoft(r.Luma(), w, h, o.strength, o.blockSize, o.dctCache)
		case StrategyDWT:
			if wavelet.Carriers(w, h, o.levels) < minCarriers(o.redundancy) {
				continue
			}
			soft = wavelet.ExtractSoft(r.Luma(), w, h, o.strength, o.levels)
		}

		out := o.decodeCarriers(soft, strat)
		if out.Recovered {
			return out, nil
		}
		if !attempted || out.Confidence > best.Confidence {
			best = out
		}
		attempted = true
	}
	if !attempted {
		return Outcome{}, fmt.Errorf("%w: %dx%d", ErrImageTooSmall, w, h)
	}
	return best, nil
}

// EstimateCapacity reports the payload capacity of src in bits.
// StrategyHybrid yields the minimum of both domains; StrategyAuto
// analyzes the image first. A capacity of 0 means the image cannot
// carry any payload.
func (o *Orchestrator) EstimateCapacity(src image.Image, strategy Strategy) (int, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	switch strategy {
	case StrategyDCT:
		return o.capacityBits(blockdct.Carriers(w, h, o.blockSize)), nil
	case StrategyDWT:
		return o.capacityBits(wavelet.Carriers(w, h, o.levels)), nil
	case StrategyHybrid:
		return min(
			o.capacityBits(blockdct.Carriers(w, h, o.blockSize)),
			o.capacityBits(wavelet.Carriers(w, h, o.levels)),
		), nil
	case StrategyAuto:
		return o.EstimateCapacity(src, o.SelectStrategy(Analyze(src)))
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidStrategy, strategy)
}

func (o *Orchestrator) embedDCT(r *raster.Image, bs payload.Bitstream) error {
	total := blockdct.Carriers(r.Width(), r.Height(), o.blockSize)
	if err := o.checkCapacity(total, len(bs.Body), r.Width(), r.Height()); err != nil {
		return err
	}
	blockdct.Embed(r.Luma(), r.Width(), r.Height(),
		slotBits(bs, total), o.strength, o.blockSize, o.dctCache)
	return nil
}

func (o *Orchestrator) embedDWT(r *raster.Image, bs payload.Bitstream) error {
	total := wavelet.Carriers(r.Width(), r.Height(), o.levels)
	if err := o.checkCapacity(total, len(bs.Body), r.Width(), r.Height()); err != nil {
		return err
	}
	wavelet.Embed(r.Luma(), r.Width(), r.Height(),
		slotBits(bs, total), o.strength, o.levels)
	return nil
}
