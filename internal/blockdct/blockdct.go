// Package blockdct embeds and extracts watermark bits in the DCT domain
// of fixed-size luminance blocks. Each block carries one carrier slot:
// a pre-selected mid-frequency coefficient is replaced by a signed
// offset whose sign encodes the bit, which keeps the mark aligned with
// the 8x8 grid JPEG quantizes over and therefore resistant to
// re-compression.
package blockdct

import (
	"math"

	"github.com/tastefully-stained/hybridmark/internal/dct"
)

// DefaultBlockSize matches the JPEG block grid.
const DefaultBlockSize = 8

// Mid-frequency coefficient carrying the bit: low enough to survive
// quantization, high enough to stay out of the visually dominant DC
// corner.
const (
	coefRow = 2
	coefCol = 1
)

// Carriers returns how many carrier slots a w x h luminance plane
// provides at the given block size. Partial edge blocks carry nothing.
func Carriers(w, h, block int) int {
	return (w / block) * (h / block)
}

// BaseStep converts embedding strength into the nominal coefficient
// offset magnitude.
func BaseStep(strength float64) float64 {
	return 8 + 48*strength
}

// adaptiveStep scales the offset by the local quantization step the
// block is expected to tolerate, estimated from its variance. Flat
// blocks get a boosted offset so the mark stays detectable after
// aggressive quantization; the boost is bounded to avoid visible
// artifacts.
func adaptiveStep(base, variance float64) float64 {
	sigma := math.Sqrt(variance)
	if sigma < 2 {
		return base * 1.25
	}
	return base * (0.75 + math.Min(sigma, 64)/128)
}

// Embed writes one bit per carrier slot into luma in place. len(bits)
// must equal Carriers(w, h, block); slot order is block row-major.
// Deterministic: identical inputs produce identical planes.
func Embed(luma []float32, w, h int, bits []bool, strength float64, block int, cache *dct.Cache) {
	d := transform(block, cache)
	base := BaseStep(strength)
	buf := make([]float64, block*block)

	cols := w / block
	rows := h / block
	for br := 0; br < rows; br++ {
		for bc := 0; bc < cols; bc++ {
			variance := gather(luma, w, br, bc, block, buf)
			coeffs := d.Transform(buf)

			step := adaptiveStep(base, variance)
			if bits[br*cols+bc] {
				coeffs[coefRow*block+coefCol] = step
			} else {
				coeffs[coefRow*block+coefCol] = -step
			}

			scatter(luma, w, br, bc, block, d.Inverse(coeffs))
		}
	}
}

// ExtractSoft recomputes the block transforms and returns one soft bit
// estimate in [0,1] per carrier slot: the sign of the carrier
// coefficient decides the direction, its magnitude relative to the
// locally expected offset weighs the certainty.
func ExtractSoft(luma []float32, w, h int, strength float64, block int, cache *dct.Cache) []float64 {
	d := transform(block, cache)
	base := BaseStep(strength)
	buf := make([]float64, block*block)

	cols := w / block
	rows := h / block
	soft := make([]float64, rows*cols)
	for br := 0; br < rows; br++ {
		for bc := 0; bc < cols; bc++ {
			variance := gather(luma, w, br, bc, block, buf)
			coeffs := d.Transform(buf)

			step := adaptiveStep(base, variance)
			v := 0.5 + 0.5*clamp(coeffs[coefRow*block+coefCol]/step, -1, 1)
			soft[br*cols+bc] = v
		}
	}
	return soft
}

// gather copies one block into buf and returns its pixel variance.
func gather(luma []float32, w, br, bc, block int, buf []float64) float64 {
	var sum, sumsq float64
	for y := 0; y < block; y++ {
		row := (br*block + y) * w
		for x := 0; x < block; x++ {
			v := float64(luma[row+bc*block+x])
			buf[y*block+x] = v
			sum += v
			sumsq += v * v
		}
	}
	n := float64(block * block)
	mean := sum / n
	return sumsq/n - mean*mean
}

// scatter writes a reconstructed block back, clamping to pixel range.
func scatter(luma []float32, w, br, bc, block int, rec []float64) {
	for y := 0; y < block; y++ {
		row := (br*block + y) * w
		for x := 0; x < block; x++ {
			luma[row+bc*block+x] = float32(clamp(rec[y*block+x], 0, 255))
		}
	}
}

func transform(block int, cache *dct.Cache) *dct.DCT {
	if cache != nil {
		return cache.Get(block)
	}
	return dct.New(block)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
