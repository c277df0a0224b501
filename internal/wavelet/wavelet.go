// Package wavelet embeds and extracts watermark bits by
// quantization-index modulation of the detail sub-bands at the deepest
// level of a Haar pyramid. Coarse-scale coefficients move coherently
// under uniform rescaling, which is what gives this strategy its
// geometric robustness.
package wavelet

import (
	"math"

	"github.com/tastefully-stained/hybridmark/internal/dwt"
)

// DefaultLevels is the default pyramid depth.
const DefaultLevels = 3

// Carriers returns how many carrier slots a w x h plane provides: one
// per coefficient of the cH, cV and cD sub-bands at the deepest level.
func Carriers(w, h, levels int) int {
	sw, sh := dwt.SubbandDims(w, h, levels)
	return 3 * sw * sh
}

// BaseDelta converts embedding strength into the quantizer step.
func BaseDelta(strength float64) float64 {
	return 8 + 40*strength
}

// Embed writes one bit per carrier slot into luma in place. len(bits)
// must equal Carriers(w, h, levels); slots run through cH, then cV,
// then cD in row-major coefficient order.
func Embed(luma []float32, w, h int, bits []bool, strength float64, levels int) {
	p := dwt.Decompose(luma, w, h, levels)
	b := p.Band(levels)
	bands := [3][]float32{b.CH, b.CV, b.CD}
	n := b.W * b.H
	delta := BaseDelta(strength)

	for s, bit := range bits {
		band := bands[s/n]
		i := s % n
		band[i] = float32(quantize(float64(band[i]), delta, bit))
	}

	rec := p.Reconstruct()
	for i := range luma {
		luma[i] = float32(clamp(rec[i], 0, 255))
	}
}

// ExtractSoft re-decomposes the plane and returns one soft estimate in
// [0,1] per carrier slot, from the coefficient's fractional position
// within its quantizer cell.
func ExtractSoft(luma []float32, w, h int, strength float64, levels int) []float64 {
	p := dwt.Decompose(luma, w, h, levels)
	b := p.Band(levels)
	bands := [3][]float32{b.CH, b.CV, b.CD}
	n := b.W * b.H
	delta := BaseDelta(strength)

	soft := make([]float64, 3*n)
	for s := range soft {
		c := float64(bands[s/n][s%n])
		frac := c/delta - math.Floor(c/delta)
		// 0 at the bit-0 lattice point (0.25), 1 at the bit-1 point
		// (0.75), periodic so wrap-around distances stay symmetric.
		soft[s] = (1 - math.Cos(2*math.Pi*(frac-0.25))) / 2
	}
	return soft
}

// quantize moves c onto the lattice point of its cell that encodes bit.
func quantize(c, delta float64, bit bool) float64 {
	target := 0.25
	if bit {
		target = 0.75
	}
	return (math.Floor(c/delta) + target) * delta
}

func clamp(v float32, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
