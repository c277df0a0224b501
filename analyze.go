package hybridmark

import (
	"image"

	"gonum.org/v1/gonum/stat"

	"github.com/tastefully-stained/hybridmark/internal/raster"
)

// Characteristics are the content statistics driving Auto strategy
// selection. They are derived per call and never persisted.
type Characteristics struct {
	// Variance is the mean luminance variance over 16x16 regions.
	Variance float64
	// EdgeDensity is the fraction of pixels whose gradient magnitude
	// clears the edge threshold.
	EdgeDensity float64
	// DynamicRange is the 2nd-to-98th percentile luminance spread,
	// normalized to [0,1].
	DynamicRange float64
}

// Analyze computes the content statistics of src in a single pass over
// its luminance plane. Pure function, O(pixels).
func Analyze(src image.Image) Characteristics {
	r := raster.FromImage(src)
	return analyzeLuma(r.Luma(), r.Width(), r.Height())
}

// SelectStrategy applies the configured decision rule: high edge
// density together with high local variance marks photographic content
// and favors DCT; flatter, more uniform content favors DWT. Pure
// function of its input.
func (o *Orchestrator) SelectStrategy(c Characteristics) Strategy {
	if c.EdgeDensity >= o.edgeThreshold && c.Variance >= o.varianceThreshold {
		return StrategyDCT
	}
	return StrategyDWT
}

const (
	analyzeRegion = 16
	edgeThreshold = 24.0
)

func analyzeLuma(luma []float32, w, h int) Characteristics {
	var c Characteristics
	if w == 0 || h == 0 {
		return c
	}

	// Mean per-region variance. Trailing regions can degenerate to a
	// single pixel, which has no sample variance; they are skipped.
	samples := make([]float64, 0, analyzeRegion*analyzeRegion)
	var varSum float64
	var regions int
	for ry := 0; ry < h; ry += analyzeRegion {
		for rx := 0; rx < w; rx += analyzeRegion {
			samples = samples[:0]
			for y := ry; y < min(ry+analyzeRegion, h); y++ {
				for x := rx; x < min(rx+analyzeRegion, w); x++ {
					samples = append(samples, float64(luma[y*w+x]))
				}
			}
			if len(samples) < 2 {
				continue
			}
			varSum += stat.Variance(samples, nil)
			regions++
		}
	}
	if regions > 0 {
		c.Variance = varSum / float64(regions)
	}

	// Gradient-threshold edge density.
	var edges int
	if w > 1 && h > 1 {
		for y := 0; y < h-1; y++ {
			for x := 0; x < w-1; x++ {
				gx := luma[y*w+x+1] - luma[y*w+x]
				gy := luma[(y+1)*w+x] - luma[y*w+x]
				if abs32(gx)+abs32(gy) > edgeThreshold {
					edges++
				}
			}
		}
		c.EdgeDensity = float64(edges) / float64((w-1)*(h-1))
	}

	// Histogram spread.
	var hist [256]int
	for _, v := range luma {
		i := int(v)
		if i < 0 {
			i = 0
		} else if i > 255 {
			i = 255
		}
		hist[i]++
	}
	area := w * h
	lo := percentileBin(hist[:], area, 0.02)
	hi := percentileBin(hist[:], area, 0.98)
	c.DynamicRange = float64(hi-lo) / 255.0
	return c
}

// percentileBin returns the histogram bin at the given cumulative mass.
func percentileBin(hist []int, total int, p float64) int {
	target := int(p * float64(total))
	cum := 0
	for i, n := range hist {
		cum += n
		if cum >= target {
			return i
		}
	}
	return len(hist) - 1
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
