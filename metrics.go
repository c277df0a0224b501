package hybridmark

import (
	"image"
	"math"
)

// MeanAbsDelta returns the mean absolute per-channel difference between
// two images of equal dimensions, normalized to [0,1]. Returns NaN when
// the dimensions differ.
func MeanAbsDelta(a, b image.Image) float64 {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return math.NaN()
	}
	var sum float64
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, abl, _ := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			sum += math.Abs(float64(ar>>8) - float64(br>>8))
			sum += math.Abs(float64(ag>>8) - float64(bg>>8))
			sum += math.Abs(float64(abl>>8) - float64(bbl>>8))
		}
	}
	return sum / (3 * float64(ab.Dx()*ab.Dy()) * 255)
}

// PSNR returns the peak signal-to-noise ratio between two images of
// equal dimensions in decibels, or +Inf for identical images and NaN
// when the dimensions differ.
func PSNR(a, b image.Image) float64 {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return math.NaN()
	}
	var sq float64
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, abl, _ := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			for _, d := range [3]float64{
				float64(ar>>8) - float64(br>>8),
				float64(ag>>8) - float64(bg>>8),
				float64(abl>>8) - float64(bbl>>8),
			} {
				sq += d * d
			}
		}
	}
	mse := sq / (3 * float64(ab.Dx()*ab.Dy()))
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}
