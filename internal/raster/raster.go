// Package raster holds the in-memory plane representation of an image
// during embedding and extraction. Pixels are split into a luminance
// plane and two chroma planes plus alpha; all strategies operate on the
// luminance plane only and the chroma planes pass through untouched.
package raster

import (
	"image"
	"image/color"

	"github.com/tastefully-stained/hybridmark/internal/yuv"
)

// Image is the owned plane buffer for one source image. It is created
// fresh per operation and never shared between calls.
type Image struct {
	bounds        image.Rectangle
	width, height int

	alpha []uint16
	luma  []float32 // Y, 0..255
	cb    []float32 // U, centered on 0.5
	cr    []float32 // V, centered on 0.5
}

// FromImage decodes src into planes. Grayscale sources produce neutral
// chroma; sources with alpha keep it. Any image.Image works; *image.Gray
// and *image.RGBA take fast paths.
func FromImage(src image.Image) *Image {
	r := &Image{bounds: src.Bounds()}
	r.width, r.height = r.bounds.Dx(), r.bounds.Dy()
	area := r.width * r.height
	r.alpha = make([]uint16, area)
	r.luma = make([]float32, area)
	r.cb = make([]float32, area)
	r.cr = make([]float32, area)

	switch img := src.(type) {
	case *image.Gray:
		neutral := yuv.ChromaNeutral()
		idx := 0
		for y := r.bounds.Min.Y; y < r.bounds.Max.Y; y++ {
			row := img.Pix[(y-img.Rect.Min.Y)*img.Stride:]
			for x := 0; x < r.width; x++ {
				r.luma[idx] = float32(row[x])
				r.cb[idx] = neutral
				r.cr[idx] = neutral
				r.alpha[idx] = 0xffff
				idx++
			}
		}
	case *image.RGBA:
		idx := 0
		for y := r.bounds.Min.Y; y < r.bounds.Max.Y; y++ {
			row := img.Pix[(y-img.Rect.Min.Y)*img.Stride:]
			for x := 0; x < r.width; x++ {
				o := x * 4
				r.luma[idx], r.cb[idx], r.cr[idx] = yuv.FromRGB(
					float32(row[o]), float32(row[o+1]), float32(row[o+2]))
				r.alpha[idx] = uint16(row[o+3]) * 257
				idx++
			}
		}
	default:
		idx := 0
		for y := r.bounds.Min.Y; y < r.bounds.Max.Y; y++ {
			for x := r.bounds.Min.X; x < r.bounds.Max.X; x++ {
				r32, g32, b32, a32 := src.At(x, y).RGBA()
				r.luma[idx], r.cb[idx], r.cr[idx] = yuv.FromRGB(
					float32(r32>>8), float32(g32>>8), float32(b32>>8))
				r.alpha[idx] = uint16(a32)
				idx++
			}
		}
	}
	return r
}

// Width returns the pixel width.
func (r *Image) Width() int { return r.width }

// Height returns the pixel height.
func (r *Image) Height() int { return r.height }

// Luma returns the luminance plane in row-major order. The slice is the
// live buffer; embedding mutates it in place.
func (r *Image) Luma() []float32 { return r.luma }

// Clone returns a deep copy sharing no buffers with the receiver.
func (r *Image) Clone() *Image {
	c := *r
	c.alpha = append([]uint16(nil), r.alpha...)
	c.luma = append([]float32(nil), r.luma...)
	c.cb = append([]float32(nil), r.cb...)
	c.cr = append([]float32(nil), r.cr...)
	return &c
}

// Build reconstructs an image from the planes. The result is a new
// RGBA64 so no precision is lost on the perturbed luminance.
func (r *Image) Build() image.Image {
	dst := image.NewRGBA64(r.bounds)
	idx := 0
	for y := r.bounds.Min.Y; y < r.bounds.Max.Y; y++ {
		for x := r.bounds.Min.X; x < r.bounds.Max.X; x++ {
			red, green, blue := yuv.ToRGB(r.luma[idx], r.cb[idx], r.cr[idx])
			dst.SetRGBA64(x, y, color.RGBA64{
				R: yuv.Clip16(red),
				G: yuv.Clip16(green),
				B: yuv.Clip16(blue),
				A: r.alpha[idx],
			})
			idx++
		}
	}
	return dst
}
