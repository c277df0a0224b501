// Package yuv converts between RGB and the YUV color space used by the
// watermark planes. Luminance stays in [0,255]; chroma is centered on 0.5.
//
// Coefficients follow the OpenCV BGR<->YUV kernels:
// https://github.com/opencv/opencv/blob/0e88b49a53842f0f7cdc4c61b98c283be7e5057c/modules/imgproc/src/opencl/color_yuv.cl#L148-L234
package yuv

const delta = .5

const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
	uf = 0.492
	vf = 0.877
)

const (
	vr = 1.140
	ug = -0.395
	vg = -0.581
	ub = 2.032
)

// FromRGB converts one 8-bit-range RGB sample to YUV.
func FromRGB(r, g, b float32) (y, u, v float32) {
	y = yr*r + yg*g + yb*b
	u = uf*(b-y) + delta
	v = vf*(r-y) + delta
	return
}

// ToRGB converts one YUV sample back to 8-bit-range RGB.
// Results may fall outside [0,255] and must be clipped by the caller.
func ToRGB(y, u, v float32) (r, g, b float32) {
	ud := u - delta
	vd := v - delta
	r = y + vr*vd
	g = y + ug*ud + vg*vd
	b = y + ub*ud
	return
}

// ChromaNeutral is the U/V value of a pure gray sample.
func ChromaNeutral() float32 { return delta }

// Clip16 maps an 8-bit-range channel value to the 16-bit range used by
// image.RGBA64, clipping out-of-gamut values.
func Clip16(v float32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 65535
	}
	return uint16(v * 257.0)
}
