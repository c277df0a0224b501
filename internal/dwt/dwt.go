// Package dwt implements the orthonormal Haar wavelet transform and a
// multilevel pyramid over it. Odd dimensions duplicate the trailing
// sample, which keeps the inverse exact for every input size.
package dwt

import "math"

// Forward computes one Haar decomposition level of a row-major w x h
// plane. Each returned sub-band is hw x hh with hw=(w+1)/2, hh=(h+1)/2.
func Forward(data []float32, w, h int) (cA, cH, cV, cD []float32) {
	hw, hh := (w+1)/2, (h+1)/2
	l := hw * hh
	cA = make([]float32, l)
	cH = make([]float32, l)
	cV = make([]float32, l)
	cD = make([]float32, l)

	for y0 := 0; y0 < h; y0 += 2 {
		y1 := y0
		if y0+1 < h {
			y1 = y0 + 1
		}
		for x0 := 0; x0 < w; x0 += 2 {
			x1 := x0
			if x0+1 < w {
				x1 = x0 + 1
			}
			a1, d1 := avgdiff(data[y0*w+x0], data[y1*w+x0])
			a2, d2 := avgdiff(data[y0*w+x1], data[y1*w+x1])

			idx := (y0/2)*hw + (x0 / 2)
			cA[idx], cV[idx] = avgdiff(a1, a2)
			cH[idx], cD[idx] = avgdiff(d1, d2)
		}
	}
	return
}

// Inverse reconstructs the w x h plane from one decomposition level.
func Inverse(cA, cH, cV, cD []float32, w, h int) []float32 {
	hw := (w + 1) / 2
	data := make([]float32, w*h)
	for y0 := 0; y0 < h; y0 += 2 {
		for x0 := 0; x0 < w; x0 += 2 {
			idx := (y0/2)*hw + (x0 / 2)

			a1, a2 := invavgdiff(cA[idx], cV[idx])
			d1, d2 := invavgdiff(cH[idx], cD[idx])

			v1, v2 := invavgdiff(a1, d1)
			v3, v4 := invavgdiff(a2, d2)

			data[y0*w+x0] = v1
			if y0+1 < h {
				data[(y0+1)*w+x0] = v2
			}
			if x0+1 < w {
				data[y0*w+(x0+1)] = v3
			}
			if y0+1 < h && x0+1 < w {
				data[(y0+1)*w+(x0+1)] = v4
			}
		}
	}
	return data
}

func avgdiff(v1, v2 float32) (float32, float32) {
	avr := (v1 + v2) / 2.0
	return avr * math.Sqrt2, (v1 - avr) * math.Sqrt2
}

func invavgdiff(a, d float32) (float32, float32) {
	avr := a / math.Sqrt2
	return avr + d/math.Sqrt2, avr - d/math.Sqrt2
}

// Band holds the four sub-bands of one pyramid level together with the
// dimensions of the plane it was decomposed from.
type Band struct {
	W, H           int // sub-band dimensions
	SrcW, SrcH     int // dimensions of the decomposed plane
	CA, CH, CV, CD []float32
}

// Pyramid is a multilevel Haar decomposition. Level 1 is the finest.
type Pyramid struct {
	levels int
	bands  []Band
}

// Decompose builds a levels-deep pyramid of the w x h plane.
// The input slice is not modified.
func Decompose(data []float32, w, h, levels int) *Pyramid {
	p := &Pyramid{levels: levels, bands: make([]Band, 0, levels)}
	cur, cw, ch := data, w, h
	for range levels {
		cA, cH, cV, cD := Forward(cur, cw, ch)
		p.bands = append(p.bands, Band{
			W: (cw + 1) / 2, H: (ch + 1) / 2,
			SrcW: cw, SrcH: ch,
			CA: cA, CH: cH, CV: cV, CD: cD,
		})
		b := &p.bands[len(p.bands)-1]
		cur, cw, ch = b.CA, b.W, b.H
	}
	return p
}

// Levels returns the pyramid depth.
func (p *Pyramid) Levels() int { return p.levels }

// Band returns the sub-bands of the given level (1-based, 1 = finest).
// The returned struct shares buffers with the pyramid; mutating its
// coefficient slices changes what Reconstruct produces.
func (p *Pyramid) Band(level int) *Band {
	return &p.bands[level-1]
}

// Reconstruct inverts every level and returns the full-resolution plane.
func (p *Pyramid) Reconstruct() []float32 {
	deep := p.bands[p.levels-1]
	plane := Inverse(deep.CA, deep.CH, deep.CV, deep.CD, deep.SrcW, deep.SrcH)
	for l := p.levels - 2; l >= 0; l-- {
		b := p.bands[l]
		plane = Inverse(plane, b.CH, b.CV, b.CD, b.SrcW, b.SrcH)
	}
	return plane
}

// SubbandDims returns the sub-band dimensions after l halvings of w x h.
func SubbandDims(w, h, l int) (int, int) {
	for range l {
		w, h = (w+1)/2, (h+1)/2
	}
	return w, h
}
