// Package dct implements the 2-D type-II discrete cosine transform on
// square pixel blocks via precomputed orthonormal basis matrices.
package dct

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DCT transforms n x n blocks. The basis matrix is built once per size;
// instances are immutable and safe for concurrent use.
type DCT struct {
	n     int
	basis *mat.Dense
}

// New builds the transform for n x n blocks.
func New(n int) *DCT {
	nf := float64(n)
	b := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		b.Set(0, j, 1.0/math.Sqrt(nf))
	}
	for i := 1; i < n; i++ {
		for j := 0; j < n; j++ {
			b.Set(i, j, math.Sqrt(2.0/nf)*
				math.Cos((float64(i)*math.Pi*(2.0*float64(j)+1.0))/(2.0*nf)))
		}
	}
	return &DCT{n: n, basis: b}
}

// Size returns the block edge length.
func (d *DCT) Size() int { return d.n }

// Transform computes the forward DCT of a row-major n*n block.
// The input is not modified.
func (d *DCT) Transform(block []float64) []float64 {
	x := mat.NewDense(d.n, d.n, block)
	var t, c mat.Dense
	t.Mul(d.basis, x)
	c.Mul(&t, d.basis.T())
	return dense(&c, d.n)
}

// Inverse reconstructs the pixel block from its coefficients.
func (d *DCT) Inverse(coeffs []float64) []float64 {
	c := mat.NewDense(d.n, d.n, coeffs)
	var t, x mat.Dense
	t.Mul(d.basis.T(), c)
	x.Mul(&t, d.basis)
	return dense(&x, d.n)
}

// dense copies a matrix into a tightly packed row-major slice.
func dense(m *mat.Dense, n int) []float64 {
	raw := m.RawMatrix()
	if raw.Stride == n {
		out := make([]float64, n*n)
		copy(out, raw.Data[:n*n])
		return out
	}
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		copy(out[i*n:(i+1)*n], raw.Data[i*raw.Stride:i*raw.Stride+n])
	}
	return out
}
