package dct

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDCT_RoundTrip(t *testing.T) {
	test := []struct {
		name string
		n    int
	}{
		{name: "4x4", n: 4},
		{name: "8x8", n: 8},
		{name: "16x16", n: 16},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.n)
			block := make([]float64, tt.n*tt.n)
			for i := range block {
				// deterministic texture spanning the pixel range
				block[i] = float64((i*37+11)%256) + 0.25
			}

			rec := d.Inverse(d.Transform(block))
			require.Len(t, rec, len(block))
			for i := range block {
				assert.InDelta(t, block[i], rec[i], 1e-9, "pixel[%d]", i)
			}
		})
	}
}

func TestDCT_DCComponent(t *testing.T) {
	// A constant block concentrates all energy in the DC coefficient,
	// which for the orthonormal basis equals value*n.
	const n = 8
	const v = 128.0
	d := New(n)
	block := make([]float64, n*n)
	for i := range block {
		block[i] = v
	}

	coeffs := d.Transform(block)
	assert.InDelta(t, v*n, coeffs[0], 1e-9)
	for i := 1; i < len(coeffs); i++ {
		assert.InDelta(t, 0, coeffs[i], 1e-9, "AC coefficient[%d]", i)
	}
}

func TestDCT_EnergyPreservation(t *testing.T) {
	// Orthonormal transform: sum of squares is invariant.
	const n = 8
	d := New(n)
	block := make([]float64, n*n)
	for i := range block {
		block[i] = math.Sin(float64(i)*0.7) * 100
	}

	coeffs := d.Transform(block)
	var pe, ce float64
	for i := range block {
		pe += block[i] * block[i]
		ce += coeffs[i] * coeffs[i]
	}
	assert.InEpsilon(t, pe, ce, 1e-9)
}

func TestCache_SharesInstances(t *testing.T) {
	c := NewCache()
	d1 := c.Get(8)
	d2 := c.Get(8)
	assert.Same(t, d1, d2)
	assert.Equal(t, 8, d1.Size())

	d3 := c.Get(4)
	assert.NotSame(t, d1, d3)
	assert.Equal(t, 4, d3.Size())
}
