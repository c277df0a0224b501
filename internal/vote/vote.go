// Package vote accumulates redundant soft bit estimates and decides the
// final bit values by clustering the per-bit averages into two classes.
package vote

import "math"

// Tally collects soft estimates in [0,1] for a fixed number of bits.
// Each bit may receive any number of redundant estimates.
type Tally struct {
	copies [][]float64
}

// NewTally returns a tally for n bits.
func NewTally(n int) *Tally {
	return &Tally{copies: make([][]float64, n)}
}

// Add records one soft estimate for the given bit.
func (t *Tally) Add(bit int, v float64) {
	t.copies[bit] = append(t.copies[bit], v)
}

// Len returns the number of bits tracked.
func (t *Tally) Len() int { return len(t.copies) }

// Decide resolves the tally into hard bits plus an overall confidence.
// A bit is set when its average estimate clears the adaptive threshold;
// per-bit confidence is the mean agreement of its redundant estimates
// with the decision, and the overall confidence is the mean over bits.
func (t *Tally) Decide() (bits []bool, confidence float64) {
	avgs := make([]float64, len(t.copies))
	for i, c := range t.copies {
		avgs[i] = mean(c)
	}
	th := Threshold(avgs)

	bits = make([]bool, len(avgs))
	var confSum float64
	for i, c := range t.copies {
		bits[i] = avgs[i] >= th
		if len(c) == 0 {
			continue
		}
		var agree float64
		for _, v := range c {
			if bits[i] {
				agree += v
			} else {
				agree += 1 - v
			}
		}
		confSum += agree / float64(len(c))
	}
	if len(avgs) == 0 {
		return bits, 0
	}
	return bits, confSum / float64(len(avgs))
}

// Threshold finds the decision boundary between the two value classes by
// one-dimensional 2-means. Values that do not separate into distinct
// clusters fall back to the midpoint 0.5, so an all-ones or all-zeros
// bit sequence still decides correctly.
func Threshold(vals []float64) float64 {
	if len(vals) == 0 {
		return 0.5
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 0.2 {
		return 0.5
	}

	c0, c1 := lo, hi
	const etol = 1e-6
	for range 300 {
		th := (c0 + c1) / 2
		var lowSum, highSum float64
		var lows, highs int
		for _, v := range vals {
			if v >= th {
				highSum += v
				highs++
			} else {
				lowSum += v
				lows++
			}
		}
		if lows == 0 || highs == 0 {
			return th
		}
		c0, c1 = lowSum/float64(lows), highSum/float64(highs)
		if math.Abs((c0+c1)/2-th) < etol {
			break
		}
	}
	return (c0 + c1) / 2
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
