package hybridmark

import "fmt"

// Option configures an Orchestrator. The resulting configuration is
// immutable for the life of the instance and safe to share across
// concurrent calls.
type Option func(*Orchestrator) error

// WithStrategy sets the embedding strategy. Extraction with an explicit
// DCT or DWT strategy restricts the attempt to that single domain;
// Auto and Hybrid try DCT first, then DWT.
func WithStrategy(s Strategy) Option {
	return func(o *Orchestrator) error {
		if !s.valid() {
			return fmt.Errorf("%w: %v", ErrInvalidStrategy, s)
		}
		o.strategy = s
		return nil
	}
}

// WithStrength sets the embedding strength in (0,1]. Larger values
// increase robustness at the cost of visibility.
func WithStrength(strength float64) Option {
	return func(o *Orchestrator) error {
		if strength <= 0 || strength > 1 {
			return fmt.Errorf("%w: %v not in (0,1]", ErrInvalidStrength, strength)
		}
		o.strength = strength
		return nil
	}
}

// WithBlockSize sets the DCT block edge length. Values below 4 are
// raised to 4; odd values are rounded up to the next even number.
func WithBlockSize(n int) Option {
	return func(o *Orchestrator) error {
		if n%2 != 0 {
			n++
		}
		if n < 4 {
			n = 4
		}
		o.blockSize = n
		return nil
	}
}

// WithPyramidLevels sets the wavelet decomposition depth (1..6).
func WithPyramidLevels(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 || n > 6 {
			return fmt.Errorf("pyramid levels %d out of range [1,6]", n)
		}
		o.levels = n
		return nil
	}
}

// WithRedundancy sets how many carrier slots each coded payload bit is
// guaranteed to occupy. Capacity is declared against this factor.
func WithRedundancy(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			return fmt.Errorf("redundancy %d must be at least 1", n)
		}
		o.redundancy = n
		return nil
	}
}

// WithConfidenceThreshold sets the minimum extraction confidence for an
// outcome to be reported as recovered.
func WithConfidenceThreshold(t float64) Option {
	return func(o *Orchestrator) error {
		if t < 0 || t > 1 {
			return fmt.Errorf("confidence threshold %v not in [0,1]", t)
		}
		o.confidenceThreshold = t
		return nil
	}
}

// WithSelectionThresholds sets the Auto strategy decision rule: images
// with edge density and mean region variance at or above these values
// are treated as photographic content and get DCT, everything else DWT.
func WithSelectionThresholds(edgeDensity, variance float64) Option {
	return func(o *Orchestrator) error {
		o.edgeThreshold = edgeDensity
		o.varianceThreshold = variance
		return nil
	}
}

// WithShuffleSeed sets the seed of the deterministic payload shuffle.
// Embed and extract must agree on it.
func WithShuffleSeed(seed int64) Option {
	return func(o *Orchestrator) error {
		o.seed = seed
		return nil
	}
}
