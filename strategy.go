package hybridmark

import "fmt"

// Strategy selects which transform domain carries the watermark.
type Strategy int

const (
	// StrategyAuto analyzes the image and picks DCT or DWT.
	StrategyAuto Strategy = iota
	// StrategyDCT embeds in block DCT coefficients; resilient to
	// re-compression.
	StrategyDCT
	// StrategyDWT embeds in wavelet sub-band coefficients; resilient to
	// geometric resizing.
	StrategyDWT
	// StrategyHybrid embeds the same bitstream with both strategies,
	// DCT first then DWT.
	StrategyHybrid
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyDCT:
		return "dct"
	case StrategyDWT:
		return "dwt"
	case StrategyHybrid:
		return "hybrid"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func (s Strategy) valid() bool {
	return s >= StrategyAuto && s <= StrategyHybrid
}

// ParseStrategy parses the string form produced by String.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "auto":
		return StrategyAuto, nil
	case "dct":
		return StrategyDCT, nil
	case "dwt":
		return StrategyDWT, nil
	case "hybrid":
		return StrategyHybrid, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
}
