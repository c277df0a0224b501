package hybridmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastefully-stained/hybridmark/internal/payload"
)

func TestSlotBits(t *testing.T) {
	bs := payload.Bitstream{
		Header: []bool{true, false},
		Body:   []bool{true, true, false},
	}

	got := slotBits(bs, 12)
	want := []bool{
		true, false, true, false, true, false, // header at redundancy 3
		true, true, false, true, true, false, // body wraps
	}
	assert.Equal(t, want, got)
}

func TestSlotBits_EmptyBody(t *testing.T) {
	bs := payload.Bitstream{Header: []bool{true}}
	got := slotBits(bs, 5)
	assert.Equal(t, []bool{true, true, true, false, false}, got)
}

func TestMinCarriers(t *testing.T) {
	exp := payload.HeaderCodedBits*headerRedundancy + 3*payload.CodedBits(1)
	assert.Equal(t, exp, minCarriers(3))
	assert.Less(t, minCarriers(1), minCarriers(5))
}

func TestCapacityBits(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	// 256x256 at 8x8 blocks: 1024 carriers, 414 header slots, 610 body
	// slots at redundancy 3 leave 203 per copy, eight Golay codewords.
	assert.Equal(t, 96, o.capacityBits(1024))
	assert.Equal(t, 0, o.capacityBits(minCarriers(3)-payload.CodedBits(1)))
	assert.Equal(t, 0, o.capacityBits(0))
}

func TestCheckCapacity(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	assert.NoError(t, o.checkCapacity(1024, 184, 256, 256))
	assert.ErrorIs(t, o.checkCapacity(1024, 207, 256, 256), ErrPayloadTooLarge)
	assert.ErrorIs(t, o.checkCapacity(100, 0, 80, 80), ErrImageTooSmall)
}

func TestDecodeCarriers_RoundTrip(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	data := []byte("HELLO")
	bs, err := payload.NewCodec(o.seed).Encode(data)
	require.NoError(t, err)

	const total = 1024
	soft := make([]float64, total)
	for s, bit := range slotBits(bs, total) {
		if bit {
			soft[s] = 0.93
		} else {
			soft[s] = 0.07
		}
	}

	out := o.decodeCarriers(soft, StrategyDCT)
	assert.True(t, out.Recovered)
	assert.Equal(t, data, out.Payload)
	assert.Equal(t, StrategyDCT, out.StrategyUsed)
	assert.Greater(t, out.Confidence, 0.9)
}

func TestDecodeCarriers_NoWatermark(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	// Soft estimates hovering around the midpoint describe an unmarked
	// carrier field: no payload, low-information confidence.
	soft := make([]float64, 1024)
	for i := range soft {
		soft[i] = 0.5 + 0.01*float64(i%5-2)
	}

	out := o.decodeCarriers(soft, StrategyDWT)
	assert.False(t, out.Recovered)
	assert.Nil(t, out.Payload)
	assert.Equal(t, StrategyDWT, out.StrategyUsed)
}
