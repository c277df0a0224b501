package payload

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	test := []struct {
		name string
		data []byte
	}{
		{name: "short ascii", data: []byte("HELLO")},
		{name: "single byte", data: []byte{0xff}},
		{name: "binary", data: []byte{0x00, 0x01, 0x80, 0xfe, 0x7f}},
		{name: "utf8", data: []byte("透かし")},
		{name: "empty", data: []byte{}},
		{name: "max size", data: bytes.Repeat([]byte{0xa5}, MaxPayload)},
	}
	cdc := NewCodec(42)
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			bs, err := cdc.Encode(tt.data)
			require.NoError(t, err)
			require.Len(t, bs.Header, HeaderCodedBits)

			hdr, err := cdc.DecodeHeader(bs.Header)
			require.NoError(t, err)
			assert.Equal(t, len(tt.data), hdr.Length)
			require.Len(t, bs.Body, hdr.CodedBodyBits())

			got, err := cdc.DecodeBody(bs.Body, hdr)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestCodec_ErrorCorrection(t *testing.T) {
	// Golay(23,12) corrects three errors per codeword, so three flips
	// anywhere in the coded body must always be recoverable.
	cdc := NewCodec(42)
	data := []byte("the quick brown fox jumps over the lazy dog")
	bs, err := cdc.Encode(data)
	require.NoError(t, err)

	damaged := append([]bool(nil), bs.Body...)
	for _, i := range []int{1, len(damaged) / 2, len(damaged) - 2} {
		damaged[i] = !damaged[i]
	}

	hdr, err := cdc.DecodeHeader(bs.Header)
	require.NoError(t, err)
	got, err := cdc.DecodeBody(damaged, hdr)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCodec_HeaderErrorCorrection(t *testing.T) {
	cdc := NewCodec(42)
	bs, err := cdc.Encode([]byte("payload"))
	require.NoError(t, err)

	damaged := append([]bool(nil), bs.Header...)
	damaged[0] = !damaged[0]
	damaged[40] = !damaged[40]
	damaged[len(damaged)-1] = !damaged[len(damaged)-1]

	hdr, err := cdc.DecodeHeader(damaged)
	require.NoError(t, err)
	assert.Equal(t, 7, hdr.Length)
}

func TestCodec_TooLarge(t *testing.T) {
	cdc := NewCodec(42)
	_, err := cdc.Encode(make([]byte, MaxPayload+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestCodec_UnmarkedHeader(t *testing.T) {
	cdc := NewCodec(42)

	t.Run("all zero bits", func(t *testing.T) {
		_, err := cdc.DecodeHeader(make([]bool, HeaderCodedBits))
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})
	t.Run("wrong length", func(t *testing.T) {
		_, err := cdc.DecodeHeader(make([]bool, HeaderCodedBits-1))
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})
}

func TestCodec_CorruptBody(t *testing.T) {
	cdc := NewCodec(42)
	data := []byte("fragile payload")
	bs, err := cdc.Encode(data)
	require.NoError(t, err)
	hdr, err := cdc.DecodeHeader(bs.Header)
	require.NoError(t, err)

	t.Run("inverted body", func(t *testing.T) {
		damaged := make([]bool, len(bs.Body))
		for i, b := range bs.Body {
			damaged[i] = !b
		}
		_, err := cdc.DecodeBody(damaged, hdr)
		assert.ErrorIs(t, err, ErrUncorrectable)
	})
	t.Run("wrong length", func(t *testing.T) {
		_, err := cdc.DecodeBody(bs.Body[:len(bs.Body)-1], hdr)
		assert.ErrorIs(t, err, ErrUncorrectable)
	})
}

func TestCodec_SeedMismatch(t *testing.T) {
	// Decoding under the wrong shuffle seed must fail the checksum, not
	// silently return garbage.
	data := []byte("seed keyed payload")
	bs, err := NewCodec(1).Encode(data)
	require.NoError(t, err)

	other := NewCodec(2)
	hdr, err := other.DecodeHeader(bs.Header)
	require.NoError(t, err)
	_, err = other.DecodeBody(bs.Body, hdr)
	assert.ErrorIs(t, err, ErrUncorrectable)
}

func TestPermutation_Deterministic(t *testing.T) {
	a := permutation(7, 100)
	b := permutation(7, 100)
	assert.Equal(t, a, b)

	c := permutation(8, 100)
	assert.NotEqual(t, a, c)

	seen := make([]bool, 100)
	for _, i := range a {
		require.False(t, seen[i], "index %d appears twice", i)
		seen[i] = true
	}
}

func TestCapacityAccounting(t *testing.T) {
	assert.Equal(t, 0, CodedBits(0))
	assert.Equal(t, 23, CodedBits(1))
	assert.Equal(t, 23, CodedBits(12))
	assert.Equal(t, 46, CodedBits(13))

	assert.Equal(t, 0, MaxDataBits(22))
	assert.Equal(t, 12, MaxDataBits(23))
	assert.Equal(t, 12, MaxDataBits(45))
	assert.Equal(t, 96, MaxDataBits(203))
}
