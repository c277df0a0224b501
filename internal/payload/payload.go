// Package payload turns an opaque byte payload into the self-describing
// error-corrected bitstream carried by the watermark strategies, and back.
//
// Layout: a fixed-size Golay-coded header (magic, payload length, CRC32
// of the payload, scheme id) followed by the Golay(23,12)-coded payload
// bits under a deterministic seed-keyed shuffle. The header decodes
// independently of the body, which is what lets extraction distinguish
// "no watermark here" from "watermark too degraded".
package payload

import (
	"encoding/binary"
	"errors"
	"hash/crc32"

	"github.com/yyyoichi/golay"
)

// MaxPayload is the largest payload Encode accepts, in bytes.
const MaxPayload = 4096

const (
	magic         uint16 = 0x484D // "HM"
	headerRawBits        = 72     // magic16 + length16 + crc32 + scheme8

	// schemeGolayShuffle identifies Golay(23,12) with deterministic shuffle.
	schemeGolayShuffle byte = 1
)

// HeaderCodedBits is the on-image size of the coded header.
var HeaderCodedBits = golay.EncodedBits(headerRawBits)

// Golay(23,12) codeword geometry, used for capacity accounting.
const (
	codewordBits     = 23
	codewordDataBits = 12
)

// CodedBits returns the coded size of n payload bits.
func CodedBits(n int) int {
	return golay.EncodedBits(n)
}

// MaxDataBits returns the largest payload bit count whose coded form
// fits into the given number of carrier slots.
func MaxDataBits(codedSlots int) int {
	return (codedSlots / codewordBits) * codewordDataBits
}

var (
	// ErrTooLarge reports a payload above MaxPayload or the carrier capacity.
	ErrTooLarge = errors.New("payload too large")
	// ErrChecksumMismatch reports an unreadable header: the image most
	// likely carries no watermark, or a foreign one.
	ErrChecksumMismatch = errors.New("header checksum mismatch")
	// ErrUncorrectable reports payload damage beyond ECC tolerance.
	ErrUncorrectable = errors.New("uncorrectable payload errors")
)

// Header is the decoded bitstream header.
type Header struct {
	Length   int    // payload length in bytes
	Checksum uint32 // CRC32 (IEEE) of the payload
	Scheme   byte
}

// CodedBodyBits returns how many coded bits the body occupies on-image.
func (h Header) CodedBodyBits() int {
	return golay.EncodedBits(h.Length * 8)
}

// Bitstream is an encoded payload, split so carriers can place the
// header at fixed positions ahead of the body.
type Bitstream struct {
	Header []bool
	Body   []bool
}

// Codec encodes and decodes payload bitstreams. The seed keys the
// deterministic body shuffle; encode and decode must agree on it.
// Codec values are immutable and safe to share across goroutines.
type Codec struct {
	seed int64
}

// NewCodec returns a codec with the given shuffle seed.
func NewCodec(seed int64) Codec {
	return Codec{seed: seed}
}

// Encode builds the coded bitstream for data. Pure and deterministic.
func (c Codec) Encode(data []byte) (Bitstream, error) {
	if len(data) > MaxPayload {
		return Bitstream{}, ErrTooLarge
	}
	var bs Bitstream
	bs.Header = c.encodeHeader(len(data), crc32.ChecksumIEEE(data))
	if len(data) == 0 {
		return bs, nil
	}

	size := len(data) * 8
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(packBytes(data), size)
	coded := wordsToBools(encoded, enc.Bits())

	// Deterministic shuffle spreads locally clustered carrier damage
	// across Golay codewords.
	perm := permutation(c.seed, len(coded))
	bs.Body = make([]bool, len(coded))
	for i := range coded {
		bs.Body[i] = coded[perm[i]]
	}
	return bs, nil
}

// DecodeHeader recovers the header from its coded bits. It never
// inspects the body, so a damaged payload still yields a valid header.
func (c Codec) DecodeHeader(bits []bool) (Header, error) {
	if len(bits) != HeaderCodedBits {
		return Header{}, ErrChecksumMismatch
	}
	var decoded []uint64
	dec := golay.NewDecoder(boolsToWords(bits), len(bits))
	if err := dec.Decode(&decoded); err != nil {
		return Header{}, ErrChecksumMismatch
	}
	raw := unpackBytes(decoded, headerRawBits/8)
	h := Header{
		Length:   int(binary.BigEndian.Uint16(raw[2:4])),
		Checksum: binary.BigEndian.Uint32(raw[4:8]),
		Scheme:   raw[8],
	}
	if binary.BigEndian.Uint16(raw[0:2]) != magic ||
		h.Scheme != schemeGolayShuffle ||
		h.Length > MaxPayload {
		return Header{}, ErrChecksumMismatch
	}
	return h, nil
}

// DecodeBody recovers and verifies the payload from its coded bits.
func (c Codec) DecodeBody(bits []bool, h Header) ([]byte, error) {
	if h.Length == 0 {
		if h.Checksum != crc32.ChecksumIEEE(nil) {
			return nil, ErrUncorrectable
		}
		return []byte{}, nil
	}
	if len(bits) != h.CodedBodyBits() {
		return nil, ErrUncorrectable
	}

	perm := permutation(c.seed, len(bits))
	coded := make([]bool, len(bits))
	for i := range bits {
		coded[perm[i]] = bits[i]
	}

	var decoded []uint64
	dec := golay.NewDecoder(boolsToWords(coded), len(coded))
	if err := dec.Decode(&decoded); err != nil {
		return nil, ErrUncorrectable
	}
	data := unpackBytes(decoded, h.Length)
	if crc32.ChecksumIEEE(data) != h.Checksum {
		return nil, ErrUncorrectable
	}
	return data, nil
}

func (c Codec) encodeHeader(length int, sum uint32) []bool {
	raw := make([]byte, headerRawBits/8)
	binary.BigEndian.PutUint16(raw[0:2], magic)
	binary.BigEndian.PutUint16(raw[2:4], uint16(length))
	binary.BigEndian.PutUint32(raw[4:8], sum)
	raw[8] = schemeGolayShuffle

	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(packBytes(raw), headerRawBits)
	return wordsToBools(encoded, enc.Bits())
}
