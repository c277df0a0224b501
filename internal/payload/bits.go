package payload

import (
	"math/rand"

	"github.com/yyyoichi/bitstream-go"
)

func packBytes(data []byte) []uint64 {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range data {
		w.Write8(0, 8, b)
	}
	return w.Data()
}

func unpackBytes(words []uint64, n int) []byte {
	r := bitstream.NewBitReader(words, 0, 0)
	out := make([]byte, n)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			bit, _ := r.ReadBitAt(i*8 + j)
			if bit {
				b |= 1 << uint(7-j)
			}
		}
		out[i] = b
	}
	return out
}

func wordsToBools(words []uint64, n int) []bool {
	r := bitstream.NewBitReader(words, 0, 0)
	out := make([]bool, n)
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return out
}

func boolsToWords(bits []bool) []uint64 {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range bits {
		w.WriteBool(b)
	}
	return w.Data()
}

func permutation(seed int64, length int) []int {
	index := make([]int, length)
	for i := range index {
		index[i] = i
	}
	rd := rand.New(rand.NewSource(seed))
	rd.Shuffle(length, func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index
}
