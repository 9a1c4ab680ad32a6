package bitpack

import (
	"fmt"

	"github.com/maplibre/mlt-go/endian"
	"github.com/maplibre/mlt-go/errs"
)

// blockSize is the number of values fixed-bit-width packed together in one
// primary-codec block, mirroring FastPFOR's 128-lane layout.
const blockSize = 128

// wordOrder is the byte order of every u32 word in a FastPFOR composite
// payload: the N header word, block headers, and packed block words.
var wordOrder = endian.BigEndian()

// EncodeFastPFOR encodes xs as a FastPFOR-composite payload: a leading
// big-endian u32 word N giving the number of subsequent words consumed by
// the primary 128-lane codec, followed by that many primary words, followed
// by a VByte tail holding any values left over after the last full block of
// 128. The primary codec itself (fixed bit-width block packing) is not the
// real FastPFOR algorithm; spec.md treats FastPFOR as opaque and only
// requires decode(encode(xs)).take(len(xs)) == xs.
func EncodeFastPFOR(xs []uint32) []byte {
	fullBlocks := len(xs) / blockSize
	primary := make([]byte, 0, fullBlocks*blockSize/2)

	for b := 0; b < fullBlocks; b++ {
		block := xs[b*blockSize : (b+1)*blockSize]
		primary = append(primary, encodeBlock(block)...)
	}

	tail := make([]byte, 0, (len(xs)-fullBlocks*blockSize)*2)
	for _, v := range xs[fullBlocks*blockSize:] {
		tail = AppendUvarint(tail, uint64(v))
	}

	n := uint32(len(primary) / 4) //nolint:gosec

	out := make([]byte, 4, 4+len(primary)+len(tail))
	wordOrder.PutUint32(out, n)
	out = append(out, primary...)
	out = append(out, tail...)

	return out
}

// DecodeFastPFOR reverses EncodeFastPFOR, returning every value the payload
// carries. Callers truncate the result to the stream's declared num_values.
func DecodeFastPFOR(data []byte) ([]uint32, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("bitpack: %w: FastPFOR payload missing N word", errs.ErrTruncated)
	}

	n := wordOrder.Uint32(data)
	primaryLen := int(n) * 4

	if 4+primaryLen > len(data) {
		return nil, fmt.Errorf("bitpack: %w: FastPFOR N word exceeds payload", errs.ErrTruncated)
	}

	primary := data[4 : 4+primaryLen]
	tail := data[4+primaryLen:]

	out := make([]uint32, 0, len(primary)/2+len(tail))

	for len(primary) > 0 {
		block, rest, err := decodeBlock(primary)
		if err != nil {
			return nil, err
		}

		out = append(out, block...)
		primary = rest
	}

	for len(tail) > 0 {
		v, consumed, err := ReadUvarint(tail)
		if err != nil {
			return nil, fmt.Errorf("bitpack: %w: FastPFOR tail", err)
		}

		out = append(out, uint32(v)) //nolint:gosec
		tail = tail[consumed:]
	}

	return out, nil
}

// encodeBlock fixed-bit-width packs exactly blockSize values into a
// sequence of big-endian u32 words: one header word carrying the bit
// width, followed by ceil(blockSize*bitwidth/32) packed words.
func encodeBlock(values []uint32) []byte {
	bitwidth := 0
	for _, v := range values {
		if w := bitLen(v); w > bitwidth {
			bitwidth = w
		}
	}

	header := make([]byte, 4)
	wordOrder.PutUint32(header, uint32(bitwidth))

	totalBits := blockSize * bitwidth
	words := (totalBits + 31) / 32
	packed := make([]byte, words*4)

	bitPos := 0
	for _, v := range values {
		writeBits(packed, bitPos, v, bitwidth)
		bitPos += bitwidth
	}

	return append(header, packed...)
}

// decodeBlock reads one encodeBlock payload from the front of data and
// returns the unpacked values plus the unconsumed remainder.
func decodeBlock(data []byte) ([]uint32, []byte, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("bitpack: %w: FastPFOR block header truncated", errs.ErrTruncated)
	}

	bitwidth := int(wordOrder.Uint32(data))
	if bitwidth < 0 || bitwidth > 32 {
		return nil, nil, fmt.Errorf("bitpack: %w: FastPFOR block bit width %d out of range", errs.ErrIntegerOverflow, bitwidth)
	}

	totalBits := blockSize * bitwidth
	words := (totalBits + 31) / 32
	packedLen := words * 4

	if len(data) < 4+packedLen {
		return nil, nil, fmt.Errorf("bitpack: %w: FastPFOR block payload truncated", errs.ErrTruncated)
	}

	packed := data[4 : 4+packedLen]
	values := make([]uint32, blockSize)

	bitPos := 0
	for i := range values {
		values[i] = readBits(packed, bitPos, bitwidth)
		bitPos += bitwidth
	}

	return values, data[4+packedLen:], nil
}

func bitLen(v uint32) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}

	return n
}

// writeBits writes the low `width` bits of v into dst starting at bit
// offset bitPos, most-significant-bit of each word first.
func writeBits(dst []byte, bitPos int, v uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		bit := (v >> uint(i)) & 1
		if bit != 0 {
			byteIdx := bitPos / 8
			dst[byteIdx] |= 1 << uint(7-bitPos%8)
		}

		bitPos++
	}
}

// readBits reads `width` bits from src starting at bit offset bitPos,
// inverse of writeBits.
func readBits(src []byte, bitPos int, width int) uint32 {
	var v uint32

	for i := 0; i < width; i++ {
		byteIdx := bitPos / 8
		bit := (src[byteIdx] >> uint(7-bitPos%8)) & 1
		v = (v << 1) | uint32(bit)
		bitPos++
	}

	return v
}
