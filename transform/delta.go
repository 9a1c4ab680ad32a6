package transform

import "github.com/maplibre/mlt-go/bitpack"

// DecodeDelta32 reconstructs a signed i32 sequence from zigzag-encoded
// successive differences.
func DecodeDelta32(zigzags []uint32) []int32 {
	out := make([]int32, len(zigzags))

	var running int32
	for i, z := range zigzags {
		running += bitpack.ZigzagDecode32(z)
		out[i] = running
	}

	return out
}

// EncodeDelta32 inverts DecodeDelta32.
func EncodeDelta32(values []int32) []uint32 {
	out := make([]uint32, len(values))

	var prev int32
	for i, v := range values {
		out[i] = bitpack.ZigzagEncode32(v - prev)
		prev = v
	}

	return out
}

// DecodeDelta64 is the 64-bit counterpart of DecodeDelta32.
func DecodeDelta64(zigzags []uint64) []int64 {
	out := make([]int64, len(zigzags))

	var running int64
	for i, z := range zigzags {
		running += bitpack.ZigzagDecode64(z)
		out[i] = running
	}

	return out
}

// EncodeDelta64 inverts DecodeDelta64.
func EncodeDelta64(values []int64) []uint64 {
	out := make([]uint64, len(values))

	var prev int64
	for i, v := range values {
		out[i] = bitpack.ZigzagEncode64(v - prev)
		prev = v
	}

	return out
}

// DecodeComponentwiseDelta32 treats zigzags as interleaved (x, y) pairs and
// applies Delta independently to each component.
func DecodeComponentwiseDelta32(zigzags []uint32) ([]int32, error) {
	if err := checkEven(len(zigzags)); err != nil {
		return nil, err
	}

	out := make([]int32, len(zigzags))

	var runningX, runningY int32
	for i := 0; i < len(zigzags); i += 2 {
		runningX += bitpack.ZigzagDecode32(zigzags[i])
		runningY += bitpack.ZigzagDecode32(zigzags[i+1])
		out[i] = runningX
		out[i+1] = runningY
	}

	return out, nil
}

// EncodeComponentwiseDelta32 inverts DecodeComponentwiseDelta32.
func EncodeComponentwiseDelta32(values []int32) ([]uint32, error) {
	if err := checkEven(len(values)); err != nil {
		return nil, err
	}

	out := make([]uint32, len(values))

	var prevX, prevY int32
	for i := 0; i < len(values); i += 2 {
		out[i] = bitpack.ZigzagEncode32(values[i] - prevX)
		out[i+1] = bitpack.ZigzagEncode32(values[i+1] - prevY)
		prevX, prevY = values[i], values[i+1]
	}

	return out, nil
}
