package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maplibre/mlt-go/stream"
)

func TestEncodeDecodeBool_RoundTrip(t *testing.T) {
	values := []bool{true, false, true, true}

	data := EncodeBool("flag", values, nil, Plain())

	typ := Type(data[0])
	require.Equal(t, Bool, typ)

	name, n, err := ParseString(data[1:])
	require.NoError(t, err)
	require.Equal(t, "flag", name)

	got, consumed, err := DecodeBoolBody(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
	require.Nil(t, got.Present)
	require.Equal(t, len(data)-1-n, consumed)
}

func TestEncodeDecodeBool_Optional(t *testing.T) {
	values := []bool{true, false}
	present := []bool{true, false, true}

	data := EncodeBool("flag", values, present, ScalarEncoder{Optional: true, Preset: Plain().Preset})

	name, n, err := ParseString(data[1:])
	require.NoError(t, err)
	require.Equal(t, "flag", name)

	got, _, err := DecodeBoolBody(data[1+n:], true)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
	require.Equal(t, present, got.Present)
}

func TestEncodeDecodeI32_RoundTrip(t *testing.T) {
	values := []int32{-5, 0, 100, 42}

	data, err := EncodeI32("speed", values, nil, ScalarEncoder{Preset: stream.Plain()})
	require.NoError(t, err)

	name, n, err := ParseString(data[1:])
	require.NoError(t, err)
	require.Equal(t, "speed", name)

	got, _, err := DecodeI32Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestEncodeDecodeI32_DeltaPreset(t *testing.T) {
	values := []int32{10, 12, 11, 50, 50}

	data, err := EncodeI32("speed", values, nil, ScalarEncoder{Preset: stream.Preset{Logical1: stream.LogicalDelta, Physical: stream.PhysicalVByte}})
	require.NoError(t, err)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeI32Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestEncodeDecodeU32_RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 1000, 4294967295}

	data, err := EncodeU32("code", values, nil, ScalarEncoder{Preset: stream.Plain()})
	require.NoError(t, err)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeU32Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestEncodeDecodeI64_RoundTrip(t *testing.T) {
	values := []int64{-1, 1 << 40, 0}

	data, err := EncodeI64("ts", values, nil, ScalarEncoder{Preset: stream.Plain()})
	require.NoError(t, err)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeI64Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestEncodeDecodeU64_RoundTrip(t *testing.T) {
	values := []uint64{0, 1 << 50}

	data, err := EncodeU64("ts", values, nil, ScalarEncoder{Preset: stream.Plain()})
	require.NoError(t, err)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeU64Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestEncodeDecodeI8_RoundTrip(t *testing.T) {
	values := []int8{-128, -1, 0, 127}

	data, err := EncodeI8("level", values, nil, ScalarEncoder{Preset: stream.Plain()})
	require.NoError(t, err)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeI8Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestEncodeDecodeU8_RoundTrip(t *testing.T) {
	values := []uint8{0, 1, 255}

	data, err := EncodeU8("level", values, nil, ScalarEncoder{Preset: stream.Plain()})
	require.NoError(t, err)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeU8Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestEncodeDecodeF32_RoundTrip(t *testing.T) {
	values := []float32{1.5, -2.25, 0}

	data := EncodeF32("ratio", values, nil, false)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeF32Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

// TestEncodeDecodeF64_LossyRoundTrip locks in spec.md §4.4's documented F64
// precision loss: values are demoted to float32 on the wire, so a value
// outside float32's exact range comes back rounded, not identical.
func TestEncodeDecodeF64_LossyRoundTrip(t *testing.T) {
	values := []float64{1.0 / 3.0, 100.125}

	data, err := EncodeF64("ratio", values, nil, ScalarEncoder{})
	require.NoError(t, err)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeF64Body(data[1+n:], false)
	require.NoError(t, err)

	require.Len(t, got.Values, len(values))
	require.NotEqual(t, values[0], got.Values[0])
	require.InDelta(t, values[0], got.Values[0], 1e-6)
	require.Equal(t, values[1], got.Values[1])
}

// TestEncodeDecodeF64_PseudoDecimal covers the alternative F64 wire form:
// pseudo-decimal pair streams carry decimal fractions exactly, including
// values float32 cannot represent.
func TestEncodeDecodeF64_PseudoDecimal(t *testing.T) {
	values := []float64{100.125, -0.3, 12345678.9, 0, 42}

	data, err := EncodeF64("elevation", values, nil, ScalarEncoder{PseudoDecimal: true})
	require.NoError(t, err)

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeF64Body(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestDecodeBoolBody_PresenceCountMismatch(t *testing.T) {
	data := EncodeBool("flag", []bool{true, false, true}, []bool{true, false, true}, ScalarEncoder{Optional: true})

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	_, _, err = DecodeBoolBody(data[1+n:], true)
	require.Error(t, err)
}
