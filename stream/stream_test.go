package stream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/errs"
)

func TestStreamType_ByteRoundTrip(t *testing.T) {
	for _, typ := range []Type{
		PresentType(),
		DataType(DictionaryNone),
		DataType(DictionaryFsst),
		OffsetStreamType(OffsetVertex),
		LengthStreamType(LengthRings),
	} {
		got, err := ParseType(typ.Byte())
		require.NoError(t, err)
		require.Equal(t, typ, got)
	}
}

func TestParseType_InvalidKind(t *testing.T) {
	_, err := ParseType(0xF0)
	require.Error(t, err)
}

func TestEncoding_ByteRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{
		{Logical1: LogicalNone, Physical: PhysicalNone},
		{Logical1: LogicalDelta, Physical: PhysicalVByte},
		{Logical1: LogicalComponentwiseDelta, Physical: PhysicalFastPFOR},
		{Logical1: LogicalDelta, Logical2: Logical2Rle, Physical: PhysicalVByte},
		{Logical1: LogicalRle, Physical: PhysicalNone},
		{Logical1: LogicalMorton, Physical: PhysicalVByte},
		{Logical1: LogicalPseudoDecimal, Physical: PhysicalVByte},
	} {
		got, err := ParseEncoding(enc.Byte())
		require.NoError(t, err)
		require.Equal(t, enc, got)
	}
}

func TestParseEncoding_IllegalCombo(t *testing.T) {
	bad := Encoding{Logical1: LogicalMorton, Logical2: Logical2Rle, Physical: PhysicalNone}
	_, err := ParseEncoding(bad.Byte())
	require.Error(t, err)
}

func TestParseEncoding_ALPReserved(t *testing.T) {
	alp := Encoding{Logical1: LogicalNone, Physical: PhysicalALP}
	_, err := ParseEncoding(alp.Byte())
	require.Error(t, err)
}

func TestMeta_RoundTrip_Plain(t *testing.T) {
	m := Meta{
		Type:       DataType(DictionaryNone),
		Encoding:   Encoding{Logical1: LogicalNone, Physical: PhysicalVByte},
		NumValues:  10,
		ByteLength: 20,
	}

	buf := m.AppendTo(nil)
	got, n, err := ParseMeta(buf, false)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, m, got)
}

func TestMeta_RoundTrip_Rle(t *testing.T) {
	m := Meta{
		Type:         DataType(DictionaryNone),
		Encoding:     Encoding{Logical1: LogicalRle, Physical: PhysicalVByte},
		NumValues:    100,
		ByteLength:   12,
		Runs:         3,
		NumRleValues: 6,
	}

	buf := m.AppendTo(nil)
	got, n, err := ParseMeta(buf, false)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, m, got)
}

func TestMeta_RoundTrip_Morton(t *testing.T) {
	m := Meta{
		Type:            DataType(DictionaryMorton),
		Encoding:        Encoding{Logical1: LogicalMorton, Physical: PhysicalVByte},
		NumValues:       4,
		ByteLength:      4,
		NumBits:         32,
		CoordinateShift: 0,
	}

	buf := m.AppendTo(nil)
	got, n, err := ParseMeta(buf, false)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, m, got)
}

func TestMeta_RoundTrip_Boolean(t *testing.T) {
	m := Meta{
		Type:       PresentType(),
		Encoding:   Encoding{Logical1: LogicalRle, Physical: PhysicalNone},
		NumValues:  20,
		ByteLength: 4,
		Runs:       3,
		NumRleValues: 4,
		Boolean:    true,
	}

	buf := m.AppendTo(nil)
	got, n, err := ParseMeta(buf, true)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, m, got)
}

func TestMeta_Truncated(t *testing.T) {
	_, _, err := ParseMeta([]byte{0x10}, false)
	require.Error(t, err)
}

func TestStream_ParseBytesRoundTrip(t *testing.T) {
	s, err := EncodeU32(DataType(DictionaryNone), []uint32{1, 2, 3, 4}, Varint())
	require.NoError(t, err)

	buf := s.Bytes()
	got, n, err := Parse(buf, false)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, s, got)
}

func TestStream_ParseTruncatedPayload(t *testing.T) {
	s, err := EncodeU32(DataType(DictionaryNone), []uint32{1, 2, 3}, Plain())
	require.NoError(t, err)

	buf := s.Bytes()
	_, _, err = Parse(buf[:len(buf)-1], false)
	require.Error(t, err)
}

func TestEncodeDecodeU32_Plain(t *testing.T) {
	values := []uint32{5, 10, 15, 20, 25}

	for _, preset := range []Preset{Plain(), Varint(), FastPFOR()} {
		s, err := EncodeU32(DataType(DictionaryNone), values, preset)
		require.NoError(t, err)

		got, err := DecodeU32(s)
		require.NoError(t, err)
		require.Equal(t, values, got)
	}
}

func TestEncodeDecodeU32_Rle(t *testing.T) {
	values := []uint32{1, 1, 1, 2, 2, 3}

	for _, preset := range []Preset{RleVarint(), RleFastPFOR()} {
		s, err := EncodeU32(DataType(DictionaryNone), values, preset)
		require.NoError(t, err)

		got, err := DecodeU32(s)
		require.NoError(t, err)
		require.Equal(t, values, got)
	}
}

func TestEncodeDecodeDeltaI32(t *testing.T) {
	values := []int32{100, 105, 103, 103, 200, -50}

	s, err := EncodeDeltaI32(DataType(DictionaryNone), values, Varint())
	require.NoError(t, err)

	got, err := DecodeDeltaI32(s)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestEncodeDecodeDeltaRleI32(t *testing.T) {
	values := []int32{10, 10, 10, 20, 20, 30, 5}

	s, err := EncodeDeltaI32(DataType(DictionaryNone), values, Preset{Logical1: LogicalDelta, Logical2: Logical2Rle, Physical: PhysicalVByte})
	require.NoError(t, err)
	require.True(t, s.Meta.Encoding.IsDeltaRle())

	got, err := DecodeDeltaI32(s)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestEncodeDecodeComponentwiseDeltaI32(t *testing.T) {
	values := []int32{0, 0, 10, 20, 10, 21, 15, 21}

	s, err := EncodeComponentwiseDeltaI32(DataType(DictionaryNone), values, PhysicalVByte)
	require.NoError(t, err)

	got, err := DecodeComponentwiseDeltaI32(s)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestEncodeDecodeMortonI32(t *testing.T) {
	coords := []int32{10, 20, 15, 25, 0, 0}

	s, err := EncodeMortonI32(DataType(DictionaryMorton), coords, 16, 0, PhysicalVByte)
	require.NoError(t, err)

	got, err := DecodeMortonI32(s)
	require.NoError(t, err)
	require.Equal(t, coords, got)
}

func TestEncodeDecodeBoolean(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, true, true}

	s := EncodeBoolean(PresentType(), bits)
	got, err := DecodeBoolean(s)
	require.NoError(t, err)
	require.Equal(t, bits, got)
}

func TestEncodeDecodePseudoDecimalF64(t *testing.T) {
	values := []float64{100.125, -0.3, 42, 0, 1234.5}

	s, err := EncodePseudoDecimalF64(DataType(DictionaryNone), values, PhysicalVByte)
	require.NoError(t, err)
	require.Equal(t, LogicalPseudoDecimal, s.Meta.Encoding.Logical1)

	got, err := DecodePseudoDecimalF64(s)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestEncodePseudoDecimalF64_WireRoundTrip(t *testing.T) {
	values := []float64{-7.25, 3.1}

	s, err := EncodePseudoDecimalF64(DataType(DictionaryNone), values, PhysicalVByte)
	require.NoError(t, err)

	parsed, _, err := Parse(s.Bytes(), false)
	require.NoError(t, err)

	got, err := DecodePseudoDecimalF64(parsed)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestEncodePseudoDecimalF64_FastPFORUnsupported(t *testing.T) {
	_, err := EncodePseudoDecimalF64(DataType(DictionaryNone), []float64{1.5}, PhysicalFastPFOR)
	require.ErrorIs(t, err, errs.ErrUnsupported)
}

func TestParse_DeclaredCapExceeded(t *testing.T) {
	s, err := EncodeU32(DataType(DictionaryNone), []uint32{1, 2, 3, 4, 5, 6, 7, 8}, Varint())
	require.NoError(t, err)

	buf := s.Bytes()

	_, _, err = Parse(buf, false, WithDeclaredCap(4))
	require.ErrorIs(t, err, errs.ErrDeclaredSizeTooLarge)

	got, _, err := Parse(buf, false)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestDecodePhysicalU32_VByteOverflow(t *testing.T) {
	payload := bitpack.AppendUvarint(nil, uint64(math.MaxUint32)+1)

	_, err := DecodePhysicalU32(payload, PhysicalVByte, 1)
	require.ErrorIs(t, err, errs.ErrIntegerOverflow)
}
