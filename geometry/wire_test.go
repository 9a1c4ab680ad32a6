package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maplibre/mlt-go/stream"
)

func TestWire_RoundTrip_Points(t *testing.T) {
	features := []Feature{
		{Type: Point, Point: [2]int32{10, 20}},
		{Type: Point, Point: [2]int32{-5, 7}},
		{Type: Point, Point: [2]int32{100, -100}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)

	data, err := Encode(col)
	require.NoError(t, err)

	got, n, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, col, got)
}

func TestWire_RoundTrip_MixedTypes(t *testing.T) {
	features := []Feature{
		{Type: Point, Point: [2]int32{1, 2}},
		{Type: MultiPoint, MultiPoint: [][2]int32{{3, 3}, {4, 4}}},
		{Type: LineString, Line: [][2]int32{{0, 0}, {9, 9}}},
		{Type: MultiLineString, MultiLine: [][][2]int32{{{1, 1}, {2, 2}}, {{3, 3}, {4, 4}, {5, 5}}}},
		{Type: Polygon, Poly: [][][2]int32{{{0, 0}, {1, 0}, {1, 1}}}},
		{Type: MultiPolygon, MultiPoly: [][][][2]int32{{{{0, 0}, {1, 0}, {1, 1}}}}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)

	data, err := Encode(col)
	require.NoError(t, err)

	got, n, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	for i, want := range features {
		gotFeature, err := got.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, gotFeature)
	}
}

// TestWire_RoundTrip_MixedTypes_NoGeometryLevel covers a mixed-type wire
// round trip with no Multi* feature, so GeometryOffsets is absent from
// the encoded column while PartOffsets/RingOffsets still carry the
// Polygon's levels. See geometry_test.go's
// TestFeature_RoundTrip_MixedTypes_NoGeometryLevel for why this case
// needs its own test rather than relying on TestWire_RoundTrip_MixedTypes
// above, which always includes a Multi* feature.
func TestWire_RoundTrip_MixedTypes_NoGeometryLevel(t *testing.T) {
	features := []Feature{
		{Type: Polygon, Poly: [][][2]int32{{{0, 0}, {1, 0}, {1, 1}}}},
		{Type: Point, Point: [2]int32{9, 9}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.Nil(t, col.GeometryOffsets)

	data, err := Encode(col)
	require.NoError(t, err)

	got, n, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	for i, want := range features {
		gotFeature, err := got.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, gotFeature)
	}
}

func TestWire_RoundTrip_Polygons(t *testing.T) {
	features := []Feature{
		{Type: Polygon, Poly: [][][2]int32{
			{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
			{{1, 1}, {2, 1}, {2, 2}, {1, 2}},
		}},
		{Type: Polygon, Poly: [][][2]int32{
			{{10, 10}, {12, 10}, {12, 12}},
		}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)

	data, err := Encode(col)
	require.NoError(t, err)

	got, _, err := Decode(data)
	require.NoError(t, err)

	for i, want := range features {
		gotFeature, err := got.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, gotFeature)
	}
}

// TestWire_RoundTrip_PolygonAndLineString drives the polygon/line family
// mix (no Multi*, so no geometry level) through the full wire cycle: the
// LineString's vertices sit after the Polygon's in the buffer and must be
// recovered via the ring-level cascade, not read as a raw part range.
func TestWire_RoundTrip_PolygonAndLineString(t *testing.T) {
	features := []Feature{
		{Type: Polygon, Poly: [][][2]int32{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}},
		{Type: LineString, Line: [][2]int32{{9, 9}, {8, 8}}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)

	data, err := Encode(col)
	require.NoError(t, err)

	got, _, err := Decode(data)
	require.NoError(t, err)

	for i, want := range features {
		gotFeature, err := got.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, gotFeature)
	}
}

func TestEncode_RejectsVertexOffsets(t *testing.T) {
	col := Column{
		Types:         []Type{Point},
		VertexOffsets: []uint32{0},
		Vertices:      []int32{1, 2},
	}

	_, err := Encode(col)
	require.Error(t, err)
}

func TestDecode_TruncatedInput(t *testing.T) {
	_, _, err := Decode([]byte{0x01})
	require.Error(t, err)
}

func TestDecode_MissingVertexStream(t *testing.T) {
	col, err := EncodeFeatures([]Feature{{Type: Point, Point: [2]int32{1, 1}}})
	require.NoError(t, err)

	data, err := Encode(col)
	require.NoError(t, err)

	// Truncate the stream count down to drop the vertex stream while
	// keeping the types stream intact.
	data[0] = 1

	_, _, err = Decode(data)
	require.Error(t, err)
}

type mortonEncoder struct{}

func (mortonEncoder) Config() EncoderConfig {
	return EncoderConfig{
		Types:          stream.RleVarint(),
		Levels:         stream.Varint(),
		VertexPhysical: stream.PhysicalVByte,
		VertexMorton:   true,
		MortonBits:     16,
		MortonShift:    0,
	}
}

// TestWire_RoundTrip_MortonVertices drives the alternative vertex layout
// through a custom encoder capability: the column round-trips byte-for-byte
// at the feature level even though the vertex stream is Morton-coded.
func TestWire_RoundTrip_MortonVertices(t *testing.T) {
	features := []Feature{
		{Type: Point, Point: [2]int32{10, 20}},
		{Type: LineString, Line: [][2]int32{{0, 0}, {100, 200}, {300, 150}}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)

	data, err := EncodeWith(col, mortonEncoder{})
	require.NoError(t, err)

	got, _, err := Decode(data)
	require.NoError(t, err)

	for i, want := range features {
		gotFeature, err := got.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, gotFeature)
	}
}
