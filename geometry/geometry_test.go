package geometry

import (
	"testing"

	"github.com/maplibre/mlt-go/errs"
	"github.com/stretchr/testify/require"
)

func TestFeature_RoundTrip_Point(t *testing.T) {
	features := []Feature{
		{Type: Point, Point: [2]int32{10, 20}},
		{Type: Point, Point: [2]int32{-5, 7}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.Nil(t, col.GeometryOffsets)
	require.Nil(t, col.PartOffsets)
	require.Nil(t, col.RingOffsets)

	for i, want := range features {
		got, err := col.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFeature_RoundTrip_MultiPoint(t *testing.T) {
	features := []Feature{
		{Type: MultiPoint, MultiPoint: [][2]int32{{1, 1}, {2, 2}, {3, 3}}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.NotNil(t, col.GeometryOffsets)

	got, err := col.Feature(0)
	require.NoError(t, err)
	require.Equal(t, features[0], got)
}

func TestFeature_RoundTrip_LineString(t *testing.T) {
	features := []Feature{
		{Type: LineString, Line: [][2]int32{{0, 0}, {1, 0}, {1, 1}}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.Nil(t, col.GeometryOffsets)
	require.NotNil(t, col.PartOffsets)

	got, err := col.Feature(0)
	require.NoError(t, err)
	require.Equal(t, features[0], got)
}

func TestFeature_RoundTrip_MultiLineString(t *testing.T) {
	features := []Feature{
		{Type: MultiLineString, MultiLine: [][][2]int32{
			{{0, 0}, {1, 0}},
			{{5, 5}, {6, 5}, {6, 6}},
		}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)

	got, err := col.Feature(0)
	require.NoError(t, err)
	require.Equal(t, features[0], got)
}

func TestFeature_RoundTrip_Polygon(t *testing.T) {
	features := []Feature{
		{Type: Polygon, Poly: [][][2]int32{
			{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, // exterior
			{{1, 1}, {2, 1}, {2, 2}, {1, 2}}, // hole
		}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.NotNil(t, col.PartOffsets)
	require.NotNil(t, col.RingOffsets)

	got, err := col.Feature(0)
	require.NoError(t, err)
	require.Equal(t, features[0], got)
}

// TestEncodeFeatures_ClosedInputRing feeds a ring that already repeats its
// first vertex: encode drops the closing vertex, so the column stores four
// vertices and CloseRing restores the five-vertex closed form on output.
func TestEncodeFeatures_ClosedInputRing(t *testing.T) {
	closed := [][2]int32{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}

	col, err := EncodeFeatures([]Feature{
		{Type: Polygon, Poly: [][][2]int32{closed}},
	})
	require.NoError(t, err)
	require.Len(t, col.Vertices, 8)

	got, err := col.Feature(0)
	require.NoError(t, err)
	require.Equal(t, [][2]int32{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, got.Poly[0])

	reclosed := CloseRing(got.Poly[0])
	require.Len(t, reclosed, 5)
	require.Equal(t, reclosed[0], reclosed[4])
}

func TestFeature_RoundTrip_MultiPolygon(t *testing.T) {
	features := []Feature{
		{Type: MultiPolygon, MultiPoly: [][][][2]int32{
			{{{0, 0}, {4, 0}, {4, 4}, {0, 4}}},
			{{{10, 10}, {12, 10}, {12, 12}}, {{11, 11}, {12, 11}, {11, 12}}},
		}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)

	got, err := col.Feature(0)
	require.NoError(t, err)
	require.Equal(t, features[0], got)
}

func TestFeature_RoundTrip_MixedTypes(t *testing.T) {
	features := []Feature{
		{Type: Point, Point: [2]int32{1, 2}},
		{Type: MultiPoint, MultiPoint: [][2]int32{{3, 3}, {4, 4}}},
		{Type: LineString, Line: [][2]int32{{0, 0}, {9, 9}}},
		{Type: Polygon, Poly: [][][2]int32{{{0, 0}, {1, 0}, {1, 1}}}},
		{Type: MultiPolygon, MultiPoly: [][][][2]int32{
			{{{0, 0}, {1, 0}, {1, 1}}},
		}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.NotNil(t, col.GeometryOffsets)
	require.NotNil(t, col.PartOffsets)
	require.NotNil(t, col.RingOffsets)

	for i, want := range features {
		got, err := col.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestFeature_RoundTrip_MixedTypes_NoGeometryLevel covers a mixed-type
// column with no Multi* feature, so GeometryOffsets stays nil while
// PartOffsets/RingOffsets are still carried for the Polygon. A Point
// feature here must still resolve its own vertex by cascading through
// PartOffsets and RingOffsets rather than being read as a raw feature
// index — reproduces the case that TestFeature_RoundTrip_MixedTypes and
// wire_test.go's mixed-type case both miss because they always include a
// Multi* feature, which forces GeometryOffsets non-nil.
func TestFeature_RoundTrip_MixedTypes_NoGeometryLevel(t *testing.T) {
	features := []Feature{
		{Type: Polygon, Poly: [][][2]int32{{{0, 0}, {1, 0}, {1, 1}}}},
		{Type: Point, Point: [2]int32{9, 9}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.Nil(t, col.GeometryOffsets)
	require.NotNil(t, col.PartOffsets)
	require.NotNil(t, col.RingOffsets)

	for i, want := range features {
		got, err := col.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestFeature_RoundTrip_MixedTypes_PartLevelOnly covers the same
// no-Multi* scenario but with a LineString instead of a Polygon, so only
// PartOffsets (not RingOffsets) is carried alongside the Point.
func TestFeature_RoundTrip_MixedTypes_PartLevelOnly(t *testing.T) {
	features := []Feature{
		{Type: LineString, Line: [][2]int32{{0, 0}, {5, 5}}},
		{Type: Point, Point: [2]int32{-3, 8}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.Nil(t, col.GeometryOffsets)
	require.NotNil(t, col.PartOffsets)
	require.Nil(t, col.RingOffsets)

	for i, want := range features {
		got, err := col.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestFeature_RoundTrip_PolygonAndLineString mixes the polygon family with
// the line family and no Multi* type, so GeometryOffsets stays nil while
// the column carries both PartOffsets and RingOffsets. The LineString's
// part entry counts ring-level placeholder slots here, not vertices: its
// vertex range must cascade through RingOffsets or it reads the Polygon's
// own vertices.
func TestFeature_RoundTrip_PolygonAndLineString(t *testing.T) {
	features := []Feature{
		{Type: Polygon, Poly: [][][2]int32{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}},
		{Type: LineString, Line: [][2]int32{{9, 9}, {8, 8}}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.Nil(t, col.GeometryOffsets)
	require.NotNil(t, col.PartOffsets)
	require.NotNil(t, col.RingOffsets)

	for i, want := range features {
		got, err := col.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestFeature_RoundTrip_PolygonAndMultiPoint exercises the same cascade
// for single-vertex units: each MultiPoint unit owns one placeholder slot
// at the part and ring levels, so its vertex index is reached through
// both, not by using the geometry-unit index directly.
func TestFeature_RoundTrip_PolygonAndMultiPoint(t *testing.T) {
	features := []Feature{
		{Type: Polygon, Poly: [][][2]int32{{{0, 0}, {4, 0}, {4, 4}}}},
		{Type: MultiPoint, MultiPoint: [][2]int32{{7, 7}, {6, 5}}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)
	require.NotNil(t, col.GeometryOffsets)
	require.NotNil(t, col.RingOffsets)

	for i, want := range features {
		got, err := col.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestFeature_RoundTrip_MultiLineStringAndPolygon covers the multi-line
// variant of the family mix: every line's part entry cascades through the
// ring level that only the Polygon genuinely needs.
func TestFeature_RoundTrip_MultiLineStringAndPolygon(t *testing.T) {
	features := []Feature{
		{Type: MultiLineString, MultiLine: [][][2]int32{
			{{0, 0}, {1, 1}, {2, 2}},
			{{5, 5}, {6, 6}},
		}},
		{Type: Polygon, Poly: [][][2]int32{{{10, 10}, {14, 10}, {14, 14}, {10, 14}}}},
	}

	col, err := EncodeFeatures(features)
	require.NoError(t, err)

	for i, want := range features {
		got, err := col.Feature(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFeature_IndexOutOfBounds(t *testing.T) {
	col, err := EncodeFeatures([]Feature{{Type: Point, Point: [2]int32{1, 1}}})
	require.NoError(t, err)

	_, err = col.Feature(5)
	require.Error(t, err)
}

func TestEncodeFeatures_PolygonWithNoRings(t *testing.T) {
	_, err := EncodeFeatures([]Feature{{Type: Polygon}})
	require.Error(t, err)
}

func TestCloseRing(t *testing.T) {
	open := [][2]int32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	closed := CloseRing(open)
	require.Len(t, closed, 5)
	require.Equal(t, closed[0], closed[4])

	alreadyClosed := [][2]int32{{0, 0}, {1, 0}, {0, 0}}
	require.Equal(t, alreadyClosed, CloseRing(alreadyClosed))
}

func TestBuildOffsets_LengthMismatch(t *testing.T) {
	types := []Type{MultiPoint, MultiPoint}
	_, _, _, err := buildOffsets(types, []uint32{1}, nil, nil)
	require.Error(t, err)
}

func TestBuildOffsets_MissingLevel(t *testing.T) {
	types := []Type{LineString}
	_, _, _, err := buildOffsets(types, nil, nil, nil)
	require.ErrorIs(t, err, errs.ErrNoPartOffsets)
}
