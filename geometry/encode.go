package geometry

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// EncodeFeatures builds a Column from typed input geometries, computing
// the offset pyramid's raw level-length streams and the flat vertex buffer
// in the single pass order Decode expects to reverse (spec.md §4.5's
// encode-side mirror). Each feature appends real per-child counts at
// exactly the levels its type needs. At any other level the column
// carries only because some other feature's type needs it, the feature
// instead writes one literal-1 placeholder entry per unit it owns at the
// level immediately above (a single placeholder when that level above is
// itself the feature, n placeholders when the level above was a real or
// placeholder Multi*-count of n). This keeps every level's raw stream
// length equal to the cumulative total of the shallower level's values,
// real or placeholder alike, so a later, differently-typed feature's real
// entries land at the right offset without this feature needing
// per-child granularity at a level its type never descends into.
//
// Polygon rings are stored open: a ring whose last vertex repeats its
// first (exact integer equality) has that closing vertex dropped before
// counting and appending.
//
// Vertex deduplication (VertexOffsets) and the reserved index_buffer/
// triangles fields are decode-only; EncodeFeatures never populates them.
func EncodeFeatures(features []Feature) (Column, error) {
	types := make([]Type, len(features))

	var anyGeom, anyPart, anyRing bool

	for i, f := range features {
		if err := validType(f.Type); err != nil {
			return Column{}, err
		}

		types[i] = f.Type
		anyGeom = anyGeom || needsGeometryLevel(f.Type)
		anyPart = anyPart || needsPartLevel(f.Type)
		anyRing = anyRing || needsRingLevel(f.Type)
	}

	var geomRaw, partRaw, ringRaw []uint32

	var vertices []int32

	for _, f := range features {
		if err := appendCounts(f, anyGeom, anyPart, anyRing, &geomRaw, &partRaw, &ringRaw); err != nil {
			return Column{}, err
		}

		appendVertices(f, &vertices)
	}

	geomOff, partOff, ringOff, err := buildOffsets(types, geomRaw, partRaw, ringRaw)
	if err != nil {
		return Column{}, err
	}

	return Column{
		Types:           types,
		GeometryOffsets: geomOff,
		PartOffsets:     partOff,
		RingOffsets:     ringOff,
		Vertices:        vertices,
	}, nil
}

func u32(n int) uint32 { return uint32(n) } //nolint:gosec

// openRing drops the repeated closing vertex when the input ring arrives
// closed. Comparison is exact integer equality; callers pre-quantise, so a
// nearly-closed ring is treated as open.
func openRing(ring [][2]int32) [][2]int32 {
	if len(ring) >= 2 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}

	return ring
}

// appendPlaceholderRun appends n literal-1 entries to dst when the column
// carries this level at all: n is the number of units this feature
// contributes at the level above (1 for a level whose parent is the
// feature itself, or a real multi-value count when the level above is a
// Multi* geometry/part count). Every one of those parent units still owes
// the next level exactly one child, so a feature whose type does not
// descend into this level still writes n trivial entries, keeping the
// cumulative total that a later, differently-typed feature's real entries
// are offset against correct (spec.md §4.5's synthetic-run rule).
func appendPlaceholderRun(dst *[]uint32, enabled bool, n uint32) {
	if !enabled {
		return
	}

	for i := uint32(0); i < n; i++ {
		*dst = append(*dst, 1)
	}
}

func appendCounts(f Feature, anyGeom, anyPart, anyRing bool, geomRaw, partRaw, ringRaw *[]uint32) error {
	switch f.Type {
	case Point:
		appendPlaceholderRun(geomRaw, anyGeom, 1)
		appendPlaceholderRun(partRaw, anyPart, 1)
		appendPlaceholderRun(ringRaw, anyRing, 1)
	case MultiPoint:
		n := u32(len(f.MultiPoint))
		if anyGeom {
			*geomRaw = append(*geomRaw, n)
		}

		appendPlaceholderRun(partRaw, anyPart, n)
		appendPlaceholderRun(ringRaw, anyRing, n)
	case LineString:
		appendPlaceholderRun(geomRaw, anyGeom, 1)

		vcount := u32(len(f.Line))
		if anyPart {
			*partRaw = append(*partRaw, vcount)
		}

		appendPlaceholderRun(ringRaw, anyRing, vcount)
	case MultiLineString:
		if anyGeom {
			*geomRaw = append(*geomRaw, u32(len(f.MultiLine)))
		}

		for _, line := range f.MultiLine {
			v := u32(len(line))
			if anyPart {
				*partRaw = append(*partRaw, v)
			}

			appendPlaceholderRun(ringRaw, anyRing, v)
		}
	case Polygon:
		appendPlaceholderRun(geomRaw, anyGeom, 1)

		if len(f.Poly) == 0 {
			return fmt.Errorf("geometry: %w: polygon feature has no rings", errs.ErrNoRingOffsets)
		}

		if anyPart {
			*partRaw = append(*partRaw, u32(len(f.Poly)))
		}

		if anyRing {
			for _, ring := range f.Poly {
				*ringRaw = append(*ringRaw, u32(len(openRing(ring))))
			}
		}
	case MultiPolygon:
		if anyGeom {
			*geomRaw = append(*geomRaw, u32(len(f.MultiPoly)))
		}

		if anyPart {
			for _, poly := range f.MultiPoly {
				*partRaw = append(*partRaw, u32(len(poly)))
			}
		}

		if anyRing {
			for _, poly := range f.MultiPoly {
				for _, ring := range poly {
					*ringRaw = append(*ringRaw, u32(len(openRing(ring))))
				}
			}
		}
	default:
		return fmt.Errorf("geometry: %w: geometry type %d", errs.ErrInvalidColumnType, uint8(f.Type))
	}

	return nil
}

func appendVertices(f Feature, dst *[]int32) {
	switch f.Type {
	case Point:
		*dst = append(*dst, f.Point[0], f.Point[1])
	case MultiPoint:
		for _, v := range f.MultiPoint {
			*dst = append(*dst, v[0], v[1])
		}
	case LineString:
		for _, v := range f.Line {
			*dst = append(*dst, v[0], v[1])
		}
	case MultiLineString:
		for _, line := range f.MultiLine {
			for _, v := range line {
				*dst = append(*dst, v[0], v[1])
			}
		}
	case Polygon:
		for _, ring := range f.Poly {
			for _, v := range openRing(ring) {
				*dst = append(*dst, v[0], v[1])
			}
		}
	case MultiPolygon:
		for _, poly := range f.MultiPoly {
			for _, ring := range poly {
				for _, v := range openRing(ring) {
					*dst = append(*dst, v[0], v[1])
				}
			}
		}
	}
}
