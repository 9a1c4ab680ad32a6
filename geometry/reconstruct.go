package geometry

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// Feature is one feature's reconstructed geometry, a tagged union selected
// by Type. Rings are stored open (no repeated closing vertex); CloseRing
// appends it back for callers that need a closed ring (spec.md §4.5 "ring
// closure", the external GeoJSON shape this package mirrors for tests but
// does not itself implement).
type Feature struct {
	Type Type

	Point      [2]int32
	MultiPoint [][2]int32
	Line       [][2]int32
	MultiLine  [][][2]int32
	Poly       [][][2]int32   // rings, first = exterior
	MultiPoly  [][][][2]int32 // polygons -> rings -> vertices
}

func oobVertex(idx uint32, limit int) error {
	return fmt.Errorf("geometry: %w: vertex index %d exceeds buffer of %d vertices", errs.ErrGeometryVertexOutOfBounds, idx, limit)
}

func oobOffset(idx uint32, limit int) error {
	return fmt.Errorf("geometry: %w: offset index %d exceeds array of %d entries", errs.ErrGeometryOutOfBounds, idx, limit)
}

// Feature reconstructs the i-th feature's typed geometry.
func (c Column) Feature(i int) (Feature, error) {
	if i < 0 || i >= len(c.Types) {
		return Feature{}, fmt.Errorf("geometry: %w: feature index %d exceeds %d features", errs.ErrGeometryOutOfBounds, i, len(c.Types))
	}

	t := c.Types[i]
	f := Feature{Type: t}

	var err error

	switch t {
	case Point:
		idx, ierr := c.vertexSelfIndex(i)
		if ierr != nil {
			return Feature{}, ierr
		}

		x, y, verr := c.vertexAt(idx)
		if verr != nil {
			return Feature{}, verr
		}

		f.Point = [2]int32{x, y}
	case MultiPoint:
		f.MultiPoint, err = c.pointsAt(i)
	case LineString:
		f.Line, err = c.lineAt(i)
	case MultiLineString:
		f.MultiLine, err = c.multiLineAt(i)
	case Polygon:
		f.Poly, err = c.polygonAt(i)
	case MultiPolygon:
		f.MultiPoly, err = c.multiPolygonAt(i)
	}

	if err != nil {
		return Feature{}, err
	}

	return f, nil
}

// featureGeomRange returns the [start,end) range of "geometry unit" indices
// owned by feature i, read from GeometryOffsets. Callers only reach this
// when their type needs the geometry level, which validatePresence already
// guaranteed is present.
func (c Column) featureGeomRange(i int) (uint32, uint32, error) {
	if len(c.GeometryOffsets) <= i+1 {
		return 0, 0, oobOffset(uint32(i+1), len(c.GeometryOffsets)) //nolint:gosec
	}

	return c.GeometryOffsets[i], c.GeometryOffsets[i+1], nil
}

// selfIndex returns the single geometry-unit index representing feature i
// itself: GeometryOffsets[i] when present (a type that doesn't need its own
// geometry-level branching still gets a length-1 placeholder range there
// when the column carries it for other, Multi*, features), or i directly
// when GeometryOffsets is absent entirely.
func (c Column) selfIndex(i int) (uint32, error) {
	if c.GeometryOffsets == nil {
		return uint32(i), nil //nolint:gosec
	}

	s, _, err := c.featureGeomRange(i)

	return s, err
}

// resolveVertexIndex cascades a part-level slot down to its vertex index
// through whichever deeper levels the column carries. A feature that owns
// single-vertex units (Point, MultiPoint) still gets one placeholder entry
// per unit at every deeper level the column stores for other features'
// sake, so its vertex index is found by following those entries in order —
// PartOffsets[slot] gives the ring-level slot, RingOffsets[slot] the
// vertex index — never by using the slot directly. When neither level is
// present the slot is already the vertex index. Grounded on
// original_source/rust/mlt-core/src/layer/v01/geometry/mod.rs's to_geojson,
// GeometryType::Point arm, which cascades through the same levels in the
// same order.
func (c Column) resolveVertexIndex(idx uint32) (uint32, error) {
	if c.PartOffsets != nil {
		if len(c.PartOffsets) <= int(idx) {
			return 0, oobOffset(idx, len(c.PartOffsets))
		}

		idx = c.PartOffsets[idx]
	}

	if c.RingOffsets != nil {
		if len(c.RingOffsets) <= int(idx) {
			return 0, oobOffset(idx, len(c.RingOffsets))
		}

		idx = c.RingOffsets[idx]
	}

	return idx, nil
}

// vertexSelfIndex resolves feature i's own vertex index for a type that
// owns none of the offset levels (Point): the feature index descends
// through GeometryOffsets when the column carries it, then through the
// deeper levels via resolveVertexIndex.
func (c Column) vertexSelfIndex(i int) (uint32, error) {
	idx := uint32(i) //nolint:gosec

	if c.GeometryOffsets != nil {
		if len(c.GeometryOffsets) <= int(idx) {
			return 0, oobOffset(idx, len(c.GeometryOffsets))
		}

		idx = c.GeometryOffsets[idx]
	}

	return c.resolveVertexIndex(idx)
}

func (c Column) pointsAt(i int) ([][2]int32, error) {
	start, end, err := c.featureGeomRange(i)
	if err != nil {
		return nil, err
	}

	out := make([][2]int32, 0, end-start)

	for idx := start; idx < end; idx++ {
		v, err := c.resolveVertexIndex(idx)
		if err != nil {
			return nil, err
		}

		x, y, err := c.vertexAt(v)
		if err != nil {
			return nil, err
		}

		out = append(out, [2]int32{x, y})
	}

	return out, nil
}

// vertexRangeAt returns the vertex index range for the part-level entry at
// idx. A part entry's children live at the next level down: when the
// column carries a ring level (some feature in the column is
// polygon-family), a line-family part entry of n vertices was encoded
// alongside n single-vertex placeholder entries at the ring level, so the
// part boundaries are ring-level slots and must cascade through
// RingOffsets before indexing vertices. Without a ring level the part
// boundaries index vertices directly.
func (c Column) vertexRangeAt(idx uint32) (uint32, uint32, error) {
	if len(c.PartOffsets) <= int(idx)+1 {
		return 0, 0, oobOffset(idx+1, len(c.PartOffsets))
	}

	s, e := c.PartOffsets[idx], c.PartOffsets[idx+1]

	if c.RingOffsets != nil {
		if len(c.RingOffsets) <= int(e) {
			return 0, 0, oobOffset(e, len(c.RingOffsets))
		}

		s, e = c.RingOffsets[s], c.RingOffsets[e]
	}

	return s, e, nil
}

func (c Column) verticesInRange(start, end uint32) ([][2]int32, error) {
	out := make([][2]int32, 0, end-start)

	for idx := start; idx < end; idx++ {
		x, y, err := c.vertexAt(idx)
		if err != nil {
			return nil, err
		}

		out = append(out, [2]int32{x, y})
	}

	return out, nil
}

func (c Column) lineAt(i int) ([][2]int32, error) {
	idx, err := c.selfIndex(i)
	if err != nil {
		return nil, err
	}

	s, e, err := c.vertexRangeAt(idx)
	if err != nil {
		return nil, err
	}

	return c.verticesInRange(s, e)
}

func (c Column) multiLineAt(i int) ([][][2]int32, error) {
	start, end, err := c.featureGeomRange(i)
	if err != nil {
		return nil, err
	}

	lines := make([][][2]int32, 0, end-start)

	for idx := start; idx < end; idx++ {
		s, e, err := c.vertexRangeAt(idx)
		if err != nil {
			return nil, err
		}

		verts, err := c.verticesInRange(s, e)
		if err != nil {
			return nil, err
		}

		lines = append(lines, verts)
	}

	return lines, nil
}

// ringRangeAt returns the ring-index range owned by the part-level entry at
// idx (PartOffsets indexes into RingOffsets when ring level is present).
func (c Column) ringRangeAt(idx uint32) (uint32, uint32, error) {
	if len(c.PartOffsets) <= int(idx)+1 {
		return 0, 0, oobOffset(idx+1, len(c.PartOffsets))
	}

	return c.PartOffsets[idx], c.PartOffsets[idx+1], nil
}

func (c Column) ringVerticesAt(ringIdx uint32) ([][2]int32, error) {
	if len(c.RingOffsets) <= int(ringIdx)+1 {
		return nil, oobOffset(ringIdx+1, len(c.RingOffsets))
	}

	return c.verticesInRange(c.RingOffsets[ringIdx], c.RingOffsets[ringIdx+1])
}

func (c Column) polygonAt(i int) ([][][2]int32, error) {
	idx, err := c.selfIndex(i)
	if err != nil {
		return nil, err
	}

	rs, re, err := c.ringRangeAt(idx)
	if err != nil {
		return nil, err
	}

	rings := make([][][2]int32, 0, re-rs)

	for r := rs; r < re; r++ {
		verts, err := c.ringVerticesAt(r)
		if err != nil {
			return nil, err
		}

		rings = append(rings, verts)
	}

	return rings, nil
}

func (c Column) multiPolygonAt(i int) ([][][][2]int32, error) {
	start, end, err := c.featureGeomRange(i)
	if err != nil {
		return nil, err
	}

	polys := make([][][][2]int32, 0, end-start)

	for p := start; p < end; p++ {
		rs, re, err := c.ringRangeAt(p)
		if err != nil {
			return nil, err
		}

		rings := make([][][2]int32, 0, re-rs)

		for r := rs; r < re; r++ {
			verts, err := c.ringVerticesAt(r)
			if err != nil {
				return nil, err
			}

			rings = append(rings, verts)
		}

		polys = append(polys, rings)
	}

	return polys, nil
}

// CloseRing returns ring with its first vertex re-appended, unless the
// ring is already closed: per spec.md's ring-closure Open Question
// decision (recorded in DESIGN.md), "already closed" is exact integer
// equality between the first and last vertex, not a tolerance comparison.
func CloseRing(ring [][2]int32) [][2]int32 {
	if len(ring) == 0 {
		return ring
	}

	first, last := ring[0], ring[len(ring)-1]
	if first == last {
		return ring
	}

	out := make([][2]int32, len(ring)+1)
	copy(out, ring)
	out[len(ring)] = first

	return out
}
