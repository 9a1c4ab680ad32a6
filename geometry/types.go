// Package geometry implements the geometry column (spec.md §3, §4.5): the
// geometry-type list, the offset pyramid of level length streams, the flat
// vertex buffer, and the reconstruction algorithm that turns those into
// per-feature typed geometries.
package geometry

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// Type is a feature's OGC geometry type (spec.md §3).
type Type uint8

const (
	Point Type = iota
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
)

func (t Type) String() string {
	switch t {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	case MultiPoint:
		return "MultiPoint"
	case MultiLineString:
		return "MultiLineString"
	case MultiPolygon:
		return "MultiPolygon"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

func validType(t Type) error {
	if t > MultiPolygon {
		return fmt.Errorf("geometry: %w: geometry type %d", errs.ErrInvalidColumnType, uint8(t))
	}

	return nil
}

// needsGeometryLevel reports whether t needs its own entry set at the
// geometry_offsets level (spec.md §4.5 table): true only for the Multi*
// types, which have more than one child geometry per feature.
func needsGeometryLevel(t Type) bool {
	switch t {
	case MultiPoint, MultiLineString, MultiPolygon:
		return true
	default:
		return false
	}
}

// needsPartLevel reports whether t needs its own entry set at the
// part_offsets level: every type except Point and MultiPoint, which bottom
// out directly at the vertex buffer with no intermediate "part" grouping.
func needsPartLevel(t Type) bool {
	switch t {
	case LineString, MultiLineString, Polygon, MultiPolygon:
		return true
	default:
		return false
	}
}

// needsRingLevel reports whether t needs its own entry set at the
// ring_offsets level: only the polygon types, whose parts are rings rather
// than bare vertex runs.
func needsRingLevel(t Type) bool {
	switch t {
	case Polygon, MultiPolygon:
		return true
	default:
		return false
	}
}
