package geometry

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// prefixSum turns a slice of child counts into a cumulative offset array
// one longer than counts, the transform every level of the pyramid applies
// to its raw level-length stream (spec.md §4.5).
func prefixSum(counts []uint32) []uint32 {
	out := make([]uint32, len(counts)+1)

	var sum uint32

	for i, c := range counts {
		sum += c
		out[i+1] = sum
	}

	return out
}

// buildOffsets turns up to three raw level-length streams into the final
// cumulative offset arrays a Column exposes. Each raw stream, when present,
// holds exactly one entry per unit at its parent level's cumulative total:
// a real child count for a unit whose owning feature's type needs this
// level, or a literal 1 placeholder for a unit whose owning feature's type
// does not, so that the next level's expected length (this level's
// cumulative total) comes out correct regardless of which features in a
// mixed column actually use this level (spec.md §4.5's synthetic-run
// rule).
//
// geomRaw's parent is the feature itself (len(geomRaw) must equal
// len(types)); partRaw's parent is geomRaw's cumulative total when geomRaw
// is present, or the feature count otherwise; ringRaw's parent is partRaw's
// cumulative total the same way. A present level whose immediately
// shallower level is absent is fine (elided root); a present level whose
// raw length disagrees with its parent's cumulative total is not.
func buildOffsets(types []Type, geomRaw, partRaw, ringRaw []uint32) (geomOff, partOff, ringOff []uint32, err error) {
	featureCount := len(types)

	if geomRaw != nil {
		if len(geomRaw) != featureCount {
			return nil, nil, nil, fmt.Errorf("geometry: %w: geometry_offsets has %d entries, want %d", errs.ErrGeometryOutOfBounds, len(geomRaw), featureCount)
		}

		geomOff = prefixSum(geomRaw)
	}

	parentTotal := featureCount
	if geomOff != nil {
		parentTotal = int(geomOff[len(geomOff)-1])
	}

	if partRaw != nil {
		if len(partRaw) != parentTotal {
			return nil, nil, nil, fmt.Errorf("geometry: %w: part_offsets has %d entries, want %d", errs.ErrGeometryOutOfBounds, len(partRaw), parentTotal)
		}

		partOff = prefixSum(partRaw)
	}

	parentTotal = featureCount
	if partOff != nil {
		parentTotal = int(partOff[len(partOff)-1])
	} else if geomOff != nil {
		parentTotal = int(geomOff[len(geomOff)-1])
	}

	if ringRaw != nil {
		if len(ringRaw) != parentTotal {
			return nil, nil, nil, fmt.Errorf("geometry: %w: ring_offsets has %d entries, want %d", errs.ErrGeometryOutOfBounds, len(ringRaw), parentTotal)
		}

		ringOff = prefixSum(ringRaw)
	}

	if err := validatePresence(types, geomOff != nil, partOff != nil, ringOff != nil); err != nil {
		return nil, nil, nil, err
	}

	return geomOff, partOff, ringOff, nil
}

// validatePresence checks that every feature's type finds the levels it
// needs actually present in the column (spec.md §4.5 table).
func validatePresence(types []Type, hasGeom, hasPart, hasRing bool) error {
	for _, t := range types {
		if needsGeometryLevel(t) && !hasGeom {
			return fmt.Errorf("geometry: %w: type %s needs geometry_offsets", errs.ErrNoGeometryOffsets, t)
		}

		if needsPartLevel(t) && !hasPart {
			return fmt.Errorf("geometry: %w: type %s needs part_offsets", errs.ErrNoPartOffsets, t)
		}

		if needsRingLevel(t) && !hasRing {
			return fmt.Errorf("geometry: %w: type %s needs ring_offsets", errs.ErrNoRingOffsets, t)
		}
	}

	// A present level whose shallower neighbor is absent is fine (elided
	// root); a present ring level with no part level beneath an absent
	// geometry level is not a combination any type in the table produces.
	if hasRing && !hasPart {
		return fmt.Errorf("geometry: %w: ring_offsets present without part_offsets", errs.ErrUnexpectedOffsetCombination)
	}

	return nil
}
