// Package mlt provides a thin top-level convenience API over the tile
// package, mirroring the way mebo's root package wraps its blob package for
// the common case.
//
// # Basic usage
//
// Encoding a tile is a matter of building tile.Layer values (a geometry
// column plus property columns driven by column.Instruction) and calling
// EncodeTile; decoding is the inverse:
//
//	data, err := mlt.EncodeTile(layers)
//	layers, err := mlt.DecodeTile(data)
//
// For storage or transport, Pack/Unpack wrap an already-encoded tile in the
// archive package's compression envelope. This package never imports
// compression into the codec path itself: Pack/Unpack are an explicit,
// separate, opt-in step, consistent with spec.md §5 ("the core contract
// exposes no scheduling primitives" and performs no I/O of its own).
package mlt

import (
	"github.com/maplibre/mlt-go/archive"
	"github.com/maplibre/mlt-go/format"
	"github.com/maplibre/mlt-go/tile"
)

// Layer is re-exported for callers that only need the top-level API.
type Layer = tile.Layer

// DecodedLayer is re-exported for callers that only need the top-level API.
type DecodedLayer = tile.DecodedLayer

// EncodeTile serializes layers into an MLT tile (spec.md §6).
func EncodeTile(layers []Layer) ([]byte, error) {
	return tile.EncodeTile(layers)
}

// DecodeTile parses an MLT tile into its layers.
func DecodeTile(data []byte) ([]DecodedLayer, error) {
	return tile.DecodeTile(data)
}

// Pack encodes layers and wraps the result in the archive envelope,
// compressed with algo.
func Pack(layers []Layer, algo format.CompressionType) ([]byte, error) {
	data, err := tile.EncodeTile(layers)
	if err != nil {
		return nil, err
	}

	return archive.Pack(data, algo)
}

// Unpack reverses Pack: unwraps the archive envelope, then decodes the
// resulting tile bytes.
func Unpack(archived []byte) ([]DecodedLayer, error) {
	data, err := archive.Unpack(archived)
	if err != nil {
		return nil, err
	}

	return tile.DecodeTile(data)
}
