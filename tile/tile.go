// Package tile implements the MLT external wire format (spec.md §6): a Tile
// is a sequence of Layers, each a named group of features sharing an extent
// and a fixed set of columns. This package only ties the column and geometry
// packages together into the Layer/Tile framing; it does not itself define
// any stream or column encoding (that lives in stream/column/geometry).
package tile

import (
	"fmt"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/column"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/geometry"
	"github.com/maplibre/mlt-go/internal/pool"
)

// Layer is one encoder-side layer: a geometry column plus zero or more
// property columns, described the same way column.EncodeBatch takes them
// (spec.md §4.6 batch instructions).
type Layer struct {
	Name         string
	Extent       uint32
	FeatureCount uint32

	GeometryName string
	Geometry     geometry.Column

	Properties   []column.DecodedProperty
	Instructions []column.Instruction
}

// DecodedLayer is one parsed layer.
type DecodedLayer struct {
	Name         string
	Extent       uint32
	FeatureCount uint32

	GeometryName string
	Geometry     geometry.Column

	Properties []column.DecodedProperty
}

// EncodeLayer serializes l: layer_name, extent, feature_count, column_count,
// then the geometry column followed by l.Instructions' property columns
// (spec.md §6's Layer grammar; this package always places geometry first,
// an encoder convention — Decode does not depend on column order).
func EncodeLayer(l Layer) ([]byte, error) {
	geomBody, err := geometry.Encode(l.Geometry)
	if err != nil {
		return nil, err
	}

	propBytes, err := column.EncodeBatch(l.Properties, l.Instructions)
	if err != nil {
		return nil, err
	}

	columnCount := uint64(1 + column.OutputColumnCount(l.Instructions))

	buf := pool.Stream.Get()
	defer pool.Stream.Put(buf)

	buf.MustWrite(column.AppendString(nil, l.Name))
	buf.MustWrite(bitpack.AppendUvarint(nil, uint64(l.Extent)))
	buf.MustWrite(bitpack.AppendUvarint(nil, uint64(l.FeatureCount)))
	buf.MustWrite(bitpack.AppendUvarint(nil, columnCount))

	buf.MustWrite([]byte{byte(column.Geometry)})
	buf.MustWrite(column.AppendString(nil, l.GeometryName))
	buf.MustWrite(geomBody)

	buf.MustWrite(propBytes)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// EncodeTile serializes layers in order (spec.md §6: Tile := Layer*), using
// the shared whole-tile buffer pool to amortize allocation across layers
// the way mebo's blob encoders pool their final-assembly buffer.
func EncodeTile(layers []Layer) ([]byte, error) {
	buf := pool.Tile.Get()
	defer pool.Tile.Put(buf)

	for _, l := range layers {
		b, err := EncodeLayer(l)
		if err != nil {
			return nil, err
		}

		buf.MustWrite(b)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// DecodeLayer parses one layer from the front of data, returning the layer
// and the number of bytes consumed. Columns are visited in wire order;
// a Geometry-typed column is routed to the geometry package, everything
// else to column.DecodeColumn, regardless of position (spec.md §6 makes no
// ordering guarantee beyond "column_count Column entries").
func DecodeLayer(data []byte) (DecodedLayer, int, error) {
	name, n, err := column.ParseString(data)
	if err != nil {
		return DecodedLayer{}, 0, fmt.Errorf("tile: %w: layer_name", err)
	}

	offset := n

	extent, n, err := bitpack.ReadUvarint(data[offset:])
	if err != nil {
		return DecodedLayer{}, 0, fmt.Errorf("tile: %w: extent", err)
	}

	offset += n

	featureCount, n, err := bitpack.ReadUvarint(data[offset:])
	if err != nil {
		return DecodedLayer{}, 0, fmt.Errorf("tile: %w: feature_count", err)
	}

	offset += n

	columnCount, n, err := bitpack.ReadUvarint(data[offset:])
	if err != nil {
		return DecodedLayer{}, 0, fmt.Errorf("tile: %w: column_count", err)
	}

	offset += n

	out := DecodedLayer{
		Name:         name,
		Extent:       uint32(extent),      //nolint:gosec
		FeatureCount: uint32(featureCount), //nolint:gosec
	}

	haveGeometry := false

	for ci := uint64(0); ci < columnCount; ci++ {
		if len(data) <= offset {
			return DecodedLayer{}, 0, fmt.Errorf("tile: %w: column header", errs.ErrTruncated)
		}

		if column.Type(data[offset]) == column.Geometry {
			offset++

			geomName, n, err := column.ParseString(data[offset:])
			if err != nil {
				return DecodedLayer{}, 0, fmt.Errorf("tile: %w: geometry column name", err)
			}

			offset += n

			geomCol, n, err := geometry.Decode(data[offset:])
			if err != nil {
				return DecodedLayer{}, 0, err
			}

			offset += n
			out.GeometryName = geomName
			out.Geometry = geomCol
			haveGeometry = true

			continue
		}

		col, n, err := column.DecodeColumn(data[offset:])
		if err != nil {
			return DecodedLayer{}, 0, err
		}

		offset += n
		out.Properties = append(out.Properties, col.Properties()...)
	}

	if !haveGeometry {
		return DecodedLayer{}, 0, fmt.Errorf("tile: %w: layer has no geometry column", errs.ErrColumnCountMismatch)
	}

	return out, offset, nil
}

// DecodeTile parses every layer in data in order.
func DecodeTile(data []byte) ([]DecodedLayer, error) {
	var layers []DecodedLayer

	offset := 0

	for offset < len(data) {
		l, n, err := DecodeLayer(data[offset:])
		if err != nil {
			return nil, err
		}

		offset += n
		layers = append(layers, l)
	}

	return layers, nil
}
