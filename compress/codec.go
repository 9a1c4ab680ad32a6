// Package compress provides the compression codecs used by the archive
// envelope (SPEC_FULL.md §D) that wraps an already-encoded MLT tile for
// storage or transport. The core stream/column/geometry packages never
// import this package: compression is an outer, opt-in layer, not part of
// the wire format's stream/column/geometry semantics.
package compress

import (
	"fmt"

	"github.com/maplibre/mlt-go/format"
)

// Compressor compresses a byte payload.
type Compressor interface {
	// Compress compresses data and returns the result, newly allocated for
	// every codec except NoOpCompressor, which returns data itself. The
	// input slice is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte payload produced by the matching
// Compressor.
type Decompressor interface {
	// Decompress decompresses data and returns the result, newly allocated
	// for every codec except NoOpCompressor, which returns data itself.
	// Returns an error if data is corrupted or was compressed with a
	// different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function returning a Codec for the given
// compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("compress: invalid compression type: %s", compressionType)
	}
}
