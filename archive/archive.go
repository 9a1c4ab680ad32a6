// Package archive provides a thin envelope around an already-encoded MLT
// tile for storage or transport (SPEC_FULL.md §D). spec.md itself says
// nothing about how an encoded tile is persisted or shipped over the wire;
// this package wraps compress.Codec the same way mebo's blob package wraps
// compress at Finish() time, kept entirely separate from tile.Encode/
// tile.Decode so the core codec stays a pure transformation (spec.md §5).
package archive

import (
	"fmt"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/compress"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/format"
)

// Pack compresses tileBytes with the given algorithm and wraps the result
// in a small self-describing envelope: a one-byte algorithm tag, a varint
// original (uncompressed) length, then the compressed payload. Unpack checks
// the decompressed size against the original length rather than trusting
// the codec alone.
func Pack(tileBytes []byte, algo format.CompressionType) ([]byte, error) {
	codec, err := compress.CreateCodec(algo)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	compressed, err := codec.Compress(tileBytes)
	if err != nil {
		return nil, fmt.Errorf("archive: compress: %w", err)
	}

	dst := []byte{byte(algo)}
	dst = bitpack.AppendUvarint(dst, uint64(len(tileBytes)))
	dst = append(dst, compressed...)

	return dst, nil
}

// Unpack reverses Pack: reads the algorithm tag and original length, then
// decompresses the payload and checks it matches the declared length.
func Unpack(archived []byte) ([]byte, error) {
	if len(archived) < 1 {
		return nil, fmt.Errorf("archive: %w: missing algorithm tag", errs.ErrTruncated)
	}

	algo := format.CompressionType(archived[0])

	originalLen, n, err := bitpack.ReadUvarint(archived[1:])
	if err != nil {
		return nil, fmt.Errorf("archive: %w: original length", err)
	}

	codec, err := compress.CreateCodec(algo)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	payload := archived[1+n:]

	tileBytes, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("archive: decompress: %w", err)
	}

	if uint64(len(tileBytes)) != originalLen {
		return nil, fmt.Errorf("archive: %w: decompressed to %d bytes, envelope declared %d", errs.ErrArchiveLengthMismatch, len(tileBytes), originalLen)
	}

	return tileBytes, nil
}
