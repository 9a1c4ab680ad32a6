package stream

import (
	"fmt"
	"math"

	"github.com/maplibre/mlt-go/bitpack"
	"github.com/maplibre/mlt-go/endian"
	"github.com/maplibre/mlt-go/errs"
)

// sampleOrder is the byte order of fixed-width (PhysicalNone) samples: the
// wire format pins them little-endian, unlike FastPFOR's big-endian words.
var sampleOrder = endian.LittleEndian()

// EncodePhysicalU32 turns values into payload bytes per the requested
// physical encoding. FastPFOR and VByte apply to u32 streams; None stores
// each value as 4 little-endian bytes.
func EncodePhysicalU32(values []uint32, p Physical) ([]byte, error) {
	switch p {
	case PhysicalNone:
		out := make([]byte, 4*len(values))
		for i, v := range values {
			sampleOrder.PutUint32(out[i*4:], v)
		}

		return out, nil
	case PhysicalVByte:
		out := make([]byte, 0, len(values)*2)
		for _, v := range values {
			out = bitpack.AppendUvarint(out, uint64(v))
		}

		return out, nil
	case PhysicalFastPFOR:
		return bitpack.EncodeFastPFOR(values), nil
	default:
		return nil, fmt.Errorf("stream: %w: physical encoding %d for u32 stream", errs.ErrUnsupported, p)
	}
}

// DecodePhysicalU32 reverses EncodePhysicalU32, returning exactly numValues
// values.
func DecodePhysicalU32(data []byte, p Physical, numValues int) ([]uint32, error) {
	switch p {
	case PhysicalNone:
		if len(data) < 4*numValues {
			return nil, fmt.Errorf("stream: %w: u32 payload truncated", errs.ErrTruncated)
		}

		out := make([]uint32, numValues)
		for i := range out {
			out[i] = sampleOrder.Uint32(data[i*4:])
		}

		return out, nil
	case PhysicalVByte:
		out := make([]uint32, 0, numValues)
		rest := data

		for vi := 0; vi < numValues; vi++ {
			v, n, err := bitpack.ReadUvarint(rest)
			if err != nil {
				return nil, fmt.Errorf("stream: %w: VByte u32 payload", err)
			}

			if v > math.MaxUint32 {
				return nil, fmt.Errorf("stream: %w: VByte value %d exceeds u32", errs.ErrIntegerOverflow, v)
			}

			out = append(out, uint32(v))
			rest = rest[n:]
		}

		return out, nil
	case PhysicalFastPFOR:
		out, err := bitpack.DecodeFastPFOR(data)
		if err != nil {
			return nil, err
		}

		if len(out) < numValues {
			return nil, fmt.Errorf("stream: %w: FastPFOR produced fewer values than declared", errs.ErrTruncated)
		}

		return out[:numValues], nil
	default:
		return nil, fmt.Errorf("stream: %w: physical encoding %d for u32 stream", errs.ErrUnsupported, p)
	}
}

// EncodePhysicalU64 turns values into payload bytes. FastPFOR does not
// apply to 64-bit streams (spec.md §4.3); only None and VByte are legal.
func EncodePhysicalU64(values []uint64, p Physical) ([]byte, error) {
	switch p {
	case PhysicalNone:
		out := make([]byte, 8*len(values))
		for i, v := range values {
			sampleOrder.PutUint64(out[i*8:], v)
		}

		return out, nil
	case PhysicalVByte:
		out := make([]byte, 0, len(values)*2)
		for _, v := range values {
			out = bitpack.AppendUvarint(out, v)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("stream: %w: physical encoding %d for u64 stream", errs.ErrUnsupported, p)
	}
}

// DecodePhysicalU64 reverses EncodePhysicalU64.
func DecodePhysicalU64(data []byte, p Physical, numValues int) ([]uint64, error) {
	switch p {
	case PhysicalNone:
		if len(data) < 8*numValues {
			return nil, fmt.Errorf("stream: %w: u64 payload truncated", errs.ErrTruncated)
		}

		out := make([]uint64, numValues)
		for i := range out {
			out[i] = sampleOrder.Uint64(data[i*8:])
		}

		return out, nil
	case PhysicalVByte:
		out := make([]uint64, 0, numValues)
		rest := data

		for vi := 0; vi < numValues; vi++ {
			v, n, err := bitpack.ReadUvarint(rest)
			if err != nil {
				return nil, fmt.Errorf("stream: %w: VByte u64 payload", err)
			}

			out = append(out, v)
			rest = rest[n:]
		}

		return out, nil
	default:
		return nil, fmt.Errorf("stream: %w: physical encoding %d for u64 stream", errs.ErrUnsupported, p)
	}
}
