package stream

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/internal/options"
)

// Stream is a decoded envelope plus its raw payload bytes, before the
// logical/physical dispatch in codec.go turns the payload into typed
// values.
type Stream struct {
	Meta    Meta
	Payload []byte
}

// Bytes serializes the full stream: header followed by payload.
func (s Stream) Bytes() []byte {
	return append(s.Meta.AppendTo(nil), s.Payload...)
}

// DefaultDeclaredCap is the allocation cap Parse enforces when the caller
// does not override it with WithDeclaredCap: a header may not declare more
// than this many values or payload bytes. Decoders size output buffers
// from the declared num_values before reading a single payload byte, so
// an unchecked header is an allocation amplifier.
const DefaultDeclaredCap = 1 << 30

type parseConfig struct {
	declaredCap uint32
}

// ParseOption configures Parse.
type ParseOption = options.Option[*parseConfig]

// WithDeclaredCap overrides the cap on a header's declared num_values and
// byte_length. Headers declaring more fail with ErrDeclaredSizeTooLarge.
func WithDeclaredCap(limit uint32) ParseOption {
	return options.NoError(func(c *parseConfig) {
		c.declaredCap = limit
	})
}

// Parse reads one stream (header + payload) from the front of data.
func Parse(data []byte, boolean bool, opts ...ParseOption) (Stream, int, error) {
	cfg := &parseConfig{declaredCap: DefaultDeclaredCap}
	if err := options.Apply(cfg, opts...); err != nil {
		return Stream{}, 0, err
	}

	meta, n, err := ParseMeta(data, boolean)
	if err != nil {
		return Stream{}, 0, err
	}

	if meta.NumValues > cfg.declaredCap || meta.ByteLength > cfg.declaredCap {
		return Stream{}, 0, fmt.Errorf("stream: %w: header declares %d values in %d bytes, cap is %d", errs.ErrDeclaredSizeTooLarge, meta.NumValues, meta.ByteLength, cfg.declaredCap)
	}

	end := n + int(meta.ByteLength)
	if end > len(data) {
		return Stream{}, 0, fmt.Errorf("stream: %w: payload shorter than byte_length", errs.ErrTruncated)
	}

	return Stream{Meta: meta, Payload: data[n:end]}, end, nil
}
