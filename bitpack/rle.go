package bitpack

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// EncodeByteRLE run-length encodes data as a sequence of (count:u8, value:u8)
// pairs. Runs longer than 255 bytes are split across multiple pairs.
func EncodeByteRLE(data []byte) []byte {
	out := make([]byte, 0, len(data)/4+2)

	i := 0
	for i < len(data) {
		run := 1
		for i+run < len(data) && data[i+run] == data[i] && run < 255 {
			run++
		}

		out = append(out, byte(run), data[i])
		i += run
	}

	return out
}

// DecodeByteRLE expands run-encoded data back into wantLen raw bytes.
func DecodeByteRLE(data []byte, wantLen int) ([]byte, error) {
	out := make([]byte, 0, wantLen)

	i := 0
	for i < len(data) {
		if i+1 >= len(data) {
			return nil, fmt.Errorf("bitpack: %w: byte-RLE run missing value byte", errs.ErrTruncated)
		}

		count := int(data[i])
		value := data[i+1]
		i += 2

		for j := 0; j < count; j++ {
			out = append(out, value)
		}
	}

	if len(out) != wantLen {
		return nil, fmt.Errorf("bitpack: %w: byte-RLE produced %d bytes, want %d", errs.ErrTruncated, len(out), wantLen)
	}

	return out, nil
}
