package column

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/stream"
)

// encodePresence appends a present-kind boolean stream when present is
// non-nil, i.e. the column is one of the Opt* types.
func encodePresence(dst []byte, present []bool) []byte {
	if present == nil {
		return dst
	}

	return append(dst, stream.EncodeBoolean(stream.PresentType(), present).Bytes()...)
}

// decodePresence parses a leading presence stream when optional is true.
func decodePresence(data []byte, optional bool) (present []bool, consumed int, err error) {
	if !optional {
		return nil, 0, nil
	}

	s, n, err := stream.Parse(data, true)
	if err != nil {
		return nil, 0, err
	}

	present, err = stream.DecodeBoolean(s)
	if err != nil {
		return nil, 0, err
	}

	return present, n, nil
}

// countPresent returns the number of true entries in present, or n when
// present is nil (every row present).
func countPresent(present []bool, n int) int {
	if present == nil {
		return n
	}

	count := 0
	for _, p := range present {
		if p {
			count++
		}
	}

	return count
}

// validatePresenceCount checks that a column's data stream carried exactly
// one value per present position: valueCount non-null values when present
// is set (spec.md §4.4's nulls discipline, "values are encoded only for
// positions where presence = 1"), or one value per position when present
// is absent.
func validatePresenceCount(present []bool, valueCount int) error {
	want := countPresent(present, valueCount)
	if valueCount != want {
		return fmt.Errorf("column: %w: data stream has %d values, presence bitmap expects %d", errs.ErrColumnCountMismatch, valueCount, want)
	}

	return nil
}
