// Package transform implements the logical transforms applied on top of a
// stream's physical decoding (spec.md §4.2): None, Delta,
// ComponentwiseDelta, Rle, DeltaRle, Morton, and PseudoDecimal. Each
// transform is a pure function pair (Encode.../Decode...) operating on
// already physically-decoded integers; none of them perform I/O.
package transform

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// checkEven is the length guard shared by ComponentwiseDelta encode/decode.
func checkEven(n int) error {
	if n%2 != 0 {
		return fmt.Errorf("transform: %w", errs.ErrLengthNotEven)
	}

	return nil
}
