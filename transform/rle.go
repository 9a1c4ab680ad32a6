package transform

import (
	"fmt"

	"github.com/maplibre/mlt-go/errs"
)

// DecodeRle32 expands a flat stream of R run lengths followed by R values
// (runs = R) into the repeated sequence it represents.
func DecodeRle32(data []uint32, runs int) ([]uint32, error) {
	if 2*runs > len(data) {
		return nil, fmt.Errorf("transform: %w: RLE runs exceed stream length", errs.ErrTruncated)
	}

	runLengths := data[:runs]
	values := data[runs : 2*runs]

	total := 0
	for _, n := range runLengths {
		total += int(n)
	}

	out := make([]uint32, 0, total)
	for i, n := range runLengths {
		for j := uint32(0); j < n; j++ {
			out = append(out, values[i])
		}
	}

	return out, nil
}

// EncodeRle32 inverts DecodeRle32, collapsing consecutive equal values into
// runs and returning the run-lengths||values flat layout plus the run count.
func EncodeRle32(values []uint32) (data []uint32, runs int) {
	var runLengths, runValues []uint32

	i := 0
	for i < len(values) {
		run := uint32(1)
		for i+int(run) < len(values) && values[i+int(run)] == values[i] {
			run++
		}

		runLengths = append(runLengths, run)
		runValues = append(runValues, values[i])
		i += int(run)
	}

	out := make([]uint32, 0, len(runLengths)+len(runValues))
	out = append(out, runLengths...)
	out = append(out, runValues...)

	return out, len(runLengths)
}

// DecodeRle64 is the 64-bit counterpart of DecodeRle32.
func DecodeRle64(data []uint64, runs int) ([]uint64, error) {
	if 2*runs > len(data) {
		return nil, fmt.Errorf("transform: %w: RLE runs exceed stream length", errs.ErrTruncated)
	}

	runLengths := data[:runs]
	values := data[runs : 2*runs]

	total := 0
	for _, n := range runLengths {
		total += int(n)
	}

	out := make([]uint64, 0, total)
	for i, n := range runLengths {
		for j := uint64(0); j < n; j++ {
			out = append(out, values[i])
		}
	}

	return out, nil
}

// EncodeRle64 is the 64-bit counterpart of EncodeRle32.
func EncodeRle64(values []uint64) (data []uint64, runs int) {
	var runLengths, runValues []uint64

	i := 0
	for i < len(values) {
		run := uint64(1)
		for i+int(run) < len(values) && values[i+int(run)] == values[i] {
			run++
		}

		runLengths = append(runLengths, run)
		runValues = append(runValues, values[i])
		i += int(run)
	}

	out := make([]uint64, 0, len(runLengths)+len(runValues))
	out = append(out, runLengths...)
	out = append(out, runValues...)

	return out, len(runLengths)
}

// DecodeDeltaRle32 applies RLE expansion followed by Delta reconstruction:
// the RLE stage produces zigzag-of-differences, which Delta then
// accumulates into the final signed sequence.
func DecodeDeltaRle32(data []uint32, runs int) ([]int32, error) {
	zigzags, err := DecodeRle32(data, runs)
	if err != nil {
		return nil, err
	}

	return DecodeDelta32(zigzags), nil
}

// EncodeDeltaRle32 inverts DecodeDeltaRle32.
func EncodeDeltaRle32(values []int32) (data []uint32, runs int) {
	zigzags := EncodeDelta32(values)
	return EncodeRle32(zigzags)
}

// DecodeDeltaRle64 is the 64-bit counterpart of DecodeDeltaRle32.
func DecodeDeltaRle64(data []uint64, runs int) ([]int64, error) {
	zigzags, err := DecodeRle64(data, runs)
	if err != nil {
		return nil, err
	}

	return DecodeDelta64(zigzags), nil
}

// EncodeDeltaRle64 is the 64-bit counterpart of EncodeDeltaRle32.
func EncodeDeltaRle64(values []int64) (data []uint64, runs int) {
	zigzags := EncodeDelta64(values)
	return EncodeRle64(zigzags)
}
