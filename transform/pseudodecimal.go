package transform

import "math"

// maxPseudoDecimalExponent bounds how many decimal places PseudoDecimal
// will shift a value by before giving up on an exact integer significand
// and falling back to the nearest representable one.
const maxPseudoDecimalExponent = 17

// DecodePseudoDecimal reconstructs float64 values from a pair stream of
// (significand, exponent): value = significand * 10^-exponent.
func DecodePseudoDecimal(significands []int64, exponents []int32) []float64 {
	out := make([]float64, len(significands))

	for i, sig := range significands {
		out[i] = float64(sig) / math.Pow10(int(exponents[i]))
	}

	return out
}

// EncodePseudoDecimal picks, for each near-integer float, the smallest
// decimal exponent that represents it exactly as an integer significand
// (up to maxPseudoDecimalExponent places), falling back to a rounded
// significand at the maximum exponent for values that never land exactly.
func EncodePseudoDecimal(values []float64) (significands []int64, exponents []int32) {
	significands = make([]int64, len(values))
	exponents = make([]int32, len(values))

	for i, v := range values {
		exp := 0
		scaled := v

		for exp < maxPseudoDecimalExponent && scaled != math.Trunc(scaled) {
			exp++
			scaled = v * math.Pow10(exp)
		}

		significands[i] = int64(math.Round(scaled))
		exponents[i] = int32(exp) //nolint:gosec
	}

	return significands, exponents
}
