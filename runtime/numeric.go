package runtime

import (
	"math"
	"strconv"
	"strings"

	"github.com/splanck/viper-sub036/il"
)

// RtSqrt, RtFloor, RtCeil implement rt_sqrt/rt_floor/rt_ceil: no traps on
// domain errors (NaN propagates), per original_source/runtime/rt_math.c.
func RtSqrt(x float64) float64 { return math.Sqrt(x) }
func RtFloor(x float64) float64 { return math.Floor(x) }
func RtCeil(x float64) float64  { return math.Ceil(x) }

// RtPowF64Chkdom implements rt_pow_f64_chkdom: domain errors (e.g. negative
// base with a fractional exponent) report via RtError rather than trapping.
func RtPowF64Chkdom(base, exp float64) (float64, RtError) {
	result := math.Pow(base, exp)
	if math.IsNaN(result) && !math.IsNaN(base) && !math.IsNaN(exp) {
		return 0, RtError{Kind: ErrDomainError}
	}
	return result, NoError
}

// RtAbsI64 implements rt_abs_i64: traps on INT64_MIN, since -INT64_MIN
// overflows int64 (spec.md §8 supersedes the original C implementation's
// silent wraparound).
func RtAbsI64(v int64) (int64, error) {
	if v == math.MinInt64 {
		return 0, trap(il.TrapOverflow, "rt_abs_i64: overflow")
	}
	if v < 0 {
		return -v, nil
	}
	return v, nil
}

// RtAbsF64 implements rt_abs_f64.
func RtAbsF64(v float64) float64 { return math.Abs(v) }

// RtRoundEven implements rt_round_even (banker's rounding).
func RtRoundEven(v float64) float64 { return math.RoundToEven(v) }

// RtCintFromDouble implements rt_cint_from_double: round-half-to-even then
// truncate to int64; traps if the rounded value is outside int64 range.
func RtCintFromDouble(v float64) (int64, error) {
	r := math.RoundToEven(v)
	if r >= 9223372036854775808.0 || r < math.MinInt64 || math.IsNaN(r) {
		return 0, trap(il.TrapOverflow, "CINT: value out of range")
	}
	return int64(r), nil
}

// RtIntFloor implements rt_int_floor (BASIC INT: floor toward -Inf).
func RtIntFloor(v float64) float64 { return math.Floor(v) }

// RtFixTrunc implements rt_fix_trunc (BASIC FIX: truncate toward zero).
func RtFixTrunc(v float64) float64 { return math.Trunc(v) }

// RtVal implements rt_val: parses a BASIC numeric literal prefix, returning
// 0 if no valid prefix exists (BASIC VAL$ semantics, never trapping).
func RtVal(s *RtString) float64 {
	str := strings.TrimSpace(string(s.data))
	end := 0
	seenDot, seenDigit := false, false
	for end < len(str) {
		c := str[end]
		switch {
		case c == '+' || c == '-':
			if end != 0 {
				goto done
			}
		case c == '.':
			if seenDot {
				goto done
			}
			seenDot = true
		case c >= '0' && c <= '9':
			seenDigit = true
		default:
			goto done
		}
		end++
	}
done:
	if !seenDigit {
		return 0
	}
	f, err := strconv.ParseFloat(str[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

// RtStrI64 implements rt_str(i64): canonical decimal rendering.
func RtStrI64(v int64) *RtString {
	return RtStringFromBytes([]byte(strconv.FormatInt(v, 10)))
}

// RtStrF64 implements rt_str(f64): canonical float formatting per spec.md
// §8's exact boundary-behavior table.
func RtStrF64(v float64) *RtString {
	return RtStringFromBytes([]byte(FormatFloat(v)))
}

// FormatFloat renders v per spec.md's canonical table:
// 0 -> "0", -0.0 -> "-0", NaN -> "NaN", +Inf -> "Inf", -Inf -> "-Inf",
// 1e20 -> "1e+20", 0.5 -> "0.5".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0"
		}
		return "0"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	// Go renders the exponent as "e+20"/"e-05"; strconv already matches
	// the spec's "1e+20" shape, so no further rewriting is needed.
	return s
}
