package runtime

import (
	"strings"

	"github.com/splanck/viper-sub036/il"
)

// ssoThreshold is the inline small-string-optimization limit spec.md §4.5
// and §9 specify (≤32 bytes inline before falling back to a heap header).
// The Go implementation stores bytes directly and only tracks refcount and
// a clamped reported length; it does not need a literal inline/heap split
// to honor the observable ABI, since Go strings are already immutable
// value types with their own backing array.
const ssoThreshold = 32

// RtString is a reference-counted runtime string handle. Const is true for
// handles returned by rt_const_cstr, which alias a literal and are never
// actually freed.
type RtString struct {
	data  []byte
	refs  *int
	Const bool
}

// RtStringFromBytes implements rt_string_from_bytes: copies bytes into a
// new refcounted handle with refcount 1.
func RtStringFromBytes(b []byte) *RtString {
	cp := make([]byte, len(b))
	copy(cp, b)
	refs := 1
	return &RtString{data: cp, refs: &refs}
}

// RtConstCstr implements rt_const_cstr: a non-refcounted handle aliasing a
// string literal; rt_string_unref on it is a no-op.
func RtConstCstr(s string) *RtString {
	return &RtString{data: []byte(s), Const: true}
}

// Ref increments the refcount (a no-op on a const handle).
func (s *RtString) Ref() {
	if s == nil || s.Const {
		return
	}
	*s.refs++
}

// Unref implements rt_string_unref: decrements the refcount; the caller
// must not use s again once it reaches zero (Go's GC reclaims the backing
// array; there is no explicit free).
func (s *RtString) Unref() {
	if s == nil || s.Const {
		return
	}
	*s.refs--
}

// RefCount reports the current refcount (always 0 for a const handle,
// which rt_string_unref treats as a no-op). Exported for tests that check
// the VM's slot-write/frame-pop balancing rather than for runtime use.
func (s *RtString) RefCount() int {
	if s == nil || s.Const {
		return 0
	}
	return *s.refs
}

// Len implements rt_len, clamping a corrupted negative length (per spec.md
// §9's SSO note) to 0 rather than ever reporting a negative count.
func (s *RtString) Len() int64 {
	n := int64(len(s.data))
	if n < 0 {
		return 0
	}
	return n
}

func (s *RtString) String() string { return string(s.data) }

// RtConcat implements rt_concat.
func RtConcat(a, b *RtString) *RtString {
	return RtStringFromBytes(append(append([]byte{}, a.data...), b.data...))
}

// RtSubstr implements rt_substr: negative start/length trap.
func RtSubstr(s *RtString, start, length int64) (*RtString, error) {
	if start < 0 || length < 0 {
		return nil, trap(il.TrapBounds, "rt_substr: start/length must be non-negative")
	}
	b := clampRange(s.data, start, length)
	return RtStringFromBytes(b), nil
}

// RtStrEq implements rt_str_eq.
func RtStrEq(a, b *RtString) bool { return string(a.data) == string(b.data) }

// RtLeft implements rt_left (first n bytes, clamped to the string length).
func RtLeft(s *RtString, n int64) (*RtString, error) {
	if n < 0 {
		return nil, trap(il.TrapBounds, "LEFT$: count must be non-negative")
	}
	return RtStringFromBytes(clampRange(s.data, 0, n)), nil
}

// RtRight implements rt_right (last n bytes, clamped).
func RtRight(s *RtString, n int64) (*RtString, error) {
	if n < 0 {
		return nil, trap(il.TrapBounds, "RIGHT$: count must be non-negative")
	}
	total := int64(len(s.data))
	start := total - n
	if start < 0 {
		start = 0
	}
	return RtStringFromBytes(clampRange(s.data, start, total-start)), nil
}

// RtMid2 implements rt_mid2(s, start) — MID$ with no explicit length
// (everything from start to the end). start is 1-based.
func RtMid2(s *RtString, start int64) (*RtString, error) {
	if start < 1 {
		return nil, trap(il.TrapBounds, "MID$: start must be >= 1")
	}
	total := int64(len(s.data))
	begin := start - 1
	if begin >= total {
		return RtStringFromBytes(nil), nil
	}
	return RtStringFromBytes(clampRange(s.data, begin, total-begin)), nil
}

// RtMid3 implements rt_mid3(s, start, length). start is 1-based and must
// be >= 1 (traps otherwise); a start beyond the string length yields an
// empty string rather than a trap, per spec.md §8's explicit boundary
// behavior.
func RtMid3(s *RtString, start, length int64) (*RtString, error) {
	if start < 1 {
		return nil, trap(il.TrapBounds, "MID$: start must be >= 1")
	}
	if length < 0 {
		return nil, trap(il.TrapBounds, "MID$: length must be non-negative")
	}
	total := int64(len(s.data))
	begin := start - 1
	if begin >= total {
		return RtStringFromBytes(nil), nil
	}
	return RtStringFromBytes(clampRange(s.data, begin, length)), nil
}

func clampRange(data []byte, start, length int64) []byte {
	total := int64(len(data))
	if start > total {
		start = total
	}
	end := start + length
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}
	return data[start:end]
}

// RtLtrim, RtRtrim, RtTrim implement rt_ltrim/rtrim/trim.
func RtLtrim(s *RtString) *RtString { return RtStringFromBytes([]byte(strings.TrimLeft(string(s.data), " "))) }
func RtRtrim(s *RtString) *RtString {
	return RtStringFromBytes([]byte(strings.TrimRight(string(s.data), " ")))
}
func RtTrim(s *RtString) *RtString { return RtStringFromBytes([]byte(strings.TrimSpace(string(s.data)))) }

// RtUcase, RtLcase implement rt_ucase/lcase.
func RtUcase(s *RtString) *RtString { return RtStringFromBytes([]byte(strings.ToUpper(string(s.data)))) }
func RtLcase(s *RtString) *RtString { return RtStringFromBytes([]byte(strings.ToLower(string(s.data)))) }

// RtStrChr implements rt_str_chr (BASIC CHR$); c outside [0,255] traps.
func RtStrChr(c int64) (*RtString, error) {
	if c < 0 || c > 255 {
		return nil, trap(il.TrapDomainError, "CHR$: code must be 0-255")
	}
	return RtStringFromBytes([]byte{byte(c)}), nil
}

// RtStrAsc implements rt_str_asc (BASIC ASC); empty string traps.
func RtStrAsc(s *RtString) (int64, error) {
	if len(s.data) == 0 {
		return 0, trap(il.TrapDomainError, "ASC: string must not be empty")
	}
	return int64(s.data[0]), nil
}

// RtInstr2 implements rt_instr2(haystack, needle) (1-based, 0 if absent).
func RtInstr2(hay, needle *RtString) int64 {
	idx := strings.Index(string(hay.data), string(needle.data))
	if idx < 0 {
		return 0
	}
	return int64(idx) + 1
}

// RtInstr3 implements rt_instr3(start, haystack, needle), 1-based start.
func RtInstr3(start int64, hay, needle *RtString) (int64, error) {
	if start < 1 {
		return 0, trap(il.TrapBounds, "INSTR: start must be >= 1")
	}
	total := int64(len(hay.data))
	begin := start - 1
	if begin > total {
		return 0, nil
	}
	idx := strings.Index(string(hay.data[begin:]), string(needle.data))
	if idx < 0 {
		return 0, nil
	}
	return begin + int64(idx) + 1, nil
}
