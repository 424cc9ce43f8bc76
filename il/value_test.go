package il

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqualFloatBitPattern(t *testing.T) {
	negZero := VFloat(math.Copysign(0, -1))
	posZero := VFloat(0)
	assert.False(t, negZero.Equal(posZero), "-0.0 and 0.0 must compare unequal by bit pattern")

	nan1 := VFloat(math.Float64frombits(0x7ff8000000000001))
	nan2 := VFloat(math.Float64frombits(0x7ff8000000000002))
	assert.False(t, nan1.Equal(nan2), "distinct NaN payloads must compare unequal")
	assert.True(t, nan1.Equal(nan1))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "%t3", VTemp(3).String())
	assert.Equal(t, "42", VInt(42).String())
	assert.Equal(t, "@foo", VGlobal("foo").String())
	assert.Equal(t, "null", VNull(T(Ptr)).String())
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{Void, I1, I16, I32, I64, F64, Ptr, Str, Error, ResumeTok} {
		parsed, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseKind("bogus")
	assert.False(t, ok)
}
