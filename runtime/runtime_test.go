package runtime_test

import (
	"math"
	"testing"

	"github.com/splanck/viper-sub036/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRtAllocZeroIsValid(t *testing.T) {
	rt := runtime.New()
	buf, err := rt.RtAlloc(0)
	require.NoError(t, err)
	assert.NotNil(t, buf)
	assert.Len(t, buf, 0)
}

func TestRtAllocNegativeTraps(t *testing.T) {
	rt := runtime.New()
	_, err := rt.RtAlloc(-1)
	require.Error(t, err)
}

func TestRtAbsI64OverflowTraps(t *testing.T) {
	_, err := runtime.RtAbsI64(math.MinInt64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rt_abs_i64: overflow")
}

func TestRtStrChrRange(t *testing.T) {
	_, err := runtime.RtStrChr(-1)
	require.Error(t, err)
	_, err = runtime.RtStrChr(256)
	require.Error(t, err)
	s, err := runtime.RtStrChr(65)
	require.NoError(t, err)
	assert.Equal(t, "A", s.String())
}

func TestRtMid3Boundaries(t *testing.T) {
	s := runtime.RtStringFromBytes([]byte("hello"))
	_, err := runtime.RtMid3(s, 0, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MID$: start must be >= 1")

	out, err := runtime.RtMid3(s, 100, 2)
	require.NoError(t, err)
	assert.Equal(t, "", out.String())

	out2, err := runtime.RtMid3(s, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "ell", out2.String())
}

func TestRtRndReproducibleForSeed(t *testing.T) {
	rt1 := runtime.New()
	rt1.RtRandomizeI64(42)
	rt2 := runtime.New()
	rt2.RtRandomizeI64(42)

	for i := 0; i < 5; i++ {
		a := rt1.RtRnd()
		b := rt2.RtRnd()
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a, 0.0)
		assert.Less(t, a, 1.0)
	}
}

func TestFormatFloatCanonical(t *testing.T) {
	assert.Equal(t, "0", runtime.FormatFloat(0.0))
	assert.Equal(t, "-0", runtime.FormatFloat(math.Copysign(0, -1)))
	assert.Equal(t, "NaN", runtime.FormatFloat(math.NaN()))
	assert.Equal(t, "Inf", runtime.FormatFloat(math.Inf(1)))
	assert.Equal(t, "-Inf", runtime.FormatFloat(math.Inf(-1)))
	assert.Equal(t, "0.5", runtime.FormatFloat(0.5))
}

func TestRtArgsGetOutOfRangeTraps(t *testing.T) {
	rt := runtime.New()
	rt.RtArgsPush("a")
	_, err := rt.RtArgsGet(5)
	require.Error(t, err)
}

func TestRtStringRefAndUnrefBalance(t *testing.T) {
	s := runtime.RtStringFromBytes([]byte("hi"))
	assert.Equal(t, 1, s.RefCount())
	s.Ref()
	s.Ref()
	assert.Equal(t, 3, s.RefCount())
	s.Unref()
	s.Unref()
	assert.Equal(t, 1, s.RefCount())
}

func TestRtConstCstrRefIsNoop(t *testing.T) {
	s := runtime.RtConstCstr("lit")
	assert.Equal(t, 0, s.RefCount())
	s.Ref()
	s.Unref()
	assert.Equal(t, 0, s.RefCount())
}
