package bridge

import (
	"bytes"
	"testing"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBridge() (*Bridge, *bytes.Buffer) {
	b := New(runtime.New())
	var out bytes.Buffer
	b.Stdout = &out
	return b, &out
}

func TestCallUnknownExtern(t *testing.T) {
	b, _ := newTestBridge()
	_, trapErr := b.Call("rt_does_not_exist", nil)
	require.NotNil(t, trapErr)
	assert.Equal(t, il.TrapInvalidOperation, trapErr.Kind)
}

func TestCallArityMismatch(t *testing.T) {
	b, _ := newTestBridge()
	_, trapErr := b.Call("rt_abs_i64", nil)
	require.NotNil(t, trapErr)
	assert.Contains(t, trapErr.Message, "expected 1 argument")
}

func TestCallAbsI64RoundTrip(t *testing.T) {
	b, _ := newTestBridge()
	result, trapErr := b.Call("rt_abs_i64", []slot.Slot{slot.I64(-7)})
	require.Nil(t, trapErr)
	assert.Equal(t, int64(7), result.I)
}

func TestCallAbsI64Overflow(t *testing.T) {
	b, _ := newTestBridge()
	_, trapErr := b.Call("rt_abs_i64", []slot.Slot{slot.I64(-9223372036854775808)})
	require.NotNil(t, trapErr)
	assert.Equal(t, il.TrapOverflow, trapErr.Kind)
}

func TestCallPrintStrWritesToStdout(t *testing.T) {
	b, out := newTestBridge()
	s := runtime.RtConstCstr("hi")
	_, trapErr := b.Call("rt_print_str", []slot.Slot{strSlot(s)})
	require.Nil(t, trapErr)
	assert.Equal(t, "hi", out.String())
}

func TestCallConcatAndLen(t *testing.T) {
	b, _ := newTestBridge()
	a := strSlot(runtime.RtConstCstr("foo"))
	c := strSlot(runtime.RtConstCstr("bar"))
	joined, trapErr := b.Call("rt_concat", []slot.Slot{a, c})
	require.Nil(t, trapErr)
	n, trapErr := b.Call("rt_len", []slot.Slot{joined})
	require.Nil(t, trapErr)
	assert.Equal(t, int64(6), n.I)
}

func TestCallRndDeterministicAfterRandomize(t *testing.T) {
	b, _ := newTestBridge()
	_, trapErr := b.Call("rt_randomize_i64", []slot.Slot{slot.I64(1)})
	require.Nil(t, trapErr)
	first, trapErr := b.Call("rt_rnd", nil)
	require.Nil(t, trapErr)

	_, trapErr = b.Call("rt_randomize_i64", []slot.Slot{slot.I64(1)})
	require.Nil(t, trapErr)
	second, trapErr := b.Call("rt_rnd", nil)
	require.Nil(t, trapErr)

	assert.Equal(t, first.F, second.F)
}
