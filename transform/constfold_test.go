package transform_test

import (
	"testing"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/ilread"
	"github.com/splanck/viper-sub036/transform"
	"github.com/splanck/viper-sub036/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstFoldPropagatesThroughChain(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = add 1, 2
  %t1 = mul %t0, 10
  ret %t1
}
`
	mod, diags := ilread.Parse(src)
	require.Empty(t, diags)

	var stats transform.ConstFoldStats
	transform.ConstFold(mod, &stats)

	fn := &mod.Functions[0]
	ret := fn.Blocks[0].Terminator()
	require.Equal(t, il.OpRet, ret.Op)
	require.Len(t, ret.Operands, 1)
	assert.Equal(t, il.ValConstInt, ret.Operands[0].Kind)
	assert.Equal(t, int64(30), ret.Operands[0].Int)
	assert.True(t, stats.Folded >= 2)

	assert.Empty(t, verify.Verify(mod))
}

func TestConstFoldLeavesTrappingDivisionAlone(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = sdiv.chk0 1, 0
  ret %t0
}
`
	mod, diags := ilread.Parse(src)
	require.Empty(t, diags)

	var stats transform.ConstFoldStats
	transform.ConstFold(mod, &stats)

	fn := &mod.Functions[0]
	ret := fn.Blocks[0].Terminator()
	assert.Equal(t, il.ValTemp, ret.Operands[0].Kind, "an operand that would trap must not be folded into a literal")
	assert.Equal(t, 0, stats.Folded)
}

func TestConstFoldBranchConditionPropagates(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = icmp_eq 1, 1
  cbr %t0, yes(), no()
yes:
  ret 1
no:
  ret 0
}
`
	mod, diags := ilread.Parse(src)
	require.Empty(t, diags)

	var stats transform.ConstFoldStats
	transform.ConstFold(mod, &stats)

	fn := &mod.Functions[0]
	term := fn.Blocks[0].Terminator()
	require.Equal(t, il.OpCBr, term.Op)
	assert.Equal(t, il.ValConstInt, term.Operands[0].Kind)
	assert.Equal(t, int64(1), term.Operands[0].Int)
}
