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

func countOp(fn *il.Function, op il.Op) int {
	n := 0
	for _, bb := range fn.Blocks {
		for _, inst := range bb.Instructions {
			if inst.Op == op {
				n++
			}
		}
	}
	return n
}

func TestMem2RegStraightLinePromotesCompletely(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = alloca 8 -> i64
  store %t0, 41
  %t1 = load %t0 -> i64
  %t2 = add %t1, 1
  store %t0, %t2
  %t3 = load %t0 -> i64
  ret %t3
}
`
	mod, diags := ilread.Parse(src)
	require.Empty(t, diags)

	var stats transform.Mem2RegStats
	transform.Mem2Reg(mod, &stats)

	fn := &mod.Functions[0]
	assert.Equal(t, 0, countOp(fn, il.OpAlloca))
	assert.Equal(t, 0, countOp(fn, il.OpLoad))
	assert.Equal(t, 0, countOp(fn, il.OpStore))
	assert.Equal(t, 1, stats.PromotedVars)
	assert.Equal(t, 2, stats.RemovedLoads)
	assert.Equal(t, 2, stats.RemovedStores)

	assert.Empty(t, verify.Verify(mod))
}

func TestMem2RegLoopInsertsBlockParam(t *testing.T) {
	src := `il 0.1
func @main() -> i64 {
entry:
  %t0 = alloca 8 -> i64
  store %t0, 0
  br head()
head:
  %t1 = load %t0 -> i64
  %t2 = icmp_lt %t1, 10
  cbr %t2, body(), exit()
body:
  %t3 = load %t0 -> i64
  %t4 = add %t3, 1
  store %t0, %t4
  br head()
exit:
  %t5 = load %t0 -> i64
  ret %t5
}
`
	mod, diags := ilread.Parse(src)
	require.Empty(t, diags)

	var stats transform.Mem2RegStats
	transform.Mem2Reg(mod, &stats)

	fn := &mod.Functions[0]
	assert.Equal(t, 0, countOp(fn, il.OpAlloca))
	assert.Equal(t, 0, countOp(fn, il.OpLoad))
	assert.Equal(t, 0, countOp(fn, il.OpStore))
	assert.Equal(t, 1, stats.PromotedVars)

	head := fn.BlockByLabel("head")
	require.NotNil(t, head)
	assert.Len(t, head.Params, 1)

	assert.Empty(t, verify.Verify(mod))
}

func TestMem2RegLeavesEscapingAllocaAlone(t *testing.T) {
	src := `il 0.1
extern @rt_print_i64(i64) -> void
func @main() -> i64 {
entry:
  %t0 = alloca 8 -> i64
  store %t0, 5
  %t1 = gep %t0 -> ptr
  %t2 = load %t1 -> i64
  call @rt_print_i64(%t2)
  ret 0
}
`
	mod, diags := ilread.Parse(src)
	require.Empty(t, diags)

	var stats transform.Mem2RegStats
	transform.Mem2Reg(mod, &stats)

	fn := &mod.Functions[0]
	assert.Equal(t, 1, countOp(fn, il.OpAlloca), "a pointer used through gep is conservatively treated as escaping")
	assert.Equal(t, 0, stats.PromotedVars)
}
