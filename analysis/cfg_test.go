package analysis_test

import (
	"testing"

	"github.com/splanck/viper-sub036/analysis"
	"github.com/splanck/viper-sub036/ilread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diamondSrc = `il 0.1
func @main() -> i64 {
entry:
  cbr 1, left(), right()
left:
  br join(1)
right:
  br join(2)
join(%t0:i64):
  ret %t0
}
`

func TestCFGAndDominators(t *testing.T) {
	mod, diags := ilread.Parse(diamondSrc)
	require.Empty(t, diags)
	fn := &mod.Functions[0]
	cfg := analysis.Build(fn)

	entry, left, right, join := 0, 1, 2, 3
	assert.ElementsMatch(t, []int{left, right}, cfg.Successors(entry))
	assert.ElementsMatch(t, []int{entry}, cfg.Predecessors(left))
	assert.ElementsMatch(t, []int{left, right}, cfg.Predecessors(join))
	assert.Equal(t, len(fn.Blocks)-1, cfg.PostIndex(entry))

	dom := analysis.BuildDominators(cfg)
	assert.True(t, dom.Dominates(entry, join))
	assert.False(t, dom.Dominates(left, join))
	assert.Equal(t, entry, dom.Idom(join))
	assert.Equal(t, entry, dom.Idom(left))
}

const loopSrc = `il 0.1
func @main() -> i64 {
entry:
  br head(0)
head(%t0:i64):
  cbr 1, body(), exit()
body:
  br head(%t0)
exit:
  ret %t0
}
`

func TestLoopInfo(t *testing.T) {
	mod, diags := ilread.Parse(loopSrc)
	require.Empty(t, diags)
	fn := &mod.Functions[0]
	cfg := analysis.Build(fn)
	dom := analysis.BuildDominators(cfg)
	li := analysis.BuildLoopInfo(cfg, dom)

	require.Len(t, li.Loops, 1)
	head := fn.BlockIndex("head")
	body := fn.BlockIndex("body")
	loop := li.Loops[0]
	assert.Equal(t, head, loop.Header)
	assert.Contains(t, loop.Latches, body)
	assert.True(t, loop.Blocks[head])
	assert.True(t, loop.Blocks[body])
}
