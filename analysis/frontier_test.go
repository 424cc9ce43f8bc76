package analysis_test

import (
	"testing"

	"github.com/splanck/viper-sub036/analysis"
	"github.com/splanck/viper-sub036/ilread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominanceFrontierDiamond(t *testing.T) {
	mod, diags := ilread.Parse(diamondSrc)
	require.Empty(t, diags)
	fn := &mod.Functions[0]
	cfg := analysis.Build(fn)
	dom := analysis.BuildDominators(cfg)
	df := analysis.DominanceFrontier(cfg, dom)

	left, right, join := 1, 2, 3
	assert.ElementsMatch(t, []int{join}, df[left])
	assert.ElementsMatch(t, []int{join}, df[right])
	assert.Empty(t, df[join])
}

func TestDominanceFrontierLoop(t *testing.T) {
	mod, diags := ilread.Parse(loopSrc)
	require.Empty(t, diags)
	fn := &mod.Functions[0]
	cfg := analysis.Build(fn)
	dom := analysis.BuildDominators(cfg)
	df := analysis.DominanceFrontier(cfg, dom)

	head, body := 1, 2
	assert.ElementsMatch(t, []int{head}, df[body])
}
