// Copyright 2024 The Viper Authors
// This file is part of Viper.

package transform

import "github.com/splanck/viper-sub036/il"

// Stats aggregates both passes' counters, returned by Run.
type Stats struct {
	ConstFold ConstFoldStats
	Mem2Reg   Mem2RegStats
}

// Run applies mem2reg then constant folding to every function in m, the
// order lang/ir/optimize.go's Optimize uses for its own pass pipeline:
// promoting memory to registers first exposes more constant-operand
// instructions for folding to find.
func Run(m *il.Module) Stats {
	var stats Stats
	Mem2Reg(m, &stats.Mem2Reg)
	ConstFold(m, &stats.ConstFold)
	return stats
}
