// Copyright 2024 The Viper Authors
// This file is part of Viper.

package analysis

// DominanceFrontier computes each reachable block's dominance frontier
// using the Cooper-Harvey-Kennedy algorithm (the same paper dominators.go
// implements): for every join block with two or more predecessors, walk
// each predecessor up its idom chain until reaching the join's own
// dominator, adding the join block to every frontier visited along the way.
// Used by transform's mem2reg pass to place block parameters at exactly
// the join points a promoted alloca's definitions can reach.
func DominanceFrontier(cfg *CFG, dom *DominatorTree) [][]int {
	n := len(cfg.preds)
	df := make([][]int, n)
	for b := 0; b < n; b++ {
		if !cfg.Reachable(b) {
			continue
		}
		preds := cfg.Predecessors(b)
		if len(preds) < 2 {
			continue
		}
		idomB := dom.Idom(b)
		for _, p := range preds {
			if !cfg.Reachable(p) {
				continue
			}
			runner := p
			for runner != idomB {
				if !containsInt(df[runner], b) {
					df[runner] = append(df[runner], b)
				}
				next := dom.Idom(runner)
				if next == -1 || next == runner {
					break
				}
				runner = next
			}
		}
	}
	return df
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
