// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package analysis computes per-function control flow graphs, dominator
// trees, and natural loop information, used by the verifier and by
// transform passes. Blocks are addressed by their index within the
// function's Blocks slice (stable across a single pass) rather than by
// pointer, per spec.md §9's guidance for graphs that are mutated in place.
package analysis

import "github.com/splanck/viper-sub036/il"

// CFG holds predecessor/successor lists and a post-order numbering for one
// function. Unknown branch targets are ignored here (that's the
// verifier's job, not the CFG's); only successors that resolve to a known
// block label are recorded.
type CFG struct {
	fn *il.Function

	preds [][]int
	succs [][]int

	postOrder []int // block indices in post-order
	postNum   []int // block index -> position in postOrder; -1 if unreachable
}

// Build constructs a CFG for fn by inspecting terminator labels.
func Build(fn *il.Function) *CFG {
	n := len(fn.Blocks)
	c := &CFG{
		fn:      fn,
		preds:   make([][]int, n),
		succs:   make([][]int, n),
		postNum: make([]int, n),
	}
	for i := range c.postNum {
		c.postNum[i] = -1
	}

	labelToIdx := make(map[string]int, n)
	for i := range fn.Blocks {
		labelToIdx[fn.Blocks[i].Label] = i
	}

	for i := range fn.Blocks {
		bb := &fn.Blocks[i]
		if !bb.Terminated() {
			continue
		}
		term := bb.Terminator()
		if term.Op != il.OpBr && term.Op != il.OpCBr {
			continue
		}
		for _, lbl := range term.Labels {
			if j, ok := labelToIdx[lbl]; ok {
				c.succs[i] = append(c.succs[i], j)
				c.preds[j] = append(c.preds[j], i)
			}
		}
	}

	if n == 0 {
		return c
	}
	visited := make([]bool, n)
	var dfs func(int)
	dfs = func(b int) {
		if visited[b] {
			return
		}
		visited[b] = true
		for _, s := range c.succs[b] {
			dfs(s)
		}
		c.postOrder = append(c.postOrder, b)
	}
	dfs(0)
	for i, b := range c.postOrder {
		c.postNum[b] = i
	}
	return c
}

// Predecessors returns the predecessor block indices of block b.
func (c *CFG) Predecessors(b int) []int { return c.preds[b] }

// Successors returns the successor block indices of block b.
func (c *CFG) Successors(b int) []int { return c.succs[b] }

// PostOrder returns block indices in DFS post-order.
func (c *CFG) PostOrder() []int { return c.postOrder }

// ReversePostOrder returns block indices in reverse post-order.
func (c *CFG) ReversePostOrder() []int {
	rpo := make([]int, len(c.postOrder))
	for i, b := range c.postOrder {
		rpo[len(rpo)-1-i] = b
	}
	return rpo
}

// PostIndex returns the 0-based position of block b in post-order; the
// entry block's PostIndex equals len(blocks)-1. Returns -1 if b is
// unreachable from the entry block.
func (c *CFG) PostIndex(b int) int { return c.postNum[b] }

// Reachable reports whether block b was visited from the entry block.
func (c *CFG) Reachable(b int) bool { return c.postNum[b] >= 0 }
