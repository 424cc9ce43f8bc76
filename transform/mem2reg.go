// Copyright 2024 The Viper Authors
// This file is part of Viper.

package transform

import (
	"fmt"
	"sort"

	"github.com/splanck/viper-sub036/analysis"
	"github.com/splanck/viper-sub036/il"
)

// Mem2RegStats counts promoted variables and eliminated memory
// instructions, for driver reporting.
type Mem2RegStats struct {
	PromotedVars  int
	RemovedLoads  int
	RemovedStores int
}

// Mem2Reg promotes entry-block allocas of primitive type to SSA block
// parameters when every use is a plain load or store through that exact
// pointer (never passed to a call, stored to memory, or carried across a
// branch as a value), using the sealed SSA construction algorithm: block
// parameters are inserted at each block in the promoted variable's
// iterated dominance frontier, and loads/stores are renamed to SSA values
// by a preorder walk of the dominator tree. A function with any
// unreachable block is left untouched — appending the renamed branch
// argument consistently to a block that checkTerminators still inspects
// but rename() never visits would desync arity, so it is simpler and
// safer to skip promotion there entirely.
func Mem2Reg(m *il.Module, stats *Mem2RegStats) {
	for fi := range m.Functions {
		mem2regFunction(&m.Functions[fi], stats)
	}
}

func mem2regFunction(fn *il.Function, stats *Mem2RegStats) {
	if len(fn.Blocks) == 0 {
		return
	}
	cfg := analysis.Build(fn)
	for bi := range fn.Blocks {
		if !cfg.Reachable(bi) {
			return
		}
	}
	dom := analysis.BuildDominators(cfg)
	df := analysis.DominanceFrontier(cfg, dom)
	children := domChildren(cfg, dom)

	for _, alloca := range promotableAllocas(fn) {
		promoteOne(fn, df, children, alloca, stats)
	}
}

type allocaCandidate struct {
	temp int
	typ  il.Type
}

// promotableAllocas finds entry-block allocas of a primitive type whose
// pointer temp is used only as the pointer operand of a load or store
// anywhere in the function.
func promotableAllocas(fn *il.Function) []allocaCandidate {
	entry := &fn.Blocks[0]
	var candidates []allocaCandidate
	for _, inst := range entry.Instructions {
		if inst.Op != il.OpAlloca || !inst.HasResult || !inst.Type.Kind.IsPrimitiveSlot() {
			continue
		}
		candidates = append(candidates, allocaCandidate{temp: inst.ResultID, typ: inst.Type})
	}

	var promotable []allocaCandidate
	for _, c := range candidates {
		if !isPromotable(fn, c.temp) {
			continue
		}
		promotable = append(promotable, c)
	}
	return promotable
}

func isPromotable(fn *il.Function, temp int) bool {
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		for ii := range bb.Instructions {
			inst := &bb.Instructions[ii]
			for oi, o := range inst.Operands {
				if o.Kind != il.ValTemp || o.Temp != temp {
					continue
				}
				switch inst.Op {
				case il.OpLoad:
					if oi == 0 {
						continue
					}
				case il.OpStore:
					if oi == 0 {
						continue
					}
				}
				return false
			}
			for _, args := range inst.BrArgs {
				for _, o := range args {
					if o.Kind == il.ValTemp && o.Temp == temp {
						return false
					}
				}
			}
		}
	}
	return true
}

func domChildren(cfg *analysis.CFG, dom *analysis.DominatorTree) [][]int {
	n := len(cfg.PostOrder())
	children := make([][]int, n)
	for b := 0; b < n; b++ {
		if b == 0 || !cfg.Reachable(b) {
			continue
		}
		idom := dom.Idom(b)
		if idom >= 0 {
			children[idom] = append(children[idom], b)
		}
	}
	return children
}

func promoteOne(fn *il.Function, df [][]int, children [][]int, c allocaCandidate, stats *Mem2RegStats) {
	defBlocks := storeBlocks(fn, c.temp)
	if len(defBlocks) == 0 {
		return
	}

	hasPhi := make(map[int]bool)
	worklist := append([]int{}, defBlocks...)
	for len(worklist) > 0 {
		b := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, y := range df[b] {
			if !hasPhi[y] {
				hasPhi[y] = true
				worklist = append(worklist, y)
			}
		}
	}

	phiTemp := make(map[int]int, len(hasPhi))
	blocks := sortedKeys(hasPhi)
	for _, b := range blocks {
		id := fn.AllocTemp()
		name := fmt.Sprintf("m2r%d", id)
		fn.Blocks[b].Params = append(fn.Blocks[b].Params, il.Param{Name: name, Type: c.typ, SlotID: id})
		phiTemp[b] = id
	}

	subst := make(map[int]il.Value)
	renameMem2Reg(fn, children, phiTemp, subst, c, 0, zeroValueFor(c.typ), stats)

	if stats != nil {
		stats.PromotedVars++
	}
}

func storeBlocks(fn *il.Function, temp int) []int {
	var blocks []int
	for bi := range fn.Blocks {
		for _, inst := range fn.Blocks[bi].Instructions {
			if inst.Op == il.OpStore && inst.Operands[0].Kind == il.ValTemp && inst.Operands[0].Temp == temp {
				blocks = append(blocks, bi)
				break
			}
		}
	}
	return blocks
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func zeroValueFor(ty il.Type) il.Value {
	if ty.Kind == il.F64 {
		return il.VFloat(0)
	}
	return il.VInt(0)
}

// renameMem2Reg walks the dominator tree in preorder, threading the
// variable's current SSA value through; it drops the alloca/load/store
// instructions for c's temp and rewrites every other instruction's
// operands (and outgoing branch arguments) via subst.
func renameMem2Reg(fn *il.Function, children [][]int, phiTemp map[int]int, subst map[int]il.Value, c allocaCandidate, b int, current il.Value, stats *Mem2RegStats) {
	bb := &fn.Blocks[b]
	if pt, ok := phiTemp[b]; ok {
		current = il.VTemp(pt)
	}

	kept := bb.Instructions[:0]
	for _, inst := range bb.Instructions {
		if inst.Op == il.OpAlloca && inst.HasResult && inst.ResultID == c.temp {
			continue
		}
		if inst.Op == il.OpLoad && inst.Operands[0].Kind == il.ValTemp && inst.Operands[0].Temp == c.temp {
			subst[inst.ResultID] = current
			if stats != nil {
				stats.RemovedLoads++
			}
			continue
		}
		if inst.Op == il.OpStore && inst.Operands[0].Kind == il.ValTemp && inst.Operands[0].Temp == c.temp {
			current = resolve(inst.Operands[1], subst)
			if stats != nil {
				stats.RemovedStores++
			}
			continue
		}
		substituteKnown(&inst, subst)
		kept = append(kept, inst)
	}
	bb.Instructions = kept

	if term := bb.Terminator(); term != nil {
		for li, lbl := range term.Labels {
			tgt := fn.BlockIndex(lbl)
			if tgt < 0 {
				continue
			}
			if _, ok := phiTemp[tgt]; ok {
				term.BrArgs[li] = append(term.BrArgs[li], current)
			}
		}
	}

	for _, child := range children[b] {
		renameMem2Reg(fn, children, phiTemp, subst, c, child, current, stats)
	}
}

func resolve(v il.Value, subst map[int]il.Value) il.Value {
	if v.Kind == il.ValTemp {
		if r, ok := subst[v.Temp]; ok {
			return r
		}
	}
	return v
}
