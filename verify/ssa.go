package verify

import (
	"fmt"

	"github.com/splanck/viper-sub036/analysis"
	"github.com/splanck/viper-sub036/il"
)

// tempDef locates where a temp id is defined: blockIdx is the owning block;
// instrIdx is -1 for a function/block parameter (defined "before" the
// block's first instruction, so it dominates the whole block) and the
// instruction index otherwise.
type tempDef struct {
	blockIdx int
	instrIdx int
}

// checkSSA verifies every temp id is produced exactly once and every use is
// dominated by its definition, per spec.md §4.3.2. It also returns a
// best-effort temp-id -> Type map for the type checks that follow; the map
// is populated even when a dominance violation was reported, so later
// checks can still run.
func checkSSA(fn *il.Function, cfg *analysis.CFG, dom *analysis.DominatorTree) (map[int]il.Type, []Diagnostic) {
	var diags []Diagnostic
	defs := map[int]tempDef{}
	types := map[int]il.Type{}

	define := func(id int, blockIdx, instrIdx int, ty il.Type, blockLabel string) {
		if _, dup := defs[id]; dup {
			diags = append(diags, Diagnostic{
				Rule: "ssa-single-def", Fn: fn.Name, Block: blockLabel, Instr: instrIdx,
				Message: fmt.Sprintf("temp %%t%d defined more than once", id),
			})
			return
		}
		defs[id] = tempDef{blockIdx: blockIdx, instrIdx: instrIdx}
		types[id] = ty
	}

	for _, p := range fn.Params {
		define(p.SlotID, 0, -1, p.Type, fn.Entry().Label)
	}
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		for _, p := range bb.Params {
			define(p.SlotID, bi, -1, p.Type, bb.Label)
		}
	}
	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		for ii, inst := range bb.Instructions {
			if inst.HasResult {
				define(inst.ResultID, bi, ii, inst.Type, bb.Label)
			}
		}
	}

	checkUse := func(v il.Value, useBlock, useInstr int, blockLabel string) {
		if v.Kind != il.ValTemp {
			return
		}
		def, ok := defs[v.Temp]
		if !ok {
			diags = append(diags, Diagnostic{
				Rule: "ssa-use-before-def", Fn: fn.Name, Block: blockLabel, Instr: useInstr,
				Message: fmt.Sprintf("use of undefined temp %%t%d", v.Temp),
			})
			return
		}
		if !dom.Dominates(def.blockIdx, useBlock) {
			diags = append(diags, Diagnostic{
				Rule: "ssa-dominance", Fn: fn.Name, Block: blockLabel, Instr: useInstr,
				Message: fmt.Sprintf("use of %%t%d is not dominated by its definition", v.Temp),
			})
			return
		}
		if def.blockIdx == useBlock && def.instrIdx >= useInstr {
			diags = append(diags, Diagnostic{
				Rule: "ssa-dominance", Fn: fn.Name, Block: blockLabel, Instr: useInstr,
				Message: fmt.Sprintf("use of %%t%d precedes its definition in the same block", v.Temp),
			})
		}
	}

	for bi := range fn.Blocks {
		bb := &fn.Blocks[bi]
		for ii, inst := range bb.Instructions {
			for _, v := range inst.Operands {
				checkUse(v, bi, ii, bb.Label)
			}
			for _, args := range inst.BrArgs {
				for _, v := range args {
					checkUse(v, bi, ii, bb.Label)
				}
			}
		}
	}

	return types, diags
}
