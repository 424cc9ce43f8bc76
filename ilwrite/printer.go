// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package ilwrite serializes an il.Module back to its canonical textual
// form. Serialization is deterministic: blocks print in source order,
// instructions are unchanged, locs are preserved, and temps print as
// "%t<id>". parse(print(m)) == m for canonical modules (spec.md §8).
package ilwrite

import (
	"fmt"
	"strings"

	"github.com/splanck/viper-sub036/il"
)

// Print renders m as canonical IL text.
func Print(m *il.Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "il %s\n", m.Version)

	for _, e := range m.Externs {
		fmt.Fprintf(&b, "extern @%s(%s) -> %s\n", e.Name, joinTypes(e.ParamTypes), e.ReturnType)
	}
	for _, g := range m.Globals {
		prefix := ""
		if g.Const {
			prefix = "const "
		}
		fmt.Fprintf(&b, "global %s%s @%s = %q\n", prefix, g.Type, g.Name, string(g.InitData))
	}
	for i := range m.Functions {
		printFunction(&b, &m.Functions[i])
	}
	return b.String()
}

func joinTypes(ts []il.Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func printFunction(b *strings.Builder, f *il.Function) {
	fmt.Fprintf(b, "func @%s(%s) -> %s {\n", f.Name, joinParams(f.Params), f.ReturnType)
	for i := range f.Blocks {
		printBlock(b, &f.Blocks[i])
	}
	b.WriteString("}\n")
}

func joinParams(params []il.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%%%s:%s", p.Name, p.Type)
	}
	return strings.Join(parts, ", ")
}

func printBlock(b *strings.Builder, bb *il.BasicBlock) {
	if len(bb.Params) > 0 {
		fmt.Fprintf(b, "%s(%s):\n", bb.Label, joinParams(bb.Params))
	} else {
		fmt.Fprintf(b, "%s:\n", bb.Label)
	}
	lastLoc := il.Loc{}
	for _, inst := range bb.Instructions {
		if inst.Loc != lastLoc {
			fmt.Fprintf(b, "  .loc %d %d %d\n", inst.Loc.FileID, inst.Loc.Line, inst.Loc.Col)
			lastLoc = inst.Loc
		}
		b.WriteString("  ")
		printInstruction(b, &inst)
		b.WriteString("\n")
	}
}

func printInstruction(b *strings.Builder, inst *il.Instruction) {
	if inst.HasResult {
		fmt.Fprintf(b, "%%t%d = ", inst.ResultID)
	}

	switch inst.Op {
	case il.OpBr:
		fmt.Fprintf(b, "br %s", target(inst.Labels[0], inst.BrArgs[0]))
		return
	case il.OpCBr:
		fmt.Fprintf(b, "cbr %s, %s, %s", inst.Operands[0], target(inst.Labels[0], inst.BrArgs[0]), target(inst.Labels[1], inst.BrArgs[1]))
		return
	case il.OpRet:
		if len(inst.Operands) > 0 {
			fmt.Fprintf(b, "ret %s", inst.Operands[0])
		} else {
			b.WriteString("ret")
		}
		return
	case il.OpTrap:
		b.WriteString("trap")
		return
	case il.OpAlloca:
		fmt.Fprintf(b, "alloca %d -> %s", inst.AllocaBytes, inst.Type)
		return
	case il.OpCall:
		fmt.Fprintf(b, "call @%s(%s)", inst.CalleeName, joinValues(inst.Operands))
		if inst.Type.Kind != il.Void {
			fmt.Fprintf(b, " -> %s", inst.Type)
		}
		return
	case il.OpAddrOf:
		fmt.Fprintf(b, "addr_of @%s", inst.GlobalName)
		return
	case il.OpConstStr:
		fmt.Fprintf(b, "const_str @%s", inst.GlobalName)
		return
	case il.OpConstNull:
		b.WriteString("const_null")
		return
	}

	b.WriteString(inst.Op.String())
	if len(inst.Operands) > 0 {
		b.WriteString(" ")
		b.WriteString(joinValues(inst.Operands))
	}
	if inst.Type.Kind != il.Void {
		fmt.Fprintf(b, " -> %s", inst.Type)
	}
}

func target(label string, args []il.Value) string {
	return fmt.Sprintf("%s(%s)", label, joinValues(args))
}

func joinValues(vs []il.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
