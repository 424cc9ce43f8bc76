package verify

import (
	"fmt"

	"github.com/splanck/viper-sub036/analysis"
	"github.com/splanck/viper-sub036/il"
)

// Verify checks every function, global and extern in m and returns every
// diagnostic found. Verification never panics and never stops at the first
// error: every rule that can still be evaluated after an earlier failure is
// still run, mirroring the parser's "report and continue" policy.
func Verify(m *il.Module) []Diagnostic {
	var diags []Diagnostic

	diags = append(diags, checkGlobalsAndExterns(m)...)

	seenFn := map[string]bool{}
	for i := range m.Functions {
		fn := &m.Functions[i]
		if seenFn[fn.Name] {
			diags = append(diags, Diagnostic{Rule: "unique-name", Fn: fn.Name, Message: "duplicate function name"})
		}
		seenFn[fn.Name] = true
		diags = append(diags, verifyFunction(m, fn)...)
	}
	return diags
}

func checkGlobalsAndExterns(m *il.Module) []Diagnostic {
	var diags []Diagnostic
	seen := map[string]bool{}
	for _, g := range m.Globals {
		if seen[g.Name] {
			diags = append(diags, Diagnostic{Rule: "unique-name", Message: fmt.Sprintf("duplicate global name %q", g.Name)})
		}
		seen[g.Name] = true
	}
	seenExtern := map[string]bool{}
	for _, e := range m.Externs {
		if seenExtern[e.Name] {
			diags = append(diags, Diagnostic{Rule: "unique-name", Message: fmt.Sprintf("duplicate extern name %q", e.Name)})
		}
		seenExtern[e.Name] = true
	}
	return diags
}

func verifyFunction(m *il.Module, fn *il.Function) []Diagnostic {
	var diags []Diagnostic

	diags = append(diags, checkStructural(fn)...)

	cfg := analysis.Build(fn)
	dom := analysis.BuildDominators(cfg)

	diags = append(diags, checkEntryHasNoPredecessors(fn, cfg)...)

	tempTypes, ssaDiags := checkSSA(fn, cfg, dom)
	diags = append(diags, ssaDiags...)

	diags = append(diags, checkTerminators(m, fn, cfg, tempTypes)...)
	diags = append(diags, checkTypes(fn, tempTypes)...)
	diags = append(diags, checkMemory(fn, tempTypes)...)
	diags = append(diags, checkCalls(m, fn, tempTypes)...)
	diags = append(diags, checkGlobalRefs(m, fn)...)

	return diags
}
