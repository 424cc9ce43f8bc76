// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package verify checks a Module for well-formedness before it is handed to
// a transform pass or the VM, grounded on the bytecode verifier pattern in
// lang/codegen/verify.go generalized from offset-tagged errors to
// rule-tagged, function/block/instruction-located diagnostics.
package verify

import "fmt"

// Diagnostic is one verifier finding. Rule is a short identifier such as
// "ssa-dominance" or "terminator-missing"; Fn/Block/Instr locate the
// offending site within the module.
type Diagnostic struct {
	Rule    string
	Fn      string
	Block   string
	Instr   int
	Message string
}

// String renders the spec's rule-tagged format:
// "[RULE:<name>] <msg> at <fn>:<block>:<instr>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("[RULE:%s] %s at %s:%s:%d", d.Rule, d.Message, d.Fn, d.Block, d.Instr)
}

func (d Diagnostic) Error() string { return d.String() }
