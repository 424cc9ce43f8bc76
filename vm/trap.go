// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"fmt"

	"github.com/splanck/viper-sub036/il"
)

// trapSignal is an opcode handler's internal "raise a fault" result; the
// step loop attaches the call site (function/block/instruction/loc) to
// turn it into a fully-sited il.Trap before it ever leaves the package.
type trapSignal struct {
	Kind    il.TrapKind
	Message string
}

func raise(kind il.TrapKind, format string, args ...interface{}) *trapSignal {
	return &trapSignal{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// sited builds the fully-sited il.Trap the VM surfaces to its caller.
func (s *trapSignal) sited(fr *Frame, ip int) il.Trap {
	instr := fr.Block.Instructions[ip]
	return il.Trap{
		Kind:    s.Kind,
		Fn:      fr.Fn.Name,
		Block:   fr.Block.Label,
		Instr:   ip,
		Loc:     instr.Loc,
		Message: s.Message,
	}
}
