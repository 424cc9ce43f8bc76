// Copyright 2024 The Viper Authors
// This file is part of Viper.

package vm

import (
	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/slot"
)

// Cell is one stack allocation: alloca yields a pointer to a Cell holding
// exactly one typed slot. This core's `gep` is a single-operand identity
// cast (per the verifier's signature for it, spec.md §4.3.3) rather than
// byte-offset pointer arithmetic, so every live pointer resolves to
// exactly one Cell and no address math is modeled.
type Cell struct {
	Type  il.Type
	Value slot.Slot
}

func newCell(ty il.Type) *Cell { return &Cell{Type: ty} }
