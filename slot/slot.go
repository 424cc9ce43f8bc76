// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package slot defines the VM's uniform value carrier (spec.md's Glossary
// "Slot" entry): a tagged union large enough for i64, f64, ptr, and str
// (a runtime string handle). It has no dependencies beyond the standard
// library so both the vm and bridge packages can share the type without
// an import cycle between them.
package slot

import "math"

// Slot holds exactly one of an integer (i1/i16/i32/i64, booleans as 0/1),
// a float64, or an opaque pointer/string handle. Which field is valid is
// determined by the IL Type of the producing instruction, not tracked on
// the Slot itself (mirroring the C ABI's untagged union).
type Slot struct {
	I   int64
	F   float64
	Ptr interface{} // runtime string handle, or any other opaque pointer payload
}

// I64 builds an integer-carrying slot.
func I64(v int64) Slot { return Slot{I: v} }

// Bool builds an i1-carrying slot (0/1 in the I field).
func Bool(v bool) Slot {
	if v {
		return Slot{I: 1}
	}
	return Slot{I: 0}
}

// F64 builds a float-carrying slot.
func F64(v float64) Slot { return Slot{F: v} }

// Pointer builds a ptr/str-carrying slot.
func Pointer(p interface{}) Slot { return Slot{Ptr: p} }

// AsBool reports the I field as a boolean (nonzero is true).
func (s Slot) AsBool() bool { return s.I != 0 }

// FloatBits returns the IEEE-754 bit pattern of F, for callers that must
// distinguish -0.0 or NaN payloads bit-for-bit.
func (s Slot) FloatBits() uint64 { return math.Float64bits(s.F) }
