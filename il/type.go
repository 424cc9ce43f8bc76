// Copyright 2024 The Viper Authors
// This file is part of Viper.
//
// Viper is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package il defines the in-memory data model for the Viper intermediate
// language: the ten primitive types, SSA values, module/function/block/
// instruction containers, and the opcode inventory.
//
// Design principles:
//   - Types are value semantics, cheap to copy, with no parametric or
//     aggregate forms.
//   - Module owns all nested Functions, Blocks, Instructions, Globals and
//     Externs by value in contiguous storage; passes mutate in place.
//   - Block parameters replace PHI nodes entirely.
package il

import "fmt"

// Kind enumerates the ten primitive IL types.
type Kind uint8

const (
	Void Kind = iota
	I1
	I16
	I32
	I64
	F64
	Ptr
	Str
	Error
	ResumeTok
)

var kindNames = [...]string{
	Void:      "void",
	I1:        "i1",
	I16:       "i16",
	I32:       "i32",
	I64:       "i64",
	F64:       "f64",
	Ptr:       "ptr",
	Str:       "str",
	Error:     "error",
	ResumeTok: "resume_tok",
}

// String returns the lowercase mnemonic for k, e.g. "i64".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Type is a lightweight value-based wrapper around Kind.
type Type struct {
	Kind Kind
}

// T builds a Type from a Kind; a convenience for literal construction.
func T(k Kind) Type { return Type{Kind: k} }

func (t Type) String() string { return t.Kind.String() }

// ParseKind maps a mnemonic back to its Kind. ok is false for unknown
// mnemonics (the caller should report "unknown type").
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return Void, false
}

// IsPrimitiveSlot reports whether k is one of the primitive scalar kinds
// that mem2reg is allowed to promote an alloca of (i1, i16, i32, i64, f64).
func (k Kind) IsPrimitiveSlot() bool {
	switch k {
	case I1, I16, I32, I64, F64:
		return true
	}
	return false
}
