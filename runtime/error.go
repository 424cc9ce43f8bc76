// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package runtime implements the C-ABI helper surface spec.md §4.5 names
// (rt_string_*, rt_alloc, rt_print_*, rt_sqrt, rt_rnd, …) as plain Go
// functions operating on Go-native values; the bridge package marshals VM
// slots to and from these signatures. Grounded on
// original_source/runtime/{rt_math.c,rt_random.c} for exact numeric
// semantics and compiler/src/runtime/rt_error.c for the RtError sentinel
// shape.
package runtime

import (
	"fmt"

	"github.com/splanck/viper-sub036/il"
)

// ErrKind enumerates RtError's discriminant, matching the C ABI's
// RtErrorKind (§6.4): None, RuntimeError, DomainError, FileNotFound,
// InvalidOperation, Overflow, Bounds.
type ErrKind int

const (
	ErrNone ErrKind = iota
	ErrRuntimeError
	ErrDomainError
	ErrFileNotFound
	ErrInvalidOperation
	ErrOverflow
	ErrBounds
)

func (k ErrKind) String() string {
	switch k {
	case ErrNone:
		return "None"
	case ErrRuntimeError:
		return "RuntimeError"
	case ErrDomainError:
		return "DomainError"
	case ErrFileNotFound:
		return "FileNotFound"
	case ErrInvalidOperation:
		return "InvalidOperation"
	case ErrOverflow:
		return "Overflow"
	case ErrBounds:
		return "Bounds"
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// RtError is a soft runtime error a helper returns to its caller instead of
// trapping, e.g. a missing file or closing an unopened channel (spec.md
// §7's "runtime soft errors"). RT_ERROR_NONE in the C ABI corresponds to
// the zero value of RtError.
type RtError struct {
	Kind ErrKind
	Code int32
}

// NoError is the canonical "no error" sentinel, matching RT_ERROR_NONE.
var NoError = RtError{Kind: ErrNone}

func (e RtError) IsNone() bool { return e.Kind == ErrNone }

func (e RtError) Error() string {
	return fmt.Sprintf("rt error: %s (code=%d)", e.Kind, e.Code)
}

// TrapError is a hard runtime fault a helper raises instead of returning
// normally (e.g. rt_abs_i64(INT64_MIN)). It carries only the trap kind and
// message; the vm package attaches the call site (function/block/
// instruction/loc) when it turns it into a full il.Trap.
type TrapError struct {
	Kind    il.TrapKind
	Message string
}

func (e *TrapError) Error() string { return e.Message }

// trap builds a *TrapError, the shorthand every helper below uses.
func trap(kind il.TrapKind, format string, args ...interface{}) *TrapError {
	return &TrapError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
