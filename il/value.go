package il

import (
	"fmt"
	"math"
)

// ValueKind discriminates the five Value variants.
type ValueKind uint8

const (
	ValTemp ValueKind = iota
	ValConstInt
	ValConstFloat
	ValGlobalRef
	ValNull
)

// Value is a five-way discriminated union: a temp id, an integer or float
// literal, a global reference, or a typed null pointer constant.
//
// ConstFloat equality and hashing must use the IEEE-754 bit pattern (not
// float equality) so that -0.0 and distinct NaN payloads are preserved;
// Value.FloatBits exposes that pattern for callers building hash keys.
type Value struct {
	Kind    ValueKind
	Temp    int     // valid when Kind == ValTemp
	Int     int64   // valid when Kind == ValConstInt
	Float   float64 // valid when Kind == ValConstFloat
	Global  string  // valid when Kind == ValGlobalRef
	NullTy  Type    // valid when Kind == ValNull
}

// VTemp builds a reference to temp id.
func VTemp(id int) Value { return Value{Kind: ValTemp, Temp: id} }

// VInt builds a signed 64-bit integer literal.
func VInt(v int64) Value { return Value{Kind: ValConstInt, Int: v} }

// VFloat builds an IEEE-754 float literal.
func VFloat(v float64) Value { return Value{Kind: ValConstFloat, Float: v} }

// VGlobal builds a reference to a named global.
func VGlobal(name string) Value { return Value{Kind: ValGlobalRef, Global: name} }

// VNull builds a typed null pointer constant.
func VNull(t Type) Value { return Value{Kind: ValNull, NullTy: t} }

// FloatBits returns the IEEE-754 bit pattern of a ValConstFloat value, for
// use as a map key that preserves -0.0 and distinct NaN payloads.
func (v Value) FloatBits() uint64 { return math.Float64bits(v.Float) }

func (v Value) String() string {
	switch v.Kind {
	case ValTemp:
		return fmt.Sprintf("%%t%d", v.Temp)
	case ValConstInt:
		return fmt.Sprintf("%d", v.Int)
	case ValConstFloat:
		return formatFloatLiteral(v.Float)
	case ValGlobalRef:
		return "@" + v.Global
	case ValNull:
		return "null"
	}
	return "<bad value>"
}

// formatFloatLiteral renders a float constant for IL text output. Integral
// values print without a fractional part suppressed (e.g. 2 -> "2.0") so
// round-tripping distinguishes float literals from integer ones.
func formatFloatLiteral(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := fmt.Sprintf("%g", f)
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return s
		}
	}
	return s + ".0"
}

// Equal reports structural equality, using bit-pattern comparison for
// floats as required by the data model's invariants.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValTemp:
		return v.Temp == o.Temp
	case ValConstInt:
		return v.Int == o.Int
	case ValConstFloat:
		return v.FloatBits() == o.FloatBits()
	case ValGlobalRef:
		return v.Global == o.Global
	case ValNull:
		return v.NullTy == o.NullTy
	}
	return false
}
