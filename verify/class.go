package verify

import "github.com/splanck/viper-sub036/il"

// class is a coarse type-compatibility bucket used for operand checking.
// Real width/signedness distinctions (i16 vs i32 vs i64) are not enforced
// here; only the broad category spec.md §4.3.3 cares about (int vs float
// vs bool vs ptr) is.
type class int

const (
	clAny class = iota
	clInt
	clFloat
	clBool
	clPtr
	clStr
)

func (c class) String() string {
	switch c {
	case clInt:
		return "int"
	case clFloat:
		return "float"
	case clBool:
		return "i1"
	case clPtr:
		return "ptr"
	case clStr:
		return "str"
	}
	return "any"
}

func classOfType(t il.Type) class {
	switch t.Kind {
	case il.I1:
		return clBool
	case il.I16, il.I32, il.I64:
		return clInt
	case il.F64:
		return clFloat
	case il.Ptr:
		return clPtr
	case il.Str:
		return clStr
	}
	return clAny
}

// compatible reports whether a value's class can serve where want is
// expected. clAny is a wildcard on both sides: untyped literals and opcodes
// without a meaningful static class skip the check rather than risk a false
// positive.
func compatible(want, got class) bool {
	if want == clAny || got == clAny {
		return true
	}
	if want == clBool && got == clInt {
		// Literal 0/1 is commonly used where an i1 is expected.
		return true
	}
	return want == got
}

// valueClass classifies v given the current temp-type map (from prior
// definitions in the function being checked).
func valueClass(v il.Value, tempTypes map[int]il.Type) class {
	switch v.Kind {
	case il.ValConstInt:
		return clInt
	case il.ValConstFloat:
		return clFloat
	case il.ValGlobalRef:
		return clPtr
	case il.ValNull:
		return classOfType(v.NullTy)
	case il.ValTemp:
		if t, ok := tempTypes[v.Temp]; ok {
			return classOfType(t)
		}
	}
	return clAny
}
