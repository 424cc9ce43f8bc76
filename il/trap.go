package il

import "fmt"

// TrapKind discriminates the runtime fault categories the VM and runtime
// ABI can raise, per spec.md §4.7.
type TrapKind int

const (
	TrapDivideByZero TrapKind = iota
	TrapOverflow
	TrapInvalidCast
	TrapInvalidOperation
	TrapDomainError
	TrapBounds
	TrapOutOfMemory
	TrapFileError
	TrapInterrupt
)

var trapKindNames = [...]string{
	TrapDivideByZero:     "DivideByZero",
	TrapOverflow:         "Overflow",
	TrapInvalidCast:      "InvalidCast",
	TrapInvalidOperation: "InvalidOperation",
	TrapDomainError:      "DomainError",
	TrapBounds:           "Bounds",
	TrapOutOfMemory:      "OutOfMemory",
	TrapFileError:        "FileError",
	TrapInterrupt:        "Interrupt",
}

func (k TrapKind) String() string {
	if int(k) < len(trapKindNames) {
		return trapKindNames[k]
	}
	return fmt.Sprintf("TrapKind(%d)", int(k))
}

// Trap is a fully-sited runtime fault: the site (function, block,
// instruction index, source location) plus the kind and a human message.
// Code is the numeric payload printed in "(code=<c>)"; it is 0 for every
// trap kind this core raises directly (spec.md's scenarios never show a
// nonzero code).
type Trap struct {
	Kind  TrapKind
	Fn    string
	Block string
	Instr int
	Loc   Loc
	Code  int

	Message string
}

// ShortLine renders "Trap @<fn>[:<blk>]#<ip> line <L>: <Kind> (code=<c>)".
func (t Trap) ShortLine() string {
	site := "@" + t.Fn
	if t.Block != "" {
		site += ":" + t.Block
	}
	return fmt.Sprintf("Trap %s#%d line %d: %s (code=%d)", site, t.Instr, t.Loc.Line, t.Kind, t.Code)
}

// LongLine renders "runtime trap: <Kind> @ <fn>: <blk>[#<ip>] (<loc>): <message>".
func (t Trap) LongLine() string {
	return fmt.Sprintf("runtime trap: %s @ %s: %s[#%d] (%d:%d:%d): %s",
		t.Kind, t.Fn, t.Block, t.Instr, t.Loc.FileID, t.Loc.Line, t.Loc.Col, t.Message)
}

func (t Trap) Error() string { return t.ShortLine() + " " + t.LongLine() }
