// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package bridge maintains the registry mapping runtime extern names to
// handlers and marshals VM slots to and from the runtime package's
// Go-native signatures, per spec.md §4.6. Grounded on
// integration/engine.go's named-registry-plus-translation shape
// (IsPROBEContract/Execute bridging a VM to blockchain-native types),
// generalized from a blockchain execution bridge to a runtime-ABI bridge.
package bridge

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/runtime"
	"github.com/splanck/viper-sub036/slot"
)

// Handler is one extern's implementation: given marshaled argument slots
// (already validated for count), it returns a result slot or a trap.
type Handler func(args []slot.Slot) (slot.Slot, *runtime.TrapError)

// Signature records an extern's declared parameter/return types, used to
// validate call arity independent of the handler itself.
type Signature struct {
	Params []il.Type
	Return il.Type
}

// Bridge owns the extern registry and the Runtime state the handlers
// close over.
type Bridge struct {
	RT       *runtime.Runtime
	Stdout   io.Writer
	Stdin    *bufio.Reader
	handlers map[string]Handler
	sigs     map[string]Signature
}

// New builds a Bridge with every spec.md §4.5 extern registered against rt.
// Stdout/Stdin default to the process streams; tests reassign them directly.
func New(rt *runtime.Runtime) *Bridge {
	b := &Bridge{
		RT:       rt,
		Stdout:   os.Stdout,
		Stdin:    bufio.NewReader(os.Stdin),
		handlers: map[string]Handler{},
		sigs:     map[string]Signature{},
	}
	registerStrings(b)
	registerAlloc(b)
	registerIO(b)
	registerNumeric(b)
	registerRandom(b)
	registerTime(b)
	registerArgs(b)
	registerTerm(b)
	return b
}

// register adds one extern to the registry.
func (b *Bridge) register(name string, sig Signature, h Handler) {
	b.handlers[name] = h
	b.sigs[name] = sig
}

// Signature returns the registered signature for name, if any.
func (b *Bridge) Signature(name string) (Signature, bool) {
	s, ok := b.sigs[name]
	return s, ok
}

// Call implements spec.md §4.6's four-step extern dispatch: unknown name
// traps, arity mismatch traps with the spec's exact message shape, then
// the handler runs and any RtError/panic-free failure is already expressed
// as a *runtime.TrapError by the handler itself. Call attaches no call-site
// information (function/block/instruction/loc); the vm package wraps the
// returned TrapError into a fully-sited il.Trap.
func (b *Bridge) Call(name string, args []slot.Slot) (slot.Slot, *runtime.TrapError) {
	h, ok := b.handlers[name]
	if !ok {
		return slot.Slot{}, &runtime.TrapError{Kind: il.TrapInvalidOperation, Message: "unknown extern"}
	}
	sig := b.sigs[name]
	if len(args) != len(sig.Params) {
		return slot.Slot{}, &runtime.TrapError{
			Kind:    il.TrapInvalidOperation,
			Message: fmt.Sprintf("%s: expected %d argument(s), got %d", name, len(sig.Params), len(args)),
		}
	}
	return h(args)
}
