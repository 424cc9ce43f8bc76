package runtime

import "github.com/splanck/viper-sub036/il"

// AllocHook is consulted by every allocation helper so tests can force
// failure and verify traps (spec.md §4.5's closing note).
type AllocHook func(size int64) ([]byte, bool)

// defaultAllocHook always succeeds, returning a zeroed buffer.
func defaultAllocHook(size int64) ([]byte, bool) {
	return make([]byte, size), true
}

// Runtime is the process-global state bag gated behind an explicit handle
// per spec.md §9 ("Global mutable state (runtime)"): the allocation hook,
// RNG state, args store, and file-channel table.
type Runtime struct {
	allocHook AllocHook
	rngState  uint64
	args      []string
	files     map[int]*fileChannel
	nextFD    int
}

// New creates a Runtime with the default (always-succeeding) allocation
// hook and the documented default RNG seed.
func New() *Runtime {
	return &Runtime{
		allocHook: defaultAllocHook,
		rngState:  defaultSeed,
		files:     make(map[int]*fileChannel),
		nextFD:    1,
	}
}

// SetAllocHook installs a replaceable allocation hook, letting tests force
// allocation failure.
func (r *Runtime) SetAllocHook(h AllocHook) {
	if h == nil {
		h = defaultAllocHook
	}
	r.allocHook = h
}

// RtAlloc implements rt_alloc(bytes): returns a zero-initialized buffer;
// negative size traps, zero is a valid (non-nil) allocation.
func (r *Runtime) RtAlloc(bytes int64) ([]byte, error) {
	if bytes < 0 {
		return nil, trap(il.TrapBounds, "rt_alloc: negative size")
	}
	buf, ok := r.allocHook(bytes)
	if !ok {
		return nil, trap(il.TrapOutOfMemory, "out of memory")
	}
	return buf, nil
}
