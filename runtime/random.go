package runtime

// defaultSeed and the LCG constants below are grounded verbatim on
// original_source/runtime/rt_random.c: a 64-bit linear congruential
// generator with a fixed non-zero default seed.
const (
	defaultSeed  uint64 = 0xDEADBEEFCAFEBABE
	lcgMultiplier uint64 = 6364136223846793005
	lcgIncrement  uint64 = 1
)

// RtRandomizeI64 implements rt_randomize_i64(seed): reseeds the generator.
func (r *Runtime) RtRandomizeI64(seed int64) {
	r.rngState = uint64(seed)
}

// RtRnd implements rt_rnd(): advances the LCG and returns a reproducible
// double in [0.0, 1.0), using the top 53 bits of state as the mantissa.
func (r *Runtime) RtRnd() float64 {
	r.rngState = r.rngState*lcgMultiplier + lcgIncrement
	x := (r.rngState >> 11) & ((1 << 53) - 1)
	return float64(x) * (1.0 / 9007199254740992.0)
}
