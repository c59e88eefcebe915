package engine

import "math"

// seedBasis is the starting accumulator for seed folding. It is non-zero so an
// empty seed still yields a usable xorshift state.
const seedBasis uint32 = 1337

// maxFloat is the largest float64 strictly below 1.
var maxFloat = math.Nextafter(1, 0)

// Rand is a deterministic xorshift32 stream derived from a string seed.
// A Rand is not safe for concurrent use; callers construct one per generation.
type Rand struct {
	state uint32
}

// Derive folds seed into a 32-bit state and returns a new stream.
// The same seed always produces the same sequence.
func Derive(seed string) *Rand {
	return &Rand{state: FoldSeed(seed)}
}

// FoldSeed sums the code points of seed into a wrapping uint32 accumulator
// that starts at seedBasis. A zero result is replaced with seedBasis, since
// zero is a fixed point of xorshift.
func FoldSeed(seed string) uint32 {
	acc := seedBasis
	for _, r := range seed {
		acc += uint32(r)
	}
	if acc == 0 {
		acc = seedBasis
	}
	return acc
}

// Uint32 advances the stream and returns the raw 32-bit state.
func (r *Rand) Uint32() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Next returns the next value in [0, 1).
func (r *Rand) Next() float64 {
	f := float64(r.Uint32()) / math.MaxUint32
	// x == MaxUint32 divides to exactly 1
	if f >= 1 {
		return maxFloat
	}
	return f
}

// Intn returns floor(Next()*n) in [0, n). It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("engine: Intn called with n <= 0")
	}
	i := int(math.Floor(r.Next() * float64(n)))
	if i >= n {
		i = n - 1
	}
	return i
}

// Floats returns the first count values of the stream for seed.
func Floats(seed string, count int) []float64 {
	r := Derive(seed)
	floats := make([]float64, count)
	for i := range floats {
		floats[i] = r.Next()
	}
	return floats
}
