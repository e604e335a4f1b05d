package statecheck

import (
	"math/bits"
	"math/rand/v2"
)

// pcgStream is the fixed PCG stream selector. Only the seed varies per case.
const pcgStream = 0x9e3779b97f4a7c15

// Rand supplies pseudo-random values to generators.
//
// Size bounds how large generated values and sequences get; generators treat
// it as an upper bound on magnitude or length. A Rand is not safe for
// concurrent use.
//
// Bounded draws take exactly one value from the source and never retry, so
// a ByteSource that has run dry yields zeros instead of spinning.
type Rand struct {
	src  rand.Source
	size int
}

// NewRand returns a Rand seeded deterministically from seed.
func NewRand(seed uint64, size int) *Rand {
	return NewRandFrom(rand.NewPCG(seed, pcgStream), size)
}

// NewRandFrom returns a Rand drawing from src. Negative sizes are treated as 0.
func NewRandFrom(src rand.Source, size int) *Rand {
	return &Rand{src: src, size: max(size, 0)}
}

// Size returns the current size parameter.
func (r *Rand) Size() int {
	return r.size
}

// Resized returns a Rand sharing the same random stream with a different size.
func (r *Rand) Resized(size int) *Rand {
	return &Rand{src: r.src, size: max(size, 0)}
}

// IntN returns a value in [0, n). Returns 0 if n <= 0.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		return 0
	}

	return int(r.Uint64N(uint64(n)))
}

// IntRange returns a value in [lo, hi]. Returns lo if hi < lo.
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}

	// Spans wider than MaxInt overflow int, so work in uint64.
	span := uint64(hi) - uint64(lo)
	if span == ^uint64(0) {
		return int(r.Uint64())
	}

	return int(uint64(lo) + r.Uint64N(span+1))
}

// Int64 returns a value over the full int64 range.
func (r *Rand) Int64() int64 {
	return int64(r.src.Uint64())
}

// Uint64 returns a value over the full uint64 range.
func (r *Rand) Uint64() uint64 {
	return r.src.Uint64()
}

// Uint64N returns a value in [0, n). Returns 0 if n == 0.
func (r *Rand) Uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}

	hi, _ := bits.Mul64(r.src.Uint64(), n)

	return hi
}

// Bool returns a uniformly chosen boolean.
func (r *Rand) Bool() bool {
	return r.src.Uint64()>>63 == 1
}

// Weighted picks an index with probability proportional to its weight.
// Negative weights count as zero. Returns -1 if all weights are zero.
func (r *Rand) Weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		total += max(w, 0)
	}

	if total == 0 {
		return -1
	}

	pick := r.IntN(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}

		if pick < w {
			return i
		}

		pick -= w
	}

	return len(weights) - 1
}
