package ports

// Source of uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}
