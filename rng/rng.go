// Package rng implements the deterministic, seeded random streams the
// pattern engine derives from QueryContext. Two patterns querying the same
// time with the same seed and the same salt string must see the same
// stream (spec §4.9), so every generator here is a pure function of
// (seed, salt, quantised time) rather than anything stateful.
package rng

import (
	"math"

	"github.com/patternengine/strudelcore/rational"
)

// splitMix64 is the fixed hash the spec names as the reference algorithm
// for deriving a seeded stream from (seed, salt, quantised-time).
func splitMix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func hashString(s string) uint64 {
	// FNV-1a, used only to fold the salt string into a uint64 before
	// SplitMix64 mixes it with the seed and time components.
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

// Stream is a seeded pseudo-random stream positioned at one (seed, salt,
// time) coordinate. It is stateless beyond its four seed components, so
// producing a value never advances anything: calling Float64 twice on
// the same Stream yields the same number, by design — repeatability is the
// point. Patterns that want a sequence of distinct values derive a new
// Stream per draw (see NextStream).
type Stream struct {
	seed   int64
	salt   string
	tNum   int64
	tDen   int64
	serial uint64
}

// New builds the seeded stream for (seed, salt, quantised time t).
func New(seed int64, salt string, t rational.Rational) Stream {
	return Stream{seed: seed, salt: salt, tNum: t.Num, tDen: t.Den}
}

func (s Stream) mix() uint64 {
	h := splitMix64(uint64(s.seed))
	h = splitMix64(h ^ hashString(s.salt))
	h = splitMix64(h ^ uint64(s.tNum))
	h = splitMix64(h ^ uint64(s.tDen))
	h = splitMix64(h ^ s.serial)
	return h
}

// NextStream derives a new Stream from s that draws an independent value,
// used where a combinator needs several distinct random numbers at the same
// logical time coordinate (e.g. Euclidean rotation plus a separate degrade
// decision).
func (s Stream) NextStream() Stream {
	s.serial++
	return s
}

// Float64 returns a value in [0, 1).
func (s Stream) Float64() float64 {
	bits := s.mix()
	// Use the top 53 bits for a float64 in [0,1), the standard approach for
	// turning a 64-bit hash into a uniform double.
	return float64(bits>>11) / float64(uint64(1)<<53)
}

// Int returns an integer selector in [0, n). n <= 0 always returns 0.
func (s Stream) Int(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.mix() % uint64(n))
}

// Bool returns true with probability p (brand/brandBy, spec §4.3).
func (s Stream) Bool(p float64) bool {
	return s.Float64() < p
}

// Permutation returns a pseudo-random permutation of [0, n) derived
// deterministically from s, used by shuffle (spec §4.9). It's a
// seeded Fisher-Yates: each swap decision is drawn from a distinct derived
// sub-stream so the whole permutation is still a pure function of s.
func (s Stream) Permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	cur := s
	for i := n - 1; i > 0; i-- {
		cur = cur.NextStream()
		j := cur.Int(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Weighted performs weighted selection over n items whose weights are
// given by weights[i], returning the selected index. Used by wchoose and
// wchooseCycles (spec §4.9).
func Weighted(s Stream, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	target := s.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// Smoothstep is the smoothing curve Perlin noise uses to interpolate
// between lattice points (6t^5 - 15t^4 + 10t^3).
func smoothstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// gradientAt derives a pseudo-random gradient in [-1, 1] at integer lattice
// point i for the given seed, used by both Perlin and Berlin noise.
func gradientAt(seed int64, i int64) float64 {
	st := New(seed, "perlin-grad", rational.FromInt(i))
	return st.Float64()*2 - 1
}

// Perlin evaluates 1D Perlin-style noise at time t, seeded from ctx's
// random seed (0 if unset). The result is smoothly interpolated between
// pseudo-random gradients at integer lattice points, giving continuous,
// reproducible noise (spec §4.3).
func Perlin(seed int64, t float64) float64 {
	i0 := math.Floor(t)
	i1 := i0 + 1
	frac := t - i0
	g0 := gradientAt(seed, int64(i0))
	g1 := gradientAt(seed, int64(i1))
	u := smoothstep(frac)
	return (lerp(g0, g1, u) + 1) / 2 // normalised to [0,1] like the other continuous signals
}

// Berlin is a coarser, blockier cousin of Perlin noise: it holds each
// lattice gradient steady for the first three quarters of its unit
// interval and blends into the next (via smoothstep) only in the final
// quarter, giving a more "stepped"
// texture than Perlin's full-interval smoothstep. Still a pure function of
// (seed, t).
func Berlin(seed int64, t float64) float64 {
	i0 := math.Floor(t)
	i1 := i0 + 1
	frac := t - i0
	g0 := gradientAt(seed, int64(i0))
	g1 := gradientAt(seed, int64(i1))
	const blendStart = 0.75
	if frac < blendStart {
		return (g0 + 1) / 2
	}
	u := smoothstep((frac - blendStart) / (1 - blendStart))
	return (lerp(g0, g1, u) + 1) / 2
}
