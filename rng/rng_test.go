package rng

import (
	"testing"

	"github.com/patternengine/strudelcore/rational"
	"github.com/stretchr/testify/assert"
)

func TestDeterministic(t *testing.T) {
	t1 := rational.New(1, 4)
	a := New(1, "rand", t1).Float64()
	b := New(1, "rand", t1).Float64()
	assert.Equal(t, a, b)
}

func TestDifferentSeedsDiffer(t *testing.T) {
	t1 := rational.New(1, 4)
	a := New(1, "rand", t1).Float64()
	b := New(2, "rand", t1).Float64()
	assert.NotEqual(t, a, b)
}

func TestDifferentSaltsDiffer(t *testing.T) {
	t1 := rational.New(1, 4)
	a := New(1, "rand", t1).Float64()
	b := New(1, "other", t1).Float64()
	assert.NotEqual(t, a, b)
}

func TestFloat64InUnitRange(t *testing.T) {
	for i := int64(0); i < 50; i++ {
		f := New(1, "rand", rational.FromInt(i)).Float64()
		assert.True(t, f >= 0 && f < 1, "f=%v", f)
	}
}

func TestIntBounds(t *testing.T) {
	s := New(1, "irand", rational.FromInt(1))
	for i := 0; i < 20; i++ {
		n := s.NextStream().Int(8)
		assert.True(t, n >= 0 && n < 8)
	}
	assert.Equal(t, 0, s.Int(0))
}

func TestPermutationIsPermutation(t *testing.T) {
	s := New(5, "randrun", rational.FromInt(0))
	perm := s.Permutation(6)
	seen := map[int]bool{}
	for _, v := range perm {
		assert.False(t, seen[v])
		seen[v] = true
	}
	assert.Len(t, perm, 6)
}

func TestWeightedRespectsZeroWeights(t *testing.T) {
	s := New(1, "wchoose", rational.FromInt(0))
	idx := Weighted(s, []float64{0, 0, 1})
	assert.Equal(t, 2, idx)
}

func TestPerlinDeterministicAndBounded(t *testing.T) {
	a := Perlin(1, 0.37)
	b := Perlin(1, 0.37)
	assert.Equal(t, a, b)
	assert.True(t, a >= 0 && a <= 1)
}

func TestBerlinDeterministicAndBounded(t *testing.T) {
	a := Berlin(1, 0.9)
	b := Berlin(1, 0.9)
	assert.Equal(t, a, b)
	assert.True(t, a >= 0 && a <= 1)
}
