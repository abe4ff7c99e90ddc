package euclid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func toInts(seq []bool) []int {
	out := make([]int, 0)
	for i, v := range seq {
		if v {
			out = append(out, i)
		}
	}
	return out
}

func TestBjorklund_3_8(t *testing.T) {
	seq := Bjorklund(3, 8)
	assert.Equal(t, []int{0, 3, 6}, toInts(seq))
}

func TestBjorklund_5_8(t *testing.T) {
	seq := Bjorklund(5, 8)
	assert.Len(t, toInts(seq), 5)
	assert.Len(t, seq, 8)
}

func TestBjorklundEdgeCases(t *testing.T) {
	assert.Equal(t, []int{}, toInts(Bjorklund(0, 8)))
	full := Bjorklund(8, 8)
	assert.Len(t, toInts(full), 8)
	assert.Nil(t, Bjorklund(3, 0))
}

func TestRotate(t *testing.T) {
	seq := []bool{true, false, false, true}
	rotated := Rotate(seq, 1)
	assert.Equal(t, []bool{false, false, true, true}, rotated)

	// Negative rotation wraps around.
	rotatedNeg := Rotate(seq, -1)
	assert.Equal(t, []bool{true, true, false, false}, rotatedNeg)
}

func TestGenerateAppliesRotation(t *testing.T) {
	base := Generate(3, 8, 0)
	rotated := Generate(3, 8, 3)
	assert.Equal(t, Rotate(base, 3), rotated)
}

func TestEuclidishEndpoints(t *testing.T) {
	euclidean := Euclidish(3, 8, 0)
	assert.Equal(t, distribute(3, 8), euclidean)

	even := Euclidish(3, 8, 1)
	assert.Len(t, toInts(even), 3)
}

// TestEuclidishMorphsAtIntermediateG pins down the exact case the review
// flagged: g=0.1 and g=0.49 used to be byte-identical because the old code
// only ever switched wholesale at g>=0.5. With pulses crossing over to
// their even-placement position one at a time (at their own k/pulses
// threshold), 0.49 has already crossed pulse 1's threshold (1/3) while 0.1
// hasn't, so the two must differ, and the low-g result must still equal
// the pure Euclidean rhythm at the pulses that haven't crossed yet.
func TestEuclidishMorphsAtIntermediateG(t *testing.T) {
	low := Euclidish(3, 8, 0.1)
	mid := Euclidish(3, 8, 0.49)
	high := Euclidish(3, 8, 0.9)
	assert.Equal(t, distribute(3, 8), low)
	assert.NotEqual(t, low, mid)
	assert.NotEqual(t, mid, high)
	assert.Len(t, toInts(mid), 3)
}

// TestEuclidishMonotonicPulseCount confirms that as g rises, never fewer
// pulses have crossed onto their even-placement slot.
func TestEuclidishMonotonicPulseCount(t *testing.T) {
	euclidPos := toInts(distribute(5, 16))
	evenPos := toInts(evenPlacement(5, 16))
	crossedAt := func(g float64) int {
		seq := Euclidish(5, 16, g)
		count := 0
		for k, pos := range evenPos {
			if euclidPos[k] != pos && seq[pos] {
				count++
			}
		}
		return count
	}
	prev := -1
	for _, g := range []float64{0.05, 0.25, 0.45, 0.65, 0.85} {
		cur := crossedAt(g)
		assert.True(t, cur >= prev, "pulse crossings should never decrease as g rises")
		prev = cur
	}
}

func TestLegatoExtendsToNextPulse(t *testing.T) {
	seq := []bool{true, false, false, true, false, false, true, false}
	durations := Legato(seq)
	assert.Equal(t, 3, durations[0])
	assert.Equal(t, 3, durations[3])
	assert.Equal(t, 2, durations[6]) // wraps to index 0 + 8
}
