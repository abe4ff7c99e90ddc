// Package euclid implements Bjorklund's algorithm for distributing pulses
// as evenly as possible across a fixed number of steps, the basis of the
// pattern engine's Euclidean rhythm constructor (spec §4.8).
package euclid

// Bjorklund returns a boolean sequence of length steps with pulses ones
// maximally evenly distributed, matching the canonical rotation-0 output of
// Bjorklund's algorithm (e.g. E(3,8) = 10010010). Implemented via the
// equivalent "accumulate error" placement (slot i is a pulse when
// floor(i*pulses/steps) != floor((i-1)*pulses/steps)), which produces the
// same sequence with none of the recursive two-branch bookkeeping the
// original algorithm needs. pulses <= 0 returns all-false; pulses >= steps
// returns all-true.
func Bjorklund(pulses, steps int) []bool {
	if steps <= 0 {
		return nil
	}
	return distribute(pulses, steps)
}

// distribute places pulses ones as evenly as possible across steps slots.
func distribute(pulses, steps int) []bool {
	out := make([]bool, steps)
	if pulses <= 0 {
		return out
	}
	if pulses >= steps {
		for i := range out {
			out[i] = true
		}
		return out
	}
	prev := -1
	for i := 0; i < steps; i++ {
		cur := (i * pulses) / steps
		if cur != prev {
			out[i] = true
		}
		prev = cur
	}
	return out
}

// Rotate returns seq rotated left by n steps (so seq[n] becomes the new
// index 0), matching the rotation argument of the Euclidean pattern
// constructor.
func Rotate(seq []bool, n int) []bool {
	l := len(seq)
	if l == 0 {
		return seq
	}
	n = ((n % l) + l) % l
	out := make([]bool, l)
	for i := range seq {
		out[i] = seq[(i+n)%l]
	}
	return out
}

// Generate builds the rotated Euclidean boolean sequence for
// (pulses, steps, rotation).
func Generate(pulses, steps, rotation int) []bool {
	return Rotate(distribute(pulses, steps), rotation)
}

// Euclidish morphs linearly between the unmodified rotation-0 Euclidean
// rhythm (g=0) and a perfectly even placement (g=1), per spec §4.8. g is
// clamped to [0,1]. Rather than switching every pulse at once past some
// fixed cutoff, each of the pulses onsets (in onset order k = 0..pulses-1)
// has its own crossover point k/pulses, evenly spread across [0,1): pulse
// k sits at its Euclidean position while g is below that crossover, and at
// its even-placement position once g reaches it. As g sweeps 0 -> 1, the
// pulses hence move onto their even position one at a time rather than
// all together, so the rhythm morphs continuously and monotonically
// instead of jumping at a single global threshold.
func Euclidish(pulses, steps int, g float64) []bool {
	if g <= 0 {
		return distribute(pulses, steps)
	}
	if g >= 1 {
		return evenPlacement(pulses, steps)
	}
	if pulses <= 0 || steps <= 0 {
		return make([]bool, steps)
	}
	euclidPos := onsetPositions(distribute(pulses, steps))
	evenPos := onsetPositions(evenPlacement(pulses, steps))
	out := make([]bool, steps)
	n := len(euclidPos)
	for k := 0; k < n; k++ {
		pos := euclidPos[k]
		if g >= float64(k)/float64(n) {
			pos = evenPos[k]
		}
		out[pos] = true
	}
	return out
}

// onsetPositions returns the ascending slot indices where seq is true.
func onsetPositions(seq []bool) []int {
	out := make([]int, 0, len(seq))
	for i, v := range seq {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// evenPlacement spaces pulses pulses at the nearest integer positions to a
// perfectly even division of steps, used as the g=1 endpoint of Euclidish.
func evenPlacement(pulses, steps int) []bool {
	out := make([]bool, steps)
	if pulses <= 0 {
		return out
	}
	for k := 0; k < pulses; k++ {
		pos := int(float64(k) * float64(steps) / float64(pulses))
		out[pos%steps] = true
	}
	return out
}

// Legato extends each pulse's held duration to the next pulse, replacing
// silences with held notes as described by the legato mode of spec §4.8.
// It returns, for each pulse index in seq, the run-length until the next
// pulse (or the wrap-around distance for the last pulse).
func Legato(seq []bool) []int {
	n := len(seq)
	durations := make([]int, n)
	lastPulse := -1
	for i := n - 1; i >= 0; i-- {
		if seq[i] {
			lastPulse = i
			break
		}
	}
	if lastPulse == -1 {
		return durations
	}
	pulseIdxs := make([]int, 0, n)
	for i, v := range seq {
		if v {
			pulseIdxs = append(pulseIdxs, i)
		}
	}
	for idx, pi := range pulseIdxs {
		var next int
		if idx+1 < len(pulseIdxs) {
			next = pulseIdxs[idx+1]
		} else {
			next = pulseIdxs[0] + n
		}
		durations[pi] = next - pi
	}
	return durations
}
