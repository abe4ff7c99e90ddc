package rational

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalises(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		wantNum  int64
		wantDen  int64
	}{
		{"already reduced", 1, 2, 1, 2},
		{"reduces gcd", 2, 4, 1, 2},
		{"negative denominator flips sign", 1, -2, -1, 2},
		{"negative numerator stays negative", -1, 2, -1, 2},
		{"both negative cancel", -2, -4, 1, 2},
		{"zero denominator collapses to zero", 5, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.num, tt.den)
			require.Equal(t, tt.wantNum, got.Num)
			require.Equal(t, tt.wantDen, got.Den)
		})
	}
}

func TestArithmetic(t *testing.T) {
	half := New(1, 2)
	third := New(1, 3)

	assert.Equal(t, New(5, 6), half.Add(third))
	assert.Equal(t, New(1, 6), half.Sub(third))
	assert.Equal(t, New(1, 6), half.Mul(third))
	assert.Equal(t, New(3, 2), half.Div(third))
	assert.Equal(t, Zero, half.Div(Zero))
}

func TestModFloorsNegatives(t *testing.T) {
	// -1/4 mod 1 must land in [0, 1), matching cycle-boundary arithmetic.
	r := New(-1, 4)
	got := r.Mod(One)
	assert.True(t, got.GreaterEq(Zero))
	assert.True(t, got.Less(One))
	assert.Equal(t, New(3, 4), got)
}

func TestFloorCeilRound(t *testing.T) {
	tests := []struct {
		name        string
		r           Rational
		floor, ceil int64
		round       int64
	}{
		{"positive fraction", New(7, 4), 1, 2, 2},
		{"negative fraction", New(-7, 4), -2, -1, -2},
		{"exact integer", FromInt(3), 3, 3, 3},
		{"half rounds away from zero", New(1, 2), 0, 1, 1},
		{"negative half rounds away from zero", New(-1, 2), -1, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.floor, tt.r.Floor())
			assert.Equal(t, tt.ceil, tt.r.Ceil())
			assert.Equal(t, tt.round, tt.r.Round())
		})
	}
}

func TestCompare(t *testing.T) {
	assert.True(t, New(1, 3).Less(New(1, 2)))
	assert.True(t, New(2, 4).Equal(New(1, 2)))
	assert.True(t, New(3, 4).Greater(New(1, 2)))
}

func TestToFloatAndBack(t *testing.T) {
	r := New(3, 8)
	assert.InDelta(t, 0.375, r.ToFloat(), 1e-9)
	back := FromFloat(0.375)
	assert.True(t, back.Equal(r), "got %v want %v", back, r)
}

func TestMinMax(t *testing.T) {
	a, b := New(1, 3), New(1, 2)
	assert.Equal(t, a, Min(a, b))
	assert.Equal(t, b, Max(a, b))
}

func TestString(t *testing.T) {
	assert.Equal(t, "3/4", New(3, 4).String())
	assert.Equal(t, "5", FromInt(5).String())
}
