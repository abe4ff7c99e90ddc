// Package rational implements exact fractional arithmetic used throughout
// the pattern engine for time math. Every span endpoint, cycle boundary and
// Euclidean distribution is expressed in Rational so that repeated time
// transforms never accumulate floating-point drift.
package rational

import "fmt"

// Rational is an exact fraction, always normalised so that Den > 0 and
// gcd(|Num|, Den) == 1.
type Rational struct {
	Num int64
	Den int64
}

// Zero, One and MinusOne are the constants the combinators reach for most.
var (
	Zero     = Rational{0, 1}
	One      = Rational{1, 1}
	MinusOne = Rational{-1, 1}
)

// New builds a normalised Rational from a numerator and denominator.
// A zero denominator collapses to Zero rather than panicking, since the
// query path must never throw (spec §7); callers that need to detect the
// zero-denominator case should check Den themselves before calling New.
func New(num, den int64) Rational {
	if den == 0 {
		return Zero
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g == 0 {
		return Rational{0, 1}
	}
	return Rational{num / g, den / g}
}

// FromInt builds a Rational equal to n.
func FromInt(n int64) Rational { return Rational{n, 1} }

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func lcm(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return abs(a/gcd(a, b)) * abs(b)
}

// Add returns r + other.
func (r Rational) Add(other Rational) Rational {
	den := lcm(r.Den, other.Den)
	num := r.Num*(den/r.Den) + other.Num*(den/other.Den)
	return New(num, den)
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) Rational {
	return r.Add(other.Neg())
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) Rational {
	return New(r.Num*other.Num, r.Den*other.Den)
}

// Div returns r / other. Division by zero returns Zero; callers that must
// distinguish "zero result" from "undefined" should check other.IsZero()
// first (the value package does this to produce a Null value per spec §4.6).
func (r Rational) Div(other Rational) Rational {
	if other.Num == 0 {
		return Zero
	}
	return New(r.Num*other.Den, r.Den*other.Num)
}

// Mod returns the non-negative remainder of r modulo other, matching the
// floor-division convention cycle math depends on (so that Mod of a
// negative time still lands inside [0, other)).
func (r Rational) Mod(other Rational) Rational {
	if other.Num == 0 {
		return Zero
	}
	q := r.Div(other).Floor()
	return r.Sub(FromInt(q).Mul(other))
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{-r.Num, r.Den}
}

// Cmp returns -1, 0 or 1 as r is less than, equal to, or greater than other.
func (r Rational) Cmp(other Rational) int {
	left := r.Num * other.Den
	right := other.Num * r.Den
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// Less, LessEq, Greater, GreaterEq, Equal are Cmp convenience wrappers.
func (r Rational) Less(other Rational) bool      { return r.Cmp(other) < 0 }
func (r Rational) LessEq(other Rational) bool     { return r.Cmp(other) <= 0 }
func (r Rational) Greater(other Rational) bool    { return r.Cmp(other) > 0 }
func (r Rational) GreaterEq(other Rational) bool  { return r.Cmp(other) >= 0 }
func (r Rational) Equal(other Rational) bool      { return r.Cmp(other) == 0 }
func (r Rational) IsZero() bool                   { return r.Num == 0 }

// Floor returns the greatest integer <= r.
func (r Rational) Floor() int64 {
	if r.Num >= 0 {
		return r.Num / r.Den
	}
	q := r.Num / r.Den
	if r.Num%r.Den != 0 {
		q--
	}
	return q
}

// Ceil returns the least integer >= r.
func (r Rational) Ceil() int64 {
	f := r.Floor()
	if FromInt(f).Equal(r) {
		return f
	}
	return f + 1
}

// Round returns the nearest integer to r, rounding half away from zero.
func (r Rational) Round() int64 {
	doubled := r.Mul(rationalTwo)
	f := doubled.Floor()
	half := New(f, 2)
	if half.Equal(r) {
		// Exactly .5: round away from zero.
		if r.Num >= 0 {
			return (f + 1) / 2
		}
		return (f - 1) / 2
	}
	// Standard rounding via floor(r + 1/2).
	shifted := r.Add(New(1, 2))
	return shifted.Floor()
}

var rationalTwo = FromInt(2)

// ToFloat converts r to a float64, used only where the DSL explicitly wants
// a double (continuous signal functions, the VoiceValue "value" field).
func (r Rational) ToFloat() float64 {
	return float64(r.Num) / float64(r.Den)
}

// FromFloat approximates f as a Rational with a bounded denominator. Exact
// time math never calls this; it exists for interop with continuous
// functions and DSL literals that arrive as doubles.
func FromFloat(f float64) Rational {
	const maxDen = 1 << 20
	if f == 0 {
		return Zero
	}
	sign := int64(1)
	if f < 0 {
		sign = -1
		f = -f
	}
	num, den := int64(0), int64(1)
	for den < maxDen {
		num = int64(f * float64(den))
		if float64(num)/float64(den) == f {
			break
		}
		den *= 2
	}
	return New(sign*num, den)
}

// ToInt truncates r toward zero.
func (r Rational) ToInt() int64 {
	return r.Num / r.Den
}

// String renders r as "num/den", or "num" when Den == 1.
func (r Rational) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Min returns the smaller of a and b.
func Min(a, b Rational) Rational {
	if a.Less(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Rational) Rational {
	if a.Greater(b) {
		return a
	}
	return b
}
