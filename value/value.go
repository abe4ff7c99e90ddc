// Package value implements VoiceValue, the tagged numeric/string/sequence
// value carried by every event, and VoiceData, the mapping of parameter
// names to values (held in a Go map, so entry order is not preserved). Arithmetic prefers exact Rational math and only
// falls back to float64 when an operand can't be expressed exactly, the way
// spec §3 requires.
package value

import (
	"fmt"
	"math"

	"github.com/patternengine/strudelcore/rational"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindNum
	KindStr
	KindSeq
)

// Value is the tagged union described in spec §3: Num (exact Rational or
// float64), Str, Seq (a list of Value) or Null.
type Value struct {
	kind Kind
	r    rational.Rational
	f    float64
	exact bool
	s    string
	seq  []Value
}

// Null is the absent/undefined value. Division by zero, modulo by zero and
// type-mismatched arithmetic all produce Null, which downstream combinators
// treat as "drop this event's value" per spec §7.
var Null = Value{kind: KindNull}

// NumExact builds an exact numeric Value backed by a Rational.
func NumExact(r rational.Rational) Value {
	return Value{kind: KindNum, r: r, f: r.ToFloat(), exact: true}
}

// NumFloat builds an inexact numeric Value backed by a float64.
func NumFloat(f float64) Value {
	return Value{kind: KindNum, f: f, exact: false}
}

// Str builds a string Value.
func Str(s string) Value {
	return Value{kind: KindStr, s: s}
}

// Seq builds a sequence Value.
func Seq(items []Value) Value {
	return Value{kind: KindSeq, seq: items}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsNum() bool  { return v.kind == KindNum }
func (v Value) IsExact() bool { return v.kind == KindNum && v.exact }

// Rational returns the exact Rational backing v and true, or the zero value
// and false if v is not an exact numeric Value.
func (v Value) Rational() (rational.Rational, bool) {
	if v.kind == KindNum && v.exact {
		return v.r, true
	}
	return rational.Zero, false
}

// Float returns v's numeric value as a float64, converting from Rational
// when v is exact. Ok is false for non-numeric values.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNum {
		return 0, false
	}
	return v.f, true
}

// String_ returns v's string payload, or "" and false if v is not a Str.
func (v Value) String_() (string, bool) {
	if v.kind != KindStr {
		return "", false
	}
	return v.s, true
}

// Items returns v's sequence payload, or nil and false if v is not a Seq.
func (v Value) Items() ([]Value, bool) {
	if v.kind != KindSeq {
		return nil, false
	}
	return v.seq, true
}

// Truthy implements the "value != 0" truthiness the spec's eqt/net/and/or
// operators rely on. Null and the empty string are falsy; a non-empty
// sequence is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindNum:
		return v.f != 0
	case KindStr:
		return v.s != ""
	case KindSeq:
		return len(v.seq) > 0
	default:
		return false
	}
}

// String renders v for debugging.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindNum:
		if v.exact {
			return v.r.String()
		}
		return fmt.Sprintf("%g", v.f)
	case KindStr:
		return v.s
	case KindSeq:
		return fmt.Sprintf("%v", v.seq)
	default:
		return "?"
	}
}

// bothExact reports whether a and b are both exact numeric values, the
// precondition for doing the operation in Rational instead of float64.
func bothExact(a, b Value) bool {
	return a.kind == KindNum && a.exact && b.kind == KindNum && b.exact
}

func numOrNull(a, b Value, rf func(a, b rational.Rational) (rational.Rational, bool), ff func(a, b float64) float64) Value {
	if a.kind != KindNum || b.kind != KindNum {
		return Null
	}
	if bothExact(a, b) {
		if res, ok := rf(a.r, b.r); ok {
			return NumExact(res)
		}
		return Null
	}
	return NumFloat(ff(a.f, b.f))
}

// Add returns a + b.
func Add(a, b Value) Value {
	return numOrNull(a, b,
		func(x, y rational.Rational) (rational.Rational, bool) { return x.Add(y), true },
		func(x, y float64) float64 { return x + y })
}

// Sub returns a - b.
func Sub(a, b Value) Value {
	return numOrNull(a, b,
		func(x, y rational.Rational) (rational.Rational, bool) { return x.Sub(y), true },
		func(x, y float64) float64 { return x - y })
}

// Mul returns a * b.
func Mul(a, b Value) Value {
	return numOrNull(a, b,
		func(x, y rational.Rational) (rational.Rational, bool) { return x.Mul(y), true },
		func(x, y float64) float64 { return x * y })
}

// Div returns a / b. Division by zero yields Null per spec §4.6.
func Div(a, b Value) Value {
	if a.kind != KindNum || b.kind != KindNum {
		return Null
	}
	if bothExact(a, b) {
		if b.r.IsZero() {
			return Null
		}
		return NumExact(a.r.Div(b.r))
	}
	if b.f == 0 {
		return Null
	}
	return NumFloat(a.f / b.f)
}

// Mod returns a % b. Modulo by zero yields Null.
func Mod(a, b Value) Value {
	if a.kind != KindNum || b.kind != KindNum {
		return Null
	}
	if bothExact(a, b) {
		if b.r.IsZero() {
			return Null
		}
		return NumExact(a.r.Mod(b.r))
	}
	if b.f == 0 {
		return Null
	}
	return NumFloat(math.Mod(a.f, b.f))
}

// Pow returns a ** b, always computed in float64 since exponentiation
// rarely preserves exactness.
func Pow(a, b Value) Value {
	af, aok := a.Float()
	bf, bok := b.Float()
	if !aok || !bok {
		return Null
	}
	return NumFloat(math.Pow(af, bf))
}

// Log2 returns log base 2 of a.
func Log2(a Value) Value {
	af, ok := a.Float()
	if !ok {
		return Null
	}
	return NumFloat(math.Log2(af))
}

// Round, Floor, Ceil round a to the nearest/lesser/greater integer, staying
// exact when a is an exact Rational.
func Round(a Value) Value {
	if a.kind != KindNum {
		return Null
	}
	if a.exact {
		return NumExact(rational.FromInt(a.r.Round()))
	}
	return NumFloat(math.Round(a.f))
}

func Floor(a Value) Value {
	if a.kind != KindNum {
		return Null
	}
	if a.exact {
		return NumExact(rational.FromInt(a.r.Floor()))
	}
	return NumFloat(math.Floor(a.f))
}

func Ceil(a Value) Value {
	if a.kind != KindNum {
		return Null
	}
	if a.exact {
		return NumExact(rational.FromInt(a.r.Ceil()))
	}
	return NumFloat(math.Ceil(a.f))
}

// toInt64 truncates a numeric Value for the bitwise operators, which always
// operate on truncated integers per spec §4.6.
func toInt64(a Value) (int64, bool) {
	f, ok := a.Float()
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func bitwiseOp(a, b Value, op func(x, y int64) int64) Value {
	x, ok1 := toInt64(a)
	y, ok2 := toInt64(b)
	if !ok1 || !ok2 {
		return Null
	}
	return NumExact(rational.FromInt(op(x, y)))
}

func Band(a, b Value) Value { return bitwiseOp(a, b, func(x, y int64) int64 { return x & y }) }
func Bor(a, b Value) Value  { return bitwiseOp(a, b, func(x, y int64) int64 { return x | y }) }
func Bxor(a, b Value) Value { return bitwiseOp(a, b, func(x, y int64) int64 { return x ^ y }) }
func Shl(a, b Value) Value  { return bitwiseOp(a, b, func(x, y int64) int64 { return x << uint(y) }) }
func Shr(a, b Value) Value  { return bitwiseOp(a, b, func(x, y int64) int64 { return x >> uint(y) }) }

func boolValue(b bool) Value {
	if b {
		return NumFloat(1.0)
	}
	return NumFloat(0.0)
}

// Lt, Gt, Le, Ge, Eq, Ne compare a and b numerically (or, for Eq/Ne, also by
// matching string/kind), returning exactly 0.0 or 1.0 per spec §4.6.
func Lt(a, b Value) Value {
	af, aok := a.Float()
	bf, bok := b.Float()
	if !aok || !bok {
		return Null
	}
	return boolValue(af < bf)
}

func Gt(a, b Value) Value {
	af, aok := a.Float()
	bf, bok := b.Float()
	if !aok || !bok {
		return Null
	}
	return boolValue(af > bf)
}

func Le(a, b Value) Value {
	af, aok := a.Float()
	bf, bok := b.Float()
	if !aok || !bok {
		return Null
	}
	return boolValue(af <= bf)
}

func Ge(a, b Value) Value {
	af, aok := a.Float()
	bf, bok := b.Float()
	if !aok || !bok {
		return Null
	}
	return boolValue(af >= bf)
}

// rawEqual compares two values for structural equality, independent of
// truthiness, used by Eq/Ne.
func rawEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindNum:
		return a.f == b.f
	case KindStr:
		return a.s == b.s
	case KindSeq:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !rawEqual(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func Eq(a, b Value) Value { return boolValue(rawEqual(a, b)) }
func Ne(a, b Value) Value { return boolValue(!rawEqual(a, b)) }

// Eqt and Net compare truthiness rather than raw value, per spec §3/§4.6.
func Eqt(a, b Value) Value { return boolValue(a.Truthy() == b.Truthy()) }
func Net(a, b Value) Value { return boolValue(a.Truthy() != b.Truthy()) }

// And returns right when left is truthy, else 0, matching the short-circuit
// semantics of spec §3 (note this is a value-level operator, not Go &&;
// both operands must already be evaluated by the caller).
func And(left, right Value) Value {
	if left.Truthy() {
		return right
	}
	return NumFloat(0.0)
}

// Or returns left when truthy, else right.
func Or(left, right Value) Value {
	if left.Truthy() {
		return left
	}
	return right
}
