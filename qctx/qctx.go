// Package qctx implements QueryContext: the immutable, keyed scope that
// carries the random seed, range min/max/granularity and any other
// combinator-defined slot through a query without ever mutating a parent's
// view of it. It generalizes the teacher's executor.Context/BaseContext
// instrumentation-hook interface (datalog/executor/context.go) from a
// mutable side-effecting interface into a pure immutable value, since the
// spec requires that "a child query never mutates its parent's context".
package qctx

import "github.com/patternengine/strudelcore/rational"

// Standard slot keys.
const (
	RandomSeedKey  = "randomSeed"
	MinKey         = "min"
	MaxKey         = "max"
	GranularityKey = "granularity"
)

// Context is an immutable map of keyed slots. The zero value is not usable;
// construct one with New.
type Context struct {
	slots map[string]any
}

// New returns a Context with the spec's defaults: no seed, min 0, max 1,
// granularity 1.
func New() Context {
	return Context{slots: map[string]any{
		MinKey:         0.0,
		MaxKey:         1.0,
		GranularityKey: rational.One,
	}}
}

// Option mutates a builder copy of a Context; see With.
type Option func(map[string]any)

// Set returns an Option that unconditionally sets key to value.
func Set(key string, value any) Option {
	return func(m map[string]any) { m[key] = value }
}

// SetIfAbsent returns an Option that sets key to value only if key is not
// already present, so a value set further out in the expression is kept.
// The range lifts in pat use WithRange, which overwrites, not this.
func SetIfAbsent(key string, value any) Option {
	return func(m map[string]any) {
		if _, ok := m[key]; !ok {
			m[key] = value
		}
	}
}

// Remove returns an Option that deletes key.
func Remove(key string) Option {
	return func(m map[string]any) { delete(m, key) }
}

// With returns a new Context with the given options applied to a fresh copy
// of the slot map; ctx itself, and any Context derived from it elsewhere, is
// left untouched.
func (ctx Context) With(opts ...Option) Context {
	next := make(map[string]any, len(ctx.slots)+len(opts))
	for k, v := range ctx.slots {
		next[k] = v
	}
	for _, opt := range opts {
		opt(next)
	}
	return Context{slots: next}
}

// GetOrNil returns the raw value stored under key, or nil if absent.
func (ctx Context) GetOrNil(key string) any {
	return ctx.slots[key]
}

// RandomSeed returns the seed and true if one has been set.
func (ctx Context) RandomSeed() (int64, bool) {
	v, ok := ctx.slots[RandomSeedKey]
	if !ok {
		return 0, false
	}
	seed, ok := v.(int64)
	return seed, ok
}

// WithSeed returns a Context with the random seed set to seed.
func (ctx Context) WithSeed(seed int64) Context {
	return ctx.With(Set(RandomSeedKey, seed))
}

// Min returns the min slot, defaulting to 0.
func (ctx Context) Min() float64 {
	if v, ok := ctx.slots[MinKey].(float64); ok {
		return v
	}
	return 0
}

// Max returns the max slot, defaulting to 1.
func (ctx Context) Max() float64 {
	if v, ok := ctx.slots[MaxKey].(float64); ok {
		return v
	}
	return 1
}

// Granularity returns the granularity slot, defaulting to 1.
func (ctx Context) Granularity() rational.Rational {
	if v, ok := ctx.slots[GranularityKey].(rational.Rational); ok {
		return v
	}
	return rational.One
}

// WithRange returns a Context with min/max set to lo/hi, per spec §4.10's
// range(lo, hi).
func (ctx Context) WithRange(lo, hi float64) Context {
	return ctx.With(Set(MinKey, lo), Set(MaxKey, hi))
}

// Update applies fn to a copy of ctx's option builder and returns the
// result; it exists so call sites that build up several options
// conditionally can do so without importing this package's internals.
func (ctx Context) Update(fn func(set func(key string, value any))) Context {
	next := make(map[string]any, len(ctx.slots))
	for k, v := range ctx.slots {
		next[k] = v
	}
	fn(func(key string, value any) { next[key] = value })
	return Context{slots: next}
}
