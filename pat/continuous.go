package pat

import (
	"math"

	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/rng"
	"github.com/patternengine/strudelcore/timespan"
	"github.com/patternengine/strudelcore/value"
)

// continuousFrom builds a continuous pattern: every query produces exactly
// one event whose whole and part both equal the query window, with a value
// sampled from f at the window's start (spec §4.3: "signal(f(t)) —
// evaluated at t = a").
func continuousFrom(label string, f func(t rational.Rational, ctx qctx.Context) float64) Pattern {
	return build(label, func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		span := timespan.New(from, to)
		val := f(from, ctx)
		return []event.Event{event.New(span, span, value.FromValue(value.NumFloat(val)))}
	})
}

// Signal wraps an arbitrary time-to-float function as a continuous pattern.
func Signal(f func(t float64) float64) Pattern {
	return continuousFrom("signal", func(t rational.Rational, ctx qctx.Context) float64 {
		return f(t.ToFloat())
	})
}

// Steady is a constant-valued continuous signal.
func Steady(v float64) Pattern {
	return continuousFrom("steady", func(t rational.Rational, ctx qctx.Context) float64 { return v })
}

// TimeSignal yields the query window's own start time as a continuous
// signal, the "time" combinator of spec §4.3.
func TimeSignal() Pattern {
	return continuousFrom("time", func(t rational.Rational, ctx qctx.Context) float64 { return t.ToFloat() })
}

func frac(t float64) float64 {
	f := t - math.Floor(t)
	return f
}

// rescale maps a context-independent "natural" 0..1 value into ctx's
// configured min/max. Spec §4.10: "continuous patterns read min/max...
// from the query context to rescale their natural 0..1 output" — this is
// that rescale, applied by every naturally-unipolar generator so that
// Range (which just sets ctx's min/max and queries through) actually has
// something to take effect on.
func rescale(raw float64, ctx qctx.Context) float64 {
	return ctx.Min() + raw*(ctx.Max()-ctx.Min())
}

// continuousUnipolarFrom is continuousFrom for the "natural 0..1" family
// of oscillators and rand sources: f computes the raw 0..1 value
// independent of context, which is then rescaled per ctx's min/max.
func continuousUnipolarFrom(label string, f func(t rational.Rational, ctx qctx.Context) float64) Pattern {
	return continuousFrom(label, func(t rational.Rational, ctx qctx.Context) float64 {
		return rescale(f(t, ctx), ctx)
	})
}

// Sine, Cosine are continuous [0,1]-ranged oscillators, one cycle per unit
// time.
func Sine() Pattern {
	return continuousUnipolarFrom("sine", func(t rational.Rational, ctx qctx.Context) float64 {
		return (math.Sin(2*math.Pi*t.ToFloat()) + 1) / 2
	})
}

func Cosine() Pattern {
	return continuousUnipolarFrom("cosine", func(t rational.Rational, ctx qctx.Context) float64 {
		return (math.Cos(2*math.Pi*t.ToFloat()) + 1) / 2
	})
}

// Saw ramps 0 -> 1 across every cycle; Isaw is its mirror image, 1 -> 0.
func Saw() Pattern {
	return continuousUnipolarFrom("saw", func(t rational.Rational, ctx qctx.Context) float64 {
		return frac(t.ToFloat())
	})
}

func Isaw() Pattern {
	return continuousUnipolarFrom("isaw", func(t rational.Rational, ctx qctx.Context) float64 {
		return 1 - frac(t.ToFloat())
	})
}

// Tri rises 0 -> 1 over the first half of each cycle and falls 1 -> 0 over
// the second half; Itri is its mirror image.
func Tri() Pattern {
	return continuousUnipolarFrom("tri", func(t rational.Rational, ctx qctx.Context) float64 {
		f := frac(t.ToFloat())
		if f < 0.5 {
			return f * 2
		}
		return 2 - 2*f
	})
}

func Itri() Pattern {
	return continuousUnipolarFrom("itri", func(t rational.Rational, ctx qctx.Context) float64 {
		f := frac(t.ToFloat())
		if f < 0.5 {
			return 1 - f*2
		}
		return 1 - (2 - 2*f)
	})
}

// Square is 0 for the first half of each cycle, 1 for the second.
func Square() Pattern {
	return continuousUnipolarFrom("square", func(t rational.Rational, ctx qctx.Context) float64 {
		if frac(t.ToFloat()) < 0.5 {
			return 0
		}
		return 1
	})
}

// ToBipolar queries p under a context whose min/max are reset to the
// neutral unipolar default (0,1) — so p's own natural-0..1 rescaling
// isn't pre-empted by whatever range the caller's context already
// carries — then maps the raw result through 2x-1 into [-1,1]. This is
// the pattern-level combinator behind the oscillators' "2" variants;
// composed with Range it also gives Range2 (spec §4.10's closing
// sentence: toBipolar/fromBipolar mutate context so downstream range*
// keeps observing the original range).
func ToBipolar(p Pattern) Pattern {
	return build("toBipolar", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		events := p.QueryArc(from, to, ctx.WithRange(0, 1))
		out := make([]event.Event, len(events))
		for i, e := range events {
			f, ok := e.Data.Value.Float()
			if !ok {
				out[i] = e
				continue
			}
			out[i] = e.WithData(e.Data.CopyWith("value", value.NumFloat(toBipolar(f))))
		}
		return out
	})
}

// FromBipolar is ToBipolar's inverse: it queries p under a neutral (0,1)
// context (so a bipolar-natural child like Sine2 computes its own -1..1
// value correctly, unaffected by an enclosing range), maps the result
// through (x+1)/2 into [0,1], then rescales that into *this* combinator's
// own incoming ctx.Min()/Max() — which is what lets Range2 = Range ∘
// FromBipolar actually land the final value in the caller's [lo,hi].
func FromBipolar(p Pattern) Pattern {
	return build("fromBipolar", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		events := p.QueryArc(from, to, ctx.WithRange(0, 1))
		out := make([]event.Event, len(events))
		for i, e := range events {
			f, ok := e.Data.Value.Float()
			if !ok {
				out[i] = e
				continue
			}
			out[i] = e.WithData(e.Data.CopyWith("value", value.NumFloat(rescale(fromBipolar(f), ctx))))
		}
		return out
	})
}

func Sine2() Pattern   { return ToBipolar(Sine()) }
func Cosine2() Pattern { return ToBipolar(Cosine()) }
func Saw2() Pattern    { return ToBipolar(Saw()) }
func Isaw2() Pattern   { return ToBipolar(Isaw()) }
func Tri2() Pattern    { return ToBipolar(Tri()) }
func Itri2() Pattern   { return ToBipolar(Itri()) }
func Square2() Pattern { return ToBipolar(Square()) }

// seedOf reads ctx's random seed, defaulting to 0 when unset (spec §4.9).
func seedOf(ctx qctx.Context) int64 {
	seed, _ := ctx.RandomSeed()
	return seed
}

// Rand is a continuous stream of pseudo-random floats, naturally 0..1
// before ctx's min/max rescale, a pure function of ctx's seed and the
// quantised query time (spec §4.9).
func Rand() Pattern {
	return continuousUnipolarFrom("rand", func(t rational.Rational, ctx qctx.Context) float64 {
		return rng.New(seedOf(ctx), "rand", quantise(t, ctx)).Float64()
	})
}

// RandCycle holds one random value steady across an entire cycle, changing
// only when the cycle number changes.
func RandCycle() Pattern {
	return continuousUnipolarFrom("randCycle", func(t rational.Rational, ctx qctx.Context) float64 {
		cycle := rational.FromInt(t.Floor())
		return rng.New(seedOf(ctx), "randCycle", cycle).Float64()
	})
}

// Irand yields a random integer selector in [0,n) as a continuous signal.
func Irand(n int) Pattern {
	return continuousFrom("irand", func(t rational.Rational, ctx qctx.Context) float64 {
		return float64(rng.New(seedOf(ctx), "irand", quantise(t, ctx)).Int(n))
	})
}

// RandL is a continuous uniform float in [lo, hi).
func RandL(lo, hi float64) Pattern {
	return continuousFrom("randL", func(t rational.Rational, ctx qctx.Context) float64 {
		f := rng.New(seedOf(ctx), "randL", quantise(t, ctx)).Float64()
		return lo + f*(hi-lo)
	})
}

// Brand is a continuous boolean (0/1) signal true with probability p;
// BrandBy is an alias matching the spec's naming of the family.
func Brand(p float64) Pattern {
	return continuousFrom("brand", func(t rational.Rational, ctx qctx.Context) float64 {
		if rng.New(seedOf(ctx), "brand", quantise(t, ctx)).Bool(p) {
			return 1
		}
		return 0
	})
}

func BrandBy(p float64) Pattern { return Brand(p) }

// Perlin, Berlin sample the rng package's 1D noise functions at the query
// window's start, seeded from ctx (spec §4.9/§4.3).
func Perlin() Pattern {
	return continuousFrom("perlin", func(t rational.Rational, ctx qctx.Context) float64 {
		return rng.Perlin(seedOf(ctx), t.ToFloat())
	})
}

func Berlin() Pattern {
	return continuousFrom("berlin", func(t rational.Rational, ctx qctx.Context) float64 {
		return rng.Berlin(seedOf(ctx), t.ToFloat())
	})
}

// quantise rounds t down to a multiple of ctx's granularity, so a random
// signal sampled twice within the same granularity window is stable.
func quantise(t rational.Rational, ctx qctx.Context) rational.Rational {
	g := ctx.Granularity()
	if g.IsZero() {
		return t
	}
	steps := t.Div(g).Floor()
	return rational.FromInt(steps).Mul(g)
}
