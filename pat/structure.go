package pat

import (
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/qctx"
	"github.com/patternengine/strudelcore/rational"
	"github.com/patternengine/strudelcore/value"
)

// Structure imposes structurePattern's events onto content: every truthy
// event of structurePattern samples content over that event's part,
// discarding content's own timing (spec §4.5). Falsy events are dropped.
func Structure(structurePattern Pattern, content Pattern) Pattern {
	return build("structure", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		structEvents := structurePattern.QueryArc(from, to, ctx)
		var out []event.Event
		for _, se := range structEvents {
			if !se.Data.Value.Truthy() {
				continue
			}
			sampled := content.QueryArc(se.Part.Begin, se.Part.End, ctx)
			if len(sampled) == 0 {
				continue
			}
			out = append(out, event.New(se.Whole, se.Part, sampled[0].Data, se.SourceLocations...))
		}
		return out
	})
}

// StructAll is Structure without the truthiness filter: every event of
// structurePattern (not just truthy ones) samples content.
func StructAll(structurePattern Pattern, content Pattern) Pattern {
	return build("structAll", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		structEvents := structurePattern.QueryArc(from, to, ctx)
		var out []event.Event
		for _, se := range structEvents {
			sampled := content.QueryArc(se.Part.Begin, se.Part.End, ctx)
			if len(sampled) == 0 {
				continue
			}
			out = append(out, event.New(se.Whole, se.Part, sampled[0].Data, se.SourceLocations...))
		}
		return out
	})
}

// Mask keeps only content's events that overlap a truthy event of
// maskPattern, clipping content's part to the overlap (spec §4.5) — the
// inverse emphasis of Structure: mask keeps content's own timing, Structure
// keeps the structure pattern's timing.
func Mask(maskPattern Pattern, content Pattern) Pattern {
	return build("mask", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		maskEvents := maskPattern.QueryArc(from, to, ctx)
		contentEvents := content.QueryArc(from, to, ctx)
		var out []event.Event
		for _, ce := range contentEvents {
			for _, me := range maskEvents {
				if !me.Data.Value.Truthy() {
					continue
				}
				part, ok := ce.Part.Intersect(me.Part)
				if !ok || part.IsEmpty() {
					continue
				}
				clipped := ce
				clipped.Part = part
				out = append(out, clipped)
				break
			}
		}
		return out
	})
}

// MaskAll is Mask without the truthiness filter.
func MaskAll(maskPattern Pattern, content Pattern) Pattern {
	return build("maskAll", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		maskEvents := maskPattern.QueryArc(from, to, ctx)
		contentEvents := content.QueryArc(from, to, ctx)
		var out []event.Event
		for _, ce := range contentEvents {
			for _, me := range maskEvents {
				part, ok := ce.Part.Intersect(me.Part)
				if !ok || part.IsEmpty() {
					continue
				}
				clipped := ce
				clipped.Part = part
				out = append(out, clipped)
				break
			}
		}
		return out
	})
}

// Bypass is Mask with the mask pattern's truthiness logically negated:
// content's events survive where maskPattern is falsy, and are dropped
// where it's truthy (spec §4.5's "mask with logical negation" — the
// complement of Mask, not a plain on/off toggle).
func Bypass(maskPattern Pattern, content Pattern) Pattern {
	return Mask(Negate(maskPattern), content)
}

// Negate rewrites every event of p to hold the logical negation of its
// own truthiness, so a truthy onset becomes falsy and vice versa. This is
// the building block Bypass uses to invert a mask pattern.
func Negate(p Pattern) Pattern {
	return build("negate", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		events := p.QueryArc(from, to, ctx)
		out := make([]event.Event, len(events))
		for i, e := range events {
			negated := 0.0
			if !e.Data.Value.Truthy() {
				negated = 1.0
			}
			out[i] = e.WithData(value.FromValue(value.NumFloat(negated)))
		}
		return out
	})
}

// Control samples controlPattern over each content event's part and merges
// the sampled Data into content's own Data via combine, keeping content's
// timing (spec §4.5). A content event with no sampled control event is
// kept unchanged.
func Control(content Pattern, controlPattern Pattern, combine func(content, control value.Data) value.Data) Pattern {
	return build("control", func(from, to rational.Rational, ctx qctx.Context) []event.Event {
		contentEvents := content.QueryArc(from, to, ctx)
		out := make([]event.Event, 0, len(contentEvents))
		for _, ce := range contentEvents {
			sampled := controlPattern.QueryArc(ce.Part.Begin, ce.Part.End, ctx)
			if len(sampled) == 0 {
				out = append(out, ce)
				continue
			}
			out = append(out, ce.WithData(combine(ce.Data, sampled[0].Data)))
		}
		return out
	})
}
