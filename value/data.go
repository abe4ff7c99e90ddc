package value

import (
	"fmt"
	"strings"
)

// Data is VoiceData: a mapping from parameter names to Values plus a
// distinguished Value slot used by arithmetic and control combinators.
// Fields is a Go map, so the order of its entries is not preserved.
// The concrete synth-parameter names (gain, pan, cutoff, ...) are never
// referenced by the core; Fields is a plain string-keyed map so any host
// vocabulary can ride on top (spec §1.c).
type Data struct {
	Value  Value
	Fields map[string]Value
}

// Empty is the zero VoiceData: Value is Null, Fields is empty.
func Empty() Data {
	return Data{Value: Null, Fields: map[string]Value{}}
}

// FromValue builds a Data whose Value slot is v and which has no other
// fields, the shape mini-notation leaves are parsed into before a
// leaf-modifier assigns the text to a named field.
func FromValue(v Value) Data {
	return Data{Value: v, Fields: map[string]Value{}}
}

// CopyWith returns a copy of d with field set to newValue. When field is
// "value" the distinguished Value slot is updated instead of Fields; this
// function is total, per spec §3 ("CopyWith... exists and is total").
func (d Data) CopyWith(field string, newValue Value) Data {
	out := Data{Value: d.Value, Fields: make(map[string]Value, len(d.Fields))}
	for k, v := range d.Fields {
		out.Fields[k] = v
	}
	if field == "value" {
		out.Value = newValue
	} else {
		out.Fields[field] = newValue
	}
	return out
}

// Get looks up a field by name; "value" is a synonym for the Value slot.
func (d Data) Get(field string) (Value, bool) {
	if field == "value" {
		return d.Value, true
	}
	v, ok := d.Fields[field]
	return v, ok
}

// ParseADSR splits a compound "a:d:s:r" string into four numeric Values,
// used by fields like "adsr" that parse colon-delimited sub-parameters per
// spec §3. Missing or non-numeric components become Null rather than
// failing the whole parse.
func ParseADSR(s string) (attack, decay, sustain, release Value) {
	parts := strings.Split(s, ":")
	get := func(i int) Value {
		if i >= len(parts) {
			return Null
		}
		f, err := parseFloatLenient(parts[i])
		if err != nil {
			return Null
		}
		return NumFloat(f)
	}
	return get(0), get(1), get(2), get(3)
}

func parseFloatLenient(s string) (float64, error) {
	s = strings.TrimSpace(s)
	var f float64
	_, err := fmt.Sscanf(s, "%g", &f)
	return f, err
}
