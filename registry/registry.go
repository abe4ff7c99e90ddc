// Package registry implements the DSL name lookup table of spec §6.2: a
// process-global mapping from names to producers/methods that a host
// language binds mini-notation and function-call syntax against. Grounded
// on the teacher's query.FunctionRegistry (datalog/query/function_registry.go)
// — a name-keyed table validated at construction time rather than at every
// call site — generalized from a validation-only table to one that also
// carries the callable itself, and from a bare map to an order-preserving
// one so diagnostics can report registration order.
package registry

import (
	"fmt"

	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/pat"
)

// Arg is one call-site argument: an arbitrary host value plus the source
// position it came from, so a parser can report back accurate diagnostics
// for a bad argument (spec §6.2).
type Arg struct {
	Value    any
	CallSite *event.SourceLocation
}

// Producer builds a Pattern from scratch (a DSL function with no
// receiver), e.g. `sine()`, `euclid(3,8)`.
type Producer func(args []Arg, callSite event.SourceLocation) pat.Pattern

// Method builds a Pattern from an existing receiver Pattern plus
// arguments, e.g. `p.fast(2)`, `p.degradeBy(0.3)`.
type Method func(receiver pat.Pattern, args []Arg, callSite event.SourceLocation) pat.Pattern

type entry struct {
	name    string
	fn      Producer
	method  Method
	isMethod bool
}

// Registry is an ordered name -> Producer/Method table: a slice of entries
// (preserving registration order for diagnostics, e.g. "did you mean one
// of: a, b, c") plus a map index for O(1) lookup, exactly the shape of the
// teacher's FunctionRegistry generalized to keep insertion order.
type Registry struct {
	entries []entry
	index   map[string]int
	aliases map[string]string
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{index: make(map[string]int), aliases: make(map[string]string)}
}

// RegisterProducer adds a producer under name. A later call with the same
// name overwrites the earlier one in place (order is preserved from first
// registration).
func (r *Registry) RegisterProducer(name string, fn Producer) {
	r.upsert(entry{name: name, fn: fn})
}

// RegisterMethod adds a method under name.
func (r *Registry) RegisterMethod(name string, fn Method) {
	r.upsert(entry{name: name, method: fn, isMethod: true})
}

func (r *Registry) upsert(e entry) {
	if i, ok := r.index[e.name]; ok {
		r.entries[i] = e
		return
	}
	r.index[e.name] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Alias makes `from` resolve to whatever `to` resolves to, implementing
// spec §9's "canonical name plus flat alias table" design note (e.g.
// `lp` -> `lpf`, `cutoff` -> `lpf`). Aliases are resolved at lookup time,
// one hop, so re-registering `to` later is reflected without re-registering
// every alias that points at it. If `to` is itself an alias, it is not
// followed further.
func (r *Registry) Alias(from, to string) {
	r.aliases[from] = to
}

func (r *Registry) resolve(name string) string {
	if canonical, ok := r.aliases[name]; ok {
		return canonical
	}
	return name
}

// LookupProducer resolves name (through one alias hop) to a Producer.
func (r *Registry) LookupProducer(name string) (Producer, bool) {
	e, ok := r.lookup(name)
	if !ok || e.isMethod {
		return nil, false
	}
	return e.fn, true
}

// LookupMethod resolves name to a Method.
func (r *Registry) LookupMethod(name string) (Method, bool) {
	e, ok := r.lookup(name)
	if !ok || !e.isMethod {
		return nil, false
	}
	return e.method, true
}

func (r *Registry) lookup(name string) (entry, bool) {
	i, ok := r.index[r.resolve(name)]
	if !ok {
		return entry{}, false
	}
	return r.entries[i], true
}

// Names returns every registered name, in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Describe renders a human-readable "unknown name" error listing every
// registered name, the same "supported functions: ..." shape the teacher's
// FunctionRegistry.Validate produces.
func (r *Registry) Describe(name string) error {
	if _, ok := r.lookup(name); ok {
		return nil
	}
	return fmt.Errorf("unbound name %q - registered: %v", name, r.Names())
}
