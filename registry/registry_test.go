package registry

import (
	"testing"

	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/pat"
	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLookupProducer(t *testing.T) {
	r := New()
	r.RegisterProducer("sine", func(args []Arg, callSite event.SourceLocation) pat.Pattern {
		return pat.Sine()
	})
	fn, ok := r.LookupProducer("sine")
	assert.True(t, ok)
	assert.NotNil(t, fn)
}

func TestRegisterAndLookupMethod(t *testing.T) {
	r := New()
	r.RegisterMethod("fast", func(receiver pat.Pattern, args []Arg, callSite event.SourceLocation) pat.Pattern {
		return pat.Fast(receiver, pat.Num(2))
	})
	fn, ok := r.LookupMethod("fast")
	assert.True(t, ok)
	assert.NotNil(t, fn)
}

func TestAliasResolvesOneHop(t *testing.T) {
	r := New()
	r.RegisterProducer("lpf", func(args []Arg, callSite event.SourceLocation) pat.Pattern {
		return pat.Silence()
	})
	r.Alias("lp", "lpf")
	r.Alias("cutoff", "lpf")

	_, ok := r.LookupProducer("lp")
	assert.True(t, ok)
	_, ok = r.LookupProducer("cutoff")
	assert.True(t, ok)
}

func TestDescribeReportsUnboundName(t *testing.T) {
	r := New()
	r.RegisterProducer("sine", func(args []Arg, callSite event.SourceLocation) pat.Pattern {
		return pat.Sine()
	})
	assert.NoError(t, r.Describe("sine"))
	assert.Error(t, r.Describe("nope"))
}

func TestNamesPreservesRegistrationOrder(t *testing.T) {
	r := New()
	r.RegisterProducer("c", nil)
	r.RegisterProducer("a", nil)
	r.RegisterProducer("b", nil)
	assert.Equal(t, []string{"c", "a", "b"}, r.Names())
}
