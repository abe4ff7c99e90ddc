// Package notation implements the mini-notation string grammar of spec
// §4.11: a small lexer + recursive-descent parser producing pat.Pattern
// trees, grounded on the teacher's datalog/edn lexer+parser pair and its
// parser.parseQueryVector keyword-dispatch loop. Parse errors never panic;
// Parse recovers by substituting pat.Silence() for the offending
// subexpression and recording a diagnostics.Diagnostic.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/patternengine/strudelcore/diagnostics"
	"github.com/patternengine/strudelcore/event"
	"github.com/patternengine/strudelcore/pat"
	"github.com/patternengine/strudelcore/value"
)

// ParseError is a malformed mini-notation condition: a location plus a
// message, mirroring the teacher's edn lexer/parser error shape (plain
// fmt.Errorf strings with "at line:col" suffixes) as a proper type so
// notation.Parse can recover from it instead of propagating it.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Msg, e.Line, e.Col)
}

// LeafModifier writes a leaf's raw text into a value.Data — typically by
// assigning it to a named field ("note", "value", "gain", ...). The parser
// never interprets leaf text itself; that's entirely the caller's domain
// vocabulary (spec §4.11).
type LeafModifier func(text string) value.Data

// Parse parses src as a mini-notation string and returns the resulting
// Pattern. Any parse errors encountered are recovered from (the offending
// subexpression becomes pat.Silence()) and returned alongside as
// diagnostics, never as a panic or a returned error (spec §7).
func Parse(src string, leaf LeafModifier) (pat.Pattern, []diagnostics.Diagnostic) {
	p := newParser(src, leaf)
	result := p.parseTop()
	return result, p.diags
}

type parser struct {
	lex   *Lexer
	leaf  LeafModifier
	diags []diagnostics.Diagnostic
}

func newParser(src string, leaf LeafModifier) *parser {
	lex := NewLexer(src)
	p := &parser{lex: lex, leaf: leaf}
	if err := lex.Lex(); err != nil {
		p.recordParseError(err)
	}
	return p
}

func (p *parser) recordParseError(err error) {
	var msg string
	line, col := 0, 0
	if pe, ok := err.(*ParseError); ok {
		msg, line, col = pe.Msg, pe.Line, pe.Col
	} else {
		msg = err.Error()
	}
	p.diags = append(p.diags, diagnostics.Diagnostic{
		Kind: diagnostics.ParseError,
		Msg:  msg,
		Loc:  &event.SourceLocation{Line: line, Col: col},
	})
}

func (p *parser) peek() Token   { return p.lex.PeekToken() }
func (p *parser) next() Token   { return p.lex.NextToken() }
func (p *parser) atEOF() bool   { return p.peek().Kind == TokEOF }

// parseTop parses a full mini-notation string: a top-level stack (comma
// separated layers), consuming to EOF. Anything left unconsumed after a
// recoverable error is simply dropped — the diagnostic already recorded
// explains why.
func (p *parser) parseTop() pat.Pattern {
	result := p.parseStack(isTopTerminator)
	if !p.atEOF() {
		tok := p.peek()
		p.diags = append(p.diags, diagnostics.Diagnostic{
			Kind: diagnostics.ParseError,
			Msg:  fmt.Sprintf("unexpected trailing token %v", tok),
			Loc:  &event.SourceLocation{Line: tok.Line, Col: tok.Col},
		})
	}
	return result
}

func isTopTerminator(k TokenKind) bool { return k == TokEOF }

// parseStack parses comma-separated sequences, the `a,b,c` stack form
// (spec §4.11), stopping at any token satisfying terminator.
func (p *parser) parseStack(terminator func(TokenKind) bool) pat.Pattern {
	layers := []pat.Pattern{p.parseSequence(terminator)}
	for p.peek().Kind == TokComma {
		p.next()
		layers = append(layers, p.parseSequence(terminator))
	}
	if len(layers) == 1 {
		return layers[0]
	}
	return pat.Stack(layers...)
}

// parseSequence parses space-separated steps until a terminator or a
// top-level comma, handling `_` (hold, widens the previous step's weight)
// and bare `!` (replicate the previous step) inline since both refer back
// to the steps slice being built rather than producing their own step.
func (p *parser) parseSequence(terminator func(TokenKind) bool) pat.Pattern {
	var steps []pat.Pattern
	for {
		tok := p.peek()
		if tok.Kind == TokEOF || tok.Kind == TokComma || terminator(tok.Kind) {
			break
		}
		switch tok.Kind {
		case TokHold:
			p.next()
			if len(steps) == 0 {
				p.errorf(tok, "'_' with no preceding step")
				steps = append(steps, pat.Silence())
				continue
			}
			last := steps[len(steps)-1]
			steps[len(steps)-1] = pat.WithWeight(last, last.Weight()+1)
		case TokBang:
			p.next()
			count := 1
			if p.peek().Kind == TokNumber {
				count = p.parseIntLiteral(p.next())
			}
			if len(steps) == 0 {
				p.errorf(tok, "'!' with no preceding step")
				steps = append(steps, pat.Silence())
				continue
			}
			last := steps[len(steps)-1]
			for i := 0; i < count; i++ {
				steps = append(steps, last)
			}
		default:
			steps = append(steps, p.parseStep())
		}
	}
	return pat.Sequence(steps...)
}

// parseStep parses one primary plus any postfix modifiers (*n, /n,
// Euclidean (p,s[,r]), and `|` alternation), per spec §4.11.
func (p *parser) parseStep() pat.Pattern {
	prim := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case TokStar:
			p.next()
			arg := p.parseScalarArg()
			prim = pat.Fast(prim, arg)
		case TokSlash:
			p.next()
			arg := p.parseScalarArg()
			prim = pat.Slow(prim, arg)
		case TokLParen:
			prim = p.parseEuclid(prim)
		case TokPipe:
			prim = p.parseChooseCycles(prim)
		default:
			return prim
		}
	}
}

// parseChooseCycles parses the `a | b | c` alternation, one whole
// alternative chosen per cycle (spec §4.11).
func (p *parser) parseChooseCycles(first pat.Pattern) pat.Pattern {
	alts := []pat.Pattern{first}
	for p.peek().Kind == TokPipe {
		p.next()
		alts = append(alts, p.parsePrimaryWithFactors())
	}
	return pat.ChooseCyclesPattern(alts...)
}

// parsePrimaryWithFactors parses a primary plus *//() modifiers but not a
// further `|` chain, so `a | b*2 | c` groups each alternative correctly.
func (p *parser) parsePrimaryWithFactors() pat.Pattern {
	prim := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case TokStar:
			p.next()
			prim = pat.Fast(prim, p.parseScalarArg())
		case TokSlash:
			p.next()
			prim = pat.Slow(prim, p.parseScalarArg())
		case TokLParen:
			prim = p.parseEuclid(prim)
		default:
			return prim
		}
	}
}

// parseEuclid parses the `(pulses,steps[,rotation])` suffix and wraps
// content in a pat.Euclid pattern.
func (p *parser) parseEuclid(content pat.Pattern) pat.Pattern {
	open := p.next() // consume (
	pulses := p.parseIntArg()
	if p.peek().Kind != TokComma {
		p.errorf(p.peek(), "expected ',' in euclidean rhythm")
		p.recoverToRParen()
		return content
	}
	p.next()
	steps := p.parseIntArg()
	rotation := 0
	if p.peek().Kind == TokComma {
		p.next()
		rotation = p.parseIntArg()
	}
	if p.peek().Kind != TokRParen {
		p.errorf(p.peek(), "expected ')' to close euclidean rhythm")
		p.recoverToRParen()
		return content
	}
	p.next()
	if steps <= 0 {
		p.errorf(open, "euclidean step count must be positive")
		return pat.Silence()
	}
	return pat.Euclid(content, pulses, steps, rotation)
}

func (p *parser) recoverToRParen() {
	for {
		tok := p.peek()
		if tok.Kind == TokRParen {
			p.next()
			return
		}
		if tok.Kind == TokEOF {
			return
		}
		p.next()
	}
}

func (p *parser) parseIntArg() int {
	tok := p.peek()
	if tok.Kind != TokNumber {
		p.errorf(tok, "expected a number")
		return 0
	}
	p.next()
	return p.parseIntLiteral(tok)
}

func (p *parser) parseIntLiteral(tok Token) int {
	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		p.errorf(tok, fmt.Sprintf("invalid integer %q", tok.Text))
		return 0
	}
	return n
}

// parseScalarArg parses a *//() rate argument: either a bare number or a
// bracketed group, which is wrapped as a pattern-valued Scalar so a
// modulated rate (e.g. `a*<2 3>`) works the same way liftTempo handles any
// pattern-valued k (spec §4.4/§4.11).
func (p *parser) parseScalarArg() pat.Scalar {
	tok := p.peek()
	if tok.Kind == TokNumber {
		p.next()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.errorf(tok, fmt.Sprintf("invalid number %q", tok.Text))
			return pat.Num(1)
		}
		return pat.Num(f)
	}
	return pat.FromPattern(p.parsePrimary())
}

// parsePrimary parses the innermost grammar productions: a word/number
// leaf (with optional colon-form suffix), `~` rest, `[...]` grouped
// sub-sequence, or `<...>` slowcat.
func (p *parser) parsePrimary() pat.Pattern {
	tok := p.peek()
	switch tok.Kind {
	case TokRest:
		p.next()
		return pat.Silence()
	case TokWord, TokNumber:
		return p.parseLeaf()
	case TokLBracket:
		p.next()
		inner := p.parseStack(func(k TokenKind) bool { return k == TokRBracket })
		p.expect(TokRBracket, "expected ']' to close group")
		return inner
	case TokLAngle:
		p.next()
		children := p.parseAngleChildren()
		p.expect(TokRAngle, "expected '>' to close slowcat")
		return pat.Slowcat(children...)
	default:
		p.errorf(tok, fmt.Sprintf("unexpected token %v", tok))
		if tok.Kind != TokEOF {
			p.next()
		}
		return pat.Silence()
	}
}

// parseAngleChildren parses the space-separated children of `<a b c>`: each
// child is a full step (so `<a*2 b>` works), but there is no sequencing
// weight/hold/replicate inside the angle brackets — each entry is simply
// one cycle's worth of content.
func (p *parser) parseAngleChildren() []pat.Pattern {
	var children []pat.Pattern
	for {
		tok := p.peek()
		if tok.Kind == TokRAngle || tok.Kind == TokEOF {
			break
		}
		children = append(children, p.parseStep())
	}
	if len(children) == 0 {
		return []pat.Pattern{pat.Silence()}
	}
	return children
}

// parseLeaf parses a word or number leaf, folding any `:`-separated
// compound suffix (e.g. "bd:3") into the joined leaf text before handing
// it to the caller-supplied LeafModifier — the colon-form of spec §4.11.
func (p *parser) parseLeaf() pat.Pattern {
	first := p.next()
	parts := []string{first.Text}
	for p.peek().Kind == TokColon {
		p.next()
		part := p.peek()
		if part.Kind != TokWord && part.Kind != TokNumber {
			p.errorf(part, "expected a value after ':'")
			break
		}
		p.next()
		parts = append(parts, part.Text)
	}
	text := strings.Join(parts, ":")
	loc := event.SourceLocation{Line: first.Line, Col: first.Col}
	return pat.Atomic(p.leaf(text), loc)
}

func (p *parser) expect(kind TokenKind, msg string) {
	if p.peek().Kind != kind {
		p.errorf(p.peek(), msg)
		return
	}
	p.next()
}

func (p *parser) errorf(tok Token, msg string) {
	p.diags = append(p.diags, diagnostics.Diagnostic{
		Kind: diagnostics.ParseError,
		Msg:  msg,
		Loc:  &event.SourceLocation{Line: tok.Line, Col: tok.Col},
	})
}
