// Package expr evaluates the restricted arithmetic expressions accepted
// by numeric input fields: digits, the operators + - * / ^, parentheses,
// and the tokens sqrt, sin, cos, tan, pi, e.
//
// The evaluator is an editing convenience, not part of the geometric
// core: a failed parse or a non-finite result is reported as an error so
// the caller can keep the prior valid value. Nothing invalid ever
// reaches the scene model.
package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrInvalid is returned for input that does not match the grammar.
	ErrInvalid = errors.New("invalid expression")

	// ErrNotFinite is returned when evaluation produces NaN or an
	// infinity (division by zero, sqrt of a negative, overflow).
	ErrNotFinite = errors.New("expression is not finite")
)

// Eval parses and evaluates the expression, returning a finite number or
// an error. The grammar, in precedence order (loosest first):
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = "-" unary | power
//	power  = atom [ "^" unary ]
//	atom   = number | "pi" | "e" | func "(" expr ")" | "(" expr ")"
//	func   = "sqrt" | "sin" | "cos" | "tan"
func Eval(input string) (float64, error) {
	p := &parser{input: input}
	p.skipSpace()
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("%w: unexpected %q at position %d", ErrInvalid, p.rest(), p.pos)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) rest() string {
	r := p.input[p.pos:]
	if len(r) > 8 {
		r = r[:8]
	}
	return r
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// accept consumes ch if it is next, skipping leading whitespace.
func (p *parser) accept(ch byte) bool {
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == ch {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.accept('+'):
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			v += r
		case p.accept('-'):
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.accept('*'):
			r, err := p.unary()
			if err != nil {
				return 0, err
			}
			v *= r
		case p.accept('/'):
			r, err := p.unary()
			if err != nil {
				return 0, err
			}
			v /= r
		default:
			return v, nil
		}
	}
}

func (p *parser) unary() (float64, error) {
	if p.accept('-') {
		v, err := p.unary()
		return -v, err
	}
	return p.power()
}

func (p *parser) power() (float64, error) {
	base, err := p.atom()
	if err != nil {
		return 0, err
	}
	if p.accept('^') {
		exp, err := p.unary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) atom() (float64, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrInvalid)
	}

	ch := p.input[p.pos]
	switch {
	case ch == '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if !p.accept(')') {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrInvalid)
		}
		return v, nil

	case ch >= '0' && ch <= '9' || ch == '.':
		return p.number()

	case unicode.IsLetter(rune(ch)):
		return p.word()

	default:
		return 0, fmt.Errorf("%w: unexpected %q at position %d", ErrInvalid, p.rest(), p.pos)
	}
}

func (p *parser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrInvalid, p.input[start:p.pos])
	}
	return v, nil
}

func (p *parser) word() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && unicode.IsLetter(rune(p.input[p.pos])) {
		p.pos++
	}
	name := strings.ToLower(p.input[start:p.pos])

	switch name {
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}

	var fn func(float64) float64
	switch name {
	case "sqrt":
		fn = math.Sqrt
	case "sin":
		fn = math.Sin
	case "cos":
		fn = math.Cos
	case "tan":
		fn = math.Tan
	default:
		return 0, fmt.Errorf("%w: unknown token %q", ErrInvalid, name)
	}

	if !p.accept('(') {
		return 0, fmt.Errorf("%w: %s requires parentheses", ErrInvalid, name)
	}
	arg, err := p.expr()
	if err != nil {
		return 0, err
	}
	if !p.accept(')') {
		return 0, fmt.Errorf("%w: missing closing parenthesis", ErrInvalid)
	}
	return fn(arg), nil
}
