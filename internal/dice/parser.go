package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Binding powers for the Pratt parser. Die terms bind tighter than a leading
// sign, so "-2d6" is the negation of "2d6".
const (
	bpNone   = 0
	bpSum    = 10
	bpPrefix = 20
	bpDie    = 30
)

// Parse turns dice notation into an Expression.
//
// Example: Parse("3d6+4") == Expression{Dice: []int{6, 6, 6}, Bonus: 4}.
// A negative term yields negative dice: Parse("-2d6") has Dice [-6 -6].
//
// Parsing is best-effort: whitespace and unrecognised characters are ignored
// and input without any die or bonus term yields the zero Expression.
// A die term counting more than 1<<20 dice is dropped. The only failure is a
// variable-sized die such as "4d(2d3)", reported as ErrInvalidDice.
func Parse(text string) (Expression, error) {
	s := strings.Join(strings.Fields(text), "")
	toks, err := tokenize(s)
	if err != nil {
		return Expression{}, err
	}
	p := &parser{raw: s, toks: toks}
	root, err := p.sequence(false)
	if err != nil {
		return Expression{}, err
	}
	return p.reduce(root)
}

// MustParse parses text and panics on error. Useful for package-level values.
//
// Precondition: text must be a valid dice expression.
func MustParse(text string) Expression {
	e, err := Parse(text)
	if err != nil {
		panic("dice: MustParse failed for expression " + text + ": " + err.Error())
	}
	return e
}

type parser struct {
	raw  string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// sequence parses terms until end of input, or until the closing parenthesis
// when inGroup is set. Junk tokens are skipped; a bare unsigned number that
// resumes after them is dropped, since it is neither the first term nor
// introduced by a sign. Surviving terms are summed.
func (p *parser) sequence(inGroup bool) (node, error) {
	var acc node
	start := p.pos
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF, inGroup && t.kind == tokRParen:
			return acc, nil
		case t.kind == tokRParen, t.kind == tokOther:
			p.next()
			continue
		}

		at := p.pos
		n, err := p.expression(bpNone)
		if err != nil {
			return nil, err
		}
		if _, bare := n.(*literal); bare && at > start {
			continue
		}
		acc = join(acc, n)
	}
}

func join(acc, n node) node {
	switch {
	case acc == nil:
		return n
	case n == nil:
		return acc
	}
	return &binary{left: acc, right: n, at: n.offset()}
}

func infixPower(k tokenKind) int {
	switch k {
	case tokPlus, tokMinus:
		return bpSum
	case tokDie:
		return bpDie
	}
	return bpNone
}

func (p *parser) expression(rbp int) (node, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for rbp < infixPower(p.peek().kind) {
		if left, err = p.infix(p.next(), left); err != nil {
			return nil, err
		}
	}
	return left, nil
}

// prefix parses a term start. Tokens that cannot start a term are left in
// place for sequence to skip.
func (p *parser) prefix() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokInt:
		p.next()
		v, err := strconv.Atoi(t.text)
		if err != nil {
			// Out of range for int: contributes nothing, and drops any die
			// term it counts.
			return &literal{overflow: true, at: t.offset}, nil
		}
		return &literal{value: v, at: t.offset}, nil
	case tokDie:
		p.next()
		size, err := p.dieSize()
		if err != nil {
			return nil, err
		}
		return &roll{size: size, at: t.offset}, nil
	case tokPlus, tokMinus:
		p.next()
		operand, err := p.expression(bpPrefix)
		if err != nil {
			return nil, err
		}
		return &unary{neg: t.kind == tokMinus, operand: operand, at: t.offset}, nil
	case tokLParen:
		p.next()
		inner, err := p.sequence(true)
		if err != nil {
			return nil, err
		}
		if p.peek().kind == tokRParen {
			p.next()
		}
		return &group{inner: inner, at: t.offset}, nil
	}
	return nil, nil
}

func (p *parser) infix(t token, left node) (node, error) {
	switch t.kind {
	case tokPlus, tokMinus:
		right, err := p.expression(bpSum)
		if err != nil {
			return nil, err
		}
		return &binary{neg: t.kind == tokMinus, left: left, right: right, at: t.offset}, nil
	case tokDie:
		size, err := p.dieSize()
		if err != nil {
			return nil, err
		}
		return &roll{count: left, size: size, at: t.offset}, nil
	}
	return left, nil
}

// dieSize reads the face count following a 'd'. Only an integer literal is
// accepted; a parenthesised size is a variable die and is rejected. Anything
// else yields 0, marking the die term as malformed.
func (p *parser) dieSize() (int, error) {
	t := p.peek()
	switch t.kind {
	case tokInt:
		p.next()
		size, err := strconv.Atoi(t.text)
		if err != nil || size < 1 {
			return 0, nil
		}
		return size, nil
	case tokLParen:
		return 0, fmt.Errorf("dice: %w: variable die size in %q at offset %d", ErrInvalidDice, p.raw, t.offset)
	}
	return 0, nil
}
