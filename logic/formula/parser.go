package formula

import "fmt"

// SyntaxError reports the first offending position of an input that is
// not a well-formed formula. Positions count runes from 0.
type SyntaxError struct {
	Pos        int
	Unexpected string
	Expected   string
}

func (err *SyntaxError) Error() string {
	unexpected := fmt.Sprintf("%q", err.Unexpected)
	if err.Unexpected == "" {
		unexpected = "end of input"
	}
	return fmt.Sprintf("syntax error at position %d: unexpected %s, expected %s",
		err.Pos, unexpected, err.Expected)
}

// Parse turns a formula string into its tree. Implication and
// biimplication associate to the right and bind weakest, then
// disjunction, conjunction and the unary operators. ASCII aliases
// (!, ~, &, |, ->, <->, [], <>) are accepted alongside the logical
// symbols.
func Parse(input string) (Formula, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	f, err2 := p.formula()
	if err2 != nil {
		return nil, err2
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &SyntaxError{Pos: tok.pos, Unexpected: tok.text, Expected: "end of input"}
	}
	return f, nil
}

// MustParse is Parse for statically known inputs.
func MustParse(input string) Formula {
	f, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	toks []token
	cur  int
}

func (p *parser) peek() token {
	return p.toks[p.cur]
}

func (p *parser) next() token {
	tok := p.toks[p.cur]
	if tok.kind != tokEOF {
		p.cur++
	}
	return tok
}

func (p *parser) formula() (Formula, *SyntaxError) {
	left, err := p.disjunct()
	if err != nil {
		return nil, err
	}
	switch p.peek().kind {
	case tokImplies:
		p.next()
		right, err := p.formula()
		if err != nil {
			return nil, err
		}
		return &Implies{Left: left, Right: right}, nil
	case tokIff:
		p.next()
		right, err := p.formula()
		if err != nil {
			return nil, err
		}
		return &Iff{Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) disjunct() (Formula, *SyntaxError) {
	left, err := p.conjunct()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.conjunct()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) conjunct() (Formula, *SyntaxError) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) unary() (Formula, *SyntaxError) {
	switch p.peek().kind {
	case tokNot:
		p.next()
		sub, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Not{Sub: sub}, nil
	case tokBox:
		p.next()
		sub, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Box{Sub: sub}, nil
	case tokDiamond:
		p.next()
		sub, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Diamond{Sub: sub}, nil
	}
	return p.atom()
}

func (p *parser) atom() (Formula, *SyntaxError) {
	switch tok := p.peek(); tok.kind {
	case tokVar:
		p.next()
		return &Var{Name: tok.text}, nil
	case tokLParen:
		p.next()
		f, err := p.formula()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.kind != tokRParen {
			return nil, &SyntaxError{Pos: closing.pos, Unexpected: closing.text, Expected: `")"`}
		}
		p.next()
		return f, nil
	default:
		return nil, &SyntaxError{Pos: tok.pos, Unexpected: tok.text, Expected: "an operand"}
	}
}
