package formula

import "unicode"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokVar
	tokNot
	tokAnd
	tokOr
	tokImplies
	tokIff
	tokBox
	tokDiamond
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int // rune offset in the input
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lex splits the input into tokens, accepting both the logical symbols
// ¬ ∧ ∨ → ↔ □ ◇ and their ASCII spellings ! ~ & | -> <-> [] <>.
// Positions are rune offsets.
func lex(input string) ([]token, *SyntaxError) {
	runes := []rune(input)
	var toks []token
	emit := func(kind tokenKind, pos, width int) {
		toks = append(toks, token{kind, string(runes[pos : pos+width]), pos})
	}

	pos := 0
	for pos < len(runes) {
		r := runes[pos]
		switch {
		case unicode.IsSpace(r):
			pos++
		case r == '(':
			emit(tokLParen, pos, 1)
			pos++
		case r == ')':
			emit(tokRParen, pos, 1)
			pos++
		case r == '¬' || r == '!' || r == '~':
			emit(tokNot, pos, 1)
			pos++
		case r == '∧' || r == '&':
			emit(tokAnd, pos, 1)
			pos++
		case r == '∨' || r == '|':
			emit(tokOr, pos, 1)
			pos++
		case r == '→':
			emit(tokImplies, pos, 1)
			pos++
		case r == '↔':
			emit(tokIff, pos, 1)
			pos++
		case r == '□':
			emit(tokBox, pos, 1)
			pos++
		case r == '◇':
			emit(tokDiamond, pos, 1)
			pos++
		case r == '-' && pos+1 < len(runes) && runes[pos+1] == '>':
			emit(tokImplies, pos, 2)
			pos += 2
		case r == '<' && pos+2 < len(runes) && runes[pos+1] == '-' && runes[pos+2] == '>':
			emit(tokIff, pos, 3)
			pos += 3
		case r == '<' && pos+1 < len(runes) && runes[pos+1] == '>':
			emit(tokDiamond, pos, 2)
			pos += 2
		case r == '[' && pos+1 < len(runes) && runes[pos+1] == ']':
			emit(tokBox, pos, 2)
			pos += 2
		case isIdentRune(r):
			start := pos
			for pos < len(runes) && isIdentRune(runes[pos]) {
				pos++
			}
			toks = append(toks, token{tokVar, string(runes[start:pos]), start})
		default:
			return nil, &SyntaxError{Pos: pos, Unexpected: string(r), Expected: "a formula symbol"}
		}
	}
	toks = append(toks, token{tokEOF, "", len(runes)})
	return toks, nil
}
