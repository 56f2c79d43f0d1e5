package dice

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokDie
	tokPlus
	tokMinus
	tokLParen
	tokRParen
	tokOther
)

// notationLexer splits whitespace-free dice notation into tokens. The final
// catch-all rule means lexing never fails; unknown runes surface as Other.
var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Die", Pattern: `[dD]`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Other", Pattern: `(?s).`},
})

var tokenKinds = func() map[lexer.TokenType]tokenKind {
	sym := notationLexer.Symbols()
	return map[lexer.TokenType]tokenKind{
		sym["Int"]:    tokInt,
		sym["Die"]:    tokDie,
		sym["Plus"]:   tokPlus,
		sym["Minus"]:  tokMinus,
		sym["LParen"]: tokLParen,
		sym["RParen"]: tokRParen,
		sym["Other"]:  tokOther,
	}
}()

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// tokenize lexes s and terminates the result with a single EOF token.
//
// Postcondition: on success the last element has kind tokEOF.
func tokenize(s string) ([]token, error) {
	lex, err := notationLexer.LexString("", s)
	if err != nil {
		return nil, fmt.Errorf("dice: lexing %q: %w", s, err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("dice: lexing %q: %w", s, err)
	}
	toks := make([]token, 0, len(raw)+1)
	for _, t := range raw {
		if t.EOF() {
			break
		}
		toks = append(toks, token{kind: tokenKinds[t.Type], text: t.Value, offset: t.Pos.Offset})
	}
	return append(toks, token{kind: tokEOF, offset: len(s)}), nil
}
