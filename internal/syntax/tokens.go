package syntax

import (
	"io"
	"iter"
	"strings"
)

// Tokens returns the tokens of src in order. The sequence is lazy and can be
// ranged over once; it stops before EOF. Illegal characters are passed to
// errh, which may be nil.
func Tokens(filename string, src io.Reader, errh func(err *LexError)) iter.Seq[Token] {
	s := NewScanner(filename, src, errh)
	return func(yield func(Token) bool) {
		for {
			s.Next()
			if s.tok.Kind == _EOF || !yield(s.tok) {
				return
			}
		}
	}
}

// Tokenize scans src completely and returns its tokens, excluding EOF, and
// the illegal characters found on the way.
func Tokenize(filename string, src string) ([]Token, []*LexError) {
	var diag Diagnostics
	var toks []Token
	for tok := range Tokens(filename, strings.NewReader(src), diag.Report) {
		toks = append(toks, tok)
	}
	return toks, diag.Errors()
}
