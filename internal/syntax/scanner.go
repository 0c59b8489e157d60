package syntax

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner performs lexical analysis on Starla source code.
type Scanner struct {
	source // embedded character reader

	tok Token // current token

	// Error handling
	errh func(err *LexError)

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each illegal character; if nil, they are
// silently skipped.
func NewScanner(filename string, src io.Reader, errh func(err *LexError)) *Scanner {
	return &Scanner{
		source: *newSource(filename, src),
		errh:   errh,
	}
}

// Err returns the error encountered while reading the input, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	// Skip whitespace (not including '\n')
	s.skipWhitespace()

	// Record token start position
	s.tok = Token{Pos: s.pos()}

	switch {
	case s.ch < 0:
		s.tok.Kind = _EOF

	case s.ch == '\n' || s.ch == ';':
		s.scanNewlines()

	case s.ch == '#':
		s.skipLineComment()
		goto redo

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		if !s.scanString() {
			s.illegal()
			goto redo
		}

	case s.ch == '\'':
		if !s.scanChar() {
			s.illegal()
			goto redo
		}

	default:
		if !s.scanOperator() {
			s.illegal()
			goto redo
		}
	}
}

// Token returns the current token.
func (s *Scanner) Token() Token {
	return s.tok
}

// illegal reports the current character and skips it.
func (s *Scanner) illegal() {
	if s.errh != nil {
		s.errh(&LexError{Char: s.ch, Pos: s.pos()})
	}
	s.nextch()
}

// skipWhitespace skips space, tab, and carriage return.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// skipLineComment skips a comment from # up to (not including) the newline.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// scanNewlines collapses a run of newlines and semicolons into one token.
// Whitespace and comments between them belong to the run.
func (s *Scanner) scanNewlines() {
	s.litBuf.Reset()
	for {
		switch {
		case s.ch == '\n' || s.ch == ';':
			s.litBuf.WriteRune(s.ch)
			s.nextch()
		case isWhitespace(s.ch):
			s.nextch()
		case s.ch == '#':
			s.skipLineComment()
		default:
			s.tok.Kind = _Newline
			s.tok.Text = s.litBuf.String()
			return
		}
	}
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	start := s.cur
	for isLetter(s.ch) || isDigit(s.ch) {
		s.nextch()
	}
	s.tok.Text = string(s.buf[start:s.cur])
	s.tok.Kind = LookupKeyword(s.tok.Text)
}

// scanNumber scans an INT, FLOAT or DOUBLE literal.
// A fractional literal is FLOAT when its integer part is exactly "0",
// otherwise DOUBLE.
func (s *Scanner) scanNumber() {
	start := s.cur
	for isDigit(s.ch) {
		s.nextch()
	}
	intPart := string(s.buf[start:s.cur])
	s.tok.Kind = _Int

	if rest := s.rest(); s.ch == '.' && len(rest) > 1 && isDigit(rune(rest[1])) {
		s.nextch() // consume .
		for isDigit(s.ch) {
			s.nextch()
		}
		if intPart == "0" {
			s.tok.Kind = _Float
		} else {
			s.tok.Kind = _Double
		}
	}

	s.tok.Text = string(s.buf[start:s.cur])
}

// scanString scans a double-quoted string literal.
// The token text keeps the quotes and escape sequences; decoding happens in
// the parser. Returns false, consuming nothing, if the literal is not
// terminated on the same line.
func (s *Scanner) scanString() bool {
	b := s.rest()
	for i := 1; i < len(b); i++ {
		switch b[i] {
		case '\n':
			return false
		case '\\':
			if i+1 >= len(b) || b[i+1] == '\n' {
				return false
			}
			i++ // skip escaped byte
		case '"':
			s.consume(i + 1)
			s.tok.Kind = _String
			return true
		}
	}
	return false
}

// scanChar scans a single-quoted character literal holding exactly one,
// possibly escaped, character. Returns false, consuming nothing, if the
// input does not form such a literal.
func (s *Scanner) scanChar() bool {
	b := s.rest()
	i := 1
	switch {
	case i >= len(b):
		return false
	case b[i] == '\\':
		switch {
		case i+1 >= len(b) || b[i+1] == '\n':
			return false
		case b[i+1] == 'x' && i+3 < len(b) && isHexDigit(rune(b[i+2])) && isHexDigit(rune(b[i+3])):
			i += 4
		default:
			_, w := utf8.DecodeRune(b[i+1:])
			i += 1 + w
		}
	case b[i] == '\n' || b[i] == '\'':
		return false
	default:
		_, w := utf8.DecodeRune(b[i:])
		i += w
	}
	if i >= len(b) || b[i] != '\'' {
		return false
	}
	s.consume(i + 1)
	s.tok.Kind = _Char
	return true
}

// consume advances over the next n bytes and records them as the token text.
func (s *Scanner) consume(n int) {
	end := s.cur + n
	s.tok.Text = string(s.buf[s.cur:end])
	for s.ch >= 0 && s.cur < end {
		s.nextch()
	}
}

// scanOperator scans an operator, delimiter or type annotation.
// Returns false, consuming nothing, if the current character starts none.
func (s *Scanner) scanOperator() bool {
	var next byte
	if rest := s.rest(); len(rest) > 1 {
		next = rest[1]
	}

	kind, width := _EOF, 1
	switch s.ch {
	case '+':
		kind = _Plus
	case '-':
		kind = _Minus
		if next == '>' {
			kind, width = _Arrow, 2
		}
	case '*':
		kind = _Times
		if next == '*' {
			kind, width = _Power, 2
		}
	case '/':
		kind = _Divide
	case '%':
		kind = _Mod
	case '|':
		if next != '|' {
			return false
		}
		kind, width = _BinOr, 2
	case '&':
		if next != '&' {
			return false
		}
		kind, width = _BinAnd, 2
	case '^':
		kind = _BinXor
	case '~':
		kind = _BinNot
	case '!':
		kind = _BinNot
		if next == '=' {
			kind, width = _Ne, 2
		}
	case '<':
		kind = _Lt
		if next == '=' {
			kind, width = _Le, 2
		}
	case '>':
		kind = _Gt
		if next == '=' {
			kind, width = _Ge, 2
		}
	case '=':
		kind = _Equals
		if next == '=' {
			kind, width = _Eq, 2
		}
	case ':':
		// TYPE must win over COLON: ":int" is one token.
		if isLetter(rune(next)) {
			s.scanType()
			return true
		}
		kind = _Colon
	case '(':
		kind = _Lparen
	case ')':
		kind = _Rparen
	case '[':
		kind = _Lbracket
	case ']':
		kind = _Rbracket
	case '{':
		kind = _Lbrace
	case '}':
		kind = _Rbrace
	case ',':
		kind = _Separator
	default:
		return false
	}

	s.consume(width)
	s.tok.Kind = kind
	return true
}

// scanType scans a type annotation ":name".
func (s *Scanner) scanType() {
	start := s.cur
	s.nextch() // skip :
	for isLetter(s.ch) || isDigit(s.ch) {
		s.nextch()
	}
	s.tok.Kind = _Type
	s.tok.Text = string(s.buf[start:s.cur])
}
