package syntax

import (
	"io"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// It reads UTF-8 encoded source files and provides character-by-character access.
type source struct {
	// Input
	buf []byte // source buffer (entire file read into memory)
	err error  // read error, if any

	// Position tracking
	filename string // source file name
	line     uint32 // current line number (1-based)
	col      uint32 // current column number (1-based, byte offset)

	// Current state
	ch   rune // current character, -1 for EOF
	cur  int  // byte offset of ch in buf
	offs int  // byte offset of the character after ch
}

// newSource creates a new source from an io.Reader.
// The entire content is read into memory. A read error leaves the source
// at EOF and is available through s.err.
func newSource(filename string, src io.Reader) *source {
	s := &source{
		filename: filename,
		line:     1,
		col:      0,  // Will be incremented to 1 by first nextch()
		ch:       -1, // Sentinel: -1 means "before first char", prevents position update
	}

	// Read entire source into buffer
	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.err = err
		s.buf = nil
	}

	// Initialize first character
	s.nextch()
	return s
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
//
// Position tracking: (line, col) always refers to the position of s.ch after nextch() returns.
func (s *source) nextch() {
	// Update position based on previous character first
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.cur = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	// Invalid UTF-8 decodes to utf8.RuneError with width 1; the scanner
	// reports it as an illegal character.
	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// rest returns the unread input starting at the current character.
func (s *source) rest() []byte {
	return s.buf[s.cur:]
}

// pos returns the current position (position of current character).
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col, uint32(s.cur))
}

// Character classification helpers

// isLetter reports whether r is a letter (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isHexDigit reports whether r is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

// lower returns the lowercase version of r if r is an ASCII letter.
// ('a' - 'A') is 0x20; OR-ing it in lowercases ASCII letters.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r is ignored between tokens.
// Newline is not included: it separates statements.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
