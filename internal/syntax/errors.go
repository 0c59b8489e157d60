package syntax

import (
	"errors"
	"fmt"
)

// LexError reports a character the scanner could not match.
// It is not fatal: the character is skipped and scanning continues.
type LexError struct {
	Char rune
	Pos  Pos
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: illegal character %q", e.Pos, e.Char)
}

// SyntaxError reports the first grammar violation of a parse.
// Token is the offending token; its Kind is EOF for unexpected end of input.
type SyntaxError struct {
	Token Token
	Msg   string
}

func (e *SyntaxError) Error() string {
	return e.Token.Pos.String() + ": " + e.Msg
}

// Pos returns the position of the offending token.
func (e *SyntaxError) Pos() Pos {
	return e.Token.Pos
}

// AtEOF reports whether the parse failed because the input ended early.
func (e *SyntaxError) AtEOF() bool {
	return e.Token.Kind == _EOF
}

// IsIncomplete reports whether err is a syntax error caused by the input
// ending early, i.e. more input could still make it parse.
func IsIncomplete(err error) bool {
	var serr *SyntaxError
	return errors.As(err, &serr) && serr.AtEOF()
}

// Diagnostics collects the non-fatal lexical errors of one parse.
// A nil *Diagnostics discards everything reported to it.
type Diagnostics struct {
	errs []*LexError
}

// Report records a lexical error.
func (d *Diagnostics) Report(err *LexError) {
	if d == nil {
		return
	}
	d.errs = append(d.errs, err)
}

// Errors returns the recorded errors in source order.
func (d *Diagnostics) Errors() []*LexError {
	if d == nil {
		return nil
	}
	return d.errs
}

// Len returns the number of recorded errors.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.errs)
}

// Err joins the recorded errors, or returns nil if there are none.
func (d *Diagnostics) Err() error {
	if d.Len() == 0 {
		return nil
	}
	errs := make([]error, len(d.errs))
	for i, e := range d.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}
