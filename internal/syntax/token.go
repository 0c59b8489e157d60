// Package syntax implements lexical analysis for the Starla programming language.
package syntax

import "fmt"

// TokenKind represents the type of a lexical token.
type TokenKind uint

const (
	// Special tokens
	_EOF     TokenKind = iota // end of file
	_Newline                  // run of newlines and/or semicolons

	// Names and literals
	_Namespace // identifier: foo, bar, _v1_
	_Type      // type annotation: :int
	_Int       // 123
	_Float     // 0.5
	_Double    // 3.14
	_String    // "abc"
	_Char      // 'a'
	_Bool      // True, False

	// Operators (ordered by precedence, low to high)
	_Or  // or
	_And // and
	_Not // not

	// Comparison operators
	_Eq // ==
	_Ne // !=
	_Lt // <
	_Le // <=
	_Gt // >
	_Ge // >=

	// Bitwise operators
	_BinOr  // ||
	_BinAnd // &&
	_BinXor // ^

	// Arithmetic operators
	_Plus   // +
	_Minus  // -
	_Times  // *
	_Divide // /
	_Mod    // %
	_Power  // **

	// Unary operators
	_BinNot // ! or ~

	// Delimiters
	_Lparen    // (
	_Rparen    // )
	_Lbracket  // [
	_Rbracket  // ]
	_Lbrace    // {
	_Rbrace    // }
	_Separator // ,
	_Colon     // :
	_Equals    // =
	_Arrow     // ->

	// Keywords
	_Define
	_Return
	_Null
	_If
	_Elif
	_Else
	_While
	_For
	_In
	_Pass

	tokenCount
)

// tokenNames maps token kinds to their terminal names.
var tokenNames = [...]string{
	_EOF:     "EOF",
	_Newline: "NEWLINE",

	_Namespace: "NAMESPACE",
	_Type:      "TYPE",
	_Int:       "INT",
	_Float:     "FLOAT",
	_Double:    "DOUBLE",
	_String:    "STRING",
	_Char:      "CHAR",
	_Bool:      "BOOL",

	_Or:  "OR",
	_And: "AND",
	_Not: "NOT",

	_Eq: "EQ",
	_Ne: "NE",
	_Lt: "LT",
	_Le: "LE",
	_Gt: "GT",
	_Ge: "GE",

	_BinOr:  "BINOR",
	_BinAnd: "BINAND",
	_BinXor: "BINXOR",

	_Plus:   "PLUS",
	_Minus:  "MINUS",
	_Times:  "TIMES",
	_Divide: "DIVIDE",
	_Mod:    "MOD",
	_Power:  "POWER",

	_BinNot: "BINNOT",

	_Lparen:    "LPAREN",
	_Rparen:    "RPAREN",
	_Lbracket:  "LBRACKET",
	_Rbracket:  "RBRACKET",
	_Lbrace:    "LBRACE",
	_Rbrace:    "RBRACE",
	_Separator: "SEPARATOR",
	_Colon:     "COLON",
	_Equals:    "EQUALS",
	_Arrow:     "ARROW",

	_Define: "DEFINE",
	_Return: "RETURN",
	_Null:   "NULL",
	_If:     "IF",
	_Elif:   "ELIF",
	_Else:   "ELSE",
	_While:  "WHILE",
	_For:    "FOR",
	_In:     "IN",
	_Pass:   "PASS",
}

// String returns the terminal name of the token kind.
func (k TokenKind) String() string {
	if k < tokenCount {
		return tokenNames[k]
	}
	return fmt.Sprintf("token(%d)", k)
}

// Binary operator precedence levels (higher = binds tighter).
// Prefix not sits between precAnd and precCmp; prefix - + ! ~ take an
// operand parsed above precMod.
const (
	precNone = iota
	precOr
	precAnd
	precCmp
	precBitwise
	precAdd
	precMul
	precMod
	precPower
)

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
//
//	1: or
//	2: and
//	3: == != < <= > >=
//	4: || && ^
//	5: + -
//	6: * /
//	7: %
//	8: ** (right associative)
func (k TokenKind) Precedence() int {
	switch k {
	case _Or:
		return precOr
	case _And:
		return precAnd
	case _Eq, _Ne, _Lt, _Le, _Gt, _Ge:
		return precCmp
	case _BinOr, _BinAnd, _BinXor:
		return precBitwise
	case _Plus, _Minus:
		return precAdd
	case _Times, _Divide:
		return precMul
	case _Mod:
		return precMod
	case _Power:
		return precPower
	}
	return precNone
}

// IsKeyword reports whether k is a keyword token.
func (k TokenKind) IsKeyword() bool {
	return k >= _Define && k <= _Pass || k == _Or || k == _And || k == _Not
}

// IsLiteral reports whether k is a literal token.
func (k TokenKind) IsLiteral() bool {
	return k >= _Int && k <= _Bool
}

// IsComparison reports whether k is a relational operator.
func (k TokenKind) IsComparison() bool {
	return k >= _Eq && k <= _Ge
}

// IsEOF reports whether k is the EOF token.
func (k TokenKind) IsEOF() bool {
	return k == _EOF
}

// Token is a classified lexical unit.
type Token struct {
	Kind TokenKind
	Text string // source text; string and char literals keep quotes and escapes
	Pos  Pos    // position of the first character
}

// String returns "KIND" for fixed tokens and KIND("text") otherwise.
func (t Token) String() string {
	switch t.Kind {
	case _EOF:
		return "EOF"
	case _Newline:
		return "NEWLINE"
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// keywords maps reserved words to their token kind.
// True and False are classified as BOOL literals.
var keywords = map[string]TokenKind{
	"def":    _Define,
	"return": _Return,
	"null":   _Null,
	"if":     _If,
	"elif":   _Elif,
	"else":   _Else,
	"while":  _While,
	"for":    _For,
	"in":     _In,
	"pass":   _Pass,
	"and":    _And,
	"or":     _Or,
	"not":    _Not,
	"True":   _Bool,
	"False":  _Bool,
}

// LookupKeyword returns the token kind for the given identifier string.
// If the identifier is a reserved word, returns its kind.
// Otherwise, returns NAMESPACE.
func LookupKeyword(ident string) TokenKind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Namespace
}
