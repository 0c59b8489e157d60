package syntax

import "testing"

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		// Special tokens
		{_EOF, "EOF"},
		{_Newline, "NEWLINE"},

		// Names and literals
		{_Namespace, "NAMESPACE"},
		{_Type, "TYPE"},
		{_Int, "INT"},
		{_Float, "FLOAT"},
		{_Double, "DOUBLE"},
		{_String, "STRING"},
		{_Char, "CHAR"},
		{_Bool, "BOOL"},

		// Operators
		{_Minus, "MINUS"},
		{_Plus, "PLUS"},
		{_Times, "TIMES"},
		{_Divide, "DIVIDE"},
		{_Power, "POWER"},
		{_Mod, "MOD"},
		{_BinOr, "BINOR"},
		{_BinAnd, "BINAND"},
		{_BinXor, "BINXOR"},
		{_BinNot, "BINNOT"},
		{_Or, "OR"},
		{_And, "AND"},
		{_Not, "NOT"},

		// Comparisons
		{_Ge, "GE"},
		{_Le, "LE"},
		{_Lt, "LT"},
		{_Gt, "GT"},
		{_Eq, "EQ"},
		{_Ne, "NE"},

		// Delimiters
		{_Lbracket, "LBRACKET"},
		{_Rbracket, "RBRACKET"},
		{_Lbrace, "LBRACE"},
		{_Rbrace, "RBRACE"},
		{_Lparen, "LPAREN"},
		{_Rparen, "RPAREN"},
		{_Separator, "SEPARATOR"},
		{_Colon, "COLON"},
		{_Equals, "EQUALS"},
		{_Arrow, "ARROW"},

		// Keywords
		{_Define, "DEFINE"},
		{_Return, "RETURN"},
		{_Null, "NULL"},
		{_If, "IF"},
		{_Elif, "ELIF"},
		{_Else, "ELSE"},
		{_While, "WHILE"},
		{_For, "FOR"},
		{_In, "IN"},
		{_Pass, "PASS"},

		// Out of range
		{tokenCount + 3, "token(52)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenNamesComplete(t *testing.T) {
	for k := TokenKind(0); k < tokenCount; k++ {
		if tokenNames[k] == "" {
			t.Errorf("token kind %d has no name", k)
		}
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		kind TokenKind
		prec int
	}{
		{_Or, precOr},
		{_And, precAnd},
		{_Eq, precCmp},
		{_Ne, precCmp},
		{_Lt, precCmp},
		{_Le, precCmp},
		{_Gt, precCmp},
		{_Ge, precCmp},
		{_BinOr, precBitwise},
		{_BinAnd, precBitwise},
		{_BinXor, precBitwise},
		{_Plus, precAdd},
		{_Minus, precAdd},
		{_Times, precMul},
		{_Divide, precMul},
		{_Mod, precMod},
		{_Power, precPower},

		// Not binary operators
		{_Not, precNone},
		{_BinNot, precNone},
		{_Namespace, precNone},
		{_Lparen, precNone},
		{_Equals, precNone},
		{_EOF, precNone},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Precedence(); got != tt.prec {
				t.Errorf("%v.Precedence() = %d, want %d", tt.kind, got, tt.prec)
			}
		})
	}

	// Precedence must strictly increase along the table.
	order := []TokenKind{_Or, _And, _Eq, _BinOr, _Plus, _Times, _Mod, _Power}
	for i := 1; i < len(order); i++ {
		if order[i-1].Precedence() >= order[i].Precedence() {
			t.Errorf("%v should bind looser than %v", order[i-1], order[i])
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenKind
	}{
		{"def", _Define},
		{"return", _Return},
		{"null", _Null},
		{"if", _If},
		{"elif", _Elif},
		{"else", _Else},
		{"while", _While},
		{"for", _For},
		{"in", _In},
		{"pass", _Pass},
		{"and", _And},
		{"or", _Or},
		{"not", _Not},
		{"True", _Bool},
		{"False", _Bool},

		// Not keywords
		{"true", _Namespace},
		{"None", _Namespace},
		{"define", _Namespace},
		{"int", _Namespace},
		{"_if", _Namespace},
		{"If", _Namespace},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestTokenKindPredicates(t *testing.T) {
	for k := TokenKind(0); k < tokenCount; k++ {
		wantKeyword := false
		for _, kw := range keywords {
			if kw == k && k != _Bool {
				wantKeyword = true
			}
		}
		if got := k.IsKeyword(); got != wantKeyword {
			t.Errorf("%v.IsKeyword() = %v, want %v", k, got, wantKeyword)
		}

		wantCmp := k == _Eq || k == _Ne || k == _Lt || k == _Le || k == _Gt || k == _Ge
		if got := k.IsComparison(); got != wantCmp {
			t.Errorf("%v.IsComparison() = %v, want %v", k, got, wantCmp)
		}

		wantLit := k == _Int || k == _Float || k == _Double || k == _String || k == _Char || k == _Bool
		if got := k.IsLiteral(); got != wantLit {
			t.Errorf("%v.IsLiteral() = %v, want %v", k, got, wantLit)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: _EOF}, "EOF"},
		{Token{Kind: _Newline, Text: "\n\n"}, "NEWLINE"},
		{Token{Kind: _Namespace, Text: "foo"}, `NAMESPACE("foo")`},
		{Token{Kind: _String, Text: `"a\n"`}, `STRING("\"a\\n\"")`},
		{Token{Kind: _Type, Text: ":int"}, `TYPE(":int")`},
		{Token{Kind: _Power, Text: "**"}, `POWER("**")`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("Token.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
