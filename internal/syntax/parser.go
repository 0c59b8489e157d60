package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Parser performs syntax analysis on Starla source code.
//
// Parsing stops at the first syntax error; there is no recovery. Internally
// the error unwinds the recursive descent with a panic that Parse recovers.
type Parser struct {
	scanner *Scanner

	// Current token and one token of lookahead
	tok      Token
	ahead    Token
	hasAhead bool

	// Context tracking
	xnest  int  // bracket nesting level; newlines are ignored when > 0
	noDict bool // a bare { ends the expression (control clause headers)
}

// bailout carries the syntax error out of the recursive descent.
type bailout struct {
	err *SyntaxError
}

// NewParser creates a new Parser for the given source.
// Illegal characters are reported to diag, which may be nil.
func NewParser(filename string, src io.Reader, diag *Diagnostics) *Parser {
	p := &Parser{
		scanner: NewScanner(filename, src, diag.Report),
	}
	p.next() // prime the parser with first token
	return p
}

// Parse parses the source into a Module. On failure it returns the first
// syntax error and no Module.
func Parse(filename string, src io.Reader, diag *Diagnostics) (*Module, error) {
	return NewParser(filename, src, diag).Parse()
}

// ParseString parses src, discarding lexical diagnostics.
func ParseString(src string) (*Module, error) {
	return Parse("", strings.NewReader(src), nil)
}

// ParseExpr parses src as a single expression.
func ParseExpr(src string) (Expr, error) {
	p := NewParser("", strings.NewReader(src), nil)
	var x Expr
	err := p.run(func() {
		x = p.expr()
		p.got(_Newline)
		p.want(_EOF)
	})
	if err != nil {
		return nil, err
	}
	return x, nil
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token, skipping newlines inside brackets.
func (p *Parser) next() {
	for {
		if p.hasAhead {
			p.tok = p.ahead
			p.hasAhead = false
		} else {
			p.scanner.Next()
			p.tok = p.scanner.Token()
		}
		if p.tok.Kind != _Newline || p.xnest == 0 {
			return
		}
	}
}

// peek returns the token after the current one without consuming anything.
func (p *Parser) peek() Token {
	if !p.hasAhead {
		for {
			p.scanner.Next()
			p.ahead = p.scanner.Token()
			if p.ahead.Kind != _Newline || p.xnest == 0 {
				break
			}
		}
		p.hasAhead = true
	}
	return p.ahead
}

// got reports whether the current token is of kind k.
// If so, it consumes the token and returns true.
func (p *Parser) got(k TokenKind) bool {
	if p.tok.Kind == k {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it is of kind k.
// Otherwise, it reports a syntax error.
func (p *Parser) want(k TokenKind) {
	if !p.got(k) {
		p.syntaxError(spelling(k))
	}
}

// open enters a bracketed region whose opening token is current.
// It returns the previous noDict state for close.
func (p *Parser) open() (noDict bool) {
	noDict = p.noDict
	p.noDict = false
	p.xnest++
	p.next()
	return noDict
}

// close leaves a bracketed region and consumes its closing token.
func (p *Parser) close(k TokenKind, noDict bool) {
	p.xnest--
	p.noDict = noDict
	p.want(k)
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current token.
// If expected is not empty it is appended as ", expected ...".
func (p *Parser) syntaxError(expected string) {
	p.syntaxErrorAt(p.tok, expected)
}

// syntaxErrorAt reports an unexpected token.
func (p *Parser) syntaxErrorAt(tok Token, expected string) {
	msg := "unexpected " + describe(tok)
	if expected != "" {
		msg += ", expected " + expected
	}
	p.errorAt(tok, msg)
}

// errorAt aborts the parse with msg.
func (p *Parser) errorAt(tok Token, msg string) {
	panic(bailout{&SyntaxError{Token: tok, Msg: msg}})
}

// run calls f, turning a bailout into the returned error.
func (p *Parser) run(f func()) (err error) {
	if err := p.scanner.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	f()
	return nil
}

// describe names a token for error messages.
func describe(tok Token) string {
	switch {
	case tok.Kind == _EOF:
		return "end of input"
	case tok.Kind == _Newline:
		return "newline"
	case tok.Kind == _Namespace:
		return "name " + tok.Text
	case tok.Kind == _Type:
		return "type " + tok.Text
	case tok.Kind.IsLiteral():
		return "literal " + tok.Text
	case tok.Kind.IsKeyword():
		return "keyword " + tok.Text
	}
	return tok.Text
}

// spelling names a token kind for "expected" messages.
func spelling(k TokenKind) string {
	switch k {
	case _EOF:
		return "end of input"
	case _Newline:
		return "newline or ;"
	case _Namespace:
		return "name"
	case _Type:
		return "type annotation"
	case _Lparen:
		return "("
	case _Rparen:
		return ")"
	case _Lbracket:
		return "["
	case _Rbracket:
		return "]"
	case _Lbrace:
		return "{"
	case _Rbrace:
		return "}"
	case _Colon:
		return ":"
	case _Equals:
		return "="
	case _In:
		return "in"
	}
	return k.String()
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses the complete source and returns its Module.
func (p *Parser) Parse() (*Module, error) {
	m := &Module{}
	m.pos = p.tok.Pos
	err := p.run(func() {
		m.Body = p.items(_EOF)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ----------------------------------------------------------------------------
// Items and blocks

// items parses statements and expressions up to (not including) a token of
// kind end or the end of input. Items are separated by newlines or semicolons; a compound
// statement closed by } may be followed directly by the next item.
func (p *Parser) items(end TokenKind) []Node {
	list := []Node{}
	for {
		for p.got(_Newline) {
		}
		if p.tok.Kind == end || p.tok.Kind == _EOF {
			return list
		}

		x, compound := p.item()
		list = append(list, x)

		switch {
		case p.got(_Newline), p.tok.Kind == end, p.tok.Kind == _EOF, compound:
		default:
			p.syntaxError(spelling(_Newline))
		}
	}
}

// item parses one statement or expression. compound reports whether it
// ended with a block.
func (p *Parser) item() (x Node, compound bool) {
	switch p.tok.Kind {
	case _If:
		return p.ifStmt(), true
	case _While:
		return p.whileStmt(), true
	case _For:
		return p.forStmt(), true
	case _Define:
		return p.funcDecl(), true
	case _Return:
		return p.returnStmt(), false
	case _Pass:
		s := &Pass{}
		s.pos = p.tok.Pos
		p.next()
		return s, false
	case _Namespace:
		if k := p.peek().Kind; k == _Type || k == _Equals {
			return p.varDecl(), false
		}
	}
	return p.expr(), false
}

// block parses { items }.
func (p *Parser) block() []Node {
	p.want(_Lbrace)
	body := p.items(_Rbrace)
	p.want(_Rbrace)
	return body
}

// header parses the expression of a control clause, where { starts the body.
func (p *Parser) header() Expr {
	old := p.noDict
	p.noDict = true
	x := p.expr()
	p.noDict = old
	return x
}

// ----------------------------------------------------------------------------
// Statements

// ifStmt parses: if cond { } [elif cond { }]* [else { }]
// elif and else may start on the line after the closing brace.
func (p *Parser) ifStmt() *IfStatement {
	s := &IfStatement{}
	s.pos = p.tok.Pos

	p.want(_If)
	cond := p.header()
	s.Conditionals = []Conditional{{Cond: cond, Body: p.block()}}

	for {
		if p.tok.Kind == _Newline {
			if k := p.peek().Kind; k == _Elif || k == _Else {
				p.next()
			}
		}

		switch p.tok.Kind {
		case _Elif:
			p.next()
			cond := p.header()
			s.Conditionals = append(s.Conditionals, Conditional{Cond: cond, Body: p.block()})
		case _Else:
			p.next()
			s.Default = p.block()
			return s
		default:
			return s
		}
	}
}

// whileStmt parses: while cond { body }
func (p *Parser) whileStmt() *WhileLoop {
	s := &WhileLoop{}
	s.pos = p.tok.Pos

	p.want(_While)
	s.Cond = p.header()
	s.Body = p.block()
	return s
}

// forStmt parses: for name in iter { body }
func (p *Parser) forStmt() *ForLoop {
	s := &ForLoop{}
	s.pos = p.tok.Pos

	p.want(_For)
	s.Target = p.namespace(Store)
	p.want(_In)
	s.Iter = p.header()
	s.Body = p.block()
	return s
}

// funcDecl parses: def name(args) [-> :type] { body }
func (p *Parser) funcDecl() *FunctionDeclaration {
	d := &FunctionDeclaration{
		Args:     []*Arg{},
		Defaults: []*DefaultArg{},
	}
	d.pos = p.tok.Pos

	p.want(_Define)
	d.Target = p.namespace(Store)

	if p.tok.Kind != _Lparen {
		p.syntaxError(spelling(_Lparen))
	}
	old := p.open()
	for p.tok.Kind != _Rparen {
		name := p.tok
		p.want(_Namespace)
		hint := p.typeHint()

		if p.got(_Equals) {
			a := &DefaultArg{Name: name.Text, Annotation: hint, Value: p.expr()}
			a.pos = name.Pos
			d.Defaults = append(d.Defaults, a)
		} else {
			if len(d.Defaults) > 0 {
				p.errorAt(name, "non-default argument follows default argument")
			}
			a := &Arg{Name: name.Text, Annotation: hint}
			a.pos = name.Pos
			d.Args = append(d.Args, a)
		}

		if !p.got(_Separator) {
			break
		}
	}
	p.close(_Rparen, old)

	if p.got(_Arrow) {
		d.Returns = p.typeHint()
	} else {
		d.Returns = &TypeHint{Name: "null"}
		d.Returns.pos = p.tok.Pos
	}

	d.Body = p.block()
	return d
}

// varDecl parses: name [:type] = value
func (p *Parser) varDecl() *VariableDeclaration {
	d := &VariableDeclaration{}
	d.pos = p.tok.Pos

	d.Target = p.namespace(Store)
	if p.tok.Kind == _Type {
		d.Annotation = p.typeHint()
	}
	p.want(_Equals)
	d.Value = p.expr()
	return d
}

// returnStmt parses: return [value]
func (p *Parser) returnStmt() *Return {
	s := &Return{}
	s.pos = p.tok.Pos

	p.want(_Return)
	switch p.tok.Kind {
	case _Newline, _Rbrace, _EOF:
	default:
		s.Value = p.expr()
	}
	return s
}

// typeHint parses: :name or :name[hint, ...]
func (p *Parser) typeHint() *TypeHint {
	if p.tok.Kind != _Type {
		p.syntaxError(spelling(_Type))
	}
	t := &TypeHint{Name: strings.TrimPrefix(p.tok.Text, ":")}
	t.pos = p.tok.Pos
	p.next()

	if p.tok.Kind == _Lbracket {
		old := p.open()
		t.Structure = []*TypeHint{}
		for p.tok.Kind != _Rbracket {
			t.Structure = append(t.Structure, p.typeHint())
			if !p.got(_Separator) {
				break
			}
		}
		p.close(_Rbracket, old)
	}
	return t
}

// namespace parses a name in the given context.
func (p *Parser) namespace(ctx Context) *Namespace {
	n := &Namespace{Name: p.tok.Text, Ctx: ctx}
	n.pos = p.tok.Pos
	p.want(_Namespace)
	return n
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.binaryExpr(precNone)
}

// binaryExpr parses a binary expression whose operators all bind tighter
// than prec. Implements precedence climbing; ** is right associative and
// relational operators are gathered into chains.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Kind.Precedence()
		if oprec <= prec {
			return x
		}

		if p.tok.Kind.IsComparison() {
			x = p.comparison(x)
			continue
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: p.tok.Text, X: x}
		op.pos = x.Pos()
		p.next() // consume operator

		if oprec == precPower {
			op.Y = p.binaryExpr(oprec - 1)
		} else {
			op.Y = p.binaryExpr(oprec)
		}
		x = op
	}
}

// comparison parses the relational chain that follows x.
// A single operator yields a Comparison, more yield a MultiComparison whose
// entries share their middle operands.
func (p *Parser) comparison(x Expr) Expr {
	var chain []*Comparison
	for p.tok.Kind.IsComparison() {
		c := &Comparison{Op: p.tok.Text, X: x}
		c.pos = x.Pos()
		p.next()
		c.Y = p.binaryExpr(precCmp)
		chain = append(chain, c)
		x = c.Y
	}

	if len(chain) == 1 {
		return chain[0]
	}
	m := &MultiComparison{Comparisons: chain}
	m.pos = chain[0].pos
	return m
}

// unaryExpr parses a prefix operation or a primary expression.
func (p *Parser) unaryExpr() Expr {
	switch p.tok.Kind {
	case _Not:
		op := &Operation{Op: p.tok.Text}
		op.pos = p.tok.Pos
		p.next()
		op.X = p.binaryExpr(precAnd)
		return op

	case _Minus, _Plus, _BinNot:
		// Only ** binds tighter than a sign: -2 % 3 is (-2) % 3.
		op := &Operation{Op: p.tok.Text}
		op.pos = p.tok.Pos
		p.next()
		op.X = p.binaryExpr(precMod)
		return op
	}
	return p.primaryExpr()
}

// primaryExpr parses an operand followed by any number of calls.
func (p *Parser) primaryExpr() Expr {
	x := p.operand()
	for p.tok.Kind == _Lparen {
		x = p.call(x)
	}
	return x
}

// operand parses a name, a literal or a bracketed expression.
func (p *Parser) operand() Expr {
	tok := p.tok
	switch tok.Kind {
	case _Namespace:
		return p.namespace(Load)

	case _Int:
		x := &Int{Value: tok.Text}
		x.pos = tok.Pos
		p.next()
		return x

	case _Float:
		x := &Float{Value: tok.Text}
		x.pos = tok.Pos
		p.next()
		return x

	case _Double:
		x := &Double{Value: tok.Text}
		x.pos = tok.Pos
		p.next()
		return x

	case _Bool:
		x := &Bool{Value: tok.Text}
		x.pos = tok.Pos
		p.next()
		return x

	case _Null:
		x := &Null{}
		x.pos = tok.Pos
		p.next()
		return x

	case _String, _Char:
		return p.stringLit()

	case _Lparen:
		return p.parenExpr()

	case _Lbracket:
		return p.listLit()

	case _Lbrace:
		if !p.noDict {
			return p.dictLit()
		}
	}

	p.syntaxError("expression")
	return nil
}

// stringLit merges a run of adjacent string and char literals.
// A lone char literal stays a Char.
func (p *Parser) stringLit() Expr {
	first := p.tok
	var b strings.Builder
	n := 0
	for p.tok.Kind == _String || p.tok.Kind == _Char {
		b.WriteString(unquote(p.tok.Text))
		n++
		p.next()
	}

	if n == 1 && first.Kind == _Char {
		x := &Char{Value: b.String()}
		x.pos = first.Pos
		return x
	}
	x := &String{Value: b.String()}
	x.pos = first.Pos
	return x
}

// parenExpr parses (), (x), (x,) and (x, y, ...).
func (p *Parser) parenExpr() Expr {
	pos := p.tok.Pos
	old := p.open()

	items := []Expr{}
	comma := false
	for p.tok.Kind != _Rparen {
		items = append(items, p.expr())
		if !p.got(_Separator) {
			break
		}
		comma = true
	}
	p.close(_Rparen, old)

	if len(items) == 1 && !comma {
		return items[0]
	}
	t := &Tuple{Items: items}
	t.pos = pos
	return t
}

// listLit parses [x, ...].
func (p *Parser) listLit() *List {
	l := &List{Items: []Expr{}}
	l.pos = p.tok.Pos
	old := p.open()

	for p.tok.Kind != _Rbracket {
		l.Items = append(l.Items, p.expr())
		if !p.got(_Separator) {
			break
		}
	}
	p.close(_Rbracket, old)
	return l
}

// dictLit parses {key: value, ...}.
func (p *Parser) dictLit() *Dict {
	d := &Dict{Items: []KeyValue{}}
	d.pos = p.tok.Pos
	old := p.open()

	for p.tok.Kind != _Rbrace {
		key := p.expr()
		if p.tok.Kind == _Type {
			// {a:b} scans as a name followed by the annotation :b.
			p.splitType()
		} else {
			p.want(_Colon)
		}
		d.Items = append(d.Items, KeyValue{Key: key, Value: p.expr()})
		if !p.got(_Separator) {
			break
		}
	}
	p.close(_Rbrace, old)
	return d
}

// splitType replaces the current TYPE token :name by the token for name,
// as if the colon had been consumed separately.
func (p *Parser) splitType() {
	t := p.tok
	name := t.Text[1:]
	p.tok = Token{
		Kind: LookupKeyword(name),
		Text: name,
		Pos:  NewPos(t.Pos.filename, t.Pos.line, t.Pos.col+1, t.Pos.offset+1),
	}
}

// call parses the argument list of a call to target.
// Positional arguments come first, then name = value keywords.
func (p *Parser) call(target Expr) *Call {
	c := &Call{Target: target, Args: []Expr{}, Keywords: []Keyword{}}
	c.pos = target.Pos()
	old := p.open()

	seen := make(map[string]bool)
	for p.tok.Kind != _Rparen {
		if p.tok.Kind == _Namespace && p.peek().Kind == _Equals {
			name := p.tok
			p.next() // name
			p.next() // =
			if seen[name.Text] {
				p.errorAt(name, fmt.Sprintf("keyword argument repeated: %s", name.Text))
			}
			seen[name.Text] = true
			c.Keywords = append(c.Keywords, Keyword{Name: name.Text, Value: p.expr()})
		} else {
			if len(c.Keywords) > 0 {
				p.errorAt(p.tok, "positional argument follows keyword argument")
			}
			c.Args = append(c.Args, p.expr())
		}

		if !p.got(_Separator) {
			break
		}
	}
	p.close(_Rparen, old)
	return c
}

// ----------------------------------------------------------------------------
// Literal decoding

// unquote strips the quotes of a string or char literal and decodes its
// escape sequences. Unknown escapes keep their backslash.
func unquote(text string) string {
	s := text[1 : len(text)-1]
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '\\', '"', '\'':
			b.WriteByte(s[i])
		case 'x':
			if i+2 < len(s) && isHexDigit(rune(s[i+1])) && isHexDigit(rune(s[i+2])) {
				b.WriteRune(rune(unhex(s[i+1])<<4 | unhex(s[i+2])))
				i += 2
				break
			}
			b.WriteString(`\x`)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	}
	return c - 'A' + 10
}
