package syntax

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Format writes node to w as Starla source. The output parses back into a
// tree that is Equal to node. Blocks are indented with tabs.
func Format(w io.Writer, node Node) error {
	f := &formatter{}
	f.node(node)
	_, err := w.Write(f.buf.Bytes())
	return err
}

// FormatString returns node as Starla source.
func FormatString(node Node) string {
	f := &formatter{}
	f.node(node)
	return f.buf.String()
}

type formatter struct {
	buf    bytes.Buffer
	indent int
	header bool // printing a control clause header, where { opens the body
}

// Binding levels of printed expressions, loosest first. They follow the
// parser's precedence table with room for the prefix operators.
const (
	levelLowest  = 0
	levelOr      = 2
	levelAnd     = 4
	levelNot     = 5
	levelCmp     = 6
	levelBitwise = 8
	levelAdd     = 10
	levelMul     = 12
	levelMod     = 14
	levelSign    = 15
	levelPower   = 16
	levelPrimary = 18
)

func binaryLevel(op string) int {
	switch op {
	case "or":
		return levelOr
	case "and":
		return levelAnd
	case "||", "&&", "^":
		return levelBitwise
	case "+", "-":
		return levelAdd
	case "*", "/":
		return levelMul
	case "%":
		return levelMod
	case "**":
		return levelPower
	}
	return levelLowest
}

// level returns how tightly x binds when printed without parentheses.
func level(x Expr) int {
	switch x := x.(type) {
	case *Operation:
		if x.Y != nil {
			return binaryLevel(x.Op)
		}
		if x.Op == "not" {
			return levelNot
		}
		return levelSign
	case *Comparison, *MultiComparison:
		return levelCmp
	}
	return levelPrimary
}

func (f *formatter) print(args ...string) {
	for _, s := range args {
		f.buf.WriteString(s)
	}
}

func (f *formatter) tabs() {
	for range f.indent {
		f.buf.WriteByte('\t')
	}
}

func (f *formatter) node(n Node) {
	switch n := n.(type) {
	case *Module:
		f.items(n.Body)
	case Stmt:
		f.stmt(n)
	case Expr:
		f.expr(n, levelLowest)
	case *TypeHint:
		f.print(hintString(n))
	case *Arg:
		f.print(n.Name, " ", hintString(n.Annotation))
	case *DefaultArg:
		f.print(n.Name, " ", hintString(n.Annotation), " = ")
		f.expr(n.Value, levelLowest)
	}
}

// items prints one item per line at the current indentation.
func (f *formatter) items(list []Node) {
	for _, n := range list {
		f.tabs()
		f.node(n)
		f.buf.WriteByte('\n')
	}
}

func (f *formatter) block(body []Node) {
	if len(body) == 0 {
		f.print("{}")
		return
	}
	f.print("{\n")
	f.indent++
	f.items(body)
	f.indent--
	f.tabs()
	f.print("}")
}

// headerExpr prints the expression of a control clause.
func (f *formatter) headerExpr(x Expr) {
	f.header = true
	f.expr(x, levelLowest)
	f.header = false
}

func (f *formatter) stmt(s Stmt) {
	switch s := s.(type) {
	case *IfStatement:
		for i, c := range s.Conditionals {
			if i == 0 {
				f.print("if ")
			} else {
				f.print(" elif ")
			}
			f.headerExpr(c.Cond)
			f.print(" ")
			f.block(c.Body)
		}
		if s.Default != nil {
			f.print(" else ")
			f.block(s.Default)
		}

	case *WhileLoop:
		f.print("while ")
		f.headerExpr(s.Cond)
		f.print(" ")
		f.block(s.Body)

	case *ForLoop:
		f.print("for ", s.Target.Name, " in ")
		f.headerExpr(s.Iter)
		f.print(" ")
		f.block(s.Body)

	case *FunctionDeclaration:
		f.print("def ", s.Target.Name, "(")
		sep := ""
		for _, a := range s.Args {
			f.print(sep)
			f.node(a)
			sep = ", "
		}
		for _, a := range s.Defaults {
			f.print(sep)
			f.node(a)
			sep = ", "
		}
		f.print(") -> ", hintString(s.Returns), " ")
		f.block(s.Body)

	case *VariableDeclaration:
		f.print(s.Target.Name)
		if s.Annotation != nil {
			f.print(" ", hintString(s.Annotation))
		}
		f.print(" = ")
		f.expr(s.Value, levelLowest)

	case *Return:
		f.print("return")
		if s.Value != nil {
			f.print(" ")
			f.expr(s.Value, levelLowest)
		}

	case *Pass:
		f.print("pass")
	}
}

// expr prints x, parenthesized if it binds looser than min.
func (f *formatter) expr(x Expr, min int) {
	if level(x) < min {
		header := f.header
		f.header = false
		f.print("(")
		f.expr(x, levelLowest)
		f.print(")")
		f.header = header
		return
	}

	switch x := x.(type) {
	case *Namespace:
		f.print(x.Name)

	case *Operation:
		if x.Y == nil {
			if x.Op == "not" {
				f.print("not ")
				f.expr(x.X, levelNot)
			} else {
				f.print(x.Op)
				f.expr(x.X, levelPower)
			}
			return
		}
		lv := binaryLevel(x.Op)
		left, right := lv, lv+1
		if lv == levelPower {
			left, right = lv+1, lv
		}
		f.expr(x.X, left)
		f.print(" ", x.Op, " ")
		f.expr(x.Y, right)

	case *Comparison:
		f.expr(x.X, levelCmp+1)
		f.print(" ", x.Op, " ")
		f.expr(x.Y, levelCmp+1)

	case *MultiComparison:
		for i, c := range x.Comparisons {
			if i == 0 {
				f.expr(c.X, levelCmp+1)
			}
			f.print(" ", c.Op, " ")
			f.expr(c.Y, levelCmp+1)
		}

	case *Call:
		f.expr(x.Target, levelPrimary)
		header := f.header
		f.header = false
		f.print("(")
		sep := ""
		for _, a := range x.Args {
			f.print(sep)
			f.expr(a, levelLowest)
			sep = ", "
		}
		for _, k := range x.Keywords {
			f.print(sep, k.Name, " = ")
			f.expr(k.Value, levelLowest)
			sep = ", "
		}
		f.print(")")
		f.header = header

	case *Int:
		f.print(x.Value)
	case *Float:
		f.print(x.Value)
	case *Double:
		f.print(x.Value)
	case *Bool:
		f.print(x.Value)
	case *Null:
		f.print("null")

	case *String:
		f.print(quote(x.Value, '"'))

	case *Char:
		if utf8.RuneCountInString(x.Value) == 1 {
			f.print(quote(x.Value, '\''))
		} else {
			// An unknown escape such as '\q' decodes to two characters.
			f.print("'", x.Value, "'")
		}

	case *Dict:
		header := f.header
		f.header = false
		if header {
			f.print("(")
		}
		f.print("{")
		for i, kv := range x.Items {
			if i > 0 {
				f.print(", ")
			}
			f.expr(kv.Key, levelLowest)
			f.print(": ")
			f.expr(kv.Value, levelLowest)
		}
		f.print("}")
		if header {
			f.print(")")
		}
		f.header = header

	case *List:
		f.sequence("[", x.Items, "]")

	case *Tuple:
		if len(x.Items) == 1 {
			f.sequence("(", x.Items, ",)")
		} else {
			f.sequence("(", x.Items, ")")
		}

	default:
		panic(fmt.Sprintf("syntax: cannot format %T", x))
	}
}

func (f *formatter) sequence(open string, items []Expr, close string) {
	header := f.header
	f.header = false
	f.print(open)
	for i, x := range items {
		if i > 0 {
			f.print(", ")
		}
		f.expr(x, levelLowest)
	}
	f.print(close)
	f.header = header
}

// quote returns s as a literal delimited by q, escaping control characters,
// backslashes and the delimiter.
func quote(s string, q byte) string {
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case q, '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte(q)
	return b.String()
}
