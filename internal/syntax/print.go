package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints "label:" followed by node one level deeper.
func (p *printer) field(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

// body prints "label:" followed by each item one level deeper.
func (p *printer) body(label string, list []Node) {
	p.printf("%s:\n", label)
	p.indent++
	for _, n := range list {
		p.print(n)
	}
	p.indent--
}

func (p *printer) exprs(label string, list []Expr) {
	p.printf("%s:\n", label)
	p.indent++
	for _, x := range list {
		p.print(x)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Module:
		p.printf("Module %s\n", n.pos)
		p.indent++
		for _, item := range n.Body {
			p.print(item)
		}
		p.indent--

	case *IfStatement:
		p.printf("IfStatement %s\n", n.pos)
		p.indent++
		for i, c := range n.Conditionals {
			p.printf("Conditional %d:\n", i)
			p.indent++
			p.field("Cond", c.Cond)
			p.body("Body", c.Body)
			p.indent--
		}
		if n.Default != nil {
			p.body("Default", n.Default)
		}
		p.indent--

	case *WhileLoop:
		p.printf("WhileLoop %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.body("Body", n.Body)
		p.indent--

	case *ForLoop:
		p.printf("ForLoop %s\n", n.pos)
		p.indent++
		p.field("Target", n.Target)
		p.field("Iter", n.Iter)
		p.body("Body", n.Body)
		p.indent--

	case *FunctionDeclaration:
		p.printf("FunctionDeclaration %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Target.Name)
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		if len(n.Defaults) > 0 {
			p.printf("Defaults:\n")
			p.indent++
			for _, a := range n.Defaults {
				p.print(a)
			}
			p.indent--
		}
		p.printf("Returns: %s\n", hintString(n.Returns))
		p.body("Body", n.Body)
		p.indent--

	case *VariableDeclaration:
		p.printf("VariableDeclaration %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Target.Name)
		if n.Annotation != nil {
			p.printf("Annotation: %s\n", hintString(n.Annotation))
		}
		p.field("Value", n.Value)
		p.indent--

	case *Return:
		p.printf("Return %s\n", n.pos)
		if n.Value != nil {
			p.indent++
			p.print(n.Value)
			p.indent--
		}

	case *Pass:
		p.printf("Pass %s\n", n.pos)

	case *Namespace:
		p.printf("Namespace %s %s (%s)\n", n.pos, n.Name, n.Ctx)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.field("X", n.X)
			p.field("Y", n.Y)
			p.indent--
		}

	case *Comparison:
		p.printf("Comparison %s %s\n", n.pos, n.Op)
		p.indent++
		p.field("X", n.X)
		p.field("Y", n.Y)
		p.indent--

	case *MultiComparison:
		p.printf("MultiComparison %s\n", n.pos)
		p.indent++
		for _, c := range n.Comparisons {
			p.print(c)
		}
		p.indent--

	case *Call:
		p.printf("Call %s\n", n.pos)
		p.indent++
		p.field("Target", n.Target)
		if len(n.Args) > 0 {
			p.exprs("Args", n.Args)
		}
		if len(n.Keywords) > 0 {
			p.printf("Keywords:\n")
			p.indent++
			for _, k := range n.Keywords {
				p.field(k.Name, k.Value)
			}
			p.indent--
		}
		p.indent--

	case *Int:
		p.printf("Int %s %s\n", n.pos, n.Value)

	case *Float:
		p.printf("Float %s %s\n", n.pos, n.Value)

	case *Double:
		p.printf("Double %s %s\n", n.pos, n.Value)

	case *String:
		p.printf("String %s %s\n", n.pos, strconv.Quote(n.Value))

	case *Char:
		p.printf("Char %s %s\n", n.pos, strconv.Quote(n.Value))

	case *Bool:
		p.printf("Bool %s %s\n", n.pos, n.Value)

	case *Null:
		p.printf("Null %s\n", n.pos)

	case *Dict:
		p.printf("Dict %s\n", n.pos)
		p.indent++
		for _, kv := range n.Items {
			p.printf("Item:\n")
			p.indent++
			p.field("Key", kv.Key)
			p.field("Value", kv.Value)
			p.indent--
		}
		p.indent--

	case *List:
		p.printf("List %s\n", n.pos)
		p.indent++
		for _, x := range n.Items {
			p.print(x)
		}
		p.indent--

	case *Tuple:
		p.printf("Tuple %s\n", n.pos)
		p.indent++
		for _, x := range n.Items {
			p.print(x)
		}
		p.indent--

	case *TypeHint:
		p.printf("TypeHint %s %s\n", n.pos, hintString(n))

	case *Arg:
		p.printf("Arg %s %s %s\n", n.pos, n.Name, hintString(n.Annotation))

	case *DefaultArg:
		p.printf("DefaultArg %s %s %s\n", n.pos, n.Name, hintString(n.Annotation))
		p.indent++
		p.print(n.Value)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// hintString returns the source form of a type hint: :name or :name[...].
func hintString(t *TypeHint) string {
	if t == nil {
		return "<nil>"
	}
	if t.Structure == nil {
		return ":" + t.Name
	}
	parts := make([]string, len(t.Structure))
	for i, s := range t.Structure {
		parts[i] = hintString(s)
	}
	return ":" + t.Name + "[" + strings.Join(parts, ", ") + "]"
}
