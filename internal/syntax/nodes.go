// Package syntax implements lexical and syntactic analysis for the Starla
// scripting language.
package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 main classes of nodes: Expressions and Statements. All nodes
// implement the Node interface. A Module body holds both kinds in source order.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Module

// Module is the root of every parse: the top-level items in source order.
type Module struct {
	node
	Body []Node // each item is a Stmt or an Expr
}

// ----------------------------------------------------------------------------
// Statements

// IfStatement represents if cond { } elif cond { } ... else { }.
type IfStatement struct {
	stmt
	Conditionals []Conditional // one per if/elif, at least one
	Default      []Node        // else body (nil if there is no else)
}

// Conditional is one guarded branch of an IfStatement.
type Conditional struct {
	Cond Expr
	Body []Node
}

// WhileLoop represents while cond { body }.
type WhileLoop struct {
	stmt
	Cond Expr
	Body []Node
}

// ForLoop represents for target in iter { body }.
type ForLoop struct {
	stmt
	Target *Namespace // always in Store context
	Iter   Expr
	Body   []Node
}

// FunctionDeclaration represents
// def name(args, defaults) -> :type { body }.
type FunctionDeclaration struct {
	stmt
	Target   *Namespace    // function name, Store context
	Args     []*Arg        // positional parameters
	Defaults []*DefaultArg // default-valued parameters, after Args
	Returns  *TypeHint     // return type, :null when omitted
	Body     []Node
}

// VariableDeclaration represents name [:type] = value.
type VariableDeclaration struct {
	stmt
	Target     *Namespace // Store context
	Annotation *TypeHint  // nil if not annotated
	Value      Expr
}

// Return represents return [value].
type Return struct {
	stmt
	Value Expr // nil for a bare return
}

// Pass represents the pass statement.
type Pass struct {
	stmt
}

// ----------------------------------------------------------------------------
// Expressions

// Context tells whether a name is read or written.
type Context uint8

const (
	Load Context = iota
	Store
)

func (c Context) String() string {
	if c == Store {
		return "store"
	}
	return "load"
}

// Namespace represents a name reference.
type Namespace struct {
	expr
	Name string
	Ctx  Context
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
type Operation struct {
	expr
	Op string // operator spelling: "+", "**", "||", "and", "not", ...
	X  Expr   // left operand (or only operand for unary)
	Y  Expr   // right operand (nil for unary)
}

// Comparison represents a single relational operation X Op Y.
type Comparison struct {
	expr
	Op string // "==", "!=", "<", "<=", ">", ">="
	X  Expr
	Y  Expr
}

// MultiComparison represents a chain a < b <= c. Consecutive entries share
// the middle operand: Comparisons[i].Y == Comparisons[i+1].X.
type MultiComparison struct {
	expr
	Comparisons []*Comparison // at least two
}

// Call represents target(args..., name = value...).
type Call struct {
	expr
	Target   Expr
	Args     []Expr    // positional arguments
	Keywords []Keyword // keyword arguments in source order
}

// Keyword is a name = value argument of a Call.
type Keyword struct {
	Name  string
	Value Expr
}

// ----------------------------------------------------------------------------
// Literals
//
// Scalar literals keep the source spelling in Value, except String and Char
// whose Value is the decoded text.

// Int represents an integer literal: 42.
type Int struct {
	expr
	Value string
}

// Float represents a fractional literal with a zero integer part: 0.5.
type Float struct {
	expr
	Value string
}

// Double represents any other fractional literal: 3.14.
type Double struct {
	expr
	Value string
}

// String represents a string literal, or several adjacent string and char
// literals merged together.
type String struct {
	expr
	Value string
}

// Char represents a lone character literal.
type Char struct {
	expr
	Value string
}

// Bool represents True or False.
type Bool struct {
	expr
	Value string
}

// Null represents null.
type Null struct {
	expr
}

// Dict represents {key: value, ...}.
type Dict struct {
	expr
	Items []KeyValue
}

// KeyValue is one entry of a Dict.
type KeyValue struct {
	Key   Expr
	Value Expr
}

// List represents [a, b, ...].
type List struct {
	expr
	Items []Expr
}

// Tuple represents (), (a,) or (a, b, ...).
type Tuple struct {
	expr
	Items []Expr
}

// ----------------------------------------------------------------------------
// Annotations

// TypeHint represents :name or :name[hint, ...].
type TypeHint struct {
	node
	Name      string
	Structure []*TypeHint // nil when the hint has no brackets
}

// Arg represents a positional parameter: name :type.
type Arg struct {
	node
	Name       string
	Annotation *TypeHint
}

// DefaultArg represents a parameter with a default value: name :type = value.
type DefaultArg struct {
	node
	Name       string
	Annotation *TypeHint
	Value      Expr
}
