package syntax

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ignorePos drops the unexported position of every node type.
var ignorePos = cmpopts.IgnoreUnexported(
	Module{},
	IfStatement{}, WhileLoop{}, ForLoop{},
	FunctionDeclaration{}, VariableDeclaration{}, Return{}, Pass{},
	Namespace{}, Operation{}, Comparison{}, MultiComparison{}, Call{},
	Int{}, Float{}, Double{}, String{}, Char{}, Bool{}, Null{},
	Dict{}, List{}, Tuple{},
	TypeHint{}, Arg{}, DefaultArg{},
)

// Equal reports whether two trees are structurally equal. Comparison is
// deep and order-sensitive; positions are ignored, and a nil slice differs
// from an empty one.
func Equal(x, y Node) bool {
	return cmp.Equal(x, y, ignorePos)
}

// Diff returns a human-readable report of the differences between two
// trees, or "" if they are equal.
func Diff(x, y Node) string {
	return cmp.Diff(x, y, ignorePos)
}
