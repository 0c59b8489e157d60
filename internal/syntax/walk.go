package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Module:
		walkList(n.Body, v)

	case *IfStatement:
		for _, c := range n.Conditionals {
			Walk(c.Cond, v)
			walkList(c.Body, v)
		}
		walkList(n.Default, v)

	case *WhileLoop:
		Walk(n.Cond, v)
		walkList(n.Body, v)

	case *ForLoop:
		Walk(n.Target, v)
		Walk(n.Iter, v)
		walkList(n.Body, v)

	case *FunctionDeclaration:
		Walk(n.Target, v)
		for _, a := range n.Args {
			Walk(a, v)
		}
		for _, a := range n.Defaults {
			Walk(a, v)
		}
		if n.Returns != nil {
			Walk(n.Returns, v)
		}
		walkList(n.Body, v)

	case *VariableDeclaration:
		Walk(n.Target, v)
		if n.Annotation != nil {
			Walk(n.Annotation, v)
		}
		Walk(n.Value, v)

	case *Return:
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *Comparison:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *MultiComparison:
		for _, c := range n.Comparisons {
			Walk(c, v)
		}

	case *Call:
		Walk(n.Target, v)
		for _, a := range n.Args {
			Walk(a, v)
		}
		for _, k := range n.Keywords {
			Walk(k.Value, v)
		}

	case *Dict:
		for _, kv := range n.Items {
			Walk(kv.Key, v)
			Walk(kv.Value, v)
		}

	case *List:
		for _, x := range n.Items {
			Walk(x, v)
		}

	case *Tuple:
		for _, x := range n.Items {
			Walk(x, v)
		}

	case *TypeHint:
		for _, t := range n.Structure {
			Walk(t, v)
		}

	case *Arg:
		if n.Annotation != nil {
			Walk(n.Annotation, v)
		}

	case *DefaultArg:
		if n.Annotation != nil {
			Walk(n.Annotation, v)
		}
		Walk(n.Value, v)

		// Leaf nodes: Pass, Namespace and the scalar literals
		// No children to visit
	}
}

func walkList(list []Node, v Visitor) {
	for _, n := range list {
		Walk(n, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
