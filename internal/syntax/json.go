package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

// toJSON converts node into maps and slices. The result carries every field
// of the tree, so it is also what FprintYAML encodes.
func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Module:
		return map[string]interface{}{
			"type": "Module",
			"pos":  n.pos.String(),
			"body": mapSlice(n.Body, toJSON),
		}

	case *IfStatement:
		conds := make([]interface{}, len(n.Conditionals))
		for i, c := range n.Conditionals {
			conds[i] = map[string]interface{}{
				"cond": toJSON(c.Cond),
				"body": mapSlice(c.Body, toJSON),
			}
		}
		m := map[string]interface{}{
			"type":         "IfStatement",
			"pos":          n.pos.String(),
			"conditionals": conds,
		}
		if n.Default != nil {
			m["default"] = mapSlice(n.Default, toJSON)
		}
		return m

	case *WhileLoop:
		return map[string]interface{}{
			"type": "WhileLoop",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"body": mapSlice(n.Body, toJSON),
		}

	case *ForLoop:
		return map[string]interface{}{
			"type":   "ForLoop",
			"pos":    n.pos.String(),
			"target": toJSON(n.Target),
			"iter":   toJSON(n.Iter),
			"body":   mapSlice(n.Body, toJSON),
		}

	case *FunctionDeclaration:
		return map[string]interface{}{
			"type":     "FunctionDeclaration",
			"pos":      n.pos.String(),
			"target":   toJSON(n.Target),
			"args":     mapSlice(n.Args, func(a *Arg) interface{} { return toJSON(a) }),
			"defaults": mapSlice(n.Defaults, func(a *DefaultArg) interface{} { return toJSON(a) }),
			"returns":  hintJSON(n.Returns),
			"body":     mapSlice(n.Body, toJSON),
		}

	case *VariableDeclaration:
		m := map[string]interface{}{
			"type":   "VariableDeclaration",
			"pos":    n.pos.String(),
			"target": toJSON(n.Target),
			"value":  toJSON(n.Value),
		}
		if n.Annotation != nil {
			m["annotation"] = hintJSON(n.Annotation)
		}
		return m

	case *Return:
		m := map[string]interface{}{
			"type": "Return",
			"pos":  n.pos.String(),
		}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
		return m

	case *Pass:
		return map[string]interface{}{
			"type": "Pass",
			"pos":  n.pos.String(),
		}

	case *Namespace:
		return map[string]interface{}{
			"type": "Namespace",
			"pos":  n.pos.String(),
			"name": n.Name,
			"ctx":  n.Ctx.String(),
		}

	case *Operation:
		m := map[string]interface{}{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op,
			"x":    toJSON(n.X),
		}
		if n.Y != nil {
			m["y"] = toJSON(n.Y)
		}
		return m

	case *Comparison:
		return map[string]interface{}{
			"type": "Comparison",
			"pos":  n.pos.String(),
			"op":   n.Op,
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *MultiComparison:
		return map[string]interface{}{
			"type":        "MultiComparison",
			"pos":         n.pos.String(),
			"comparisons": mapSlice(n.Comparisons, func(c *Comparison) interface{} { return toJSON(c) }),
		}

	case *Call:
		kws := make([]interface{}, len(n.Keywords))
		for i, k := range n.Keywords {
			kws[i] = map[string]interface{}{
				"name":  k.Name,
				"value": toJSON(k.Value),
			}
		}
		return map[string]interface{}{
			"type":     "Call",
			"pos":      n.pos.String(),
			"target":   toJSON(n.Target),
			"args":     exprSlice(n.Args),
			"keywords": kws,
		}

	case *Int:
		return literal("Int", n.pos, n.Value)
	case *Float:
		return literal("Float", n.pos, n.Value)
	case *Double:
		return literal("Double", n.pos, n.Value)
	case *String:
		return literal("String", n.pos, n.Value)
	case *Char:
		return literal("Char", n.pos, n.Value)
	case *Bool:
		return literal("Bool", n.pos, n.Value)

	case *Null:
		return map[string]interface{}{
			"type": "Null",
			"pos":  n.pos.String(),
		}

	case *Dict:
		items := make([]interface{}, len(n.Items))
		for i, kv := range n.Items {
			items[i] = map[string]interface{}{
				"key":   toJSON(kv.Key),
				"value": toJSON(kv.Value),
			}
		}
		return map[string]interface{}{
			"type":  "Dict",
			"pos":   n.pos.String(),
			"items": items,
		}

	case *List:
		return map[string]interface{}{
			"type":  "List",
			"pos":   n.pos.String(),
			"items": exprSlice(n.Items),
		}

	case *Tuple:
		return map[string]interface{}{
			"type":  "Tuple",
			"pos":   n.pos.String(),
			"items": exprSlice(n.Items),
		}

	case *TypeHint:
		return hintJSON(n)

	case *Arg:
		return map[string]interface{}{
			"type":       "Arg",
			"pos":        n.pos.String(),
			"name":       n.Name,
			"annotation": hintJSON(n.Annotation),
		}

	case *DefaultArg:
		return map[string]interface{}{
			"type":       "DefaultArg",
			"pos":        n.pos.String(),
			"name":       n.Name,
			"annotation": hintJSON(n.Annotation),
			"value":      toJSON(n.Value),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func literal(kind string, pos Pos, value string) interface{} {
	return map[string]interface{}{
		"type":  kind,
		"pos":   pos.String(),
		"value": value,
	}
}

// hintJSON converts a type hint; structure is present only when the hint
// has brackets.
func hintJSON(t *TypeHint) interface{} {
	if t == nil {
		return nil
	}
	m := map[string]interface{}{
		"type": "TypeHint",
		"pos":  t.pos.String(),
		"name": t.Name,
	}
	if t.Structure != nil {
		m["structure"] = mapSlice(t.Structure, hintJSON)
	}
	return m
}

// mapSlice converts s element-wise. It returns an empty, non-nil slice for
// an empty s so that empty sequences encode as [] rather than null.
func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

func exprSlice(s []Expr) []interface{} {
	return mapSlice(s, func(x Expr) interface{} { return toJSON(x) })
}
