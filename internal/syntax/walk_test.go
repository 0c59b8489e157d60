package syntax

import (
	"fmt"
	"strings"
	"testing"
)

func nodeKinds(root Node, prune func(Node) bool) []string {
	var kinds []string
	Walk(root, func(n Node) bool {
		kinds = append(kinds, strings.TrimPrefix(fmt.Sprintf("%T", n), "*syntax."))
		return prune == nil || !prune(n)
	})
	return kinds
}

func TestWalkOrder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "function",
			src:  "def f(a :int = 1) -> :list[:int] { return [a] }",
			want: []string{
				"Module", "FunctionDeclaration", "Namespace",
				"DefaultArg", "TypeHint", "Int",
				"TypeHint", "TypeHint",
				"Return", "List", "Namespace",
			},
		},
		{
			name: "if",
			src:  "if a < b < c { x = f(1, k = 2) } else { pass }",
			want: []string{
				"Module", "IfStatement",
				"MultiComparison", "Comparison", "Namespace", "Namespace", "Comparison", "Namespace", "Namespace",
				"VariableDeclaration", "Namespace", "Call", "Namespace", "Int", "Int",
				"Pass",
			},
		},
		{
			name: "loops",
			src:  "while not x { for i in [1, (2,)] {} }",
			want: []string{
				"Module", "WhileLoop", "Operation", "Namespace",
				"ForLoop", "Namespace", "List", "Int", "Tuple", "Int",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nodeKinds(mustParse(t, tt.src), nil)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("visited\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func TestWalkPrune(t *testing.T) {
	m := mustParse(t, "def f(a :int) { return a }\nx = 1")
	got := nodeKinds(m, func(n Node) bool {
		_, ok := n.(*FunctionDeclaration)
		return ok
	})
	want := []string{"Module", "FunctionDeclaration", "VariableDeclaration", "Namespace", "Int"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("visited %v, want %v", got, want)
	}
}

func TestInspectNames(t *testing.T) {
	m := mustParse(t, "total = 0\nfor n in nums { total = total + n }")

	var loads, stores []string
	Inspect(m, func(n Node) bool {
		if ns, ok := n.(*Namespace); ok {
			if ns.Ctx == Store {
				stores = append(stores, ns.Name)
			} else {
				loads = append(loads, ns.Name)
			}
		}
		return true
	})

	if got := strings.Join(stores, ","); got != "total,n,total" {
		t.Errorf("stores = %s", got)
	}
	if got := strings.Join(loads, ","); got != "nums,total,n" {
		t.Errorf("loads = %s", got)
	}
}

func TestWalkNil(t *testing.T) {
	called := false
	Walk(nil, func(Node) bool {
		called = true
		return true
	})
	if called {
		t.Error("visitor called for nil node")
	}
}
