package syntax

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func decodeJSON(t *testing.T, node Node) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	if err := FprintJSON(&buf, node); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	return m
}

// path follows keys and indexes through decoded JSON.
func path(t *testing.T, v interface{}, steps ...interface{}) interface{} {
	t.Helper()
	for _, s := range steps {
		switch s := s.(type) {
		case string:
			m, ok := v.(map[string]interface{})
			if !ok {
				t.Fatalf("step %q: %T is not an object", s, v)
			}
			v = m[s]
		case int:
			l, ok := v.([]interface{})
			if !ok || s >= len(l) {
				t.Fatalf("step %d: %v is not an array that long", s, v)
			}
			v = l[s]
		}
	}
	return v
}

func TestFprintJSON(t *testing.T) {
	m := decodeJSON(t, mustParse(t, "x :list[:int] = [-1, f(a, k = 2)]"))

	tests := []struct {
		name  string
		steps []interface{}
		want  interface{}
	}{
		{"module", []interface{}{"type"}, "Module"},
		{"decl", []interface{}{"body", 0, "type"}, "VariableDeclaration"},
		{"decl_pos", []interface{}{"body", 0, "pos"}, "1:1"},
		{"target_ctx", []interface{}{"body", 0, "target", "ctx"}, "store"},
		{"annotation", []interface{}{"body", 0, "annotation", "name"}, "list"},
		{"structure", []interface{}{"body", 0, "annotation", "structure", 0, "name"}, "int"},
		{"unary_op", []interface{}{"body", 0, "value", "items", 0, "op"}, "-"},
		{"unary_x", []interface{}{"body", 0, "value", "items", 0, "x", "value"}, "1"},
		{"call_arg", []interface{}{"body", 0, "value", "items", 1, "args", 0, "name"}, "a"},
		{"call_arg_ctx", []interface{}{"body", 0, "value", "items", 1, "args", 0, "ctx"}, "load"},
		{"keyword", []interface{}{"body", 0, "value", "items", 1, "keywords", 0, "name"}, "k"},
		{"keyword_value", []interface{}{"body", 0, "value", "items", 1, "keywords", 0, "value", "type"}, "Int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := path(t, m, tt.steps...); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	// Optional fields are omitted rather than null.
	un := path(t, m, "body", 0, "value", "items", 0).(map[string]interface{})
	if _, ok := un["y"]; ok {
		t.Error("unary operation has a y field")
	}
	leaf := path(t, m, "body", 0, "annotation", "structure", 0).(map[string]interface{})
	if _, ok := leaf["structure"]; ok {
		t.Error("bare type hint has a structure field")
	}
}

func TestFprintJSONEmptyAndAbsent(t *testing.T) {
	tests := []struct {
		src        string
		hasDefault bool
	}{
		{"if a {}", false},
		{"if a {} else {}", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			m := decodeJSON(t, mustParse(t, tt.src))
			ifs := path(t, m, "body", 0).(map[string]interface{})

			def, ok := ifs["default"]
			if ok != tt.hasDefault {
				t.Fatalf("default present = %v, want %v", ok, tt.hasDefault)
			}
			if ok {
				if l, isList := def.([]interface{}); !isList || len(l) != 0 {
					t.Errorf("default = %#v, want []", def)
				}
			}
			body := path(t, ifs, "conditionals", 0, "body")
			if l, isList := body.([]interface{}); !isList || len(l) != 0 {
				t.Errorf("body = %#v, want []", body)
			}
		})
	}
}

func TestFprintYAMLMatchesJSON(t *testing.T) {
	srcs := []string{
		"x = 1",
		`def f(a :int, b :str = "x") -> :bool { return True }`,
		"if 0 < x <= 10 { pass } elif y { return } else { z(k = null) }",
		"for i in [(1,), {}, 'c'] { print(i) }",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			m := mustParse(t, src)
			want := decodeJSON(t, m)

			var buf bytes.Buffer
			if err := FprintYAML(&buf, m); err != nil {
				t.Fatalf("FprintYAML: %v", err)
			}
			var got map[string]interface{}
			if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("YAML and JSON disagree (-json +yaml):\n%s", diff)
			}
		})
	}
}
