package syntax

import (
	"io"

	"gopkg.in/yaml.v3"
)

// FprintYAML writes a YAML representation of the AST to w. It carries the
// same fields as FprintJSON.
func FprintYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toJSON(node)); err != nil {
		return err
	}
	return enc.Close()
}
