package generate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ava12/earley/compiler"
)

// JSON renders compiled rule table as indented JSON readable by grammar.ParseTableJSON.
// Export name and body code are not used.
type JSON struct{}

func (JSON) Render(c *compiler.Compiler, _ string) ([]byte, error) {
	res, e := json.MarshalIndent(c.Table(), "", "  ")
	if e != nil {
		return nil, encodeError("JSON", e)
	}
	return append(res, '\n'), nil
}

// YAML renders compiled rule table as YAML document readable by grammar.ParseTableYAML.
// Export name is written to the header comment.
type YAML struct{}

func (YAML) Render(c *compiler.Compiler, exportName string) ([]byte, error) {
	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, "# Generated with earley %s: %s\n", c.Version, exportName)

	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	e := encoder.Encode(c.Table())
	if e == nil {
		e = encoder.Close()
	}
	if e != nil {
		return nil, encodeError("YAML", e)
	}
	return buffer.Bytes(), nil
}
