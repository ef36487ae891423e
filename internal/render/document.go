// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type (
	// object is a JSON/YAML mapping that keeps its field order.
	// Values are string, []string or object.
	object []field

	field struct {
		key   string
		value any
	}
)

func (o *object) set(key string, value any) {
	*o = append(*o, field{key: key, value: value})
}

// MarshalJSON writes the fields in order.
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(&buf, f.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(&buf, f.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends '\n'
	return nil
}

func encode(w io.Writer, doc object, format Format, indent int) error {
	switch format {
	case FormatYAML:
		return encodeYAML(w, doc, indent)
	case FormatTOML:
		return encodeTOML(w, doc, indent)
	default:
		return encodeJSON(w, doc, indent)
	}
}

func encodeJSON(w io.Writer, doc object, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	return enc.Encode(doc)
}

func encodeYAML(w io.Writer, doc object, indent int) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(max(indent, 2))
	if err := enc.Encode(yamlNode(doc)); err != nil {
		return err
	}
	return enc.Close()
}

func yamlNode(v any) *yaml.Node {
	switch v := v.(type) {
	case object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v {
			n.Content = append(n.Content, yamlScalar(f.key), yamlNode(f.value))
		}
		return n
	case []string:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(v) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, s := range v {
			n.Content = append(n.Content, yamlScalar(s))
		}
		return n
	case string:
		return yamlScalar(v)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// yamlScalar tags every value as a string so "80" or "yes" round-trip as text.
func yamlScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func encodeTOML(w io.Writer, doc object, indent int) error {
	enc := toml.NewEncoder(w)
	if indent > 0 {
		enc.SetIndentTables(true)
		enc.SetIndentSymbol(strings.Repeat(" ", indent))
	}
	return enc.Encode(plain(doc))
}

// plain converts an object into nested maps for encoders without ordering.
func plain(v any) any {
	switch v := v.(type) {
	case object:
		m := make(map[string]any, len(v))
		for _, f := range v {
			m[f.key] = plain(f.value)
		}
		return m
	default:
		return v
	}
}
