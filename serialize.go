package rsmeta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the rendered form of a Schema. Field order is the key order of
// the output.
type Document struct {
	Structs   []Struct    `json:"structs" yaml:"structs"`
	Enums     []Enum      `json:"enums" yaml:"enums"`
	Traits    []Trait     `json:"traits" yaml:"traits"`
	Functions []Function  `json:"functions" yaml:"functions"`
	Impls     []Impl      `json:"impls" yaml:"impls"`
	Modules   []Module    `json:"modules" yaml:"modules"`
	Uses      []string    `json:"uses" yaml:"uses"`
	Constants []Constant  `json:"constants" yaml:"constants"`
	Types     []TypeAlias `json:"types" yaml:"types"`
	Parser    string      `json:"parser" yaml:"parser"`
	Version   string      `json:"version" yaml:"version"`
	Success   bool        `json:"success" yaml:"success"`
}

// NewDocument wraps s for rendering. Nil collections, nested ones included,
// become empty so they render as [] rather than null. s is not modified.
func NewDocument(s *Schema, parser string) Document {
	if s == nil {
		s = NewSchema()
	}
	doc := Document{
		Structs:   make([]Struct, len(s.Structs)),
		Enums:     make([]Enum, len(s.Enums)),
		Traits:    make([]Trait, len(s.Traits)),
		Functions: make([]Function, len(s.Functions)),
		Impls:     make([]Impl, len(s.Impls)),
		Modules:   orEmpty(s.Modules),
		Uses:      orEmpty(s.Uses),
		Constants: orEmpty(s.Constants),
		Types:     orEmpty(s.Types),
		Parser:    parser,
		Version:   SchemaVersion,
		Success:   true,
	}
	for i, st := range s.Structs {
		st.Generics = orEmpty(st.Generics)
		st.Fields = orEmpty(st.Fields)
		st.Derives = orEmpty(st.Derives)
		doc.Structs[i] = st
	}
	for i, en := range s.Enums {
		en.Generics = orEmpty(en.Generics)
		en.Variants = orEmpty(en.Variants)
		en.Derives = orEmpty(en.Derives)
		doc.Enums[i] = en
	}
	for i, tr := range s.Traits {
		tr.Generics = orEmpty(tr.Generics)
		tr.Methods = orEmpty(tr.Methods)
		doc.Traits[i] = tr
	}
	for i, fn := range s.Functions {
		fn.Generics = orEmpty(fn.Generics)
		fn.Parameters = orEmpty(fn.Parameters)
		doc.Functions[i] = fn
	}
	for i, im := range s.Impls {
		im.Methods = orEmpty(im.Methods)
		doc.Impls[i] = im
	}
	return doc
}

func orEmpty[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

type encodeConfig struct {
	indent bool
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

// EncodeIndent switches to two-space indented output. Keys and values are
// unchanged.
func EncodeIndent(on bool) EncodeOption {
	return func(c *encodeConfig) {
		c.indent = on
	}
}

// Encode writes the JSON document for s, followed by a newline. HTML
// escaping is off so type text such as Vec<&str> stays readable.
func Encode(w io.Writer, s *Schema, parser string, opts ...EncodeOption) error {
	var cfg encodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if cfg.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(NewDocument(s, parser)); err != nil {
		return fmt.Errorf("rsmeta: encode document: %w", err)
	}
	return nil
}

// Marshal returns the compact JSON document for s without a trailing
// newline. The same Schema always yields the same bytes.
func Marshal(s *Schema, parser string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s, parser); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// EncodeYAML writes the document for s as YAML, with the same key order and
// optional-field omission as the JSON form.
func EncodeYAML(w io.Writer, s *Schema, parser string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(s, parser)); err != nil {
		return fmt.Errorf("rsmeta: encode yaml: %w", err)
	}
	return enc.Close()
}

// DocumentMap returns the JSON document for s decoded into generic values,
// which is exactly what a consumer parsing the output would see.
func DocumentMap(s *Schema, parser string) (map[string]any, error) {
	data, err := Marshal(s, parser)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("rsmeta: decode document: %w", err)
	}
	return m, nil
}

type errorDocument struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// ErrorDocument renders {"error":msg,"success":false} with a trailing
// newline.
func ErrorDocument(msg string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// A struct of a string and a bool always encodes.
	_ = enc.Encode(errorDocument{Error: msg})
	return buf.Bytes()
}
