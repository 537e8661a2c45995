// Package mapping describes index layout: shard count and per-field types.
package mapping

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Type is the engine field type.
type Type string

// Supported field types.
const (
	Text    Type = "text"
	Keyword Type = "keyword"
	Long    Type = "long"
	Integer Type = "integer"
	Short   Type = "short"
	Float   Type = "float"
	Double  Type = "double"
	Date    Type = "date"
	Boolean Type = "boolean"
	Object  Type = "object"
	Nested  Type = "nested"
)

// KeywordIgnoreAbove is the default length cap for keyword sub-fields.
const KeywordIgnoreAbove = 256

// MaxIndexNameLength is the engine limit on index names in bytes.
const MaxIndexNameLength = 255

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	switch t {
	case Text, Keyword, Long, Integer, Short, Float, Double, Date, Boolean, Object, Nested:
		return true
	}
	return false
}

// IsNumeric reports whether the type stores numbers.
func (t Type) IsNumeric() bool {
	switch t {
	case Long, Integer, Short, Float, Double:
		return true
	}
	return false
}

// SubField is an alternative indexing of the parent value (multi-field).
type SubField struct {
	Name        string
	Type        Type
	IgnoreAbove int
}

// Field describes one mapped field. Properties apply to object and nested types.
type Field struct {
	Name       string
	Type       Type
	SubFields  []SubField
	Properties []Field
}

// TextWithKeyword returns a text field with a keyword sub-field for exact matching.
func TextWithKeyword(name string) Field {
	return Field{
		Name: name,
		Type: Text,
		SubFields: []SubField{
			{Name: "keyword", Type: Keyword, IgnoreAbove: KeywordIgnoreAbove},
		},
	}
}

// Descriptor is an index's shard count and field mapping.
type Descriptor struct {
	Shards int
	Fields []Field
}

// Validate checks names, types and nesting rules.
func (d *Descriptor) Validate() error {
	if d.Shards < 0 {
		return fmt.Errorf("shards must be >= 0, got %d", d.Shards)
	}
	return validateFields("", d.Fields)
}

func validateFields(prefix string, fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		path := prefix + f.Name
		if f.Name == "" {
			return fmt.Errorf("field name is required (under %q)", strings.TrimSuffix(prefix, "."))
		}
		if strings.Contains(f.Name, ".") {
			return fmt.Errorf("field name %q must not contain '.'; use properties", path)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name: %s", path)
		}
		seen[f.Name] = true

		if !f.Type.IsValid() {
			return fmt.Errorf("invalid field type %q for %q", f.Type, path)
		}
		isContainer := f.Type == Object || f.Type == Nested
		if !isContainer && len(f.Properties) > 0 {
			return fmt.Errorf("field %q of type %s cannot have properties", path, f.Type)
		}
		if isContainer && len(f.SubFields) > 0 {
			return fmt.Errorf("field %q of type %s cannot have sub-fields", path, f.Type)
		}
		if err := validateSubFields(path, f.SubFields); err != nil {
			return err
		}
		if err := validateFields(path+".", f.Properties); err != nil {
			return err
		}
	}
	return nil
}

func validateSubFields(path string, subs []SubField) error {
	seen := make(map[string]bool, len(subs))
	for _, s := range subs {
		if s.Name == "" {
			return fmt.Errorf("sub-field name is required for %q", path)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate sub-field %s.%s", path, s.Name)
		}
		seen[s.Name] = true
		if !s.Type.IsValid() || s.Type == Object || s.Type == Nested {
			return fmt.Errorf("invalid sub-field type %q for %s.%s", s.Type, path, s.Name)
		}
		if s.IgnoreAbove < 0 {
			return fmt.Errorf("ignore_above must be >= 0 for %s.%s", path, s.Name)
		}
	}
	return nil
}

// ValidateIndexName applies the engine's index naming rules.
func ValidateIndexName(name string) error {
	if name == "" {
		return fmt.Errorf("index name is required")
	}
	if len(name) > MaxIndexNameLength {
		return fmt.Errorf("index name too long (max %d bytes)", MaxIndexNameLength)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("index name %q is not allowed", name)
	}
	if strings.ContainsAny(name[:1], "-_+") {
		return fmt.Errorf("index name must not start with '-', '_' or '+'")
	}
	if strings.ToLower(name) != name {
		return fmt.Errorf("index name must be lowercase")
	}
	if strings.ContainsAny(name, `\/*?"<>| ,#:`) {
		return fmt.Errorf("index name %q contains a forbidden character", name)
	}
	return nil
}

// MappingBody returns the engine mapping object: {"properties": {...}}.
func (d *Descriptor) MappingBody() map[string]any {
	return map[string]any{"properties": propertiesBody(d.Fields)}
}

// CreateBody returns the index creation body with settings and, when fields
// are present, mappings.
func (d *Descriptor) CreateBody() map[string]any {
	body := map[string]any{}
	if d.Shards > 0 {
		body["settings"] = map[string]any{
			"index": map[string]any{"number_of_shards": d.Shards},
		}
	}
	if len(d.Fields) > 0 {
		body["mappings"] = d.MappingBody()
	}
	return body
}

func propertiesBody(fields []Field) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		def := map[string]any{}
		if f.Type != Object {
			def["type"] = string(f.Type)
		}
		if len(f.SubFields) > 0 {
			subs := make(map[string]any, len(f.SubFields))
			for _, s := range f.SubFields {
				sub := map[string]any{"type": string(s.Type)}
				if s.IgnoreAbove > 0 {
					sub["ignore_above"] = s.IgnoreAbove
				}
				subs[s.Name] = sub
			}
			def["fields"] = subs
		}
		if len(f.Properties) > 0 {
			def["properties"] = propertiesBody(f.Properties)
		}
		props[f.Name] = def
	}
	return props
}

// engine wire shape of a property definition
type propertyDef struct {
	Type        string                 `json:"type"`
	IgnoreAbove int                    `json:"ignore_above"`
	Fields      map[string]propertyDef `json:"fields"`
	Properties  map[string]propertyDef `json:"properties"`
}

// Parse reads an engine mapping object ({"properties": {...}}).
// Fields are sorted by name since the engine does not preserve order.
func Parse(raw []byte) (Descriptor, error) {
	if len(raw) == 0 {
		return Descriptor{}, nil
	}
	var m struct {
		Properties map[string]propertyDef `json:"properties"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return Descriptor{}, fmt.Errorf("parse mapping: %w", err)
	}
	return Descriptor{Fields: fieldsFromDefs(m.Properties)}, nil
}

func fieldsFromDefs(defs map[string]propertyDef) []Field {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		def := defs[name]
		f := Field{Name: name, Type: Type(def.Type)}
		if f.Type == "" {
			f.Type = Object
		}
		if len(def.Fields) > 0 {
			subNames := make([]string, 0, len(def.Fields))
			for sn := range def.Fields {
				subNames = append(subNames, sn)
			}
			sort.Strings(subNames)
			for _, sn := range subNames {
				sd := def.Fields[sn]
				f.SubFields = append(f.SubFields, SubField{Name: sn, Type: Type(sd.Type), IgnoreAbove: sd.IgnoreAbove})
			}
		}
		if len(def.Properties) > 0 {
			f.Properties = fieldsFromDefs(def.Properties)
		}
		fields = append(fields, f)
	}
	return fields
}

// Lookup finds a field by dotted path.
func (d *Descriptor) Lookup(path string) (Field, bool) {
	fields := d.Fields
	parts := strings.Split(path, ".")
	for i, p := range parts {
		f, ok := find(fields, p)
		if !ok {
			return Field{}, false
		}
		if i == len(parts)-1 {
			return f, true
		}
		fields = f.Properties
	}
	return Field{}, false
}

func find(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
