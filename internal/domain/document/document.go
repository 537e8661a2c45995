package document

import (
	"bytes"
	"fmt"
)

// MaxIDLength is the engine's identifier limit in bytes.
const MaxIDLength = 512

// Version is the engine's optimistic concurrency token for a stored document.
type Version struct {
	SeqNo       int64
	PrimaryTerm int64
}

// Known reports whether the version came from the engine.
func (v Version) Known() bool { return v.PrimaryTerm > 0 }

// Document is a structured document: ordered fields addressed by an optional identifier.
// The body is not checked against any schema here; mapping checks happen at the index boundary.
type Document struct {
	id      string
	fields  []Field
	version Version
}

// New validates and creates a Document. An empty id lets the engine assign one.
func New(id string, fields []Field) (Document, error) {
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("document ID too long (max %d bytes)", MaxIDLength)
	}
	if id != "" && (id == "." || id == ".." || id[0] == '_') {
		return Document{}, fmt.Errorf("document ID %q is not allowed", id)
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return Document{}, fmt.Errorf("field name is required")
		}
		if seen[f.Name] {
			return Document{}, fmt.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true
	}

	return Document{id: id, fields: cloneFields(fields)}, nil
}

// FromJSON parses a JSON object body and creates a Document.
func FromJSON(id string, body []byte) (Document, error) {
	fields, err := ParseFields(body)
	if err != nil {
		return Document{}, err
	}
	return New(id, fields)
}

// Reconstruct creates a Document without validation (engine hydration).
func Reconstruct(id string, fields []Field, version Version) Document {
	return Document{id: id, fields: fields, version: version}
}

// ID returns the document identifier; empty when the engine has not assigned one yet.
func (d *Document) ID() string { return d.id }

// Fields returns the ordered top-level fields.
func (d *Document) Fields() []Field { return d.fields }

// Version returns the concurrency token of a stored document.
func (d *Document) Version() Version { return d.version }

// Get looks up a top-level field.
func (d *Document) Get(name string) (Value, bool) {
	for _, f := range d.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// WithID returns a copy carrying the given identifier.
func (d *Document) WithID(id string) Document {
	return Document{id: id, fields: d.fields, version: d.version}
}

// WithVersion returns a copy carrying the given concurrency token.
func (d *Document) WithVersion(v Version) Document {
	return Document{id: d.id, fields: d.fields, version: v}
}

// Body encodes the fields as a JSON object in their original order.
func (d *Document) Body() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeFields(&buf, d.fields); err != nil {
		return nil, fmt.Errorf("encode document %q: %w", d.id, err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes the document body.
func (d Document) MarshalJSON() ([]byte, error) {
	return d.Body()
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return []Field{}
	}
	c := make([]Field, len(fields))
	copy(c, fields)
	return c
}
