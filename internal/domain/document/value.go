package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// Kind tags the JSON type of a field value.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindDate
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// dateLayouts are tried in order when classifying string values.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Field is a named value inside a document or nested object.
type Field struct {
	Name  string
	Value Value
}

// Value is a tagged field value. Number values keep their JSON literal so
// integers beyond float64 precision round-trip unchanged.
type Value struct {
	kind   Kind
	text   string
	num    float64
	b      bool
	fields []Field
	items  []Value
}

// Null returns a null value.
func Null() Value { return Value{kind: KindNull} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date returns a date value serialized as RFC 3339.
func Date(t time.Time) Value {
	return Value{kind: KindDate, text: t.UTC().Format(time.RFC3339Nano)}
}

// Object returns a nested object value.
func Object(fields ...Field) Value { return Value{kind: KindObject, fields: fields} }

// Array returns an array value.
func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

// Kind returns the value tag.
func (v Value) Kind() Kind { return v.kind }

// Text returns the string form of text and date values.
func (v Value) Text() string { return v.text }

// Number returns the numeric value.
func (v Value) Number() float64 { return v.num }

// Bool returns the boolean value.
func (v Value) Bool() bool { return v.b }

// Fields returns the members of an object value.
func (v Value) Fields() []Field { return v.fields }

// Items returns the elements of an array value.
func (v Value) Items() []Value { return v.items }

// Time parses a date value.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return parseDate(v.text)
}

// MarshalJSON encodes the value preserving object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindText, KindDate:
		b, err := json.Marshal(v.text)
		if err != nil {
			return fmt.Errorf("encode string: %w", err)
		}
		buf.Write(b)
	case KindNumber:
		if v.text != "" {
			buf.WriteString(v.text)
			return nil
		}
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return fmt.Errorf("unsupported number %v", v.num)
		}
		buf.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindObject:
		return encodeFields(buf, v.fields)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
	return nil
}

func encodeFields(buf *bytes.Buffer, fields []Field) error {
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return fmt.Errorf("encode field name: %w", err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		if err := f.Value.encode(buf); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// ParseFields decodes a JSON object into ordered fields.
func ParseFields(data []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read document body: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("document body must be a JSON object")
	}

	fields, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after document body")
	}
	return fields, nil
}

// decodeObject reads members up to and including the closing brace.
func decodeObject(dec *json.Decoder) ([]Field, error) {
	fields := make([]Field, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read field name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read object end: %w", err)
	}
	return fields, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("read value: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			fields, err := decodeObject(dec)
			if err != nil {
				return Value{}, err
			}
			return Object(fields...), nil
		case '[':
			items := make([]Value, 0)
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("read array end: %w", err)
			}
			return Array(items...), nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		if _, ok := parseDate(t); ok {
			return Value{kind: KindDate, text: t}, nil
		}
		return Text(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Value{kind: KindNumber, num: f, text: t.String()}, nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func parseDate(s string) (time.Time, bool) {
	// Cheap reject before trying layouts: dates start with a 4-digit year.
	if len(s) < 10 || s[4] != '-' {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
