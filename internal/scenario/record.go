package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind is the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "absent"
	}
}

// Value is a single dataset cell: text, a number, or absent (null).
// The zero Value is absent.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Absent returns the null Value.
func Absent() Value { return Value{} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is null.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// AsText returns the text and true when v holds text.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsNumber returns the number and true when v holds a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String renders v for display. Absent values render as an empty string.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty dataset value")
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("invalid dataset value %s", data)
		}
		*v = Absent()
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("dataset value must be a string, number or null: %s", data)
		}
		*v = Number(f)
	}
	return nil
}

// Field is one named cell of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is one dataset row. Fields keep the order in which they were
// declared; different records of a dataset may carry different fields.
type Record struct {
	Fields []Field
}

// NewRecord builds a record from fields in order.
func NewRecord(fields ...Field) Record {
	return Record{Fields: fields}
}

// Get returns the value of the named field. A field that is not present
// reports false; a field present with a null value reports an absent Value
// and true.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Absent(), false
}

// Names returns the field names in declaration order.
func (r Record) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("dataset record must be an object")
	}

	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("dataset record key must be a string")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	r.Fields = fields
	return nil
}

// Columns returns the union of field names across records, in first-seen
// order.
func Columns(records []Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for _, f := range r.Fields {
			if !seen[f.Name] {
				seen[f.Name] = true
				cols = append(cols, f.Name)
			}
		}
	}
	return cols
}
