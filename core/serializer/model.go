package serializer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// NoBit marks a field that is not gated by a feature bit.
const NoBit = -1

// Field describes one field of a model: a name, either a number format or
// a nested model, and the metadata that gates or selects it.
type Field struct {
	// Name is the key the field decodes under.
	Name string

	// Format is the number format string. Empty when Model is set.
	Format string

	// Model is a nested record occupying the sum of its field sizes.
	Model *Model

	// Count makes the field a fixed-length sequence of Format elements.
	Count int

	// FeatureBit is the machine features bit gating whether the machine
	// reports this field, or NoBit.
	FeatureBit int

	// Code selects this field in a code-switched record. Zero means the
	// field is not code-selected (no FTMS record uses codes 0 or 1 for a
	// parameter-bearing field).
	Code int
}

// Model is an ordered list of fields with a precomputed serializer per
// field. Models are built once at package init; construction panics on a
// bad field table.
type Model struct {
	Name   string
	Fields []Field

	serializers []Serializer
	size        int
}

// NewModel builds a model and resolves every field's serializer.
func NewModel(name string, fields ...Field) *Model {
	m := &Model{
		Name:        name,
		Fields:      fields,
		serializers: make([]Serializer, len(fields)),
	}
	for i, f := range fields {
		var s Serializer
		switch {
		case f.Model != nil:
			s = modelSerializer{f.Model}
		case f.Count > 0:
			s = NewList(MustNum(f.Format), f.Count)
		default:
			s = MustNum(f.Format)
		}
		m.serializers[i] = s
		m.size += s.Size()
	}
	return m
}

// Size returns the sum of the field sizes. Framing prefixes (the bitmask
// word, the code byte) are not included.
func (m *Model) Size() int {
	return m.size
}

// FieldByCode returns the field selected by a record code.
func (m *Model) FieldByCode(code uint8) (Field, Serializer, bool) {
	for i, f := range m.Fields {
		if f.Code != 0 && f.Code == int(code) {
			return f, m.serializers[i], true
		}
	}
	return Field{}, nil, false
}

// DecodePlain decodes every field in declaration order into a map. Nested
// models decode to nested maps. Absent values are kept as nil entries.
func (m *Model) DecodePlain(r *bytes.Reader) (map[string]any, error) {
	out := make(map[string]any, len(m.Fields))
	for i, f := range m.Fields {
		v, err := m.serializers[i].Decode(r)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// EncodePlain encodes every field in declaration order. Missing map keys
// and nil values write the field's sentinel.
func (m *Model) EncodePlain(w *bytes.Buffer, values map[string]any) error {
	for i, f := range m.Fields {
		if err := m.serializers[i].Encode(w, values[f.Name]); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

// DecodeBitmask decodes a bitmask-gated record: a little-endian u16 flags
// word followed by the fields whose bits are set. Bit 0 is returned to the
// caller as the More Data flag and inverted before gating, so the first
// field is present exactly when More Data is clear. Nested models flatten
// into the result; absent values are omitted. The record must be fully
// consumed.
func (m *Model) DecodeBitmask(data []byte) (fields map[string]any, mask uint16, err error) {
	if len(data) < 2 {
		return nil, 0, io.ErrUnexpectedEOF
	}
	mask = binary.LittleEndian.Uint16(data)
	r := bytes.NewReader(data[2:])

	fields = make(map[string]any)
	gate := mask ^ 1

	for i, f := range m.Fields {
		if gate == 0 {
			break
		}
		if gate&1 != 0 {
			v, err := m.serializers[i].Decode(r)
			if err != nil {
				return nil, 0, err
			}
			mergeFlat(fields, f.Name, v)
		}
		gate >>= 1
	}

	if r.Len() != 0 {
		return nil, 0, fmt.Errorf("%w: %d bytes after %s record", ErrTrailingData, r.Len(), m.Name)
	}
	return fields, mask, nil
}

// DecodeCode decodes a code-switched record: a code byte optionally
// followed by the single field whose Code metadata matches. The record
// must be fully consumed. A code with no matching field yields an empty
// field name and a nil value.
func (m *Model) DecodeCode(data []byte) (code uint8, field string, value any, err error) {
	if len(data) < 1 {
		return 0, "", nil, io.ErrUnexpectedEOF
	}
	code = data[0]
	r := bytes.NewReader(data[1:])

	if f, s, ok := m.FieldByCode(code); ok {
		field = f.Name
		if value, err = s.Decode(r); err != nil {
			return 0, "", nil, err
		}
	}

	if r.Len() != 0 {
		return 0, "", nil, fmt.Errorf("%w: %d bytes after %s record", ErrTrailingData, r.Len(), m.Name)
	}
	return code, field, value, nil
}

// EncodeCode encodes a code-switched record: the code byte plus the
// matching field's value, if the code selects one.
func (m *Model) EncodeCode(w *bytes.Buffer, code uint8, value any) error {
	w.WriteByte(code)
	f, s, ok := m.FieldByCode(code)
	if !ok {
		return nil
	}
	if err := s.Encode(w, value); err != nil {
		return fmt.Errorf("field %s: %w", f.Name, err)
	}
	return nil
}

// SupportedFields returns the leaf field names the machine can report for
// the given features bitmap: every field with no feature bit plus every
// field whose bit is set, with nested models contributing their leaves.
func (m *Model) SupportedFields(features uint32) []string {
	var out []string
	for _, f := range m.Fields {
		if f.FeatureBit >= 0 && features&(1<<uint(f.FeatureBit)) == 0 {
			continue
		}
		if f.Model != nil {
			for _, sub := range f.Model.Fields {
				out = append(out, sub.Name)
			}
			continue
		}
		out = append(out, f.Name)
	}
	return out
}

// mergeFlat merges a decoded field value into a flat map, flattening
// nested records and omitting absent values.
func mergeFlat(dst map[string]any, name string, v any) {
	switch x := v.(type) {
	case nil:
	case map[string]any:
		for k, sub := range x {
			if sub != nil {
				dst[k] = sub
			}
		}
	default:
		dst[name] = v
	}
}

// modelSerializer adapts a nested model to the field Serializer interface.
type modelSerializer struct {
	m *Model
}

func (s modelSerializer) Decode(r *bytes.Reader) (any, error) {
	return s.m.DecodePlain(r)
}

func (s modelSerializer) Encode(w *bytes.Buffer, v any) error {
	values, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: expected map for %s", ErrInvalidFormat, s.m.Name)
	}
	return s.m.EncodePlain(w, values)
}

func (s modelSerializer) Size() int {
	return s.m.Size()
}
