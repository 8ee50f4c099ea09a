package cidgen

import (
	"sort"
)

type (
	// Value is an input to CID computation: either text, which is hashed
	// as-is, or a Record, which is canonicalized first. Values of any other
	// shape cannot be constructed; ValueOf rejects them.
	Value struct {
		kind   valueKind
		text   []byte
		record Record
	}

	// Record is an ordered collection of named fields. The field order is
	// the canonical serialization order: reordering fields changes every
	// CID derived from the record.
	Record struct {
		fields []Field
	}

	Field struct {
		Name  string
		Value any
	}

	valueKind uint8
)

const (
	invalidValue valueKind = iota
	textValue
	recordValue
)

// Text returns a Value that hashes the UTF-8 bytes of s unchanged.
func Text(s string) Value {
	return Value{kind: textValue, text: []byte(s)}
}

// Bytes returns a Value that hashes b unchanged. The caller must not mutate
// b until the Value is no longer in use.
func Bytes(b []byte) Value {
	return Value{kind: textValue, text: b}
}

// NewRecord returns a Record whose canonical field order is the order given.
func NewRecord(fields ...Field) Record {
	return Record{fields: fields}
}

// ValueOf classifies an arbitrary Go value as a CID input. Strings and byte
// slices become text; Records pass through; maps become Records with fields
// in ascending key order, since Go map iteration order is not deterministic.
// Everything else, numbers and slices included, is rejected with
// ErrInvalidDataType.
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case Value:
		if v.kind == invalidValue {
			return Value{}, ErrInvalidDataType{v}
		}
		return v, nil
	case string:
		return Text(v), nil
	case []byte:
		return Bytes(v), nil
	case Record:
		return Value{kind: recordValue, record: v}, nil
	case map[string]any:
		return Value{kind: recordValue, record: recordOfMap(v)}, nil
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = e
		}
		return Value{kind: recordValue, record: recordOfMap(m)}, nil
	default:
		return Value{}, ErrInvalidDataType{v}
	}
}

func recordOfMap(m map[string]any) Record {
	fields := make([]Field, 0, len(m))
	for k, v := range m {
		fields = append(fields, Field{Name: k, Value: v})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return Record{fields: fields}
}
