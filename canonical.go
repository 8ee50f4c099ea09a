package cidgen

import (
	"encoding/json"
)

// appendCanonicalJSON writes r as a compact JSON object into b. Fields are
// emitted in the record's own order; names and values are encoded with the
// standard JSON rules. A field value with no JSON representation fails with
// ErrEncodingFailure.
//
// The emitted bytes are the exact input to hashing, so the field order and
// the encoding rules here are compatibility-critical.
func (r Record) appendCanonicalJSON(b *buffer) error {
	b.append('{')
	for i, f := range r.fields {
		if i > 0 {
			b.append(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return ErrEncodingFailure{err}
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return ErrEncodingFailure{err}
		}
		b.maybeGrow(len(name) + len(value) + 1)
		b.append(name...)
		b.append(':')
		b.append(value...)
	}
	b.append('}')
	return nil
}
