// Package rawjson holds the order-preserving JSON document that backs every
// model in jsonmodel.
//
// Decoded values are drawn from a closed set of Go types:
//
//	nil          JSON null
//	bool         JSON true/false
//	string       JSON string
//	json.Number  JSON number, original text preserved
//	[]any        JSON array
//	*Object      JSON object, insertion order preserved
//
// An Object is mutable until it is frozen. A frozen Object never changes and
// is safe for concurrent reads; values returned from it must be treated as
// read-only.
package rawjson

import (
	"encoding/json"
	"errors"
	"iter"
)

// Object is an insertion-ordered JSON object with unique keys.
type Object struct {
	keys   []string
	vals   map[string]any
	frozen bool
}

// NewObject returns an empty, mutable object.
func NewObject() *Object {
	return &Object{vals: map[string]any{}}
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Frozen reports whether o is an immutable snapshot.
func (o *Object) Frozen() bool {
	return o != nil && o.frozen
}

// Get returns the value stored at key. A JSON null is reported as (nil, true).
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores v at key. An existing key keeps its position; a new key is
// appended. The value is stored exactly as given.
//
// Set panics if o is frozen.
func (o *Object) Set(key string, v any) {
	if o.frozen {
		panic("rawjson: Set on frozen object (key " + key + ")")
	}
	if o.vals == nil {
		o.vals = map[string]any{}
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Keys returns a copy of the member names in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Entries yields the members in insertion order.
func (o *Object) Entries() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}

// Freeze returns an immutable deep snapshot of o. A frozen object is
// returned as is.
func (o *Object) Freeze() *Object {
	if o == nil {
		return nil
	}
	if o.frozen {
		return o
	}
	return o.copy(true)
}

// Clone returns a mutable deep copy of o.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	return o.copy(false)
}

func (o *Object) copy(frozen bool) *Object {
	out := &Object{
		keys:   make([]string, len(o.keys)),
		vals:   make(map[string]any, len(o.vals)),
		frozen: frozen,
	}
	copy(out.keys, o.keys)
	for k, v := range o.vals {
		out.vals[k] = copyValue(v, frozen)
	}
	return out
}

// Clone returns a deep copy of v in which every object is mutable.
func Clone(v any) any {
	return copyValue(v, false)
}

// Freeze returns a deep copy of v in which every object is frozen. Frozen
// objects are shared rather than copied.
func Freeze(v any) any {
	return copyValue(v, true)
}

func copyValue(v any, frozen bool) any {
	switch x := v.(type) {
	case *Object:
		if x == nil {
			return nil
		}
		if frozen {
			return x.Freeze()
		}
		return x.Clone()
	case []any:
		if x == nil {
			return []any(nil)
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyValue(e, frozen)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes o with its members in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

// UnmarshalJSON replaces the contents of o with the decoded object. It fails
// if o is frozen.
func (o *Object) UnmarshalJSON(b []byte) error {
	if o.frozen {
		return errors.New("rawjson: UnmarshalJSON on frozen object")
	}
	parsed, err := ParseObject(b)
	if err != nil {
		return err
	}
	*o = *parsed
	return nil
}

// TypeName returns the JSON type name of v, for use in messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case *Object:
		return "object"
	default:
		return "unknown"
	}
}
