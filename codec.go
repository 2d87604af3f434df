package jsonmodel

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/openbindings/jsonmodel-go/rawjson"
)

// Codec translates between a rawjson value and a native type.
//
// Decode fails with ErrTypeMismatch when v has the wrong shape. Encode returns
// a value from the rawjson set. Check performs the deep validation Validate
// relies on; it is a no-op for primitives.
type Codec[T any] interface {
	Decode(v any) (T, error)
	Encode(x T) (any, error)
	Check(x T) error
}

type funcCodec[T any] struct {
	decode func(any) (T, error)
	encode func(T) (any, error)
	check  func(T) error
}

func (c funcCodec[T]) Decode(v any) (T, error) { return c.decode(v) }
func (c funcCodec[T]) Encode(x T) (any, error) { return c.encode(x) }

func (c funcCodec[T]) Check(x T) error {
	if c.check == nil {
		return nil
	}
	return c.check(x)
}

// NewCodec builds a Codec from functions. check may be nil.
func NewCodec[T any](decode func(any) (T, error), encode func(T) (any, error), check func(T) error) Codec[T] {
	return funcCodec[T]{decode: decode, encode: encode, check: check}
}

// Primitive codecs.
var (
	String  Codec[string]       = NewCodec(decodeString, func(s string) (any, error) { return s, nil }, nil)
	Bool    Codec[bool]         = NewCodec(decodeBool, func(b bool) (any, error) { return b, nil }, nil)
	Int     Codec[int64]        = NewCodec(decodeInt, encodeInt, nil)
	Float   Codec[float64]      = NewCodec(decodeFloat, encodeFloat, nil)
	Decimal Codec[*apd.Decimal] = NewCodec(decodeDecimal, encodeDecimal, nil)
	Time    Codec[time.Time]    = NewCodec(decodeTime, encodeTime, nil)
	UUID    Codec[uuid.UUID]    = NewCodec(decodeUUID, func(u uuid.UUID) (any, error) { return u.String(), nil }, nil)
	// JSON passes opaque values through as deep copies.
	JSON Codec[any] = NewCodec(
		func(v any) (any, error) { return rawjson.Clone(v), nil },
		rawjson.FromGo,
		nil,
	)
)

func decodeString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch("string", v)
	}
	return s, nil
}

func decodeBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch("boolean", v)
	}
	return b, nil
}

// decodeInt accepts any integral JSON number (3, 3.0, 3e2) that fits in an int64.
func decodeInt(v any) (int64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, mismatch("integer", v)
	}
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i, nil
	}
	d, _, err := apd.NewFromString(string(n))
	if err != nil {
		return 0, mismatchf("invalid number %s", n)
	}
	i, err := d.Int64()
	if err != nil {
		return 0, mismatchf("expected integer, got %s", n)
	}
	return i, nil
}

func encodeInt(i int64) (any, error) {
	return json.Number(strconv.FormatInt(i, 10)), nil
}

func decodeFloat(v any) (float64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, mismatch("number", v)
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, mismatchf("number %s out of range", n)
	}
	return f, nil
}

func encodeFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, mismatchf("%v is not representable in JSON", f)
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func decodeDecimal(v any) (*apd.Decimal, error) {
	n, ok := v.(json.Number)
	if !ok {
		return nil, mismatch("number", v)
	}
	d, _, err := apd.NewFromString(string(n))
	if err != nil {
		return nil, mismatchf("invalid number %s", n)
	}
	return d, nil
}

func encodeDecimal(d *apd.Decimal) (any, error) {
	if d == nil {
		return nil, mismatchf("nil decimal")
	}
	if d.Form != apd.Finite {
		return nil, mismatchf("%s is not representable in JSON", d)
	}
	return json.Number(d.String()), nil
}

const dateOnly = "2006-01-02"

func decodeTime(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, mismatch("timestamp string", v)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, mismatchf("invalid ISO-8601 timestamp %q", s)
}

func encodeTime(t time.Time) (any, error) {
	return t.Format(time.RFC3339Nano), nil
}

func decodeUUID(v any) (uuid.UUID, error) {
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, mismatch("uuid string", v)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, mismatchf("invalid uuid %q", s)
	}
	return u, nil
}

// ListOf returns a codec for JSON arrays whose elements use elem.
func ListOf[T any](elem Codec[T]) Codec[[]T] {
	return NewCodec(
		func(v any) ([]T, error) {
			arr, ok := v.([]any)
			if !ok {
				return nil, mismatch("array", v)
			}
			out := make([]T, len(arr))
			for i, e := range arr {
				x, err := elem.Decode(e)
				if err != nil {
					return nil, withPath(err, indexSeg(i))
				}
				out[i] = x
			}
			return out, nil
		},
		func(xs []T) (any, error) {
			out := make([]any, len(xs))
			for i, x := range xs {
				e, err := elem.Encode(x)
				if err != nil {
					return nil, withPath(err, indexSeg(i))
				}
				out[i] = e
			}
			return out, nil
		},
		func(xs []T) error {
			for i, x := range xs {
				if err := elem.Check(x); err != nil {
					return withPath(err, indexSeg(i))
				}
			}
			return nil
		},
	)
}

// MapOf returns a codec for JSON objects with arbitrary keys whose values use
// elem. Encoded members are sorted by key.
func MapOf[T any](elem Codec[T]) Codec[map[string]T] {
	return NewCodec(
		func(v any) (map[string]T, error) {
			o, ok := v.(*rawjson.Object)
			if !ok {
				return nil, mismatch("object", v)
			}
			out := make(map[string]T, o.Len())
			for k, e := range o.Entries() {
				x, err := elem.Decode(e)
				if err != nil {
					return nil, withPath(err, keySeg(k))
				}
				out[k] = x
			}
			return out, nil
		},
		func(m map[string]T) (any, error) {
			out := rawjson.NewObject()
			for _, k := range sortedKeys(m) {
				e, err := elem.Encode(m[k])
				if err != nil {
					return nil, withPath(err, keySeg(k))
				}
				out.Set(k, e)
			}
			return out, nil
		},
		func(m map[string]T) error {
			for _, k := range sortedKeys(m) {
				if err := elem.Check(m[k]); err != nil {
					return withPath(err, keySeg(k))
				}
			}
			return nil
		},
	)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ModelOf returns a codec for nested models. Decoded models hold a frozen
// copy of the subtree; encoded models are copied into the parent document.
func ModelOf[M Model](ctor func(Object) M) Codec[M] {
	return NewCodec(
		func(v any) (M, error) {
			o, ok := v.(*rawjson.Object)
			if !ok {
				var zero M
				return zero, mismatch("object", v)
			}
			return ctor(FromRawUnchecked(o)), nil
		},
		func(m M) (any, error) {
			return m.Raw().Clone(), nil
		},
		func(m M) error {
			return m.Validate()
		},
	)
}
