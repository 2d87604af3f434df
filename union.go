package jsonmodel

import (
	"fmt"
	"sync"

	"github.com/openbindings/jsonmodel-go/canonicaljson"
	"github.com/openbindings/jsonmodel-go/rawjson"
)

// Variant is one candidate shape of a union.
type Variant struct {
	name    string
	decode  func(any) (any, error)
	encode  func(any) (any, error)
	check   func(any) error
	accepts func(any) bool
}

// Shape declares a union candidate decoded with c. A candidate matches when
// both c.Decode and c.Check succeed.
func Shape[T any](name string, c Codec[T]) Variant {
	return Variant{
		name: name,
		decode: func(v any) (any, error) {
			x, err := c.Decode(v)
			if err != nil {
				return nil, err
			}
			if err := c.Check(x); err != nil {
				return nil, err
			}
			return x, nil
		},
		encode: func(v any) (any, error) { return c.Encode(v.(T)) },
		check:  func(v any) error { return c.Check(v.(T)) },
		accepts: func(v any) bool {
			_, ok := v.(T)
			return ok
		},
	}
}

// UnionSpec is the ordered list of shapes a union field may take.
type UnionSpec struct {
	name     string
	variants []Variant
}

// NewUnionSpec declares a union. Shapes are tried in the given order.
func NewUnionSpec(name string, variants ...Variant) *UnionSpec {
	return &UnionSpec{name: name, variants: variants}
}

func (s *UnionSpec) Name() string { return s.name }

// Len returns the number of declared shapes.
func (s *UnionSpec) Len() int { return len(s.variants) }

// Resolve picks the first shape that decodes and validates v. Rejected shapes
// are logged at V(1) and otherwise ignored. When none match, the union holds
// v as an opaque fallback; Resolve never fails.
func (s *UnionSpec) Resolve(v any) Union {
	raw := rawjson.Freeze(v)
	orig := func() (any, error) { return raw, nil }
	log := currentLogger()
	for i, variant := range s.variants {
		x, err := variant.decode(raw)
		if err != nil {
			log.V(1).Info("union shape rejected", "union", s.name, "shape", variant.name, "reason", err.Error())
			continue
		}
		return Union{spec: s, chosen: i + 1, value: x, original: orig}
	}
	log.V(1).Info("union resolved to raw fallback", "union", s.name, "type", rawjson.TypeName(raw))
	return Union{spec: s, original: orig}
}

// ParseJSON parses data once and resolves it. Only malformed JSON is an error.
func (s *UnionSpec) ParseJSON(data []byte) (Union, error) {
	v, err := rawjson.Parse(data)
	if err != nil {
		return Union{}, err
	}
	return s.Resolve(v), nil
}

// From builds a union holding x as shape index. The wire form is computed on
// first use and cached.
func (s *UnionSpec) From(index int, x any) (Union, error) {
	if index < 0 || index >= len(s.variants) {
		return Union{}, mismatchf("%s has no shape %d", s.name, index)
	}
	variant := s.variants[index]
	if !variant.accepts(x) {
		return Union{}, mismatchf("%s shape %s cannot hold %T", s.name, variant.name, x)
	}
	encode := sync.OnceValues(func() (any, error) {
		v, err := variant.encode(x)
		if err != nil {
			return nil, err
		}
		return rawjson.Freeze(v), nil
	})
	return Union{spec: s, chosen: index + 1, value: x, original: encode}, nil
}

// MustFrom is like From but panics on error.
func (s *UnionSpec) MustFrom(index int, x any) Union {
	u, err := s.From(index, x)
	if err != nil {
		panic(err)
	}
	return u
}

// Codec returns the field codec for this union.
func (s *UnionSpec) Codec() Codec[Union] {
	return NewCodec(
		func(v any) (Union, error) { return s.Resolve(v), nil },
		func(u Union) (any, error) {
			if u.spec == nil {
				return nil, &FieldError{Kind: ErrUnmatchedVariant, Detail: s.name + " is empty"}
			}
			v, err := u.Original()
			if err != nil {
				return nil, err
			}
			return rawjson.Clone(v), nil
		},
		Union.Validate,
	)
}

// WrapUnion adapts the codec of spec to a named wrapper type.
func WrapUnion[W any](spec *UnionSpec, wrap func(Union) W, unwrap func(W) Union) Codec[W] {
	c := spec.Codec()
	return NewCodec(
		func(v any) (W, error) {
			u, err := c.Decode(v)
			if err != nil {
				var zero W
				return zero, err
			}
			return wrap(u), nil
		},
		func(w W) (any, error) { return c.Encode(unwrap(w)) },
		func(w W) error { return c.Check(unwrap(w)) },
	)
}

// Union holds one of the shapes of a UnionSpec, or the raw JSON when none
// matched. Equality is defined over the JSON it encodes to.
type Union struct {
	spec     *UnionSpec
	chosen   int // 0: raw fallback, i+1: variants[i]
	value    any
	original func() (any, error)
}

// Index returns the chosen shape, or -1 for the raw fallback.
func (u Union) Index() int { return u.chosen - 1 }

// Matched reports whether a shape was chosen.
func (u Union) Matched() bool { return u.chosen > 0 }

// Name returns the chosen shape name, or "raw".
func (u Union) Name() string {
	if !u.Matched() {
		return "raw"
	}
	return u.spec.variants[u.chosen-1].name
}

// Value returns the decoded shape, or nil for the raw fallback.
func (u Union) Value() any { return u.value }

// Original returns the JSON the union encodes to: the exact subtree it was
// resolved from, or the encoding of the shape it was built with.
func (u Union) Original() (any, error) {
	if u.original == nil {
		return nil, nil
	}
	return u.original()
}

// Match calls the handler of the chosen shape, passing its value. Handlers
// are given in shape order; a wrong count panics. The raw fallback fails with
// ErrUnmatchedVariant.
func (u Union) Match(handlers ...func(any) error) error {
	if u.spec == nil {
		return &FieldError{Kind: ErrUnmatchedVariant, Detail: "empty union"}
	}
	if len(handlers) != len(u.spec.variants) {
		panic(fmt.Sprintf("jsonmodel: %s.Match needs %d handlers, got %d", u.spec.name, len(u.spec.variants), len(handlers)))
	}
	if !u.Matched() {
		return u.unmatched()
	}
	return handlers[u.chosen-1](u.value)
}

// Validate fails with ErrUnmatchedVariant for the raw fallback and otherwise
// validates the chosen shape.
func (u Union) Validate() error {
	if !u.Matched() {
		return u.unmatched()
	}
	return u.spec.variants[u.chosen-1].check(u.value)
}

func (u Union) unmatched() error {
	name := "union"
	if u.spec != nil {
		name = u.spec.name
	}
	v, _ := u.Original()
	return &FieldError{
		Kind:   ErrUnmatchedVariant,
		Detail: fmt.Sprintf("%s matched no shape for %s", name, rawjson.TypeName(v)),
	}
}

// MarshalJSON emits Original, never a re-encoding of the chosen shape.
func (u Union) MarshalJSON() ([]byte, error) {
	v, err := u.Original()
	if err != nil {
		return nil, err
	}
	return rawjson.Marshal(v)
}

// Equal reports whether u and o encode to structurally equal JSON.
func (u Union) Equal(o Union) bool {
	a, err := u.Original()
	if err != nil {
		return false
	}
	b, err := o.Original()
	if err != nil {
		return false
	}
	eq, err := canonicaljson.Equal(a, b)
	return err == nil && eq
}

// Hash returns a digest of the canonical JSON of Original. Equal unions have
// equal hashes.
func (u Union) Hash() (string, error) {
	v, err := u.Original()
	if err != nil {
		return "", err
	}
	return canonicaljson.Hash(v)
}

// Pick returns the chosen value if it has type T.
func Pick[T any](u Union) (T, bool) {
	if !u.Matched() {
		var zero T
		return zero, false
	}
	x, ok := u.value.(T)
	return x, ok
}
