package jsonmodel

import (
	"fmt"

	"github.com/openbindings/jsonmodel-go/rawjson"
)

// Member binds a symbolic enum variant to its canonical wire primitive.
type Member[K comparable] struct {
	Value K
	Wire  any
}

// Wire declares a variant whose canonical wire form is w (a string or bool).
func Wire[K comparable](k K, w any) Member[K] {
	return Member[K]{Value: k, Wire: w}
}

// Vocabulary is the known set of values of a forward-compatible enum.
// Matching is exact and case-sensitive.
type Vocabulary[K comparable] struct {
	name   string
	values []K
	byWire map[any]K
	toWire map[K]any
}

// NewVocabulary builds a vocabulary. It panics if a wire value is not a string
// or bool, or if a variant or wire value is declared twice.
func NewVocabulary[K comparable](name string, members ...Member[K]) *Vocabulary[K] {
	v := &Vocabulary[K]{
		name:   name,
		byWire: make(map[any]K, len(members)),
		toWire: make(map[K]any, len(members)),
	}
	for _, m := range members {
		switch m.Wire.(type) {
		case string, bool:
		default:
			panic(fmt.Sprintf("jsonmodel: %s: wire value %#v must be a string or bool", name, m.Wire))
		}
		if _, dup := v.byWire[m.Wire]; dup {
			panic(fmt.Sprintf("jsonmodel: %s: duplicate wire value %#v", name, m.Wire))
		}
		if _, dup := v.toWire[m.Value]; dup {
			panic(fmt.Sprintf("jsonmodel: %s: duplicate variant %v", name, m.Value))
		}
		v.byWire[m.Wire] = m.Value
		v.toWire[m.Value] = m.Wire
		v.values = append(v.values, m.Value)
	}
	return v
}

func (v *Vocabulary[K]) Name() string { return v.name }

// Values returns the known variants in declaration order.
func (v *Vocabulary[K]) Values() []K {
	out := make([]K, len(v.values))
	copy(out, v.values)
	return out
}

// Parse captures a wire value. Strings and bools always succeed, recognized or
// not; any other JSON type is ErrTypeMismatch.
func (v *Vocabulary[K]) Parse(raw any) (Enum[K], error) {
	switch raw.(type) {
	case string, bool:
	default:
		return Enum[K]{}, mismatch("string or boolean", raw)
	}
	k, ok := v.byWire[raw]
	return Enum[K]{raw: raw, known: k, ok: ok, vocab: v.name}, nil
}

// Of returns the enum for a known variant. A variant without a canonical
// wire form fails with ErrInvalidEnumVariant.
func (v *Vocabulary[K]) Of(k K) (Enum[K], error) {
	w, ok := v.toWire[k]
	if !ok {
		return Enum[K]{}, &FieldError{
			Kind:   ErrInvalidEnumVariant,
			Detail: fmt.Sprintf("%s has no wire form for %v", v.name, k),
		}
	}
	return Enum[K]{raw: w, known: k, ok: true, vocab: v.name}, nil
}

// MustOf is like Of but panics on error.
func (v *Vocabulary[K]) MustOf(k K) Enum[K] {
	e, err := v.Of(k)
	if err != nil {
		panic(err)
	}
	return e
}

// Codec returns the field codec for enums of this vocabulary.
func (v *Vocabulary[K]) Codec() Codec[Enum[K]] {
	return NewCodec(
		v.Parse,
		func(e Enum[K]) (any, error) {
			if e.raw == nil {
				return nil, Enum[K]{vocab: v.name}.empty()
			}
			return e.raw, nil
		},
		Enum[K].Validate,
	)
}

// Enum is a forward-compatible enum value: the wire primitive it came from
// plus the matching known variant, if any.
type Enum[K comparable] struct {
	raw   any
	known K
	ok    bool
	vocab string
}

// Known returns the matched variant. ok is false for unrecognized values.
func (e Enum[K]) Known() (k K, ok bool) { return e.known, e.ok }

// IsRecognized reports whether the wire value is in the vocabulary.
func (e Enum[K]) IsRecognized() bool { return e.ok }

// Raw returns the wire primitive exactly as received or constructed.
func (e Enum[K]) Raw() any { return e.raw }

// Is reports whether e is the known variant k.
func (e Enum[K]) Is(k K) bool { return e.ok && e.known == k }

// Equal compares wire values.
func (e Enum[K]) Equal(o Enum[K]) bool { return e.raw == o.raw }

func (e Enum[K]) String() string { return fmt.Sprint(e.raw) }

// Validate fails with ErrUnrecognizedEnumValue when the wire value is not in
// the vocabulary.
func (e Enum[K]) Validate() error {
	if e.ok {
		return nil
	}
	return &FieldError{
		Kind:   ErrUnrecognizedEnumValue,
		Detail: fmt.Sprintf("%s does not define %#v", e.vocab, e.raw),
	}
}

// MarshalJSON always emits the raw wire value. The zero Enum has none and
// fails with ErrInvalidEnumVariant.
func (e Enum[K]) MarshalJSON() ([]byte, error) {
	if e.raw == nil {
		return nil, e.empty()
	}
	return rawjson.Marshal(e.raw)
}

func (e Enum[K]) empty() error {
	name := e.vocab
	if name == "" {
		name = "enum"
	}
	return &FieldError{Kind: ErrInvalidEnumVariant, Detail: name + " is empty"}
}
