package jsonmodel

import (
	"github.com/openbindings/jsonmodel-go/rawjson"
)

// FieldChecker is implemented by field descriptors. Check reads the field
// and validates the decoded value in depth.
type FieldChecker interface {
	Key() string
	Check(doc *rawjson.Object) error
}

// RequiredField describes a key that must be present.
type RequiredField[T any] struct {
	key   string
	codec Codec[T]
}

// Required declares a required field.
func Required[T any](key string, c Codec[T]) RequiredField[T] {
	return RequiredField[T]{key: key, codec: c}
}

func (f RequiredField[T]) Key() string { return f.key }

// Get decodes the field. An absent key fails with ErrMissingField, a value of
// the wrong shape (JSON null included) with ErrTypeMismatch.
func (f RequiredField[T]) Get(doc *rawjson.Object) (T, error) {
	var zero T
	v, ok := doc.Get(f.key)
	if !ok {
		return zero, &FieldError{Kind: ErrMissingField, Path: f.key}
	}
	out, err := f.codec.Decode(v)
	if err != nil {
		return zero, withPath(err, f.key)
	}
	return out, nil
}

// Set encodes x into the document under construction.
func (f RequiredField[T]) Set(b *Builder, x T) {
	setField(b, f.key, f.codec, x)
}

// Check reads the field and validates its value in depth.
func (f RequiredField[T]) Check(doc *rawjson.Object) error {
	x, err := f.Get(doc)
	if err != nil {
		return err
	}
	return withPath(f.codec.Check(x), f.key)
}

// OptionalField describes a key that may be absent.
type OptionalField[T any] struct {
	key   string
	codec Codec[T]
}

// Optional declares an optional field.
func Optional[T any](key string, c Codec[T]) OptionalField[T] {
	return OptionalField[T]{key: key, codec: c}
}

func (f OptionalField[T]) Key() string { return f.key }

// Get decodes the field. An absent key or a JSON null yields nil; a value of
// the wrong shape fails with ErrTypeMismatch.
func (f OptionalField[T]) Get(doc *rawjson.Object) (*T, error) {
	v, ok := doc.Get(f.key)
	if !ok || v == nil {
		return nil, nil
	}
	out, err := f.codec.Decode(v)
	if err != nil {
		return nil, withPath(err, f.key)
	}
	return &out, nil
}

// Set encodes *x into the document under construction. A nil x is a no-op:
// the key is neither written nor removed.
func (f OptionalField[T]) Set(b *Builder, x *T) {
	if x == nil {
		return
	}
	setField(b, f.key, f.codec, *x)
}

// Check is like RequiredField.Check; an absent field passes.
func (f OptionalField[T]) Check(doc *rawjson.Object) error {
	x, err := f.Get(doc)
	if err != nil || x == nil {
		return err
	}
	return withPath(f.codec.Check(*x), f.key)
}

// Builder owns the document of a model under construction. The first encode
// error sticks; later writes are dropped.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	doc *rawjson.Object
	err error
}

// NewBuilder starts an empty document.
func NewBuilder() *Builder {
	return &Builder{doc: rawjson.NewObject()}
}

// BuilderFrom starts from a full copy of m's document.
func BuilderFrom(m Model) *Builder {
	return &Builder{doc: m.Raw().Clone()}
}

// Err returns the first encode error, if any.
func (b *Builder) Err() error { return b.err }

// Build freezes a snapshot of the document. Later writes to b do not affect
// the returned Object.
func (b *Builder) Build() (Object, error) {
	if b.err != nil {
		return Object{}, b.err
	}
	return Object{doc: b.doc.Freeze()}, nil
}

func setField[T any](b *Builder, key string, c Codec[T], x T) {
	if b.err != nil {
		return
	}
	v, err := c.Encode(x)
	if err != nil {
		b.err = withPath(err, key)
		return
	}
	b.doc.Set(key, v)
}
