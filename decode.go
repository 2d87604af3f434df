package jsonmodel

import (
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/openbindings/jsonmodel-go/rawjson"
	"github.com/openbindings/jsonmodel-go/yamljson"
)

type decodeOptions struct {
	unchecked bool
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

// Unchecked accepts the document without calling Validate. The caller can
// validate later.
func Unchecked() DecodeOption {
	return func(o *decodeOptions) { o.unchecked = true }
}

// Decode parses data into a model built by ctor. By default the model is
// validated and the first violation is returned.
func Decode[M Model](data []byte, ctor func(Object) M, opts ...DecodeOption) (M, error) {
	v, err := rawjson.Parse(data)
	if err != nil {
		var zero M
		return zero, err
	}
	return DecodeValue(v, ctor, opts...)
}

// DecodeYAML is like Decode for YAML input. Mapping order is preserved.
func DecodeYAML[M Model](data []byte, ctor func(Object) M, opts ...DecodeOption) (M, error) {
	v, err := yamljson.Parse(data)
	if err != nil {
		var zero M
		return zero, err
	}
	return DecodeValue(v, ctor, opts...)
}

// DecodeValue builds a model from an already parsed rawjson value, which must
// be an object.
func DecodeValue[M Model](v any, ctor func(Object) M, opts ...DecodeOption) (M, error) {
	var o decodeOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	var zero M
	doc, ok := v.(*rawjson.Object)
	if !ok {
		return zero, mismatch("object", v)
	}
	m := ctor(FromRawUnchecked(doc))
	if o.unchecked {
		return m, nil
	}
	if err := m.Validate(); err != nil {
		return zero, err
	}
	return m, nil
}

// Encode returns the wire JSON of m's live document.
func Encode(m Model) ([]byte, error) {
	return rawjson.Marshal(m.Raw())
}

// EncodeIndent is like Encode with indentation.
func EncodeIndent(m Model, prefix, indent string) ([]byte, error) {
	return rawjson.MarshalIndent(m.Raw(), prefix, indent)
}

// EncodeYAML returns m's document as YAML with member order preserved.
func EncodeYAML(m Model) ([]byte, error) {
	return yamljson.Marshal(m.Raw())
}

// EncodeValue returns a mutable copy of m's document.
func EncodeValue(m Model) *rawjson.Object {
	return m.Raw().Clone()
}

var logger atomic.Pointer[logr.Logger]

// SetLogger sets the logger used to report union shapes rejected during
// resolution. The default discards everything.
func SetLogger(l logr.Logger) {
	logger.Store(&l)
}

func currentLogger() logr.Logger {
	if l := logger.Load(); l != nil {
		return *l
	}
	return logr.Discard()
}
