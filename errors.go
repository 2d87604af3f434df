package jsonmodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openbindings/jsonmodel-go/rawjson"
)

// Error kinds. Every error produced by this package matches exactly one of
// them with errors.Is.
var (
	// ErrMissingField reports an absent required key.
	ErrMissingField = errors.New("missing field")
	// ErrTypeMismatch reports a present value that cannot be decoded as the requested type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnrecognizedEnumValue reports an enum whose wire value is outside the known vocabulary.
	// It is only returned by Validate.
	ErrUnrecognizedEnumValue = errors.New("unrecognized enum value")
	// ErrUnmatchedVariant reports a union that matched none of its shapes.
	// It is only returned by Validate and Match.
	ErrUnmatchedVariant = errors.New("unmatched variant")
	// ErrInvalidEnumVariant reports an enum variant with no canonical wire form.
	ErrInvalidEnumVariant = errors.New("invalid enum variant")
)

// FieldError is an error located at a path inside a document, for example
// `actions[2].method` or `metadata["k"]`.
type FieldError struct {
	// Kind is one of the Err* kinds, or the error returned by a nested Validate.
	Kind error
	// Path is empty for errors on the value itself.
	Path string
	// Detail is optional.
	Detail string
}

func (e *FieldError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("invalid value")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *FieldError) Unwrap() error { return e.Kind }

func mismatch(want string, got any) error {
	return &FieldError{
		Kind:   ErrTypeMismatch,
		Detail: fmt.Sprintf("expected %s, got %s", want, rawjson.TypeName(got)),
	}
}

func mismatchf(format string, args ...any) error {
	return &FieldError{Kind: ErrTypeMismatch, Detail: fmt.Sprintf(format, args...)}
}

// withPath prefixes the location of err with seg.
func withPath(err error, seg string) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out := *fe
		out.Path = joinPath(seg, fe.Path)
		return &out
	}
	return &FieldError{Kind: err, Path: seg}
}

func joinPath(seg, rest string) string {
	switch {
	case rest == "":
		return seg
	case seg == "":
		return rest
	case strings.HasPrefix(rest, "["):
		return seg + rest
	default:
		return seg + "." + rest
	}
}

func indexSeg(i int) string { return fmt.Sprintf("[%d]", i) }

func keySeg(k string) string { return fmt.Sprintf("[%q]", k) }
