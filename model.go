package jsonmodel

import (
	"github.com/openbindings/jsonmodel-go/canonicaljson"
	"github.com/openbindings/jsonmodel-go/rawjson"
)

// Model is implemented by every generated type: a frozen raw document plus a
// Validate that checks the whole subtree.
type Model interface {
	Raw() *rawjson.Object
	Validate() error
}

var emptyDoc = rawjson.NewObject().Freeze()

// Object is embedded by generated models to hold their frozen document.
// The zero Object is an empty document.
type Object struct {
	doc *rawjson.Object
}

// FromRawUnchecked wraps a frozen copy of doc without validating it.
func FromRawUnchecked(doc *rawjson.Object) Object {
	return Object{doc: doc.Freeze()}
}

// Raw returns the document. It is frozen and must not be modified.
func (o Object) Raw() *rawjson.Object {
	if o.doc == nil {
		return emptyDoc
	}
	return o.doc
}

// Equal reports whether both documents encode to structurally equal JSON.
func (o Object) Equal(m Model) bool {
	eq, err := canonicaljson.Equal(o.Raw(), m.Raw())
	return err == nil && eq
}

// MarshalJSON encodes the live document, unknown keys included.
func (o Object) MarshalJSON() ([]byte, error) {
	return rawjson.Marshal(o.Raw())
}

// UnmarshalJSON replaces the document without validating it.
func (o *Object) UnmarshalJSON(b []byte) error {
	doc, err := rawjson.ParseObject(b)
	if err != nil {
		return err
	}
	o.doc = doc.Freeze()
	return nil
}

// ValidateFields checks every field in order and returns the first failure.
func ValidateFields(doc *rawjson.Object, fields ...FieldChecker) error {
	for _, f := range fields {
		if err := f.Check(doc); err != nil {
			return err
		}
	}
	return nil
}
