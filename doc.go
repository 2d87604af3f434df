// Package jsonmodel provides raw-backed typed models for evolvable JSON APIs.
//
// A model keeps the JSON document it was decoded from (package rawjson) as the
// single source of truth and exposes typed accessors that decode fields on
// demand. Unknown keys survive decode → encode untouched.
//
// # Quick Start
//
//	type Action struct{ jsonmodel.Object }
//
//	var (
//	    actionMethod   = jsonmodel.Required("method", jsonmodel.String)
//	    actionTimeout  = jsonmodel.Optional("timeout", jsonmodel.Int)
//	)
//
//	func (a Action) Method() (string, error)   { return actionMethod.Get(a.Raw()) }
//	func (a Action) Timeout() (*int64, error)  { return actionTimeout.Get(a.Raw()) }
//	func (a Action) Validate() error {
//	    return jsonmodel.ValidateFields(a.Raw(), actionMethod, actionTimeout)
//	}
//
//	a, err := jsonmodel.Decode(data, func(o jsonmodel.Object) Action { return Action{o} })
//
// Decode validates by default; pass Unchecked to accept a document as is and
// call Validate later.
//
// # Forward Compatibility
//
// Enums (Vocabulary, Enum) keep wire values the client does not know and encode
// them back verbatim; Validate reports them with ErrUnrecognizedEnumValue.
//
// Unions (UnionSpec, Union) try their shapes in declaration order and keep the
// first one that decodes and validates. Input matching no shape is kept as raw
// JSON; Validate and Match report it with ErrUnmatchedVariant. A union always
// encodes the JSON it was decoded from, so fields its shapes do not declare are
// not lost.
//
// # Errors
//
// Accessors fail immediately with ErrMissingField or ErrTypeMismatch. All
// errors are *FieldError values carrying a path such as `actions[1].method`
// and match their kind with errors.Is.
//
// # Concurrency
//
// Models are immutable once built or decoded and are safe for concurrent
// reads. A Builder is not safe for concurrent use.
//
// # Subpackages
//
//   - rawjson: order-preserving JSON document and values
//   - canonicaljson: RFC 8785 (JCS) serialization, equality and hashing
//   - yamljson: YAML ⇄ rawjson conversion
//   - stagehand: generated models of the Stagehand API
package jsonmodel
