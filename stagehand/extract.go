package stagehand

import (
	jsonmodel "github.com/openbindings/jsonmodel-go"
)

// ExtractRequest asks the server to pull structured data out of the page.
type ExtractRequest struct{ jsonmodel.Object }

var (
	extractRequestInstruction = jsonmodel.Optional("instruction", jsonmodel.String)
	extractRequestSchema      = jsonmodel.Optional("schema", jsonmodel.JSON)
	extractRequestSelector    = jsonmodel.Optional("selector", jsonmodel.String)

	extractRequestFields = []jsonmodel.FieldChecker{
		extractRequestInstruction, extractRequestSchema, extractRequestSelector,
	}
)

func newExtractRequest(o jsonmodel.Object) ExtractRequest { return ExtractRequest{o} }

// DecodeExtractRequest parses and validates an ExtractRequest.
func DecodeExtractRequest(data []byte, opts ...jsonmodel.DecodeOption) (ExtractRequest, error) {
	return jsonmodel.Decode(data, newExtractRequest, opts...)
}

// ExtractRequestParams holds the fields of a new ExtractRequest.
type ExtractRequestParams struct {
	Instruction *string
	// Schema is a JSON Schema describing the result shape.
	Schema   *any
	Selector *string
}

// NewExtractRequest builds an ExtractRequest.
func NewExtractRequest(p ExtractRequestParams) (ExtractRequest, error) {
	b := jsonmodel.NewBuilder()
	extractRequestInstruction.Set(b, p.Instruction)
	extractRequestSchema.Set(b, p.Schema)
	extractRequestSelector.Set(b, p.Selector)
	o, err := b.Build()
	return ExtractRequest{o}, err
}

// Instruction describes what to extract.
func (r ExtractRequest) Instruction() (*string, error) { return extractRequestInstruction.Get(r.Raw()) }

// Schema is a deep copy of the requested result schema.
func (r ExtractRequest) Schema() (*any, error) { return extractRequestSchema.Get(r.Raw()) }

// Selector narrows extraction to part of the page.
func (r ExtractRequest) Selector() (*string, error) { return extractRequestSelector.Get(r.Raw()) }

// Validate checks every field of r.
func (r ExtractRequest) Validate() error {
	return jsonmodel.ValidateFields(r.Raw(), extractRequestFields...)
}

// ExtractResult carries the extracted data in the shape the schema asked for.
type ExtractResult struct{ jsonmodel.Object }

var extractResultData = jsonmodel.Required("data", jsonmodel.JSON)

func newExtractResult(o jsonmodel.Object) ExtractResult { return ExtractResult{o} }

// DecodeExtractResult parses and validates an ExtractResult.
func DecodeExtractResult(data []byte, opts ...jsonmodel.DecodeOption) (ExtractResult, error) {
	return jsonmodel.Decode(data, newExtractResult, opts...)
}

// Data is a deep copy; callers may modify it.
func (r ExtractResult) Data() (any, error) { return extractResultData.Get(r.Raw()) }

// Validate checks every field of r.
func (r ExtractResult) Validate() error { return jsonmodel.ValidateFields(r.Raw(), extractResultData) }
