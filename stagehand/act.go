package stagehand

import (
	"github.com/cockroachdb/apd/v3"

	jsonmodel "github.com/openbindings/jsonmodel-go"
	"github.com/openbindings/jsonmodel-go/rawjson"
)

// Action is a single browser step the server resolved or the caller replays.
type Action struct{ jsonmodel.Object }

var (
	actionMethod        = jsonmodel.Required("method", jsonmodel.String)
	actionSelector      = jsonmodel.Required("selector", jsonmodel.String)
	actionArguments     = jsonmodel.Required("arguments", jsonmodel.ListOf(jsonmodel.String))
	actionDescription   = jsonmodel.Required("description", jsonmodel.String)
	actionBackendNodeID = jsonmodel.Optional("backendNodeId", jsonmodel.Int)

	actionFields = []jsonmodel.FieldChecker{
		actionMethod, actionSelector, actionArguments, actionDescription, actionBackendNodeID,
	}

	actionCodec = jsonmodel.ModelOf(newAction)
)

func newAction(o jsonmodel.Object) Action { return Action{o} }

// ActionFromRawUnchecked wraps a copy of doc without validating it.
func ActionFromRawUnchecked(doc *rawjson.Object) Action {
	return Action{jsonmodel.FromRawUnchecked(doc)}
}

// DecodeAction parses and validates an Action.
func DecodeAction(data []byte, opts ...jsonmodel.DecodeOption) (Action, error) {
	return jsonmodel.Decode(data, newAction, opts...)
}

// ActionParams holds the fields of a new Action.
type ActionParams struct {
	Method        string
	Selector      string
	Arguments     []string
	Description   string
	BackendNodeID *int64
}

// NewAction builds an Action.
func NewAction(p ActionParams) (Action, error) {
	b := jsonmodel.NewBuilder()
	actionMethod.Set(b, p.Method)
	actionSelector.Set(b, p.Selector)
	actionArguments.Set(b, p.Arguments)
	actionDescription.Set(b, p.Description)
	actionBackendNodeID.Set(b, p.BackendNodeID)
	o, err := b.Build()
	return Action{o}, err
}

// Method is the element method to invoke, such as "click" or "fill".
func (a Action) Method() (string, error) { return actionMethod.Get(a.Raw()) }

// Selector is the XPath or CSS selector of the target element.
func (a Action) Selector() (string, error) { return actionSelector.Get(a.Raw()) }

// Arguments are passed to Method in order.
func (a Action) Arguments() ([]string, error) { return actionArguments.Get(a.Raw()) }

// Description says what the step does, in plain words.
func (a Action) Description() (string, error) { return actionDescription.Get(a.Raw()) }

// BackendNodeID is the DevTools node id of the target, when known.
func (a Action) BackendNodeID() (*int64, error) { return actionBackendNodeID.Get(a.Raw()) }

// Validate checks every field of a.
func (a Action) Validate() error { return jsonmodel.ValidateFields(a.Raw(), actionFields...) }

// ActOptions tunes how an instruction is planned.
type ActOptions struct{ jsonmodel.Object }

var (
	actOptionsModel     = jsonmodel.Optional("model", modelNameValues.Codec())
	actOptionsVariables = jsonmodel.Optional("variables", jsonmodel.MapOf(jsonmodel.String))
	actOptionsTimeout   = jsonmodel.Optional("timeout", jsonmodel.Int)

	actOptionsFields = []jsonmodel.FieldChecker{
		actOptionsModel, actOptionsVariables, actOptionsTimeout,
	}

	actOptionsCodec = jsonmodel.ModelOf(newActOptions)
)

func newActOptions(o jsonmodel.Object) ActOptions { return ActOptions{o} }

// ActOptionsParams holds the fields of new ActOptions.
type ActOptionsParams struct {
	Model     *jsonmodel.Enum[ModelName]
	Variables *map[string]string
	// Timeout is in milliseconds.
	Timeout *int64
}

// NewActOptions builds ActOptions.
func NewActOptions(p ActOptionsParams) (ActOptions, error) {
	b := jsonmodel.NewBuilder()
	actOptionsModel.Set(b, p.Model)
	actOptionsVariables.Set(b, p.Variables)
	actOptionsTimeout.Set(b, p.Timeout)
	o, err := b.Build()
	return ActOptions{o}, err
}

// Model selects the LLM that plans the action.
func (o ActOptions) Model() (*jsonmodel.Enum[ModelName], error) { return actOptionsModel.Get(o.Raw()) }

// Variables are substituted into %name% placeholders of the instruction.
func (o ActOptions) Variables() (*map[string]string, error) {
	return actOptionsVariables.Get(o.Raw())
}

// Timeout is in milliseconds.
func (o ActOptions) Timeout() (*int64, error) { return actOptionsTimeout.Get(o.Raw()) }

// Validate checks every field of o.
func (o ActOptions) Validate() error { return jsonmodel.ValidateFields(o.Raw(), actOptionsFields...) }

// ActInput is either a structured Action or a natural-language instruction.
type ActInput struct{ u jsonmodel.Union }

const (
	actInputAction = iota
	actInputInstruction
)

var actInputSpec = jsonmodel.NewUnionSpec("ActInput",
	jsonmodel.Shape("action", actionCodec),
	jsonmodel.Shape("instruction", jsonmodel.String),
)

var actInputCodec = jsonmodel.WrapUnion(actInputSpec,
	func(u jsonmodel.Union) ActInput { return ActInput{u} },
	ActInput.Union,
)

// ActInputFromAction wraps a structured action.
func ActInputFromAction(a Action) ActInput {
	return ActInput{actInputSpec.MustFrom(actInputAction, a)}
}

// ActInputFromInstruction wraps a natural-language instruction.
func ActInputFromInstruction(s string) ActInput {
	return ActInput{actInputSpec.MustFrom(actInputInstruction, s)}
}

// ParseActInput resolves raw JSON into an ActInput. Input matching neither
// shape is kept as is and fails Validate.
func ParseActInput(data []byte) (ActInput, error) {
	u, err := actInputSpec.ParseJSON(data)
	return ActInput{u}, err
}

// Union returns the underlying union.
func (x ActInput) Union() jsonmodel.Union { return x.u }

// Action returns the action, if that shape was chosen.
func (x ActInput) Action() (Action, bool) { return jsonmodel.Pick[Action](x.u) }

// Instruction returns the instruction, if that shape was chosen.
func (x ActInput) Instruction() (string, bool) { return jsonmodel.Pick[string](x.u) }

// Match calls the handler for the chosen shape. Unmatched input fails with
// jsonmodel.ErrUnmatchedVariant.
func (x ActInput) Match(action func(Action) error, instruction func(string) error) error {
	return x.u.Match(
		func(v any) error { return action(v.(Action)) },
		func(v any) error { return instruction(v.(string)) },
	)
}

// Validate fails with jsonmodel.ErrUnmatchedVariant when neither shape matched.
func (x ActInput) Validate() error { return x.u.Validate() }

// Equal compares the JSON both inputs encode to.
func (x ActInput) Equal(o ActInput) bool { return x.u.Equal(o.u) }

// MarshalJSON emits the input exactly as it was received or built.
func (x ActInput) MarshalJSON() ([]byte, error) { return x.u.MarshalJSON() }

// UnmarshalJSON resolves b. Only malformed JSON is an error.
func (x *ActInput) UnmarshalJSON(b []byte) error {
	u, err := actInputSpec.ParseJSON(b)
	if err != nil {
		return err
	}
	x.u = u
	return nil
}

// ActRequest is the body of POST /sessions/{id}/act.
type ActRequest struct{ jsonmodel.Object }

var (
	actRequestInput   = jsonmodel.Required("input", actInputCodec)
	actRequestOptions = jsonmodel.Optional("options", actOptionsCodec)
	actRequestFrameID = jsonmodel.Optional("frameId", jsonmodel.String)

	actRequestFields = []jsonmodel.FieldChecker{
		actRequestInput, actRequestOptions, actRequestFrameID,
	}
)

func newActRequest(o jsonmodel.Object) ActRequest { return ActRequest{o} }

// ActRequestFromRawUnchecked wraps a copy of doc without validating it.
func ActRequestFromRawUnchecked(doc *rawjson.Object) ActRequest {
	return ActRequest{jsonmodel.FromRawUnchecked(doc)}
}

// DecodeActRequest parses and validates an ActRequest.
func DecodeActRequest(data []byte, opts ...jsonmodel.DecodeOption) (ActRequest, error) {
	return jsonmodel.Decode(data, newActRequest, opts...)
}

// ActRequestParams holds the fields of a new ActRequest.
type ActRequestParams struct {
	Input   ActInput
	Options *ActOptions
	FrameID *string
}

// NewActRequest builds an ActRequest.
func NewActRequest(p ActRequestParams) (ActRequest, error) {
	b := jsonmodel.NewBuilder()
	actRequestInput.Set(b, p.Input)
	actRequestOptions.Set(b, p.Options)
	actRequestFrameID.Set(b, p.FrameID)
	o, err := b.Build()
	return ActRequest{o}, err
}

// Input is the action or instruction to perform.
func (r ActRequest) Input() (ActInput, error) { return actRequestInput.Get(r.Raw()) }

// Options tune planning; nil when absent.
func (r ActRequest) Options() (*ActOptions, error) { return actRequestOptions.Get(r.Raw()) }

// FrameID targets an iframe instead of the main frame.
func (r ActRequest) FrameID() (*string, error) { return actRequestFrameID.Get(r.Raw()) }

// Validate checks every field of r.
func (r ActRequest) Validate() error { return jsonmodel.ValidateFields(r.Raw(), actRequestFields...) }

// ActResult reports the outcome of an act call.
type ActResult struct{ jsonmodel.Object }

var (
	actResultSuccess = jsonmodel.Required("success", jsonmodel.Bool)
	actResultMessage = jsonmodel.Required("message", jsonmodel.String)
	actResultActions = jsonmodel.Required("actions", jsonmodel.ListOf(actionCodec))
	actResultCost    = jsonmodel.Optional("cost", jsonmodel.Decimal)

	actResultFields = []jsonmodel.FieldChecker{
		actResultSuccess, actResultMessage, actResultActions, actResultCost,
	}
)

func newActResult(o jsonmodel.Object) ActResult { return ActResult{o} }

// DecodeActResult parses and validates an ActResult.
func DecodeActResult(data []byte, opts ...jsonmodel.DecodeOption) (ActResult, error) {
	return jsonmodel.Decode(data, newActResult, opts...)
}

// ActResultParams holds the fields of a new ActResult.
type ActResultParams struct {
	Success bool
	Message string
	Actions []Action
	Cost    *apd.Decimal
}

// NewActResult builds an ActResult.
func NewActResult(p ActResultParams) (ActResult, error) {
	b := jsonmodel.NewBuilder()
	actResultSuccess.Set(b, p.Success)
	actResultMessage.Set(b, p.Message)
	actResultActions.Set(b, p.Actions)
	if p.Cost != nil {
		actResultCost.Set(b, &p.Cost)
	}
	o, err := b.Build()
	return ActResult{o}, err
}

// Success reports whether every step succeeded.
func (r ActResult) Success() (bool, error) { return actResultSuccess.Get(r.Raw()) }

// Message is a human-readable summary.
func (r ActResult) Message() (string, error) { return actResultMessage.Get(r.Raw()) }

// Actions lists the steps that were executed, in order.
func (r ActResult) Actions() ([]Action, error) { return actResultActions.Get(r.Raw()) }

// Cost is the billed amount in USD.
func (r ActResult) Cost() (*apd.Decimal, error) {
	c, err := actResultCost.Get(r.Raw())
	if err != nil || c == nil {
		return nil, err
	}
	return *c, nil
}

// Validate checks every field of r.
func (r ActResult) Validate() error { return jsonmodel.ValidateFields(r.Raw(), actResultFields...) }
