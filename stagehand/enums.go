package stagehand

import (
	jsonmodel "github.com/openbindings/jsonmodel-go"
)

// SessionStatus is the lifecycle state of a browser session.
type SessionStatus int

const (
	SessionStatusRunning SessionStatus = iota + 1
	SessionStatusError
	SessionStatusTimedOut
	SessionStatusCompleted
)

var sessionStatusValues = jsonmodel.NewVocabulary("SessionStatus",
	jsonmodel.Wire(SessionStatusRunning, "RUNNING"),
	jsonmodel.Wire(SessionStatusError, "ERROR"),
	jsonmodel.Wire(SessionStatusTimedOut, "TIMED_OUT"),
	jsonmodel.Wire(SessionStatusCompleted, "COMPLETED"),
)

// NewSessionStatus returns the wire enum for s.
func NewSessionStatus(s SessionStatus) (jsonmodel.Enum[SessionStatus], error) {
	return sessionStatusValues.Of(s)
}

// ModelName identifies the LLM used to plan actions.
type ModelName int

const (
	ModelNameGPT4o ModelName = iota + 1
	ModelNameGPT4oMini
	ModelNameClaudeSonnet
	ModelNameGeminiFlash
)

var modelNameValues = jsonmodel.NewVocabulary("ModelName",
	jsonmodel.Wire(ModelNameGPT4o, "openai/gpt-4o"),
	jsonmodel.Wire(ModelNameGPT4oMini, "openai/gpt-4o-mini"),
	jsonmodel.Wire(ModelNameClaudeSonnet, "anthropic/claude-3-7-sonnet-latest"),
	jsonmodel.Wire(ModelNameGeminiFlash, "google/gemini-2.0-flash"),
)

// NewModelName returns the wire enum for m.
func NewModelName(m ModelName) (jsonmodel.Enum[ModelName], error) {
	return modelNameValues.Of(m)
}

// BrowserMode is carried on the wire as the boolean "headless" flag.
type BrowserMode int

const (
	BrowserModeHeadless BrowserMode = iota + 1
	BrowserModeHeaded
)

var browserModeValues = jsonmodel.NewVocabulary("BrowserMode",
	jsonmodel.Wire(BrowserModeHeadless, true),
	jsonmodel.Wire(BrowserModeHeaded, false),
)

// NewBrowserMode returns the wire enum for m.
func NewBrowserMode(m BrowserMode) (jsonmodel.Enum[BrowserMode], error) {
	return browserModeValues.Of(m)
}
