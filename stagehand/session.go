package stagehand

import (
	"time"

	"github.com/google/uuid"

	jsonmodel "github.com/openbindings/jsonmodel-go"
)

// Session describes a remote browser session.
type Session struct{ jsonmodel.Object }

var (
	sessionID        = jsonmodel.Required("id", jsonmodel.UUID)
	sessionStatus    = jsonmodel.Required("status", sessionStatusValues.Codec())
	sessionCreatedAt = jsonmodel.Required("createdAt", jsonmodel.Time)
	sessionHeadless  = jsonmodel.Optional("headless", browserModeValues.Codec())
	sessionMetadata  = jsonmodel.Optional("userMetadata", jsonmodel.MapOf(jsonmodel.JSON))
	sessionRegion    = jsonmodel.Optional("region", jsonmodel.String)

	sessionFields = []jsonmodel.FieldChecker{
		sessionID, sessionStatus, sessionCreatedAt, sessionHeadless, sessionMetadata, sessionRegion,
	}
)

func newSession(o jsonmodel.Object) Session { return Session{o} }

// DecodeSession parses and validates a Session.
func DecodeSession(data []byte, opts ...jsonmodel.DecodeOption) (Session, error) {
	return jsonmodel.Decode(data, newSession, opts...)
}

// DecodeSessionYAML accepts the YAML form used by fixture files.
func DecodeSessionYAML(data []byte, opts ...jsonmodel.DecodeOption) (Session, error) {
	return jsonmodel.DecodeYAML(data, newSession, opts...)
}

// SessionParams holds the fields of a new Session.
type SessionParams struct {
	ID        uuid.UUID
	Status    jsonmodel.Enum[SessionStatus]
	CreatedAt time.Time
	Headless  *jsonmodel.Enum[BrowserMode]
	Metadata  *map[string]any
	Region    *string
}

// NewSession builds a Session.
func NewSession(p SessionParams) (Session, error) {
	b := jsonmodel.NewBuilder()
	sessionID.Set(b, p.ID)
	sessionStatus.Set(b, p.Status)
	sessionCreatedAt.Set(b, p.CreatedAt)
	sessionHeadless.Set(b, p.Headless)
	sessionMetadata.Set(b, p.Metadata)
	sessionRegion.Set(b, p.Region)
	o, err := b.Build()
	return Session{o}, err
}

// ID identifies the session.
func (s Session) ID() (uuid.UUID, error) { return sessionID.Get(s.Raw()) }

// Status may hold a value this client does not know yet.
func (s Session) Status() (jsonmodel.Enum[SessionStatus], error) { return sessionStatus.Get(s.Raw()) }

// CreatedAt is when the session was started.
func (s Session) CreatedAt() (time.Time, error) { return sessionCreatedAt.Get(s.Raw()) }

// Headless reports how the browser runs; nil when the server did not say.
func (s Session) Headless() (*jsonmodel.Enum[BrowserMode], error) { return sessionHeadless.Get(s.Raw()) }

// Metadata is caller-supplied and passed through untouched.
func (s Session) Metadata() (*map[string]any, error) { return sessionMetadata.Get(s.Raw()) }

// Region is where the browser runs.
func (s Session) Region() (*string, error) { return sessionRegion.Get(s.Raw()) }

// Validate checks every field of s.
func (s Session) Validate() error { return jsonmodel.ValidateFields(s.Raw(), sessionFields...) }
