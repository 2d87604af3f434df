package stagehand

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	jsonmodel "github.com/openbindings/jsonmodel-go"
)

const sessionJSON = `{"id":"6f1c2a36-0cf2-4c0b-9d3f-3f4c1c3b8a10","status":"RUNNING","createdAt":"2025-03-01T12:00:00Z","headless":false,"userMetadata":{"team":"qa","retries":2}}`

func TestSession_Decode(t *testing.T) {
	s, err := DecodeSession([]byte(sessionJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, _ := s.ID()
	if id != uuid.MustParse("6f1c2a36-0cf2-4c0b-9d3f-3f4c1c3b8a10") {
		t.Fatalf("unexpected id %s", id)
	}
	st, _ := s.Status()
	if !st.Is(SessionStatusRunning) {
		t.Fatalf("unexpected status %v", st.Raw())
	}
	created, _ := s.CreatedAt()
	if !created.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected createdAt %v", created)
	}
	h, _ := s.Headless()
	if h == nil || !h.Is(BrowserModeHeaded) {
		t.Fatalf("expected headed browser, got %v", h)
	}
	md, err := s.Metadata()
	if err != nil || md == nil {
		t.Fatalf("metadata: %v %v", md, err)
	}
	if (*md)["team"] != "qa" {
		t.Fatalf("unexpected metadata %v", *md)
	}
	if r, _ := s.Region(); r != nil {
		t.Fatalf("expected no region, got %q", *r)
	}
}

func TestSession_UnknownStatusRoundTrips(t *testing.T) {
	data := []byte(`{"id":"6f1c2a36-0cf2-4c0b-9d3f-3f4c1c3b8a10","status":"brand_new_value","createdAt":"2025-03-01T12:00:00Z"}`)
	if _, err := DecodeSession(data); !errors.Is(err, jsonmodel.ErrUnrecognizedEnumValue) {
		t.Fatalf("expected unrecognized enum, got %v", err)
	}

	s, err := DecodeSession(data, jsonmodel.Unchecked())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	st, err := s.Status()
	if err != nil {
		t.Fatalf("reading an unknown enum must not fail: %v", err)
	}
	if st.IsRecognized() || st.Raw() != "brand_new_value" {
		t.Fatalf("unexpected status %#v", st.Raw())
	}
	if out, _ := jsonmodel.Encode(s); string(out) != string(data) {
		t.Fatalf("expected verbatim encoding, got %s", out)
	}
}

func TestSession_NewRoundTrip(t *testing.T) {
	status, _ := NewSessionStatus(SessionStatusCompleted)
	headless, _ := NewBrowserMode(BrowserModeHeadless)
	region := "us-west-2"
	s, err := NewSession(SessionParams{
		ID:        uuid.MustParse("00000000-0000-4000-8000-000000000001"),
		Status:    status,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Headless:  &headless,
		Region:    &region,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	want := `{"id":"00000000-0000-4000-8000-000000000001","status":"COMPLETED","createdAt":"2025-01-02T03:04:05Z","headless":true,"region":"us-west-2"}`
	data, _ := jsonmodel.Encode(s)
	if string(data) != want {
		t.Fatalf("unexpected encoding\nwant: %s\ngot:  %s", want, data)
	}
	back, err := DecodeSession(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !back.Equal(s) {
		t.Fatalf("round trip changed the document")
	}
}

func TestSession_YAMLFixture(t *testing.T) {
	fixture := []byte(`
id: 6f1c2a36-0cf2-4c0b-9d3f-3f4c1c3b8a10
status: TIMED_OUT
createdAt: 2025-03-01T12:00:00Z
headless: true
userMetadata:
  labels: [smoke, nightly]
`)
	s, err := DecodeSessionYAML(fixture)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	st, _ := s.Status()
	if !st.Is(SessionStatusTimedOut) {
		t.Fatalf("unexpected status %v", st.Raw())
	}
	md, _ := s.Metadata()
	out, err := jsonmodel.Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"id":"6f1c2a36-0cf2-4c0b-9d3f-3f4c1c3b8a10","status":"TIMED_OUT","createdAt":"2025-03-01T12:00:00Z","headless":true,"userMetadata":{"labels":["smoke","nightly"]}}`
	if string(out) != want {
		t.Fatalf("unexpected JSON\nwant: %s\ngot:  %s", want, out)
	}
	if md == nil {
		t.Fatalf("expected metadata")
	}
	if diff := cmp.Diff([]any{"smoke", "nightly"}, (*md)["labels"]); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSession_BadFieldTypes(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		path string
	}{
		{"id", `{"id":"nope","status":"RUNNING","createdAt":"2025-03-01T12:00:00Z"}`, "id"},
		{"createdAt", `{"id":"6f1c2a36-0cf2-4c0b-9d3f-3f4c1c3b8a10","status":"RUNNING","createdAt":17}`, "createdAt"},
		{"headless", `{"id":"6f1c2a36-0cf2-4c0b-9d3f-3f4c1c3b8a10","status":"RUNNING","createdAt":"2025-03-01T12:00:00Z","headless":"yes"}`, "headless"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSession([]byte(tc.in))
			var fe *jsonmodel.FieldError
			if !errors.As(err, &fe) || fe.Path != tc.path {
				t.Fatalf("expected error at %s, got %v", tc.path, err)
			}
		})
	}
}
