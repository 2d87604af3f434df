package jsonmodel

import (
	"errors"
	"testing"

	"github.com/openbindings/jsonmodel-go/rawjson"
)

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := rawjson.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return v
}

func mustParseObject(t *testing.T, s string) *rawjson.Object {
	t.Helper()
	o, err := rawjson.ParseObject([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return o
}

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	b, err := rawjson.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

func assertPath(t *testing.T, err error, path string) {
	t.Helper()
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %T (%v)", err, err)
	}
	if fe.Path != path {
		t.Fatalf("expected path %q, got %q (%v)", path, fe.Path, err)
	}
}

// point is a small model used across the tests.
type point struct{ Object }

var (
	pointX     = Required("x", Int)
	pointY     = Required("y", Int)
	pointLabel = Optional("label", String)
	pointCodec = ModelOf(newPoint)
)

func newPoint(o Object) point { return point{o} }

func (p point) Validate() error { return ValidateFields(p.Raw(), pointX, pointY, pointLabel) }

func mustPoint(t *testing.T, x, y int64, label *string) point {
	t.Helper()
	b := NewBuilder()
	pointX.Set(b, x)
	pointY.Set(b, y)
	pointLabel.Set(b, label)
	o, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return point{o}
}
