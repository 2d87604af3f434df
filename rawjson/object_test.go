package rawjson

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParseObject(t *testing.T, s string) *Object {
	t.Helper()
	o, err := ParseObject([]byte(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return o
}

func TestParse_PreservesKeyOrderAndNumberText(t *testing.T) {
	in := `{"z":1,"a":{"y":2.50,"b":[1e3,null,true]},"m":"x"}`
	o := mustParseObject(t, in)

	if diff := cmp.Diff([]string{"z", "a", "m"}, o.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	out, err := Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != in {
		t.Fatalf("expected identical output\nwant: %s\ngot:  %s", in, out)
	}
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	o := mustParseObject(t, `{"a":1,"b":2,"a":3}`)
	if diff := cmp.Diff([]string{"a", "b"}, o.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	v, _ := o.Get("a")
	if v != json.Number("3") {
		t.Fatalf("expected last value to win, got %#v", v)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":1} {}`, `[1,]`, `{"a" 1}`} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
	if _, err := ParseObject([]byte(`[1]`)); err == nil {
		t.Fatalf("expected error for non-object")
	}
}

func TestObject_SetOverwriteKeepsPosition(t *testing.T) {
	o := NewObject()
	o.Set("a", "1")
	o.Set("b", "2")
	o.Set("a", "3")

	out, err := Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":"3","b":"2"}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestObject_GetDistinguishesNullFromAbsent(t *testing.T) {
	o := mustParseObject(t, `{"n":null}`)
	if v, ok := o.Get("n"); !ok || v != nil {
		t.Fatalf("expected present null, got %#v %v", v, ok)
	}
	if _, ok := o.Get("missing"); ok {
		t.Fatalf("expected absent")
	}
}

func TestObject_FreezeIsIndependentSnapshot(t *testing.T) {
	src := mustParseObject(t, `{"inner":{"k":"v"}}`)
	frozen := src.Freeze()

	inner, _ := src.Get("inner")
	inner.(*Object).Set("k", "changed")
	src.Set("added", true)

	out, _ := Marshal(frozen)
	if string(out) != `{"inner":{"k":"v"}}` {
		t.Fatalf("frozen snapshot changed: %s", out)
	}
	if !frozen.Frozen() {
		t.Fatalf("expected frozen")
	}
	fi, _ := frozen.Get("inner")
	if !fi.(*Object).Frozen() {
		t.Fatalf("expected nested objects frozen")
	}
	if frozen.Freeze() != frozen {
		t.Fatalf("expected Freeze of frozen object to return it")
	}
}

func TestObject_SetOnFrozenPanics(t *testing.T) {
	o := NewObject().Freeze()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		if !strings.Contains(r.(string), "frozen") {
			t.Fatalf("unexpected panic %v", r)
		}
	}()
	o.Set("k", "v")
}

func TestObject_CloneIsMutable(t *testing.T) {
	frozen := mustParseObject(t, `{"a":{"b":1}}`).Freeze()
	c := frozen.Clone()
	c.Set("x", "y")
	a, _ := c.Get("a")
	a.(*Object).Set("b", json.Number("2"))

	out, _ := Marshal(frozen)
	if string(out) != `{"a":{"b":1}}` {
		t.Fatalf("clone aliased frozen state: %s", out)
	}
}

func TestObject_EntriesIsRestartable(t *testing.T) {
	o := mustParseObject(t, `{"a":1,"b":2,"c":3}`)
	collect := func() []string {
		var ks []string
		for k := range o.Entries() {
			ks = append(ks, k)
		}
		return ks
	}
	first, second := collect(), collect()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("entries differ between passes:\n%s", diff)
	}
	// Early break.
	n := 0
	for range o.Entries() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected early stop, got %d", n)
	}
}

func TestObject_FrozenConcurrentReads(t *testing.T) {
	o := mustParseObject(t, `{"a":1,"b":[1,2,3],"c":{"d":"e"}}`).Freeze()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := Marshal(o); err != nil {
					t.Errorf("marshal: %v", err)
					return
				}
				o.Get("c")
			}
		}()
	}
	wg.Wait()
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	o := NewObject()
	o.Set("sel", "a > b & <c>")
	out, err := Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"sel":"a > b & <c>"}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestMarshalIndent(t *testing.T) {
	o := mustParseObject(t, `{"b":1,"a":2}`)
	out, err := MarshalIndent(o, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "{\n  \"b\": 1,\n  \"a\": 2\n}"
	if string(out) != want {
		t.Fatalf("unexpected output\n%s", out)
	}
}

func TestFromGo(t *testing.T) {
	v, err := FromGo(map[string]any{"n": 1, "s": []string{"a"}})
	if err != nil {
		t.Fatalf("from go: %v", err)
	}
	o, ok := v.(*Object)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	n, _ := o.Get("n")
	if n != json.Number("1") {
		t.Fatalf("expected json.Number, got %#v", n)
	}
	s, _ := o.Get("s")
	if diff := cmp.Diff([]any{"a"}, s); diff != "" {
		t.Fatalf("s (-want +got):\n%s", diff)
	}
}

func TestObject_JSONInterop(t *testing.T) {
	var wrapper struct {
		Doc *Object `json:"doc"`
	}
	if err := json.Unmarshal([]byte(`{"doc":{"y":1,"x":2}}`), &wrapper); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(wrapper)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"doc":{"y":1,"x":2}}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestTypeName(t *testing.T) {
	for _, tc := range []struct {
		v    any
		want string
	}{
		{nil, "null"},
		{true, "boolean"},
		{"s", "string"},
		{json.Number("1"), "number"},
		{[]any{}, "array"},
		{NewObject(), "object"},
	} {
		if got := TypeName(tc.v); got != tc.want {
			t.Errorf("TypeName(%#v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestObject_UnmarshalJSONRejectsFrozen(t *testing.T) {
	f, err := ParseObject([]byte(`{"a":"1"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f = f.Freeze()
	if err := json.Unmarshal([]byte(`{"b":2}`), f); err == nil {
		t.Fatalf("expected error unmarshalling into a frozen object")
	}
	if !f.Frozen() {
		t.Fatalf("object was unfrozen")
	}
	if out, _ := Marshal(f); string(out) != `{"a":"1"}` {
		t.Fatalf("frozen object changed: %s", out)
	}

	var m Object
	if err := json.Unmarshal([]byte(`{"b":2}`), &m); err != nil {
		t.Fatalf("unmarshal into mutable object: %v", err)
	}
	if out, _ := Marshal(&m); string(out) != `{"b":2}` {
		t.Fatalf("unexpected document %s", out)
	}
}
