package types_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/blockberries/capi/types"
)

func decode(t *testing.T, doc string) types.Any {
	t.Helper()
	var v types.Any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("decode %s: %v", doc, err)
	}
	return v
}

func TestAnyScalars(t *testing.T) {
	cases := []struct {
		doc  string
		want types.Any
	}{
		{`null`, types.AnyNull()},
		{`true`, types.AnyBool(true)},
		{`false`, types.AnyBool(false)},
		{`5`, types.AnyInt(5)},
		{`-5`, types.AnyInt(-5)},
		{`5.5`, types.AnyFloat(5.5)},
		{`"hello"`, types.AnyString("hello")},
		{`""`, types.AnyString("")},
		{`"null"`, types.AnyString("null")},
		{`[]`, types.AnyArray()},
		{`{}`, types.AnyObject()},
	}
	for _, c := range cases {
		if got := decode(t, c.doc); !got.Equal(c.want) {
			t.Errorf("decode %s = %s, want %s", c.doc, got, c.want)
		}
	}
}

func TestAnyIntPriority(t *testing.T) {
	// A whole-number float literal lands on the int variant.
	if got := decode(t, `5.0`); !got.Equal(types.AnyInt(5)) {
		t.Errorf("5.0 decoded to %s, want int 5", got)
	}
	if got := decode(t, `1e3`); !got.Equal(types.AnyInt(1000)) {
		t.Errorf("1e3 decoded to %s, want int 1000", got)
	}
	// Largest int64 stays exact.
	if got := decode(t, `9223372036854775807`); !got.Equal(types.AnyInt(9223372036854775807)) {
		t.Errorf("max int64 decoded to %s", got)
	}
	// One past int64 range falls through to float, never wraps.
	got := decode(t, `9223372036854775808`)
	if got.Kind != types.AnyKindFloat {
		t.Fatalf("overflowing literal decoded to %s, want float", got.Kind)
	}
	if got.Float < 0 {
		t.Errorf("overflowing literal wrapped negative: %v", got.Float)
	}
}

func TestAnyNumericStringsStayStrings(t *testing.T) {
	// Quoted tokens are strings regardless of content; the node sends
	// plenty of numeric-looking strings (stakes, raw amounts).
	cases := []string{`"5"`, `"5.5"`, `"-3"`, `"1e3"`, `"1.5000"`}
	for _, doc := range cases {
		got := decode(t, doc)
		if got.Kind != types.AnyKindString {
			t.Errorf("decode %s kind = %v, want string", doc, got.Kind)
			continue
		}
		if want := doc[1 : len(doc)-1]; got.Str != want {
			t.Errorf("decode %s = %q, want %q", doc, got.Str, want)
		}
	}

	doc := `{"funds":"1.5000","memo":"-3","count":2}`
	v := decode(t, doc)
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != doc {
		t.Errorf("round trip changed the document: %s", out)
	}
}

func TestAnyNumberOutOfRange(t *testing.T) {
	var v types.Any
	err := json.Unmarshal([]byte(`1e400`), &v)
	if _, ok := types.IsDecode(err); !ok {
		t.Fatalf("err = %v, want DecodeError", err)
	}
}

func TestAnyNullDistinctFromAbsent(t *testing.T) {
	v := decode(t, `{"a":null}`)
	member, ok := v.Get("a")
	if !ok {
		t.Fatal("null member reported absent")
	}
	if member.Kind != types.AnyKindNull {
		t.Errorf("member kind = %v, want null", member.Kind)
	}
	if _, ok := v.Get("b"); ok {
		t.Error("absent member reported present")
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":null}` {
		t.Errorf("re-encoded to %s", out)
	}
}

func TestAnyObjectOrderPreserved(t *testing.T) {
	doc := `{"z":1,"a":2,"m":{"y":3,"b":4}}`
	v := decode(t, doc)
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != doc {
		t.Errorf("round trip reordered members: %s", out)
	}
}

func TestAnyDuplicateKeys(t *testing.T) {
	v := decode(t, `{"a":1,"b":2,"a":3}`)
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	// Last value wins, at the first occurrence's position.
	if string(out) != `{"a":3,"b":2}` {
		t.Errorf("duplicate keys collapsed to %s", out)
	}
}

func TestAnyRoundTrip(t *testing.T) {
	docs := []string{
		`null`,
		`true`,
		`-42`,
		`0.25`,
		`"with \"quotes\" and é"`,
		`[1,"two",null,[true],{"k":[]}]`,
		`{"rows":[{"owner":"alice","funds":"1.0000 BERRY"}],"more":false}`,
	}
	for _, doc := range docs {
		v := decode(t, doc)
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("encode %s: %v", doc, err)
		}
		again := decode(t, string(out))
		if !again.Equal(v) {
			t.Errorf("round trip of %s changed the tree: %s vs %s", doc, v, again)
		}
	}
}

func TestAnyDecodeErrorPath(t *testing.T) {
	var v types.Any
	err := json.Unmarshal([]byte(`{"outer":{"inner":[1,2,1e999]}}`), &v)
	d, ok := types.IsDecode(err)
	if !ok {
		t.Fatalf("err = %v, want DecodeError", err)
	}
	if d.Path != "$.outer.inner[2]" {
		t.Errorf("path = %q, want $.outer.inner[2]", d.Path)
	}
	// Fail-fast: nothing partial survives.
	if v.Kind != types.AnyKindNull || v.Members != nil {
		t.Errorf("partial decode left state: %+v", v)
	}
}

func TestAnyEncodeNonFinite(t *testing.T) {
	v := types.AnyFloat(math.Inf(1))
	if _, err := json.Marshal(types.AnyArray(v)); err == nil {
		t.Fatal("expected error encoding non-finite float")
	}
}

func TestAnyStringForm(t *testing.T) {
	v := types.AnyObject(
		types.AnyMember{Key: "ok", Value: types.AnyBool(true)},
	)
	if got := v.String(); !strings.Contains(got, `"ok":true`) {
		t.Errorf("String() = %q", got)
	}
}
