package bilingual_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/afdei/federation-cms/internal/bilingual"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []map[string]any{
		{},
		{"title": "A"},
		{"title": "القمة", "members": float64(25), "active": true},
		{
			"vision":     map[string]any{"title": "Vision", "description": "text"},
			"objectives": []any{"one", "two"},
			"president":  map[string]any{"name": "Name", "nested": []any{map[string]any{"k": nil}}},
		},
	}

	for _, want := range cases {
		encoded, err := bilingual.Encode(want)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		got := bilingual.Decode(encoded)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round trip mismatch: want %#v got %#v", want, got)
		}
	}
}

func TestEncodePassesStringsThrough(t *testing.T) {
	raw := `{"title":"pre-encoded"}`
	got, err := bilingual.Encode(raw)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got != raw {
		t.Fatalf("expected pass-through, got %q", got)
	}

	got, err = bilingual.Encode(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got != raw {
		t.Fatalf("expected raw message pass-through, got %q", got)
	}
}

func TestEncodeRejectsUnserialisable(t *testing.T) {
	if _, err := bilingual.Encode(map[string]any{"fn": func() {}}); err == nil {
		t.Fatalf("expected error for unsupported value")
	}
}

func TestEncodeObjectDefaultsMissingHalf(t *testing.T) {
	for _, in := range []any{nil, map[string]any(nil), json.RawMessage(nil), json.RawMessage(" null ")} {
		got, err := bilingual.EncodeObject(in)
		if err != nil {
			t.Fatalf("EncodeObject(%#v) error = %v", in, err)
		}
		if got != "{}" {
			t.Fatalf("EncodeObject(%#v) = %q, want {}", in, got)
		}
	}
}

func TestIsObject(t *testing.T) {
	cases := map[string]bool{
		`{}`:             true,
		` {"title":"A"}`: true,
		`[1,2]`:          false,
		`"quoted"`:       false,
		`42`:             false,
		`{broken`:        false,
		``:               false,
	}
	for stored, want := range cases {
		if got := bilingual.IsObject(stored); got != want {
			t.Fatalf("IsObject(%q) = %v, want %v", stored, got, want)
		}
	}
}

func TestDecodeRobustness(t *testing.T) {
	for _, stored := range []string{"", "   ", "null", "{invalid", "[1,2]", `"text"`, "42"} {
		got := bilingual.Decode(stored)
		if got == nil || len(got) != 0 {
			t.Fatalf("Decode(%q) = %#v, want empty object", stored, got)
		}
	}
}

func TestDecodeListFallsBackToEmpty(t *testing.T) {
	bad := "{not an array"
	if got := bilingual.DecodeList(&bad); got == nil || len(got) != 0 {
		t.Fatalf("DecodeList() = %#v, want []", got)
	}
	if got := bilingual.DecodeList(nil); got == nil || len(got) != 0 {
		t.Fatalf("DecodeList(nil) = %#v, want []", got)
	}
	object := `{"a":1}`
	if got := bilingual.DecodeList(&object); got == nil || len(got) != 0 {
		t.Fatalf("DecodeList(object) = %#v, want []", got)
	}

	mixed := `[1, "two", {"k":"v"}]`
	want := []any{float64(1), "two", map[string]any{"k": "v"}}
	if got := bilingual.DecodeList(&mixed); !reflect.DeepEqual(got, want) {
		t.Fatalf("DecodeList(mixed) = %#v", got)
	}
}

func TestEncodeStrings(t *testing.T) {
	if got := bilingual.EncodeStrings(nil); got != "[]" {
		t.Fatalf("EncodeStrings(nil) = %q", got)
	}
	if got := bilingual.EncodeStrings([]string{"x"}); got != `["x"]` {
		t.Fatalf("EncodeStrings() = %q", got)
	}
}

func TestImagesCodec(t *testing.T) {
	if got := bilingual.EncodeImages(nil); got != nil {
		t.Fatalf("EncodeImages(nil) = %v, want nil", *got)
	}
	stored := bilingual.EncodeImages([]bilingual.Image{{URL: "/uploads/a.jpg"}})
	if stored == nil || *stored != `[{"url":"/uploads/a.jpg"}]` {
		t.Fatalf("unexpected encoded images %v", stored)
	}
	images := bilingual.DecodeImages(stored)
	if len(images) != 1 || images[0].URL != "/uploads/a.jpg" {
		t.Fatalf("DecodeImages() = %#v", images)
	}

	corrupt := "[{"
	if got := bilingual.DecodeImages(&corrupt); got == nil || len(got) != 0 {
		t.Fatalf("DecodeImages(corrupt) = %#v, want []", got)
	}
}

func TestTextPatchApply(t *testing.T) {
	en, ar := "old", "قديم"
	next := "new"
	patch := &bilingual.TextPatch{En: &next}
	patch.Apply(&en, &ar)
	if en != "new" || ar != "قديم" {
		t.Fatalf("unexpected values en=%q ar=%q", en, ar)
	}
	if patch.Empty() {
		t.Fatalf("expected non-empty patch")
	}
	var nilPatch *bilingual.TextPatch
	if !nilPatch.Empty() {
		t.Fatalf("expected nil patch to be empty")
	}
	if text := patch.Text(); text.En != "new" || text.Ar != "" {
		t.Fatalf("unexpected Text() %#v", text)
	}
}

func TestDecodeAs(t *testing.T) {
	type hero struct {
		Title string `json:"title"`
	}
	got, ok := bilingual.DecodeAs[hero](`{"title":"Hi","extra":1}`)
	if !ok || got.Title != "Hi" {
		t.Fatalf("DecodeAs() = %#v, %v", got, ok)
	}
	if _, ok := bilingual.DecodeAs[hero]("{bad"); ok {
		t.Fatalf("expected DecodeAs to fail on corrupt input")
	}
}
