package settings_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/afdei/federation-cms/internal/settings"
	"github.com/afdei/federation-cms/pkg/testsupport"
)

func newService(t *testing.T) settings.Service {
	t.Helper()
	return settings.NewService(settings.NewBunSettingRepository(testsupport.NewBunDB(t)))
}

func TestSetManyAndAll(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	err := svc.SetMany(ctx, map[string]any{
		"siteName":   "AFDEI",
		"socials":    map[string]any{"twitter": "@afdei"},
		"maintained": true,
	})
	if err != nil {
		t.Fatalf("SetMany() error = %v", err)
	}

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	want := map[string]any{
		"siteName":   "AFDEI",
		"socials":    map[string]any{"twitter": "@afdei"},
		"maintained": true,
	}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("unexpected settings %#v", all)
	}
}

func TestSetOverwritesExistingKey(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if err := svc.Set(ctx, "footer", "old"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := svc.Set(ctx, "footer", []any{"a", "b"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, found, err := svc.Get(ctx, "footer")
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v, %v", value, found, err)
	}
	if !reflect.DeepEqual(value, []any{"a", "b"}) {
		t.Fatalf("unexpected value %#v", value)
	}
}

func TestGetUnknownKey(t *testing.T) {
	svc := newService(t)
	value, found, err := svc.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found || value != nil {
		t.Fatalf("expected not found, got %v %v", value, found)
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	svc := newService(t)
	err := svc.Set(context.Background(), "  ", "x")
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValueCodec(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string verbatim", value: "hello", want: "hello"},
		{name: "number", value: 3, want: "3"},
		{name: "object", value: map[string]any{"a": 1}, want: `{"a":1}`},
		{name: "raw json string", value: json.RawMessage(`"plain"`), want: "plain"},
		{name: "raw json object", value: json.RawMessage(`{"b":true}`), want: `{"b":true}`},
		{name: "null", value: nil, want: "null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := settings.EncodeValue(tc.value)
			if err != nil {
				t.Fatalf("EncodeValue() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("EncodeValue() = %q, want %q", got, tc.want)
			}
		})
	}

	if got := settings.DecodeValue("not json"); got != "not json" {
		t.Fatalf("expected raw fallback, got %#v", got)
	}
	if got := settings.DecodeValue("42"); got != float64(42) {
		t.Fatalf("expected decoded number, got %#v", got)
	}
}
