package sections_test

import (
	"testing"

	"github.com/afdei/federation-cms/internal/sections"
)

func TestDecodeVariantKnownSections(t *testing.T) {
	hero := sections.DecodeVariant("hero", `{"title":"Welcome","subtitle":"Sub"}`)
	typed, ok := hero.(sections.HeroContent)
	if !ok {
		t.Fatalf("expected HeroContent, got %T", hero)
	}
	if typed.Title != "Welcome" || typed.Kind() != sections.KindHero {
		t.Fatalf("unexpected hero %#v", typed)
	}

	advisory := sections.DecodeVariant("advisory", `{"title":"Bodies","bodies":[{"title":"Council","members":12}]}`)
	body, ok := advisory.(sections.AdvisoryContent)
	if !ok || len(body.Bodies) != 1 || body.Bodies[0].Members != 12 {
		t.Fatalf("unexpected advisory %#v", advisory)
	}
}

func TestDecodeVariantFallsBackToRaw(t *testing.T) {
	unknown := sections.DecodeVariant("sponsors", `{"logos":["a.png"]}`)
	raw, ok := unknown.(sections.RawContent)
	if !ok {
		t.Fatalf("expected RawContent, got %T", unknown)
	}
	if raw.Kind() != sections.Kind("sponsors") || raw.Data["logos"] == nil {
		t.Fatalf("unexpected raw content %#v", raw)
	}

	mismatched := sections.DecodeVariant("advisory", `{"bodies":"not a list"}`)
	if _, ok := mismatched.(sections.RawContent); !ok {
		t.Fatalf("expected RawContent for mismatched payload, got %T", mismatched)
	}
}

func TestDecodeAsAndVariants(t *testing.T) {
	contact, ok := sections.DecodeAs[sections.ContactContent](`{"email":"info@afdei.org","formLabels":{"submit":"Send"}}`)
	if !ok || contact.Email != "info@afdei.org" || contact.FormLabels.Submit != "Send" {
		t.Fatalf("unexpected contact %#v", contact)
	}

	en, ar := sections.Variants(&sections.Section{Section: "about", ContentEn: `{"title":"About"}`, ContentAr: "{bad"})
	if _, ok := en.(sections.AboutContent); !ok {
		t.Fatalf("expected AboutContent, got %T", en)
	}
	if rawAr, ok := ar.(sections.RawContent); !ok || len(rawAr.Data) != 0 {
		t.Fatalf("expected empty RawContent for corrupt half, got %#v", ar)
	}
}

func TestDefaultSchemasCompile(t *testing.T) {
	set := sections.DefaultSchemas()
	if err := set.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for _, kind := range sections.KnownKinds() {
		if !set.Has(string(kind)) {
			t.Fatalf("missing schema for %s", kind)
		}
	}
}
