package seed

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/afdei/federation-cms/internal/bilingual"
)

func TestCheckTyped(t *testing.T) {
	var records []sectionRecord
	if err := load("sections.json", &records); err != nil {
		t.Fatalf("load() error = %v", err)
	}
	for _, record := range records {
		if err := checkTyped(record); err != nil {
			t.Fatalf("checkTyped(%s) error = %v", record.Section, err)
		}
	}

	broken := sectionRecord{Section: "advisory", Content: bilingual.RawPayload{
		En: json.RawMessage(`{"bodies":[{"members":"twelve"}]}`),
		Ar: json.RawMessage(`{}`),
	}}
	if err := checkTyped(broken); !errors.Is(err, ErrUntypedContent) {
		t.Fatalf("expected ErrUntypedContent, got %v", err)
	}

	unknown := sectionRecord{Section: "sponsors", Content: bilingual.RawPayload{En: json.RawMessage(`[1]`)}}
	if err := checkTyped(unknown); err != nil {
		t.Fatalf("expected unknown sections to pass, got %v", err)
	}
}
