package bilingual

import "encoding/json"

// Text is a scalar value authored in both languages.
type Text struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// TextPatch carries optional halves of a Text. Nil halves are left untouched.
type TextPatch struct {
	En *string `json:"en,omitempty"`
	Ar *string `json:"ar,omitempty"`
}

// Empty reports whether neither half was supplied.
func (p *TextPatch) Empty() bool {
	return p == nil || (p.En == nil && p.Ar == nil)
}

// Apply writes supplied halves into en and ar.
func (p *TextPatch) Apply(en, ar *string) {
	if p == nil {
		return
	}
	if p.En != nil {
		*en = *p.En
	}
	if p.Ar != nil {
		*ar = *p.Ar
	}
}

// Text returns the patch as a Text with missing halves empty.
func (p *TextPatch) Text() Text {
	var out Text
	if p != nil {
		p.Apply(&out.En, &out.Ar)
	}
	return out
}

// List is a string list authored in both languages.
type List struct {
	En []string `json:"en"`
	Ar []string `json:"ar"`
}

// Items is the read shape of a stored list pair. Elements keep the JSON type
// they were stored with.
type Items struct {
	En []any `json:"en"`
	Ar []any `json:"ar"`
}

// Payload is the {en, ar} pair of free-form section objects.
type Payload struct {
	En map[string]any `json:"en"`
	Ar map[string]any `json:"ar"`
}

// RawPayload keeps request halves undecoded so absent halves stay nil.
type RawPayload struct {
	En json.RawMessage `json:"en,omitempty"`
	Ar json.RawMessage `json:"ar,omitempty"`
}

// Image references an uploaded or external picture.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// EncodeImages stores an image list. A nil list encodes as SQL null.
func EncodeImages(images []Image) *string {
	if images == nil {
		return nil
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}

// DecodeImages parses a stored image list; failures yield an empty slice.
func DecodeImages(stored *string) []Image {
	out := []Image{}
	if stored == nil {
		return out
	}
	if parsed, ok := DecodeAs[[]Image](*stored); ok && parsed != nil {
		return parsed
	}
	return out
}
