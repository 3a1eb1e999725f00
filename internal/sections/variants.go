package sections

import (
	"github.com/afdei/federation-cms/internal/bilingual"
)

// Kind tags a section payload with its section key.
type Kind string

const (
	KindHero       Kind = "hero"
	KindAbout      Kind = "about"
	KindMembership Kind = "membership"
	KindAdvisory   Kind = "advisory"
	KindContact    Kind = "contact"
)

// KnownKinds lists the sections with a typed payload, in display order.
func KnownKinds() []Kind {
	return []Kind{KindHero, KindAbout, KindMembership, KindAdvisory, KindContact}
}

// Variant is one language half of a section decoded into its typed shape.
type Variant interface {
	Kind() Kind
}

type HeroContent struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

func (HeroContent) Kind() Kind { return KindHero }

type TitledText struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

type Values struct {
	Title          string `json:"title"`
	Leadership     string `json:"leadership"`
	Empowerment    string `json:"empowerment"`
	Innovation     string `json:"innovation"`
	Sustainability string `json:"sustainability"`
}

type TitledList struct {
	Title string   `json:"title"`
	List  []string `json:"list"`
}

type AboutContent struct {
	Title      string     `json:"title"`
	Vision     TitledText `json:"vision"`
	Mission    TitledText `json:"mission"`
	Values     Values     `json:"values"`
	President  TitledText `json:"president"`
	Objectives TitledList `json:"objectives"`
}

func (AboutContent) Kind() Kind { return KindAbout }

type MembershipContent struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
	ButtonText  string   `json:"buttonText"`
	MemberCount string   `json:"memberCount"`
	MemberLabel string   `json:"memberLabel"`
}

func (MembershipContent) Kind() Kind { return KindMembership }

type AdvisoryBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Members     int    `json:"members"`
}

type AdvisoryContent struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Bodies   []AdvisoryBody `json:"bodies"`
}

func (AdvisoryContent) Kind() Kind { return KindAdvisory }

type FormLabels struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Submit  string `json:"submit"`
}

type ContactContent struct {
	Title          string     `json:"title"`
	GetInTouch     string     `json:"getInTouch"`
	SendMessage    string     `json:"sendMessage"`
	Address        string     `json:"address"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	WorkingHours   string     `json:"workingHours"`
	FormLabels     FormLabels `json:"formLabels"`
	SuccessMessage string     `json:"successMessage"`
	ErrorMessage   string     `json:"errorMessage"`
}

func (ContactContent) Kind() Kind { return KindContact }

// RawContent carries payloads of sections without a typed shape, or typed
// sections whose stored JSON no longer matches it.
type RawContent struct {
	Section string
	Data    map[string]any
}

func (r RawContent) Kind() Kind { return Kind(r.Section) }

// DecodeVariant decodes one stored language half of section into its typed
// variant, falling back to RawContent.
func DecodeVariant(section, stored string) Variant {
	var (
		variant Variant
		ok      bool
	)
	switch Kind(section) {
	case KindHero:
		variant, ok = decodeTyped[HeroContent](stored)
	case KindAbout:
		variant, ok = decodeTyped[AboutContent](stored)
	case KindMembership:
		variant, ok = decodeTyped[MembershipContent](stored)
	case KindAdvisory:
		variant, ok = decodeTyped[AdvisoryContent](stored)
	case KindContact:
		variant, ok = decodeTyped[ContactContent](stored)
	}
	if ok {
		return variant
	}
	return RawContent{Section: section, Data: bilingual.Decode(stored)}
}

// DecodeAs decodes a stored language half straight into T.
func DecodeAs[T Variant](stored string) (T, bool) {
	return bilingual.DecodeAs[T](stored)
}

func decodeTyped[T Variant](stored string) (Variant, bool) {
	value, ok := DecodeAs[T](stored)
	if !ok {
		return nil, false
	}
	return value, true
}

// Variants decodes both halves of a stored section.
func Variants(record *Section) (en Variant, ar Variant) {
	if record == nil {
		return nil, nil
	}
	return DecodeVariant(record.Section, record.ContentEn), DecodeVariant(record.Section, record.ContentAr)
}
