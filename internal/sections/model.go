package sections

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/afdei/federation-cms/internal/bilingual"
)

// Section is one named region of the public site with its two language
// payloads stored as JSON text.
type Section struct {
	bun.BaseModel `bun:"table:content_sections,alias:cs"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Section   string    `bun:"section,notnull,unique" json:"section"`
	ContentEn string    `bun:"content_en,notnull" json:"contentEn"`
	ContentAr string    `bun:"content_ar,notnull" json:"contentAr"`
	Images    *string   `bun:"images" json:"-"`
	IsActive  bool      `bun:"is_active,notnull" json:"isActive"`
	Order     int       `bun:"sort_order,notnull" json:"order"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// View is the decoded shape served to readers. The raw language strings are
// kept next to the decoded content.
type View struct {
	ID        uuid.UUID         `json:"id"`
	Section   string            `json:"section"`
	ContentEn string            `json:"contentEn"`
	ContentAr string            `json:"contentAr"`
	Content   bilingual.Payload `json:"content"`
	Images    []bilingual.Image `json:"images"`
	IsActive  bool              `json:"isActive"`
	Order     int               `json:"order"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ToView decodes the stored payloads. Corrupt columns decode to empty values.
func ToView(record *Section) *View {
	if record == nil {
		return nil
	}
	return &View{
		ID:        record.ID,
		Section:   record.Section,
		ContentEn: record.ContentEn,
		ContentAr: record.ContentAr,
		Content: bilingual.Payload{
			En: bilingual.Decode(record.ContentEn),
			Ar: bilingual.Decode(record.ContentAr),
		},
		Images:    bilingual.DecodeImages(record.Images),
		IsActive:  record.IsActive,
		Order:     record.Order,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func toViews(records []*Section) []*View {
	out := make([]*View, 0, len(records))
	for _, record := range records {
		out = append(out, ToView(record))
	}
	return out
}
