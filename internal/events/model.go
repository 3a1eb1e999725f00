package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/afdei/federation-cms/internal/bilingual"
)

// Event is a dated activity with per-language title, description and
// location columns.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:ev"`

	ID            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	TitleEn       string    `bun:"title_en,notnull" json:"titleEn"`
	TitleAr       string    `bun:"title_ar,notnull" json:"titleAr"`
	DescriptionEn string    `bun:"description_en,notnull" json:"descriptionEn"`
	DescriptionAr string    `bun:"description_ar,notnull" json:"descriptionAr"`
	Date          time.Time `bun:"event_date,notnull" json:"date"`
	LocationEn    string    `bun:"location_en,notnull" json:"locationEn"`
	LocationAr    string    `bun:"location_ar,notnull" json:"locationAr"`
	ImageURL      *string   `bun:"image_url" json:"imageUrl,omitempty"`
	IsFeatured    bool      `bun:"is_featured,notnull" json:"isFeatured"`
	IsActive      bool      `bun:"is_active,notnull" json:"isActive"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// View is the nested bilingual response shape.
type View struct {
	LegacyID    uuid.UUID        `json:"_id"`
	ID          uuid.UUID        `json:"id"`
	Title       bilingual.Text   `json:"title"`
	Description bilingual.Text   `json:"description"`
	Date        time.Time        `json:"date"`
	Location    bilingual.Text   `json:"location"`
	Image       *bilingual.Image `json:"image"`
	IsFeatured  bool             `json:"isFeatured"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Transform maps a stored event to its response shape.
func Transform(event *Event) *View {
	if event == nil {
		return nil
	}
	view := &View{
		LegacyID:    event.ID,
		ID:          event.ID,
		Title:       bilingual.Text{En: event.TitleEn, Ar: event.TitleAr},
		Description: bilingual.Text{En: event.DescriptionEn, Ar: event.DescriptionAr},
		Date:        event.Date,
		Location:    bilingual.Text{En: event.LocationEn, Ar: event.LocationAr},
		IsFeatured:  event.IsFeatured,
		IsActive:    event.IsActive,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
	if event.ImageURL != nil && *event.ImageURL != "" {
		view.Image = &bilingual.Image{URL: *event.ImageURL}
	}
	return view
}

// TransformAll maps every stored event, preserving order.
func TransformAll(records []*Event) []*View {
	out := make([]*View, 0, len(records))
	for _, record := range records {
		out = append(out, Transform(record))
	}
	return out
}
