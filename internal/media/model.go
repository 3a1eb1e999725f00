package media

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Asset is an uploaded file tracked by the media library.
type Asset struct {
	bun.BaseModel `bun:"table:media_assets,alias:ma"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Filename     string    `bun:"filename,notnull,unique" json:"filename"`
	OriginalName string    `bun:"original_name,notnull" json:"originalName"`
	MimeType     string    `bun:"mime_type,notnull" json:"mimeType"`
	Size         int64     `bun:"size,notnull" json:"size"`
	URL          string    `bun:"url,notnull" json:"url"`
	Alt          *string   `bun:"alt" json:"alt"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
