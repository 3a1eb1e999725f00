package settings

import (
	"time"

	"github.com/uptrace/bun"
)

// Setting is a single site-wide key/value pair. Values are stored as text:
// strings verbatim, everything else as JSON.
type Setting struct {
	bun.BaseModel `bun:"table:site_settings,alias:st"`

	Key       string    `bun:"setting_key,pk" json:"key"`
	Value     string    `bun:"value,notnull" json:"value"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
