package sections

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SectionRepository exposes the storage primitives the section service is
// built on.
type SectionRepository interface {
	GetBySection(ctx context.Context, section string) (*Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Section, error)
	List(ctx context.Context, opts ListOptions) ([]*Section, error)
	Create(ctx context.Context, record *Section) (*Section, error)
	// Upsert inserts record or, when a row with the same section exists,
	// overwrites both language columns plus the metadata selected in fields
	// in a single statement.
	Upsert(ctx context.Context, record *Section, fields UpsertFields) (*Section, error)
	Update(ctx context.Context, record *Section) (*Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListOptions filters section listings. Results are always ordered by
// ascending display order.
type ListOptions struct {
	IncludeInactive bool
}

// UpsertFields selects which metadata columns an upsert overwrites on an
// existing row.
type UpsertFields struct {
	Images   bool
	IsActive bool
	Order    bool
}

// NotFoundError is returned when a section cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
