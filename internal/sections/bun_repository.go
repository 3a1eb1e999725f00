package sections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunSectionRepository implements SectionRepository on a bun database.
type BunSectionRepository struct {
	db bun.IDB
}

// NewBunSectionRepository creates a section repository backed by db.
func NewBunSectionRepository(db bun.IDB) *BunSectionRepository {
	return &BunSectionRepository{db: db}
}

func (r *BunSectionRepository) GetBySection(ctx context.Context, section string) (*Section, error) {
	record := new(Section)
	err := r.db.NewSelect().
		Model(record).
		Where("section = ?", section).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapStorageError(err, section)
	}
	return record, nil
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	record := new(Section)
	err := r.db.NewSelect().
		Model(record).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapStorageError(err, id.String())
	}
	return record, nil
}

func (r *BunSectionRepository) List(ctx context.Context, opts ListOptions) ([]*Section, error) {
	var records []*Section
	q := r.db.NewSelect().Model(&records)
	if !opts.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("sort_order ASC", "section ASC").Scan(ctx); err != nil {
		return nil, mapStorageError(err, "")
	}
	return records, nil
}

func (r *BunSectionRepository) Create(ctx context.Context, record *Section) (*Section, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, mapStorageError(err, record.Section)
	}
	return r.GetBySection(ctx, record.Section)
}

func (r *BunSectionRepository) Upsert(ctx context.Context, record *Section, fields UpsertFields) (*Section, error) {
	q := r.db.NewInsert().
		Model(record).
		On("CONFLICT (section) DO UPDATE").
		Set("content_en = EXCLUDED.content_en").
		Set("content_ar = EXCLUDED.content_ar").
		Set("updated_at = EXCLUDED.updated_at")
	if fields.Images {
		q = q.Set("images = EXCLUDED.images")
	}
	if fields.IsActive {
		q = q.Set("is_active = EXCLUDED.is_active")
	}
	if fields.Order {
		q = q.Set("sort_order = EXCLUDED.sort_order")
	}
	if _, err := q.Exec(ctx); err != nil {
		return nil, mapStorageError(err, record.Section)
	}
	return r.GetBySection(ctx, record.Section)
}

func (r *BunSectionRepository) Update(ctx context.Context, record *Section) (*Section, error) {
	res, err := r.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, mapStorageError(err, record.ID.String())
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, &NotFoundError{Resource: "section", Key: record.ID.String()}
	}
	return r.GetByID(ctx, record.ID)
}

func (r *BunSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Section)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return mapStorageError(err, id.String())
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Resource: "section", Key: id.String()}
	}
	return nil
}

func mapStorageError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: "section", Key: key}
	}
	return fmt.Errorf("section repository error: %w", err)
}
