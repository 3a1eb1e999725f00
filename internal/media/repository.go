package media

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AssetRepository persists media metadata.
type AssetRepository interface {
	Create(ctx context.Context, asset *Asset) (*Asset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when an asset cannot be located.
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

// NewAssetRepository builds the generic bun repository for media assets.
func NewAssetRepository(db *bun.DB) repository.Repository[*Asset] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Asset]{
		NewRecord: func() *Asset { return &Asset{} },
		GetID: func(a *Asset) uuid.UUID {
			return a.ID
		},
		SetID: func(a *Asset, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "filename"
		},
		GetIdentifierValue: func(a *Asset) string {
			if a == nil {
				return ""
			}
			return a.Filename
		},
	})
}

type bunAssetRepository struct {
	repo repository.Repository[*Asset]
}

func NewBunAssetRepository(db *bun.DB) AssetRepository {
	return &bunAssetRepository{repo: NewAssetRepository(db)}
}

func (r *bunAssetRepository) Create(ctx context.Context, asset *Asset) (*Asset, error) {
	record, err := r.repo.Create(ctx, asset)
	if err != nil {
		return nil, mapRepositoryError(err, asset.Filename)
	}
	return record, nil
}

func (r *bunAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *bunAssetRepository) List(ctx context.Context) ([]*Asset, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at DESC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

func (r *bunAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Asset{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "media_asset", Key: key}
	}
	return fmt.Errorf("media repository error: %w", err)
}
