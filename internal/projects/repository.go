package projects

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProjectRepository exposes persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) (*Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, opts ListOptions) ([]*Project, error)
	Update(ctx context.Context, project *Project) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListOptions filters project listings. Results follow ascending display
// order.
type ListOptions struct {
	IncludeInactive bool
	FeaturedOnly    bool
	Limit           int
}

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

func NewProjectRepository(db *bun.DB) repository.Repository[*Project] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Project]{
		NewRecord: func() *Project { return &Project{} },
		GetID: func(p *Project) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Project, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(p *Project) string {
			if p == nil {
				return ""
			}
			return p.ID.String()
		},
	})
}

// BunProjectRepository implements ProjectRepository with optional caching.
type BunProjectRepository struct {
	repo         repository.Repository[*Project]
	cacheService cache.CacheService
	cachePrefix  string
}

const projectNamespace = "project"

func NewBunProjectRepository(db *bun.DB) *BunProjectRepository {
	return NewBunProjectRepositoryWithCache(db, nil, nil)
}

// NewBunProjectRepositoryWithCache wraps the generic repository with the
// read-through cache when both cache collaborators are supplied.
func NewBunProjectRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunProjectRepository {
	base := NewProjectRepository(db)
	r := &BunProjectRepository{repo: base}
	if cacheService != nil && serializer != nil {
		r.repo = repositorycache.New(base, cacheService, serializer)
		r.cacheService = cacheService
		r.cachePrefix = projectNamespace + cache.KeySeparator
	}
	return r
}

func (r *BunProjectRepository) Create(ctx context.Context, project *Project) (*Project, error) {
	record, err := r.repo.Create(ctx, project)
	if err != nil {
		return nil, mapRepositoryError(err, project.ID.String())
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunProjectRepository) List(ctx context.Context, opts ListOptions) ([]*Project, error) {
	criteria := []repository.SelectCriteria{}
	if !opts.IncludeInactive {
		criteria = append(criteria, repository.SelectRawProcessor(activeOnly))
	}
	if opts.FeaturedOnly {
		criteria = append(criteria, repository.SelectRawProcessor(featuredOnly))
	}
	criteria = append(criteria, repository.SelectRawProcessor(displayOrder))
	if opts.Limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(opts.Limit, 0))
	}

	records, _, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

func (r *BunProjectRepository) Update(ctx context.Context, project *Project) (*Project, error) {
	record, err := r.repo.Update(ctx, project, repository.UpdateByID(project.ID.String()))
	if err != nil {
		return nil, mapRepositoryError(err, project.ID.String())
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Project{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return r.InvalidateCache(ctx)
}

func (r *BunProjectRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func activeOnly(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("?TableAlias.is_active = ?", true)
}

func featuredOnly(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("?TableAlias.is_featured = ?", true)
}

func displayOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("sort_order ASC", "created_at ASC")
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "project", Key: key}
	}
	return fmt.Errorf("project repository error: %w", err)
}
