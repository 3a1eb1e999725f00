package events

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

// EventRepository exposes persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) (*Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, opts ListOptions) ([]*Event, error)
	Update(ctx context.Context, event *Event) (*Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListOptions filters event listings. Results are ordered by date, newest
// first.
type ListOptions struct {
	IncludeInactive bool
	FeaturedOnly    bool
	Limit           int
}

// NotFoundError is returned when an event cannot be located.
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

// NewEventRepository builds the generic bun repository for events.
func NewEventRepository(db *bun.DB) repository.Repository[*Event] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Event]{
		NewRecord: func() *Event { return &Event{} },
		GetID: func(e *Event) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Event, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(e *Event) string {
			if e == nil {
				return ""
			}
			return e.ID.String()
		},
	})
}

// BunEventRepository implements EventRepository with optional caching.
type BunEventRepository struct {
	repo         repository.Repository[*Event]
	cacheService cache.CacheService
	cachePrefix  string
}

const eventNamespace = "event"

// NewBunEventRepository creates an event repository without caching.
func NewBunEventRepository(db *bun.DB) *BunEventRepository {
	return NewBunEventRepositoryWithCache(db, nil, nil)
}

// NewBunEventRepositoryWithCache creates an event repository with caching services.
func NewBunEventRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunEventRepository {
	base := NewEventRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = eventNamespace + cache.KeySeparator
	}
	return &BunEventRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunEventRepository) Create(ctx context.Context, event *Event) (*Event, error) {
	record, err := r.repo.Create(ctx, event)
	if err != nil {
		return nil, mapRepositoryError(err, event.ID.String())
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunEventRepository) List(ctx context.Context, opts ListOptions) ([]*Event, error) {
	criteria := []repository.SelectCriteria{}
	if !opts.IncludeInactive {
		criteria = append(criteria, repository.SelectRawProcessor(activeOnly))
	}
	if opts.FeaturedOnly {
		criteria = append(criteria, repository.SelectRawProcessor(featuredOnly))
	}
	criteria = append(criteria, repository.SelectRawProcessor(newestFirst))
	if opts.Limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(opts.Limit, 0))
	}

	records, _, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

func (r *BunEventRepository) Update(ctx context.Context, event *Event) (*Event, error) {
	record, err := r.repo.Update(ctx, event, repository.UpdateByID(event.ID.String()))
	if err != nil {
		return nil, mapRepositoryError(err, event.ID.String())
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Event{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return r.InvalidateCache(ctx)
}

// InvalidateCache drops cached event reads.
func (r *BunEventRepository) InvalidateCache(ctx context.Context) error {
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

func newestFirst(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("event_date DESC", "created_at DESC")
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "event", Key: key}
	}
	return fmt.Errorf("event repository error: %w", err)
}
