package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRepository persists administrator accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// FirstWithRole returns a NotFoundError when no user holds role.
	FirstWithRole(ctx context.Context, role string) (*User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// NotFoundError is returned when a user cannot be located.
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

// NewUserRepository builds the generic bun repository for users, keyed by
// email for identifier lookups.
func NewUserRepository(db *bun.DB) repository.Repository[*User] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			u.ID = id
		},
		GetIdentifier: func() string {
			return "email"
		},
		GetIdentifierValue: func(u *User) string {
			if u == nil {
				return ""
			}
			return u.Email
		},
	})
}

type bunUserRepository struct {
	repo repository.Repository[*User]
}

func NewBunUserRepository(db *bun.DB) UserRepository {
	return &bunUserRepository{repo: NewUserRepository(db)}
}

func (r *bunUserRepository) Create(ctx context.Context, user *User) (*User, error) {
	record, err := r.repo.Create(ctx, user)
	if err != nil {
		return nil, mapRepositoryError(err, user.Email)
	}
	return record, nil
}

func (r *bunUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *bunUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	record, err := r.repo.GetByIdentifier(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err, email)
	}
	return record, nil
}

func (r *bunUserRepository) FirstWithRole(ctx context.Context, role string) (*User, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.role = ?", role).Order("created_at ASC")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, role)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "user", Key: role}
	}
	return records[0], nil
}

func (r *bunUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.repo.Update(ctx, &User{ID: id, LastLogin: &at, UpdatedAt: at},
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("last_login", "updated_at"),
	)
	return mapRepositoryError(err, id.String())
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "user", Key: key}
	}
	return fmt.Errorf("user repository error: %w", err)
}
