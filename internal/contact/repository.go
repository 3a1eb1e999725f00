package contact

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SubmissionRepository persists contact submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *Submission) (*Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	List(ctx context.Context) ([]*Submission, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a submission cannot be located.
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

// NewSubmissionRepository builds the generic bun repository for submissions.
func NewSubmissionRepository(db *bun.DB) repository.Repository[*Submission] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Submission]{
		NewRecord: func() *Submission { return &Submission{} },
		GetID: func(s *Submission) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Submission, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *Submission) string {
			if s == nil {
				return ""
			}
			return s.ID.String()
		},
	})
}

// BunSubmissionRepository implements SubmissionRepository on bun.
type BunSubmissionRepository struct {
	repo repository.Repository[*Submission]
}

func NewBunSubmissionRepository(db *bun.DB) *BunSubmissionRepository {
	return &BunSubmissionRepository{repo: NewSubmissionRepository(db)}
}

func (r *BunSubmissionRepository) Create(ctx context.Context, submission *Submission) (*Submission, error) {
	record, err := r.repo.Create(ctx, submission)
	if err != nil {
		return nil, mapRepositoryError(err, submission.ID.String())
	}
	return record, nil
}

func (r *BunSubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunSubmissionRepository) List(ctx context.Context) ([]*Submission, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(newestFirst))
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

// MarkRead flips the read flag without touching the rest of the row.
func (r *BunSubmissionRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.repo.Update(ctx, &Submission{ID: id, IsRead: true},
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("is_read"),
	)
	return mapRepositoryError(err, id.String())
}

func (r *BunSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Submission{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func newestFirst(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("created_at DESC")
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "contact_submission", Key: key}
	}
	return fmt.Errorf("contact repository error: %w", err)
}
