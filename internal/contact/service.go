package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

var (
	ErrSubmissionNotFound = errors.New("contact: submission not found")
	ErrNameRequired       = errors.New("contact: name is required")
	ErrEmailRequired      = errors.New("contact: email is required")
	ErrMessageRequired    = errors.New("contact: message is required")
)

const (
	textCodeStorage    = "CONTACT_STORAGE_FAILED"
	textCodeValidation = "CONTACT_INVALID"
)

// SubmitInput is the public contact form payload.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Service stores contact form messages and exposes them to administrators.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Submission, error)
	List(ctx context.Context) ([]*Submission, error)
	// Get returns the submission and marks it read on first view.
	Get(ctx context.Context, id uuid.UUID) (*Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   SubmissionRepository
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
}

func NewService(repo SubmissionRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*Submission, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if err := input.validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "contact: submission rejected").
			WithTextCode(textCodeValidation)
	}

	record := &Submission{
		ID:        s.id(),
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: s.now().UTC(),
	}
	if input.Subject != "" {
		subject := input.Subject
		record.Subject = &subject
	}

	logger := s.log(ctx, record.ID)
	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		logger.Error("contact.submit.failed", "error", err)
		return nil, wrapStorage(err, "submission create failed")
	}
	logger.Info("contact.submit.success")
	return stored, nil
}

func (s *service) List(ctx context.Context) ([]*Submission, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		logging.FromContext(ctx, s.logger).Error("contact.list.failed", "error", err)
		return nil, wrapStorage(err, "submission list failed")
	}
	return records, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(ctx, id, err, "submission read failed")
	}
	if !record.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			return nil, s.mapError(ctx, id, err, "submission mark read failed")
		}
		record.IsRead = true
	}
	return record, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(ctx, id, err, "submission delete failed")
	}
	s.log(ctx, id).Debug("contact.delete.success")
	return nil
}

func (s *service) mapError(ctx context.Context, id uuid.UUID, err error, message string) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return ErrSubmissionNotFound
	}
	s.log(ctx, id).Error("contact.storage.failed", "error", err)
	return wrapStorage(err, message)
}

func (s *service) log(ctx context.Context, id uuid.UUID) interfaces.Logger {
	return logging.WithFields(logging.FromContext(ctx, s.logger), map[string]any{"submission_id": id.String()})
}

func (in SubmitInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.ErrorObject(requiredError(ErrNameRequired))),
		validation.Field(&in.Email,
			validation.Required.ErrorObject(requiredError(ErrEmailRequired)),
			is.EmailFormat,
		),
		validation.Field(&in.Message, validation.Required.ErrorObject(requiredError(ErrMessageRequired))),
		validation.Field(&in.Subject, validation.Length(0, 200)),
	)
}

func requiredError(err error) validation.Error {
	return validation.NewError("validation_required", err.Error())
}

func wrapStorage(err error, message string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "contact: "+message).
		WithTextCode(textCodeStorage)
}
