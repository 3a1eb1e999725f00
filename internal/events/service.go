package events

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

var (
	ErrEventNotFound = errors.New("events: event not found")
	ErrDateRequired  = errors.New("events: date is required")
	ErrDateInvalid   = errors.New("events: date is invalid")
	ErrImageInvalid  = errors.New("events: image url must be absolute or site relative")
)

const (
	textCodeStorage    = "EVENT_STORAGE_FAILED"
	textCodeValidation = "EVENT_INVALID"
)

// CreateInput describes a new event. Missing language halves are stored as
// empty strings.
type CreateInput struct {
	// ID overrides the generated identifier when non-zero.
	ID          uuid.UUID
	Title       bilingual.Text
	Description bilingual.Text
	Location    bilingual.Text
	Date        time.Time
	ImageURL    string
	IsFeatured  *bool
	IsActive    *bool
}

// UpdateInput patches an event. Nil fields are left untouched.
type UpdateInput struct {
	Title       *bilingual.TextPatch
	Description *bilingual.TextPatch
	Location    *bilingual.TextPatch
	Date        *time.Time
	ImageURL    *string
	IsFeatured  *bool
	IsActive    *bool
}

// Service manages events for the public calendar and the admin panel.
type Service interface {
	List(ctx context.Context, opts ListOptions) ([]*View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	Create(ctx context.Context, input CreateInput) (*View, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceOption configures event service behaviour.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
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
	repo   EventRepository
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
}

// NewService constructs the event service.
func NewService(repo EventRepository, opts ...ServiceOption) Service {
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

func (s *service) List(ctx context.Context, opts ListOptions) ([]*View, error) {
	records, err := s.repo.List(ctx, opts)
	if err != nil {
		logging.FromContext(ctx, s.logger).Error("event.list.failed", "error", err)
		return nil, wrapStorage(err, "event list failed")
	}
	return TransformAll(records), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.readError(ctx, id, err)
	}
	return Transform(record), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if err := input.validate(); err != nil {
		return nil, wrapValidation(err)
	}
	now := s.now().UTC()
	record := &Event{
		ID:            s.newID(input.ID),
		TitleEn:       input.Title.En,
		TitleAr:       input.Title.Ar,
		DescriptionEn: input.Description.En,
		DescriptionAr: input.Description.Ar,
		Date:          input.Date.UTC(),
		LocationEn:    input.Location.En,
		LocationAr:    input.Location.Ar,
		ImageURL:      optionalString(input.ImageURL),
		IsFeatured:    boolOr(input.IsFeatured, false),
		IsActive:      boolOr(input.IsActive, true),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	logger := s.log(ctx, record.ID)
	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		logger.Error("event.create.failed", "error", err)
		return nil, wrapStorage(err, "event create failed")
	}
	logger.Debug("event.create.success")
	return Transform(stored), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error) {
	if err := input.validate(); err != nil {
		return nil, wrapValidation(err)
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.readError(ctx, id, err)
	}

	input.Title.Apply(&current.TitleEn, &current.TitleAr)
	input.Description.Apply(&current.DescriptionEn, &current.DescriptionAr)
	input.Location.Apply(&current.LocationEn, &current.LocationAr)
	if input.Date != nil {
		current.Date = input.Date.UTC()
	}
	if input.ImageURL != nil {
		current.ImageURL = optionalString(*input.ImageURL)
	}
	if input.IsFeatured != nil {
		current.IsFeatured = *input.IsFeatured
	}
	if input.IsActive != nil {
		current.IsActive = *input.IsActive
	}
	current.UpdatedAt = s.now().UTC()

	logger := s.log(ctx, id)
	stored, err := s.repo.Update(ctx, current)
	if err != nil {
		logger.Error("event.update.failed", "error", err)
		return nil, wrapStorage(err, "event update failed")
	}
	logger.Debug("event.update.success")
	return Transform(stored), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return ErrEventNotFound
		}
		s.log(ctx, id).Error("event.delete.failed", "error", err)
		return wrapStorage(err, "event delete failed")
	}
	return nil
}

func (s *service) readError(ctx context.Context, id uuid.UUID, err error) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return ErrEventNotFound
	}
	s.log(ctx, id).Error("event.read.failed", "error", err)
	return wrapStorage(err, "event read failed")
}

func (s *service) log(ctx context.Context, id uuid.UUID) interfaces.Logger {
	return logging.WithFields(logging.FromContext(ctx, s.logger), map[string]any{"event_id": id.String()})
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Date, validation.By(func(value any) error {
			if date, _ := value.(time.Time); date.IsZero() {
				return ErrDateRequired
			}
			return nil
		})),
		validation.Field(&in.ImageURL, validation.By(imageURL)),
	)
}

func (in UpdateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Date, validation.By(func(value any) error {
			if date, _ := value.(*time.Time); date != nil && date.IsZero() {
				return ErrDateRequired
			}
			return nil
		})),
		validation.Field(&in.ImageURL, validation.By(imageURL)),
	)
}

func imageURL(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case *string:
		if v == nil {
			return nil
		}
		raw = *v
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return nil
	}
	return ErrImageInvalid
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func (s *service) newID(given uuid.UUID) uuid.UUID {
	if given != uuid.Nil {
		return given
	}
	return s.id()
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func wrapStorage(err error, message string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "events: "+message).
		WithTextCode(textCodeStorage)
}

func wrapValidation(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "events: input rejected").
		WithTextCode(textCodeValidation)
}
