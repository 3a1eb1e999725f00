package sections

import (
	"context"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/internal/validation"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

var (
	ErrSectionRequired = errors.New("sections: section is required")
	ErrSectionInvalid  = errors.New("sections: section must contain only lowercase letters, numbers, or hyphen")
	ErrSectionExists   = errors.New("sections: section already exists")
	ErrSectionNotFound = errors.New("sections: section not found")
	ErrContentInvalid  = errors.New("sections: content must be a JSON object")
	ErrOrderInvalid    = errors.New("sections: order must be zero or positive")
)

const (
	textCodeStorage    = "SECTION_STORAGE_FAILED"
	textCodeValidation = "SECTION_CONTENT_INVALID"
)

// Content carries the two language halves of a write. A nil half is stored
// as an empty object. Strings and json.RawMessage values are treated as
// already encoded.
type Content struct {
	En any
	Ar any
}

// UpsertInput describes a create-or-update keyed by section. Nil metadata
// fields keep the stored value on update and take defaults on create.
type UpsertInput struct {
	// ID is assigned when the write inserts a row; zero generates one.
	ID       uuid.UUID
	Section  string
	Content  Content
	Images   []bilingual.Image
	IsActive *bool
	Order    *int
}

// CreateInput describes an explicit section creation.
type CreateInput = UpsertInput

// UpdateInput patches a section by id. Only supplied halves are replaced.
type UpdateInput struct {
	Content  Content
	Images   []bilingual.Image
	IsActive *bool
	Order    *int
}

// Service exposes section reads for the public site and writes for editors.
type Service interface {
	UpsertSection(ctx context.Context, input UpsertInput) (*View, error)
	GetSection(ctx context.Context, section string) (*View, error)
	GetAllSections(ctx context.Context) ([]*View, error)
	ListSections(ctx context.Context) ([]*View, error)
	CreateSection(ctx context.Context, input CreateInput) (*View, error)
	UpdateSection(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error
}

// IDGenerator produces identifiers for new sections.
type IDGenerator func() uuid.UUID

// ServiceOption configures section service behaviour.
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
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the service logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSchemas replaces the payload schemas used to check known sections.
// A nil set disables schema checks.
func WithSchemas(schemas *validation.SchemaSet) ServiceOption {
	return func(s *service) {
		s.schemas = schemas
	}
}

type service struct {
	repo    SectionRepository
	schemas *validation.SchemaSet
	now     func() time.Time
	id      IDGenerator
	logger  interfaces.Logger
}

// NewService constructs the section service.
func NewService(repo SectionRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:    repo,
		schemas: DefaultSchemas(),
		now:     time.Now,
		id:      uuid.New,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) UpsertSection(ctx context.Context, input UpsertInput) (*View, error) {
	key, err := normalizeSection(input.Section)
	if err != nil {
		return nil, err
	}
	if input.Order != nil && *input.Order < 0 {
		return nil, ErrOrderInvalid
	}
	en, ar, err := s.encodeContent(key, input.Content)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Section{
		ID:        s.newID(input.ID),
		Section:   key,
		ContentEn: en,
		ContentAr: ar,
		Images:    bilingual.EncodeImages(input.Images),
		IsActive:  boolOr(input.IsActive, true),
		Order:     intOr(input.Order, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	fields := UpsertFields{
		Images:   input.Images != nil,
		IsActive: input.IsActive != nil,
		Order:    input.Order != nil,
	}

	logger := s.log(ctx, key)
	stored, err := s.repo.Upsert(ctx, record, fields)
	if err != nil {
		logger.Error("section.upsert.failed", "error", err)
		return nil, wrapStorage(err, "section upsert failed")
	}
	logger.Debug("section.upsert.success", "id", stored.ID.String())
	return ToView(stored), nil
}

func (s *service) GetSection(ctx context.Context, section string) (*View, error) {
	key, err := normalizeSection(section)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.GetBySection(ctx, key)
	if err != nil {
		return nil, s.readError(ctx, key, err)
	}
	return ToView(record), nil
}

func (s *service) GetAllSections(ctx context.Context) ([]*View, error) {
	records, err := s.repo.List(ctx, ListOptions{})
	if err != nil {
		return nil, s.readError(ctx, "", err)
	}
	return toViews(records), nil
}

func (s *service) ListSections(ctx context.Context) ([]*View, error) {
	records, err := s.repo.List(ctx, ListOptions{IncludeInactive: true})
	if err != nil {
		return nil, s.readError(ctx, "", err)
	}
	return toViews(records), nil
}

func (s *service) CreateSection(ctx context.Context, input CreateInput) (*View, error) {
	key, err := normalizeSection(input.Section)
	if err != nil {
		return nil, err
	}
	if input.Order != nil && *input.Order < 0 {
		return nil, ErrOrderInvalid
	}
	if _, err := s.repo.GetBySection(ctx, key); err == nil {
		return nil, ErrSectionExists
	} else if !isNotFound(err) {
		return nil, wrapStorage(err, "section lookup failed")
	}

	en, ar, err := s.encodeContent(key, input.Content)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	record := &Section{
		ID:        s.newID(input.ID),
		Section:   key,
		ContentEn: en,
		ContentAr: ar,
		Images:    bilingual.EncodeImages(input.Images),
		IsActive:  boolOr(input.IsActive, true),
		Order:     intOr(input.Order, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}

	logger := s.log(ctx, key)
	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, ErrSectionExists) {
			return nil, err
		}
		logger.Error("section.create.failed", "error", err)
		return nil, wrapStorage(err, "section create failed")
	}
	logger.Debug("section.create.success", "id", stored.ID.String())
	return ToView(stored), nil
}

func (s *service) UpdateSection(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error) {
	if input.Order != nil && *input.Order < 0 {
		return nil, ErrOrderInvalid
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.readError(ctx, id.String(), err)
	}

	if input.Content.En != nil {
		encoded, err := s.encodeHalf(current.Section, input.Content.En)
		if err != nil {
			return nil, err
		}
		current.ContentEn = encoded
	}
	if input.Content.Ar != nil {
		encoded, err := s.encodeHalf(current.Section, input.Content.Ar)
		if err != nil {
			return nil, err
		}
		current.ContentAr = encoded
	}
	if input.Images != nil {
		current.Images = bilingual.EncodeImages(input.Images)
	}
	if input.IsActive != nil {
		current.IsActive = *input.IsActive
	}
	if input.Order != nil {
		current.Order = *input.Order
	}
	current.UpdatedAt = s.now().UTC()

	logger := s.log(ctx, current.Section)
	stored, err := s.repo.Update(ctx, current)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSectionNotFound
		}
		logger.Error("section.update.failed", "error", err)
		return nil, wrapStorage(err, "section update failed")
	}
	logger.Debug("section.update.success", "id", stored.ID.String())
	return ToView(stored), nil
}

func (s *service) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrSectionNotFound
		}
		s.log(ctx, id.String()).Error("section.delete.failed", "error", err)
		return wrapStorage(err, "section delete failed")
	}
	return nil
}

func (s *service) encodeContent(section string, content Content) (string, string, error) {
	en, err := s.encodeHalf(section, content.En)
	if err != nil {
		return "", "", err
	}
	ar, err := s.encodeHalf(section, content.Ar)
	if err != nil {
		return "", "", err
	}
	return en, ar, nil
}

func (s *service) encodeHalf(section string, payload any) (string, error) {
	encoded, err := bilingual.EncodeObject(payload)
	if err != nil {
		return "", wrapValidation(errors.Join(ErrContentInvalid, err))
	}
	if !bilingual.IsObject(encoded) {
		return "", wrapValidation(ErrContentInvalid)
	}
	if s.schemas != nil {
		if err := s.schemas.ValidateJSON(section, encoded); err != nil {
			return "", wrapValidation(err)
		}
	}
	return encoded, nil
}

func (s *service) readError(ctx context.Context, key string, err error) error {
	if isNotFound(err) {
		return ErrSectionNotFound
	}
	s.log(ctx, key).Error("section.read.failed", "error", err)
	return wrapStorage(err, "section read failed")
}

func (s *service) log(ctx context.Context, section string) interfaces.Logger {
	logger := logging.FromContext(ctx, s.logger)
	if section == "" {
		return logger
	}
	return logging.WithFields(logger, map[string]any{"section": section})
}

func normalizeSection(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrSectionRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" || !slug.IsValid(normalized) {
		return "", ErrSectionInvalid
	}
	return normalized, nil
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func wrapStorage(err error, message string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "sections: "+message).
		WithTextCode(textCodeStorage)
}

func wrapValidation(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "sections: content rejected").
		WithTextCode(textCodeValidation)
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

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
