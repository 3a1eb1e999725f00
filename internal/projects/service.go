package projects

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

var (
	ErrProjectNotFound = errors.New("projects: project not found")
	ErrOrderInvalid    = errors.New("projects: order must be zero or positive")
)

const (
	textCodeStorage    = "PROJECT_STORAGE_FAILED"
	textCodeValidation = "PROJECT_INVALID"
)

// CreateInput describes a new project. Nil objective halves store an empty
// list; nil benefit halves store null.
type CreateInput struct {
	// ID overrides the generated identifier when non-zero.
	ID          uuid.UUID
	Name        bilingual.Text
	Description bilingual.Text
	Objectives  bilingual.List
	Benefits    bilingual.List
	Images      []bilingual.Image
	IsFeatured  *bool
	IsActive    *bool
	Order       *int
}

// UpdateInput patches a project. Nil fields and nil list halves are left
// untouched.
type UpdateInput struct {
	Name        *bilingual.TextPatch
	Description *bilingual.TextPatch
	Objectives  *bilingual.List
	Benefits    *bilingual.List
	Images      []bilingual.Image
	IsFeatured  *bool
	IsActive    *bool
	Order       *int
}

// Service manages federation projects.
type Service interface {
	List(ctx context.Context, opts ListOptions) ([]*View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	Create(ctx context.Context, input CreateInput) (*View, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error)
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
	repo   ProjectRepository
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
}

func NewService(repo ProjectRepository, opts ...ServiceOption) Service {
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
		logging.FromContext(ctx, s.logger).Error("project.list.failed", "error", err)
		return nil, wrapStorage(err, "project list failed")
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
	if err := validateOrder(input.Order); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	record := &Project{
		ID:            s.newID(input.ID),
		NameEn:        input.Name.En,
		NameAr:        input.Name.Ar,
		DescriptionEn: input.Description.En,
		DescriptionAr: input.Description.Ar,
		ObjectivesEn:  bilingual.EncodeStrings(input.Objectives.En),
		ObjectivesAr:  bilingual.EncodeStrings(input.Objectives.Ar),
		BenefitsEn:    encodeOptional(input.Benefits.En),
		BenefitsAr:    encodeOptional(input.Benefits.Ar),
		Images:        bilingual.EncodeImages(input.Images),
		IsFeatured:    boolOr(input.IsFeatured, false),
		IsActive:      boolOr(input.IsActive, true),
		Order:         intOr(input.Order, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	logger := s.log(ctx, record.ID)
	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		logger.Error("project.create.failed", "error", err)
		return nil, wrapStorage(err, "project create failed")
	}
	logger.Debug("project.create.success")
	return Transform(stored), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error) {
	if err := validateOrder(input.Order); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.readError(ctx, id, err)
	}

	input.Name.Apply(&current.NameEn, &current.NameAr)
	input.Description.Apply(&current.DescriptionEn, &current.DescriptionAr)
	if input.Objectives != nil {
		if input.Objectives.En != nil {
			current.ObjectivesEn = bilingual.EncodeStrings(input.Objectives.En)
		}
		if input.Objectives.Ar != nil {
			current.ObjectivesAr = bilingual.EncodeStrings(input.Objectives.Ar)
		}
	}
	if input.Benefits != nil {
		if input.Benefits.En != nil {
			current.BenefitsEn = encodeOptional(input.Benefits.En)
		}
		if input.Benefits.Ar != nil {
			current.BenefitsAr = encodeOptional(input.Benefits.Ar)
		}
	}
	if input.Images != nil {
		current.Images = bilingual.EncodeImages(input.Images)
	}
	if input.IsFeatured != nil {
		current.IsFeatured = *input.IsFeatured
	}
	if input.IsActive != nil {
		current.IsActive = *input.IsActive
	}
	if input.Order != nil {
		current.Order = *input.Order
	}
	current.UpdatedAt = s.now().UTC()

	logger := s.log(ctx, id)
	stored, err := s.repo.Update(ctx, current)
	if err != nil {
		logger.Error("project.update.failed", "error", err)
		return nil, wrapStorage(err, "project update failed")
	}
	logger.Debug("project.update.success")
	return Transform(stored), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return ErrProjectNotFound
		}
		s.log(ctx, id).Error("project.delete.failed", "error", err)
		return wrapStorage(err, "project delete failed")
	}
	return nil
}

func (s *service) readError(ctx context.Context, id uuid.UUID, err error) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return ErrProjectNotFound
	}
	s.log(ctx, id).Error("project.read.failed", "error", err)
	return wrapStorage(err, "project read failed")
}

func (s *service) log(ctx context.Context, id uuid.UUID) interfaces.Logger {
	return logging.WithFields(logging.FromContext(ctx, s.logger), map[string]any{"project_id": id.String()})
}

func validateOrder(order *int) error {
	err := validation.Validate(order, validation.By(func(value any) error {
		if v, _ := value.(*int); v != nil && *v < 0 {
			return ErrOrderInvalid
		}
		return nil
	}))
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "projects: input rejected").
		WithTextCode(textCodeValidation)
}

func encodeOptional(values []string) *string {
	if values == nil {
		return nil
	}
	encoded := bilingual.EncodeStrings(values)
	return &encoded
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

func wrapStorage(err error, message string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "projects: "+message).
		WithTextCode(textCodeStorage)
}
