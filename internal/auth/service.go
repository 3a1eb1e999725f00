package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrAdminExists        = errors.New("auth: admin user already exists")
)

const (
	textCodeCredentials = "AUTH_INVALID_CREDENTIALS"
	textCodeStorage     = "AUTH_STORAGE_FAILED"
	textCodeValidation  = "AUTH_INVALID"
)

// Session is returned by a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

// AdminAccount describes the bootstrap administrator.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// Service authenticates administrators.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	// Verify returns nil without error for missing, malformed, expired or
	// inactive-user tokens.
	Verify(ctx context.Context, token string) (*Principal, error)
	Me(ctx context.Context, id uuid.UUID) (*Profile, error)
	// Setup creates the bootstrap admin. It returns ErrAdminExists when any
	// admin account is present.
	Setup(ctx context.Context) (*Profile, error)
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

// WithAdminAccount overrides the bootstrap administrator credentials.
func WithAdminAccount(account AdminAccount) ServiceOption {
	return func(s *service) {
		if account.Email != "" {
			s.admin.Email = account.Email
		}
		if account.Password != "" {
			s.admin.Password = account.Password
		}
		if account.Name != "" {
			s.admin.Name = account.Name
		}
	}
}

// WithBcryptCost sets the hashing cost used for new passwords.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

type service struct {
	repo   UserRepository
	tokens *TokenIssuer
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
	admin  AdminAccount
	cost   int
}

func NewService(repo UserRepository, tokens *TokenIssuer, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
		admin: AdminAccount{
			Name:     "Admin",
			Email:    "admin@afdei.org",
			Password: "admin123",
		},
		cost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type loginInput struct {
	Email    string
	Password string
}

func (in loginInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Password, validation.Required),
	)
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	input := loginInput{Email: strings.ToLower(strings.TrimSpace(email)), Password: password}
	if err := input.validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "auth: login rejected").
			WithTextCode(textCodeValidation)
	}

	logger := logging.WithFields(logging.FromContext(ctx, s.logger), map[string]any{"email": input.Email})
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			logger.Warn("auth.login.unknown_user")
			return nil, invalidCredentials()
		}
		logger.Error("auth.login.lookup_failed", "error", err)
		return nil, wrapStorage(err, "user lookup failed")
	}
	if !user.IsActive {
		logger.Warn("auth.login.inactive_user")
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		logger.Warn("auth.login.bad_password")
		return nil, invalidCredentials()
	}

	now := s.now().UTC()
	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		logger.Error("auth.login.touch_failed", "error", err)
		return nil, wrapStorage(err, "last login update failed")
	}
	user.LastLogin = &now

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		logger.Error("auth.login.sign_failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "auth: token signing failed").
			WithTextCode(textCodeStorage)
	}
	logger.Info("auth.login.success", "user_id", user.ID.String())
	return &Session{Token: token, ExpiresAt: expires, User: user.Profile()}, nil
}

func (s *service) Verify(ctx context.Context, token string) (*Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" || s.tokens == nil {
		return nil, nil
	}
	id, _, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, nil
		}
		logging.FromContext(ctx, s.logger).Error("auth.verify.lookup_failed", "error", err)
		return nil, wrapStorage(err, "user lookup failed")
	}
	if !user.IsActive {
		return nil, nil
	}
	return &Principal{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}

func (s *service) Me(ctx context.Context, id uuid.UUID) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, ErrUserNotFound
		}
		return nil, wrapStorage(err, "user lookup failed")
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *service) Setup(ctx context.Context) (*Profile, error) {
	logger := logging.FromContext(ctx, s.logger)
	_, err := s.repo.FirstWithRole(ctx, RoleAdmin)
	if err == nil {
		return nil, ErrAdminExists
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		logger.Error("auth.setup.lookup_failed", "error", err)
		return nil, wrapStorage(err, "admin lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.Password), s.cost)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "auth: password hashing failed").
			WithTextCode(textCodeStorage)
	}
	now := s.now().UTC()
	user := &User{
		ID:           s.id(),
		Name:         s.admin.Name,
		Email:        strings.ToLower(strings.TrimSpace(s.admin.Email)),
		PasswordHash: string(hash),
		Role:         RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		logger.Error("auth.setup.failed", "error", err)
		return nil, wrapStorage(err, "admin create failed")
	}
	logger.Info("auth.setup.success", "email", created.Email)
	profile := created.Profile()
	return &profile, nil
}

func invalidCredentials() error {
	return goerrors.Wrap(ErrInvalidCredentials, goerrors.CategoryAuth, "Invalid credentials").
		WithTextCode(textCodeCredentials)
}

func wrapStorage(err error, message string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "auth: "+message).
		WithTextCode(textCodeStorage)
}
