package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/afdei/federation-cms/internal/bilingual"
	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

var (
	ErrKeyRequired = errors.New("settings: key is required")
)

const (
	textCodeStorage    = "SETTINGS_STORAGE_FAILED"
	textCodeValidation = "SETTINGS_INVALID"
)

// Service reads and writes site settings.
type Service interface {
	// All returns every setting decoded. Values that are not JSON come back
	// as the raw stored string.
	All(ctx context.Context) (map[string]any, error)
	// Get reports found=false for unknown keys.
	Get(ctx context.Context, key string) (value any, found bool, err error)
	Set(ctx context.Context, key string, value any) error
	SetMany(ctx context.Context, values map[string]any) error
}

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
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
	repo   SettingRepository
	now    func() time.Time
	logger interfaces.Logger
}

func NewService(repo SettingRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) All(ctx context.Context) (map[string]any, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		logging.FromContext(ctx, s.logger).Error("settings.list.failed", "error", err)
		return nil, wrapStorage(err, "settings list failed")
	}
	out := make(map[string]any, len(records))
	for _, record := range records {
		out[record.Key] = DecodeValue(record.Value)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, key string) (any, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, wrapValidation(ErrKeyRequired)
	}
	record, err := s.repo.Get(ctx, key)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, false, nil
		}
		logging.FromContext(ctx, s.logger).Error("settings.get.failed", "key", key, "error", err)
		return nil, false, wrapStorage(err, "setting read failed")
	}
	return DecodeValue(record.Value), true, nil
}

func (s *service) Set(ctx context.Context, key string, value any) error {
	return s.SetMany(ctx, map[string]any{key: value})
}

func (s *service) SetMany(ctx context.Context, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := s.now().UTC()
	records := make([]*Setting, 0, len(keys))
	for _, key := range keys {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			return wrapValidation(ErrKeyRequired)
		}
		encoded, err := EncodeValue(values[key])
		if err != nil {
			return wrapValidation(err)
		}
		records = append(records, &Setting{Key: trimmed, Value: encoded, UpdatedAt: now})
	}

	logger := logging.FromContext(ctx, s.logger)
	if err := s.repo.Upsert(ctx, records...); err != nil {
		logger.Error("settings.upsert.failed", "keys", keys, "error", err)
		return wrapStorage(err, "settings upsert failed")
	}
	logger.Debug("settings.upsert.success", "keys", keys)
	return nil
}

// EncodeValue stores strings verbatim and JSON-encodes everything else.
func EncodeValue(value any) (string, error) {
	if raw, ok := value.(json.RawMessage); ok {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return text, nil
		}
	}
	return bilingual.Encode(value)
}

// DecodeValue parses stored JSON, falling back to the raw text.
func DecodeValue(stored string) any {
	var value any
	if err := json.Unmarshal([]byte(stored), &value); err != nil {
		return stored
	}
	return value
}

func wrapStorage(err error, message string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "settings: "+message).
		WithTextCode(textCodeStorage)
}

func wrapValidation(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "settings: input rejected").
		WithTextCode(textCodeValidation)
}
