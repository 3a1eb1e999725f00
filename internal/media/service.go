package media

import (
	"context"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

var (
	ErrAssetNotFound    = errors.New("media: asset not found")
	ErrFileRequired     = errors.New("media: no file uploaded")
	ErrFileTooLarge     = errors.New("media: file exceeds upload limit")
	ErrStoreUnavailable = errors.New("media: file store unavailable")
)

const (
	// DefaultMaxUploadBytes caps a single upload at 50 MiB.
	DefaultMaxUploadBytes int64 = 50 << 20
	DefaultPublicPath           = "/uploads"

	textCodeStorage    = "MEDIA_STORAGE_FAILED"
	textCodeValidation = "MEDIA_INVALID"
)

// UploadInput carries one uploaded file.
type UploadInput struct {
	Filename string
	MimeType string
	Body     io.Reader
}

// Service manages the upload library.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
	Get(ctx context.Context, id uuid.UUID) (*Asset, error)
	// Delete removes the file first, then the metadata row.
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

// WithMaxUploadBytes overrides the per-file size cap.
func WithMaxUploadBytes(limit int64) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.maxBytes = limit
		}
	}
}

// WithPublicPath sets the URL prefix files are served under.
func WithPublicPath(prefix string) ServiceOption {
	return func(s *service) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			s.publicPath = "/" + strings.Trim(prefix, "/")
		}
	}
}

type service struct {
	repo       AssetRepository
	store      FileStore
	now        func() time.Time
	id         func() uuid.UUID
	logger     interfaces.Logger
	maxBytes   int64
	publicPath string
}

func NewService(repo AssetRepository, store FileStore, opts ...ServiceOption) Service {
	s := &service{
		repo:       repo,
		store:      store,
		now:        time.Now,
		id:         uuid.New,
		logger:     logging.NoOp(),
		maxBytes:   DefaultMaxUploadBytes,
		publicPath: DefaultPublicPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*Asset, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	original := strings.TrimSpace(path.Base(strings.ReplaceAll(input.Filename, "\\", "/")))
	if input.Body == nil || original == "" || original == "." || original == "/" {
		return nil, wrapValidation(ErrFileRequired)
	}

	now := s.now().UTC()
	name := StoredName(now, original)
	logger := logging.WithFields(logging.FromContext(ctx, s.logger), map[string]any{"filename": name})

	size, err := s.store.Save(ctx, name, input.Body, s.maxBytes)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return nil, wrapValidation(err)
		}
		logger.Error("media.upload.write_failed", "error", err)
		return nil, wrapStorage(err, "file write failed")
	}

	mimeType := strings.TrimSpace(input.MimeType)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	record := &Asset{
		ID:           s.id(),
		Filename:     name,
		OriginalName: original,
		MimeType:     mimeType,
		Size:         size,
		URL:          s.publicPath + "/" + name,
		CreatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		_ = s.store.Remove(ctx, name)
		logger.Error("media.upload.failed", "error", err)
		return nil, wrapStorage(err, "asset create failed")
	}
	logger.Info("media.upload.success", "size", size)
	return stored, nil
}

func (s *service) List(ctx context.Context) ([]*Asset, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		logging.FromContext(ctx, s.logger).Error("media.list.failed", "error", err)
		return nil, wrapStorage(err, "asset list failed")
	}
	return records, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Asset, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(ctx, id, err, "asset read failed")
	}
	return record, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.mapError(ctx, id, err, "asset read failed")
	}
	if s.store != nil {
		if err := s.store.Remove(ctx, record.Filename); err != nil {
			logging.FromContext(ctx, s.logger).Error("media.delete.file_failed", "filename", record.Filename, "error", err)
			return wrapStorage(err, "file remove failed")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(ctx, id, err, "asset delete failed")
	}
	logging.FromContext(ctx, s.logger).Debug("media.delete.success", "filename", record.Filename)
	return nil
}

func (s *service) mapError(ctx context.Context, id uuid.UUID, err error, message string) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return ErrAssetNotFound
	}
	logging.FromContext(ctx, s.logger).Error("media.storage.failed", "asset_id", id.String(), "error", err)
	return wrapStorage(err, message)
}

// StoredName builds the on-disk name <unix-millis>-<slug>.<ext>.
func StoredName(at time.Time, original string) string {
	ext := path.Ext(original)
	base := strings.TrimSuffix(original, ext)
	normalized, err := slug.Normalize(base)
	if err != nil || normalized == "" {
		normalized = "file"
	}
	if cleaned, err := slug.Normalize(strings.TrimPrefix(ext, ".")); err == nil && cleaned != "" {
		ext = "." + cleaned
	} else {
		ext = ""
	}
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + normalized + ext
}

func wrapStorage(err error, message string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "media: "+message).
		WithTextCode(textCodeStorage)
}

func wrapValidation(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "media: upload rejected").
		WithTextCode(textCodeValidation)
}
