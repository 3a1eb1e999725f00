package di

import (
	"context"
	"errors"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/afdei/federation-cms/internal/auth"
	"github.com/afdei/federation-cms/internal/contact"
	"github.com/afdei/federation-cms/internal/events"
	siteapi "github.com/afdei/federation-cms/internal/http"
	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/internal/logging/gologger"
	"github.com/afdei/federation-cms/internal/media"
	"github.com/afdei/federation-cms/internal/projects"
	"github.com/afdei/federation-cms/internal/runtimeconfig"
	"github.com/afdei/federation-cms/internal/sections"
	"github.com/afdei/federation-cms/internal/seed"
	"github.com/afdei/federation-cms/internal/settings"
	"github.com/afdei/federation-cms/internal/storage"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

// Container wires repositories, the optional read cache and services.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	now            func() time.Time

	bunDB  *bun.DB
	ownsDB bool

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	fileStore     media.FileStore

	sectionRepo sections.SectionRepository
	eventRepo   events.EventRepository
	projectRepo projects.ProjectRepository
	contactRepo contact.SubmissionRepository
	settingRepo settings.SettingRepository
	mediaRepo   media.AssetRepository
	userRepo    auth.UserRepository

	tokens *auth.TokenIssuer

	sectionSvc  sections.Service
	eventSvc    events.Service
	projectSvc  projects.Service
	contactSvc  contact.Service
	settingsSvc settings.Service
	mediaSvc    media.Service
	authSvc     auth.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an existing database handle. The container will not
// close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the configured logging backend.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithFileStore overrides where uploaded files are written.
func WithFileStore(store media.FileStore) Option {
	return func(c *Container) {
		c.fileStore = store
	}
}

// WithClock overrides the time source handed to every service.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.now = clock
		}
	}
}

func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if c.bunDB == nil {
		db, err := storage.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.fileStore == nil {
		store, err := media.NewDiskStore(cfg.Media.UploadDir)
		if err != nil {
			return nil, c.closeOnError(err)
		}
		c.fileStore = store
	}
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, c.closeOnError(err)
	}
	c.tokens = tokens

	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()

	logging.ModuleLogger(c.loggerProvider, "site").Debug("container.configured",
		"driver", cfg.Database.Driver,
		"cache", c.cacheService != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch c.Config.Logging.Provider {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	c.sectionRepo = sections.NewBunSectionRepository(c.bunDB)
	c.eventRepo = events.NewBunEventRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.projectRepo = projects.NewBunProjectRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.contactRepo = contact.NewBunSubmissionRepository(c.bunDB)
	c.settingRepo = settings.NewBunSettingRepository(c.bunDB)
	c.mediaRepo = media.NewBunAssetRepository(c.bunDB)
	c.userRepo = auth.NewBunUserRepository(c.bunDB)
}

func (c *Container) configureServices() {
	provider := c.loggerProvider

	c.sectionSvc = sections.NewService(c.sectionRepo,
		sections.WithClock(c.now),
		sections.WithLogger(logging.SectionsLogger(provider)),
	)
	c.eventSvc = events.NewService(c.eventRepo,
		events.WithClock(c.now),
		events.WithLogger(logging.EventsLogger(provider)),
	)
	c.projectSvc = projects.NewService(c.projectRepo,
		projects.WithClock(c.now),
		projects.WithLogger(logging.ProjectsLogger(provider)),
	)
	c.contactSvc = contact.NewService(c.contactRepo,
		contact.WithClock(c.now),
		contact.WithLogger(logging.ContactLogger(provider)),
	)
	c.settingsSvc = settings.NewService(c.settingRepo,
		settings.WithClock(c.now),
		settings.WithLogger(logging.SettingsLogger(provider)),
	)
	c.mediaSvc = media.NewService(c.mediaRepo, c.fileStore,
		media.WithClock(c.now),
		media.WithLogger(logging.MediaLogger(provider)),
		media.WithMaxUploadBytes(c.Config.Media.MaxUploadBytes),
		media.WithPublicPath(c.Config.Media.PublicPath),
	)
	c.authSvc = auth.NewService(c.userRepo, c.tokens,
		auth.WithClock(c.now),
		auth.WithLogger(logging.AuthLogger(provider)),
		auth.WithAdminAccount(auth.AdminAccount{
			Name:     c.Config.Auth.AdminName,
			Email:    c.Config.Auth.AdminEmail,
			Password: c.Config.Auth.AdminPassword,
		}),
	)
}

// Bootstrap creates missing tables and, when enabled, seeds initial data.
func (c *Container) Bootstrap(ctx context.Context) error {
	if err := storage.Migrate(ctx, c.bunDB); err != nil {
		return err
	}
	if !c.Config.Seed.Enabled {
		return nil
	}
	_, err := c.Seeder().Run(ctx)
	return err
}

// API builds the REST adapters over the container's services.
func (c *Container) API() *siteapi.API {
	return siteapi.NewAPI(
		siteapi.WithSectionService(c.sectionSvc),
		siteapi.WithEventService(c.eventSvc),
		siteapi.WithProjectService(c.projectSvc),
		siteapi.WithContactService(c.contactSvc),
		siteapi.WithSettingsService(c.settingsSvc),
		siteapi.WithMediaService(c.mediaSvc),
		siteapi.WithAuthService(c.authSvc),
		siteapi.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		siteapi.WithMaxUploadBytes(c.Config.Media.MaxUploadBytes),
		siteapi.WithHealthCheck(func(ctx context.Context) error {
			return storage.Ping(ctx, c.bunDB)
		}),
	)
}

func (c *Container) Seeder() *seed.Seeder {
	return &seed.Seeder{
		Auth:     c.authSvc,
		Sections: c.sectionSvc,
		Projects: c.projectSvc,
		Events:   c.eventSvc,
		Logger:   logging.SeedLogger(c.loggerProvider),
	}
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	return c.bunDB.Close()
}

func (c *Container) closeOnError(err error) error {
	if closeErr := c.Close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}

func (c *Container) DB() *bun.DB                               { return c.bunDB }
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }
func (c *Container) CacheService() repocache.CacheService      { return c.cacheService }
func (c *Container) SectionService() sections.Service          { return c.sectionSvc }
func (c *Container) EventService() events.Service              { return c.eventSvc }
func (c *Container) ProjectService() projects.Service          { return c.projectSvc }
func (c *Container) ContactService() contact.Service           { return c.contactSvc }
func (c *Container) SettingsService() settings.Service         { return c.settingsSvc }
func (c *Container) MediaService() media.Service               { return c.mediaSvc }
func (c *Container) AuthService() auth.Service                 { return c.authSvc }
