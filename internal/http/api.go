package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/afdei/federation-cms/internal/auth"
	"github.com/afdei/federation-cms/internal/contact"
	"github.com/afdei/federation-cms/internal/events"
	"github.com/afdei/federation-cms/internal/logging"
	"github.com/afdei/federation-cms/internal/media"
	"github.com/afdei/federation-cms/internal/projects"
	"github.com/afdei/federation-cms/internal/sections"
	"github.com/afdei/federation-cms/internal/settings"
	"github.com/afdei/federation-cms/pkg/interfaces"
)

// API registers the public and editor endpoints of the site.
type API struct {
	basePath       string
	sections       sections.Service
	events         events.Service
	projects       projects.Service
	contact        contact.Service
	settings       settings.Service
	media          media.Service
	auth           auth.Service
	logger         interfaces.Logger
	maxUploadBytes int64
	healthCheck    func(context.Context) error
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath:       "/api",
		logger:         logging.NoOp(),
		maxUploadBytes: media.DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

func WithSectionService(service sections.Service) Option {
	return func(api *API) { api.sections = service }
}

func WithEventService(service events.Service) Option {
	return func(api *API) { api.events = service }
}

func WithProjectService(service projects.Service) Option {
	return func(api *API) { api.projects = service }
}

func WithContactService(service contact.Service) Option {
	return func(api *API) { api.contact = service }
}

func WithSettingsService(service settings.Service) Option {
	return func(api *API) { api.settings = service }
}

func WithMediaService(service media.Service) Option {
	return func(api *API) { api.media = service }
}

// WithAuthService wires token verification. Without it every protected
// route answers 401.
func WithAuthService(service auth.Service) Option {
	return func(api *API) { api.auth = service }
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithMaxUploadBytes caps multipart request bodies on the upload route.
func WithMaxUploadBytes(limit int64) Option {
	return func(api *API) {
		if limit > 0 {
			api.maxUploadBytes = limit
		}
	}
}

// WithHealthCheck sets the check consulted by the health route, typically a
// database ping.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(api *API) { api.healthCheck = check }
}

// Register attaches every route to mux.
func (api *API) Register(mux *http.ServeMux) {
	if api == nil || mux == nil {
		return
	}
	base := api.basePath
	api.registerSectionRoutes(mux, base)
	api.registerEventRoutes(mux, base)
	api.registerProjectRoutes(mux, base)
	api.registerContactRoutes(mux, base)
	api.registerSettingsRoutes(mux, base)
	api.registerMediaRoutes(mux, base)
	api.registerAuthRoutes(mux, base)
	mux.HandleFunc("GET "+joinPath(base, "health"), api.handleHealth)
}

// Handler returns a mux with every route registered.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	return mux
}

// requireAuth resolves the bearer token before next runs. Requests without
// an active principal stop here with 401.
func (api *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.auth == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Please authenticate"})
			return
		}
		principal, err := api.auth.Verify(r.Context(), bearerToken(r))
		if err != nil {
			logging.FromContext(r.Context(), api.logger).Error("http.auth.verify_failed", "error", err)
			writeError(w, err)
			return
		}
		if principal == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Please authenticate"})
			return
		}
		ctx := auth.WithPrincipal(r.Context(), principal)
		ctx = logging.ContextWithFields(ctx, map[string]any{"user_id": principal.ID.String()})
		next(w, r.WithContext(ctx))
	}
}

func (api *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if api.healthCheck != nil {
		if err := api.healthCheck(r.Context()); err != nil {
			logging.FromContext(r.Context(), api.logger).Error("http.health.failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
