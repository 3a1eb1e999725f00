package main

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/spf13/afero"

	"github.com/afdei/federation-cms/internal/runtimeconfig"
)

type routerConfig struct {
	API        http.Handler
	Static     afero.Fs
	Uploads    afero.Fs
	UploadPath string
	CORS       runtimeconfig.CORSConfig
	RateLimit  runtimeconfig.RateLimitConfig
}

func newRouter(cfg routerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	}

	r.Mount("/api", cfg.API)

	if cfg.Uploads != nil {
		prefix := "/" + strings.Trim(cfg.UploadPath, "/")
		if prefix == "/" {
			prefix = "/uploads"
		}
		files := http.FileServer(afero.NewHttpFs(cfg.Uploads))
		r.Handle(prefix+"/*", http.StripPrefix(prefix, files))
	}
	if cfg.Static != nil {
		r.Get("/*", spaHandler(cfg.Static))
	}
	return r
}

// spaHandler serves built frontend assets and answers index.html for any
// other path so client-side routes resolve.
func spaHandler(static afero.Fs) http.HandlerFunc {
	files := http.FileServer(afero.NewHttpFs(static))
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if info, err := static.Stat(name); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		index, err := afero.ReadFile(static, "/index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(index)
	}
}
