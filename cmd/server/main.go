package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	site "github.com/afdei/federation-cms"
	"github.com/afdei/federation-cms/internal/di"
	"github.com/afdei/federation-cms/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("site server: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("site-server", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML, TOML or JSON config file")
	envFile := fs.String("env-file", ".env", "Dotenv file applied before reading SITE_* variables")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := site.LoadConfig(*configPath, *envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	defer container.Close()
	logger := logging.ModuleLogger(container.LoggerProvider(), "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	handler := newRouter(routerConfig{
		API:        container.API().Handler(),
		Static:     afero.NewBasePathFs(afero.NewOsFs(), cfg.Server.StaticDir),
		Uploads:    afero.NewBasePathFs(afero.NewOsFs(), cfg.Media.UploadDir),
		UploadPath: cfg.Media.PublicPath,
		CORS:       cfg.CORS,
		RateLimit:  cfg.RateLimit,
	})
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
