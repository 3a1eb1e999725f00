package di_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/afdei/federation-cms/internal/di"
	"github.com/afdei/federation-cms/internal/events"
	"github.com/afdei/federation-cms/internal/logging/gologger"
	"github.com/afdei/federation-cms/internal/media"
	"github.com/afdei/federation-cms/internal/runtimeconfig"
	"github.com/afdei/federation-cms/pkg/interfaces"
	"github.com/afdei/federation-cms/pkg/testsupport"
)

func newContainer(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *di.Container {
	t.Helper()
	opts = append([]di.Option{
		di.WithBunDB(testsupport.NewBunDB(t)),
		di.WithFileStore(media.NewFileStore(afero.NewMemMapFs())),
	}, opts...)
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	return container
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Auth.JWTSecret = ""
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrJWTSecretRequired) {
		t.Fatalf("expected ErrJWTSecretRequired, got %v", err)
	}
}

func TestBootstrapSeedsAndLogs(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Seed.Enabled = true
	rec := newRecordingProvider()
	container := newContainer(t, cfg, di.WithLoggerProvider(rec))

	ctx := context.Background()
	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	all, err := container.SectionService().GetAllSections(ctx)
	if err != nil {
		t.Fatalf("GetAllSections() error = %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected five seeded sections, got %d", len(all))
	}

	session, err := container.AuthService().Login(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.User.Role != "admin" {
		t.Fatalf("unexpected session user %#v", session.User)
	}

	entry := rec.find("seed.completed")
	if entry == nil {
		t.Fatalf("expected seed.completed entry, got %#v", rec.messages())
	}
	if got := entry.fields["module"]; got != "site.seed" {
		t.Fatalf("expected module site.seed, got %v", got)
	}
}

func TestBootstrapWithoutSeed(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Seed.Enabled = false
	container := newContainer(t, cfg)
	ctx := context.Background()
	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	all, err := container.SectionService().ListSections(ctx)
	if err != nil {
		t.Fatalf("ListSections() error = %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no sections, got %d", len(all))
	}
}

func TestCacheEnabledServesReads(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Seed.Enabled = false
	cfg.Cache.Enabled = true
	container := newContainer(t, cfg)
	if container.CacheService() == nil {
		t.Fatalf("expected cache service when cache is enabled")
	}

	ctx := context.Background()
	svc := container.EventService()
	date, err := events.ParseDate("2025-01-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	created, err := svc.Create(ctx, events.CreateInput{Date: date})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		got, err := svc.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ID != created.ID {
			t.Fatalf("unexpected event %#v", got)
		}
	}
}

func TestGoLoggerProviderConfigured(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	container := newContainer(t, cfg)
	if _, ok := container.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
}

type recordingProvider struct {
	mu      sync.Mutex
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{provider: p, fields: map[string]any{"logger": name}}
}

func (p *recordingProvider) record(entry recordedEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

func (p *recordingProvider) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.entries))
	for _, entry := range p.entries {
		out = append(out, entry.msg)
	}
	return out
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	fields := make(map[string]any, len(l.fields)+len(args)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	l.provider.record(recordedEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("trace", msg, args...) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("debug", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("info", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("warn", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("error", msg, args...) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("fatal", msg, args...) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{provider: l.provider, fields: merged}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return l
}
