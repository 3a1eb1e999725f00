package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/afdei/federation-cms/internal/auth"
	"github.com/afdei/federation-cms/internal/contact"
	"github.com/afdei/federation-cms/internal/events"
	"github.com/afdei/federation-cms/internal/media"
	"github.com/afdei/federation-cms/internal/projects"
	"github.com/afdei/federation-cms/internal/runtimeconfig"
	"github.com/afdei/federation-cms/internal/sections"
	"github.com/afdei/federation-cms/internal/settings"
)

var ErrDriverUnsupported = errors.New("storage: unsupported driver")

// Open connects to the configured database and returns a bun handle with
// the matching dialect.
func Open(cfg runtimeconfig.DatabaseConfig) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	var db *bun.DB
	switch driver {
	case "sqlite3", "sqlite":
		sqldb, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		// sqlite serialises writers; one connection avoids SQLITE_BUSY.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case "postgres", "postgresql":
		sqldb, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnsupported, cfg.Driver)
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db, nil
}

// Models lists every table owned by the site, in creation order.
func Models() []any {
	return []any{
		(*auth.User)(nil),
		(*sections.Section)(nil),
		(*events.Event)(nil),
		(*projects.Project)(nil),
		(*contact.Submission)(nil),
		(*settings.Setting)(nil),
		(*media.Asset)(nil),
	}
}

type index struct {
	model   any
	name    string
	columns []string
}

var indexes = []index{
	{model: (*events.Event)(nil), name: "idx_events_active_date", columns: []string{"is_active", "event_date"}},
	{model: (*projects.Project)(nil), name: "idx_projects_active_order", columns: []string{"is_active", "sort_order"}},
	{model: (*contact.Submission)(nil), name: "idx_contact_submissions_created", columns: []string{"created_at"}},
}

// Migrate creates missing tables and indexes. It is safe to run on every
// start.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// Ping verifies the connection, used by the health endpoint.
func Ping(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return errors.New("storage: database not configured")
	}
	return db.PingContext(ctx)
}
