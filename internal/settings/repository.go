package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// SettingRepository persists site settings.
type SettingRepository interface {
	List(ctx context.Context) ([]*Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, settings ...*Setting) error
}

// NotFoundError is returned when a setting key is unknown.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("setting %q not found", e.Key)
}

type bunSettingRepository struct {
	db bun.IDB
}

// NewBunSettingRepository builds a settings repository on bun.
func NewBunSettingRepository(db bun.IDB) SettingRepository {
	return &bunSettingRepository{db: db}
}

func (r *bunSettingRepository) List(ctx context.Context) ([]*Setting, error) {
	var records []*Setting
	if err := r.db.NewSelect().Model(&records).Order("setting_key ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("settings repository error: %w", err)
	}
	return records, nil
}

func (r *bunSettingRepository) Get(ctx context.Context, key string) (*Setting, error) {
	record := &Setting{}
	err := r.db.NewSelect().Model(record).Where("?TableAlias.setting_key = ?", key).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("settings repository error: %w", err)
	}
	return record, nil
}

// Upsert writes every setting inside one transaction.
func (r *bunSettingRepository) Upsert(ctx context.Context, settings ...*Setting) error {
	if len(settings) == 0 {
		return nil
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, setting := range settings {
			_, err := tx.NewInsert().
				Model(setting).
				On("CONFLICT (setting_key) DO UPDATE").
				Set("value = EXCLUDED.value").
				Set("updated_at = EXCLUDED.updated_at").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("settings repository error: %w", err)
			}
		}
		return nil
	})
}
