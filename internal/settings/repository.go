package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingKey = "company_settings"

// Repository persists the single company settings record.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Put(ctx context.Context, s Settings) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context) (*Settings, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data FROM company_settings WHERE setting_key = $1`, settingKey,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

func (r *repository) Put(ctx context.Context, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO company_settings (setting_key, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (setting_key) DO UPDATE SET data = $2, updated_at = $3`,
		settingKey, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}
