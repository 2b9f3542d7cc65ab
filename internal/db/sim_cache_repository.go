package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/essence/internal/simulation"
)

// SimCacheRepository implements simulation.Store backed by PostgreSQL.
// Each config id keeps one row; saving overwrites it.
type SimCacheRepository struct {
	pool *pgxpool.Pool
}

// Compile-time check.
var _ simulation.Store = (*SimCacheRepository)(nil)

// NewSimCacheRepository creates a new simulation cache repository.
func NewSimCacheRepository(pool *pgxpool.Pool) *SimCacheRepository {
	return &SimCacheRepository{pool: pool}
}

// Load fetches the payload stored for configID.
func (r *SimCacheRepository) Load(ctx context.Context, configID string) ([]byte, bool, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload FROM sim_cache WHERE config_id = $1`, configID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query sim cache %q: %w", configID, err)
	}
	return payload, true, nil
}

// Save upserts the payload for configID. The last save wins.
func (r *SimCacheRepository) Save(ctx context.Context, configID string, payload []byte) error {
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO sim_cache (config_id, payload, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (config_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		configID, payload); err != nil {
		return fmt.Errorf("upsert sim cache %q: %w", configID, err)
	}
	return nil
}

// Delete removes the entry for configID.
func (r *SimCacheRepository) Delete(ctx context.Context, configID string) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM sim_cache WHERE config_id = $1`, configID); err != nil {
		return fmt.Errorf("delete sim cache %q: %w", configID, err)
	}
	return nil
}

// ConfigIDs lists the cached config ids.
func (r *SimCacheRepository) ConfigIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT config_id FROM sim_cache ORDER BY config_id`)
	if err != nil {
		return nil, fmt.Errorf("query sim cache ids: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect sim cache ids: %w", err)
	}
	return ids, nil
}
