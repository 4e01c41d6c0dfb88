package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// settingsRepo implements SettingsRepo over the settings table.
type settingsRepo struct {
	drv *entsql.Driver
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, error) {
	query, args := builder().
		Select("value").
		From(builder().Table(settingsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return "", fmt.Errorf("query setting %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("query setting %q: %w", key, err)
		}
		return "", fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", fmt.Errorf("scan setting %q: %w", key, err)
	}
	return value, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().
		Insert(settingsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save setting %q: %w", key, err)
	}
	return nil
}

func (r *settingsRepo) All(ctx context.Context) (map[string]string, error) {
	query, args := builder().
		Select("key", "value").
		From(builder().Table(settingsTable)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r *settingsRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(settingsTable).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	return nil
}
