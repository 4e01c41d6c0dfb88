package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// explanationRepo implements ExplanationRepo over the explanations table.
type explanationRepo struct {
	drv *entsql.Driver
}

func (r *explanationRepo) Get(ctx context.Context, key string) (*Explanation, error) {
	query, args := builder().
		Select("key", "subject_id", "question_id", "text", "model", "created_at").
		From(builder().Table(explanationsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query explanation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query explanation: %w", err)
		}
		return nil, fmt.Errorf("explanation %s: %w", key, ErrNotFound)
	}

	var (
		e       Explanation
		created int64
	)
	if err := rows.Scan(&e.Key, &e.SubjectID, &e.QuestionID, &e.Text, &e.Model, &created); err != nil {
		return nil, fmt.Errorf("scan explanation: %w", err)
	}
	e.CreatedAt = time.Unix(created, 0).UTC()
	return &e, nil
}

func (r *explanationRepo) Put(ctx context.Context, e *Explanation) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	query, args := builder().
		Insert(explanationsTable).
		Columns("key", "subject_id", "question_id", "text", "model", "created_at").
		Values(e.Key, e.SubjectID, e.QuestionID, e.Text, e.Model, created.Unix()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save explanation: %w", err)
	}
	return nil
}

func (r *explanationRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(builder().Table(explanationsTable)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count explanations: %w", err)
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return 0, fmt.Errorf("count explanations: %w", err)
	}
	return n, nil
}

func (r *explanationRepo) Clear(ctx context.Context) (int64, error) {
	query, args := builder().Delete(explanationsTable).Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("clear explanations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear explanations: %w", err)
	}
	return n, nil
}
