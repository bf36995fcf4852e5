package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.applyTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record with automatic retry.
// Returns nil without error when no row matches.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var rows []T

	ctx, cancel := q.applyTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		rows = nil
		return q.buildSelect(&rows).Limit(1).Scan(ctx)
	})

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.applyTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var data []T
		var err error
		count, err = q.buildSelect(&data).Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Insert inserts a new record and returns it with automatic retry
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.applyTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.db.NewInsert().Model(data)
		if q.tableName != "" {
			query = query.Table(q.tableName)
		}
		_, err := query.Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update updates records matching the query from a sparse column map with
// automatic retry, returning the number of affected rows
func (q *QueryBuilder[T]) Update(ctx context.Context, fields map[string]any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.applyTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.db.NewUpdate().Model(&model)
		if q.tableName != "" {
			query = query.Table(q.tableName)
		}

		for key, value := range fields {
			query = query.Set("? = ?", bun.Ident(key), value)
		}
		query = applyWheres(query, q.wheres)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete deletes records matching the query with automatic retry,
// returning the number of affected rows
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.applyTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.db.NewDelete().Model(&model)
		if q.tableName != "" {
			query = query.Table(q.tableName)
		}
		query = applyWheres(query, q.wheres)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Upsert inserts the record or replaces it when the conflict column
// already holds the same value (insert-or-replace by key)
func (q *QueryBuilder[T]) Upsert(ctx context.Context, data *T, conflictColumn string, updateColumns ...string) error {
	start := time.Now()

	ctx, cancel := q.applyTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.db.NewInsert().Model(data).
			On("CONFLICT (?) DO UPDATE", bun.Ident(conflictColumn))
		for _, col := range updateColumns {
			query = query.Set("? = EXCLUDED.?", bun.Ident(col), bun.Ident(col))
		}
		if q.tableName != "" {
			query = query.Table(q.tableName)
		}
		_, err := query.Exec(ctx)
		return err
	})

	if err != nil {
		return fmt.Errorf("failed to execute upsert query: %w (took %v)", err, time.Since(start))
	}

	return nil
}

// buildSelect assembles the bun SELECT from the collected clauses
func (q *QueryBuilder[T]) buildSelect(dest *[]T) *bun.SelectQuery {
	query := q.db.NewSelect().Model(dest)

	if q.tableName != "" {
		query = query.Table(q.tableName)
	}

	for _, where := range q.wheres {
		if where.IsRaw {
			query = query.Where(where.RawSQL, where.RawArgs...)
		} else {
			query = query.Where(fmt.Sprintf("%s %s ?", where.Column, where.Operator), where.Value)
		}
	}

	for _, order := range q.orders {
		query = query.Order(order.Column + " " + order.Direction)
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}

	return query
}

type whereable[Q any] interface {
	Where(query string, args ...any) Q
}

func applyWheres[Q whereable[Q]](query Q, wheres []*WhereClause) Q {
	for _, where := range wheres {
		if where.IsRaw {
			query = query.Where(where.RawSQL, where.RawArgs...)
		} else {
			query = query.Where(fmt.Sprintf("%s %s ?", where.Column, where.Operator), where.Value)
		}
	}
	return query
}
