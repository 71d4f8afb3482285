package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a filter matches no record.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	Create(ctx context.Context, table string, record map[string]any) (string, error)
	ReadOne(ctx context.Context, table string, filter map[string]any) (map[string]any, error)
	ReadAll(ctx context.Context, table string, filter map[string]any) ([]map[string]any, error)
	Update(ctx context.Context, table string, filter map[string]any, update map[string]any) error
	Delete(ctx context.Context, table string, filter map[string]any) error
	Count(ctx context.Context, table string, filter map[string]any) (int64, error)
	EnsureIndex(ctx context.Context, table string, keys []string, unique bool) error
}
