package memory

import (
	"context"
	"maps"
	"strconv"
	"sync"

	"github.com/aperture-data/formschema/db"
)

// MemoryRepository is an in-memory db.Repository used in tests and in
// deployments that do not persist connector settings.
type MemoryRepository struct {
	tables map[string][]map[string]any
	nextID int
	mu     sync.RWMutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tables: make(map[string][]map[string]any)}
}

func matches(record map[string]any, filter map[string]any) bool {
	for key, want := range filter {
		if got, ok := record[key]; !ok || got != want {
			return false
		}
	}
	return true
}

// clone copies records deeply so callers never share maps with the store,
// matching what a decoding driver returns.
func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		if nested, ok := value.(map[string]any); ok {
			out[key] = clone(nested)
		} else {
			out[key] = value
		}
	}
	return out
}

func (r *MemoryRepository) Create(ctx context.Context, table string, record map[string]any) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clone(record)
	if _, ok := stored["_id"]; !ok {
		r.nextID++
		stored["_id"] = strconv.Itoa(r.nextID)
	}
	r.tables[table] = append(r.tables[table], stored)
	return stored["_id"].(string), nil
}

func (r *MemoryRepository) ReadOne(ctx context.Context, table string, filter map[string]any) (map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.tables[table] {
		if matches(record, filter) {
			return clone(record), nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *MemoryRepository) ReadAll(ctx context.Context, table string, filter map[string]any) ([]map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []map[string]any
	for _, record := range r.tables[table] {
		if matches(record, filter) {
			results = append(results, clone(record))
		}
	}
	return results, nil
}

func (r *MemoryRepository) Update(ctx context.Context, table string, filter map[string]any, update map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.tables[table] {
		if matches(record, filter) {
			maps.Copy(record, update)
			return nil
		}
	}
	return db.ErrNotFound
}

func (r *MemoryRepository) Delete(ctx context.Context, table string, filter map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.tables[table]
	for i, record := range records {
		if matches(record, filter) {
			r.tables[table] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (r *MemoryRepository) Count(ctx context.Context, table string, filter map[string]any) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, record := range r.tables[table] {
		if matches(record, filter) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) EnsureIndex(ctx context.Context, table string, keys []string, unique bool) error {
	return nil
}
