// Package settings persists validated storage-connector configurations.
// It is the backend side of the form contract: submissions arrive as a
// name-to-value mapping keyed exactly as the schema declares, are validated
// field by field, and only then written through the repository.
package settings

import (
	"context"
	"fmt"
	"maps"

	"github.com/aperture-data/formschema/core/logger"
	"github.com/aperture-data/formschema/core/threading"
	"github.com/aperture-data/formschema/db"
	"github.com/aperture-data/formschema/registry"
	"github.com/aperture-data/formschema/schema"
	"github.com/google/uuid"
)

type Store struct {
	repo  db.Repository
	reg   *registry.Registry
	table string
}

func NewStore(repo db.Repository, reg *registry.Registry, table string) *Store {
	s := &Store{
		repo:  repo,
		reg:   reg,
		table: table,
	}

	// One storage title per connector type and direction.
	threading.GoSafe(func() {
		keys := []string{"connector_type", "variant", "values.title"}
		if err := repo.EnsureIndex(context.Background(), table, keys, true); err != nil {
			logger.Warn("failed to ensure settings index: %v", err)
		}
	})

	return s
}

// Save validates a submission against the connector's form schema and
// persists it. An empty id creates a new record; a non-empty id updates an
// existing one. On update, an empty value for a password field that allows
// empty keeps the stored secret instead of clearing it. Returns the record
// id.
func (s *Store) Save(ctx context.Context, connectorType string, variant schema.Variant, id string, values map[string]any) (string, error) {
	doc, err := s.reg.Get(connectorType)
	if err != nil {
		return "", err
	}

	if err := doc.ValidateSubmission(variant, values); err != nil {
		return "", err
	}

	stored := maps.Clone(values)

	if id == "" {
		id = uuid.New().String()
		record := map[string]any{
			"_id":            id,
			"connector_type": connectorType,
			"variant":        string(variant),
			"values":         stored,
		}
		if _, err := s.repo.Create(ctx, s.table, record); err != nil {
			return "", err
		}
		logger.Info("created %s %s settings %s: %v", connectorType, variant, id, doc.MaskValues(variant, stored))
		return id, nil
	}

	existing, err := s.repo.ReadOne(ctx, s.table, map[string]any{"_id": id})
	if err != nil {
		return "", err
	}
	if existing["connector_type"] != connectorType || existing["variant"] != string(variant) {
		return "", fmt.Errorf("settings %s do not belong to %s %s", id, connectorType, variant)
	}
	retainSecrets(doc, variant, stored, existing)

	update := map[string]any{"values": stored}
	if err := s.repo.Update(ctx, s.table, map[string]any{"_id": id}, update); err != nil {
		return "", err
	}
	logger.Info("updated %s %s settings %s: %v", connectorType, variant, id, doc.MaskValues(variant, stored))
	return id, nil
}

// Get reads one settings record by id. Values are returned raw; callers
// that echo or log them must mask protected fields themselves.
func (s *Store) Get(ctx context.Context, id string) (map[string]any, error) {
	return s.repo.ReadOne(ctx, s.table, map[string]any{"_id": id})
}

// List returns every settings record of one connector type and direction.
func (s *Store) List(ctx context.Context, connectorType string, variant schema.Variant) ([]map[string]any, error) {
	filter := map[string]any{
		"connector_type": connectorType,
		"variant":        string(variant),
	}
	return s.repo.ReadAll(ctx, s.table, filter)
}

// Delete removes one settings record by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, s.table, map[string]any{"_id": id})
}

// retainSecrets copies stored secrets over empty submissions on fields
// where an empty value means "leave unchanged".
func retainSecrets(doc *schema.Document, variant schema.Variant, submitted map[string]any, existing map[string]any) {
	previous, ok := existing["values"].(map[string]any)
	if !ok {
		return
	}

	groups, err := doc.Resolve(variant)
	if err != nil {
		return
	}
	for _, group := range groups {
		for _, field := range group.Fields {
			if field.Type != schema.TypePassword || !field.AllowEmpty {
				continue
			}
			value, present := submitted[field.Name]
			if present && value != nil && value != "" {
				continue
			}
			if secret, ok := previous[field.Name]; ok {
				submitted[field.Name] = secret
			}
		}
	}
}
