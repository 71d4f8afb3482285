package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minValue(v float64) *float64 { return &v }

func testFragments() map[string]FieldGroup {
	return map[string]FieldGroup{
		"connection": {
			ColumnCount: 3,
			Fields: []FieldDefinition{
				{Type: TypeText, Name: "host", Label: "Host", Required: true},
				{Type: TypePassword, Name: "secret", Label: "Secret", AllowEmpty: true, ProtectedValue: true},
			},
		},
	}
}

func testGroups() map[Variant][]FieldGroup {
	return map[Variant][]FieldGroup{
		ImportStorage: {
			{Fragment: "connection"},
			{
				ColumnCount: 1,
				Fields: []FieldDefinition{
					{Type: TypeNumber, Name: "limit", Label: "Limit", Required: true, Min: minValue(1)},
					{Type: TypeToggle, Name: "enabled", Label: "Enabled"},
					{Type: TypeJSON, Name: "filter", Label: "Filter"},
				},
			},
		},
		ExportStorage: {
			{Fragment: "connection"},
		},
	}
}

func TestNewDocumentExpandsFragments(t *testing.T) {
	doc, err := NewDocument(testFragments(), testGroups())
	require.NoError(t, err)

	groups, err := doc.Resolve(ImportStorage)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, 3, groups[0].ColumnCount)
	assert.Empty(t, groups[0].Fragment)
	assert.Equal(t, "host", groups[0].Fields[0].Name)
	assert.Equal(t, "secret", groups[0].Fields[1].Name)

	assert.Equal(t, 1, groups[1].ColumnCount)
	assert.Equal(t, "limit", groups[1].Fields[0].Name)

	exportGroups, err := doc.Resolve(ExportStorage)
	require.NoError(t, err)
	require.Len(t, exportGroups, 1)
	assert.Equal(t, 3, exportGroups[0].ColumnCount)
}

func TestResolveIsDeterministic(t *testing.T) {
	doc, err := NewDocument(testFragments(), testGroups())
	require.NoError(t, err)

	first, err := doc.Resolve(ImportStorage)
	require.NoError(t, err)
	second, err := doc.Resolve(ImportStorage)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveReturnsCopies(t *testing.T) {
	doc, err := NewDocument(testFragments(), testGroups())
	require.NoError(t, err)

	groups, err := doc.Resolve(ImportStorage)
	require.NoError(t, err)
	groups[0].Fields[0].Name = "mutated"
	*groups[1].Fields[0].Min = 99

	fresh, err := doc.Resolve(ImportStorage)
	require.NoError(t, err)
	assert.Equal(t, "host", fresh[0].Fields[0].Name)
	assert.Equal(t, float64(1), *fresh[1].Fields[0].Min)
}

func TestResolveUnknownVariant(t *testing.T) {
	groups := testGroups()
	delete(groups, ExportStorage)
	doc, err := NewDocument(testFragments(), groups)
	require.NoError(t, err)

	_, err = doc.Resolve(ExportStorage)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestFieldNamesAreDistinct(t *testing.T) {
	doc, err := NewDocument(testFragments(), testGroups())
	require.NoError(t, err)

	for _, variant := range doc.Variants() {
		groups, err := doc.Resolve(variant)
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, group := range groups {
			for _, field := range group.Fields {
				assert.False(t, seen[field.Name], "duplicate name %s in %s", field.Name, variant)
				seen[field.Name] = true
			}
		}
	}
}

func TestNewDocumentRejectsDuplicateFieldName(t *testing.T) {
	groups := testGroups()
	groups[ImportStorage][1].Fields = append(groups[ImportStorage][1].Fields,
		FieldDefinition{Type: TypeText, Name: "host", Label: "Host Again"})

	_, err := NewDocument(testFragments(), groups)
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestNewDocumentRejectsUnknownFragment(t *testing.T) {
	groups := map[Variant][]FieldGroup{
		ImportStorage: {{Fragment: "missing"}},
	}
	_, err := NewDocument(nil, groups)
	assert.ErrorIs(t, err, ErrFragmentNotFound)
}

func TestNewDocumentRejectsStructuralDefects(t *testing.T) {
	tests := []struct {
		name  string
		group FieldGroup
	}{
		{
			name:  "zero column count",
			group: FieldGroup{Fields: []FieldDefinition{{Type: TypeText, Name: "a", Label: "A"}}},
		},
		{
			name:  "no fields",
			group: FieldGroup{ColumnCount: 1},
		},
		{
			name:  "empty field name",
			group: FieldGroup{ColumnCount: 1, Fields: []FieldDefinition{{Type: TypeText, Label: "A"}}},
		},
		{
			name:  "unknown field type",
			group: FieldGroup{ColumnCount: 1, Fields: []FieldDefinition{{Type: "color", Name: "a", Label: "A"}}},
		},
		{
			name:  "min on text field",
			group: FieldGroup{ColumnCount: 1, Fields: []FieldDefinition{{Type: TypeText, Name: "a", Label: "A", Min: minValue(1)}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDocument(nil, map[Variant][]FieldGroup{
				ImportStorage: {tt.group},
			})
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestNewDocumentRejectsEmptyDocument(t *testing.T) {
	_, err := NewDocument(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestMaskValues(t *testing.T) {
	doc, err := NewDocument(testFragments(), testGroups())
	require.NoError(t, err)

	masked := doc.MaskValues(ImportStorage, map[string]any{
		"host":   "db.example.com",
		"secret": "hunter2",
		"limit":  10,
	})

	assert.Equal(t, "db.example.com", masked["host"])
	assert.Equal(t, MaskedValue, masked["secret"])
	assert.Equal(t, 10, masked["limit"])
}

func TestField(t *testing.T) {
	doc, err := NewDocument(testFragments(), testGroups())
	require.NoError(t, err)

	field, ok := doc.Field(ImportStorage, "limit")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, field.Type)
	assert.True(t, field.Required)

	_, ok = doc.Field(ExportStorage, "limit")
	assert.False(t, ok)
}
