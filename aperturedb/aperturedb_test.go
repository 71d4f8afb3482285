package aperturedb

import (
	"testing"

	"github.com/aperture-data/formschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(group schema.FieldGroup) []string {
	names := make([]string, len(group.Fields))
	for i, field := range group.Fields {
		names[i] = field.Name
	}
	return names
}

func TestExportStorageForm(t *testing.T) {
	doc, err := Schema()
	require.NoError(t, err)

	groups, err := doc.Resolve(schema.ExportStorage)
	require.NoError(t, err)

	// exactly the shared host/credential block, nothing else
	require.Len(t, groups, 1)
	assert.Equal(t, 3, groups[0].ColumnCount)
	assert.Equal(t, []string{"title", "hostname", "port", "username", "password", "token"}, fieldNames(groups[0]))
}

func TestImportStorageForm(t *testing.T) {
	doc, err := Schema()
	require.NoError(t, err)

	groups, err := doc.Resolve(schema.ImportStorage)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, 3, groups[0].ColumnCount)
	assert.Equal(t, []string{"title", "hostname", "port", "username", "password", "token"}, fieldNames(groups[0]))
	assert.Equal(t, 1, groups[1].ColumnCount)
	assert.Equal(t, []string{"constraints", "as_format_jpg", "predictions", "pred_constraints", "limit"}, fieldNames(groups[1]))

	limit, ok := doc.Field(schema.ImportStorage, "limit")
	require.True(t, ok)
	assert.Equal(t, schema.TypeNumber, limit.Type)
	assert.True(t, limit.Required)
	require.NotNil(t, limit.Min)
	assert.Equal(t, float64(1), *limit.Min)
}

func TestCredentialFieldsAreProtected(t *testing.T) {
	doc, err := Schema()
	require.NoError(t, err)

	for _, name := range []string{"password", "token"} {
		field, ok := doc.Field(schema.ExportStorage, name)
		require.True(t, ok, name)
		assert.Equal(t, schema.TypePassword, field.Type, name)
		assert.True(t, field.ProtectedValue, name)
		assert.True(t, field.AllowEmpty, name)
		assert.True(t, field.SkipAutofill, name)
	}
}

func TestImportSubmissionLimit(t *testing.T) {
	doc, err := Schema()
	require.NoError(t, err)

	values := map[string]any{
		"title":    "Images",
		"hostname": "adb.example.com",
		"limit":    0,
	}
	err = doc.ValidateSubmission(schema.ImportStorage, values)
	require.Error(t, err)

	var errs schema.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "limit", errs[0].Field)

	values["limit"] = 1
	assert.NoError(t, doc.ValidateSubmission(schema.ImportStorage, values))

	values["limit"] = DefaultLimit
	assert.NoError(t, doc.ValidateSubmission(schema.ImportStorage, values))
}

func TestMustSchema(t *testing.T) {
	assert.NotPanics(t, func() { MustSchema() })
}
