// Package aperturedb declares the configuration form schema of the
// ApertureDB storage connector. Both form directions share one
// host/credential block; the import form adds the query controls that
// select which images become tasks.
package aperturedb

import (
	"github.com/aperture-data/formschema/schema"
)

const (
	// TypeName is the connector type key this schema is registered under.
	TypeName = "aperturedb"

	// DefaultLimit is the import task limit applied when the user leaves
	// the field at its prefilled value.
	DefaultLimit = 1000

	connectionFragment = "connection"
)

func minValue(v float64) *float64 { return &v }

var connectionGroup = schema.FieldGroup{
	ColumnCount: 3,
	Fields: []schema.FieldDefinition{
		{
			Type:     schema.TypeText,
			Name:     "title",
			Label:    "Storage Title",
			Required: true,
		},
		{
			Type:        schema.TypeText,
			Name:        "hostname",
			Label:       "Hostname",
			Description: "ApertureDB host name",
			Required:    true,
		},
		{
			Type:        schema.TypeNumber,
			Name:        "port",
			Label:       "Port",
			Description: "ApertureDB host port",
			Min:         minValue(1),
		},
		{
			Type:        schema.TypeText,
			Name:        "username",
			Label:       "Username",
			Description: "ApertureDB user name",
		},
		{
			Type:           schema.TypePassword,
			Name:           "password",
			Label:          "Password",
			Description:    "ApertureDB user password",
			AutoComplete:   "new-password",
			SkipAutofill:   true,
			AllowEmpty:     true,
			ProtectedValue: true,
		},
		{
			Type:           schema.TypePassword,
			Name:           "token",
			Label:          "Token",
			Description:    "ApertureDB user token",
			AutoComplete:   "new-password",
			SkipAutofill:   true,
			AllowEmpty:     true,
			ProtectedValue: true,
		},
	},
}

var importGroup = schema.FieldGroup{
	ColumnCount: 1,
	Fields: []schema.FieldDefinition{
		{
			Type:        schema.TypeJSON,
			Name:        "constraints",
			Label:       "Constraints",
			Description: "ApertureDB FindImage constraints",
		},
		{
			Type:        schema.TypeToggle,
			Name:        "as_format_jpg",
			Label:       "Convert to JPEG",
			Description: "Convert images to JPEG format when loading from ApertureDB",
		},
		{
			Type:        schema.TypeToggle,
			Name:        "predictions",
			Label:       "Predictions",
			Description: "Load bounding box predictions from ApertureDB?",
		},
		{
			Type:        schema.TypeJSON,
			Name:        "pred_constraints",
			Label:       "Prediction Constraints",
			Description: "ApertureDB constraints on bounding box predictions",
		},
		{
			Type:        schema.TypeNumber,
			Name:        "limit",
			Label:       "Limit",
			Description: "Maximum number of tasks",
			Required:    true,
			Min:         minValue(1),
		},
	},
}

// Schema builds the ApertureDB form schema document. The result is
// immutable; build it once at startup and share it.
func Schema() (*schema.Document, error) {
	fragments := map[string]schema.FieldGroup{
		connectionFragment: connectionGroup,
	}
	groups := map[schema.Variant][]schema.FieldGroup{
		schema.ImportStorage: {
			{Fragment: connectionFragment},
			importGroup,
		},
		schema.ExportStorage: {
			{Fragment: connectionFragment},
		},
	}
	return schema.NewDocument(fragments, groups)
}

// MustSchema is Schema for startup paths where a malformed built-in
// document must stop the application.
func MustSchema() *schema.Document {
	doc, err := Schema()
	if err != nil {
		panic(err)
	}
	return doc
}
