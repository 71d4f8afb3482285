// Package schema describes the configuration forms of a storage connector:
// which input fields appear, their types and constraints, and how they are
// grouped into columns, separately for the import and export directions.
// A document is built once at startup and is immutable afterwards, so
// concurrent form renders read it without locking.
package schema

import "fmt"

type (
	// FieldType selects the rendering widget and value parser for a field.
	FieldType string

	// Variant names one direction of the connector configuration form.
	Variant string

	// FieldDefinition is one input control in the form.
	FieldDefinition struct {
		Type        FieldType `json:"type"`
		Name        string    `json:"name"`
		Label       string    `json:"label"`
		Description string    `json:"description,omitempty"`
		Required    bool      `json:"required,omitempty"`

		// Min is the inclusive lower bound for number fields.
		Min *float64 `json:"min,omitempty"`

		// Rendering and security hints passed through to the form engine.
		AutoComplete string `json:"autoComplete,omitempty"`
		SkipAutofill bool   `json:"skipAutofill,omitempty"`

		// AllowEmpty accepts an empty submission even on required fields.
		// On password fields an empty submission means "retain the stored
		// secret", never "clear it".
		AllowEmpty bool `json:"allowEmpty,omitempty"`

		// ProtectedValue fields are masked in the UI and never logged raw.
		ProtectedValue bool `json:"protectedValue,omitempty"`
	}

	// FieldGroup is a row-structured cluster of fields laid out in
	// ColumnCount columns. A group may instead reference a shared fragment
	// by name; the fragment is inlined when the document is built.
	FieldGroup struct {
		ColumnCount int               `json:"columnCount,omitempty"`
		Fragment    string            `json:"fragment,omitempty"`
		Fields      []FieldDefinition `json:"fields,omitempty"`
	}

	// Document is a fully expanded form schema for one connector type.
	Document struct {
		variants map[Variant][]FieldGroup
		index    map[Variant]map[string]FieldDefinition
	}
)

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypePassword FieldType = "password"
	TypeToggle   FieldType = "toggle"
	TypeJSON     FieldType = "json"
)

const (
	ImportStorage Variant = "ImportStorage"
	ExportStorage Variant = "ExportStorage"
)

var fieldTypes = map[FieldType]bool{
	TypeText:     true,
	TypeNumber:   true,
	TypePassword: true,
	TypeToggle:   true,
	TypeJSON:     true,
}

var variants = map[Variant]bool{
	ImportStorage: true,
	ExportStorage: true,
}

// MaskedValue replaces protected field values wherever a submission is
// logged or echoed back.
const MaskedValue = "******"

// NewDocument builds a Document from per-variant group lists, inlining
// fragment references. Structural defects (unknown fragment, duplicate
// field name, bad column count, unknown field type) fail here, at load
// time, never at submission time.
func NewDocument(fragments map[string]FieldGroup, groups map[Variant][]FieldGroup) (*Document, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: document defines no form variants", ErrInvalidSchema)
	}

	doc := &Document{
		variants: make(map[Variant][]FieldGroup, len(groups)),
		index:    make(map[Variant]map[string]FieldDefinition, len(groups)),
	}

	for variant, variantGroups := range groups {
		if !variants[variant] {
			return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, variant)
		}

		resolved := make([]FieldGroup, 0, len(variantGroups))
		index := make(map[string]FieldDefinition)
		for _, group := range variantGroups {
			if group.Fragment != "" {
				fragment, ok := fragments[group.Fragment]
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrFragmentNotFound, group.Fragment)
				}
				group = fragment
			}
			if group.ColumnCount < 1 {
				return nil, fmt.Errorf("%w: variant %s has a group with column count %d", ErrInvalidSchema, variant, group.ColumnCount)
			}
			if len(group.Fields) == 0 {
				return nil, fmt.Errorf("%w: variant %s has a group with no fields", ErrInvalidSchema, variant)
			}
			for _, field := range group.Fields {
				if err := checkField(field); err != nil {
					return nil, err
				}
				if _, exists := index[field.Name]; exists {
					return nil, fmt.Errorf("%w: %s in variant %s", ErrDuplicateField, field.Name, variant)
				}
				index[field.Name] = field
			}
			resolved = append(resolved, copyGroup(group))
		}

		doc.variants[variant] = resolved
		doc.index[variant] = index
	}

	return doc, nil
}

func checkField(field FieldDefinition) error {
	if field.Name == "" {
		return fmt.Errorf("%w: field with empty name", ErrInvalidSchema)
	}
	if !fieldTypes[field.Type] {
		return fmt.Errorf("%w: field %s has unknown type %q", ErrInvalidSchema, field.Name, field.Type)
	}
	if field.Min != nil && field.Type != TypeNumber {
		return fmt.Errorf("%w: field %s: min is only allowed on number fields", ErrInvalidSchema, field.Name)
	}
	return nil
}

// Resolve returns the expanded, ordered field groups of a variant. The
// result is a copy, so callers cannot corrupt the shared document.
func (d *Document) Resolve(variant Variant) ([]FieldGroup, error) {
	groups, ok := d.variants[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, variant)
	}

	resolved := make([]FieldGroup, len(groups))
	for i, group := range groups {
		resolved[i] = copyGroup(group)
	}
	return resolved, nil
}

// Variants lists the form variants the document defines.
func (d *Document) Variants() []Variant {
	names := make([]Variant, 0, len(d.variants))
	for _, variant := range []Variant{ImportStorage, ExportStorage} {
		if _, ok := d.variants[variant]; ok {
			names = append(names, variant)
		}
	}
	return names
}

// Field looks up one field definition of a variant by its submission name.
func (d *Document) Field(variant Variant, name string) (FieldDefinition, bool) {
	index, ok := d.index[variant]
	if !ok {
		return FieldDefinition{}, false
	}
	field, ok := index[name]
	return field, ok
}

// MaskValues copies a submission with every protected field replaced by
// MaskedValue, so submissions can be logged without leaking secrets.
func (d *Document) MaskValues(variant Variant, values map[string]any) map[string]any {
	index := d.index[variant]
	masked := make(map[string]any, len(values))
	for name, value := range values {
		if field, ok := index[name]; ok && field.ProtectedValue {
			masked[name] = MaskedValue
		} else {
			masked[name] = value
		}
	}
	return masked
}

func copyGroup(group FieldGroup) FieldGroup {
	fields := make([]FieldDefinition, len(group.Fields))
	copy(fields, group.Fields)
	for i, field := range fields {
		if field.Min != nil {
			min := *field.Min
			fields[i].Min = &min
		}
	}
	return FieldGroup{ColumnCount: group.ColumnCount, Fields: fields}
}
