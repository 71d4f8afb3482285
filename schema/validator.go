package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// ValidateValue applies the type-appropriate checks of a single field to a
// submitted value. A nil value means the field was absent from the
// submission. Pure; no side effects on the value or the document.
func ValidateValue(field FieldDefinition, value any) *ValidationError {
	if empty(value) {
		if field.AllowEmpty {
			// On password fields this is the "retain previous stored
			// value" sentinel, not a literal empty secret.
			return nil
		}
		if field.Required {
			return &ValidationError{Field: field.Name, Reason: "is required"}
		}
		return nil
	}

	switch field.Type {
	case TypeText, TypePassword:
		if _, ok := value.(string); !ok {
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("must be a string, got %T", value)}
		}

	case TypeNumber:
		num, ok := toNumber(value)
		if !ok {
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("must be a number, got %v", value)}
		}
		if field.Min != nil && num < *field.Min {
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("must be at least %v", *field.Min)}
		}

	case TypeToggle:
		if _, ok := value.(bool); !ok {
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("must be a boolean, got %T", value)}
		}

	case TypeJSON:
		switch v := value.(type) {
		case string:
			if !json.Valid([]byte(v)) {
				return &ValidationError{Field: field.Name, Reason: "must be valid JSON"}
			}
		case map[string]any, []any:
			// already structured
		default:
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("must be a JSON value, got %T", value)}
		}
	}

	return nil
}

// ValidateSubmission checks a name-to-value submission against one form
// variant. Every failing field is reported, not only the first, and names
// the variant does not declare are rejected. Returns nil, ValidationErrors,
// or an ErrVariantNotFound lookup error.
func (d *Document) ValidateSubmission(variant Variant, values map[string]any) error {
	groups, ok := d.variants[variant]
	if !ok {
		return fmt.Errorf("%w: %s", ErrVariantNotFound, variant)
	}
	index := d.index[variant]

	var errs ValidationErrors

	var unknown []string
	for name := range values {
		if _, ok := index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, &ValidationError{Field: name, Reason: "unknown field"})
	}

	for _, group := range groups {
		for _, field := range group.Fields {
			if err := ValidateValue(field, values[field.Name]); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func empty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
