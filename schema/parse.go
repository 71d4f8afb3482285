package schema

import (
	"encoding/json"
	"fmt"
)

// Parse builds a Document from its wire shape: an object with an optional
// "fragments" member plus one member per form variant, e.g.
//
//	{
//	  "fragments": {"connection": {"columnCount": 3, "fields": [...]}},
//	  "ImportStorage": [{"fragment": "connection"}, {"columnCount": 1, "fields": [...]}],
//	  "ExportStorage": [{"fragment": "connection"}]
//	}
//
// Fragment references are inlined and the same load-time checks as
// NewDocument apply.
func Parse(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	fragments := make(map[string]FieldGroup)
	if rawFragments, ok := raw["fragments"]; ok {
		if err := json.Unmarshal(rawFragments, &fragments); err != nil {
			return nil, fmt.Errorf("%w: failed to parse fragments: %v", ErrInvalidSchema, err)
		}
		delete(raw, "fragments")
	}

	groups := make(map[Variant][]FieldGroup, len(raw))
	for name, rawGroups := range raw {
		variant := Variant(name)
		if !variants[variant] {
			return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, name)
		}
		var variantGroups []FieldGroup
		if err := json.Unmarshal(rawGroups, &variantGroups); err != nil {
			return nil, fmt.Errorf("%w: failed to parse variant %s: %v", ErrInvalidSchema, name, err)
		}
		groups[variant] = variantGroups
	}

	return NewDocument(fragments, groups)
}
