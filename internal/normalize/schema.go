// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package normalize

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"

	"expostudio/internal/ai"
)

// Validate checks a decoded JSON value (as produced by json.Unmarshal into
// any) against schema. It returns nil when the value conforms.
func Validate(value any, schema *ai.Schema) *SchemaViolation {
	return validate("$", value, schema)
}

func validate(path string, value any, s *ai.Schema) *SchemaViolation {
	if s == nil {
		return nil
	}

	switch s.Type {
	case ai.TypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return violation(path, "expected object, got %s", typeName(value))
		}
		for _, key := range s.Required {
			if _, ok := obj[key]; !ok {
				return violation(path, "missing required key %q", key)
			}
		}
		keys := make([]string, 0, len(s.Properties))
		for k := range s.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, ok := obj[k]
			if !ok {
				continue
			}
			if sv := validate(path+"."+k, v, s.Properties[k]); sv != nil {
				return sv
			}
		}

	case ai.TypeArray:
		arr, ok := value.([]any)
		if !ok {
			return violation(path, "expected array, got %s", typeName(value))
		}
		for i, item := range arr {
			if sv := validate(path+"["+strconv.Itoa(i)+"]", item, s.Items); sv != nil {
				return sv
			}
		}

	case ai.TypeString:
		str, ok := value.(string)
		if !ok {
			return violation(path, "expected string, got %s", typeName(value))
		}
		if len(s.Enum) > 0 && !slices.Contains(s.Enum, str) {
			return violation(path, "%q is not one of %v", str, s.Enum)
		}

	case ai.TypeInteger:
		n, ok := value.(float64)
		if !ok || n != math.Trunc(n) {
			return violation(path, "expected integer, got %s", typeName(value))
		}

	case ai.TypeNumber:
		if _, ok := value.(float64); !ok {
			return violation(path, "expected number, got %s", typeName(value))
		}

	case ai.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return violation(path, "expected boolean, got %s", typeName(value))
		}
	}

	return nil
}

func violation(path, format string, args ...any) *SchemaViolation {
	return &SchemaViolation{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
