/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"regexp"
)

// macroPattern matches "{key}" placeholders in index map templates.
var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// RegisterIndexMap associates a Go type T with a given DynamoDB index map (PK, SK, etc.).
// Templates reference serialized values by external key, e.g. "USER#{id}".
func RegisterIndexMap[T any](idxMap map[string]string) {
	Configure[T](WithIndexMap(idxMap))
}

// GetIndexMap retrieves the indexMap for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	cfg, ok := ConfigFor(reflect.TypeOf((*T)(nil)).Elem())
	if !ok || cfg.IndexMap == nil {
		return nil, false
	}
	return cfg.IndexMap, true
}

// ExpandIndexMap fills each template with values from a serialized payload.
// Missing, nil and non-scalar values expand to "".
func ExpandIndexMap(indexMap map[string]string, values map[string]any) map[string]string {
	res := make(map[string]string, len(indexMap))
	for attr, template := range indexMap {
		res[attr] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			return keyString(values[macro[1:len(macro)-1]])
		})
	}
	return res
}

// ExpandIndexKey substitutes key for every placeholder in the templates.
func ExpandIndexKey(indexMap map[string]string, key string) map[string]string {
	res := make(map[string]string, len(indexMap))
	for attr, template := range indexMap {
		res[attr] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return res
}

func keyString(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case *string:
		if tv == nil {
			return ""
		}
		return *tv
	case fmt.Stringer:
		if rv := reflect.ValueOf(tv); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return tv.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(tv)
	default:
		// Maps, sequences and binary data cannot form a key.
		return ""
	}
}
