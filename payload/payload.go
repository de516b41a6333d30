/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package payload

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"gopkg.in/yaml.v3"
)

// Payload is a pre-parsed external document: string keys, arbitrary values.
type Payload = map[string]any

// Has reports whether p carries key. A key present with a nil value counts.
func Has(p Payload, key string) bool {
	_, ok := p[key]
	return ok
}

// Get returns the value at key and whether it was present.
func Get(p Payload, key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// Clone returns a shallow copy of p.
func Clone(p Payload) Payload {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// FromJSON parses a JSON object. Numbers decode as float64.
func FromJSON(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse JSON payload: %w", err)
	}
	return p, nil
}

// ToJSON encodes p as a JSON object.
func ToJSON(p Payload) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON payload: %w", err)
	}
	return data, nil
}

// FromYAML parses a YAML mapping.
func FromYAML(data []byte) (Payload, error) {
	var p Payload
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML payload: %w", err)
	}
	if p == nil && len(bytes.TrimSpace(data)) > 0 {
		return nil, fmt.Errorf("failed to parse YAML payload: document is not a mapping")
	}
	return p, nil
}

// ToYAML encodes p as a YAML mapping.
func ToYAML(p Payload) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML payload: %w", err)
	}
	return data, nil
}

// LoadFile reads a JSON (.json) or YAML (.yaml, .yml) payload from path.
func LoadFile(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FromJSON(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return nil, fmt.Errorf("unsupported payload file extension %q", filepath.Ext(path))
	}
}

// FromItem converts a DynamoDB item into a payload. Numbers decode as float64.
func FromItem(item map[string]types.AttributeValue) (Payload, error) {
	var p Payload
	if err := attributevalue.UnmarshalMap(item, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return p, nil
}

// ToItem converts a payload into a DynamoDB item. Values implementing
// encoding.TextMarshaler, such as strfmt.DateTime, are stored as their text.
func ToItem(p Payload) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(itemValue(p))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	return item, nil
}

// ToAttributeValue converts a single payload value the way ToItem does.
func ToAttributeValue(v any) (types.AttributeValue, error) {
	av, err := attributevalue.Marshal(itemValue(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	return av, nil
}

func itemValue(v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, x := range tv {
			out[k] = itemValue(x)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, x := range tv {
			out[i] = itemValue(x)
		}
		return out
	case encoding.TextMarshaler:
		if rv := reflect.ValueOf(tv); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}
		text, err := tv.MarshalText()
		if err != nil {
			return v
		}
		return string(text)
	}
	return v
}
