/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"maps"
	"reflect"

	"github.com/suparena/apibind/validation"
)

// ModelConfig holds the type-level settings of a model: construction hooks
// and storage metadata.
type ModelConfig struct {
	// EntityType is the name written to the EntityType attribute by datastores
	// and used to pick a factory from the type registry on reads.
	EntityType string
	// AutoDeserialize makes apibind.New populate the instance from its payload.
	AutoDeserialize bool
	// AutoValidate makes apibind.New run Validator after population.
	AutoValidate bool
	Validator    validation.Validator
	// IndexMap maps key attributes (PK, SK, GSI1PK, ...) to macro templates
	// over external payload keys, e.g. "USER#{user_id}".
	IndexMap map[string]string

	set configField
}

// configField records which settings a Configure call touched, so each one
// can be inherited separately.
type configField uint8

const (
	setEntityType configField = 1 << iota
	setAutoDeserialize
	setAutoValidate
	setIndexMap
)

// ModelOption configures a ModelConfig.
type ModelOption func(*ModelConfig)

// AutoDeserialize opts the model into population on construction.
func AutoDeserialize() ModelOption {
	return func(c *ModelConfig) {
		c.AutoDeserialize = true
		c.set |= setAutoDeserialize
	}
}

// AutoValidate opts the model into validation on construction with v.
func AutoValidate(v validation.Validator) ModelOption {
	return func(c *ModelConfig) {
		c.AutoValidate = v != nil
		c.Validator = v
		c.set |= setAutoValidate
	}
}

// WithEntityType names the model for polymorphic storage.
func WithEntityType(name string) ModelOption {
	return func(c *ModelConfig) {
		c.EntityType = name
		c.set |= setEntityType
	}
}

// WithIndexMap sets the key templates used by datastores.
func WithIndexMap(idxMap map[string]string) ModelOption {
	return func(c *ModelConfig) {
		c.IndexMap = maps.Clone(idxMap)
		c.set |= setIndexMap
	}
}

var modelRegistry = make(map[reflect.Type]*ModelConfig)

// Configure applies opts to the configuration of model type T. Repeated calls
// are additive: options not passed keep their earlier values.
func Configure[T any](opts ...ModelOption) {
	var zero T
	ConfigureType(reflect.TypeOf(zero), opts...)
}

// ConfigureType is the reflect.Type form of Configure.
func ConfigureType(t reflect.Type, opts ...ModelOption) {
	t = modelType(t)
	if t == nil {
		return
	}

	bindMu.Lock()
	defer bindMu.Unlock()

	cfg, ok := modelRegistry[t]
	if !ok {
		cfg = &ModelConfig{}
		modelRegistry[t] = cfg
	}
	for _, opt := range opts {
		opt(cfg)
	}
}

// ConfigFor returns the configuration of t. Each setting comes from the
// nearest type in t's lineage that set it, so hooks declared on a base model
// still apply to a model extending it that only adds an index map.
func ConfigFor(t reflect.Type) (ModelConfig, bool) {
	bindMu.RLock()
	defer bindMu.RUnlock()

	var out ModelConfig
	found := false
	for _, anc := range lineage(t) {
		cfg, ok := modelRegistry[anc]
		if !ok {
			continue
		}
		found = true
		inherit := cfg.set &^ out.set
		if inherit&setEntityType != 0 {
			out.EntityType = cfg.EntityType
		}
		if inherit&setAutoDeserialize != 0 {
			out.AutoDeserialize = cfg.AutoDeserialize
		}
		if inherit&setAutoValidate != 0 {
			out.AutoValidate = cfg.AutoValidate
			out.Validator = cfg.Validator
		}
		if inherit&setIndexMap != 0 {
			out.IndexMap = maps.Clone(cfg.IndexMap)
		}
		out.set |= inherit
	}
	return out, found
}
