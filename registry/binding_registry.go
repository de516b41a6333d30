/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// Entry binds a model field to a key in the external payload.
type Entry struct {
	// Field is the Go struct field name.
	Field string
	// Key is the payload key. Defaults to Field.
	Key string
	// AutoPopulate marks the field for assignment during deserialization.
	AutoPopulate bool
}

// BindOption configures an Entry at registration time.
type BindOption func(*Entry)

// WithKey sets the external payload key. An empty key keeps the field name.
func WithKey(key string) BindOption {
	return func(e *Entry) {
		if key != "" {
			e.Key = key
		}
	}
}

// AutoPopulate marks the field as filled from the payload on deserialize.
func AutoPopulate() BindOption {
	return func(e *Entry) {
		e.AutoPopulate = true
	}
}

// Deserializable sets the auto-populate flag explicitly.
func Deserializable(enabled bool) BindOption {
	return func(e *Entry) {
		e.AutoPopulate = enabled
	}
}

// bindingTable is the per-type registry. keys and auto are kept in parallel
// and share the registration order in fields.
type bindingTable struct {
	keys   map[string]string
	auto   map[string]bool
	fields []string
}

var (
	bindingRegistry = make(map[reflect.Type]*bindingTable)
	parentRegistry  = make(map[reflect.Type][]reflect.Type)
	bindMu          sync.RWMutex
)

// Register binds field of model type T. Registering the same field again
// replaces the earlier entry.
//
//	registry.Register[User]("FullName", registry.WithKey("full_name"), registry.AutoPopulate())
func Register[T any](field string, opts ...BindOption) {
	var zero T
	RegisterField(reflect.TypeOf(zero), field, opts...)
}

// RegisterField is the reflect.Type form of Register.
func RegisterField(t reflect.Type, field string, opts ...BindOption) {
	t = modelType(t)
	if t == nil || field == "" {
		return
	}

	e := Entry{Field: field, Key: field}
	for _, opt := range opts {
		opt(&e)
	}

	bindMu.Lock()
	defer bindMu.Unlock()

	tbl, ok := bindingRegistry[t]
	if !ok {
		tbl = &bindingTable{
			keys: make(map[string]string),
			auto: make(map[string]bool),
		}
		bindingRegistry[t] = tbl
	}
	if _, exists := tbl.keys[field]; !exists {
		tbl.fields = append(tbl.fields, field)
	}
	tbl.keys[field] = e.Key
	tbl.auto[field] = e.AutoPopulate
}

// Inherit declares Parent as an ancestor of Child. Embedded structs are
// ancestors already; Inherit is for parents that are not embedded.
func Inherit[Child, Parent any]() {
	var c Child
	var p Parent
	InheritType(reflect.TypeOf(c), reflect.TypeOf(p))
}

// InheritType is the reflect.Type form of Inherit.
func InheritType(child, parent reflect.Type) {
	child, parent = modelType(child), modelType(parent)
	if child == nil || parent == nil || child == parent {
		return
	}

	bindMu.Lock()
	defer bindMu.Unlock()

	for _, p := range parentRegistry[child] {
		if p == parent {
			return
		}
	}
	parentRegistry[child] = append(parentRegistry[child], parent)
}

// LookupKey returns the external key bound to field, consulting t first and
// then its ancestors.
func LookupKey(t reflect.Type, field string) (string, bool) {
	bindMu.RLock()
	defer bindMu.RUnlock()

	for _, anc := range lineage(t) {
		if tbl, ok := bindingRegistry[anc]; ok {
			if key, ok := tbl.keys[field]; ok {
				return key, true
			}
		}
	}
	return "", false
}

// IsAutoPopulate reports whether field is flagged for auto-population on t
// or the nearest ancestor that binds it. Unbound fields report false.
func IsAutoPopulate(t reflect.Type, field string) bool {
	bindMu.RLock()
	defer bindMu.RUnlock()

	for _, anc := range lineage(t) {
		if tbl, ok := bindingRegistry[anc]; ok {
			if _, ok := tbl.keys[field]; ok {
				return tbl.auto[field]
			}
		}
	}
	return false
}

// KeyFor is the generic form of LookupKey. Unbound fields return their own name.
func KeyFor[T any](field string) string {
	var zero T
	if key, ok := LookupKey(reflect.TypeOf(zero), field); ok {
		return key
	}
	return field
}

// Bindings returns the effective entries for t: its own bindings in
// registration order, followed by inherited bindings not overridden closer
// to t.
func Bindings(t reflect.Type) []Entry {
	bindMu.RLock()
	defer bindMu.RUnlock()

	var entries []Entry
	seen := make(map[string]bool)
	for _, anc := range lineage(t) {
		tbl, ok := bindingRegistry[anc]
		if !ok {
			continue
		}
		for _, f := range tbl.fields {
			if seen[f] {
				continue
			}
			seen[f] = true
			entries = append(entries, Entry{Field: f, Key: tbl.keys[f], AutoPopulate: tbl.auto[f]})
		}
	}
	return entries
}

// IsModel reports whether t, or one of its ancestors, has bindings or model
// configuration.
func IsModel(t reflect.Type) bool {
	bindMu.RLock()
	defer bindMu.RUnlock()

	for _, anc := range lineage(t) {
		if _, ok := bindingRegistry[anc]; ok {
			return true
		}
		if _, ok := modelRegistry[anc]; ok {
			return true
		}
	}
	return false
}

// lineage lists t followed by its ancestors, most-derived first: embedded
// structs depth-first in field order, then declared parents. Callers hold bindMu.
func lineage(t reflect.Type) []reflect.Type {
	t = modelType(t)
	if t == nil {
		return nil
	}

	var out []reflect.Type
	seen := make(map[reflect.Type]bool)

	var walk func(reflect.Type)
	walk = func(cur reflect.Type) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		out = append(out, cur)

		for i := 0; i < cur.NumField(); i++ {
			f := cur.Field(i)
			if !f.Anonymous {
				continue
			}
			if et := modelType(f.Type); et != nil {
				walk(et)
			}
		}
		for _, p := range parentRegistry[cur] {
			walk(p)
		}
	}
	walk(t)

	return out
}

// modelType strips pointers and returns nil for anything that is not a struct.
func modelType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
