/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"
)

// FactoryFunc returns a new, zero-valued model instance (a pointer to a struct).
type FactoryFunc func() any

var (
	// typeRegistry maps an entity type name to its factory.
	typeRegistry = make(map[string]FactoryFunc)
	typeMu       sync.RWMutex
)

// RegisterType registers a factory for a given entity type name.
// If a type is already registered for the given name, it panics to prevent accidental overrides.
func RegisterType(name string, fn FactoryFunc) {
	typeMu.Lock()
	defer typeMu.Unlock()

	if _, exists := typeRegistry[name]; exists {
		panic(fmt.Sprintf("type registry: type %q already registered", name))
	}
	typeRegistry[name] = fn
}

// RegisterModelType registers T under name and records the name in T's model
// configuration so datastores tag stored items with it.
func RegisterModelType[T any](name string) {
	RegisterType(name, func() any { return new(T) })
	Configure[T](WithEntityType(name))
}

// GetFactory returns the registered factory for the given entity type name.
// If no factory is registered, it returns an error.
func GetFactory(name string) (FactoryFunc, error) {
	typeMu.RLock()
	defer typeMu.RUnlock()

	fn, ok := typeRegistry[name]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for %q", name)
	}
	return fn, nil
}
