/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides mock implementations of the DataStore interface for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/apibind"
	"github.com/suparena/apibind/errors"
	"github.com/suparena/apibind/payload"
	"github.com/suparena/apibind/registry"
	"github.com/suparena/apibind/storagemodels"
)

// DataStore is a mock implementation of datastore.DataStore[T] for testing.
// Like the DynamoDB store it keeps serialized payloads and decodes them on
// read, so bindings and validators behave the same way.
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]payload.Payload
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) ([]any, error)
	getKeyFunc  func(entity T) string
	putError    error
	deleteError error
	updateError error
}

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]payload.Payload),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities
func (m *DataStore[T]) WithGetKeyFunc(f func(T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore[T]) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]any, error)) *DataStore[T] {
	m.queryFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// WithUpdateError makes UpdateWithCondition operations return an error
func (m *DataStore[T]) WithUpdateError(err error) *DataStore[T] {
	m.updateError = err
	return m
}

// GetOne retrieves an entity by key and decodes it into T.
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	p, exists := m.data[m.resolveKey(key)]
	m.mu.RUnlock()

	if !exists {
		return nil, errors.NewNotFoundError(m.entityName(), key)
	}
	return apibind.Decode[T](ctx, p)
}

// GetByKey retrieves an entity by explicit PK and SK values
func (m *DataStore[T]) GetByKey(ctx context.Context, pk, sk string) (*T, error) {
	return m.GetOne(ctx, pk+"|"+sk)
}

// Put serializes and stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	return m.store(entity, false)
}

// Create stores an entity unless its key is already taken
func (m *DataStore[T]) Create(ctx context.Context, entity T) error {
	return m.store(entity, true)
}

func (m *DataStore[T]) store(entity T, createOnly bool) error {
	if m.putError != nil {
		return m.putError
	}

	p := apibind.Serialize(entity)
	if p == nil {
		return errors.NewNotModelError(entity)
	}

	key := m.extractKey(entity, p)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; exists && createOnly {
		return errors.NewAlreadyExistsError(m.entityName(), key)
	}
	m.data[key] = p
	return nil
}

// UpdateWithCondition applies updates to the stored payload. Fields are Go
// field names of T and are written under their external keys. The mock does
// not evaluate condition expressions.
func (m *DataStore[T]) UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]any, condition string) error {
	if m.updateError != nil {
		return m.updateError
	}

	key, ok := keyInput.(string)
	if !ok {
		return errors.NewValidationError("keyInput", "must be a string for mock")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key = m.resolveKey(key)
	p, exists := m.data[key]
	if !exists {
		return errors.NewNotFoundError(m.entityName(), key)
	}

	updated := payload.Clone(p)
	for field, value := range updates {
		updated[registry.KeyFor[T](field)] = apibind.SerializeValue(value)
	}
	m.data[key] = updated
	return nil
}

// Query executes a query. Without a custom query function it decodes every
// stored entity, ordered by key.
func (m *DataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]any, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]any, 0, len(keys))
	for _, k := range keys {
		entity, err := apibind.Decode[T](ctx, m.data[k])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", k, err)
		}
		results = append(results, entity)
	}
	return results, nil
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key = m.resolveKey(key)
	if _, exists := m.data[key]; !exists {
		return errors.NewNotFoundError(m.entityName(), key)
	}

	delete(m.data, key)
	return nil
}

// Helper methods for testing

// SetData replaces the stored entities, serializing each one.
func (m *DataStore[T]) SetData(data map[string]T) {
	stored := make(map[string]payload.Payload, len(data))
	for k, v := range data {
		stored[k] = apibind.Serialize(v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = stored
}

// Payloads returns copies of the stored payloads keyed by storage key.
func (m *DataStore[T]) Payloads() map[string]payload.Payload {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]payload.Payload, len(m.data))
	for k, v := range m.data {
		result[k] = payload.Clone(v)
	}
	return result
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]payload.Payload)
}

// extractKey returns the storage key for entity: the custom key function
// when set, otherwise "PK|SK" from T's index map expanded against p.
func (m *DataStore[T]) extractKey(entity T, p payload.Payload) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}

	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return ""
	}
	expanded := registry.ExpandIndexMap(indexMap, p)
	if expanded["PK"] == "" || expanded["SK"] == "" {
		return ""
	}
	return expanded["PK"] + "|" + expanded["SK"]
}

// resolveKey maps a caller key onto a storage key. Keys stored verbatim win;
// otherwise the key is substituted into T's index map like the DynamoDB store does.
func (m *DataStore[T]) resolveKey(key string) string {
	if _, ok := m.data[key]; ok || m.getKeyFunc != nil {
		return key
	}
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return key
	}
	expanded := registry.ExpandIndexKey(indexMap, key)
	return expanded["PK"] + "|" + expanded["SK"]
}

func (m *DataStore[T]) entityName() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
