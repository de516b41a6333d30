/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/apibind/storagemodels"
)

// DataStore persists models of type T in their serialized payload form and
// decodes them back through the model's bindings and validator.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	// Create stores entity only when its key is unused and returns an
	// AlreadyExistsError otherwise.
	Create(ctx context.Context, entity T) error

	// UpdateWithCondition applies updates keyed by Go field names; they are
	// written under the fields' external keys.
	UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]any, condition string) error

	Query(ctx context.Context, params *storagemodels.QueryParams) ([]any, error)

	Delete(ctx context.Context, key string) error
}
