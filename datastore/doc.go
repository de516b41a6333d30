/*
Package datastore defines the storage interface for apibind models.

The main interface is DataStore[T]. Entities are stored as the payload
apibind.Serialize produces, so stored attribute names are the models'
external keys, and they are read back with apibind.Decode:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Create(ctx context.Context, entity T) error
	    UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]any, condition string) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]any, error)
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation with support for single-table design
  - mock: In-memory implementation for testing
*/
package datastore
