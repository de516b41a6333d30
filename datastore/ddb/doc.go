/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "USER#{id}")
  - Conditional updates for optimistic locking
  - Create-only puts that fail with an AlreadyExistsError
  - Automatic EntityType injection for polymorphic storage

Entities are written as the payload apibind.Serialize produces and read
back with apibind.Decode, so items carry the models' external keys and a
model's validator runs on every read.

Key Features:

Macro Expansion:
Keys use macros that are replaced with values from the serialized payload,
addressed by external key:

	indexMap := map[string]string{
	    "PK":     "USER#{id}",   // Becomes "USER#123"
	    "SK":     "PROFILE",     // Static value
	    "GSI1PK": "{email}",     // Direct field value
	}

Construction:

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	store, err := ddb.NewDynamodbDataStore[User](ctx, cfg, ddb.WithLogger(log))

Any value satisfying Client, such as a test double, can be wrapped with
NewWithClient.
*/
package ddb
