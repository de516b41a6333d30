/*
Package registry holds the process-wide metadata apibind works from.

Binding Registry:
Maps model fields to external payload keys, per model type:

	registry.Register[User]("FullName",
	    registry.WithKey("full_name"),
	    registry.AutoPopulate(),
	)

or declaratively through struct tags:

	type User struct {
	    FullName string `api:"full_name,auto"`
	}

	func init() { registry.RegisterTags[User]() }

Lookups walk the model's lineage, most-derived type first: the type itself,
the structs it embeds (depth first), then parents declared with Inherit. A
binding on a derived type therefore overrides the same field bound on an
ancestor.

Model Registry:
Type-level configuration for construction hooks and storage:

	registry.Configure[User](
	    registry.AutoDeserialize(),
	    registry.AutoValidate(validation.Tags()),
	)
	registry.RegisterIndexMap[User](map[string]string{
	    "PK": "USER#{id}",
	    "SK": "USER#{id}",
	})

Index map macros name external keys and are filled from a serialized model
with ExpandIndexMap, or from a single key with ExpandIndexKey.

Type Registry:
Maps entity type names to factories, for polymorphic reads:

	registry.RegisterModelType[User]("User")

The registries are thread-safe and should be populated during initialization,
typically in init() functions.
*/
package registry
