/*
Package apibind maps external API payloads onto typed Go models and back.

Models declare, per field, the payload key they are bound to and whether the
field is filled automatically when a payload is applied. Nothing else about
the struct changes:

	type User struct {
	    FullName string `api:"full_name,auto"`
	    Email    string `api:"email,auto" validate:"format=email"`
	    Friends  []*User `api:"friends"`
	}

	func init() {
	    registry.RegisterTags[User]()
	    registry.Configure[User](
	        registry.AutoDeserialize(),
	        registry.AutoValidate(validation.Tags()),
	    )
	}

The workflow is:
  - Setup: bindings and hooks are registered once per model type, in init()
  - Construction: New builds the instance, applies the payload, validates it
  - Output: Serialize walks the instance and produces a plain payload again,
    recursing into nested models and slices of models

Basic Usage:

	resp, _ := payload.FromJSON(body)

	user, err := apibind.New[User](ctx, resp)
	if errors.IsConstraintViolation(err) {
	    // the response did not satisfy the declared constraints
	}

	out := apibind.Serialize(user) // map[string]any{"full_name": ..., "email": ..., "friends": ...}

Deserialize and Serialize never fail: missing keys, unbound fields and values
that cannot be converted are skipped. Sub-packages:
  - registry: binding, model and type registries
  - validation: the validator contract and a struct-tag validator
  - payload: JSON, YAML and DynamoDB item payloads
  - datastore: DynamoDB and in-memory stores persisting serialized models
*/
package apibind
