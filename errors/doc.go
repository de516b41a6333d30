/*
Package errors provides semantic error types for the apibind library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound            = errors.New("entity not found")
	    ErrAlreadyExists       = errors.New("entity already exists")
	    ErrInvalidInput        = errors.New("invalid input")
	    ErrConditionFailed     = errors.New("condition check failed")
	    ErrNoIndexMap          = errors.New("no index map found for type")
	    ErrConstraintViolation = errors.New("constraint violation")
	    ErrNotModel            = errors.New("not a model instance")
	)

Usage:

	user, err := apibind.New[User](ctx, resp)
	if err != nil {
	    if errors.IsConstraintViolation(err) {
	        // the payload decoded but the model failed its declared constraints
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("User", "123")
	err := errors.NewValidationError("email", "invalid format")
	err := errors.NewNotModelError(value)

Constraint violations themselves are reported by validation.Error, which matches
both ErrConstraintViolation and ErrInvalidInput.
*/
package errors
