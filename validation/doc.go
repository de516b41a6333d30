/*
Package validation defines the contract between apibind and a constraint
validator, and ships a tag-driven validator built on go-openapi/strfmt.

Any engine can be plugged in through the Validator interface:

	registry.Configure[User](registry.AutoValidate(validation.ValidatorFunc(
	    func(ctx context.Context, instance any) ([]validation.Violation, error) {
	        u := instance.(*User)
	        if u.Age < 0 {
	            return []validation.Violation{{
	                Field:       "Age",
	                Value:       u.Age,
	                Constraints: []validation.Constraint{{Name: "min", Message: "must be non-negative"}},
	            }}, nil
	        }
	        return nil, nil
	    },
	)))

A non-empty violation list surfaces as a single *Error:

	model property incomparable:
	must be non-negative: but got a -1
*/
package validation
