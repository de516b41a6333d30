/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package validation

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/suparena/apibind/errors"
)

// Constraint is a single failed check on a field.
type Constraint struct {
	// Name identifies the check, e.g. "min" or "format".
	Name string
	// Message is the human-readable failure text.
	Message string
}

// Violation collects the failed constraints of one field.
type Violation struct {
	Field       string
	Value       any
	Constraints []Constraint
}

// Validator checks a populated model instance against its constraints.
// A nil or empty violation list means the instance is valid; the error is
// reserved for failures of the validator itself.
type Validator interface {
	Validate(ctx context.Context, instance any) ([]Violation, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, instance any) ([]Violation, error)

// Validate calls f.
func (f ValidatorFunc) Validate(ctx context.Context, instance any) ([]Violation, error) {
	return f(ctx, instance)
}

// Error aggregates every violation reported for a model instance.
type Error struct {
	Model      string
	Violations []Violation
}

// Error renders one line per constraint message of every violated field.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("model property incomparable:")
	for _, v := range e.Violations {
		for _, c := range v.Constraints {
			fmt.Fprintf(&b, "\n%s: but got a %s", c.Message, formatValue(v.Value))
		}
	}
	return b.String()
}

// Is matches errors.ErrConstraintViolation and errors.ErrInvalidInput.
func (e *Error) Is(target error) bool {
	return target == errors.ErrConstraintViolation || target == errors.ErrInvalidInput
}

// Fields returns the names of the violated fields in report order.
func (e *Error) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// Run invokes v on instance and turns a non-empty violation list into an
// *Error. Failures of the validator itself are wrapped and returned as is.
func Run(ctx context.Context, v Validator, instance any) error {
	if v == nil {
		return nil
	}

	violations, err := v.Validate(ctx, instance)
	if err != nil {
		return fmt.Errorf("validator failed: %w", err)
	}
	if len(violations) == 0 {
		return nil
	}
	return &Error{Model: typeName(instance), Violations: violations}
}

func formatValue(v any) string {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "<nil>"
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return "<nil>"
	}
	return fmt.Sprintf("%v", rv.Interface())
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}
