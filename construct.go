/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package apibind

import (
	"context"
	"fmt"
	"reflect"

	"github.com/suparena/apibind/errors"
	"github.com/suparena/apibind/payload"
	"github.com/suparena/apibind/registry"
	"github.com/suparena/apibind/validation"
)

// Initializer is implemented by models that set field defaults. It runs on
// the fresh instance before any payload is applied.
type Initializer interface {
	Init()
}

// New constructs a *T and runs the construction hooks T opted into with
// registry.Configure:
//
//  1. Init, when *T implements Initializer
//  2. Deserialize(instance, p), when AutoDeserialize is set
//  3. the configured validator, when AutoValidate is set
//
// Validation is synchronous: when the validator reports violations New
// returns a *validation.Error and no instance.
func New[T any](ctx context.Context, p payload.Payload) (*T, error) {
	m := new(T)
	t := reflect.TypeOf(m).Elem()
	if t.Kind() != reflect.Struct {
		return nil, errors.NewNotModelError(m)
	}

	initialize(m)

	cfg, _ := registry.ConfigFor(t)
	if cfg.AutoDeserialize {
		Deserialize(m, p)
	}
	if cfg.AutoValidate {
		if err := validation.Run(ctx, cfg.Validator, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Decode constructs a *T populated from p regardless of AutoDeserialize, and
// validates it when the model opted into AutoValidate.
func Decode[T any](ctx context.Context, p payload.Payload) (*T, error) {
	m := new(T)
	if err := Populate(ctx, m, p); err != nil {
		return nil, err
	}
	return m, nil
}

// Populate initializes, deserializes and (when configured) validates an
// existing instance, typically one produced by a registry factory.
func Populate(ctx context.Context, instance any, p payload.Payload) error {
	if !isModelPointer(instance) {
		return errors.NewNotModelError(instance)
	}

	initialize(instance)
	Deserialize(instance, p)

	cfg, _ := registry.ConfigFor(reflect.TypeOf(instance))
	if cfg.AutoValidate {
		return validation.Run(ctx, cfg.Validator, instance)
	}
	return nil
}

// Validate runs the validator configured for instance's model type. Models
// without a validator are valid.
func Validate(ctx context.Context, instance any) error {
	if !isModelPointer(instance) {
		return errors.NewNotModelError(instance)
	}

	cfg, _ := registry.ConfigFor(reflect.TypeOf(instance))
	if cfg.Validator == nil {
		return nil
	}
	if err := validation.Run(ctx, cfg.Validator, instance); err != nil {
		return fmt.Errorf("validate %T: %w", instance, err)
	}
	return nil
}

func initialize(instance any) {
	if in, ok := instance.(Initializer); ok {
		in.Init()
	}
}

func isModelPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct
}
