/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package apibind

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-openapi/strfmt"
	"github.com/mitchellh/mapstructure"
	"github.com/suparena/apibind/payload"
	"github.com/suparena/apibind/registry"
)

// Deserialize copies payload values into the auto-populated fields of
// instance, which must be a non-nil pointer to a struct. For every binding
// flagged AutoPopulate whose external key is present in p, the field is
// overwritten; all other fields are left untouched. Values that cannot be
// converted to the field type are skipped. Deserialize never fails.
func Deserialize(instance any, p payload.Payload) {
	if p == nil {
		return
	}

	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		logger().Debug("deserialize: not a model pointer", "type", reflect.TypeOf(instance))
		return
	}
	rv = rv.Elem()
	t := rv.Type()

	for _, e := range registry.Bindings(t) {
		if !e.AutoPopulate {
			continue
		}
		raw, ok := p[e.Key]
		if !ok {
			continue
		}

		sf, ok := t.FieldByName(e.Field)
		if !ok || !sf.IsExported() {
			logger().Debug("deserialize: bound field not found", "model", t.Name(), "field", e.Field)
			continue
		}

		fv := settableField(rv, sf.Index)
		if !fv.IsValid() {
			continue
		}
		if !assign(fv, raw) {
			logger().Debug("deserialize: value skipped",
				"model", t.Name(),
				"field", e.Field,
				"key", e.Key,
				"value_type", reflect.TypeOf(raw),
			)
		}
	}
}

// settableField walks index from v, allocating nil embedded pointers.
func settableField(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	if !v.CanSet() {
		return reflect.Value{}
	}
	return v
}

// assign stores raw into field. Assignable values are stored as they are.
// Nested payloads for registered models go through Deserialize so their
// bindings apply; anything else goes through mapstructure with strfmt's
// decode hooks.
func assign(field reflect.Value, raw any) bool {
	if raw == nil {
		field.Set(reflect.Zero(field.Type()))
		return true
	}

	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return true
	}

	if handled, ok := assignModel(field, raw); handled {
		return ok
	}

	target := reflect.New(field.Type())
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			wholeNumberHook,
			strfmt.Default.MapStructureHookFunc(),
			mapstructure.StringToTimeHookFunc(timeLayout),
		),
		TagName: "json",
		Result:  target.Interface(),
	})
	if err != nil {
		return false
	}
	if err := decoder.Decode(raw); err != nil {
		return false
	}

	field.Set(target.Elem())
	return true
}

// assignModel handles fields holding a registered model, a pointer to one or
// a slice of either. handled is false when the field holds no model or raw
// is not a payload shape, leaving the value to mapstructure.
func assignModel(field reflect.Value, raw any) (handled, ok bool) {
	ft := field.Type()

	if ft.Kind() == reflect.Slice && ft.Elem().Kind() != reflect.Interface {
		items, isList := raw.([]any)
		if !isList || !modelStruct(ft.Elem()) {
			return false, false
		}
		out := reflect.MakeSlice(ft, len(items), len(items))
		for i, item := range items {
			if !assign(out.Index(i), item) {
				return true, false
			}
		}
		field.Set(out)
		return true, true
	}

	p, isPayload := raw.(payload.Payload)
	if !isPayload {
		return false, false
	}

	base := ft
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct || !modelStruct(base) {
		return false, false
	}

	ptr := reflect.New(base)
	Deserialize(ptr.Interface(), p)
	if ft.Kind() == reflect.Pointer {
		field.Set(ptr)
	} else {
		field.Set(ptr.Elem())
	}
	return true, true
}

func modelStruct(t reflect.Type) bool {
	t = derefType(t)
	return t.Kind() == reflect.Struct && registry.IsModel(t)
}

// wholeNumberHook rejects floats with a fractional part bound for integer
// fields, which mapstructure would otherwise truncate.
func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
	default:
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
	default:
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v has a fractional part", data)
	}
	return data, nil
}
