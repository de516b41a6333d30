/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package apibind

import (
	"reflect"
	"runtime"
	"sync"

	"github.com/suparena/apibind/payload"
	"github.com/suparena/apibind/registry"
)

// Serializer is implemented by models that produce their own payload.
// Serialize prefers it over the reflective walk when it meets a nested value.
type Serializer interface {
	Serialize() map[string]any
}

var (
	serializerType = reflect.TypeOf((*Serializer)(nil)).Elem()
	bytesType      = reflect.TypeOf([]byte(nil))
)

// Serialize converts instance (a struct or pointer to struct) into a plain
// payload. Each exported field, promoted fields included, is written under
// its bound external key or, when unbound, under its own name. Nested models
// and slices of models are serialized recursively; other values are copied
// as they are. Serialize returns nil for anything that is not a struct.
//
// Reference cycles between models are not detected and recurse without bound.
// Only a Serialize method declared on the model itself is honoured; one
// promoted from an embedded type is ignored so the fields of the embedding
// model are still written.
func Serialize(instance any) payload.Payload {
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return serializeStruct(rv)
}

// SerializeValue applies Serialize's value rules to a single value. Models
// and Serializers become payloads, sequences holding them become []any, and
// anything else is returned unchanged.
func SerializeValue(v any) any {
	return serializeValue(reflect.ValueOf(v))
}

func serializeStruct(rv reflect.Value) payload.Payload {
	t := rv.Type()
	out := make(payload.Payload, t.NumField())

	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && derefType(sf.Type).Kind() == reflect.Struct {
			// Promoted fields are visited on their own.
			continue
		}

		fv, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			// Promoted through a nil embedded pointer.
			continue
		}

		key := sf.Name
		if bound, ok := registry.LookupKey(t, sf.Name); ok {
			key = bound
		}
		out[key] = serializeValue(fv)
	}
	return out
}

func serializeValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	if s, ok := asSerializer(v); ok {
		return s.Serialize()
	}
	if isModel(v) {
		return Serialize(v.Interface())
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() || v.Type() == bytesType || !mayHoldModel(v.Type().Elem()) {
			return v.Interface()
		}
		return serializeSequence(v)
	case reflect.Array:
		if !mayHoldModel(v.Type().Elem()) {
			return v.Interface()
		}
		return serializeSequence(v)
	case reflect.Interface:
		if v.IsNil() {
			return v.Interface()
		}
		inner := v.Elem()
		if _, ok := asSerializer(inner); ok || isModel(inner) || isSequence(inner) {
			return serializeValue(inner)
		}
	}
	return v.Interface()
}

// serializeSequence maps model elements through Serialize and leaves the
// others untouched, keeping order and length.
func serializeSequence(v reflect.Value) []any {
	out := make([]any, v.Len())
	for i := range out {
		elem := v.Index(i)
		for elem.Kind() == reflect.Interface && !elem.IsNil() {
			elem = elem.Elem()
		}
		if s, ok := asSerializer(elem); ok {
			out[i] = s.Serialize()
			continue
		}
		if isModel(elem) {
			out[i] = Serialize(elem.Interface())
			continue
		}
		out[i] = elem.Interface()
	}
	return out
}

// asSerializer returns the Serializer implemented by v or by its address.
// Nil pointers are never treated as serializers.
func asSerializer(v reflect.Value) (Serializer, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}
	if promotedSerializer(derefType(v.Type())) {
		return nil, false
	}
	if v.Type().Implements(serializerType) {
		s, ok := v.Interface().(Serializer)
		return s, ok
	}
	if v.CanAddr() && v.Addr().Type().Implements(serializerType) {
		s, ok := v.Addr().Interface().(Serializer)
		return s, ok
	}
	return nil, false
}

// isModel reports whether v holds a non-nil registered model.
func isModel(v reflect.Value) bool {
	if !v.IsValid() || !v.CanInterface() {
		return false
	}
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return false
	}
	t := derefType(v.Type())
	return t.Kind() == reflect.Struct && registry.IsModel(t)
}

func isSequence(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return mayHoldModel(v.Type().Elem())
	}
	return false
}

// mayHoldModel reports whether elements of type t can be models. Sequences
// of scalars or plain structs keep their concrete type.
func mayHoldModel(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Struct, reflect.Pointer:
		base := derefType(t)
		if base.Kind() != reflect.Struct {
			return false
		}
		if registry.IsModel(base) {
			return true
		}
		return !promotedSerializer(base) &&
			(t.Implements(serializerType) || reflect.PointerTo(t).Implements(serializerType))
	}
	return false
}

var promotedCache sync.Map // reflect.Type -> bool

// promotedSerializer reports whether struct type t gets its Serialize method
// only through an embedded field. Methods the compiler promotes are wrappers
// without a source position, which sets them apart from a method declared on
// t or *t that shadows the embedded one.
func promotedSerializer(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	if cached, ok := promotedCache.Load(t); ok {
		return cached.(bool)
	}

	promoted := embedsSerializer(t)
	if promoted {
		for _, mt := range []reflect.Type{t, reflect.PointerTo(t)} {
			m, ok := mt.MethodByName("Serialize")
			if !ok {
				continue
			}
			fn := runtime.FuncForPC(m.Func.Pointer())
			if fn == nil {
				continue
			}
			if file, _ := fn.FileLine(fn.Entry()); file != "<autogenerated>" {
				promoted = false
				break
			}
		}
	}

	promotedCache.Store(t, promoted)
	return promoted
}

func embedsSerializer(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if f.Type.Implements(serializerType) ||
			(f.Type.Kind() != reflect.Pointer && reflect.PointerTo(f.Type).Implements(serializerType)) {
			return true
		}
	}
	return false
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
