/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"strings"
)

// TagName is the struct tag read by RegisterTags.
const TagName = "api"

// RegisterTags registers a binding for every field of T carrying an api tag:
//
//	type User struct {
//	    FullName string `api:"full_name,auto"` // key full_name, auto-populated
//	    Nickname string `api:",auto"`          // key Nickname, auto-populated
//	    Internal string `api:"-"`              // skipped
//	}
//
// Fields promoted from embedded structs are left to the embedded type's own
// registration. Call it once per type, typically from init().
func RegisterTags[T any]() {
	var zero T
	RegisterTagsType(reflect.TypeOf(zero))
}

// RegisterTagsType is the reflect.Type form of RegisterTags.
func RegisterTagsType(t reflect.Type) {
	t = modelType(t)
	if t == nil {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag, ok := f.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}
		RegisterField(t, f.Name, parseTag(tag)...)
	}
}

func parseTag(tag string) []BindOption {
	name, rest, _ := strings.Cut(tag, ",")
	opts := []BindOption{WithKey(strings.TrimSpace(name))}
	for _, flag := range strings.Split(rest, ",") {
		switch strings.TrimSpace(flag) {
		case "auto", "deserializable":
			opts = append(opts, AutoPopulate())
		}
	}
	return opts
}
