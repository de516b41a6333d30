/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package validation

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-openapi/strfmt"
)

// Tag names read by the tag validator.
const (
	TagName     = "validate"
	MessageTag  = "message"
	oneOfSep    = "|"
	ruleSep     = ","
	argumentSep = "="
)

// Constraint names understood in validate tags.
const (
	ConstraintRequired  = "required"
	ConstraintMin       = "min"
	ConstraintMax       = "max"
	ConstraintMinLength = "minlen"
	ConstraintMaxLength = "maxlen"
	ConstraintPattern   = "pattern"
	ConstraintOneOf     = "oneof"
	ConstraintFormat    = "format"
)

// TagValidator checks model fields against constraints declared in struct tags:
//
//	type User struct {
//	    Email string `validate:"required,format=email"`
//	    Age   int    `validate:"min=0,max=150" message:"must be non-negative"`
//	    Role  string `validate:"oneof=admin|member"`
//	}
//
// Named formats are resolved through a strfmt registry. A message tag
// replaces the generated text of every constraint on that field. Patterns
// cannot contain commas. Empty strings satisfy pattern and format; pair them
// with required when a value must be present.
type TagValidator struct {
	formats strfmt.Registry
	rules   sync.Map // reflect.Type -> []fieldRules
}

// TagOption configures a TagValidator.
type TagOption func(*TagValidator)

// WithFormats sets the strfmt registry used by format constraints.
func WithFormats(formats strfmt.Registry) TagOption {
	return func(v *TagValidator) {
		v.formats = formats
	}
}

// Tags returns a TagValidator using strfmt.Default for formats.
func Tags(opts ...TagOption) *TagValidator {
	v := &TagValidator{formats: strfmt.Default}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type rule struct {
	name    string
	arg     string
	number  float64
	pattern *regexp.Regexp
	options []string
}

type fieldRules struct {
	name    string
	index   []int
	message string
	rules   []rule
}

// Validate implements Validator. Malformed tags are reported as errors.
func (v *TagValidator) Validate(ctx context.Context, instance any) ([]Violation, error) {
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("validate: nil %T", instance)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("validate: %T is not a struct", instance)
	}

	fields, err := v.rulesFor(rv.Type())
	if err != nil {
		return nil, err
	}

	var violations []Violation
	for _, fr := range fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fv, err := rv.FieldByIndexErr(fr.index)
		if err != nil {
			continue
		}

		var failed []Constraint
		for _, r := range fr.rules {
			msg, ok, err := v.check(fr.name, r, fv)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
			if fr.message != "" {
				msg = fr.message
			}
			failed = append(failed, Constraint{Name: r.name, Message: msg})
		}
		if len(failed) > 0 {
			violations = append(violations, Violation{
				Field:       fr.name,
				Value:       fv.Interface(),
				Constraints: failed,
			})
		}
	}
	return violations, nil
}

func (v *TagValidator) rulesFor(t reflect.Type) ([]fieldRules, error) {
	if cached, ok := v.rules.Load(t); ok {
		return cached.([]fieldRules), nil
	}

	var out []fieldRules
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		tag, ok := f.Tag.Lookup(TagName)
		if !ok || tag == "" || tag == "-" {
			continue
		}
		rules, err := parseRules(tag)
		if err != nil {
			return nil, fmt.Errorf("validate: field %s.%s: %w", t.Name(), f.Name, err)
		}
		out = append(out, fieldRules{
			name:    f.Name,
			index:   f.Index,
			message: f.Tag.Get(MessageTag),
			rules:   rules,
		})
	}

	v.rules.Store(t, out)
	return out, nil
}

func parseRules(tag string) ([]rule, error) {
	var rules []rule
	for _, part := range strings.Split(tag, ruleSep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, arg, _ := strings.Cut(part, argumentSep)
		r := rule{name: name, arg: arg}

		switch name {
		case ConstraintRequired:
		case ConstraintMin, ConstraintMax, ConstraintMinLength, ConstraintMaxLength:
			n, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("constraint %s: invalid number %q", name, arg)
			}
			r.number = n
		case ConstraintPattern:
			re, err := regexp.Compile(arg)
			if err != nil {
				return nil, fmt.Errorf("constraint %s: %w", name, err)
			}
			r.pattern = re
		case ConstraintOneOf:
			r.options = strings.Split(arg, oneOfSep)
		case ConstraintFormat:
			if arg == "" {
				return nil, fmt.Errorf("constraint %s: missing format name", name)
			}
		default:
			return nil, fmt.Errorf("unknown constraint %q", name)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// check returns the failure message and whether the field passes r.
func (v *TagValidator) check(field string, r rule, fv reflect.Value) (string, bool, error) {
	if r.name == ConstraintRequired {
		return fmt.Sprintf("%s should not be empty", field), !fv.IsZero(), nil
	}

	for fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface {
		if fv.IsNil() {
			// Absent optional values are checked by required only.
			return "", true, nil
		}
		fv = fv.Elem()
	}

	switch r.name {
	case ConstraintMin, ConstraintMax:
		n, ok := number(fv)
		if !ok {
			return "", false, fmt.Errorf("validate: %s on %s: %s is not numeric", r.name, field, fv.Type())
		}
		if r.name == ConstraintMin {
			return fmt.Sprintf("%s must not be less than %s", field, r.arg), n >= r.number, nil
		}
		return fmt.Sprintf("%s must not be greater than %s", field, r.arg), n <= r.number, nil

	case ConstraintMinLength, ConstraintMaxLength:
		n, unit, ok := length(fv)
		if !ok {
			return "", false, fmt.Errorf("validate: %s on %s: %s has no length", r.name, field, fv.Type())
		}
		if r.name == ConstraintMinLength {
			return fmt.Sprintf("%s must be longer than or equal to %s %s", field, r.arg, unit), float64(n) >= r.number, nil
		}
		return fmt.Sprintf("%s must be shorter than or equal to %s %s", field, r.arg, unit), float64(n) <= r.number, nil

	case ConstraintPattern:
		s, ok := text(fv)
		if !ok {
			return "", false, fmt.Errorf("validate: %s on %s: %s is not a string", r.name, field, fv.Type())
		}
		if s == "" {
			return "", true, nil
		}
		return fmt.Sprintf("%s must match %s regular expression", field, r.arg), r.pattern.MatchString(s), nil

	case ConstraintOneOf:
		s := fmt.Sprintf("%v", fv.Interface())
		for _, opt := range r.options {
			if s == opt {
				return "", true, nil
			}
		}
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.Join(r.options, ", ")), false, nil

	case ConstraintFormat:
		if !v.formats.ContainsName(r.arg) {
			return "", false, fmt.Errorf("validate: unknown format %q on %s", r.arg, field)
		}
		s, ok := text(fv)
		if !ok {
			return "", false, fmt.Errorf("validate: %s on %s: %s is not a string", r.name, field, fv.Type())
		}
		if s == "" {
			return "", true, nil
		}
		return fmt.Sprintf("%s must be a valid %s", field, r.arg), v.formats.Validates(r.arg, s), nil
	}

	return "", true, nil
}

func number(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

func length(v reflect.Value) (int, string, bool) {
	switch v.Kind() {
	case reflect.String:
		return len([]rune(v.String())), "characters", true
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len(), "elements", true
	}
	return 0, "", false
}

// text returns the string form of string kinds and fmt.Stringer values
// (strfmt.DateTime and friends).
func text(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
	}
	return "", false
}
