/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package validation

import (
	"context"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditFields struct {
	CreatedBy string `validate:"required"`
}

type account struct {
	auditFields
	Email    string           `validate:"required,format=email"`
	Age      int              `validate:"min=0,max=150" message:"must be non-negative"`
	Score    *float64         `validate:"min=0"`
	Name     string           `validate:"minlen=2,maxlen=5"`
	Tags     []string         `validate:"maxlen=2"`
	Role     string           `validate:"oneof=admin|member"`
	Code     string           `validate:"pattern=^[A-Z]{3}$"`
	JoinedAt *strfmt.DateTime `validate:"required"`
	Note     string
}

func validAccount() *account {
	now := strfmt.DateTime(time.Now())
	score := 1.5
	return &account{
		auditFields: auditFields{CreatedBy: "system"},
		Email:       "ada@example.com",
		Age:         36,
		Score:       &score,
		Name:        "Ada",
		Tags:        []string{"math"},
		Role:        "admin",
		Code:        "ABC",
		JoinedAt:    &now,
	}
}

func TestTagValidatorValid(t *testing.T) {
	violations, err := Tags().Validate(context.Background(), validAccount())
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestTagValidatorViolations(t *testing.T) {
	a := validAccount()
	a.CreatedBy = ""
	a.Email = "not-an-email"
	a.Age = -1
	score := -2.0
	a.Score = &score
	a.Name = "A"
	a.Tags = []string{"a", "b", "c"}
	a.Role = "guest"
	a.Code = "abc"
	a.JoinedAt = nil

	violations, err := Tags().Validate(context.Background(), a)
	require.NoError(t, err)

	byField := make(map[string]Violation)
	for _, v := range violations {
		byField[v.Field] = v
	}

	require.Len(t, byField, 9)
	assert.Equal(t, "CreatedBy should not be empty", byField["CreatedBy"].Constraints[0].Message)
	assert.Equal(t, "Email must be a valid email", byField["Email"].Constraints[0].Message)
	assert.Equal(t, []Constraint{{Name: "min", Message: "must be non-negative"}}, byField["Age"].Constraints)
	assert.Equal(t, -1, byField["Age"].Value)
	assert.Equal(t, "Score must not be less than 0", byField["Score"].Constraints[0].Message)
	assert.Equal(t, "Name must be longer than or equal to 2 characters", byField["Name"].Constraints[0].Message)
	assert.Equal(t, "Tags must be shorter than or equal to 2 elements", byField["Tags"].Constraints[0].Message)
	assert.Equal(t, "Role must be one of the following values: admin, member", byField["Role"].Constraints[0].Message)
	assert.Equal(t, "Code must match ^[A-Z]{3}$ regular expression", byField["Code"].Constraints[0].Message)
	assert.Equal(t, ConstraintRequired, byField["JoinedAt"].Constraints[0].Name)

	err = Run(context.Background(), Tags(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be non-negative: but got a -1")
}

func TestTagValidatorNilOptional(t *testing.T) {
	a := validAccount()
	a.Score = nil

	violations, err := Tags().Validate(context.Background(), a)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestTagValidatorErrors(t *testing.T) {
	ctx := context.Background()

	type badNumber struct {
		A int `validate:"min=x"`
	}
	type badName struct {
		A string `validate:"shiny"`
	}
	type badKind struct {
		A string `validate:"min=1"`
	}
	type badFormat struct {
		A string `validate:"format=no-such-format"`
	}

	tests := []struct {
		name     string
		instance any
	}{
		{"InvalidNumber", &badNumber{}},
		{"UnknownConstraint", &badName{}},
		{"NonNumericMin", &badKind{A: "x"}},
		{"UnknownFormat", &badFormat{A: "x"}},
		{"NotStruct", "text"},
		{"NilPointer", (*account)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tags().Validate(ctx, tt.instance)
			assert.Error(t, err)
		})
	}
}

func TestTagValidatorCustomFormats(t *testing.T) {
	formats := strfmt.NewFormats()
	type host struct {
		Addr string `validate:"format=ipv4"`
	}

	v := Tags(WithFormats(formats))
	violations, err := v.Validate(context.Background(), &host{Addr: "999.1.1.1"})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "Addr must be a valid ipv4", violations[0].Constraints[0].Message)
}

func TestTagValidatorEmptyStringSkipsFormat(t *testing.T) {
	a := validAccount()
	a.Code = ""

	violations, err := Tags().Validate(context.Background(), a)
	require.NoError(t, err)
	assert.Empty(t, violations)

	a.Email = ""
	violations, err = Tags().Validate(context.Background(), a)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, ConstraintRequired, violations[0].Constraints[0].Name)
}
