/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package apibind

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/apibind/registry"
	"github.com/suparena/apibind/validation"
)

type testUser struct {
	FullName string
	ID       int
}

type testEntity struct {
	ID        string          `api:"id,auto"`
	CreatedAt strfmt.DateTime `api:"created_at,auto"`
}

type testAddress struct {
	City string `api:"city,auto"`
}

type testOrder struct {
	Number string  `api:"number,auto"`
	Total  float64 `api:"total,auto"`
}

type testParcel struct {
	Weight float64 `api:"weight_kg,auto"`
	Label  string  `api:"shipping_label,auto"`
}

type testShipment struct {
	ID          string        `api:"shipment_id,auto"`
	Destination testAddress   `api:"destination,auto"`
	Parcels     []*testParcel `api:"parcels,auto"`
	Pallets     []testParcel  `api:"pallets,auto"`
}

type testMoney struct {
	Amount   int
	Currency string
}

func (m testMoney) Serialize() map[string]any {
	return map[string]any{"amount": fmt.Sprintf("%d %s", m.Amount, m.Currency)}
}

type testLedgerEntry struct {
	testMoney
	Memo string `api:"memo,auto"`
}

type testPricedEntry struct {
	testMoney
	SKU string
}

func (p testPricedEntry) Serialize() map[string]any {
	return map[string]any{"sku": p.SKU}
}

type testLedger struct {
	Entry  testLedgerEntry    `api:"entry"`
	Priced testPricedEntry    `api:"priced"`
	Lines  []*testLedgerEntry `api:"lines"`
}

type testCustomer struct {
	testEntity
	Name    string       `api:"name,auto"`
	Age     int          `api:"age,auto"`
	Score   *float64     `api:"score,auto"`
	Address *testAddress `api:"address,auto"`
	Orders  []*testOrder `api:"orders"`
	Tags    []string     `api:"tags,auto"`
	Items   []any        `api:"items"`
	Balance testMoney    `api:"balance"`
	Note    string
	secret  string
}

type testVIP struct {
	testCustomer
	Tier int `api:"tier,auto"`
}

type PtrBase struct {
	Ref string `api:"ref,auto"`
}

type testPtrEmbed struct {
	*PtrBase
	Label string `api:"label,auto"`
}

type testHooked struct {
	Name   string `api:"name,auto"`
	Age    int    `api:"age,auto"`
	Status string `api:"status,auto"`
}

func (h *testHooked) Init() {
	h.Status = "new"
}

type testManual struct {
	Name string `api:"name,auto"`
}

type testValidated struct {
	Age int `api:"age,auto"`
}

type testValidatedChild struct {
	testValidated
	Nick string `api:"nick,auto"`
}

type testAuditedBase struct {
	Age int `api:"age,auto" validate:"min=0"`
}

type testAuditedRecord struct {
	testAuditedBase
	Ref string `api:"ref,auto"`
}

type testTagged struct {
	Email string `api:"email,auto" validate:"required,format=email"`
	Age   int    `api:"age,auto" validate:"min=0" message:"must be non-negative"`
}

func nonNegativeAge(ctx context.Context, instance any) ([]validation.Violation, error) {
	var age int
	switch m := instance.(type) {
	case *testValidated:
		age = m.Age
	case *testValidatedChild:
		age = m.Age
	default:
		return nil, fmt.Errorf("unexpected %T", instance)
	}
	if age >= 0 {
		return nil, nil
	}
	return []validation.Violation{{
		Field:       "Age",
		Value:       age,
		Constraints: []validation.Constraint{{Name: "min", Message: "must be non-negative"}},
	}}, nil
}

func init() {
	registry.Register[testUser]("FullName", registry.WithKey("full_name"), registry.AutoPopulate())

	registry.RegisterTags[testEntity]()
	registry.RegisterTags[testAddress]()
	registry.RegisterTags[testOrder]()
	registry.RegisterTags[testCustomer]()
	registry.RegisterTags[testParcel]()
	registry.RegisterTags[testLedgerEntry]()
	registry.RegisterTags[testLedger]()
	registry.RegisterTags[testShipment]()
	registry.RegisterTags[testVIP]()
	registry.Register[testVIP]("Age", registry.WithKey("years"), registry.AutoPopulate())
	registry.RegisterTags[PtrBase]()
	registry.RegisterTags[testPtrEmbed]()

	registry.RegisterTags[testHooked]()
	registry.Configure[testHooked](registry.AutoDeserialize())

	registry.RegisterTags[testManual]()

	registry.RegisterTags[testValidated]()
	registry.RegisterTags[testValidatedChild]()
	registry.Configure[testValidated](
		registry.AutoDeserialize(),
		registry.AutoValidate(validation.ValidatorFunc(nonNegativeAge)),
	)

	registry.RegisterTags[testAuditedBase]()
	registry.RegisterTags[testAuditedRecord]()
	registry.Configure[testAuditedBase](
		registry.AutoDeserialize(),
		registry.AutoValidate(validation.Tags()),
	)
	registry.RegisterIndexMap[testAuditedRecord](map[string]string{"PK": "REF#{ref}", "SK": "REF#{ref}"})

	registry.RegisterTags[testTagged]()
	registry.Configure[testTagged](
		registry.AutoDeserialize(),
		registry.AutoValidate(validation.Tags()),
	)
}
