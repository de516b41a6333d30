/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"testing"

	"github.com/suparena/apibind/datastore"
	"github.com/suparena/apibind/datastore/mock"
	"github.com/suparena/apibind/datastore/testmodels"
	"github.com/suparena/apibind/errors"
	"github.com/suparena/apibind/registry"
	"github.com/suparena/apibind/storagemodels"
)

type TestEntity struct {
	ID   string `api:"id,auto"`
	Name string `api:"display_name,auto"`
}

type TestContact struct {
	Phone string `api:"phone_number,auto"`
}

type TestAccount struct {
	ID       string         `api:"account_id,auto"`
	Primary  TestContact    `api:"primary_contact,auto"`
	Contacts []*TestContact `api:"contacts,auto"`
}

func init() {
	registry.RegisterTags[TestEntity]()
	registry.RegisterTags[TestContact]()
	registry.RegisterTags[TestAccount]()
}

var _ datastore.DataStore[TestEntity] = (*mock.DataStore[TestEntity])(nil)

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		// Create mock with custom key extractor
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		// Test Put
		entity := TestEntity{ID: "123", Name: "Test"}
		err := mockStore.Put(ctx, entity)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		// Stored form uses external keys
		stored := mockStore.Payloads()["123"]
		if stored["display_name"] != "Test" {
			t.Fatalf("Expected payload keyed by display_name, got: %v", stored)
		}

		// Test GetOne
		retrieved, err := mockStore.GetOne(ctx, "123")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if retrieved.ID != "123" || retrieved.Name != "Test" {
			t.Fatalf("Retrieved entity mismatch: %+v", retrieved)
		}

		// Test Delete
		err = mockStore.Delete(ctx, "123")
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		// Verify deletion
		_, err = mockStore.GetOne(ctx, "123")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		mockStore := mock.New[TestEntity]()

		// Simulate Put error
		putErr := errors.NewValidationError("name", "required")
		mockStore.WithPutError(putErr)

		entity := TestEntity{ID: "123", Name: "Test"}
		err := mockStore.Put(ctx, entity)
		if err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}

		// Simulate Delete error
		deleteErr := errors.NewConditionFailedError("delete", "version mismatch")
		mockStore.WithDeleteError(deleteErr)

		err = mockStore.Delete(ctx, "123")
		if err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}
	})

	t.Run("Create", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		if err := mockStore.Create(ctx, TestEntity{ID: "9", Name: "First"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		err := mockStore.Create(ctx, TestEntity{ID: "9", Name: "Second"})
		if !errors.IsAlreadyExists(err) {
			t.Fatalf("Expected already exists error, got: %v", err)
		}

		retrieved, err := mockStore.GetOne(ctx, "9")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if retrieved.Name != "First" {
			t.Fatalf("Expected the first entity to be kept, got %q", retrieved.Name)
		}
	})

	t.Run("PutWithoutKey", func(t *testing.T) {
		mockStore := mock.New[TestEntity]()

		err := mockStore.Put(ctx, TestEntity{ID: "1"})
		if !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error without key function or index map, got: %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		if err := mockStore.Put(ctx, TestEntity{ID: "7", Name: "Before"}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		err := mockStore.UpdateWithCondition(ctx, "7", map[string]any{"Name": "After"}, "")
		if err != nil {
			t.Fatalf("UpdateWithCondition failed: %v", err)
		}

		retrieved, err := mockStore.GetOne(ctx, "7")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if retrieved.Name != "After" {
			t.Fatalf("Expected updated name, got %q", retrieved.Name)
		}

		err = mockStore.UpdateWithCondition(ctx, "missing", map[string]any{"Name": "x"}, "")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("Query", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		// Add test data
		entities := []TestEntity{
			{ID: "3", Name: "Three"},
			{ID: "1", Name: "One"},
			{ID: "2", Name: "Two"},
		}

		for _, e := range entities {
			if err := mockStore.Put(ctx, e); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
		}

		params := &storagemodels.QueryParams{
			TableName: "test",
		}
		results, err := mockStore.Query(ctx, params)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("Expected 3 results, got %d", len(results))
		}
		first, ok := results[0].(*TestEntity)
		if !ok || first.Name != "One" {
			t.Fatalf("Expected results ordered by key, got %+v", results[0])
		}
	})

	t.Run("CustomQueryFunction", func(t *testing.T) {
		mockStore := mock.New[TestEntity]()

		// Set custom query function that filters by name
		mockStore.WithQueryFunc(func(ctx context.Context, params *storagemodels.QueryParams) ([]any, error) {
			return []any{
				&TestEntity{ID: "1", Name: "Filtered"},
			}, nil
		})

		params := &storagemodels.QueryParams{
			TableName: "test",
		}
		results, err := mockStore.Query(ctx, params)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Expected 1 result, got %d", len(results))
		}
	})

	t.Run("HelperMethods", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		// Test SetData
		testData := map[string]TestEntity{
			"1": {ID: "1", Name: "One"},
			"2": {ID: "2", Name: "Two"},
		}
		mockStore.SetData(testData)

		// Test Count
		if mockStore.Count() != 2 {
			t.Fatalf("Expected count 2, got %d", mockStore.Count())
		}

		// Test Payloads
		data := mockStore.Payloads()
		if len(data) != 2 {
			t.Fatalf("Expected 2 items in data, got %d", len(data))
		}

		// Test Clear
		mockStore.Clear()
		if mockStore.Count() != 0 {
			t.Fatalf("Expected count 0 after clear, got %d", mockStore.Count())
		}
	})
}

func TestMockDataStoreIndexMapKeys(t *testing.T) {
	ctx := context.Background()
	mockStore := mock.New[testmodels.RatingRecord]()

	rec := testmodels.RatingRecord{SystemID: "rs-1", PlayerID: "p-1", Rating: 1500}
	if err := mockStore.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	retrieved, err := mockStore.GetByKey(ctx, "RS#rs-1", "PLAYER#p-1")
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if *retrieved != rec {
		t.Fatalf("Expected %+v, got %+v", rec, *retrieved)
	}

	// Stored payloads are validated on read.
	err = mockStore.UpdateWithCondition(ctx, "RS#rs-1|PLAYER#p-1", map[string]any{"Rating": -5.0}, "")
	if err != nil {
		t.Fatalf("UpdateWithCondition failed: %v", err)
	}
	_, err = mockStore.GetByKey(ctx, "RS#rs-1", "PLAYER#p-1")
	if !errors.IsConstraintViolation(err) {
		t.Fatalf("Expected constraint violation, got: %v", err)
	}
}

func TestMockDataStoreNestedModels(t *testing.T) {
	ctx := context.Background()
	mockStore := mock.New[TestAccount]().
		WithGetKeyFunc(func(a TestAccount) string { return a.ID })

	account := TestAccount{
		ID:       "acc-1",
		Primary:  TestContact{Phone: "+33 1 23 45"},
		Contacts: []*TestContact{{Phone: "+44 20 7946"}, {Phone: "+1 212 555"}},
	}
	if err := mockStore.Put(ctx, account); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	stored := mockStore.Payloads()["acc-1"]
	primary, ok := stored["primary_contact"].(map[string]any)
	if !ok || primary["phone_number"] != "+33 1 23 45" {
		t.Fatalf("Expected nested payload keyed by phone_number, got: %v", stored["primary_contact"])
	}

	retrieved, err := mockStore.GetOne(ctx, "acc-1")
	if err != nil {
		t.Fatalf("GetOne failed: %v", err)
	}
	if retrieved.Primary.Phone != "+33 1 23 45" {
		t.Fatalf("Expected primary contact to survive, got %+v", retrieved.Primary)
	}
	if len(retrieved.Contacts) != 2 || retrieved.Contacts[1].Phone != "+1 212 555" {
		t.Fatalf("Expected contacts to survive, got %+v", retrieved.Contacts)
	}
}

func TestMockDataStoreWithService(t *testing.T) {
	// Example of using mock in a service test
	type UserService struct {
		store interface {
			GetOne(ctx context.Context, key string) (*TestEntity, error)
			Put(ctx context.Context, entity TestEntity) error
		}
	}

	ctx := context.Background()
	mockStore := mock.New[TestEntity]().
		WithGetKeyFunc(func(e TestEntity) string { return e.ID })

	service := UserService{store: mockStore}

	// Test service method
	user := TestEntity{ID: "123", Name: "John"}
	err := service.store.Put(ctx, user)
	if err != nil {
		t.Fatalf("Service put failed: %v", err)
	}

	retrieved, err := service.store.GetOne(ctx, "123")
	if err != nil {
		t.Fatalf("Service get failed: %v", err)
	}
	if retrieved.Name != "John" {
		t.Fatalf("Expected name John, got %s", retrieved.Name)
	}
}
