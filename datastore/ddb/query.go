/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/suparena/apibind"
	"github.com/suparena/apibind/payload"
	"github.com/suparena/apibind/registry"
	"github.com/suparena/apibind/storagemodels"
)

// Query performs a query against the DynamoDB table using the provided parameters.
// The EntityType attribute injected at persist time selects the registered
// factory, and the item is populated through that model's bindings. Items
// without an EntityType decode as T; items naming an unregistered type are
// returned as plain payloads.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]any, error) {
	tableName := params.TableName
	if tableName == "" {
		tableName = d.tableName
	}

	input := &dynamodb.QueryInput{
		TableName:                 &tableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
	}
	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	results := make([]any, 0, len(out.Items))
	for _, item := range out.Items {
		p, err := payload.FromItem(item)
		if err != nil {
			return nil, err
		}

		entityType, _ := p[EntityTypeAttribute].(string)
		if entityType == "" {
			obj, err := apibind.Decode[T](ctx, p)
			if err != nil {
				return nil, fmt.Errorf("failed to decode item: %w", err)
			}
			results = append(results, obj)
			continue
		}

		factory, err := registry.GetFactory(entityType)
		if err != nil {
			d.logger.Debug("no factory registered, returning payload", "entityType", entityType)
			results = append(results, p)
			continue
		}

		obj := factory()
		if err := apibind.Populate(ctx, obj, p); err != nil {
			return nil, fmt.Errorf("failed to populate item for EntityType %q: %w", entityType, err)
		}
		results = append(results, obj)
	}

	return results, nil
}
