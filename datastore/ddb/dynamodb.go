/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/apibind"
	"github.com/suparena/apibind/config"
	apierrors "github.com/suparena/apibind/errors"
	"github.com/suparena/apibind/logging"
	"github.com/suparena/apibind/payload"
	"github.com/suparena/apibind/registry"
)

// EntityTypeAttribute names the attribute Put injects so Query can pick the
// registered model for each item.
const EntityTypeAttribute = "EntityType"

// Client is the subset of the DynamoDB API the datastore uses. *sdk.Client
// satisfies it.
type Client interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// DynamodbDataStore implements datastore.DataStore[T] by using AWS DynamoDB as the underlying data store.
// Items hold the serialized payload of T, so attribute names are T's external keys.
type DynamodbDataStore[T any] struct {
	client    Client
	tableName string
	logger    *slog.Logger
}

// Option configures a DynamodbDataStore.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by the datastore.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	return o
}

// NewDynamoDBClient initializes a DynamoDB client from cfg. Static
// credentials are used when an access key is configured, the default AWS
// credential chain otherwise.
func NewDynamoDBClient(ctx context.Context, cfg config.Config) (*sdk.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for type T from cfg.
// Unless WithLogger is given, it logs through a logger built from cfg.
func NewDynamodbDataStore[T any](ctx context.Context, cfg config.Config, opts ...Option) (*DynamodbDataStore[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = append([]Option{WithLogger(logging.New(cfg.Logging()))}, opts...)

	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	d := NewWithClient[T](client, cfg.TableName, opts...)
	d.logger.Info("dynamodb client initialized",
		"table", cfg.TableName,
		"region", cfg.AWSRegion,
		"endpoint", cfg.Endpoint,
	)
	return d, nil
}

// NewWithClient constructs a DynamodbDataStore for type T over an existing client.
func NewWithClient[T any](client Client, tableName string, opts ...Option) *DynamodbDataStore[T] {
	o := buildOptions(opts)
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
		logger:    o.logger.With("table", tableName, "model", typeName[T]()),
	}
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().Name()
}

func indexMapFor[T any]() (map[string]string, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w: %s", apierrors.ErrNoIndexMap, typeName[T]())
	}
	return indexMap, nil
}

// GetOne retrieves a single item from DynamoDB using a string key and decodes
// it into T. A missing item yields a NotFoundError.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return nil, err
	}

	keyMap, err := buildKeyFromExpanded(registry.ExpandIndexKey(indexMap, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, apierrors.NewNotFoundError(typeName[T](), key)
	}

	p, err := payload.FromItem(out.Item)
	if err != nil {
		return nil, err
	}
	return apibind.Decode[T](ctx, p)
}

// Put serializes entity and stores it, expanding the index map against the
// serialized payload to populate partition/sort keys (and possibly GSIs).
// An existing item with the same key is replaced.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	item, err := d.toItem(entity)
	if err != nil {
		return err
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.logger.Debug("item stored", "attributes", len(item))
	return nil
}

// Create stores entity like Put but only when no item with its key exists.
// An existing item yields an AlreadyExistsError.
func (d *DynamodbDataStore[T]) Create(ctx context.Context, entity T) error {
	item, err := d.toItem(entity)
	if err != nil {
		return err
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           &d.tableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("%w: %w", apierrors.NewAlreadyExistsError(typeName[T](), itemKey(item)), err)
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.logger.Debug("item created", "attributes", len(item))
	return nil
}

// toItem serializes entity into an item carrying its expanded index keys and
// EntityType.
func (d *DynamodbDataStore[T]) toItem(entity T) (map[string]types.AttributeValue, error) {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return nil, err
	}

	p := apibind.Serialize(entity)
	if p == nil {
		return nil, apierrors.NewNotModelError(entity)
	}

	item, err := payload.ToItem(p)
	if err != nil {
		return nil, err
	}

	for k, v := range registry.ExpandIndexMap(indexMap, p) {
		item[k] = &types.AttributeValueMemberS{Value: v}
	}
	if cfg, ok := registry.ConfigFor(reflect.TypeOf(entity)); ok && cfg.EntityType != "" {
		item[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: cfg.EntityType}
	}
	return item, nil
}

func itemKey(item map[string]types.AttributeValue) string {
	pk, _ := item["PK"].(*types.AttributeValueMemberS)
	sk, _ := item["SK"].(*types.AttributeValueMemberS)
	if pk == nil || sk == nil {
		return ""
	}
	return pk.Value + "|" + sk.Value
}

// Delete removes an item from DynamoDB using a string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return err
	}

	keyMap, err := buildKeyFromExpanded(registry.ExpandIndexKey(indexMap, key))
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("%w: %w", apierrors.NewConditionFailedError("delete", ""), err)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// getKey builds the item key from keyInput, which is either a payload keyed
// by external names or a model value that is serialized first.
func (d *DynamodbDataStore[T]) getKey(keyInput any, indexMap map[string]string) (map[string]types.AttributeValue, error) {
	p, ok := keyInput.(payload.Payload)
	if !ok {
		p = apibind.Serialize(keyInput)
	}
	if p == nil {
		return nil, apierrors.NewValidationError("keyInput", fmt.Sprintf("cannot derive a key from %T", keyInput))
	}

	return buildKeyFromExpanded(registry.ExpandIndexMap(indexMap, p))
}

// buildUpdateExpression transforms a map of field->value into:
//   - an "update expression" (e.g., "SET #f0 = :v0, #f1 = :v1")
//   - a corresponding map of expression attribute names
//   - a corresponding map of expression attribute values
//
// Fields are Go field names of T and are written under their external keys.
// Placeholders are assigned in field name order.
func buildUpdateExpression[T any](updates map[string]any) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	if len(updates) == 0 {
		return "", nil, nil, errors.New("no updates provided")
	}

	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	setClauses := make([]string, 0, len(updates))
	exprAttrNames := make(map[string]string, len(updates))
	exprAttrValues := make(map[string]types.AttributeValue, len(updates))

	for i, field := range fields {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		av, err := payload.ToAttributeValue(apibind.SerializeValue(updates[field]))
		if err != nil {
			return "", nil, nil, fmt.Errorf("update value for field '%s': %w", field, err)
		}

		setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		exprAttrNames[placeholderName] = registry.KeyFor[T](field)
		exprAttrValues[placeholderValue] = av
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}

// UpdateWithCondition sets the given fields on the item addressed by
// keyInput. An empty condition updates unconditionally.
func (d *DynamodbDataStore[T]) UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]any, condition string) error {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return err
	}

	key, err := d.getKey(keyInput, indexMap)
	if err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}

	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression[T](updates)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	input := &sdk.UpdateItemInput{
		TableName:                 &d.tableName,
		Key:                       key,
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
		ReturnValues:              types.ReturnValueAllNew,
	}
	if condition != "" {
		input.ConditionExpression = aws.String(condition)
	}

	_, err = d.client.UpdateItem(ctx, input)
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("%w: %w", apierrors.NewConditionFailedError("update", condition), err)
		}
		return fmt.Errorf("UpdateWithCondition failed: %w", err)
	}

	return nil
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It requires non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}
