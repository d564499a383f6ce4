package snapshotstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/launchdarkly/test-run-config/framework/opt"
	"github.com/launchdarkly/test-run-config/runconfig"
)

const (
	// Schema of the DynamoDB table
	dynamoKeyAttribute      = "key"
	dynamoSnapshotAttribute = "snapshot"

	dynamoTableWaitTime = time.Minute
)

// DynamoStore keeps each snapshot as an item in a DynamoDB table whose partition key is the
// string attribute "key", holding "<prefix>:<key>".
type DynamoStore struct {
	dynamodb *dynamodb.Client
	table    string
	prefix   string
}

// NewDynamoClient creates a DynamoDB client from the default AWS configuration. If endpoint is
// not empty, it replaces the service endpoint, as for a local DynamoDB instance.
func NewDynamoClient(
	ctx context.Context,
	endpoint string,
	optFns ...func(*config.LoadOptions) error,
) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS configuration: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func NewDynamoStore(client *dynamodb.Client, table, prefix string) *DynamoStore {
	return &DynamoStore{dynamodb: client, table: table, prefix: prefix}
}

func (d *DynamoStore) itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		dynamoKeyAttribute: &types.AttributeValueMemberS{Value: d.prefix + ":" + key},
	}
}

func (d *DynamoStore) Put(ctx context.Context, key string, snapshot runconfig.Snapshot) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := snapshot.MarshalJSON()
	if err != nil {
		return err
	}
	item := d.itemKey(key)
	item[dynamoSnapshotAttribute] = &types.AttributeValueMemberS{Value: string(data)}
	_, err = d.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	return err
}

func (d *DynamoStore) Get(ctx context.Context, key string) (opt.Maybe[runconfig.Snapshot], error) {
	if err := ValidateKey(key); err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	result, err := d.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            d.itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil || len(result.Item) == 0 {
		return opt.None[runconfig.Snapshot](), err
	}
	value, ok := result.Item[dynamoSnapshotAttribute].(*types.AttributeValueMemberS)
	if !ok {
		return opt.None[runconfig.Snapshot](), fmt.Errorf("malformed snapshot %q: missing %s attribute",
			key, dynamoSnapshotAttribute)
	}
	return decodeSnapshot(key, []byte(value.Value))
}

// Delete removes a snapshot. Deleting a missing key is not an error.
func (d *DynamoStore) Delete(ctx context.Context, key string) error {
	_, err := d.dynamodb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       d.itemKey(key),
	})
	return err
}

// CreateTable creates the store's table if it does not already exist, and waits until it is
// usable.
func (d *DynamoStore) CreateTable(ctx context.Context) error {
	_, err := d.dynamodb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(d.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(dynamoKeyAttribute), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(dynamoKeyAttribute), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	if err != nil && !errors.As(err, &inUse) {
		return err
	}
	return dynamodb.NewTableExistsWaiter(d.dynamodb).Wait(ctx,
		&dynamodb.DescribeTableInput{TableName: aws.String(d.table)}, dynamoTableWaitTime)
}
