package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/device-registry/internal/domain"
)

// Placeholders for the key attributes in condition expressions. They never
// clash with the #fN names produced by buildUpdateExpr.
const (
	pkPlaceholder = "#pk"
	skPlaceholder = "#sk"
)

// DeviceRepo provides typed DynamoDB operations for the devices table.
type DeviceRepo struct {
	client    API
	tableName string
}

func NewDeviceRepo(client API, tableName string) *DeviceRepo {
	return &DeviceRepo{client: client, tableName: tableName}
}

func (r *DeviceRepo) key(ownerEmail, deviceName string) map[string]types.AttributeValue {
	return compositeKey(domain.FieldOwnerEmail, ownerEmail, domain.FieldDeviceName, deviceName)
}

// ListByOwner returns every device in the owner's partition, following
// pagination until the partition is exhausted. The result is never nil.
func (r *DeviceRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Device, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		KeyConditionExpression:   aws.String(pkPlaceholder + " = :pk"),
		ExpressionAttributeNames: map[string]string{pkPlaceholder: domain.FieldOwnerEmail},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: ownerEmail},
		},
	})
	devices := []domain.Device{}
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query devices: %w", err)
		}
		for _, item := range out.Items {
			d, err := unmarshalDevice(item)
			if err != nil {
				return nil, err
			}
			devices = append(devices, d)
		}
	}
	return devices, nil
}

func (r *DeviceRepo) Get(ctx context.Context, ownerEmail, deviceName string) (*domain.Device, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(ownerEmail, deviceName),
	})
	if err != nil {
		return nil, fmt.Errorf("get device: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("device not found: %w", domain.ErrNotFound)
	}
	d, err := unmarshalDevice(out.Item)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// PutIfAbsent inserts d in a single conditional write. An existing record with
// the same identity pair makes DynamoDB reject the put, reported as ErrConflict.
func (r *DeviceRepo) PutIfAbsent(ctx context.Context, d *domain.Device) error {
	item, err := attributevalue.MarshalMap(d.Fields())
	if err != nil {
		return fmt.Errorf("marshal device: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(" + pkPlaceholder + ") AND attribute_not_exists(" + skPlaceholder + ")"),
		ExpressionAttributeNames: map[string]string{
			pkPlaceholder: domain.FieldOwnerEmail,
			skPlaceholder: domain.FieldDeviceName,
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("device %s already registered: %w", d.DeviceName, domain.ErrConflict)
		}
		return fmt.Errorf("put device: %w", err)
	}
	return nil
}

// Update sets exactly the given attributes on an existing record. The write is
// conditional on the record existing, so a missing device is ErrNotFound rather
// than an implicit insert.
func (r *DeviceRepo) Update(ctx context.Context, ownerEmail, deviceName string, updates map[string]interface{}) error {
	// A non-string key or type would make every later read of the partition fail.
	if err := domain.CheckKnownFieldTypes(updates); err != nil {
		return err
	}
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	ue.Names[pkPlaceholder] = domain.FieldOwnerEmail
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(ownerEmail, deviceName),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(" + pkPlaceholder + ")"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("device not found: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update device: %w", err)
	}
	return nil
}

// Delete removes the record. Deleting a missing record is not an error.
func (r *DeviceRepo) Delete(ctx context.Context, ownerEmail, deviceName string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(ownerEmail, deviceName),
	})
	if err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	return nil
}

func unmarshalDevice(item map[string]types.AttributeValue) (domain.Device, error) {
	var fields map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &fields); err != nil {
		return domain.Device{}, fmt.Errorf("unmarshal device: %w", err)
	}
	d, err := domain.NewDeviceFromFields(fields)
	if err != nil {
		// A malformed stored item is a store failure, not bad caller input.
		return domain.Device{}, fmt.Errorf("decode device: %v", err)
	}
	return d, nil
}
