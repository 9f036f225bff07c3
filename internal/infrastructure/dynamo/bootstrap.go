package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/device-registry/internal/domain"
	"github.com/device-registry/internal/logger"
)

type tableCreator interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Bootstrap creates the devices table if it doesn't already exist.
// Safe to call on every startup; an existing table is left untouched.
//
// The table is keyed by owner_email (HASH) and device_name (RANGE), so a
// partition query returns one owner's devices ordered by name.
func Bootstrap(ctx context.Context, client tableCreator, tableName string, log *logger.Logger) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(domain.FieldOwnerEmail), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(domain.FieldDeviceName), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(domain.FieldOwnerEmail), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(domain.FieldDeviceName), KeyType: types.KeyTypeRange},
		},
	})
	if err != nil {
		// ResourceInUseException means the table already exists.
		var riue *types.ResourceInUseException
		if errors.As(err, &riue) {
			log.Debug("table already exists", "table", tableName)
			return nil
		}
		return fmt.Errorf("create table %s: %w", tableName, err)
	}
	log.Info("created table", "table", tableName)
	return nil
}
