package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBAPI is the part of *dynamodb.Client the repositories call.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

// itemTimeLayout has a fixed width so stored timestamps sort as strings.
const itemTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatItemTime(t time.Time) string {
	return t.UTC().Format(itemTimeLayout)
}

// parseItemTime also reads timestamps written with time.RFC3339Nano.
func parseItemTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}
