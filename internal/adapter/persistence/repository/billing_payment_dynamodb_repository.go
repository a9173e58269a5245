package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	// paymentsBySessionIndex is keyed by session_id and sorted by created_at.
	paymentsBySessionIndex = "session_id-created_at-index"
)

var ErrDuplicatePayment = errors.New("payment already recorded")

type paymentItem struct {
	ID           string                 `dynamodbav:"id"`
	SessionID    string                 `dynamodbav:"session_id"`
	CreatedAt    string                 `dynamodbav:"created_at"`
	Amount       int64                  `dynamodbav:"amount"`
	Currency     string                 `dynamodbav:"currency"`
	Status       string                 `dynamodbav:"status"`
	MPPayload    map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// BillingPaymentDynamoRepository stores the fee payments of each session.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: session_id-created_at-index (PK: session_id, SK: created_at)
type BillingPaymentDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentDynamoRepository)(nil)

func NewBillingPaymentDynamoRepository(ddb DynamoDBAPI, tableName string) *BillingPaymentDynamoRepository {
	if tableName == "" {
		tableName = defaultPaymentsTableName
	}
	return &BillingPaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

// Create records p once; a second write with the same provider id fails with
// ErrDuplicatePayment.
func (r *BillingPaymentDynamoRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	av, err := attributevalue.MarshalMap(newPaymentItem(p))
	if err != nil {
		return entities.BillingPayment{}, fmt.Errorf("marshal payment: %w", err)
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		log.Printf("[payment][repository] duplicate payment_id=%s session_id=%s", p.ID, p.SessionID)
		return entities.BillingPayment{}, ErrDuplicatePayment
	}
	if err != nil {
		return entities.BillingPayment{}, err
	}
	return p, nil
}

// GetByID returns the zero payment when id is unknown.
func (r *BillingPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.BillingPayment{}, nil
	}
	return decodePayment(out.Item)
}

// ListBySessionID pages through the session index, newest payment first.
func (r *BillingPaymentDynamoRepository) ListBySessionID(ctx context.Context, sessionID string) ([]entities.BillingPayment, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsBySessionIndex),
		KeyConditionExpression: aws.String("session_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: sessionID},
		},
		ScanIndexForward: aws.Bool(false),
	})

	payments := make([]entities.BillingPayment, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query payments session_id=%s: %w", sessionID, err)
		}
		for _, raw := range page.Items {
			p, err := decodePayment(raw)
			if err != nil {
				return nil, err
			}
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func newPaymentItem(p entities.BillingPayment) paymentItem {
	return paymentItem{
		ID:           p.ID,
		SessionID:    p.SessionID,
		CreatedAt:    formatItemTime(p.Date),
		Amount:       p.Amount,
		Currency:     entities.Currency,
		Status:       string(p.Status),
		MPPayload:    p.MPPayload,
		MPPayloadRaw: string(p.MPPayloadRaw),
	}
}

func decodePayment(raw map[string]types.AttributeValue) (entities.BillingPayment, error) {
	var it paymentItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.BillingPayment{}, fmt.Errorf("unmarshal payment: %w", err)
	}
	p := entities.BillingPayment{
		ID:        it.ID,
		SessionID: it.SessionID,
		Amount:    it.Amount,
		Date:      parseItemTime(it.CreatedAt),
		Status:    entities.PaymentStatus(it.Status),
		MPPayload: it.MPPayload,
	}
	if it.MPPayloadRaw != "" {
		p.MPPayloadRaw = []byte(it.MPPayloadRaw)
	}
	return p, nil
}
