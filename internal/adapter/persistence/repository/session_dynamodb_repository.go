package repository

import (
	"context"
	"time"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSessionsTableName = "sessions"
	defaultSessionTTL        = 24 * time.Hour
)

type fieldItem struct {
	Raw        *string `dynamodbav:"raw,omitempty"`
	Normalized *string `dynamodbav:"normalized,omitempty"`
}

type sessionItem struct {
	ID              string               `dynamodbav:"id"`
	Stage           string               `dynamodbav:"stage"`
	Fields          map[string]fieldItem `dynamodbav:"fields"`
	PendingAmount   *int64               `dynamodbav:"pending_amount,omitempty"`
	PaymentPending  bool                 `dynamodbav:"payment_pending"`
	LastDocumentRef string               `dynamodbav:"last_document_ref,omitempty"`
	CreatedAt       string               `dynamodbav:"created_at"`
	UpdatedAt       string               `dynamodbav:"updated_at"`
	ExpiresAt       int64                `dynamodbav:"expires_at"`
}

// SessionDynamoRepository persists FormSession items in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - TTL attribute: expires_at (epoch seconds); a session only lives for
//     its conversation.

type SessionDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
	ttl       time.Duration
}

var _ interfaces.ISessionRepository = (*SessionDynamoRepository)(nil)

func NewSessionDynamoRepository(ddb DynamoDBAPI, tableName string, ttl time.Duration) *SessionDynamoRepository {
	if tableName == "" {
		tableName = defaultSessionsTableName
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionDynamoRepository{ddb: ddb, tableName: tableName, ttl: ttl}
}

func (r *SessionDynamoRepository) Get(ctx context.Context, id string) (entities.FormSession, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.FormSession{}, err
	}
	if len(out.Item) == 0 {
		return entities.FormSession{}, nil
	}

	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.FormSession{}, err
	}
	return fromSessionItem(it), nil
}

// Save overwrites the whole item; turns of one session never run concurrently.
func (r *SessionDynamoRepository) Save(ctx context.Context, s entities.FormSession) error {
	it := toSessionItem(s, r.ttl)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func toSessionItem(s entities.FormSession, ttl time.Duration) sessionItem {
	fields := make(map[string]fieldItem, len(s.Fields))
	for name, st := range s.Fields {
		fields[string(name)] = fieldItem{Raw: st.Raw, Normalized: st.Normalized}
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	return sessionItem{
		ID:              s.ID,
		Stage:           string(s.Stage),
		Fields:          fields,
		PendingAmount:   s.PendingAmount,
		PaymentPending:  s.PaymentPending,
		LastDocumentRef: s.LastDocumentRef,
		CreatedAt:       formatItemTime(s.CreatedAt),
		UpdatedAt:       formatItemTime(updated),
		ExpiresAt:       updated.Add(ttl).Unix(),
	}
}

func fromSessionItem(it sessionItem) entities.FormSession {
	createdAt := parseItemTime(it.CreatedAt)
	updatedAt := parseItemTime(it.UpdatedAt)
	fields := make(map[entities.FieldName]entities.FieldState, len(it.Fields))
	for name, f := range it.Fields {
		fieldName, ok := entities.ParseFieldName(name)
		if !ok {
			continue
		}
		fields[fieldName] = entities.FieldState{Raw: f.Raw, Normalized: f.Normalized}
	}
	s := entities.FormSession{
		ID:              it.ID,
		Fields:          fields,
		Stage:           entities.Stage(it.Stage),
		PendingAmount:   it.PendingAmount,
		PaymentPending:  it.PaymentPending,
		LastDocumentRef: it.LastDocumentRef,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
	s.Normalize()
	return s
}
