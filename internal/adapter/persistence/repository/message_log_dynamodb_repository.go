package repository

import (
	"context"
	"fmt"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type smsMessageItem struct {
	ID         string `dynamodbav:"id"`
	BusinessID string `dynamodbav:"business_id,omitempty"`
	FromNumber string `dynamodbav:"from_number"`
	ToNumber   string `dynamodbav:"to_number"`
	Body       string `dynamodbav:"body"`
	Direction  string `dynamodbav:"direction"`
	Status     string `dynamodbav:"status,omitempty"`
	DocumentID string `dynamodbav:"document_id,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// MessageLogDynamoRepository is the SMS log.
//
// Table requirements:
//   - PK: id (string), the provider message SID
type MessageLogDynamoRepository struct {
	ddb       dynamodbAPI
	tableName string
}

var _ interfaces.IMessageLogRepository = (*MessageLogDynamoRepository)(nil)

func NewMessageLogDynamoRepository(ddb dynamodbAPI, tableName string) *MessageLogDynamoRepository {
	return &MessageLogDynamoRepository{ddb: ddb, tableName: tableName}
}

// Record stores m unless an entry with the same id exists; it returns false
// for such duplicates.
func (r *MessageLogDynamoRepository) Record(ctx context.Context, m entities.SMSMessage) (bool, error) {
	now := nowString()
	createdAt := formatTime(m.CreatedAt)
	if createdAt == "" {
		createdAt = now
	}
	av, err := attributevalue.MarshalMap(smsMessageItem{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		FromNumber: m.FromNumber,
		ToNumber:   m.ToNumber,
		Body:       m.Body,
		Direction:  string(m.Direction),
		Status:     m.Status,
		DocumentID: m.DocumentID,
		CreatedAt:  createdAt,
		UpdatedAt:  now,
	})
	if err != nil {
		return false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("repository: record sms: %w", err)
	}
	return true, nil
}

// UpdateStatus stores a delivery status callback. Unknown ids are ignored.
func (r *MessageLogDynamoRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
			":now":    &types.AttributeValueMemberS{Value: nowString()},
		},
	})
	if err != nil && !isConditionalCheckFailed(err) {
		return fmt.Errorf("repository: update sms status: %w", err)
	}
	return nil
}
