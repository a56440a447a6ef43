package repository

import (
	"context"
	"fmt"
	"time"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type conversationItem struct {
	ConversationKey string `dynamodbav:"conversation_key"`
	ID              string `dynamodbav:"id"`
	BusinessID      string `dynamodbav:"business_id"`
	PhoneNumber     string `dynamodbav:"phone_number"`
	Phase           string `dynamodbav:"phase"`
	PendingData     string `dynamodbav:"pending_data"`
	ClientName      string `dynamodbav:"client_name,omitempty"`
	ClientPhone     string `dynamodbav:"client_phone,omitempty"`
	ClientAddress   string `dynamodbav:"client_address,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// ConversationDynamoRepository persists ConversationState in DynamoDB.
//
// Table requirements:
//   - PK: conversation_key (string) = "<business_id>#<phone_number>"
//
// Phase transitions are compare-and-swap updates conditioned on id and phase.
type ConversationDynamoRepository struct {
	ddb       dynamodbAPI
	tableName string
}

var _ interfaces.IConversationRepository = (*ConversationDynamoRepository)(nil)

func NewConversationDynamoRepository(ddb dynamodbAPI, tableName string) *ConversationDynamoRepository {
	return &ConversationDynamoRepository{ddb: ddb, tableName: tableName}
}

func conversationKey(businessID, phone string) string {
	return businessID + "#" + phone
}

// GetActive returns the non-completed conversation for (business, phone), or
// an empty state when there is none.
func (r *ConversationDynamoRepository) GetActive(ctx context.Context, businessID, phone string) (entities.ConversationState, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("conversation_key", conversationKey(businessID, phone)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ConversationState{}, fmt.Errorf("repository: get conversation: %w", err)
	}
	if len(out.Item) == 0 {
		return entities.ConversationState{}, nil
	}

	conv, err := decodeConversation(out.Item)
	if err != nil {
		return entities.ConversationState{}, err
	}
	if !conv.Active() {
		return entities.ConversationState{}, nil
	}
	return conv, nil
}

// Create stores a new conversation. A completed leftover under the same key is
// overwritten; an active one makes Create return an empty state.
func (r *ConversationDynamoRepository) Create(ctx context.Context, c entities.ConversationState) (entities.ConversationState, error) {
	av, err := attributevalue.MarshalMap(toConversationItem(c))
	if err != nil {
		return entities.ConversationState{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#pk) OR #phase = :completed"),
		ExpressionAttributeNames: map[string]string{
			"#pk":    "conversation_key",
			"#phase": "phase",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed": &types.AttributeValueMemberS{Value: string(entities.ConversationPhaseCompleted)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.ConversationState{}, nil
		}
		return entities.ConversationState{}, fmt.Errorf("repository: create conversation: %w", err)
	}
	return c, nil
}

// Update applies patch only if the stored record still has c.ID and
// expectedPhase. A lost swap returns an empty state.
func (r *ConversationDynamoRepository) Update(ctx context.Context, c entities.ConversationState, expectedPhase entities.ConversationPhase, patch entities.ConversationPatch) (entities.ConversationState, error) {
	now := nowString()
	setExpr := "SET #updated_at = :now"
	names := map[string]string{
		"#id":         "id",
		"#phase":      "phase",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":id":       &types.AttributeValueMemberS{Value: c.ID},
		":expected": &types.AttributeValueMemberS{Value: string(expectedPhase)},
		":now":      &types.AttributeValueMemberS{Value: now},
	}

	if patch.Phase != "" {
		setExpr += ", #phase = :next"
		values[":next"] = &types.AttributeValueMemberS{Value: string(patch.Phase)}
	}
	if patch.ClientPhone != nil {
		setExpr += ", #client_phone = :client_phone"
		names = mergeNames(names, map[string]string{"#client_phone": "client_phone"})
		values[":client_phone"] = &types.AttributeValueMemberS{Value: *patch.ClientPhone}
	}
	if patch.ClientAddress != nil {
		setExpr += ", #client_address = :client_address"
		names = mergeNames(names, map[string]string{"#client_address": "client_address"})
		values[":client_address"] = &types.AttributeValueMemberS{Value: *patch.ClientAddress}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("conversation_key", conversationKey(c.BusinessID, c.PhoneNumber)),
		UpdateExpression:          aws.String(setExpr),
		ConditionExpression:       aws.String("#id = :id AND #phase = :expected"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.ConversationState{}, nil
		}
		return entities.ConversationState{}, fmt.Errorf("repository: update conversation: %w", err)
	}
	if len(out.Attributes) == 0 {
		// Local emulators may not honour ReturnValues.
		updated := patch.Apply(c)
		updated.UpdatedAt = parseTime(now)
		return updated, nil
	}
	return decodeConversation(out.Attributes)
}

// Delete removes the conversation if it is still the one identified by c.ID.
// A record already replaced or removed is not an error.
func (r *ConversationDynamoRepository) Delete(ctx context.Context, c entities.ConversationState) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("conversation_key", conversationKey(c.BusinessID, c.PhoneNumber)),
		ConditionExpression: aws.String("#id = :id"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: c.ID},
		},
	})
	if err != nil && !isConditionalCheckFailed(err) {
		return fmt.Errorf("repository: delete conversation: %w", err)
	}
	return nil
}

func decodeConversation(av map[string]types.AttributeValue) (entities.ConversationState, error) {
	var it conversationItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.ConversationState{}, fmt.Errorf("repository: decode conversation: %w", err)
	}
	return entities.ConversationState{
		ID:            it.ID,
		BusinessID:    it.BusinessID,
		PhoneNumber:   it.PhoneNumber,
		Phase:         entities.ConversationPhase(it.Phase),
		PendingData:   it.PendingData,
		ClientName:    it.ClientName,
		ClientPhone:   it.ClientPhone,
		ClientAddress: it.ClientAddress,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}, nil
}

func toConversationItem(c entities.ConversationState) conversationItem {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return conversationItem{
		ConversationKey: conversationKey(c.BusinessID, c.PhoneNumber),
		ID:              c.ID,
		BusinessID:      c.BusinessID,
		PhoneNumber:     c.PhoneNumber,
		Phase:           string(c.Phase),
		PendingData:     c.PendingData,
		ClientName:      c.ClientName,
		ClientPhone:     c.ClientPhone,
		ClientAddress:   c.ClientAddress,
		CreatedAt:       formatTime(createdAt),
		UpdatedAt:       formatTime(updatedAt),
	}
}
