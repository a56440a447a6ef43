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

const clientBusinessIndex = "business_id-index"

type clientItem struct {
	ClientKey  string `dynamodbav:"client_key"`
	ID         string `dynamodbav:"id"`
	BusinessID string `dynamodbav:"business_id"`
	Name       string `dynamodbav:"name"`
	Phone      string `dynamodbav:"phone,omitempty"`
	Email      string `dynamodbav:"email,omitempty"`
	Address    string `dynamodbav:"address,omitempty"`
	Notes      string `dynamodbav:"notes,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// ClientDynamoRepository persists Client entities in DynamoDB.
//
// Table requirements:
//   - PK: client_key (string) = "<business_id>#<lowercase name>"
//   - GSI: business_id-index (PK business_id, SK name)
//
// The name lookup is a single GetItem and the conditional put makes the name
// unique per business.
type ClientDynamoRepository struct {
	ddb       dynamodbAPI
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb dynamodbAPI, tableName string) *ClientDynamoRepository {
	return &ClientDynamoRepository{ddb: ddb, tableName: tableName}
}

func clientKey(businessID, name string) string {
	return businessID + "#" + entities.ClientNameKey(name)
}

func (r *ClientDynamoRepository) FindByName(ctx context.Context, businessID, name string) (entities.Client, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("client_key", clientKey(businessID, name)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Client{}, fmt.Errorf("repository: find client: %w", err)
	}
	if len(out.Item) == 0 {
		return entities.Client{}, nil
	}

	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Client{}, fmt.Errorf("repository: decode client: %w", err)
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	av, err := attributevalue.MarshalMap(toClientItem(c))
	if err != nil {
		return entities.Client{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "client_key",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Client{}, nil
		}
		return entities.Client{}, fmt.Errorf("repository: create client: %w", err)
	}
	return c, nil
}

// ListByBusiness returns every client of a business ordered by name.
func (r *ClientDynamoRepository) ListByBusiness(ctx context.Context, businessID string) ([]entities.Client, error) {
	items, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(clientBusinessIndex),
		KeyConditionExpression: aws.String("#bid = :bid"),
		ExpressionAttributeNames: map[string]string{
			"#bid": "business_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid": &types.AttributeValueMemberS{Value: businessID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("repository: list clients: %w", err)
	}

	clients := make([]entities.Client, 0, len(items))
	for _, av := range items {
		var it clientItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, fmt.Errorf("repository: decode client: %w", err)
		}
		clients = append(clients, fromClientItem(it))
	}
	return clients, nil
}

// Update replaces previous with updated. The stored record must still carry
// previous.ID. A rename moves the item to the new key in one transaction,
// failing if the new name is taken. Conflicts return an empty Client and nil.
func (r *ClientDynamoRepository) Update(ctx context.Context, previous, updated entities.Client) (entities.Client, error) {
	av, err := attributevalue.MarshalMap(toClientItem(updated))
	if err != nil {
		return entities.Client{}, err
	}

	oldKey := clientKey(previous.BusinessID, previous.Name)
	if oldKey == clientKey(updated.BusinessID, updated.Name) {
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("#id = :id"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":id": &types.AttributeValueMemberS{Value: previous.ID},
			},
		})
		if err != nil {
			if isConditionalCheckFailed(err) {
				return entities.Client{}, nil
			}
			return entities.Client{}, fmt.Errorf("repository: update client: %w", err)
		}
		return updated, nil
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName:           aws.String(r.tableName),
				Key:                 stringKey("client_key", oldKey),
				ConditionExpression: aws.String("#id = :id"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":id": &types.AttributeValueMemberS{Value: previous.ID},
				},
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(#pk)"),
				ExpressionAttributeNames: map[string]string{
					"#pk": "client_key",
				},
			}},
		},
	})
	if err != nil {
		if isTransactionCanceled(err) {
			return entities.Client{}, nil
		}
		return entities.Client{}, fmt.Errorf("repository: rename client: %w", err)
	}
	return updated, nil
}

func toClientItem(c entities.Client) clientItem {
	return clientItem{
		ClientKey:  clientKey(c.BusinessID, c.Name),
		ID:         c.ID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Notes:      c.Notes,
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
	}
}

func fromClientItem(it clientItem) entities.Client {
	return entities.Client{
		ID:         it.ID,
		BusinessID: it.BusinessID,
		Name:       it.Name,
		Phone:      it.Phone,
		Email:      it.Email,
		Address:    it.Address,
		Notes:      it.Notes,
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
	}
}
