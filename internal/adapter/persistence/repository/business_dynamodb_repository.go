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

const businessPhoneIndex = "phone_number-index"

type businessItem struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	CompanyName string `dynamodbav:"company_name,omitempty"`
	PhoneNumber string `dynamodbav:"phone_number"`
	Email       string `dynamodbav:"email,omitempty"`
	Address     string `dynamodbav:"address,omitempty"`
	PaymentInfo string `dynamodbav:"payment_info,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// BusinessDynamoRepository persists Business entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: phone_number-index (PK phone_number)
type BusinessDynamoRepository struct {
	ddb       dynamodbAPI
	tableName string
}

var _ interfaces.IBusinessRepository = (*BusinessDynamoRepository)(nil)

func NewBusinessDynamoRepository(ddb dynamodbAPI, tableName string) *BusinessDynamoRepository {
	return &BusinessDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *BusinessDynamoRepository) Create(ctx context.Context, b entities.Business) (entities.Business, error) {
	av, err := attributevalue.MarshalMap(toBusinessItem(b))
	if err != nil {
		return entities.Business{}, err
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
			return entities.Business{}, nil
		}
		return entities.Business{}, fmt.Errorf("repository: create business: %w", err)
	}
	return b, nil
}

// Update overwrites an existing profile. It returns an empty Business when
// the id is unknown.
func (r *BusinessDynamoRepository) Update(ctx context.Context, b entities.Business) (entities.Business, error) {
	av, err := attributevalue.MarshalMap(toBusinessItem(b))
	if err != nil {
		return entities.Business{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Business{}, nil
		}
		return entities.Business{}, fmt.Errorf("repository: update business: %w", err)
	}
	return b, nil
}

func (r *BusinessDynamoRepository) GetByID(ctx context.Context, id string) (entities.Business, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("id", id),
	})
	if err != nil {
		return entities.Business{}, fmt.Errorf("repository: get business: %w", err)
	}
	if len(out.Item) == 0 {
		return entities.Business{}, nil
	}
	return decodeBusiness(out.Item)
}

// GetByPhone resolves the sender of an inbound SMS through the phone GSI.
func (r *BusinessDynamoRepository) GetByPhone(ctx context.Context, phone string) (entities.Business, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(businessPhoneIndex),
		KeyConditionExpression: aws.String("#phone = :phone"),
		ExpressionAttributeNames: map[string]string{
			"#phone": "phone_number",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":phone": &types.AttributeValueMemberS{Value: phone},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Business{}, fmt.Errorf("repository: get business by phone: %w", err)
	}
	if len(out.Items) == 0 {
		return entities.Business{}, nil
	}
	return decodeBusiness(out.Items[0])
}

func toBusinessItem(b entities.Business) businessItem {
	return businessItem{
		ID:          b.ID,
		Name:        b.Name,
		CompanyName: b.CompanyName,
		PhoneNumber: b.PhoneNumber,
		Email:       b.Email,
		Address:     b.Address,
		PaymentInfo: b.PaymentInfo,
		CreatedAt:   formatTime(b.CreatedAt),
		UpdatedAt:   formatTime(b.UpdatedAt),
	}
}

func decodeBusiness(av map[string]types.AttributeValue) (entities.Business, error) {
	var it businessItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Business{}, fmt.Errorf("repository: decode business: %w", err)
	}
	return entities.Business{
		ID:          it.ID,
		Name:        it.Name,
		CompanyName: it.CompanyName,
		PhoneNumber: it.PhoneNumber,
		Email:       it.Email,
		Address:     it.Address,
		PaymentInfo: it.PaymentInfo,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}, nil
}
