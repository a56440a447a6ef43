package repository

import (
	"context"
	"fmt"
	"strconv"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const documentBusinessIndex = "business_id-index"

type documentItem struct {
	ID               string                    `dynamodbav:"id"`
	BusinessID       string                    `dynamodbav:"business_id"`
	ClientID         string                    `dynamodbav:"client_id"`
	ClientName       string                    `dynamodbav:"client_name"`
	ClientPhone      string                    `dynamodbav:"client_phone,omitempty"`
	ClientEmail      string                    `dynamodbav:"client_email,omitempty"`
	ClientAddress    string                    `dynamodbav:"client_address,omitempty"`
	Type             string                    `dynamodbav:"type"`
	Number           string                    `dynamodbav:"number"`
	LineItems        []entities.ParsedLineItem `dynamodbav:"line_items"`
	TotalAmountCents int64                     `dynamodbav:"total_amount_cents"`
	Status           string                    `dynamodbav:"status"`
	PDFURL           string                    `dynamodbav:"pdf_url,omitempty"`
	PaymentLink      string                    `dynamodbav:"payment_link,omitempty"`
	CreatedAt        string                    `dynamodbav:"created_at"`
	UpdatedAt        string                    `dynamodbav:"updated_at"`
}

// DocumentDynamoRepository persists invoices and quotes in DynamoDB.
//
// Table requirements:
//   - documents: PK id (string), GSI business_id-index (PK business_id, SK created_at)
//   - counters:  PK counter_key (string) = "<business_id>#<type>", attribute value (number)
type DocumentDynamoRepository struct {
	ddb           dynamodbAPI
	tableName     string
	countersTable string
}

var _ interfaces.IDocumentRepository = (*DocumentDynamoRepository)(nil)

func NewDocumentDynamoRepository(ddb dynamodbAPI, tableName, countersTable string) *DocumentDynamoRepository {
	return &DocumentDynamoRepository{ddb: ddb, tableName: tableName, countersTable: countersTable}
}

func (r *DocumentDynamoRepository) Create(ctx context.Context, d entities.Document) (entities.Document, error) {
	av, err := attributevalue.MarshalMap(toDocumentItem(d))
	if err != nil {
		return entities.Document{}, err
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
			return entities.Document{}, nil
		}
		return entities.Document{}, fmt.Errorf("repository: create document: %w", err)
	}
	return d, nil
}

func (r *DocumentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Document, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("id", id),
	})
	if err != nil {
		return entities.Document{}, fmt.Errorf("repository: get document: %w", err)
	}
	if len(out.Item) == 0 {
		return entities.Document{}, nil
	}
	return decodeDocument(out.Item)
}

func (r *DocumentDynamoRepository) UpdateArtifacts(ctx context.Context, id, pdfURL, paymentLink string) (entities.Document, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		UpdateExpression:    aws.String("SET #pdf_url = :pdf_url, #payment_link = :payment_link, #updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id":           "id",
			"#pdf_url":      "pdf_url",
			"#payment_link": "payment_link",
			"#updated_at":   "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pdf_url":      &types.AttributeValueMemberS{Value: pdfURL},
			":payment_link": &types.AttributeValueMemberS{Value: paymentLink},
			":now":          &types.AttributeValueMemberS{Value: nowString()},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Document{}, nil
		}
		return entities.Document{}, fmt.Errorf("repository: update document artifacts: %w", err)
	}
	return decodeDocument(out.Attributes)
}

// ListByBusiness returns the documents of one type for a business, oldest first.
func (r *DocumentDynamoRepository) ListByBusiness(ctx context.Context, businessID string, docType entities.DocumentType) ([]entities.Document, error) {
	items, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(documentBusinessIndex),
		KeyConditionExpression: aws.String("#bid = :bid"),
		FilterExpression:       aws.String("#type = :type"),
		ExpressionAttributeNames: map[string]string{
			"#bid":  "business_id",
			"#type": "type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid":  &types.AttributeValueMemberS{Value: businessID},
			":type": &types.AttributeValueMemberS{Value: string(docType)},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: list documents: %w", err)
	}

	docs := make([]entities.Document, 0, len(items))
	for _, av := range items {
		d, err := decodeDocument(av)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// NextNumber atomically increments the (business, type) counter and formats it
// with the type prefix.
func (r *DocumentDynamoRepository) NextNumber(ctx context.Context, businessID string, docType entities.DocumentType) (string, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.countersTable),
		Key:              stringKey("counter_key", businessID+"#"+string(docType)),
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return "", fmt.Errorf("repository: next document number: %w", err)
	}

	raw, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return "", fmt.Errorf("repository: next document number: counter value missing")
	}
	seq, err := strconv.ParseInt(raw.Value, 10, 64)
	if err != nil {
		return "", fmt.Errorf("repository: next document number: %w", err)
	}
	return fmt.Sprintf("%s-%05d", docType.NumberPrefix(), seq), nil
}

func decodeDocument(av map[string]types.AttributeValue) (entities.Document, error) {
	var it documentItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Document{}, fmt.Errorf("repository: decode document: %w", err)
	}
	return entities.Document{
		ID:               it.ID,
		BusinessID:       it.BusinessID,
		ClientID:         it.ClientID,
		ClientName:       it.ClientName,
		ClientPhone:      it.ClientPhone,
		ClientEmail:      it.ClientEmail,
		ClientAddress:    it.ClientAddress,
		Type:             entities.DocumentType(it.Type),
		Number:           it.Number,
		LineItems:        it.LineItems,
		TotalAmountCents: it.TotalAmountCents,
		Status:           entities.DocumentStatus(it.Status),
		PDFURL:           it.PDFURL,
		PaymentLink:      it.PaymentLink,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}, nil
}

func toDocumentItem(d entities.Document) documentItem {
	return documentItem{
		ID:               d.ID,
		BusinessID:       d.BusinessID,
		ClientID:         d.ClientID,
		ClientName:       d.ClientName,
		ClientPhone:      d.ClientPhone,
		ClientEmail:      d.ClientEmail,
		ClientAddress:    d.ClientAddress,
		Type:             string(d.Type),
		Number:           d.Number,
		LineItems:        d.LineItems,
		TotalAmountCents: d.TotalAmountCents,
		Status:           string(d.Status),
		PDFURL:           d.PDFURL,
		PaymentLink:      d.PaymentLink,
		CreatedAt:        formatTime(d.CreatedAt),
		UpdatedAt:        formatTime(d.UpdatedAt),
	}
}
