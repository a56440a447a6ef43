package repository

import (
	"context"
	"errors"
	"testing"

	"sms_invoicer/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessRepository_GetByPhone_QueriesIndex(t *testing.T) {
	db := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
		mustMarshal(businessItem{ID: "biz-1", Name: "Joe", CompanyName: "Joe's Plumbing", PhoneNumber: "+15550001111"}),
	}}}
	repo := NewBusinessDynamoRepository(db, "businesses")

	got, err := repo.GetByPhone(context.Background(), "+15550001111")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", got.ID)
	assert.Equal(t, "Joe's Plumbing", got.DisplayName())

	in := db.lastQueryInput
	require.NotNil(t, in)
	assert.Equal(t, businessPhoneIndex, *in.IndexName)
	assert.Equal(t, "#phone = :phone", *in.KeyConditionExpression)
	assert.Equal(t, "+15550001111", attrS(in.ExpressionAttributeValues, ":phone"))
	assert.Equal(t, int32(1), *in.Limit)
}

func TestBusinessRepository_GetByPhone_Unknown(t *testing.T) {
	repo := NewBusinessDynamoRepository(&fakeDynamo{}, "businesses")

	got, err := repo.GetByPhone(context.Background(), "+15559999999")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestBusinessRepository_GetByPhone_Error(t *testing.T) {
	repo := NewBusinessDynamoRepository(&fakeDynamo{queryErr: errors.New("boom")}, "businesses")

	_, err := repo.GetByPhone(context.Background(), "+15550001111")
	require.Error(t, err)
}

func TestBusinessRepository_CreateAndGetByID(t *testing.T) {
	db := &fakeDynamo{}
	repo := NewBusinessDynamoRepository(db, "businesses")
	in := entities.Business{ID: "biz-1", Name: "Joe", PhoneNumber: "+15550001111", PaymentInfo: "Zelle"}

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Equal(t, "attribute_not_exists(#id)", *db.lastPutInput.ConditionExpression)

	db.getOut = &dynamodb.GetItemOutput{Item: db.lastPutInput.Item}
	fetched, err := repo.GetByID(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.Equal(t, "Zelle", fetched.PaymentInfo)
	assert.Equal(t, "biz-1", attrS(db.lastGetInput.Key, "id"))

	db.putErr = conditionFailed()
	dup, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, dup.ID)
}

func TestBusinessRepository_Update(t *testing.T) {
	db := &fakeDynamo{}
	repo := NewBusinessDynamoRepository(db, "businesses")
	in := entities.Business{ID: "biz-1", Name: "Joe", PhoneNumber: "+15550001111", CompanyName: "Joe's Decks"}

	got, err := repo.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Equal(t, "attribute_exists(#id)", *db.lastPutInput.ConditionExpression)
	assert.Equal(t, "Joe's Decks", attrS(db.lastPutInput.Item, "company_name"))

	db.putErr = conditionFailed()
	missing, err := repo.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	db.putErr = errors.New("boom")
	_, err = repo.Update(context.Background(), in)
	require.Error(t, err)
}
