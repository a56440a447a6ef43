package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"sms_invoicer/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepository_FindByName_UsesNormalizedKey(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: mustMarshal(clientItem{
		ClientKey:  "biz-1#jane doe",
		ID:         "cli-1",
		BusinessID: "biz-1",
		Name:       "Jane Doe",
		Phone:      "+15551234567",
		CreatedAt:  "2026-01-02T03:04:05Z",
	})}}
	repo := NewClientDynamoRepository(db, "clients")

	got, err := repo.FindByName(context.Background(), "biz-1", "  JANE   doe ")
	require.NoError(t, err)
	assert.Equal(t, "cli-1", got.ID)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "+15551234567", got.Phone)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), got.CreatedAt)

	require.NotNil(t, db.lastGetInput)
	assert.Equal(t, "clients", *db.lastGetInput.TableName)
	assert.Equal(t, "biz-1#jane doe", attrS(db.lastGetInput.Key, "client_key"))
	assert.True(t, *db.lastGetInput.ConsistentRead)
}

func TestClientRepository_FindByName_NotFound(t *testing.T) {
	repo := NewClientDynamoRepository(&fakeDynamo{}, "clients")

	got, err := repo.FindByName(context.Background(), "biz-1", "Nobody")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestClientRepository_FindByName_Error(t *testing.T) {
	repo := NewClientDynamoRepository(&fakeDynamo{getErr: errors.New("boom")}, "clients")

	_, err := repo.FindByName(context.Background(), "biz-1", "Jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestClientRepository_Create(t *testing.T) {
	db := &fakeDynamo{}
	repo := NewClientDynamoRepository(db, "clients")
	in := entities.Client{ID: "cli-1", BusinessID: "biz-1", Name: "Jane Doe", Address: "123 Main St"}

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	require.NotNil(t, db.lastPutInput)
	assert.Equal(t, "attribute_not_exists(#pk)", *db.lastPutInput.ConditionExpression)
	assert.Equal(t, "biz-1#jane doe", attrS(db.lastPutInput.Item, "client_key"))
	assert.Equal(t, "123 Main St", attrS(db.lastPutInput.Item, "address"))
	_, hasPhone := db.lastPutInput.Item["phone"]
	assert.False(t, hasPhone)
}

func TestClientRepository_Create_ConflictReturnsEmpty(t *testing.T) {
	repo := NewClientDynamoRepository(&fakeDynamo{putErr: conditionFailed()}, "clients")

	got, err := repo.Create(context.Background(), entities.Client{ID: "cli-2", BusinessID: "biz-1", Name: "Jane Doe"})
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestClientRepository_ListByBusiness_FollowsPages(t *testing.T) {
	cursor := stringKey("client_key", "biz-1#jane doe")
	db := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{
			Items:            []map[string]types.AttributeValue{mustMarshal(toClientItem(entities.Client{ID: "cli-1", BusinessID: "biz-1", Name: "Jane Doe"}))},
			LastEvaluatedKey: cursor,
		},
		{
			Items: []map[string]types.AttributeValue{mustMarshal(toClientItem(entities.Client{ID: "cli-2", BusinessID: "biz-1", Name: "John Smith", Notes: "dog in yard"}))},
		},
	}}
	repo := NewClientDynamoRepository(db, "clients")

	got, err := repo.ListByBusiness(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cli-1", got[0].ID)
	assert.Equal(t, "dog in yard", got[1].Notes)

	require.Len(t, db.queryInputs, 2)
	assert.Equal(t, "business_id-index", *db.queryInputs[0].IndexName)
	assert.Equal(t, "biz-1", attrS(db.queryInputs[0].ExpressionAttributeValues, ":bid"))
	assert.Nil(t, db.queryInputs[0].ExclusiveStartKey)
	assert.Equal(t, cursor, db.queryInputs[1].ExclusiveStartKey)
}

func TestClientRepository_ListByBusiness_Error(t *testing.T) {
	repo := NewClientDynamoRepository(&fakeDynamo{queryErr: errors.New("boom")}, "clients")

	_, err := repo.ListByBusiness(context.Background(), "biz-1")
	require.Error(t, err)
}

func TestClientRepository_Update_SameNameConditionsOnID(t *testing.T) {
	db := &fakeDynamo{}
	repo := NewClientDynamoRepository(db, "clients")
	prev := entities.Client{ID: "cli-1", BusinessID: "biz-1", Name: "Jane Doe"}
	next := prev
	next.Name = "JANE DOE"
	next.Phone = "555-1"

	got, err := repo.Update(context.Background(), prev, next)
	require.NoError(t, err)
	assert.Equal(t, next, got)
	assert.Nil(t, db.lastTransact)

	require.NotNil(t, db.lastPutInput)
	assert.Equal(t, "#id = :id", *db.lastPutInput.ConditionExpression)
	assert.Equal(t, "cli-1", attrS(db.lastPutInput.ExpressionAttributeValues, ":id"))
	assert.Equal(t, "biz-1#jane doe", attrS(db.lastPutInput.Item, "client_key"))

	db.putErr = conditionFailed()
	got, err = repo.Update(context.Background(), prev, next)
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestClientRepository_Update_RenameIsTransactional(t *testing.T) {
	db := &fakeDynamo{}
	repo := NewClientDynamoRepository(db, "clients")
	prev := entities.Client{ID: "cli-1", BusinessID: "biz-1", Name: "Jane Doe"}
	next := prev
	next.Name = "Jane Smith"

	got, err := repo.Update(context.Background(), prev, next)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", got.Name)
	assert.Nil(t, db.lastPutInput)

	require.NotNil(t, db.lastTransact)
	require.Len(t, db.lastTransact.TransactItems, 2)
	del := db.lastTransact.TransactItems[0].Delete
	put := db.lastTransact.TransactItems[1].Put
	require.NotNil(t, del)
	require.NotNil(t, put)
	assert.Equal(t, "biz-1#jane doe", attrS(del.Key, "client_key"))
	assert.Equal(t, "cli-1", attrS(del.ExpressionAttributeValues, ":id"))
	assert.Equal(t, "biz-1#jane smith", attrS(put.Item, "client_key"))
	assert.Equal(t, "attribute_not_exists(#pk)", *put.ConditionExpression)
}

func TestClientRepository_Update_RenameCanceled(t *testing.T) {
	db := &fakeDynamo{transactErr: &types.TransactionCanceledException{Message: strPtr("Transaction cancelled")}}
	repo := NewClientDynamoRepository(db, "clients")
	prev := entities.Client{ID: "cli-1", BusinessID: "biz-1", Name: "Jane Doe"}
	next := prev
	next.Name = "John Smith"

	got, err := repo.Update(context.Background(), prev, next)
	require.NoError(t, err)
	assert.Empty(t, got.ID)

	db.transactErr = errors.New("throttled")
	_, err = repo.Update(context.Background(), prev, next)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
