package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	getOut    *dynamodb.GetItemOutput
	getErr    error
	putErr    error
	updateOut *dynamodb.UpdateItemOutput
	updateErr error
	deleteErr error
	queryOut  *dynamodb.QueryOutput
	// queryPages, when set, are returned one per Query call.
	queryPages  []*dynamodb.QueryOutput
	queryErr    error
	transactErr error

	lastGetInput    *dynamodb.GetItemInput
	lastPutInput    *dynamodb.PutItemInput
	lastUpdateInput *dynamodb.UpdateItemInput
	lastDeleteInput *dynamodb.DeleteItemInput
	lastQueryInput  *dynamodb.QueryInput
	queryInputs     []*dynamodb.QueryInput
	lastTransact    *dynamodb.TransactWriteItemsInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGetInput = in
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, f.getErr
	}
	return f.getOut, f.getErr
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpdateInput = in
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, f.updateErr
	}
	return f.updateOut, f.updateErr
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.lastDeleteInput = in
	return &dynamodb.DeleteItemOutput{}, f.deleteErr
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.lastQueryInput = in
	f.queryInputs = append(f.queryInputs, in)
	if len(f.queryPages) > 0 {
		page := f.queryPages[0]
		f.queryPages = f.queryPages[1:]
		return page, f.queryErr
	}
	if f.queryOut == nil {
		return &dynamodb.QueryOutput{}, f.queryErr
	}
	return f.queryOut, f.queryErr
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.lastTransact = in
	return &dynamodb.TransactWriteItemsOutput{}, f.transactErr
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: strPtr("The conditional request failed")}
}

func strPtr(s string) *string { return &s }

func mustMarshal(v any) map[string]types.AttributeValue {
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		panic(err)
	}
	return av
}

func attrS(av map[string]types.AttributeValue, name string) string {
	if s, ok := av[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
