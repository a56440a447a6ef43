package interfaces

import (
	"context"

	"sms_invoicer/internal/domain/entities"
)

// IClientRepository abstracts DynamoDB persistence for Client.
//
// Lookups are case-insensitive on the name within one business. Create returns
// an empty Client (and nil error) when the name is already taken; Update does
// the same when the new name is taken or the record changed underneath.
type IClientRepository interface {
	FindByName(ctx context.Context, businessID, name string) (entities.Client, error)
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	ListByBusiness(ctx context.Context, businessID string) ([]entities.Client, error)
	Update(ctx context.Context, previous, updated entities.Client) (entities.Client, error)
}
