package interfaces

import (
	"context"

	"sms_invoicer/internal/domain/entities"
)

type IBusinessRepository interface {
	Create(ctx context.Context, b entities.Business) (entities.Business, error)
	Update(ctx context.Context, b entities.Business) (entities.Business, error)
	GetByID(ctx context.Context, id string) (entities.Business, error)
	GetByPhone(ctx context.Context, phone string) (entities.Business, error)
}
