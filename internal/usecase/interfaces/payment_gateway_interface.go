package interfaces

import (
	"context"

	"sms_invoicer/internal/domain/entities"
)

// IPaymentLinkGateway abstracts external payment providers (e.g. Mercado Pago).
//
// It returns a hosted checkout URL the client can open from the invoice reply.
type IPaymentLinkGateway interface {
	CreatePaymentLink(ctx context.Context, doc entities.Document, business entities.Business) (string, error)
}
