package interfaces

import (
	"context"

	"sms_invoicer/internal/domain/entities"
)

// IDocumentRepository abstracts DynamoDB persistence for invoices and quotes.
type IDocumentRepository interface {
	Create(ctx context.Context, d entities.Document) (entities.Document, error)
	GetByID(ctx context.Context, id string) (entities.Document, error)
	UpdateArtifacts(ctx context.Context, id, pdfURL, paymentLink string) (entities.Document, error)
	ListByBusiness(ctx context.Context, businessID string, docType entities.DocumentType) ([]entities.Document, error)
	// NextNumber reserves the next sequential number ("INV-00001") for the business and type.
	NextNumber(ctx context.Context, businessID string, docType entities.DocumentType) (string, error)
}
