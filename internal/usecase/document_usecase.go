package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound       = errors.New("document not found")
	ErrInvalidDocumentID      = errors.New("invalid document id")
	ErrInvalidDocumentRequest = errors.New("invalid document request")
	ErrDocumentAlreadyExists  = errors.New("document already exists")
)

// IDocumentUseCase creates invoices and quotes and serves them back.
//
// Creation is the hand-off point of both the zero-turn flow (known client)
// and a completed conversation.
type IDocumentUseCase interface {
	CreateFromRequest(ctx context.Context, business entities.Business, client entities.Client, req entities.ParsedDocumentRequest) (entities.Document, error)
	GetByID(ctx context.Context, id string) (entities.Document, error)
	ViewURL(doc entities.Document) string
}

type DocumentUseCase struct {
	repo     interfaces.IDocumentRepository
	renderer interfaces.IPDFRenderer
	storage  interfaces.IFileStorage
	payments interfaces.IPaymentLinkGateway
	appURL   string
	log      *logger.Logger
}

var _ IDocumentUseCase = (*DocumentUseCase)(nil)

// NewDocumentUseCase wires the document flow. renderer, storage and payments
// may be nil; the matching artifact is then skipped.
func NewDocumentUseCase(
	repo interfaces.IDocumentRepository,
	renderer interfaces.IPDFRenderer,
	storage interfaces.IFileStorage,
	payments interfaces.IPaymentLinkGateway,
	appURL string,
	log *logger.Logger,
) *DocumentUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &DocumentUseCase{
		repo:     repo,
		renderer: renderer,
		storage:  storage,
		payments: payments,
		appURL:   strings.TrimRight(appURL, "/"),
		log:      log,
	}
}

func (u *DocumentUseCase) CreateFromRequest(ctx context.Context, business entities.Business, client entities.Client, req entities.ParsedDocumentRequest) (entities.Document, error) {
	if !req.DocumentType.Valid() || len(req.LineItems) == 0 || strings.TrimSpace(business.ID) == "" {
		return entities.Document{}, ErrInvalidDocumentRequest
	}

	number, err := u.repo.NextNumber(ctx, business.ID, req.DocumentType)
	if err != nil {
		return entities.Document{}, err
	}

	now := time.Now().UTC()
	doc := entities.Document{
		ID:               uuid.NewString(),
		BusinessID:       business.ID,
		ClientID:         client.ID,
		ClientName:       firstNonEmpty(client.Name, deref(req.ClientName)),
		ClientPhone:      firstNonEmpty(client.Phone, deref(req.ClientPhone)),
		ClientEmail:      firstNonEmpty(client.Email, deref(req.ClientEmail)),
		ClientAddress:    firstNonEmpty(client.Address, deref(req.ClientAddress)),
		Type:             req.DocumentType,
		Number:           number,
		LineItems:        req.LineItems,
		TotalAmountCents: entities.SumLineItems(req.LineItems),
		Status:           entities.DocumentStatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := u.repo.Create(ctx, doc)
	if err != nil {
		return entities.Document{}, err
	}
	if created.ID == "" {
		return entities.Document{}, ErrDocumentAlreadyExists
	}
	documentsCreatedCounter.WithLabelValues(string(created.Type)).Inc()
	u.log.Info("[document][usecase] created", "document_id", created.ID, "number", created.Number, "total_cents", created.TotalAmountCents)

	return u.attachArtifacts(ctx, business, created), nil
}

// attachArtifacts adds the payment link (invoices only) and the PDF. Neither
// is required for the document to exist, so failures are only logged.
func (u *DocumentUseCase) attachArtifacts(ctx context.Context, business entities.Business, doc entities.Document) entities.Document {
	if doc.Type == entities.DocumentTypeInvoice && u.payments != nil {
		link, err := u.payments.CreatePaymentLink(ctx, doc, business)
		if err != nil {
			documentArtifactFailuresCounter.WithLabelValues("payment_link").Inc()
			u.log.Warn("[document][usecase] payment link failed", "document_id", doc.ID, "err", err)
		} else {
			doc.PaymentLink = link
		}
	}

	if u.renderer != nil && u.storage != nil {
		url, err := u.renderAndStore(ctx, business, doc)
		if err != nil {
			documentArtifactFailuresCounter.WithLabelValues("pdf").Inc()
			u.log.Warn("[document][usecase] pdf failed", "document_id", doc.ID, "err", err)
		} else {
			doc.PDFURL = url
		}
	}

	if doc.PDFURL == "" && doc.PaymentLink == "" {
		return doc
	}

	updated, err := u.repo.UpdateArtifacts(ctx, doc.ID, doc.PDFURL, doc.PaymentLink)
	if err != nil || updated.ID == "" {
		u.log.Warn("[document][usecase] artifact update failed", "document_id", doc.ID, "err", err)
		return doc
	}
	return updated
}

func (u *DocumentUseCase) renderAndStore(ctx context.Context, business entities.Business, doc entities.Document) (string, error) {
	pdf, err := u.renderer.Render(ctx, entities.DocumentPDFData{Document: doc, Business: business})
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	key := fmt.Sprintf("documents/%s/%s.pdf", business.ID, doc.Number)
	url, err := u.storage.Put(ctx, key, "application/pdf", pdf)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	return url, nil
}

func (u *DocumentUseCase) GetByID(ctx context.Context, id string) (entities.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Document{}, ErrInvalidDocumentID
	}

	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Document{}, err
	}
	if d.ID == "" {
		return entities.Document{}, ErrDocumentNotFound
	}
	return d, nil
}

func (u *DocumentUseCase) ViewURL(doc entities.Document) string {
	return u.appURL + "/v1/documents/" + doc.ID
}
