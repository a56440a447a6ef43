package response

import (
	"time"

	"sms_invoicer/internal/domain/entities"
)

type LineItemResponse struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	TotalCents     int64   `json:"total_cents"`
}

type DocumentResponse struct {
	ID               string             `json:"id"`
	BusinessID       string             `json:"business_id"`
	Type             string             `json:"type"`
	Number           string             `json:"number"`
	Status           string             `json:"status"`
	ClientID         string             `json:"client_id"`
	ClientName       string             `json:"client_name"`
	ClientPhone      string             `json:"client_phone,omitempty"`
	ClientEmail      string             `json:"client_email,omitempty"`
	ClientAddress    string             `json:"client_address,omitempty"`
	LineItems        []LineItemResponse `json:"line_items"`
	TotalAmountCents int64              `json:"total_amount_cents"`
	Total            float64            `json:"total"`
	PDFURL           string             `json:"pdf_url,omitempty"`
	PaymentLink      string             `json:"payment_link,omitempty"`
	ViewURL          string             `json:"view_url"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func FromDocument(d entities.Document, viewURL string) DocumentResponse {
	items := make([]LineItemResponse, 0, len(d.LineItems))
	for _, it := range d.LineItems {
		items = append(items, LineItemResponse{
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPrice,
			TotalCents:     it.Total,
		})
	}
	return DocumentResponse{
		ID:               d.ID,
		BusinessID:       d.BusinessID,
		Type:             string(d.Type),
		Number:           d.Number,
		Status:           string(d.Status),
		ClientID:         d.ClientID,
		ClientName:       d.ClientName,
		ClientPhone:      d.ClientPhone,
		ClientEmail:      d.ClientEmail,
		ClientAddress:    d.ClientAddress,
		LineItems:        items,
		TotalAmountCents: d.TotalAmountCents,
		Total:            float64(d.TotalAmountCents) / 100,
		PDFURL:           d.PDFURL,
		PaymentLink:      d.PaymentLink,
		ViewURL:          viewURL,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
