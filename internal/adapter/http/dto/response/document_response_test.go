package response

import (
	"testing"
	"time"

	"sms_invoicer/internal/domain/entities"
)

func TestFromDocument(t *testing.T) {
	now := time.Now().UTC()
	d := entities.Document{
		ID:         "doc-1",
		BusinessID: "biz-1",
		Type:       entities.DocumentTypeInvoice,
		Number:     "INV-00001",
		Status:     entities.DocumentStatusDraft,
		ClientName: "Jane Doe",
		LineItems: []entities.ParsedLineItem{
			{Description: "Labor", Quantity: 2, UnitPrice: 12050, Total: 24100},
		},
		TotalAmountCents: 24100,
		PaymentLink:      "https://mp/pref-1",
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	res := FromDocument(d, "http://localhost:8080/v1/documents/doc-1")
	if res.ID != "doc-1" || res.Number != "INV-00001" || res.Type != "invoice" || res.Status != "draft" {
		t.Fatalf("unexpected identity fields: %+v", res)
	}
	if res.Total != 241 || res.TotalAmountCents != 24100 {
		t.Fatalf("unexpected totals: %+v", res)
	}
	if len(res.LineItems) != 1 || res.LineItems[0].UnitPriceCents != 12050 || res.LineItems[0].TotalCents != 24100 {
		t.Fatalf("unexpected line items: %+v", res.LineItems)
	}
	if res.ViewURL != "http://localhost:8080/v1/documents/doc-1" || res.PaymentLink != "https://mp/pref-1" {
		t.Fatalf("unexpected links: %+v", res)
	}
	if !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
}

func TestFromDocument_NoLineItemsIsEmptyArray(t *testing.T) {
	res := FromDocument(entities.Document{ID: "doc-2"}, "")
	if res.LineItems == nil {
		t.Fatalf("line_items must serialize as [] not null")
	}
}
