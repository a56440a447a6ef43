package entities

import (
	"strings"
	"time"
)

// DocumentType is the kind of document a tradesperson asks for by text.
type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "invoice"
	DocumentTypeQuote   DocumentType = "quote"
)

func (t DocumentType) Valid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypeQuote
}

// NumberPrefix is the human-readable prefix of sequential document numbers.
func (t DocumentType) NumberPrefix() string {
	if t == DocumentTypeQuote {
		return "QUO"
	}
	return "INV"
}

// Title returns "Invoice" or "Quote".
func (t DocumentType) Title() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DocumentStatus tracks a generated document after creation.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusSent      DocumentStatus = "sent"
	DocumentStatusPaid      DocumentStatus = "paid"
	DocumentStatusCancelled DocumentStatus = "cancelled"
)

// ParsedLineItem is one priced unit of work or material extracted from a message.
//
// Monetary representation:
//   - UnitPrice and Total are integer cents.
//   - Total == round(Quantity * UnitPrice).
type ParsedLineItem struct {
	Description string  `json:"description" dynamodbav:"description"`
	Quantity    float64 `json:"quantity" dynamodbav:"quantity"`
	UnitPrice   int64   `json:"unit_price" dynamodbav:"unit_price"`
	Total       int64   `json:"total" dynamodbav:"total"`
}

// ParsedDocumentRequest is the structured form of an inbound invoice/quote text.
type ParsedDocumentRequest struct {
	DocumentType     DocumentType     `json:"document_type"`
	ClientName       *string          `json:"client_name,omitempty"`
	ClientPhone      *string          `json:"client_phone,omitempty"`
	ClientEmail      *string          `json:"client_email,omitempty"`
	ClientAddress    *string          `json:"client_address,omitempty"`
	LineItems        []ParsedLineItem `json:"line_items"`
	TotalAmountCents int64            `json:"total_amount_cents"`
}

// SumLineItems returns the sum of line item totals in cents.
func SumLineItems(items []ParsedLineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Total
	}
	return total
}

// Document is an invoice or quote persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - Number is sequential per (business_id, type), e.g. INV-00001.
//
// The client fields are a snapshot taken at creation time so that later edits
// to the client do not rewrite issued documents.
type Document struct {
	ID               string           `json:"id"`
	BusinessID       string           `json:"business_id"`
	ClientID         string           `json:"client_id"`
	ClientName       string           `json:"client_name"`
	ClientPhone      string           `json:"client_phone,omitempty"`
	ClientEmail      string           `json:"client_email,omitempty"`
	ClientAddress    string           `json:"client_address,omitempty"`
	Type             DocumentType     `json:"type"`
	Number           string           `json:"number"`
	LineItems        []ParsedLineItem `json:"line_items"`
	TotalAmountCents int64            `json:"total_amount_cents"`
	Status           DocumentStatus   `json:"status"`
	PDFURL           string           `json:"pdf_url,omitempty"`
	PaymentLink      string           `json:"payment_link,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// DocumentPDFData is the input of the PDF renderer.
type DocumentPDFData struct {
	Document Document
	Business Business
}
