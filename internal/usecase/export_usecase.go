package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/domain/smsparser"
	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/usecase/interfaces"
)

var ErrInvalidExportType = errors.New("invalid export document type")

// QuickBooks import columns. Invoices import as invoices, quotes as estimates.
var (
	invoiceExportHeader = []string{
		"InvoiceNo", "Customer", "InvoiceDate", "DueDate", "Terms", "Location", "Memo",
		"Item", "ItemDescription", "ItemQuantity", "ItemRate", "ItemAmount",
		"ItemTaxCode", "ItemTaxAmount", "Currency",
	}
	quoteExportHeader = []string{
		"EstimateNo", "Customer", "EstimateDate", "ExpirationDate", "Memo",
		"Item", "ItemDescription", "ItemQuantity", "ItemRate", "ItemAmount",
		"ItemTaxCode", "Currency",
	}
)

const (
	quickBooksDateLayout = "1/2/2006"
	quickBooksTerms      = "Net 30"
	quickBooksNoTax      = "NON"
)

// CSVExport is a finished export ready to be served as a download.
type CSVExport struct {
	Filename string
	Content  []byte
	Rows     int
}

type IExportUseCase interface {
	ExportCSV(ctx context.Context, businessID string, docType entities.DocumentType) (CSVExport, error)
}

// ExportUseCase renders the documents of a business as QuickBooks CSV, one
// row per line item.
type ExportUseCase struct {
	businesses interfaces.IBusinessRepository
	documents  interfaces.IDocumentRepository
	currency   string
	log        *logger.Logger
	now        func() time.Time
}

var _ IExportUseCase = (*ExportUseCase)(nil)

func NewExportUseCase(businesses interfaces.IBusinessRepository, documents interfaces.IDocumentRepository, currency string, log *logger.Logger) *ExportUseCase {
	if currency == "" {
		currency = "USD"
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ExportUseCase{businesses: businesses, documents: documents, currency: currency, log: log, now: time.Now}
}

func (u *ExportUseCase) ExportCSV(ctx context.Context, businessID string, docType entities.DocumentType) (CSVExport, error) {
	if !docType.Valid() {
		return CSVExport{}, ErrInvalidExportType
	}
	b, err := loadBusiness(ctx, u.businesses, businessID)
	if err != nil {
		return CSVExport{}, err
	}

	docs, err := u.documents.ListByBusiness(ctx, b.ID, docType)
	if err != nil {
		return CSVExport{}, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := invoiceExportHeader
	if docType == entities.DocumentTypeQuote {
		header = quoteExportHeader
	}
	if err := writer.Write(header); err != nil {
		return CSVExport{}, fmt.Errorf("writing CSV header failed: %w", err)
	}

	rows := 0
	for _, d := range docs {
		for _, line := range exportLines(d) {
			if err := writer.Write(u.row(d, line)); err != nil {
				return CSVExport{}, fmt.Errorf("writing CSV row for %s failed: %w", d.Number, err)
			}
			rows++
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return CSVExport{}, fmt.Errorf("csv writer error: %w", err)
	}

	u.log.Info("[export][usecase] documents exported", "business_id", b.ID, "type", docType, "documents", len(docs), "rows", rows)
	return CSVExport{
		Filename: fmt.Sprintf("%ss-%s.csv", docType, u.now().UTC().Format("20060102T150405Z")),
		Content:  buf.Bytes(),
		Rows:     rows,
	}, nil
}

// exportLines falls back to a single "Service" line for the document total
// when no line items were stored.
func exportLines(d entities.Document) []entities.ParsedLineItem {
	if len(d.LineItems) > 0 {
		return d.LineItems
	}
	return []entities.ParsedLineItem{{
		Description: "Service",
		Quantity:    1,
		UnitPrice:   d.TotalAmountCents,
		Total:       d.TotalAmountCents,
	}}
}

func (u *ExportUseCase) row(d entities.Document, line entities.ParsedLineItem) []string {
	customer := d.ClientName
	if customer == "" {
		customer = "Customer"
	}
	date := ""
	if !d.CreatedAt.IsZero() {
		date = d.CreatedAt.UTC().Format(quickBooksDateLayout)
	}
	memo := d.Type.Title() + " " + d.Number
	quantity := smsparser.FormatQuantity(line.Quantity)
	rate := exportAmount(line.UnitPrice)
	amount := exportAmount(line.Total)

	if d.Type == entities.DocumentTypeQuote {
		return []string{
			d.Number, customer, date, "", memo,
			line.Description, line.Description, quantity, rate, amount,
			quickBooksNoTax, u.currency,
		}
	}
	return []string{
		d.Number, customer, date, "", quickBooksTerms, "", memo,
		line.Description, line.Description, quantity, rate, amount,
		quickBooksNoTax, "0.00", u.currency,
	}
}

func exportAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
