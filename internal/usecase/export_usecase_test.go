package usecase

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"sms_invoicer/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportUseCase(t *testing.T) (*ExportUseCase, *fakeDocumentRepo) {
	t.Helper()
	businesses := &fakeBusinessRepo{byID: map[string]entities.Business{
		"biz-1": {ID: "biz-1", Name: "Bob", PhoneNumber: tradiePhone},
	}}
	docs := newFakeDocumentRepo()
	uc := NewExportUseCase(businesses, docs, "", nil)
	uc.now = func() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC) }
	return uc, docs
}

func readCSV(t *testing.T, content []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportUseCase_InvoicesOneRowPerLineItem(t *testing.T) {
	uc, docs := newExportUseCase(t)
	created := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	docs.docs["doc-2"] = entities.Document{
		ID: "doc-2", BusinessID: "biz-1", Type: entities.DocumentTypeInvoice, Number: "INV-00002",
		ClientName: "Jane Doe, Esq.", TotalAmountCents: 30000, CreatedAt: created,
	}
	docs.docs["doc-1"] = entities.Document{
		ID: "doc-1", BusinessID: "biz-1", Type: entities.DocumentTypeInvoice, Number: "INV-00001",
		ClientName: "John Smith", CreatedAt: created,
		LineItems: []entities.ParsedLineItem{
			{Description: "Labor", Quantity: 2.5, UnitPrice: 7500, Total: 18750},
			{Description: "Parts", Quantity: 1, UnitPrice: 4599, Total: 4599},
		},
		TotalAmountCents: 23349,
	}
	docs.docs["quote-1"] = entities.Document{ID: "quote-1", BusinessID: "biz-1", Type: entities.DocumentTypeQuote, Number: "QUO-00001"}
	docs.docs["other"] = entities.Document{ID: "other", BusinessID: "biz-2", Type: entities.DocumentTypeInvoice, Number: "INV-00009"}

	out, err := uc.ExportCSV(context.Background(), "biz-1", entities.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, "invoices-20261019T083000Z.csv", out.Filename)
	assert.Equal(t, 3, out.Rows)

	records := readCSV(t, out.Content)
	require.Len(t, records, 4)
	assert.Equal(t, invoiceExportHeader, records[0])
	assert.Equal(t, []string{
		"INV-00001", "John Smith", "3/7/2026", "", "Net 30", "", "Invoice INV-00001",
		"Labor", "Labor", "2.5", "75.00", "187.50", "NON", "0.00", "USD",
	}, records[1])
	assert.Equal(t, "Parts", records[2][7])
	assert.Equal(t, "45.99", records[2][10])

	// No stored line items: the total goes out as one service line.
	assert.Equal(t, "Jane Doe, Esq.", records[3][1])
	assert.Equal(t, "Service", records[3][7])
	assert.Equal(t, "1", records[3][9])
	assert.Equal(t, "300.00", records[3][11])
}

func TestExportUseCase_QuotesUseEstimateColumns(t *testing.T) {
	uc, docs := newExportUseCase(t)
	docs.docs["quote-1"] = entities.Document{
		ID: "quote-1", BusinessID: "biz-1", Type: entities.DocumentTypeQuote, Number: "QUO-00001",
		LineItems: []entities.ParsedLineItem{{Description: "Deck stain", Quantity: 1, UnitPrice: 120000, Total: 120000}},
	}

	out, err := uc.ExportCSV(context.Background(), "biz-1", entities.DocumentTypeQuote)
	require.NoError(t, err)
	assert.Equal(t, "quotes-20261019T083000Z.csv", out.Filename)

	records := readCSV(t, out.Content)
	require.Len(t, records, 2)
	assert.Equal(t, quoteExportHeader, records[0])
	assert.Equal(t, []string{
		"QUO-00001", "Customer", "", "", "Quote QUO-00001",
		"Deck stain", "Deck stain", "1", "1200.00", "1200.00", "NON", "USD",
	}, records[1])
}

func TestExportUseCase_Errors(t *testing.T) {
	uc, _ := newExportUseCase(t)

	_, err := uc.ExportCSV(context.Background(), "biz-1", entities.DocumentType("receipt"))
	require.ErrorIs(t, err, ErrInvalidExportType)

	_, err = uc.ExportCSV(context.Background(), "biz-404", entities.DocumentTypeInvoice)
	require.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExportUseCase_EmptyExportKeepsHeader(t *testing.T) {
	uc, _ := newExportUseCase(t)

	out, err := uc.ExportCSV(context.Background(), "biz-1", entities.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Zero(t, out.Rows)
	assert.Len(t, readCSV(t, out.Content), 1)
}

func TestExportAmount(t *testing.T) {
	assert.Equal(t, "0.05", exportAmount(5))
	assert.Equal(t, "12.50", exportAmount(1250))
	assert.Equal(t, "-3.01", exportAmount(-301))
}
