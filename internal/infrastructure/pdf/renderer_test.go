package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"sms_invoicer/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() entities.DocumentPDFData {
	return entities.DocumentPDFData{
		Business: entities.Business{
			ID:          "biz-1",
			Name:        "Joe",
			CompanyName: "Joe's Plumbing",
			PhoneNumber: "+15550001111",
			PaymentInfo: "Zelle joe@example.com",
		},
		Document: entities.Document{
			ID:            "doc-1",
			Type:          entities.DocumentTypeInvoice,
			Number:        "INV-00001",
			ClientName:    "Jane Doe",
			ClientPhone:   "+15559876543",
			ClientAddress: "123 Main St, Springfield",
			LineItems: []entities.ParsedLineItem{
				{Description: "Labor", Quantity: 1.5, UnitPrice: 3333, Total: 5000},
				{Description: "Parts", Quantity: 1, UnitPrice: 5000, Total: 5000},
			},
			TotalAmountCents: 10000,
			PaymentLink:      "https://mp/checkout/pref-1",
			CreatedAt:        time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	out, err := NewRenderer().Render(context.Background(), sampleData())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}

func TestRender_QuoteWithoutOptionalFields(t *testing.T) {
	data := sampleData()
	data.Document.Type = entities.DocumentTypeQuote
	data.Document.Number = "QUO-00003"
	data.Document.PaymentLink = ""
	data.Document.CreatedAt = time.Time{}
	data.Business = entities.Business{Name: "Joe"}

	r := NewRenderer()
	r.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	out, err := r.Render(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer().Render(ctx, sampleData())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.99", money(99))
	assert.Equal(t, "$120.50", money(12050))
	assert.Equal(t, "-$5.00", money(-500))
}
