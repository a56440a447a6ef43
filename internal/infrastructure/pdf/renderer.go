package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/domain/smsparser"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0

	colDescription = 100.0
	colQuantity    = 20.0
	colUnitPrice   = 30.0
	colTotal       = 30.0
)

// Renderer draws invoices and quotes on a single Letter page using the core
// fonts, so no font files are needed at runtime.
type Renderer struct {
	now func() time.Time
}

var _ interfaces.IPDFRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

func (r *Renderer) Render(ctx context.Context, data entities.DocumentPDFData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, business := data.Document, data.Business

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(fmt.Sprintf("%s %s", doc.Type.Title(), doc.Number), true)
	pdf.SetAuthor(business.DisplayName(), true)
	pdf.SetCreationDate(r.issuedAt(doc))
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s %s", doc.Type.Title(), doc.Number)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, lineHeight, "Date: "+r.issuedAt(doc).Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	block(pdf, tr, "From", []string{business.DisplayName(), business.PhoneNumber, business.Email, business.Address})
	block(pdf, tr, "Bill to", []string{doc.ClientName, doc.ClientPhone, doc.ClientEmail, doc.ClientAddress})

	lineItemTable(pdf, tr, doc)

	if doc.Type == entities.DocumentTypeInvoice && business.PaymentInfo != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, lineHeight, "Payment", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, lineHeight, tr(business.PaymentInfo), "", "L", false)
	}
	if doc.PaymentLink != "" {
		pdf.SetTextColor(0, 0, 200)
		pdf.CellFormat(0, lineHeight, "Pay online", "", 1, "L", false, 0, doc.PaymentLink)
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render %s: %w", doc.Number, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) issuedAt(doc entities.Document) time.Time {
	if !doc.CreatedAt.IsZero() {
		return doc.CreatedAt
	}
	return r.now()
}

func block(pdf *fpdf.Fpdf, tr func(string) string, title string, lines []string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineHeight, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, l := range lines {
		if l == "" {
			continue
		}
		pdf.CellFormat(0, lineHeight-1, tr(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func lineItemTable(pdf *fpdf.Fpdf, tr func(string) string, doc entities.Document) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colDescription, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQuantity, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colUnitPrice, 7, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range doc.LineItems {
		pdf.CellFormat(colDescription, 7, tr(it.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQuantity, 7, smsparser.FormatQuantity(it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colUnitPrice, 7, money(it.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 7, money(it.Total), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colDescription+colQuantity+colUnitPrice, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 8, money(doc.TotalAmountCents), "1", 1, "R", false, 0, "")
}

func money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
