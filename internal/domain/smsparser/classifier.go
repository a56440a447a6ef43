// Package smsparser turns free-form invoice/quote texts into structured
// document requests. Everything here is pure: no I/O, no shared mutable state.
package smsparser

import (
	"errors"
	"fmt"
	"regexp"

	"sms_invoicer/internal/domain/entities"
)

var (
	ErrParseRejected     = errors.New("message rejected")
	ErrNoDocumentKeyword = fmt.Errorf("%w: no invoice or quote keyword", ErrParseRejected)
	ErrNoLineItems       = fmt.Errorf("%w: no line items", ErrParseRejected)
)

// documentKeywords is checked in order; the first hit decides the type, so
// "invoice" wins over "quote".
var documentKeywords = []struct {
	pattern *regexp.Regexp
	docType entities.DocumentType
}{
	{regexp.MustCompile(`(?i)\binvoice\b`), entities.DocumentTypeInvoice},
	{regexp.MustCompile(`(?i)\bquote\b`), entities.DocumentTypeQuote},
}

// DetectDocumentType reports which document the text asks for.
func DetectDocumentType(text string) (entities.DocumentType, bool) {
	for _, kw := range documentKeywords {
		if kw.pattern.MatchString(text) {
			return kw.docType, true
		}
	}
	return "", false
}

// Classify parses text into a document request. It rejects texts without a
// document keyword or without any priced line item.
func Classify(text string) (entities.ParsedDocumentRequest, error) {
	docType, ok := DetectDocumentType(text)
	if !ok {
		return entities.ParsedDocumentRequest{}, ErrNoDocumentKeyword
	}

	items := ExtractLineItems(text)
	if len(items) == 0 {
		return entities.ParsedDocumentRequest{}, ErrNoLineItems
	}

	return entities.ParsedDocumentRequest{
		DocumentType:     docType,
		ClientName:       optional(ExtractClientName(text)),
		ClientPhone:      optional(ExtractPhone(text)),
		ClientEmail:      optional(ExtractEmail(text)),
		ClientAddress:    optional(ExtractAddress(text)),
		LineItems:        items,
		TotalAmountCents: entities.SumLineItems(items),
	}, nil
}

func optional(v string, ok bool) *string {
	if !ok || v == "" {
		return nil
	}
	return &v
}
