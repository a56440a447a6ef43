package entities

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleRequest() ParsedDocumentRequest {
	return ParsedDocumentRequest{
		DocumentType: DocumentTypeInvoice,
		ClientName:   strPtr("Jane Doe"),
		LineItems: []ParsedLineItem{
			{Description: "Labor (2 hrs)", Quantity: 2, UnitPrice: 12050, Total: 24100},
			{Description: "Parts", Quantity: 1, UnitPrice: 5000, Total: 5000},
		},
		TotalAmountCents: 29100,
	}
}

func TestConversationPhase_ForwardOnly(t *testing.T) {
	assert.True(t, ConversationPhaseAwaitingClientPhone.CanTransitionTo(ConversationPhaseAwaitingClientAddress))
	assert.True(t, ConversationPhaseAwaitingClientAddress.CanTransitionTo(ConversationPhaseCompleted))

	assert.False(t, ConversationPhaseAwaitingClientPhone.CanTransitionTo(ConversationPhaseCompleted))
	assert.False(t, ConversationPhaseAwaitingClientAddress.CanTransitionTo(ConversationPhaseAwaitingClientPhone))
	assert.False(t, ConversationPhaseCompleted.CanTransitionTo(ConversationPhaseAwaitingClientPhone))
	assert.False(t, ConversationPhase("bogus").CanTransitionTo(ConversationPhaseCompleted))

	assert.Less(t, ConversationPhaseAwaitingClientPhone.Rank(), ConversationPhaseAwaitingClientAddress.Rank())
	assert.Less(t, ConversationPhaseAwaitingClientAddress.Rank(), ConversationPhaseCompleted.Rank())
	assert.Equal(t, 0, ConversationPhase("bogus").Rank())
}

func TestConversationState_Active(t *testing.T) {
	assert.False(t, ConversationState{}.Active())
	assert.True(t, ConversationState{ID: "c1", Phase: ConversationPhaseAwaitingClientPhone}.Active())
	assert.False(t, ConversationState{ID: "c1", Phase: ConversationPhaseCompleted}.Active())
}

func TestConversationPatch_Apply(t *testing.T) {
	c := ConversationState{ID: "c1", Phase: ConversationPhaseAwaitingClientPhone, ClientName: "Jane Doe"}

	c = ConversationPatch{Phase: ConversationPhaseAwaitingClientAddress, ClientPhone: strPtr("555-1234")}.Apply(c)
	assert.Equal(t, ConversationPhaseAwaitingClientAddress, c.Phase)
	assert.Equal(t, "555-1234", c.ClientPhone)
	assert.Equal(t, "", c.ClientAddress)

	c = ConversationPatch{Phase: ConversationPhaseCompleted, ClientAddress: strPtr("1 Main St")}.Apply(c)
	assert.Equal(t, ConversationPhaseCompleted, c.Phase)
	assert.Equal(t, "555-1234", c.ClientPhone)
	assert.Equal(t, "1 Main St", c.ClientAddress)
	assert.Equal(t, "Jane Doe", c.ClientName)
}

func TestPendingRequest_RoundTrip(t *testing.T) {
	p, err := NewPendingRequest(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, PendingKindInvoiceRequest, p.Kind)
	assert.Equal(t, PendingSchemaVersion, p.Version)

	raw, err := p.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"invoice_request"`)

	got, err := DecodePendingRequest(raw)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestNewPendingRequest_Quote(t *testing.T) {
	req := sampleRequest()
	req.DocumentType = DocumentTypeQuote
	p, err := NewPendingRequest(req)
	require.NoError(t, err)
	assert.Equal(t, PendingKindQuoteRequest, p.Kind)
}

func TestPendingRequest_ValidateRejects(t *testing.T) {
	cases := map[string]func(p *PendingRequest){
		"version":        func(p *PendingRequest) { p.Version = 2 },
		"kind mismatch":  func(p *PendingRequest) { p.Kind = PendingKindQuoteRequest },
		"unknown type":   func(p *PendingRequest) { p.Request.DocumentType = "receipt" },
		"no items":       func(p *PendingRequest) { p.Request.LineItems = nil; p.Request.TotalAmountCents = 0 },
		"zero quantity":  func(p *PendingRequest) { p.Request.LineItems[0].Quantity = 0 },
		"negative price": func(p *PendingRequest) { p.Request.LineItems[1].UnitPrice = -1 },
		"item total":     func(p *PendingRequest) { p.Request.LineItems[0].Total = 24000 },
		"request total":  func(p *PendingRequest) { p.Request.TotalAmountCents = 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := NewPendingRequest(sampleRequest())
			require.NoError(t, err)
			items := append([]ParsedLineItem(nil), p.Request.LineItems...)
			p.Request.LineItems = items
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrMalformedPending)
		})
	}
}

func TestDecodePendingRequest_Malformed(t *testing.T) {
	valid, err := NewPendingRequest(sampleRequest())
	require.NoError(t, err)
	raw, err := valid.Encode()
	require.NoError(t, err)

	inputs := map[string]string{
		"empty":         "   ",
		"not json":      "{not json",
		"unknown field": strings.Replace(string(raw), `"version":1`, `"version":1,"extra":true`, 1),
		"wrong shape":   `{"kind":"invoice_request","version":1,"request":[]}`,
		"no items":      `{"kind":"invoice_request","version":1,"request":{"document_type":"invoice","line_items":[],"total_amount_cents":0}}`,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePendingRequest([]byte(in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedPending))
		})
	}
}

func TestClientNameKey(t *testing.T) {
	assert.Equal(t, "jane doe", ClientNameKey("  Jane   DOE "))
	assert.Equal(t, ClientNameKey("John Smith"), ClientNameKey("john smith"))
}

func TestDocumentType(t *testing.T) {
	assert.Equal(t, "INV", DocumentTypeInvoice.NumberPrefix())
	assert.Equal(t, "QUO", DocumentTypeQuote.NumberPrefix())
	assert.Equal(t, "Invoice", DocumentTypeInvoice.Title())
	assert.True(t, DocumentTypeQuote.Valid())
	assert.False(t, DocumentType("receipt").Valid())
	assert.Equal(t, int64(29100), SumLineItems(sampleRequest().LineItems))
}

func TestConversationState_DecodePending(t *testing.T) {
	p, err := NewPendingRequest(sampleRequest())
	require.NoError(t, err)
	raw, err := p.Encode()
	require.NoError(t, err)

	got, err := ConversationState{PendingData: string(raw)}.DecodePending()
	require.NoError(t, err)
	assert.Equal(t, sampleRequest(), got.Request)

	_, err = ConversationState{PendingData: `{"kind":"invoice_request"}`}.DecodePending()
	assert.ErrorIs(t, err, ErrMalformedPending)
}
