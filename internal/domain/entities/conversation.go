package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// ConversationPhase is the current step of a client-detail collection dialogue.
//
// Phases are linear: awaiting_client_phone -> awaiting_client_address -> completed.
type ConversationPhase string

const (
	ConversationPhaseAwaitingClientPhone   ConversationPhase = "awaiting_client_phone"
	ConversationPhaseAwaitingClientAddress ConversationPhase = "awaiting_client_address"
	ConversationPhaseCompleted             ConversationPhase = "completed"
)

var conversationPhaseOrder = map[ConversationPhase]int{
	ConversationPhaseAwaitingClientPhone:   1,
	ConversationPhaseAwaitingClientAddress: 2,
	ConversationPhaseCompleted:             3,
}

// Rank orders phases; unknown phases rank 0.
func (p ConversationPhase) Rank() int {
	return conversationPhaseOrder[p]
}

// Next returns the phase that follows p. Completed has no successor.
func (p ConversationPhase) Next() (ConversationPhase, bool) {
	switch p {
	case ConversationPhaseAwaitingClientPhone:
		return ConversationPhaseAwaitingClientAddress, true
	case ConversationPhaseAwaitingClientAddress:
		return ConversationPhaseCompleted, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether next is exactly one step ahead of p.
func (p ConversationPhase) CanTransitionTo(next ConversationPhase) bool {
	n, ok := p.Next()
	return ok && n == next
}

// ConversationState is the dialogue collecting a new client's details.
//
// Storage model (DynamoDB):
//   - PK: conversation_key = "<business_id>#<phone_number>"
//
// Keying by (business, phone) keeps at most one conversation per sender.
// The record is deleted as soon as the document has been handed off.
type ConversationState struct {
	ID            string            `json:"id"`
	BusinessID    string            `json:"business_id"`
	PhoneNumber   string            `json:"phone_number"`
	Phase         ConversationPhase `json:"phase"`
	PendingData   string            `json:"pending_data"`
	ClientName    string            `json:"client_name,omitempty"`
	ClientPhone   string            `json:"client_phone,omitempty"`
	ClientAddress string            `json:"client_address,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Active reports whether the conversation still expects replies.
func (c ConversationState) Active() bool {
	return c.ID != "" && c.Phase != ConversationPhaseCompleted
}

// DecodePending validates and returns the parked document request.
func (c ConversationState) DecodePending() (PendingRequest, error) {
	return DecodePendingRequest([]byte(c.PendingData))
}

// ConversationPatch is the partial update applied on a phase transition.
type ConversationPatch struct {
	Phase         ConversationPhase
	ClientPhone   *string
	ClientAddress *string
}

// Apply returns c with the patch applied.
func (p ConversationPatch) Apply(c ConversationState) ConversationState {
	if p.Phase != "" {
		c.Phase = p.Phase
	}
	if p.ClientPhone != nil {
		c.ClientPhone = *p.ClientPhone
	}
	if p.ClientAddress != nil {
		c.ClientAddress = *p.ClientAddress
	}
	return c
}

// PendingKind tags the pending request variant.
type PendingKind string

const (
	PendingKindInvoiceRequest PendingKind = "invoice_request"
	PendingKindQuoteRequest   PendingKind = "quote_request"
)

const PendingSchemaVersion = 1

var ErrMalformedPending = errors.New("malformed pending document request")

// PendingRequest is the tagged envelope holding the request parked while the
// conversation collects client details.
//
//	{"kind":"invoice_request","version":1,"request":{...}}
type PendingRequest struct {
	Kind    PendingKind           `json:"kind"`
	Version int                   `json:"version"`
	Request ParsedDocumentRequest `json:"request"`
}

func pendingKindFor(t DocumentType) (PendingKind, bool) {
	switch t {
	case DocumentTypeInvoice:
		return PendingKindInvoiceRequest, true
	case DocumentTypeQuote:
		return PendingKindQuoteRequest, true
	default:
		return "", false
	}
}

// NewPendingRequest wraps req in a validated envelope.
func NewPendingRequest(req ParsedDocumentRequest) (PendingRequest, error) {
	kind, ok := pendingKindFor(req.DocumentType)
	if !ok {
		return PendingRequest{}, fmt.Errorf("%w: unknown document type %q", ErrMalformedPending, req.DocumentType)
	}
	p := PendingRequest{Kind: kind, Version: PendingSchemaVersion, Request: req}
	if err := p.Validate(); err != nil {
		return PendingRequest{}, err
	}
	return p, nil
}

// Validate checks the envelope tag against its payload and the line item invariants.
func (p PendingRequest) Validate() error {
	if p.Version != PendingSchemaVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformedPending, p.Version)
	}
	kind, ok := pendingKindFor(p.Request.DocumentType)
	if !ok || kind != p.Kind {
		return fmt.Errorf("%w: kind %q does not match document type %q", ErrMalformedPending, p.Kind, p.Request.DocumentType)
	}
	if len(p.Request.LineItems) == 0 {
		return fmt.Errorf("%w: no line items", ErrMalformedPending)
	}
	for i, it := range p.Request.LineItems {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return fmt.Errorf("%w: line item %d out of range", ErrMalformedPending, i)
		}
		if it.Total != int64(math.Round(it.Quantity*float64(it.UnitPrice))) {
			return fmt.Errorf("%w: line item %d total mismatch", ErrMalformedPending, i)
		}
	}
	if p.Request.TotalAmountCents != SumLineItems(p.Request.LineItems) {
		return fmt.Errorf("%w: total mismatch", ErrMalformedPending)
	}
	return nil
}

// Encode validates and serializes the envelope.
func (p PendingRequest) Encode() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

// DecodePendingRequest parses and validates a stored envelope. Unknown fields
// are rejected.
func DecodePendingRequest(raw []byte) (PendingRequest, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return PendingRequest{}, fmt.Errorf("%w: empty payload", ErrMalformedPending)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var p PendingRequest
	if err := dec.Decode(&p); err != nil {
		return PendingRequest{}, fmt.Errorf("%w: %v", ErrMalformedPending, err)
	}
	if err := p.Validate(); err != nil {
		return PendingRequest{}, err
	}
	return p, nil
}
